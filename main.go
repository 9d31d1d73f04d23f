package main

import (
	"github.com/findy-network/findy-aries-fsm/cmd"
)

func main() {
	cmd.Execute()
}
