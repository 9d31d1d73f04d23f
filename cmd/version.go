package cmd

import (
	"fmt"

	"github.com/findy-network/findy-aries-fsm/agent/utils"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the version and build information of the tool",
	RunE: func(c *cobra.Command, _ []string) (err error) {
		defer err2.Handle(&err)

		try.To1(fmt.Fprintln(c.OutOrStdout(), utils.Version))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
