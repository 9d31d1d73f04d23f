package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-common-go/dto"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var parseDoc = `Parses DIDComm messages and prints their kind and thread.

The messages are read from the files, or from stdin if no files are given.
Messages of the unknown types are reported as generic.`

var parseCmd = &cobra.Command{
	Use:   "parse [file...]",
	Short: "Parses DIDComm messages",
	Long:  parseDoc,
	RunE: func(c *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		cmd := ParseCmd{Files: args, Stdin: c.InOrStdin()}
		try.To(cmd.Validate())
		return cmd.Exec(c.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

// ParseCmd parses the messages of the files.
type ParseCmd struct {
	Files []string
	Stdin io.Reader
}

// MessageInfo is the output of the parse.
type MessageInfo struct {
	Source         string `json:"source"`
	Kind           string `json:"kind"`
	Type           string `json:"type"`
	ID             string `json:"id"`
	ThreadID       string `json:"thid,omitempty"`
	ParentThreadID string `json:"pthid,omitempty"`
	Generic        bool   `json:"generic,omitempty"`
}

func (c ParseCmd) Validate() error {
	if len(c.Files) == 0 && c.Stdin == nil {
		return fmt.Errorf("no input")
	}
	return nil
}

func (c ParseCmd) Exec(w io.Writer) (err error) {
	defer err2.Handle(&err, "parse")

	if len(c.Files) == 0 {
		info := try.To1(parseMessage("-", try.To1(io.ReadAll(c.Stdin))))
		try.To1(fmt.Fprintln(w, dto.ToJSON(info)))
		return nil
	}
	for _, file := range c.Files {
		info := try.To1(parseMessage(file, try.To1(os.ReadFile(file))))
		try.To1(fmt.Fprintln(w, dto.ToJSON(info)))
	}
	return nil
}

func parseMessage(source string, data []byte) (info MessageInfo, err error) {
	defer err2.Handle(&err, "%s", source)

	m := try.To1(aries.Parse(data))
	thid, _ := aries.ThreadID(m)
	_, generic := m.(*aries.Generic)
	return MessageInfo{
		Source:         source,
		Kind:           string(m.Kind()),
		Type:           m.MsgType(),
		ID:             m.MsgID(),
		ThreadID:       thid,
		ParentThreadID: aries.ParentThreadID(m),
		Generic:        generic,
	}, nil
}
