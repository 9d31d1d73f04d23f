package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/findy-network/findy-aries-fsm/agent/psm"
	"github.com/findy-network/findy-common-go/dto"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var inspectDoc = `Prints the stored protocol state machines of the DID.

With the thread ID only that machine is printed with its full state.
Otherwise the machines are listed, and --pending leaves out the machines in
their terminal states.`

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Prints the stored state machines",
	Long:  inspectDoc,
	RunE: func(c *cobra.Command, _ []string) (err error) {
		defer err2.Handle(&err)

		try.To(inspectCmdArgs.Validate())
		store := try.To1(psm.Open(storeConfig()))
		defer store.Close()
		return inspectCmdArgs.Exec(c.OutOrStdout(), store)
	},
}

var inspectCmdArgs InspectCmd

func init() {
	flags := inspectCmd.Flags()
	flags.StringVar(&inspectCmdArgs.DID, "did", "", "DID of the agent owning the machines")
	flags.StringVar(&inspectCmdArgs.ThreadID, "thread", "", "thread ID of the machine")
	flags.BoolVar(&inspectCmdArgs.Pending, "pending", false, "list only the machines in progress")
	rootCmd.AddCommand(inspectCmd)
}

type InspectCmd struct {
	DID      string
	ThreadID string
	Pending  bool
}

// MachineInfo is the output of the inspect. The machine is included only
// when a single machine is inspected.
type MachineInfo struct {
	ThreadID  string          `json:"thid"`
	Role      psm.Role        `json:"role"`
	StateName string          `json:"state"`
	Terminal  bool            `json:"terminal"`
	Updated   time.Time       `json:"updated"`
	Machine   json.RawMessage `json:"machine,omitempty"`
}

func (c InspectCmd) Validate() error {
	if c.DID == "" {
		return fmt.Errorf("DID is needed")
	}
	return nil
}

func (c InspectCmd) Exec(w io.Writer, store *psm.Store) (err error) {
	defer err2.Handle(&err, "inspect")

	if c.ThreadID != "" {
		r := try.To1(store.Get(psm.StateKey{DID: c.DID, Nonce: c.ThreadID}))
		info := machineInfo(r)
		info.Machine = r.Machine
		try.To1(fmt.Fprintln(w, dto.ToJSON(info)))
		return nil
	}
	for _, r := range try.To1(store.All(c.DID, c.Pending)) {
		r := r
		try.To1(fmt.Fprintln(w, dto.ToJSON(machineInfo(&r))))
	}
	return nil
}

func machineInfo(r *psm.Record) MachineInfo {
	return MachineInfo{
		ThreadID:  r.Key.Nonce,
		Role:      r.Role,
		StateName: r.StateName,
		Terminal:  r.Terminal,
		Updated:   time.Unix(r.Timestamp, 0).UTC(),
	}
}
