package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/agent/psm"
	"github.com/findy-network/findy-common-go/dto"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var routeDoc = `Selects the message which the stored state machine handles next.

The messages are the *.json files of the directory, and the file names
without the extension are their IDs. The machine is found with the DID and
the thread ID. The command prints the selected message or nothing if none of
the messages can progress the machine.`

var routeCmd = &cobra.Command{
	Use:   "route <dir>",
	Short: "Runs the message routing of a stored state machine",
	Long:  routeDoc,
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		routeCmdArgs.Dir = args[0]
		try.To(routeCmdArgs.Validate())
		store := try.To1(psm.Open(storeConfig()))
		defer store.Close()
		return routeCmdArgs.Exec(c.OutOrStdout(), store)
	},
}

var routeCmdArgs RouteCmd

func init() {
	flags := routeCmd.Flags()
	flags.StringVar(&routeCmdArgs.DID, "did", "", "DID of the agent owning the machine")
	flags.StringVar(&routeCmdArgs.ThreadID, "thread", "", "thread ID of the machine")
	rootCmd.AddCommand(routeCmd)
}

// RouteCmd runs the routing predicate of the stored machine over the
// messages of the directory.
type RouteCmd struct {
	DID      string
	ThreadID string
	Dir      string
}

// RouteResult is the output of the route.
type RouteResult struct {
	Role      psm.Role `json:"role"`
	StateName string   `json:"state"`
	Found     bool     `json:"found"`
	ID        string   `json:"id,omitempty"`
	Kind      string   `json:"kind,omitempty"`
}

func (c RouteCmd) Validate() error {
	if c.DID == "" || c.ThreadID == "" {
		return fmt.Errorf("both DID and thread ID are needed")
	}
	if c.Dir == "" {
		return fmt.Errorf("message directory is needed")
	}
	return nil
}

func (c RouteCmd) Exec(w io.Writer, store *psm.Store) (err error) {
	defer err2.Handle(&err, "route")

	r := try.To1(c.Route(store))
	try.To1(fmt.Fprintln(w, dto.ToJSON(r)))
	return nil
}

// Route loads the machine and the messages and selects the message.
func (c RouteCmd) Route(store *psm.Store) (r RouteResult, err error) {
	defer err2.Handle(&err)

	key := psm.StateKey{DID: c.DID, Nonce: c.ThreadID}
	rec := try.To1(store.Get(key))
	m, find := try.To2(machineOf(rec.Role))
	try.To(rec.Load(m))

	msgs := try.To1(readMessages(c.Dir))
	r = RouteResult{Role: rec.Role, StateName: m.StateName()}
	if id, msg, found := find(msgs); found {
		r.Found = true
		r.ID = id
		r.Kind = string(msg.Kind())
	}
	return r, nil
}

// readMessages reads the *.json files of the dir. Files which aren't JSON
// are skipped.
func readMessages(dir string) (msgs map[string]aries.Message, err error) {
	defer err2.Handle(&err, "read messages %s", dir)

	files := try.To1(filepath.Glob(filepath.Join(dir, "*.json")))
	msgs = make(map[string]aries.Message, len(files))
	for _, file := range files {
		m, err := aries.Parse(try.To1(os.ReadFile(file)))
		if err != nil {
			glog.Warningln("skipping", file, err)
			continue
		}
		id := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		msgs[id] = m
	}
	return msgs, nil
}
