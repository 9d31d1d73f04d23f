package invitee

import (
	"github.com/findy-network/findy-aries-fsm/protocol/connection"
	stdconn "github.com/findy-network/findy-aries-fsm/std/connection"
	"github.com/findy-network/findy-aries-fsm/std/did"
	"github.com/findy-network/findy-aries-fsm/std/discovery"
)

// State is the invitee's connection state.
type State interface {
	Name() string
	inviteeState()
}

const (
	StateInitial   = "Initial"
	StateInvited   = "Invited"
	StateRequested = "Requested"
	StateResponded = "Responded"
	StateCompleted = "Completed"
)

// Initial carries the problem report when the connection attempt failed.
type Initial struct {
	ProblemReport *stdconn.ProblemReport `json:"problem_report,omitempty"`
}

type Invited struct {
	Invitation connection.Invitation `json:"invitation"`
}

// Requested has the sent request and the inviter's doc we got from the
// invitation. The response must be signed with its key.
type Requested struct {
	Request      *stdconn.Request `json:"request"`
	BootstrapDoc *did.Doc         `json:"bootstrap_did_doc"`
}

// Responded has the verified response, which carries their pairwise DID
// doc.
type Responded struct {
	Response     *stdconn.Response `json:"response"`
	BootstrapDoc *did.Doc          `json:"bootstrap_did_doc"`
}

type Completed struct {
	TheirDIDDoc  *did.Doc                       `json:"their_did_doc"`
	BootstrapDoc *did.Doc                       `json:"bootstrap_did_doc"`
	Protocols    []discovery.ProtocolDescriptor `json:"protocols,omitempty"`
}

func (*Initial) Name() string   { return StateInitial }
func (*Invited) Name() string   { return StateInvited }
func (*Requested) Name() string { return StateRequested }
func (*Responded) Name() string { return StateResponded }
func (*Completed) Name() string { return StateCompleted }

func (*Initial) inviteeState()   {}
func (*Invited) inviteeState()   {}
func (*Requested) inviteeState() {}
func (*Responded) inviteeState() {}
func (*Completed) inviteeState() {}
