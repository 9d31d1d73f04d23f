package inviter

import (
	stdconn "github.com/findy-network/findy-aries-fsm/std/connection"
	"github.com/findy-network/findy-aries-fsm/std/did"
	"github.com/findy-network/findy-aries-fsm/std/discovery"
)

// State is the inviter's connection state. The implementations own exactly
// the data which exists in that state.
type State interface {
	Name() string
	inviterState()
}

const (
	StateInitial   = "Initial"
	StateInvited   = "Invited"
	StateRequested = "Requested"
	StateResponded = "Responded"
	StateCompleted = "Completed"
)

// Initial is the null state. It carries the problem report when the
// connection attempt was aborted.
type Initial struct {
	ProblemReport *stdconn.ProblemReport `json:"problem_report,omitempty"`
}

type Invited struct {
	Invitation *stdconn.PairwiseInvitation `json:"invitation"`
}

// Requested has the validated request and the signed response which isn't
// sent yet.
type Requested struct {
	Request        *stdconn.Request        `json:"request"`
	SignedResponse *stdconn.SignedResponse `json:"signed_response"`
	TheirDIDDoc    *did.Doc                `json:"their_did_doc"`
}

type Responded struct {
	SignedResponse *stdconn.SignedResponse `json:"signed_response"`
	TheirDIDDoc    *did.Doc                `json:"their_did_doc"`
}

type Completed struct {
	TheirDIDDoc *did.Doc                       `json:"their_did_doc"`
	Protocols   []discovery.ProtocolDescriptor `json:"protocols,omitempty"`
}

func (*Initial) Name() string   { return StateInitial }
func (*Invited) Name() string   { return StateInvited }
func (*Requested) Name() string { return StateRequested }
func (*Responded) Name() string { return StateResponded }
func (*Completed) Name() string { return StateCompleted }

func (*Initial) inviterState()   {}
func (*Invited) inviterState()   {}
func (*Requested) inviterState() {}
func (*Responded) inviterState() {}
func (*Completed) inviterState() {}
