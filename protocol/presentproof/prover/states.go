package prover

import (
	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/agent/fsm"
	stdpp "github.com/findy-network/findy-aries-fsm/std/presentproof"
)

// State is the prover's state.
type State interface {
	Name() string
	proverState()
}

const (
	StateInitial                       = "Initial"
	StatePresentationProposalSent      = "PresentationProposalSent"
	StatePresentationRequestReceived   = "PresentationRequestReceived"
	StatePresentationPreparationFailed = "PresentationPreparationFailed"
	StatePresentationPrepared          = "PresentationPrepared"
	StatePresentationSent              = "PresentationSent"
	StateFinished                      = "Finished"
)

type Initial struct{}

type PresentationProposalSent struct {
	Proposal *stdpp.Propose `json:"proposal"`
}

type PresentationRequestReceived struct {
	Request *stdpp.Request `json:"request"`
}

// PresentationPreparationFailed has the report which is sent instead of the
// presentation.
type PresentationPreparationFailed struct {
	Request       *stdpp.Request       `json:"request"`
	ProblemReport *stdpp.ProblemReport `json:"problem_report"`
}

type PresentationPrepared struct {
	Request *stdpp.Request `json:"request"`
	Proof   string         `json:"proof"`
}

type PresentationSent struct {
	Request      *stdpp.Request      `json:"request"`
	Presentation *stdpp.Presentation `json:"presentation"`
}

type Finished struct {
	Status        fsm.Status           `json:"status"`
	Presentation  *stdpp.Presentation  `json:"presentation,omitempty"`
	ProblemReport *stdpp.ProblemReport `json:"problem_report,omitempty"`
}

func (*Initial) Name() string                       { return StateInitial }
func (*PresentationProposalSent) Name() string      { return StatePresentationProposalSent }
func (*PresentationRequestReceived) Name() string   { return StatePresentationRequestReceived }
func (*PresentationPreparationFailed) Name() string { return StatePresentationPreparationFailed }
func (*PresentationPrepared) Name() string          { return StatePresentationPrepared }
func (*PresentationSent) Name() string              { return StatePresentationSent }
func (*Finished) Name() string                      { return StateFinished }

func (*Initial) proverState()                       {}
func (*PresentationProposalSent) proverState()      {}
func (*PresentationRequestReceived) proverState()   {}
func (*PresentationPreparationFailed) proverState() {}
func (*PresentationPrepared) proverState()          {}
func (*PresentationSent) proverState()              {}
func (*Finished) proverState()                      {}

var states = fsm.Registry[State]{
	StateInitial:                       func() State { return &Initial{} },
	StatePresentationProposalSent:      func() State { return &PresentationProposalSent{} },
	StatePresentationRequestReceived:   func() State { return &PresentationRequestReceived{} },
	StatePresentationPreparationFailed: func() State { return &PresentationPreparationFailed{} },
	StatePresentationPrepared:          func() State { return &PresentationPrepared{} },
	StatePresentationSent:              func() State { return &PresentationSent{} },
	StateFinished:                      func() State { return &Finished{} },
}

// Event drives the prover.
type Event interface {
	proverEvent()
}

// PresentationProposalSend starts the protocol with the proposal.
type PresentationProposalSend struct {
	Comment string
	Preview *stdpp.Preview
}

// PreparePresentation builds the proof from the selected credentials. The
// credentials are given as
//
//	{"attrs": {"<referent>": {"credential": {"cred_info": {...}}, "tails_file": "..."}}}
//
// and the self attested attributes as {"<referent>": "value"}.
type PreparePresentation struct {
	Credentials  string
	SelfAttested string
}

// SetPresentation sets the proof which is built outside of the prover.
type SetPresentation struct {
	Proof string
}

// SendPresentation sends the prepared presentation, or the problem report if
// the preparation failed.
type SendPresentation struct{}

type RejectPresentationRequest struct {
	Reason string
}

// ProposePresentation answers to the request with a counter proposal.
type ProposePresentation struct {
	Comment string
	Preview *stdpp.Preview
}

type Inbound struct {
	Msg aries.Message
}

func (PresentationProposalSend) proverEvent()  {}
func (PreparePresentation) proverEvent()       {}
func (SetPresentation) proverEvent()           {}
func (SendPresentation) proverEvent()          {}
func (RejectPresentationRequest) proverEvent() {}
func (ProposePresentation) proverEvent()       {}
func (Inbound) proverEvent()                   {}
