package verifier

import (
	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/agent/fsm"
	stdpp "github.com/findy-network/findy-aries-fsm/std/presentproof"
)

// State is the verifier's state.
type State interface {
	Name() string
	verifierState()
}

const (
	StateInitial                      = "Initial"
	StatePresentationRequestSet       = "PresentationRequestSet"
	StatePresentationProposalReceived = "PresentationProposalReceived"
	StatePresentationRequestSent      = "PresentationRequestSent"
	StateFinished                     = "Finished"
)

// RevocationStatus is the outcome of the proof verification. Empty means
// the proof wasn't verified.
type RevocationStatus string

const (
	NonRevoked RevocationStatus = "NonRevoked"
	Revoked    RevocationStatus = "Revoked"
)

type Initial struct{}

type PresentationRequestSet struct {
	ProofRequest string `json:"proof_request"`
}

// PresentationProposalReceived has the proof request template when the
// verifier has set one as the answer to the proposal.
type PresentationProposalReceived struct {
	Proposal     *stdpp.Propose `json:"proposal"`
	ProofRequest string         `json:"proof_request,omitempty"`
}

type PresentationRequestSent struct {
	ProofRequest string         `json:"proof_request"`
	Request      *stdpp.Request `json:"request"`
}

type Finished struct {
	Status           fsm.Status           `json:"status"`
	RevocationStatus RevocationStatus     `json:"revocation_status,omitempty"`
	ProofRequest     string               `json:"proof_request,omitempty"`
	Presentation     *stdpp.Presentation  `json:"presentation,omitempty"`
	ProblemReport    *stdpp.ProblemReport `json:"problem_report,omitempty"`
}

func (*Initial) Name() string                      { return StateInitial }
func (*PresentationRequestSet) Name() string       { return StatePresentationRequestSet }
func (*PresentationProposalReceived) Name() string { return StatePresentationProposalReceived }
func (*PresentationRequestSent) Name() string      { return StatePresentationRequestSent }
func (*Finished) Name() string                     { return StateFinished }

func (*Initial) verifierState()                      {}
func (*PresentationRequestSet) verifierState()       {}
func (*PresentationProposalReceived) verifierState() {}
func (*PresentationRequestSent) verifierState()      {}
func (*Finished) verifierState()                     {}

var states = fsm.Registry[State]{
	StateInitial:                      func() State { return &Initial{} },
	StatePresentationRequestSet:       func() State { return &PresentationRequestSet{} },
	StatePresentationProposalReceived: func() State { return &PresentationProposalReceived{} },
	StatePresentationRequestSent:      func() State { return &PresentationRequestSent{} },
	StateFinished:                     func() State { return &Finished{} },
}

// Event drives the verifier.
type Event interface {
	verifierEvent()
}

// SetPresentationRequest sets the libindy proof request. In
// PresentationProposalReceived it's the answer to the proposal.
type SetPresentationRequest struct {
	ProofRequest string
}

type SendPresentationRequest struct {
	Comment string
}

type RejectPresentationProposal struct {
	Reason string
}

// VerifyPresentation verifies the received presentation. Inbound
// presentations are verified the same way.
type VerifyPresentation struct {
	Presentation *stdpp.Presentation
}

type Inbound struct {
	Msg aries.Message
}

func (SetPresentationRequest) verifierEvent()     {}
func (SendPresentationRequest) verifierEvent()    {}
func (RejectPresentationProposal) verifierEvent() {}
func (VerifyPresentation) verifierEvent()         {}
func (Inbound) verifierEvent()                    {}
