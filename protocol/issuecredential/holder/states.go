package holder

import (
	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/agent/fsm"
	stdic "github.com/findy-network/findy-aries-fsm/std/issuecredential"
)

// State is the holder's state.
type State interface {
	Name() string
	holderState()
}

const (
	StateInitial       = "Initial"
	StateProposalSent  = "ProposalSent"
	StateOfferReceived = "OfferReceived"
	StateRequestSent   = "RequestSent"
	StateFinished      = "Finished"
)

type Initial struct{}

type ProposalSent struct {
	Proposal *stdic.Propose `json:"proposal"`
}

type OfferReceived struct {
	Offer *stdic.Offer `json:"offer"`
}

// RequestSent keeps what storing the credential needs.
type RequestSent struct {
	Offer       *stdic.Offer `json:"offer"`
	ReqMeta     string       `json:"req_meta"`
	CredDefJSON string       `json:"cred_def_json"`
}

// Finished has the stored credential when the status is Success.
type Finished struct {
	Status        fsm.Status           `json:"status"`
	CredID        string               `json:"cred_id,omitempty"`
	Credential    *stdic.Issue         `json:"credential,omitempty"`
	RevRegID      string               `json:"rev_reg_id,omitempty"`
	ProblemReport *stdic.ProblemReport `json:"problem_report,omitempty"`
}

func (*Initial) Name() string       { return StateInitial }
func (*ProposalSent) Name() string  { return StateProposalSent }
func (*OfferReceived) Name() string { return StateOfferReceived }
func (*RequestSent) Name() string   { return StateRequestSent }
func (*Finished) Name() string      { return StateFinished }

func (*Initial) holderState()       {}
func (*ProposalSent) holderState()  {}
func (*OfferReceived) holderState() {}
func (*RequestSent) holderState()   {}
func (*Finished) holderState()      {}

var states = fsm.Registry[State]{
	StateInitial:       func() State { return &Initial{} },
	StateProposalSent:  func() State { return &ProposalSent{} },
	StateOfferReceived: func() State { return &OfferReceived{} },
	StateRequestSent:   func() State { return &RequestSent{} },
	StateFinished:      func() State { return &Finished{} },
}

// Event drives the holder.
type Event interface {
	holderEvent()
}

// CredentialProposalSend starts the protocol with the proposal. The values
// are given like to the preview.
type CredentialProposalSend struct {
	Comment   string
	CredDefID string
	Values    string
}

// CredentialRequestSend accepts the offer. MyPwDID is our DID in the
// pairwise, the prover DID of the request.
type CredentialRequestSend struct {
	MyPwDID string
}

// CredentialOfferReject declines the offer.
type CredentialOfferReject struct {
	Comment string
}

type Inbound struct {
	Msg aries.Message
}

func (CredentialProposalSend) holderEvent() {}
func (CredentialRequestSend) holderEvent()  {}
func (CredentialOfferReject) holderEvent()  {}
func (Inbound) holderEvent()                {}
