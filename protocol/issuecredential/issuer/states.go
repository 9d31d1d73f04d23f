package issuer

import (
	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/agent/fsm"
	"github.com/findy-network/findy-aries-fsm/protocol/issuecredential"
	stdic "github.com/findy-network/findy-aries-fsm/std/issuecredential"
)

// State is the issuer's state.
type State interface {
	Name() string
	issuerState()
}

const (
	StateInitial         = "Initial"
	StateOfferSent       = "OfferSent"
	StateRequestReceived = "RequestReceived"
	StateCredentialSent  = "CredentialSent"
	StateFinished        = "Finished"
)

// Config is the credential definition the credential is issued with. The
// revocation fields are empty for the cred defs without revocation.
type Config struct {
	CredDefID string `json:"cred_def_id"`
	RevRegID  string `json:"rev_reg_id,omitempty"`
	TailsFile string `json:"tails_file,omitempty"`
}

type Initial struct {
	Config Config `json:"config"`

	// CredentialJSON is the attribute values as a flat object or an array
	// of {name, value} objects.
	CredentialJSON string `json:"credential_json"`
}

type OfferSent struct {
	Config  Config                  `json:"config"`
	Offer   string                  `json:"offer"`
	Preview stdic.PreviewCredential `json:"credential_preview"`
}

type RequestReceived struct {
	Config  Config                  `json:"config"`
	Offer   string                  `json:"offer"`
	Preview stdic.PreviewCredential `json:"credential_preview"`
	Request string                  `json:"request"`
}

// CredentialSent isn't entered: sending the credential finishes the
// protocol.
type CredentialSent struct {
	Config     Config                          `json:"config"`
	Revocation *issuecredential.RevocationInfo `json:"revocation,omitempty"`
}

type Finished struct {
	Status        fsm.Status                      `json:"status"`
	CredDefID     string                          `json:"cred_def_id,omitempty"`
	Revocation    *issuecredential.RevocationInfo `json:"revocation,omitempty"`
	ProblemReport *stdic.ProblemReport            `json:"problem_report,omitempty"`
}

func (*Initial) Name() string         { return StateInitial }
func (*OfferSent) Name() string       { return StateOfferSent }
func (*RequestReceived) Name() string { return StateRequestReceived }
func (*CredentialSent) Name() string  { return StateCredentialSent }
func (*Finished) Name() string        { return StateFinished }

func (*Initial) issuerState()         {}
func (*OfferSent) issuerState()       {}
func (*RequestReceived) issuerState() {}
func (*CredentialSent) issuerState()  {}
func (*Finished) issuerState()        {}

var states = fsm.Registry[State]{
	StateInitial:         func() State { return &Initial{} },
	StateOfferSent:       func() State { return &OfferSent{} },
	StateRequestReceived: func() State { return &RequestReceived{} },
	StateCredentialSent:  func() State { return &CredentialSent{} },
	StateFinished:        func() State { return &Finished{} },
}

// Event drives the issuer. Inbound wraps the messages from the holder.
type Event interface {
	issuerEvent()
}

// CredentialInit sends the offer.
type CredentialInit struct {
	Comment string
}

// CredentialSend issues and sends the credential to the requester.
type CredentialSend struct{}

type Inbound struct {
	Msg aries.Message
}

func (CredentialInit) issuerEvent() {}
func (CredentialSend) issuerEvent() {}
func (Inbound) issuerEvent()        {}
