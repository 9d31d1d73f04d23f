/*
Package issuecredential is package for Aries protocol messages for
issue-credential/1.0. The structures were originally taken from
aries-framework-go and modified: every message embeds the aries headers, and
the libindy payloads travel as base64 attachments.
*/
package issuecredential

import (
	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/std/common"
	"github.com/findy-network/findy-aries-fsm/std/decorator"
)

func init() {
	aries.Creator.Add(aries.KindCredentialProposal, aries.Unmarshaler[Propose]())
	aries.Creator.Add(aries.KindCredentialOffer, aries.Unmarshaler[Offer]())
	aries.Creator.Add(aries.KindCredentialRequest, aries.Unmarshaler[Request]())
	aries.Creator.Add(aries.KindCredential, aries.Unmarshaler[Issue]())
	aries.Creator.Add(aries.KindCredentialAck, aries.Unmarshaler[Ack]())
	aries.Creator.Add(aries.KindCredentialProblemReport, aries.Unmarshaler[ProblemReport]())
}

// Propose is sent by the potential Holder to the Issuer to initiate the
// protocol or to answer to an offer when the Holder wants adjustments.
type Propose struct {
	aries.Threaded
	Comment            string             `json:"comment,omitempty"`
	CredentialProposal *PreviewCredential `json:"credential_proposal,omitempty"`

	// Optional filters for the credential.
	SchemaIssuerDid string `json:"schema_issuer_did,omitempty"`
	SchemaID        string `json:"schema_id,omitempty"`
	SchemaName      string `json:"schema_name,omitempty"`
	SchemaVersion   string `json:"schema_version,omitempty"`
	CredDefID       string `json:"cred_def_id,omitempty"`
	IssuerDid       string `json:"issuer_did,omitempty"`
}

func (*Propose) Kind() aries.Kind {
	return aries.KindCredentialProposal
}

// Offer is sent by the Issuer to the potential Holder. The libindy credential
// offer is in the first attachment.
type Offer struct {
	aries.Threaded
	Comment           string                 `json:"comment,omitempty"`
	CredentialPreview PreviewCredential      `json:"credential_preview"`
	OffersAttach      []decorator.Attachment `json:"offers~attach"`
}

func (*Offer) Kind() aries.Kind {
	return aries.KindCredentialOffer
}

// Request is sent by the Holder to the Issuer. The libindy credential request
// is in the first attachment.
type Request struct {
	aries.Threaded
	Comment        string                 `json:"comment,omitempty"`
	RequestsAttach []decorator.Attachment `json:"requests~attach"`
}

func (*Request) Kind() aries.Kind {
	return aries.KindCredentialRequest
}

// Issue carries the issued credential as attached payload and is sent in
// response to a valid Request.
type Issue struct {
	aries.Threaded
	Comment           string                 `json:"comment,omitempty"`
	CredentialsAttach []decorator.Attachment `json:"credentials~attach"`
	PleaseAck         *decorator.PleaseAck   `json:"~please_ack,omitempty"`
}

func (*Issue) Kind() aries.Kind {
	return aries.KindCredential
}

// Ack is the notification ack adopted by issue-credential.
type Ack struct {
	common.Ack
}

func (*Ack) Kind() aries.Kind {
	return aries.KindCredentialAck
}

// ProblemReport is the notification problem-report adopted by
// issue-credential.
type ProblemReport struct {
	common.ProblemReport
}

func (*ProblemReport) Kind() aries.Kind {
	return aries.KindCredentialProblemReport
}

// PreviewCredential is the preview of the data for the credential to be
// issued.
type PreviewCredential struct {
	Type       string      `json:"@type,omitempty"`
	Attributes []Attribute `json:"attributes"`
}

// Attribute describes an attribute for a PreviewCredential.
type Attribute struct {
	Name     string `json:"name"`
	MimeType string `json:"mime-type,omitempty"`
	Value    string `json:"value"`
}
