// Package presentproof is package for Aries protocol messages for
// present-proof/1.0.
package presentproof

import (
	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/std/common"
	"github.com/findy-network/findy-aries-fsm/std/decorator"
)

func init() {
	aries.Creator.Add(aries.KindPresentationProposal, aries.Unmarshaler[Propose]())
	aries.Creator.Add(aries.KindPresentationRequest, aries.Unmarshaler[Request]())
	aries.Creator.Add(aries.KindPresentation, aries.Unmarshaler[Presentation]())
	aries.Creator.Add(aries.KindPresentationAck, aries.Unmarshaler[Ack]())
	aries.Creator.Add(aries.KindPresentationProblemReport, aries.Unmarshaler[ProblemReport]())
}

// MARK: Request

type Request struct {
	aries.Threaded
	Comment              string                 `json:"comment,omitempty"`
	RequestPresentations []decorator.Attachment `json:"request_presentations~attach"`
}

func (*Request) Kind() aries.Kind {
	return aries.KindPresentationRequest
}

// MARK: Presentation

type Presentation struct {
	aries.Threaded
	Comment              string                 `json:"comment,omitempty"`
	PresentationAttaches []decorator.Attachment `json:"presentations~attach"`
	PleaseAck            *decorator.PleaseAck   `json:"~please_ack,omitempty"`
}

func (*Presentation) Kind() aries.Kind {
	return aries.KindPresentation
}

// MARK: Propose

type Propose struct {
	aries.Threaded
	Comment              string   `json:"comment,omitempty"`
	PresentationProposal *Preview `json:"presentation_proposal,omitempty"`
}

func (*Propose) Kind() aries.Kind {
	return aries.KindPresentationProposal
}

// MARK: Ack & problem report

type Ack struct {
	common.Ack
}

func (*Ack) Kind() aries.Kind {
	return aries.KindPresentationAck
}

type ProblemReport struct {
	common.ProblemReport
}

func (*ProblemReport) Kind() aries.Kind {
	return aries.KindPresentationProblemReport
}

// MARK: Preview

type Preview struct {
	Type       string      `json:"@type,omitempty"`
	Attributes []Attribute `json:"attributes"`
	Predicates []Predicate `json:"predicates"`
}

type Attribute struct {
	Name      string `json:"name"`
	CredDefID string `json:"cred_def_id,omitempty"`

	// https://github.com/hyperledger/aries-rfcs/blob/master/features/0037-present-proof/README.md#mime-type-and-value
	MimeType string `json:"mime-type,omitempty"`
	Value    string `json:"value,omitempty"`

	// https://github.com/hyperledger/aries-rfcs/blob/master/features/0037-present-proof/README.md#referent
	Referent string `json:"referent,omitempty"`
}

// Predicate is definition type of Preview struct.
//
//	https://github.com/hyperledger/aries-rfcs/blob/master/features/0037-present-proof/README.md#predicates
type Predicate struct {
	Name      string `json:"name"`
	CredDefID string `json:"cred_def_id,omitempty"`
	Predicate string `json:"predicate"` // "<", "<=", ">=", ">"
	Threshold int64  `json:"threshold"`
}
