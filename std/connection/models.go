// Package connection implements the messages of Aries RFC 0160 connection
// protocol and the signature of the connection response.
package connection

import (
	"encoding/json"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/std/common"
	"github.com/findy-network/findy-aries-fsm/std/decorator"
	"github.com/findy-network/findy-aries-fsm/std/did"
)

func init() {
	aries.Creator.Add(aries.KindConnectionInvitation, newInvitation)
	aries.Creator.Add(aries.KindConnectionRequest, aries.Unmarshaler[Request]())
	aries.Creator.Add(aries.KindConnectionResponse, aries.Unmarshaler[SignedResponse]())
	aries.Creator.Add(aries.KindConnectionProblemReport, aries.Unmarshaler[ProblemReport]())
}

// newInvitation builds the public invitation if the invitation has a DID,
// otherwise the pairwise one.
func newInvitation(data []byte) (aries.Message, error) {
	var probe struct {
		DID string `json:"did"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	if probe.DID != "" {
		return aries.Unmarshaler[PublicInvitation]()(data)
	}
	return aries.Unmarshaler[PairwiseInvitation]()(data)
}

// PairwiseInvitation carries the keys and the endpoint of the inviter.
type PairwiseInvitation struct {
	aries.Header
	Label           string   `json:"label,omitempty"`
	RecipientKeys   []string `json:"recipientKeys"`
	RoutingKeys     []string `json:"routingKeys,omitempty"`
	ServiceEndpoint string   `json:"serviceEndpoint"`
	ImageURL        string   `json:"imageUrl,omitempty"`
}

func (*PairwiseInvitation) Kind() aries.Kind {
	return aries.KindConnectionInvitation
}

// PublicInvitation refers to the inviter's public DID, the keys and endpoint
// are resolved from the ledger.
type PublicInvitation struct {
	aries.Header
	Label string `json:"label,omitempty"`
	DID   string `json:"did"`
}

func (*PublicInvitation) Kind() aries.Kind {
	return aries.KindConnectionInvitation
}

// Connection is the content of the request and the signed content of the
// response.
type Connection struct {
	DID    string   `json:"DID"`
	DIDDoc *did.Doc `json:"DIDDoc"`
}

type Request struct {
	aries.Threaded
	Label      string     `json:"label,omitempty"`
	Connection Connection `json:"connection"`
}

func (*Request) Kind() aries.Kind {
	return aries.KindConnectionRequest
}

// SignedResponse is the response as it travels on the wire.
type SignedResponse struct {
	aries.Threaded
	ConnectionSignature ConnectionSignature  `json:"connection~sig"`
	PleaseAck           *decorator.PleaseAck `json:"~please_ack,omitempty"`
}

func (*SignedResponse) Kind() aries.Kind {
	return aries.KindConnectionResponse
}

// ConnectionSignature is the connection~sig field decorator.
type ConnectionSignature struct {
	Type       string `json:"@type"`
	Signature  string `json:"signature"`
	SignedData string `json:"sig_data"`
	SignVerKey string `json:"signer"`
}

// Response is the decoded SignedResponse. It isn't sent as it is.
type Response struct {
	ID         string            `json:"@id"`
	Thread     *decorator.Thread `json:"~thread,omitempty"`
	Connection Connection        `json:"connection"`
}

// ThreadID returns effective thread ID of the response.
func (r *Response) ThreadID() string {
	return decorator.ThreadID(r.Thread, r.ID)
}

type ProblemReport struct {
	common.ProblemReport
}

func (*ProblemReport) Kind() aries.Kind {
	return aries.KindConnectionProblemReport
}

func NewProblemReport(thid, code, explain string) *ProblemReport {
	return &ProblemReport{ProblemReport: common.NewProblemReport(
		aries.KindConnectionProblemReport, thid, code, explain)}
}
