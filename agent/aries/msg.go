/*
Package aries is implementation package for Aries DIDComm messages. Every
protocol message is a Go struct which embeds Header or Threaded from this
package, and that makes the set of messages closed: only types built on these
headers implement Message. The std packages register their message factors to
Creator so that Parse can build the correct type from the incoming JSON. We
use statically typed JSON messages, unknown types are kept as Generic.
*/
package aries

import (
	"strings"

	"github.com/findy-network/findy-aries-fsm/agent/pltype"
	"github.com/findy-network/findy-aries-fsm/agent/utils"
	"github.com/findy-network/findy-aries-fsm/std/decorator"
)

// Kind is the canonical protocol/version/name part of the message type. It
// doesn't have the type prefix which can vary.
type Kind string

const (
	KindGeneric Kind = ""

	KindConnectionInvitation    Kind = pltype.ProtocolConnection + "/1.0/" + pltype.HandlerInvitation
	KindConnectionRequest       Kind = pltype.ProtocolConnection + "/1.0/" + pltype.HandlerRequest
	KindConnectionResponse      Kind = pltype.ProtocolConnection + "/1.0/" + pltype.HandlerResponse
	KindConnectionProblemReport Kind = pltype.ProtocolConnection + "/1.0/" + pltype.HandlerConnProblem

	KindPing         Kind = pltype.ProtocolTrustPing + "/1.0/" + pltype.HandlerPing
	KindPingResponse Kind = pltype.ProtocolTrustPing + "/1.0/" + pltype.HandlerPingResponse

	KindAck           Kind = pltype.ProtocolNotification + "/1.0/" + pltype.HandlerAck
	KindProblemReport Kind = pltype.ProtocolNotification + "/1.0/" + pltype.HandlerProblemReport

	KindCredentialProposal      Kind = pltype.ProtocolIssueCredential + "/1.0/" + pltype.HandlerIssueCredentialPropose
	KindCredentialOffer         Kind = pltype.ProtocolIssueCredential + "/1.0/" + pltype.HandlerIssueCredentialOffer
	KindCredentialRequest       Kind = pltype.ProtocolIssueCredential + "/1.0/" + pltype.HandlerIssueCredentialRequest
	KindCredential              Kind = pltype.ProtocolIssueCredential + "/1.0/" + pltype.HandlerIssueCredentialIssue
	KindCredentialAck           Kind = pltype.ProtocolIssueCredential + "/1.0/" + pltype.HandlerIssueCredentialAck
	KindCredentialProblemReport Kind = pltype.ProtocolIssueCredential + "/1.0/" + pltype.HandlerIssueCredentialProblem

	KindPresentationProposal      Kind = pltype.ProtocolPresentProof + "/1.0/" + pltype.HandlerPresentProofPropose
	KindPresentationRequest       Kind = pltype.ProtocolPresentProof + "/1.0/" + pltype.HandlerPresentProofRequest
	KindPresentation              Kind = pltype.ProtocolPresentProof + "/1.0/" + pltype.HandlerPresentProofPresentation
	KindPresentationAck           Kind = pltype.ProtocolPresentProof + "/1.0/" + pltype.HandlerPresentProofAck
	KindPresentationProblemReport Kind = pltype.ProtocolPresentProof + "/1.0/" + pltype.HandlerPresentProofProblem

	KindQuery    Kind = pltype.ProtocolDiscoverFeatures + "/1.0/" + pltype.HandlerQuery
	KindDisclose Kind = pltype.ProtocolDiscoverFeatures + "/1.0/" + pltype.HandlerDisclose

	KindBasicMessage Kind = pltype.ProtocolBasicMessage + "/1.0/" + pltype.HandlerMessage

	KindOutOfBandInvitation    Kind = pltype.ProtocolOutOfBand + "/" + pltype.OutOfBandVersion + "/" + pltype.HandlerInvitation
	KindHandshakeReuse         Kind = pltype.ProtocolOutOfBand + "/" + pltype.OutOfBandVersion + "/" + pltype.HandlerHandshakeReuse
	KindHandshakeReuseAccepted Kind = pltype.ProtocolOutOfBand + "/" + pltype.OutOfBandVersion + "/" + pltype.HandlerHandshakeReuseAccepted
)

// Protocol returns the protocol family of the kind, e.g. "connections".
func (k Kind) Protocol() string {
	p, _, _ := strings.Cut(string(k), "/")
	return p
}

// Type returns the full wire type for the kind.
func (k Kind) Type() string {
	if k == KindGeneric {
		return ""
	}
	if k.Protocol() == pltype.ProtocolOutOfBand {
		return pltype.DIDOrgAries + "/" + string(k)
	}
	return pltype.Aries + "/" + string(k)
}

// KindOf strips the type prefix from the wire type. The result isn't
// necessarily a registered kind.
func KindOf(typ string) Kind {
	for _, prefix := range []string{pltype.Aries + "/", pltype.DIDOrgAries + "/"} {
		if strings.HasPrefix(typ, prefix) {
			return Kind(strings.TrimPrefix(typ, prefix))
		}
	}
	return Kind(typ)
}

// Message is implemented by every Aries message. The interface cannot be
// implemented outside of this package without embedding Header.
type Message interface {
	Kind() Kind
	MsgID() string
	MsgType() string

	header() *Header
}

// ThreadCarrier is a Message which has the ~thread decorator.
type ThreadCarrier interface {
	Message
	ThreadDecorator() *decorator.Thread
}

// Header is the common part of every message.
type Header struct {
	ID     string            `json:"@id"`
	Type   string            `json:"@type"`
	Timing *decorator.Timing `json:"~timing,omitempty"`
}

func NewHeader(k Kind) Header {
	return Header{ID: utils.UUID(), Type: k.Type()}
}

func (h *Header) MsgID() string {
	return h.ID
}

func (h *Header) MsgType() string {
	return h.Type
}

func (h *Header) header() *Header {
	return h
}

// Threaded is the common part of the messages which belong to a thread.
type Threaded struct {
	Header
	Thread *decorator.Thread `json:"~thread,omitempty"`
}

// NewThreaded builds a header with a thread. Empty thid means the message
// starts a new thread, and then ~thread is left out like the Aries RFCs
// define, unless there is a parent thread.
func NewThreaded(k Kind, thid, pthid string) Threaded {
	t := Threaded{Header: NewHeader(k)}
	switch {
	case thid != "":
		t.Thread = decorator.NewThread(thid, pthid)
	case pthid != "":
		t.Thread = &decorator.Thread{ID: t.ID, PID: pthid}
	}
	return t
}

func (t *Threaded) ThreadDecorator() *decorator.Thread {
	return t.Thread
}

// SetThread sets the thread decorator, the old one is replaced.
func (t *Threaded) SetThread(thid, pthid string) {
	t.Thread = decorator.NewThread(thid, pthid)
}

// ThreadID returns the effective thread ID of the message: thid if present,
// otherwise the message's own ID. Messages without ~thread return false.
func ThreadID(m Message) (string, bool) {
	tc, ok := m.(ThreadCarrier)
	if !ok {
		return "", false
	}
	return decorator.ThreadID(tc.ThreadDecorator(), m.MsgID()), true
}

// ThreadIDMatches returns true only for messages which carry a thread and
// whose thread ID equals thid.
func ThreadIDMatches(m Message, thid string) bool {
	id, ok := ThreadID(m)
	return ok && id == thid
}

// ParentThreadID returns pthid of the message if it has one.
func ParentThreadID(m Message) string {
	tc, ok := m.(ThreadCarrier)
	if !ok || tc.ThreadDecorator() == nil {
		return ""
	}
	return tc.ThreadDecorator().PID
}
