/*
Package connection has the shared parts of the connections/1.0 state
machines: our pairwise info, the invitation flavors and their thread policy,
the message builders and the answers of the completed connection. The
mediated state machines are in the inviter and invitee packages and the
typestate flavor is in the direct package.
*/
package connection

import (
	"context"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/agent/pltype"
	"github.com/findy-network/findy-aries-fsm/agent/utils"
	"github.com/findy-network/findy-aries-fsm/core"
	"github.com/findy-network/findy-aries-fsm/std/common"
	stdconn "github.com/findy-network/findy-aries-fsm/std/connection"
	"github.com/findy-network/findy-aries-fsm/std/decorator"
	"github.com/findy-network/findy-aries-fsm/std/did"
	"github.com/findy-network/findy-aries-fsm/std/discovery"
	"github.com/findy-network/findy-aries-fsm/std/outofband"
	"github.com/findy-network/findy-aries-fsm/std/trustping"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// SendFunc sends the message to the other end. The senderVerKey is our key
// for the envelope, theirDoc tells the recipient keys and the endpoint.
type SendFunc func(ctx context.Context, msg aries.Message, senderVerKey string, theirDoc *did.Doc) error

// DocResolver resolves the DID doc of a public DID, usually from the ledger.
type DocResolver interface {
	ResolveDoc(ctx context.Context, did string) (*did.Doc, error)
}

// DocResolverFunc is an adapter to use ordinary functions as DocResolvers.
type DocResolverFunc func(ctx context.Context, did string) (*did.Doc, error)

func (f DocResolverFunc) ResolveDoc(ctx context.Context, did string) (*did.Doc, error) {
	return f(ctx, did)
}

// PairwiseInfo is our end of the pairwise.
type PairwiseInfo struct {
	MyDID    string `json:"my_did"`
	MyVerKey string `json:"my_verkey"`
}

// NewPairwiseInfo creates new keys to the wallet for our end of the pairwise.
func NewPairwiseInfo(ctx context.Context, w core.Wallet) (pw PairwiseInfo, err error) {
	defer err2.Handle(&err, "new pairwise info")

	pw.MyDID, pw.MyVerKey = try.To2(w.CreateKey(ctx, ""))
	return pw, nil
}

// NewPairwiseInvitation builds the invitation which carries our keys and
// endpoint.
func NewPairwiseInvitation(label string, pw PairwiseInfo, routingKeys []string, endpoint string) *stdconn.PairwiseInvitation {
	return &stdconn.PairwiseInvitation{
		Header:          aries.NewHeader(aries.KindConnectionInvitation),
		Label:           label,
		RecipientKeys:   []string{pw.MyVerKey},
		RoutingKeys:     routingKeys,
		ServiceEndpoint: endpoint,
	}
}

// NewDoc builds our DID doc for the pairwise.
func NewDoc(pw PairwiseInfo, routingKeys []string, endpoint string) *did.Doc {
	return did.NewDoc(pw.MyDID, []string{pw.MyVerKey}, routingKeys, endpoint)
}

// NewRequest builds the connection request to the invitation. The thread
// depends on the invitation flavor, see Invitation.RequestThread.
func NewRequest(inv Invitation, label string, pw PairwiseInfo, routingKeys []string, endpoint string) *stdconn.Request {
	req := &stdconn.Request{
		Threaded: aries.NewThreaded(aries.KindConnectionRequest, "", ""),
		Label:    label,
		Connection: stdconn.Connection{
			DID:    pw.MyDID,
			DIDDoc: NewDoc(pw, routingKeys, endpoint),
		},
	}
	req.SetThread(inv.RequestThread(req.ID))
	return req
}

// RequestThreadID returns the thread ID of the request: thid or the
// request's own ID.
func RequestThreadID(req *stdconn.Request) string {
	thid, _ := aries.ThreadID(req)
	return thid
}

// NewResponse builds the unsigned response to the request.
func NewResponse(req *stdconn.Request, pw PairwiseInfo, routingKeys []string, endpoint string) *stdconn.Response {
	return &stdconn.Response{
		ID:     utils.UUID(),
		Thread: decorator.NewThread(RequestThreadID(req), aries.ParentThreadID(req)),
		Connection: stdconn.Connection{
			DID:    pw.MyDID,
			DIDDoc: NewDoc(pw, routingKeys, endpoint),
		},
	}
}

// NewAck builds the ack which completes the connection.
func NewAck(thid string) *common.Ack {
	ack := common.NewAck(aries.KindAck, thid)
	return &ack
}

// NewProblemReport builds the connection problem report.
func NewProblemReport(thid, code, explain string) *stdconn.ProblemReport {
	return stdconn.NewProblemReport(thid, code, explain)
}

// TheirDoc returns the validated DID doc of the other end.
func TheirDoc(c stdconn.Connection) (*did.Doc, error) {
	if c.DIDDoc == nil {
		return nil, did.ErrInvalidDoc
	}
	if err := c.DIDDoc.Validate(); err != nil {
		return nil, err
	}
	return c.DIDDoc, nil
}

// SupportedProtocols are disclosed to the other end of the connection.
func SupportedProtocols() []discovery.ProtocolDescriptor {
	return []discovery.ProtocolDescriptor{
		{PID: pltype.Aries + "/" + pltype.ProtocolConnection + "/1.0",
			Roles: []string{"inviter", "invitee"}},
		{PID: pltype.Aries + "/" + pltype.ProtocolTrustPing + "/1.0"},
		{PID: pltype.Aries + "/" + pltype.ProtocolNotification + "/1.0"},
		{PID: pltype.Aries + "/" + pltype.ProtocolDiscoverFeatures + "/1.0"},
		{PID: pltype.Aries + "/" + pltype.ProtocolBasicMessage + "/1.0"},
		{PID: pltype.Aries + "/" + pltype.ProtocolIssueCredential + "/1.0",
			Roles: []string{"issuer", "holder"}},
		{PID: pltype.Aries + "/" + pltype.ProtocolPresentProof + "/1.0",
			Roles: []string{"verifier", "prover"}},
		{PID: pltype.DIDOrgAries + "/" + pltype.ProtocolOutOfBand + "/" + pltype.OutOfBandVersion,
			Roles: []string{"sender", "receiver"}},
	}
}

// AnswerPing sends the ping response if the ping asks it.
func AnswerPing(ctx context.Context, ping *trustping.Ping, pw PairwiseInfo, theirDoc *did.Doc, send SendFunc) (err error) {
	defer err2.Handle(&err, "answer ping")

	if !ping.ResponseRequested {
		glog.V(3).Infoln("ping without response request:", ping.ID)
		return nil
	}
	if send == nil {
		return core.InvalidState("send function missing")
	}
	return send(ctx, trustping.NewResponse(ping), pw.MyVerKey, theirDoc)
}

// AnswerQuery discloses our protocols matching the query.
func AnswerQuery(ctx context.Context, q *discovery.Query, pw PairwiseInfo, theirDoc *did.Doc, send SendFunc) (err error) {
	defer err2.Handle(&err, "answer query")

	if send == nil {
		return core.InvalidState("send function missing")
	}
	return send(ctx, discovery.NewDisclose(q, SupportedProtocols()), pw.MyVerKey, theirDoc)
}

// AnswerReuse accepts the reuse of the connection in the thread of the reuse.
func AnswerReuse(ctx context.Context, reuse *outofband.HandshakeReuse, pw PairwiseInfo, theirDoc *did.Doc, send SendFunc) (err error) {
	defer err2.Handle(&err, "answer handshake reuse")

	if send == nil {
		return core.InvalidState("send function missing")
	}
	return send(ctx, outofband.NewHandshakeReuseAccepted(reuse), pw.MyVerKey, theirDoc)
}

// TrySend sends the best effort message. The error is only logged.
func TrySend(ctx context.Context, send SendFunc, msg aries.Message, senderVerKey string, theirDoc *did.Doc) {
	if send == nil {
		glog.Warningln("no send function for", msg.Kind())
		return
	}
	if err := send(ctx, msg, senderVerKey, theirDoc); err != nil {
		glog.Errorf("best effort send %s: %v", msg.Kind(), err)
	}
}
