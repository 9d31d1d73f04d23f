package direct

import (
	"context"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/agent/fsm"
	"github.com/findy-network/findy-aries-fsm/core"
	"github.com/findy-network/findy-aries-fsm/protocol/connection"
	stdconn "github.com/findy-network/findy-aries-fsm/std/connection"
	"github.com/findy-network/findy-aries-fsm/std/did"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

type InviterInitial struct {
	Conn
}

type InviterInvited struct {
	Conn
	Invitation *stdconn.PairwiseInvitation `json:"invitation"`
}

type InviterRequested struct {
	Conn
	SignedResponse *stdconn.SignedResponse `json:"signed_response"`
	TheirDIDDoc    *did.Doc                `json:"their_did_doc"`
}

type InviterResponded struct {
	Conn
	TheirDIDDoc *did.Doc `json:"their_did_doc"`
}

func NewInviter(sourceID string, pw connection.PairwiseInfo) InviterInitial {
	return InviterInitial{Conn: Conn{SourceID: sourceID, Pairwise: pw}}
}

// CreateInvitation mints the pairwise invitation. Its ID is the thread ID.
func (s InviterInitial) CreateInvitation(routingKeys []string, endpoint string) InviterInvited {
	inv := connection.NewPairwiseInvitation(s.SourceID, s.Pairwise, routingKeys, endpoint)
	c := s.Conn
	c.ThreadID = inv.ID
	return InviterInvited{Conn: c, Invitation: inv}
}

// HandleRequest validates their DID doc and signs the response with the
// invitation key. The new pairwise is our end of the connection from now
// on.
func (s InviterInvited) HandleRequest(
	ctx context.Context,
	w core.Wallet,
	req *stdconn.Request,
	newPairwise connection.PairwiseInfo,
	routingKeys []string,
	endpoint string,
) (
	_ InviterRequested,
	err error,
) {
	defer err2.Handle(&err, "direct inviter %s: request", s.SourceID)

	theirDoc := try.To1(connection.TheirDoc(req.Connection))
	resp := connection.NewResponse(req, newPairwise, routingKeys, endpoint)
	signed := try.To1(stdconn.Sign(ctx, w, resp, s.Pairwise.MyVerKey))

	glog.V(1).Infof("direct inviter %s: request from %s", s.SourceID, req.Connection.DID)
	return InviterRequested{
		Conn: Conn{
			SourceID: s.SourceID,
			ThreadID: connection.RequestThreadID(req),
			Pairwise: newPairwise,
		},
		SignedResponse: signed,
		TheirDIDDoc:    theirDoc,
	}, nil
}

// SendResponse sends the signed response from the new pairwise.
func (s InviterRequested) SendResponse(ctx context.Context, send connection.SendFunc) (_ InviterResponded, err error) {
	defer err2.Handle(&err, "direct inviter %s: send response", s.SourceID)

	if send == nil {
		return InviterResponded{}, core.InvalidState("send function missing")
	}
	try.To(send(ctx, s.SignedResponse, s.Pairwise.MyVerKey, s.TheirDIDDoc))
	return InviterResponded{Conn: s.Conn, TheirDIDDoc: s.TheirDIDDoc}, nil
}

// HandleConfirmation completes the connection with the ack or the trust
// ping of the invitee.
func (s InviterResponded) HandleConfirmation(msg aries.Message) (_ Completed, err error) {
	defer err2.Handle(&err, "direct inviter %s: confirmation", s.SourceID)

	try.To(fsm.CheckThread(s.ThreadID, msg))
	switch msg.Kind() {
	case aries.KindAck, aries.KindPing:
	default:
		return Completed{}, core.InvalidState("%s doesn't confirm connection", msg.Kind())
	}
	return Completed{Conn: s.Conn, TheirDIDDoc: s.TheirDIDDoc}, nil
}
