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

type InviteeInitial struct {
	Conn
}

type InviteeInvited struct {
	Conn
	Invitation connection.Invitation `json:"invitation"`
}

type InviteeRequested struct {
	Conn
	Request      *stdconn.Request `json:"request"`
	BootstrapDoc *did.Doc         `json:"bootstrap_did_doc"`
}

type InviteeResponded struct {
	Conn
	Response *stdconn.Response `json:"response"`
}

func NewInvitee(sourceID string, pw connection.PairwiseInfo) InviteeInitial {
	return InviteeInitial{Conn: Conn{SourceID: sourceID, Pairwise: pw}}
}

func (s InviteeInitial) HandleInvitation(msg aries.Message) (_ InviteeInvited, err error) {
	defer err2.Handle(&err, "direct invitee %s: invitation", s.SourceID)

	inv := try.To1(connection.InvitationFrom(msg))
	c := s.Conn
	c.ThreadID = inv.ID()
	return InviteeInvited{Conn: c, Invitation: inv}, nil
}

// SendRequest sends the connection request to the inviter's bootstrap doc.
func (s InviteeInvited) SendRequest(
	ctx context.Context,
	resolver connection.DocResolver,
	routingKeys []string,
	endpoint string,
	send connection.SendFunc,
) (
	_ InviteeRequested,
	err error,
) {
	defer err2.Handle(&err, "direct invitee %s: send request", s.SourceID)

	if send == nil {
		return InviteeRequested{}, core.InvalidState("send function missing")
	}
	doc := try.To1(s.Invitation.BootstrapDoc(ctx, resolver))
	req := connection.NewRequest(s.Invitation, s.SourceID, s.Pairwise, routingKeys, endpoint)
	try.To(send(ctx, req, s.Pairwise.MyVerKey, doc))

	c := s.Conn
	c.ThreadID = connection.RequestThreadID(req)
	return InviteeRequested{Conn: c, Request: req, BootstrapDoc: doc}, nil
}

// HandleResponse verifies the response against the bootstrap doc's key.
func (s InviteeRequested) HandleResponse(
	ctx context.Context,
	w core.Wallet,
	resp *stdconn.SignedResponse,
) (
	_ InviteeResponded,
	err error,
) {
	defer err2.Handle(&err, "direct invitee %s: response", s.SourceID)

	try.To(fsm.CheckThread(s.ThreadID, resp))
	response := try.To1(stdconn.Verify(ctx, w, resp, s.BootstrapDoc.RecipientKeys()[0]))
	try.To1(connection.TheirDoc(response.Connection))

	glog.V(1).Infof("direct invitee %s: response from %s", s.SourceID, response.Connection.DID)
	return InviteeResponded{Conn: s.Conn, Response: response}, nil
}

// SendAck completes the connection.
func (s InviteeResponded) SendAck(ctx context.Context, send connection.SendFunc) (_ Completed, err error) {
	defer err2.Handle(&err, "direct invitee %s: send ack", s.SourceID)

	if send == nil {
		return Completed{}, core.InvalidState("send function missing")
	}
	theirDoc := s.Response.Connection.DIDDoc
	try.To(send(ctx, connection.NewAck(s.ThreadID), s.Pairwise.MyVerKey, theirDoc))
	return Completed{Conn: s.Conn, TheirDIDDoc: theirDoc}, nil
}
