/*
Package invitee is the invitee side of the connections/1.0 protocol state
machine. Like the inviter, every transition returns a new *SM.

	Initial -> Invited -> Requested -> Responded -> Completed

Unlike the inviter, the invitee falls back to Initial when the response
doesn't verify or the ack cannot be sent.
*/
package invitee

import (
	"context"
	"encoding/json"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/agent/fsm"
	"github.com/findy-network/findy-aries-fsm/core"
	"github.com/findy-network/findy-aries-fsm/protocol/connection"
	"github.com/findy-network/findy-aries-fsm/std/common"
	stdconn "github.com/findy-network/findy-aries-fsm/std/connection"
	"github.com/findy-network/findy-aries-fsm/std/did"
	"github.com/findy-network/findy-aries-fsm/std/discovery"
	"github.com/findy-network/findy-aries-fsm/std/outofband"
	"github.com/findy-network/findy-aries-fsm/std/trustping"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

type SM struct {
	sourceID string
	threadID string
	pairwise connection.PairwiseInfo
	state    State
}

// New creates the invitee to Initial state. The pairwise info is our end
// of the new connection.
func New(sourceID string, pw connection.PairwiseInfo) *SM {
	return &SM{
		sourceID: sourceID,
		pairwise: pw,
		state:    &Initial{},
	}
}

func (sm *SM) next(s State) *SM {
	glog.V(1).Infof("invitee %s: %s -> %s", sm.sourceID, sm.state.Name(), s.Name())
	n := *sm
	n.state = s
	return &n
}

// HandleInvitation accepts the invitation in Initial. The message can be a
// pairwise, public or out-of-band invitation.
func (sm *SM) HandleInvitation(msg aries.Message) (_ *SM, err error) {
	defer err2.Handle(&err, "invitee %s: invitation", sm.sourceID)

	if _, ok := sm.state.(*Initial); !ok {
		return nil, core.NotReady("invitation in %s", sm.state.Name())
	}
	inv := try.To1(connection.InvitationFrom(msg))

	n := sm.next(&Invited{Invitation: inv})
	n.threadID = inv.ID()
	return n, nil
}

// SendConnectionRequest sends the request to the inviter. The thread of the
// request depends on the invitation, and it's the thread ID from now on.
func (sm *SM) SendConnectionRequest(
	ctx context.Context,
	resolver connection.DocResolver,
	routingKeys []string,
	endpoint string,
	send connection.SendFunc,
) (
	_ *SM,
	err error,
) {
	defer err2.Handle(&err, "invitee %s: send request", sm.sourceID)

	s, ok := sm.state.(*Invited)
	if !ok {
		return nil, core.NotReady("connection request in %s", sm.state.Name())
	}
	if send == nil {
		return nil, core.InvalidState("send function missing")
	}
	bootstrapDoc := try.To1(s.Invitation.BootstrapDoc(ctx, resolver))
	req := connection.NewRequest(s.Invitation, sm.sourceID, sm.pairwise, routingKeys, endpoint)
	try.To(send(ctx, req, sm.pairwise.MyVerKey, bootstrapDoc))

	n := sm.next(&Requested{Request: req, BootstrapDoc: bootstrapDoc})
	n.threadID = connection.RequestThreadID(req)
	return n, nil
}

// HandleConnectionResponse verifies the response against the invitation's
// key. A response which doesn't verify or carries an invalid DID doc takes
// us back to Initial with a problem report.
func (sm *SM) HandleConnectionResponse(
	ctx context.Context,
	w core.Wallet,
	resp *stdconn.SignedResponse,
) (
	_ *SM,
	err error,
) {
	defer err2.Handle(&err, "invitee %s: connection response", sm.sourceID)

	s, ok := sm.state.(*Requested)
	if !ok {
		glog.Warningf("invitee %s: response ignored in %s", sm.sourceID, sm.state.Name())
		return sm, nil
	}
	try.To(fsm.CheckThread(sm.threadID, resp))

	response, verifyErr := stdconn.Verify(ctx, w, resp, s.BootstrapDoc.RecipientKeys()[0])
	if verifyErr == nil {
		_, verifyErr = connection.TheirDoc(response.Connection)
	}
	if verifyErr != nil {
		glog.Warningf("invitee %s: invalid response: %v", sm.sourceID, verifyErr)
		return sm.next(&Initial{ProblemReport: connection.NewProblemReport(
			sm.threadID, common.CodeResponseProcess, verifyErr.Error())}), nil
	}
	return sm.next(&Responded{Response: response, BootstrapDoc: s.BootstrapDoc}), nil
}

// HandleSendAck completes the connection by sending the ack. If the ack
// cannot be sent, we go back to Initial with a problem report.
func (sm *SM) HandleSendAck(ctx context.Context, send connection.SendFunc) (_ *SM, err error) {
	defer err2.Handle(&err, "invitee %s: send ack", sm.sourceID)

	s, ok := sm.state.(*Responded)
	if !ok {
		glog.Warningf("invitee %s: no ack to send in %s", sm.sourceID, sm.state.Name())
		return sm, nil
	}
	if send == nil {
		return nil, core.InvalidState("send function missing")
	}
	theirDoc := s.Response.Connection.DIDDoc
	if sendErr := send(ctx, connection.NewAck(sm.threadID), sm.pairwise.MyVerKey, theirDoc); sendErr != nil {
		glog.Errorf("invitee %s: ack send: %v", sm.sourceID, sendErr)
		return sm.next(&Initial{ProblemReport: connection.NewProblemReport(
			sm.threadID, common.CodeResponseProcess, sendErr.Error())}), nil
	}
	return sm.next(&Completed{TheirDIDDoc: theirDoc, BootstrapDoc: s.BootstrapDoc}), nil
}

// HandleProblemReport aborts the connection attempt.
func (sm *SM) HandleProblemReport(pr *stdconn.ProblemReport) (_ *SM, err error) {
	defer err2.Handle(&err, "invitee %s: problem report", sm.sourceID)

	switch sm.state.(type) {
	case *Invited:
	case *Requested:
		try.To(fsm.CheckThread(sm.threadID, pr))
	default:
		return sm, nil
	}
	glog.V(1).Infof("invitee %s: problem report: %s", sm.sourceID, pr.Explain())
	return sm.next(&Initial{ProblemReport: pr}), nil
}

// HandleDisclose stores the protocols of the other end.
func (sm *SM) HandleDisclose(d *discovery.Disclose) *SM {
	s, ok := sm.state.(*Completed)
	if !ok {
		return sm
	}
	return sm.next(&Completed{
		TheirDIDDoc:  s.TheirDIDDoc,
		BootstrapDoc: s.BootstrapDoc,
		Protocols:    d.Protocols,
	})
}

// HandleTrustPing answers to the ping in Completed if it's asked.
func (sm *SM) HandleTrustPing(ctx context.Context, ping *trustping.Ping, send connection.SendFunc) (_ *SM, err error) {
	defer err2.Handle(&err, "invitee %s: ping", sm.sourceID)

	s, ok := sm.state.(*Completed)
	if !ok {
		return sm, nil
	}
	try.To(connection.AnswerPing(ctx, ping, sm.pairwise, s.TheirDIDDoc, send))
	return sm, nil
}

// HandleHandshakeReuse accepts the reuse of the completed connection.
// In the other states the reuse is ignored.
func (sm *SM) HandleHandshakeReuse(ctx context.Context, reuse *outofband.HandshakeReuse, send connection.SendFunc) (_ *SM, err error) {
	defer err2.Handle(&err, "invitee %s: handshake reuse", sm.sourceID)

	s, ok := sm.state.(*Completed)
	if !ok {
		glog.Warningf("invitee %s: handshake reuse illegal in %s", sm.sourceID, sm.state.Name())
		return sm, nil
	}
	try.To(connection.AnswerReuse(ctx, reuse, sm.pairwise, s.TheirDIDDoc, send))
	return sm, nil
}

// HandleDiscoveryQuery discloses our protocols in Completed.
func (sm *SM) HandleDiscoveryQuery(ctx context.Context, q *discovery.Query, send connection.SendFunc) (_ *SM, err error) {
	defer err2.Handle(&err, "invitee %s: discovery query", sm.sourceID)

	s, ok := sm.state.(*Completed)
	if !ok {
		return sm, nil
	}
	try.To(connection.AnswerQuery(ctx, q, sm.pairwise, s.TheirDIDDoc, send))
	return sm, nil
}

var table = fsm.Table{
	StateRequested: {Kinds: []aries.Kind{
		aries.KindConnectionResponse,
		aries.KindConnectionProblemReport,
	}, Threaded: true},
}

// CanProgressState tells if the message is legal in the current state.
func (sm *SM) CanProgressState(msg aries.Message) bool {
	return table.Accepts(sm.state.Name(), sm.threadID, msg)
}

// FindMessageToUpdateState returns at most one message which can progress
// the state. The winner of many candidates is unspecified.
func (sm *SM) FindMessageToUpdateState(msgs map[string]aries.Message) (string, aries.Message, bool) {
	return table.Find(sm.state.Name(), sm.threadID, msgs)
}

func (sm *SM) State() State {
	return sm.state
}

func (sm *SM) StateName() string {
	return sm.state.Name()
}

func (sm *SM) SourceID() string {
	return sm.sourceID
}

func (sm *SM) ThreadID() string {
	return sm.threadID
}

func (sm *SM) PairwiseInfo() connection.PairwiseInfo {
	return sm.pairwise
}

func (sm *SM) IsInNullState() bool {
	_, ok := sm.state.(*Initial)
	return ok
}

func (sm *SM) IsInFinalState() bool {
	_, ok := sm.state.(*Completed)
	return ok
}

// IsTerminalState is IsInFinalState for the store. Completed still answers
// to trust pings and discovery queries.
func (sm *SM) IsTerminalState() bool {
	return sm.IsInFinalState()
}

// Invitation returns the invitation in Invited.
func (sm *SM) Invitation() *connection.Invitation {
	if s, ok := sm.state.(*Invited); ok {
		return &s.Invitation
	}
	return nil
}

// BootstrapDoc returns the inviter's doc which we got from the invitation.
func (sm *SM) BootstrapDoc() *did.Doc {
	switch s := sm.state.(type) {
	case *Requested:
		return s.BootstrapDoc
	case *Responded:
		return s.BootstrapDoc
	case *Completed:
		return s.BootstrapDoc
	}
	return nil
}

func (sm *SM) TheirDIDDoc() *did.Doc {
	switch s := sm.state.(type) {
	case *Responded:
		return s.Response.Connection.DIDDoc
	case *Completed:
		return s.TheirDIDDoc
	}
	return nil
}

// ProblemReport returns the report which aborted the connection.
func (sm *SM) ProblemReport() *stdconn.ProblemReport {
	if s, ok := sm.state.(*Initial); ok {
		return s.ProblemReport
	}
	return nil
}

func (sm *SM) RemoteProtocols() []discovery.ProtocolDescriptor {
	if s, ok := sm.state.(*Completed); ok {
		return s.Protocols
	}
	return nil
}

var states = fsm.Registry[State]{
	StateInitial:   func() State { return &Initial{} },
	StateInvited:   func() State { return &Invited{} },
	StateRequested: func() State { return &Requested{} },
	StateResponded: func() State { return &Responded{} },
	StateCompleted: func() State { return &Completed{} },
}

type smJSON struct {
	fsm.Envelope
	PairwiseInfo connection.PairwiseInfo `json:"pairwise_info"`
}

func (sm *SM) MarshalJSON() (d []byte, err error) {
	defer err2.Handle(&err, "invitee marshal")

	env := try.To1(fsm.NewEnvelope(sm.sourceID, sm.threadID, sm.state))
	return try.To1(json.Marshal(smJSON{Envelope: env, PairwiseInfo: sm.pairwise})), nil
}

func (sm *SM) UnmarshalJSON(data []byte) (err error) {
	defer err2.Handle(&err, "invitee unmarshal")

	var v smJSON
	if json.Unmarshal(data, &v) != nil {
		return core.InvalidJSON("invitee state machine")
	}
	*sm = SM{
		sourceID: v.SourceID,
		threadID: v.ThreadID,
		pairwise: v.PairwiseInfo,
		state:    try.To1(fsm.StateOf(v.Envelope, states)),
	}
	return nil
}
