/*
Package inviter is the inviter side of the connections/1.0 protocol state
machine. The state machine is a value: every transition returns a new *SM
and leaves the receiver untouched, which lets the caller keep the previous
state when a transition fails.

	Initial -> Invited -> Requested -> Responded -> Completed
	   ^          |           |            |
	   +----------+-----------+------------+  problem report
*/
package inviter

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

// New creates the inviter to Initial state. The pairwise info is the key
// of the invitation, or our public DID when we are invited by it.
func New(sourceID string, pw connection.PairwiseInfo) *SM {
	return &SM{
		sourceID: sourceID,
		pairwise: pw,
		state:    &Initial{},
	}
}

func (sm *SM) next(s State) *SM {
	glog.V(1).Infof("inviter %s: %s -> %s", sm.sourceID, sm.state.Name(), s.Name())
	n := *sm
	n.state = s
	return &n
}

// CreateInvitation moves from Initial to Invited. The invitation's ID is the
// thread ID. In other states it does nothing, which makes repeated calls
// harmless.
func (sm *SM) CreateInvitation(routingKeys []string, endpoint string) *SM {
	if _, ok := sm.state.(*Initial); !ok {
		glog.V(3).Infof("inviter %s: invitation already created (%s)",
			sm.sourceID, sm.state.Name())
		return sm
	}
	inv := connection.NewPairwiseInvitation(sm.sourceID, sm.pairwise, routingKeys, endpoint)
	n := sm.next(&Invited{Invitation: inv})
	n.threadID = inv.ID
	return n
}

// HandleConnectionRequest validates the request and builds the signed
// response. The response is signed with the key of the invitation and we
// move to the new pairwise. If their DID doc is invalid, a problem report is
// sent best effort and we go back to Initial. The request is legal only in
// Initial and Invited.
func (sm *SM) HandleConnectionRequest(
	ctx context.Context,
	w core.Wallet,
	req *stdconn.Request,
	newPairwise connection.PairwiseInfo,
	newRoutingKeys []string,
	newEndpoint string,
	send connection.SendFunc,
) (
	_ *SM,
	err error,
) {
	defer err2.Handle(&err, "inviter %s: connection request", sm.sourceID)

	switch sm.state.(type) {
	case *Initial, *Invited:
	default:
		glog.Warningf("inviter %s: connection request ignored in %s",
			sm.sourceID, sm.state.Name())
		return sm, nil
	}

	thid := connection.RequestThreadID(req)
	theirDoc, docErr := connection.TheirDoc(req.Connection)
	if docErr != nil {
		glog.Warningf("inviter %s: invalid request: %v", sm.sourceID, docErr)
		pr := connection.NewProblemReport(thid, common.CodeRequestNotAccepted, docErr.Error())
		connection.TrySend(ctx, send, pr, sm.pairwise.MyVerKey, req.Connection.DIDDoc)
		return sm.next(&Initial{ProblemReport: pr}), nil
	}

	response := connection.NewResponse(req, newPairwise, newRoutingKeys, newEndpoint)
	signed := try.To1(stdconn.Sign(ctx, w, response, sm.pairwise.MyVerKey))

	n := sm.next(&Requested{
		Request:        req,
		SignedResponse: signed,
		TheirDIDDoc:    theirDoc,
	})
	n.threadID = thid
	n.pairwise = newPairwise
	return n, nil
}

// HandleSendResponse sends the signed response built in Requested.
func (sm *SM) HandleSendResponse(ctx context.Context, send connection.SendFunc) (_ *SM, err error) {
	defer err2.Handle(&err, "inviter %s: send response", sm.sourceID)

	s, ok := sm.state.(*Requested)
	if !ok {
		glog.Warningf("inviter %s: no response to send in %s", sm.sourceID, sm.state.Name())
		return sm, nil
	}
	if send == nil {
		return nil, core.InvalidState("send function missing")
	}
	try.To(send(ctx, s.SignedResponse, sm.pairwise.MyVerKey, s.TheirDIDDoc))

	return sm.next(&Responded{
		SignedResponse: s.SignedResponse,
		TheirDIDDoc:    s.TheirDIDDoc,
	}), nil
}

// HandleConfirmationMessage completes the connection when ack or ping
// arrives in Responded. The thread is checked first in every state.
func (sm *SM) HandleConfirmationMessage(msg aries.Message) (_ *SM, err error) {
	defer err2.Handle(&err, "inviter %s: confirmation", sm.sourceID)

	try.To(fsm.CheckThread(sm.threadID, msg))

	s, ok := sm.state.(*Responded)
	if !ok {
		return sm, nil
	}
	switch msg.Kind() {
	case aries.KindAck, aries.KindPing:
		return sm.next(&Completed{TheirDIDDoc: s.TheirDIDDoc}), nil
	}
	glog.Warningf("inviter %s: %s doesn't confirm connection", sm.sourceID, msg.Kind())
	return sm, nil
}

// HandleProblemReport aborts the connection attempt. The report is kept in
// Initial.
func (sm *SM) HandleProblemReport(pr *stdconn.ProblemReport) (_ *SM, err error) {
	defer err2.Handle(&err, "inviter %s: problem report", sm.sourceID)

	switch sm.state.(type) {
	case *Invited:
		// the request which failed started its own thread
	case *Requested, *Responded:
		try.To(fsm.CheckThread(sm.threadID, pr))
	default:
		return sm, nil
	}
	glog.V(1).Infof("inviter %s: problem report: %s", sm.sourceID, pr.Explain())
	return sm.next(&Initial{ProblemReport: pr}), nil
}

// HandleDisclose stores the protocols of the other end.
func (sm *SM) HandleDisclose(d *discovery.Disclose) *SM {
	s, ok := sm.state.(*Completed)
	if !ok {
		return sm
	}
	return sm.next(&Completed{TheirDIDDoc: s.TheirDIDDoc, Protocols: d.Protocols})
}

// HandleTrustPing answers to the ping if it's asked. In Responded the ping
// confirms the connection first.
func (sm *SM) HandleTrustPing(ctx context.Context, ping *trustping.Ping, send connection.SendFunc) (_ *SM, err error) {
	defer err2.Handle(&err, "inviter %s: ping", sm.sourceID)

	n := sm
	if _, ok := sm.state.(*Responded); ok {
		n = try.To1(sm.HandleConfirmationMessage(ping))
	}
	s, ok := n.state.(*Completed)
	if !ok {
		return sm, nil
	}
	try.To(connection.AnswerPing(ctx, ping, n.pairwise, s.TheirDIDDoc, send))
	return n, nil
}

// HandleHandshakeReuse accepts the reuse of the completed connection.
// In the other states the reuse is ignored.
func (sm *SM) HandleHandshakeReuse(ctx context.Context, reuse *outofband.HandshakeReuse, send connection.SendFunc) (_ *SM, err error) {
	defer err2.Handle(&err, "inviter %s: handshake reuse", sm.sourceID)

	s, ok := sm.state.(*Completed)
	if !ok {
		glog.Warningf("inviter %s: handshake reuse illegal in %s", sm.sourceID, sm.state.Name())
		return sm, nil
	}
	try.To(connection.AnswerReuse(ctx, reuse, sm.pairwise, s.TheirDIDDoc, send))
	return sm, nil
}

// HandleDiscoveryQuery discloses our protocols in Completed.
func (sm *SM) HandleDiscoveryQuery(ctx context.Context, q *discovery.Query, send connection.SendFunc) (_ *SM, err error) {
	defer err2.Handle(&err, "inviter %s: discovery query", sm.sourceID)

	s, ok := sm.state.(*Completed)
	if !ok {
		return sm, nil
	}
	try.To(connection.AnswerQuery(ctx, q, sm.pairwise, s.TheirDIDDoc, send))
	return sm, nil
}

var table = fsm.Table{
	StateInvited: {Kinds: []aries.Kind{
		aries.KindConnectionRequest,
		aries.KindConnectionProblemReport,
	}},
	StateResponded: {Kinds: []aries.Kind{
		aries.KindAck,
		aries.KindPing,
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
func (sm *SM) Invitation() *stdconn.PairwiseInvitation {
	if s, ok := sm.state.(*Invited); ok {
		return s.Invitation
	}
	return nil
}

func (sm *SM) TheirDIDDoc() *did.Doc {
	switch s := sm.state.(type) {
	case *Requested:
		return s.TheirDIDDoc
	case *Responded:
		return s.TheirDIDDoc
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
	defer err2.Handle(&err, "inviter marshal")

	env := try.To1(fsm.NewEnvelope(sm.sourceID, sm.threadID, sm.state))
	return try.To1(json.Marshal(smJSON{Envelope: env, PairwiseInfo: sm.pairwise})), nil
}

func (sm *SM) UnmarshalJSON(data []byte) (err error) {
	defer err2.Handle(&err, "inviter unmarshal")

	var v smJSON
	if json.Unmarshal(data, &v) != nil {
		return core.InvalidJSON("inviter state machine")
	}
	*sm = SM{
		sourceID: v.SourceID,
		threadID: v.ThreadID,
		pairwise: v.PairwiseInfo,
		state:    try.To1(fsm.StateOf(v.Envelope, states)),
	}
	return nil
}
