/*
Package prover is the prover side of the present-proof/1.0 protocol state
machine.

	Initial -> PresentationProposalSent -> PresentationRequestReceived
	PresentationRequestReceived -> PresentationPrepared -> PresentationSent -> Finished
	PresentationRequestReceived -> PresentationPreparationFailed -> Finished

The failed preparation is kept apart from the failed presentation: from
PresentationPreparationFailed nothing but the problem report was ever sent.
*/
package prover

import (
	"context"
	"errors"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/agent/fsm"
	"github.com/findy-network/findy-aries-fsm/core"
	"github.com/findy-network/findy-aries-fsm/protocol/presentproof"
	"github.com/findy-network/findy-aries-fsm/std/common"
	stdpp "github.com/findy-network/findy-aries-fsm/std/presentproof"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

type SM struct {
	sourceID string
	threadID string
	state    State
}

// Deps are the capabilities of the prover's transitions.
type Deps struct {
	Anoncreds core.Prover
	Ledger    core.LedgerReader
	Send      fsm.Sender
}

func New(sourceID string) *SM {
	return &SM{sourceID: sourceID, state: &Initial{}}
}

// FromRequest creates the prover from the verifier's request. The thread ID
// is the request's thread.
func FromRequest(sourceID string, req *stdpp.Request) *SM {
	sm := New(sourceID)
	sm.threadID, _ = aries.ThreadID(req)
	sm.state = &PresentationRequestReceived{Request: req}
	return sm
}

func (sm *SM) next(s State) *SM {
	glog.V(1).Infof("prover %s: %s -> %s", sm.sourceID, sm.state.Name(), s.Name())
	n := *sm
	n.state = s
	return &n
}

// Step runs the event. Events which aren't legal in the current state are
// ignored and the state machine is returned as is.
func (sm *SM) Step(ctx context.Context, ev Event, deps Deps) (_ *SM, err error) {
	defer err2.Handle(&err, "prover %s: %s", sm.sourceID, sm.state.Name())

	switch s := sm.state.(type) {
	case *Initial:
		if e, ok := ev.(PresentationProposalSend); ok {
			return sm.sendProposal(ctx, e.Comment, e.Preview, deps.Send)
		}
	case *PresentationProposalSent:
		if e, ok := ev.(Inbound); ok {
			return sm.handleRequest(e.Msg)
		}
	case *PresentationRequestReceived:
		switch e := ev.(type) {
		case PreparePresentation:
			return sm.prepare(ctx, s.Request, e, deps)
		case SetPresentation:
			return sm.next(&PresentationPrepared{Request: s.Request, Proof: e.Proof}), nil
		case RejectPresentationRequest:
			return sm.reject(ctx, e.Reason, deps.Send), nil
		case ProposePresentation:
			return sm.sendProposal(ctx, e.Comment, e.Preview, deps.Send)
		}
	case *PresentationPreparationFailed:
		switch e := ev.(type) {
		case SendPresentation:
			if deps.Send == nil {
				return nil, core.InvalidState("send function missing")
			}
			fsm.TrySend(ctx, deps.Send, s.ProblemReport)
			return sm.next(&Finished{Status: fsm.StatusFailed, ProblemReport: s.ProblemReport}), nil
		case RejectPresentationRequest:
			return sm.reject(ctx, e.Reason, deps.Send), nil
		}
	case *PresentationPrepared:
		switch e := ev.(type) {
		case SendPresentation:
			return sm.sendPresentation(ctx, s, deps.Send)
		case RejectPresentationRequest:
			return sm.reject(ctx, e.Reason, deps.Send), nil
		case ProposePresentation:
			return sm.sendProposal(ctx, e.Comment, e.Preview, deps.Send)
		}
	case *PresentationSent:
		if e, ok := ev.(Inbound); ok {
			return sm.handleAck(s, e.Msg)
		}
	case *Finished:
		glog.V(1).Infof("prover %s: finished, %T ignored", sm.sourceID, ev)
		return sm, nil
	}
	glog.Warningf("prover %s: %T illegal in %s", sm.sourceID, ev, sm.state.Name())
	return sm, nil
}

// sendProposal starts a new thread from Initial, the counter proposal stays
// in the request's thread.
func (sm *SM) sendProposal(ctx context.Context, comment string, preview *stdpp.Preview, send fsm.Sender) (*SM, error) {
	if send == nil {
		return nil, core.InvalidState("send function missing")
	}
	p := stdpp.NewPropose(sm.threadID, comment, preview)
	try.To(send(ctx, p))

	n := sm.next(&PresentationProposalSent{Proposal: p})
	n.threadID, _ = aries.ThreadID(p)
	return n, nil
}

func (sm *SM) handleRequest(m aries.Message) (*SM, error) {
	try.To(fsm.CheckThread(sm.threadID, m))

	if pr, ok := presentproof.ProblemReport(m); ok {
		glog.V(1).Infof("prover %s: problem report: %s", sm.sourceID, pr.Explain())
		return sm.next(&Finished{Status: fsm.StatusFailed, ProblemReport: pr}), nil
	}
	if req, ok := m.(*stdpp.Request); ok {
		return sm.next(&PresentationRequestReceived{Request: req}), nil
	}
	glog.Warningf("prover %s: %s illegal in %s", sm.sourceID, m.Kind(), sm.state.Name())
	return sm, nil
}

// prepare builds the proof. Failures of the capabilities are not returned,
// they are kept in the problem report SendPresentation sends.
func (sm *SM) prepare(ctx context.Context, req *stdpp.Request, e PreparePresentation, deps Deps) (*SM, error) {
	if deps.Anoncreds == nil || deps.Ledger == nil {
		return nil, core.InvalidState("prover capabilities missing")
	}
	proofReq, err := req.Data()
	if err != nil {
		return nil, core.InvalidJSON("request attachment: %v", err)
	}
	proof, err := prepare(ctx, string(proofReq), e.Credentials, e.SelfAttested, deps)
	if err != nil {
		glog.Errorf("prover %s: %v", sm.sourceID, err)
		code := common.CodeRequestProcessing
		if errors.Is(err, core.ErrInvalidJSON) {
			code = common.CodeRequestNotAccepted
		}
		return sm.next(&PresentationPreparationFailed{
			Request:       req,
			ProblemReport: stdpp.NewProblemReport(sm.threadID, code, err.Error()),
		}), nil
	}
	return sm.next(&PresentationPrepared{Request: req, Proof: proof}), nil
}

func (sm *SM) sendPresentation(ctx context.Context, s *PresentationPrepared, send fsm.Sender) (*SM, error) {
	if send == nil {
		return nil, core.InvalidState("send function missing")
	}
	p := stdpp.NewPresentation(sm.threadID, []byte(s.Proof))
	if err := send(ctx, p); err != nil {
		glog.Errorf("prover %s: send presentation: %v", sm.sourceID, err)
		pr := stdpp.NewProblemReport(sm.threadID, common.CodeInternal, err.Error())
		fsm.TrySend(ctx, send, pr)
		return sm.next(&Finished{Status: fsm.StatusFailed, ProblemReport: pr}), nil
	}
	return sm.next(&PresentationSent{Request: s.Request, Presentation: p}), nil
}

func (sm *SM) reject(ctx context.Context, reason string, send fsm.Sender) *SM {
	pr := stdpp.NewProblemReport(sm.threadID, common.CodeRejected, reason)
	fsm.TrySend(ctx, send, pr)
	return sm.next(&Finished{Status: fsm.StatusDeclined, ProblemReport: pr})
}

func (sm *SM) handleAck(s *PresentationSent, m aries.Message) (*SM, error) {
	try.To(fsm.CheckThread(sm.threadID, m))

	if pr, ok := presentproof.ProblemReport(m); ok {
		glog.V(1).Infof("prover %s: problem report: %s", sm.sourceID, pr.Explain())
		return sm.next(&Finished{
			Status:        fsm.StatusFailed,
			Presentation:  s.Presentation,
			ProblemReport: pr,
		}), nil
	}
	if _, ok := m.(*stdpp.Ack); ok {
		return sm.next(&Finished{Status: fsm.StatusSuccess, Presentation: s.Presentation}), nil
	}
	glog.Warningf("prover %s: %s illegal in %s", sm.sourceID, m.Kind(), sm.state.Name())
	return sm, nil
}

// RetrieveCredentials returns the wallet's credentials which match the
// received request.
func (sm *SM) RetrieveCredentials(ctx context.Context, ac core.Prover) (_ string, err error) {
	defer err2.Handle(&err, "prover %s: retrieve credentials", sm.sourceID)

	req := sm.Request()
	if req == nil {
		return "", core.NotReady("no presentation request in %s", sm.state.Name())
	}
	proofReq, err := req.Data()
	if err != nil {
		return "", core.InvalidJSON("request attachment: %v", err)
	}
	return try.To1(ac.ProverGetCredentialsForProofReq(ctx, string(proofReq))), nil
}

var table = fsm.Table{
	StatePresentationProposalSent: {Kinds: append([]aries.Kind{
		aries.KindPresentationRequest,
	}, presentproof.ProblemReportKinds...), Threaded: true},
	StatePresentationSent: {Kinds: append([]aries.Kind{
		aries.KindPresentationAck,
	}, presentproof.ProblemReportKinds...), Threaded: true},
}

// FindMessageToHandle returns at most one message of the batch which the
// prover can handle in its current state.
func (sm *SM) FindMessageToHandle(msgs map[string]aries.Message) (string, aries.Message, bool) {
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

func (sm *SM) IsTerminalState() bool {
	_, ok := sm.state.(*Finished)
	return ok
}

func (sm *SM) PresentationStatus() int {
	if s, ok := sm.state.(*Finished); ok {
		return s.Status.Code()
	}
	return fsm.StatusUndefined.Code()
}

// Request returns the verifier's request when the prover has one.
func (sm *SM) Request() *stdpp.Request {
	switch s := sm.state.(type) {
	case *PresentationRequestReceived:
		return s.Request
	case *PresentationPreparationFailed:
		return s.Request
	case *PresentationPrepared:
		return s.Request
	case *PresentationSent:
		return s.Request
	}
	return nil
}

func (sm *SM) Presentation() *stdpp.Presentation {
	switch s := sm.state.(type) {
	case *PresentationSent:
		return s.Presentation
	case *Finished:
		return s.Presentation
	}
	return nil
}

func (sm *SM) ProblemReport() *stdpp.ProblemReport {
	switch s := sm.state.(type) {
	case *PresentationPreparationFailed:
		return s.ProblemReport
	case *Finished:
		return s.ProblemReport
	}
	return nil
}

func (sm *SM) MarshalJSON() ([]byte, error) {
	return fsm.Marshal(sm.sourceID, sm.threadID, sm.state)
}

func (sm *SM) UnmarshalJSON(data []byte) error {
	sourceID, threadID, s, err := fsm.Unmarshal(data, states)
	if err != nil {
		return err
	}
	*sm = SM{sourceID: sourceID, threadID: threadID, state: s}
	return nil
}
