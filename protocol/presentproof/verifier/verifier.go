/*
Package verifier is the verifier side of the present-proof/1.0 protocol state
machine.

	Initial -> PresentationRequestSet       -> PresentationRequestSent -> Finished
	Initial -> PresentationProposalReceived -> PresentationRequestSent -> Finished

A proof which doesn't verify is a normal outcome of the protocol: the
verifier finishes successfully with the Revoked status. Only the failures to
run the verification finish the protocol as failed.
*/
package verifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/agent/fsm"
	"github.com/findy-network/findy-aries-fsm/core"
	"github.com/findy-network/findy-aries-fsm/protocol/presentproof"
	"github.com/findy-network/findy-aries-fsm/std/common"
	stdic "github.com/findy-network/findy-aries-fsm/std/issuecredential"
	stdpp "github.com/findy-network/findy-aries-fsm/std/presentproof"
	"github.com/findy-network/findy-common-go/dto"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

type SM struct {
	sourceID string
	threadID string
	state    State
}

// Deps are the capabilities of the verifier's transitions.
type Deps struct {
	Anoncreds core.Verifier
	Ledger    core.LedgerReader
	Send      fsm.Sender
}

func New(sourceID string) *SM {
	return &SM{sourceID: sourceID, state: &Initial{}}
}

// FromProposal creates the verifier from the prover's proposal.
func FromProposal(sourceID string, p *stdpp.Propose) *SM {
	return New(sourceID).receiveProposal(p)
}

func (sm *SM) next(s State) *SM {
	glog.V(1).Infof("verifier %s: %s -> %s", sm.sourceID, sm.state.Name(), s.Name())
	n := *sm
	n.state = s
	return &n
}

// Step runs the event. Events which aren't legal in the current state are
// ignored and the state machine is returned as is.
func (sm *SM) Step(ctx context.Context, ev Event, deps Deps) (_ *SM, err error) {
	defer err2.Handle(&err, "verifier %s: %s", sm.sourceID, sm.state.Name())

	switch s := sm.state.(type) {
	case *Initial:
		switch e := ev.(type) {
		case SetPresentationRequest:
			try.To1(presentproof.ParseProofRequest([]byte(e.ProofRequest)))
			return sm.next(&PresentationRequestSet{ProofRequest: e.ProofRequest}), nil
		case Inbound:
			if p, ok := e.Msg.(*stdpp.Propose); ok {
				return sm.receiveProposal(p), nil
			}
		}
	case *PresentationRequestSet:
		if e, ok := ev.(SendPresentationRequest); ok {
			return sm.sendRequest(ctx, s.ProofRequest, e.Comment, deps.Send)
		}
	case *PresentationProposalReceived:
		switch e := ev.(type) {
		case SetPresentationRequest:
			try.To1(presentproof.ParseProofRequest([]byte(e.ProofRequest)))
			return sm.next(&PresentationProposalReceived{
				Proposal:     s.Proposal,
				ProofRequest: e.ProofRequest,
			}), nil
		case SendPresentationRequest:
			if s.ProofRequest == "" {
				return nil, core.InvalidState("proof request not set")
			}
			return sm.sendRequest(ctx, s.ProofRequest, e.Comment, deps.Send)
		case RejectPresentationProposal:
			pr := stdpp.NewProblemReport(sm.threadID, common.CodeRejected, e.Reason)
			fsm.TrySend(ctx, deps.Send, pr)
			return sm.next(&Finished{Status: fsm.StatusDeclined, ProblemReport: pr}), nil
		}
	case *PresentationRequestSent:
		switch e := ev.(type) {
		case VerifyPresentation:
			try.To(fsm.CheckThread(sm.threadID, e.Presentation))
			return sm.verify(ctx, s, e.Presentation, deps)
		case Inbound:
			return sm.handleReply(ctx, s, e.Msg, deps)
		}
	case *Finished:
		glog.V(1).Infof("verifier %s: finished, %T ignored", sm.sourceID, ev)
		return sm, nil
	}
	glog.Warningf("verifier %s: %T illegal in %s", sm.sourceID, ev, sm.state.Name())
	return sm, nil
}

// receiveProposal starts or continues the thread of the proposal. The
// proposal's thread ID is the message ID if it has no ~thread.
func (sm *SM) receiveProposal(p *stdpp.Propose) *SM {
	n := sm.next(&PresentationProposalReceived{Proposal: p})
	n.threadID, _ = aries.ThreadID(p)
	return n
}

func (sm *SM) sendRequest(ctx context.Context, proofReq, comment string, send fsm.Sender) (*SM, error) {
	if send == nil {
		return nil, core.InvalidState("send function missing")
	}
	req := stdpp.NewRequest(sm.threadID, comment, []byte(proofReq))
	try.To(send(ctx, req))

	n := sm.next(&PresentationRequestSent{ProofRequest: proofReq, Request: req})
	n.threadID, _ = aries.ThreadID(req)
	return n, nil
}

func (sm *SM) handleReply(ctx context.Context, s *PresentationRequestSent, m aries.Message, deps Deps) (*SM, error) {
	try.To(fsm.CheckThread(sm.threadID, m))

	if pr, ok := presentproof.ProblemReport(m); ok {
		glog.V(1).Infof("verifier %s: problem report: %s", sm.sourceID, pr.Explain())
		return sm.next(&Finished{
			Status:        fsm.StatusFailed,
			ProofRequest:  s.ProofRequest,
			ProblemReport: pr,
		}), nil
	}
	switch msg := m.(type) {
	case *stdpp.Presentation:
		return sm.verify(ctx, s, msg, deps)
	case *stdpp.Propose:
		return sm.receiveProposal(msg), nil
	}
	glog.Warningf("verifier %s: %s illegal in %s", sm.sourceID, m.Kind(), sm.state.Name())
	return sm, nil
}

func (sm *SM) verify(ctx context.Context, s *PresentationRequestSent, p *stdpp.Presentation, deps Deps) (*SM, error) {
	if deps.Anoncreds == nil || deps.Ledger == nil {
		return nil, core.InvalidState("verifier capabilities missing")
	}
	ok, err := verifyProof(ctx, s.ProofRequest, p, deps)
	switch {
	case err == nil && ok:
		fsm.TrySend(ctx, deps.Send, stdpp.NewAck(sm.threadID))
		return sm.finish(s, p, NonRevoked), nil
	case err == nil, errors.Is(err, core.ErrInvalidProof):
		glog.V(1).Infof("verifier %s: proof doesn't verify (%v)", sm.sourceID, err)
		return sm.finish(s, p, Revoked), nil
	}
	glog.Errorf("verifier %s: %v", sm.sourceID, err)
	pr := stdpp.NewProblemReport(sm.threadID, common.CodeInvalidProof, err.Error())
	fsm.TrySend(ctx, deps.Send, pr)
	return sm.next(&Finished{
		Status:        fsm.StatusFailed,
		ProofRequest:  s.ProofRequest,
		Presentation:  p,
		ProblemReport: pr,
	}), nil
}

func (sm *SM) finish(s *PresentationRequestSent, p *stdpp.Presentation, rs RevocationStatus) *SM {
	return sm.next(&Finished{
		Status:           fsm.StatusSuccess,
		RevocationStatus: rs,
		ProofRequest:     s.ProofRequest,
		Presentation:     p,
	})
}

// verifyProof checks the revealed values before the anoncreds verification
// with the ledger objects the proof names.
func verifyProof(ctx context.Context, proofReq string, p *stdpp.Presentation, deps Deps) (_ bool, err error) {
	defer err2.Handle(&err, "verify presentation")

	data := try.To1(p.Data())
	proof := try.To1(presentproof.ParseProof(data))
	try.To(checkEncodings(proof.RequestedProof))
	l := try.To1(fetchLedgerObjects(ctx, deps.Ledger, proof.Identifiers))

	return try.To1(deps.Anoncreds.VerifierVerifyProof(ctx, proofReq, string(data),
		dto.ToJSON(l.schemas), dto.ToJSON(l.credDefs),
		dto.ToJSON(l.revRegDefs), dto.ToJSON(l.revRegs))), nil
}

// checkEncodings returns ErrInvalidProof if any of the revealed raw values
// doesn't match its encoding.
func checkEncodings(rp presentproof.RequestedProof) error {
	for ref, attr := range rp.RevealedAttrs {
		if stdic.EncodeValue(attr.Raw) != attr.Encoded {
			return fmt.Errorf("%w: attribute %s encoding", core.ErrInvalidProof, ref)
		}
	}
	for ref, group := range rp.RevealedAttrGroups {
		for name, v := range group.Values {
			if stdic.EncodeValue(v.Raw) != v.Encoded {
				return fmt.Errorf("%w: attribute %s.%s encoding", core.ErrInvalidProof, ref, name)
			}
		}
	}
	return nil
}

type ledgerObjects struct {
	schemas    map[string]json.RawMessage
	credDefs   map[string]json.RawMessage
	revRegDefs map[string]json.RawMessage
	revRegs    map[string]map[string]json.RawMessage
}

func fetchLedgerObjects(ctx context.Context, ledger core.LedgerReader, ids []presentproof.Identifier) (_ ledgerObjects, err error) {
	defer err2.Handle(&err, "fetch ledger objects")

	l := ledgerObjects{
		schemas:    make(map[string]json.RawMessage),
		credDefs:   make(map[string]json.RawMessage),
		revRegDefs: make(map[string]json.RawMessage),
		revRegs:    make(map[string]map[string]json.RawMessage),
	}
	for _, id := range ids {
		if _, ok := l.schemas[id.SchemaID]; !ok {
			l.schemas[id.SchemaID] = json.RawMessage(try.To1(ledger.Schema(ctx, id.SchemaID)))
		}
		if _, ok := l.credDefs[id.CredDefID]; !ok {
			l.credDefs[id.CredDefID] = json.RawMessage(try.To1(ledger.CredDef(ctx, id.CredDefID)))
		}
		if id.RevRegID == "" {
			continue
		}
		if _, ok := l.revRegDefs[id.RevRegID]; !ok {
			l.revRegDefs[id.RevRegID] = json.RawMessage(try.To1(ledger.RevRegDef(ctx, id.RevRegID)))
			l.revRegs[id.RevRegID] = make(map[string]json.RawMessage)
		}
		ts := strconv.FormatInt(id.Timestamp, 10)
		l.revRegs[id.RevRegID][ts] = json.RawMessage(try.To1(ledger.RevReg(ctx, id.RevRegID, id.Timestamp)))
	}
	return l, nil
}

var table = fsm.Table{
	StateInitial: {Kinds: []aries.Kind{aries.KindPresentationProposal}},
	StatePresentationRequestSent: {Kinds: append([]aries.Kind{
		aries.KindPresentation,
		aries.KindPresentationProposal,
	}, presentproof.ProblemReportKinds...), Threaded: true},
}

// FindMessageToHandle returns at most one message of the batch which the
// verifier can handle in its current state.
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

// PresentationStatus returns the status code of the finished protocol. The
// revoked proof is reported as failed for the callers which don't check the
// revocation status.
func (sm *SM) PresentationStatus() int {
	s, ok := sm.state.(*Finished)
	if !ok {
		return fsm.StatusUndefined.Code()
	}
	if s.Status == fsm.StatusSuccess && s.RevocationStatus == Revoked {
		return fsm.StatusFailed.Code()
	}
	return s.Status.Code()
}

func (sm *SM) RevocationStatus() RevocationStatus {
	if s, ok := sm.state.(*Finished); ok {
		return s.RevocationStatus
	}
	return ""
}

func (sm *SM) Presentation() *stdpp.Presentation {
	if s, ok := sm.state.(*Finished); ok {
		return s.Presentation
	}
	return nil
}

// Proposal returns the prover's proposal the verifier should answer.
func (sm *SM) Proposal() *stdpp.Propose {
	if s, ok := sm.state.(*PresentationProposalReceived); ok {
		return s.Proposal
	}
	return nil
}

func (sm *SM) ProblemReport() *stdpp.ProblemReport {
	if s, ok := sm.state.(*Finished); ok {
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
