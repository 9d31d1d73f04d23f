/*
Package holder is the holder side of the issue-credential/1.0 protocol state
machine.

	Initial -> ProposalSent -> OfferReceived -> RequestSent -> Finished

The holder can start with a proposal, but usually the state machine is
created from the issuer's offer with FromOffer.
*/
package holder

import (
	"context"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/agent/fsm"
	"github.com/findy-network/findy-aries-fsm/core"
	"github.com/findy-network/findy-aries-fsm/protocol/issuecredential"
	"github.com/findy-network/findy-aries-fsm/std/common"
	stdic "github.com/findy-network/findy-aries-fsm/std/issuecredential"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

type SM struct {
	sourceID string
	threadID string
	state    State
}

// Deps are the capabilities of the holder's transitions. Each transition
// uses only the ones it needs.
type Deps struct {
	Anoncreds core.Prover
	Ledger    core.LedgerReader
	Send      fsm.Sender
}

func New(sourceID string) *SM {
	return &SM{sourceID: sourceID, state: &Initial{}}
}

// FromOffer creates the holder from the received offer. The offer's thread
// is our thread.
func FromOffer(sourceID string, offer *stdic.Offer) *SM {
	thid, _ := aries.ThreadID(offer)
	return &SM{
		sourceID: sourceID,
		threadID: thid,
		state:    &OfferReceived{Offer: offer},
	}
}

func (sm *SM) next(s State) *SM {
	glog.V(1).Infof("holder %s: %s -> %s", sm.sourceID, sm.state.Name(), s.Name())
	n := *sm
	n.state = s
	return &n
}

// Step runs the event. Events which aren't legal in the current state are
// ignored and the state machine is returned as is.
func (sm *SM) Step(ctx context.Context, ev Event, deps Deps) (_ *SM, err error) {
	defer err2.Handle(&err, "holder %s: %s", sm.sourceID, sm.state.Name())

	switch s := sm.state.(type) {
	case *Initial:
		if e, ok := ev.(CredentialProposalSend); ok {
			return sm.sendProposal(ctx, e, deps.Send)
		}
	case *ProposalSent:
		if e, ok := ev.(Inbound); ok {
			return sm.handleOffer(e.Msg)
		}
	case *OfferReceived:
		switch e := ev.(type) {
		case CredentialRequestSend:
			return sm.sendRequest(ctx, s, e, deps)
		case CredentialOfferReject:
			pr := stdic.NewProblemReport(sm.threadID, common.CodeRejected, e.Comment)
			fsm.TrySend(ctx, deps.Send, pr)
			return sm.next(&Finished{Status: fsm.StatusDeclined, ProblemReport: pr}), nil
		case Inbound:
			if pr, ok := issuecredential.ProblemReport(e.Msg); ok {
				try.To(fsm.CheckThread(sm.threadID, e.Msg))
				return sm.next(&Finished{Status: fsm.StatusFailed, ProblemReport: pr}), nil
			}
		}
	case *RequestSent:
		if e, ok := ev.(Inbound); ok {
			return sm.handleCredential(ctx, s, e.Msg, deps)
		}
	case *Finished:
		glog.V(1).Infof("holder %s: finished, %T ignored", sm.sourceID, ev)
		return sm, nil
	}
	glog.Warningf("holder %s: %T illegal in %s", sm.sourceID, ev, sm.state.Name())
	return sm, nil
}

func (sm *SM) sendProposal(ctx context.Context, e CredentialProposalSend, send fsm.Sender) (*SM, error) {
	if send == nil {
		return nil, core.InvalidState("send function missing")
	}
	preview := try.To1(stdic.NewPreviewCredential(e.Values))
	proposal := stdic.NewPropose(e.Comment, &preview)
	proposal.CredDefID = e.CredDefID
	try.To(send(ctx, proposal))

	n := sm.next(&ProposalSent{Proposal: proposal})
	n.threadID = proposal.ID
	return n, nil
}

func (sm *SM) handleOffer(m aries.Message) (*SM, error) {
	try.To(fsm.CheckThread(sm.threadID, m))

	if pr, ok := issuecredential.ProblemReport(m); ok {
		return sm.next(&Finished{Status: fsm.StatusFailed, ProblemReport: pr}), nil
	}
	if offer, ok := m.(*stdic.Offer); ok {
		return sm.next(&OfferReceived{Offer: offer}), nil
	}
	glog.Warningf("holder %s: %s illegal in %s", sm.sourceID, m.Kind(), sm.state.Name())
	return sm, nil
}

// sendRequest accepts the offer. The offer must name its cred def, but the
// failures of the capabilities are reported to the issuer and the protocol
// finishes as failed.
func (sm *SM) sendRequest(ctx context.Context, s *OfferReceived, e CredentialRequestSend, deps Deps) (*SM, error) {
	if deps.Send == nil {
		return nil, core.InvalidState("send function missing")
	}
	if deps.Anoncreds == nil || deps.Ledger == nil {
		return nil, core.InvalidState("holder capabilities missing")
	}
	credDefID := try.To1(s.Offer.CredDefID())

	next, err := sm.request(ctx, s, credDefID, e.MyPwDID, deps)
	if err != nil {
		return sm.fail(ctx, deps.Send, err), nil
	}
	return next, nil
}

func (sm *SM) request(
	ctx context.Context,
	s *OfferReceived,
	credDefID, proverDID string,
	deps Deps,
) (
	_ *SM,
	err error,
) {
	defer err2.Handle(&err, "credential request")

	offer := try.To1(s.Offer.Data())
	credDef := try.To1(deps.Ledger.CredDef(ctx, credDefID))
	req, reqMeta := try.To2(deps.Anoncreds.ProverCreateCredentialReq(ctx,
		proverDID, string(offer), credDef))
	try.To(deps.Send(ctx, stdic.NewRequest(sm.threadID, []byte(req))))

	return sm.next(&RequestSent{
		Offer:       s.Offer,
		ReqMeta:     reqMeta,
		CredDefJSON: credDef,
	}), nil
}

func (sm *SM) handleCredential(ctx context.Context, s *RequestSent, m aries.Message, deps Deps) (*SM, error) {
	try.To(fsm.CheckThread(sm.threadID, m))

	if pr, ok := issuecredential.ProblemReport(m); ok {
		return sm.next(&Finished{Status: fsm.StatusFailed, ProblemReport: pr}), nil
	}
	issue, ok := m.(*stdic.Issue)
	if !ok {
		glog.Warningf("holder %s: %s illegal in %s", sm.sourceID, m.Kind(), sm.state.Name())
		return sm, nil
	}
	if deps.Anoncreds == nil || deps.Ledger == nil {
		return nil, core.InvalidState("holder capabilities missing")
	}
	finished, err := sm.store(ctx, s, issue, deps)
	if err != nil {
		return sm.fail(ctx, deps.Send, err), nil
	}
	if issue.PleaseAck != nil {
		fsm.TrySend(ctx, deps.Send, stdic.NewAck(sm.threadID))
	}
	return sm.next(finished), nil
}

// store fetches the revocation registry of revocable credentials before
// storing the credential to the wallet.
func (sm *SM) store(ctx context.Context, s *RequestSent, issue *stdic.Issue, deps Deps) (_ *Finished, err error) {
	defer err2.Handle(&err, "store credential")

	cred := try.To1(issue.Data())
	revRegID := try.To1(issue.RevRegID())
	var revRegDef string
	if revRegID != "" {
		revRegDef = try.To1(deps.Ledger.RevRegDef(ctx, revRegID))
	}
	credID := try.To1(deps.Anoncreds.ProverStoreCredential(ctx, s.ReqMeta,
		string(cred), s.CredDefJSON, revRegDef))

	return &Finished{
		Status:     fsm.StatusSuccess,
		CredID:     credID,
		Credential: issue,
		RevRegID:   revRegID,
	}, nil
}

// fail reports the error to the issuer and finishes the protocol.
func (sm *SM) fail(ctx context.Context, send fsm.Sender, err error) *SM {
	glog.Errorf("holder %s: %v", sm.sourceID, err)
	pr := stdic.NewProblemReport(sm.threadID, common.CodeRequestProcessing, err.Error())
	fsm.TrySend(ctx, send, pr)
	return sm.next(&Finished{Status: fsm.StatusFailed, ProblemReport: pr})
}

var table = fsm.Table{
	StateProposalSent: {Kinds: append([]aries.Kind{
		aries.KindCredentialOffer,
	}, issuecredential.ProblemReportKinds...), Threaded: true},
	StateOfferReceived: {Kinds: issuecredential.ProblemReportKinds, Threaded: true},
	StateRequestSent: {Kinds: append([]aries.Kind{
		aries.KindCredential,
	}, issuecredential.ProblemReportKinds...), Threaded: true},
}

// FindMessageToHandle returns at most one message of the batch which the
// holder can handle in its current state.
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

// CredentialStatus returns the status code of the finished protocol.
func (sm *SM) CredentialStatus() int {
	if s, ok := sm.state.(*Finished); ok {
		return s.Status.Code()
	}
	return fsm.StatusUndefined.Code()
}

// Offer returns the offer the holder has got.
func (sm *SM) Offer() *stdic.Offer {
	switch s := sm.state.(type) {
	case *OfferReceived:
		return s.Offer
	case *RequestSent:
		return s.Offer
	}
	return nil
}

// Credential returns the libindy credential JSON.
func (sm *SM) Credential() (string, error) {
	s, ok := sm.state.(*Finished)
	if !ok || s.Credential == nil {
		return "", core.NotReady("no credential in %s", sm.state.Name())
	}
	cred, err := s.Credential.Data()
	return string(cred), err
}

// CredentialID returns the ID of the credential in the wallet.
func (sm *SM) CredentialID() (string, error) {
	s, ok := sm.state.(*Finished)
	if !ok || s.CredID == "" {
		return "", core.NotReady("no credential in %s", sm.state.Name())
	}
	return s.CredID, nil
}

func (sm *SM) IsRevokable() bool {
	s, ok := sm.state.(*Finished)
	return ok && s.RevRegID != ""
}

func (sm *SM) RevRegID() (string, error) {
	if !sm.IsRevokable() {
		return "", core.NotReady("credential isn't revocable")
	}
	return sm.state.(*Finished).RevRegID, nil
}

func (sm *SM) ProblemReport() *stdic.ProblemReport {
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
