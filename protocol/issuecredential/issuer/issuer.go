/*
Package issuer is the issuer side of the issue-credential/1.0 protocol state
machine.

	Initial -> OfferSent -> RequestReceived -> Finished

The issuer starts with the offer. A counter proposal or a problem report from
the holder finishes the protocol as failed. The credential is issued and sent
in one step, and the issuer doesn't wait for the ack.
*/
package issuer

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

// New creates the issuer to Initial state. The credential JSON is the
// values of the credential attributes.
func New(sourceID string, cfg Config, credentialJSON string) *SM {
	return &SM{
		sourceID: sourceID,
		state:    &Initial{Config: cfg, CredentialJSON: credentialJSON},
	}
}

func (sm *SM) next(s State) *SM {
	glog.V(1).Infof("issuer %s: %s -> %s", sm.sourceID, sm.state.Name(), s.Name())
	n := *sm
	n.state = s
	return &n
}

// Step runs the event. Events which aren't legal in the current state are
// ignored and the state machine is returned as is.
func (sm *SM) Step(ctx context.Context, ev Event, ac core.Issuer, send fsm.Sender) (_ *SM, err error) {
	defer err2.Handle(&err, "issuer %s: %s", sm.sourceID, sm.state.Name())

	switch s := sm.state.(type) {
	case *Initial:
		if e, ok := ev.(CredentialInit); ok {
			return sm.sendOffer(ctx, s, e, ac, send)
		}
	case *OfferSent:
		if e, ok := ev.(Inbound); ok {
			return sm.handleReply(ctx, s, e.Msg, send)
		}
	case *RequestReceived:
		if _, ok := ev.(CredentialSend); ok {
			if send == nil {
				return nil, core.InvalidState("send function missing")
			}
			if ac == nil {
				return nil, core.InvalidState("issuer capabilities missing")
			}
			return sm.sendCredential(ctx, s, ac, send), nil
		}
	case *Finished:
		glog.V(1).Infof("issuer %s: finished, %T ignored", sm.sourceID, ev)
		return sm, nil
	}
	glog.Warningf("issuer %s: %T illegal in %s", sm.sourceID, ev, sm.state.Name())
	return sm, nil
}

func (sm *SM) sendOffer(
	ctx context.Context,
	s *Initial,
	e CredentialInit,
	ac core.Issuer,
	send fsm.Sender,
) (*SM, error) {
	if send == nil {
		return nil, core.InvalidState("send function missing")
	}
	if ac == nil {
		return nil, core.InvalidState("issuer capabilities missing")
	}
	preview := try.To1(stdic.NewPreviewCredential(s.CredentialJSON))
	offer := try.To1(ac.IssuerCreateCredentialOffer(ctx, s.Config.CredDefID))
	msg := stdic.NewOffer("", e.Comment, preview, []byte(offer))
	try.To(send(ctx, msg))

	n := sm.next(&OfferSent{Config: s.Config, Offer: offer, Preview: preview})
	n.threadID = msg.ID
	return n, nil
}

func (sm *SM) handleReply(ctx context.Context, s *OfferSent, m aries.Message, send fsm.Sender) (*SM, error) {
	try.To(fsm.CheckThread(sm.threadID, m))

	if pr, ok := issuecredential.ProblemReport(m); ok {
		glog.V(1).Infof("issuer %s: problem report: %s", sm.sourceID, pr.Explain())
		return sm.finish(fsm.StatusFailed, s.Config.CredDefID, nil, pr), nil
	}
	switch msg := m.(type) {
	case *stdic.Request:
		req := try.To1(msg.Data())
		return sm.next(&RequestReceived{
			Config:  s.Config,
			Offer:   s.Offer,
			Preview: s.Preview,
			Request: string(req),
		}), nil
	case *stdic.Propose:
		pr := stdic.NewProblemReport(sm.threadID, common.CodeUnsupported,
			"credential negotiation not supported")
		fsm.TrySend(ctx, send, pr)
		return sm.finish(fsm.StatusFailed, s.Config.CredDefID, nil, pr), nil
	}
	glog.Warningf("issuer %s: %s illegal in %s", sm.sourceID, m.Kind(), sm.state.Name())
	return sm, nil
}

// sendCredential finishes the protocol. The failures of the issuing are
// reported to the holder and the protocol finishes as failed.
func (sm *SM) sendCredential(ctx context.Context, s *RequestReceived, ac core.Issuer, send fsm.Sender) *SM {
	cred, rev, err := sm.issue(ctx, s, ac, send)
	if err != nil {
		glog.Errorf("issuer %s: %v", sm.sourceID, err)
		pr := stdic.NewProblemReport(sm.threadID, common.CodeRequestProcessing, err.Error())
		fsm.TrySend(ctx, send, pr)
		return sm.finish(fsm.StatusFailed, s.Config.CredDefID, nil, pr)
	}
	glog.V(3).Infoln("credential sent:", cred)
	return sm.finish(fsm.StatusSuccess, s.Config.CredDefID, rev, nil)
}

func (sm *SM) issue(
	ctx context.Context,
	s *RequestReceived,
	ac core.Issuer,
	send fsm.Sender,
) (
	cred string,
	rev *issuecredential.RevocationInfo,
	err error,
) {
	defer err2.Handle(&err, "issue credential")

	cred, credRevID := try.To2(ac.IssuerCreateCredential(ctx, s.Offer, s.Request,
		s.Preview.CodedValues(), s.Config.RevRegID, s.Config.TailsFile))
	try.To(send(ctx, stdic.NewIssue(sm.threadID, []byte(cred))))

	if credRevID != "" {
		rev = &issuecredential.RevocationInfo{
			CredRevID: credRevID,
			RevRegID:  s.Config.RevRegID,
			TailsFile: s.Config.TailsFile,
		}
	}
	return cred, rev, nil
}

func (sm *SM) finish(
	status fsm.Status,
	credDefID string,
	rev *issuecredential.RevocationInfo,
	pr *stdic.ProblemReport,
) *SM {
	return sm.next(&Finished{
		Status:        status,
		CredDefID:     credDefID,
		Revocation:    rev,
		ProblemReport: pr,
	})
}

// Revoke revokes the issued credential. With publish the registry delta is
// written to the ledger right away, otherwise the revocation is only local
// and it's published later with the other local revocations of the
// registry, see agent/revocation.
func (sm *SM) Revoke(ctx context.Context, ac core.Issuer, ledger core.LedgerWriter, publish bool) (err error) {
	defer err2.Handle(&err, "issuer %s: revoke", sm.sourceID)

	s, ok := sm.state.(*Finished)
	if !ok {
		return core.NotReady("credential not issued, state %s", sm.state.Name())
	}
	if !s.Revocation.Complete() {
		return core.ErrInvalidRevocationDetails
	}
	rev := s.Revocation
	if !publish {
		try.To(ac.IssuerRevokeCredentialLocal(ctx, rev.TailsFile, rev.RevRegID, rev.CredRevID))
		return nil
	}
	if ledger == nil {
		return core.InvalidState("ledger missing")
	}
	delta := try.To1(ac.IssuerRevokeCredential(ctx, rev.TailsFile, rev.RevRegID, rev.CredRevID))
	try.To(ledger.PublishRevRegDelta(ctx, rev.RevRegID, delta))
	glog.V(1).Infof("issuer %s: credential %s revoked from %s", sm.sourceID, rev.CredRevID, rev.RevRegID)
	return nil
}

var table = fsm.Table{
	StateOfferSent: {Kinds: append([]aries.Kind{
		aries.KindCredentialRequest,
		aries.KindCredentialProposal,
	}, issuecredential.ProblemReportKinds...), Threaded: true},
}

// FindMessageToHandle returns at most one message of the batch which the
// issuer can handle in its current state.
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

func (sm *SM) RevocationInfo() *issuecredential.RevocationInfo {
	if s, ok := sm.state.(*Finished); ok {
		return s.Revocation
	}
	return nil
}

func (sm *SM) IsRevokable() bool {
	return sm.RevocationInfo() != nil
}

func (sm *SM) RevRegID() (string, error) {
	rev := sm.RevocationInfo()
	if rev == nil {
		return "", core.NotReady("no revocation registry")
	}
	return rev.RevRegID, nil
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
