package holder

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/agent/fsm"
	"github.com/findy-network/findy-aries-fsm/core"
	"github.com/findy-network/findy-aries-fsm/core/mock"
	"github.com/findy-network/findy-aries-fsm/protocol/issuecredential/issuer"
	"github.com/findy-network/findy-aries-fsm/std/common"
	stdic "github.com/findy-network/findy-aries-fsm/std/issuecredential"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	credDefID   = "Th7MpTaRZVRYnPiabds81Y:3:CL:1:tag"
	revRegID    = "Th7MpTaRZVRYnPiabds81Y:4:Th7MpTaRZVRYnPiabds81Y:3:CL:1:tag:CL_ACCUM:1"
	offerJSON   = `{"cred_def_id":"` + credDefID + `","nonce":"1"}`
	credDefJSON = `{"id":"` + credDefID + `"}`
	reqJSON     = `{"prover_did":"did"}`
	myDID       = "CnEDk9HrMnmiHXEV1WFgbVCRteYnPqsJwrTdcZaNhFVW"
)

var (
	errBoom       = errors.New("boom")
	revocableCred = `{"cred_def_id":"` + credDefID + `","rev_reg_id":"` + revRegID + `"}`
)

type outbox struct {
	msgs []aries.Message
	err  error
}

func (o *outbox) send(_ context.Context, msg aries.Message) error {
	o.msgs = append(o.msgs, msg)
	return o.err
}

func (o *outbox) last(t *testing.T) aries.Message {
	require.NotEmpty(t, o.msgs)
	return o.msgs[len(o.msgs)-1]
}

type fixture struct {
	prover *mock.MockProver
	ledger *mock.MockLedgerReader
	out    *outbox
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	return &fixture{
		prover: mock.NewMockProver(ctrl),
		ledger: mock.NewMockLedgerReader(ctrl),
		out:    &outbox{},
	}
}

func (f *fixture) deps() Deps {
	return Deps{Anoncreds: f.prover, Ledger: f.ledger, Send: f.out.send}
}

func newOffer(t *testing.T, offer string) *stdic.Offer {
	preview, err := stdic.NewPreviewCredential(`{"email":"alice@example.com"}`)
	require.NoError(t, err)
	return stdic.NewOffer("", "offer", preview, []byte(offer))
}

func (f *fixture) requestSent(t *testing.T) *SM {
	f.ledger.EXPECT().CredDef(gomock.Any(), credDefID).Return(credDefJSON, nil)
	f.prover.EXPECT().ProverCreateCredentialReq(gomock.Any(), myDID, offerJSON, credDefJSON).
		Return(reqJSON, "meta", nil)
	sm, err := FromOffer("holder", newOffer(t, offerJSON)).
		Step(context.Background(), CredentialRequestSend{MyPwDID: myDID}, f.deps())
	require.NoError(t, err)
	require.Equal(t, StateRequestSent, sm.StateName())
	return sm
}

func TestFromOffer(t *testing.T) {
	offer := newOffer(t, offerJSON)
	sm := FromOffer("holder", offer)
	assert.Equal(t, StateOfferReceived, sm.StateName())
	assert.Equal(t, offer.ID, sm.ThreadID())
	assert.Same(t, offer, sm.Offer())
	assert.False(t, sm.IsTerminalState())
	assert.Equal(t, fsm.StatusUndefined.Code(), sm.CredentialStatus())
}

func TestStep_CredentialRequestSend(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		f := newFixture(t)
		sm := f.requestSent(t)
		req, ok := f.out.last(t).(*stdic.Request)
		require.True(t, ok)
		assert.True(t, aries.ThreadIDMatches(req, sm.ThreadID()))
		data, err := req.Data()
		require.NoError(t, err)
		assert.Equal(t, reqJSON, string(data))
	})
	t.Run("no send", func(t *testing.T) {
		f := newFixture(t)
		deps := f.deps()
		deps.Send = nil
		_, err := FromOffer("holder", newOffer(t, offerJSON)).
			Step(ctx, CredentialRequestSend{MyPwDID: myDID}, deps)
		assert.True(t, errors.Is(err, core.ErrInvalidState))
	})
	t.Run("no capabilities", func(t *testing.T) {
		f := newFixture(t)
		_, err := FromOffer("holder", newOffer(t, offerJSON)).
			Step(ctx, CredentialRequestSend{MyPwDID: myDID}, Deps{Send: f.out.send})
		assert.True(t, errors.Is(err, core.ErrInvalidState))
		assert.Empty(t, f.out.msgs)
	})
	t.Run("no cred def ID", func(t *testing.T) {
		f := newFixture(t)
		_, err := FromOffer("holder", newOffer(t, `{"nonce":"1"}`)).
			Step(ctx, CredentialRequestSend{MyPwDID: myDID}, f.deps())
		assert.True(t, errors.Is(err, core.ErrInvalidJSON))
		assert.Empty(t, f.out.msgs)
	})
	t.Run("ledger fails", func(t *testing.T) {
		f := newFixture(t)
		f.ledger.EXPECT().CredDef(gomock.Any(), credDefID).Return("", errBoom)
		sm, err := FromOffer("holder", newOffer(t, offerJSON)).
			Step(ctx, CredentialRequestSend{MyPwDID: myDID}, f.deps())
		require.NoError(t, err)
		assert.Equal(t, fsm.StatusFailed.Code(), sm.CredentialStatus())
		assert.Equal(t, aries.KindCredentialProblemReport, f.out.last(t).Kind())
	})
	t.Run("anoncreds fails", func(t *testing.T) {
		f := newFixture(t)
		f.ledger.EXPECT().CredDef(gomock.Any(), credDefID).Return(credDefJSON, nil)
		f.prover.EXPECT().ProverCreateCredentialReq(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", "", errBoom)
		sm, err := FromOffer("holder", newOffer(t, offerJSON)).
			Step(ctx, CredentialRequestSend{MyPwDID: myDID}, f.deps())
		require.NoError(t, err)
		assert.True(t, sm.IsTerminalState())
		assert.Contains(t, sm.ProblemReport().Explain(), "boom")
	})
}

func TestStep_CredentialOfferReject(t *testing.T) {
	f := newFixture(t)
	sm, err := FromOffer("holder", newOffer(t, offerJSON)).
		Step(context.Background(), CredentialOfferReject{Comment: "not now"}, f.deps())
	require.NoError(t, err)
	assert.Equal(t, fsm.StatusDeclined.Code(), sm.CredentialStatus())
	pr, ok := f.out.last(t).(*stdic.ProblemReport)
	require.True(t, ok)
	assert.Equal(t, common.CodeRejected, pr.Description.Code)
	assert.True(t, aries.ThreadIDMatches(pr, sm.ThreadID()))
}

func TestStep_Credential(t *testing.T) {
	ctx := context.Background()

	t.Run("revocable", func(t *testing.T) {
		f := newFixture(t)
		sm := f.requestSent(t)
		f.ledger.EXPECT().RevRegDef(gomock.Any(), revRegID).Return(`{"def":1}`, nil)
		f.prover.EXPECT().ProverStoreCredential(gomock.Any(), "meta", revocableCred, credDefJSON, `{"def":1}`).
			Return("cred-1", nil)

		next, err := sm.Step(ctx, Inbound{Msg: stdic.NewIssue(sm.ThreadID(), []byte(revocableCred))}, f.deps())
		require.NoError(t, err)
		assert.Equal(t, fsm.StatusSuccess.Code(), next.CredentialStatus())
		id, err := next.CredentialID()
		require.NoError(t, err)
		assert.Equal(t, "cred-1", id)
		cred, err := next.Credential()
		require.NoError(t, err)
		assert.Equal(t, revocableCred, cred)
		require.True(t, next.IsRevokable())
		rev, err := next.RevRegID()
		require.NoError(t, err)
		assert.Equal(t, revRegID, rev)
		assert.Equal(t, aries.KindCredentialAck, f.out.last(t).Kind())
	})
	t.Run("not revocable", func(t *testing.T) {
		f := newFixture(t)
		sm := f.requestSent(t)
		f.prover.EXPECT().ProverStoreCredential(gomock.Any(), "meta", `{"rev_reg_id":null}`, credDefJSON, "").
			Return("cred-2", nil)
		next, err := sm.Step(ctx, Inbound{Msg: stdic.NewIssue(sm.ThreadID(), []byte(`{"rev_reg_id":null}`))}, f.deps())
		require.NoError(t, err)
		assert.Equal(t, fsm.StatusSuccess.Code(), next.CredentialStatus())
		assert.False(t, next.IsRevokable())
		_, err = next.RevRegID()
		assert.True(t, errors.Is(err, core.ErrNotReady))
	})
	t.Run("store fails", func(t *testing.T) {
		f := newFixture(t)
		sm := f.requestSent(t)
		f.ledger.EXPECT().RevRegDef(gomock.Any(), revRegID).Return("", errBoom)
		next, err := sm.Step(ctx, Inbound{Msg: stdic.NewIssue(sm.ThreadID(), []byte(revocableCred))}, f.deps())
		require.NoError(t, err)
		assert.Equal(t, fsm.StatusFailed.Code(), next.CredentialStatus())
		assert.Equal(t, aries.KindCredentialProblemReport, f.out.last(t).Kind())
		_, err = next.CredentialID()
		assert.True(t, errors.Is(err, core.ErrNotReady))
	})
	t.Run("malformed", func(t *testing.T) {
		f := newFixture(t)
		sm := f.requestSent(t)
		next, err := sm.Step(ctx, Inbound{Msg: stdic.NewIssue(sm.ThreadID(), []byte(`not json`))}, f.deps())
		require.NoError(t, err)
		assert.Equal(t, fsm.StatusFailed.Code(), next.CredentialStatus())
		assert.Equal(t, aries.KindCredentialProblemReport, f.out.last(t).Kind())
	})
	t.Run("problem report", func(t *testing.T) {
		f := newFixture(t)
		sm := f.requestSent(t)
		sent := len(f.out.msgs)
		pr := stdic.NewProblemReport(sm.ThreadID(), common.CodeInternal, "issuer down")
		next, err := sm.Step(ctx, Inbound{Msg: pr}, f.deps())
		require.NoError(t, err)
		assert.Equal(t, fsm.StatusFailed.Code(), next.CredentialStatus())
		assert.Same(t, pr, next.ProblemReport())
		assert.Len(t, f.out.msgs, sent)
	})
	t.Run("no capabilities", func(t *testing.T) {
		f := newFixture(t)
		sm := f.requestSent(t)
		deps := f.deps()
		deps.Ledger = nil
		_, err := sm.Step(ctx, Inbound{Msg: stdic.NewIssue(sm.ThreadID(), []byte(revocableCred))}, deps)
		assert.True(t, errors.Is(err, core.ErrInvalidState))
	})
	t.Run("thread mismatch", func(t *testing.T) {
		f := newFixture(t)
		sm := f.requestSent(t)
		_, err := sm.Step(ctx, Inbound{Msg: stdic.NewIssue("other", []byte(revocableCred))}, f.deps())
		assert.True(t, errors.Is(err, core.ErrThreadMismatch))
	})
}

func TestStep_Proposal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := New("holder").Step(ctx, CredentialProposalSend{Values: `{"a":"b"}`}, Deps{})
	assert.True(t, errors.Is(err, core.ErrInvalidState))

	sm, err := New("holder").Step(ctx, CredentialProposalSend{
		Comment: "please", CredDefID: credDefID, Values: `{"email":"alice@example.com"}`,
	}, f.deps())
	require.NoError(t, err)
	require.Equal(t, StateProposalSent, sm.StateName())
	proposal, ok := f.out.last(t).(*stdic.Propose)
	require.True(t, ok)
	assert.Equal(t, proposal.ID, sm.ThreadID())
	assert.Equal(t, credDefID, proposal.CredDefID)

	_, err = sm.Step(ctx, Inbound{Msg: newOffer(t, offerJSON)}, f.deps())
	assert.True(t, errors.Is(err, core.ErrThreadMismatch))

	offer := newOffer(t, offerJSON)
	offer.SetThread(sm.ThreadID(), "")
	next, err := sm.Step(ctx, Inbound{Msg: offer}, f.deps())
	require.NoError(t, err)
	assert.Equal(t, StateOfferReceived, next.StateName())
	assert.Equal(t, sm.ThreadID(), next.ThreadID())
}

func TestFindMessageToHandle(t *testing.T) {
	f := newFixture(t)
	sm := f.requestSent(t)

	msgs := map[string]aries.Message{
		"offer": newOffer(t, offerJSON),
		"other": stdic.NewIssue("other", []byte(`{}`)),
	}
	_, _, found := sm.FindMessageToHandle(msgs)
	assert.False(t, found)

	msgs["pr"] = stdic.NewProblemReport(sm.ThreadID(), common.CodeInternal, "")
	id, _, found := sm.FindMessageToHandle(msgs)
	require.True(t, found)
	assert.Equal(t, "pr", id)
}

func TestSM_JSON(t *testing.T) {
	f := newFixture(t)
	declined, err := FromOffer("holder", newOffer(t, offerJSON)).
		Step(context.Background(), CredentialOfferReject{}, f.deps())
	require.NoError(t, err)

	for _, sm := range []*SM{
		New("holder"),
		FromOffer("holder", newOffer(t, offerJSON)),
		f.requestSent(t),
		declined,
	} {
		sm := sm
		t.Run(sm.StateName(), func(t *testing.T) {
			data, err := json.Marshal(sm)
			require.NoError(t, err)

			var got SM
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, sm, &got)
		})
	}
}

// TestIssuance runs the issuer and the holder against each other.
func TestIssuance(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	issuerAC := mock.NewMockIssuer(ctrl)
	f := newFixture(t)
	toHolder := &outbox{}

	issuerAC.EXPECT().IssuerCreateCredentialOffer(gomock.Any(), credDefID).Return(offerJSON, nil)
	iss, err := issuer.New("issuer", issuer.Config{CredDefID: credDefID}, `{"email":"alice@example.com"}`).
		Step(ctx, issuer.CredentialInit{}, issuerAC, toHolder.send)
	require.NoError(t, err)

	h := FromOffer("holder", toHolder.last(t).(*stdic.Offer))
	assert.Equal(t, iss.ThreadID(), h.ThreadID())

	f.ledger.EXPECT().CredDef(gomock.Any(), credDefID).Return(credDefJSON, nil)
	f.prover.EXPECT().ProverCreateCredentialReq(gomock.Any(), myDID, offerJSON, credDefJSON).Return(reqJSON, "meta", nil)
	h, err = h.Step(ctx, CredentialRequestSend{MyPwDID: myDID}, f.deps())
	require.NoError(t, err)

	_, req, found := iss.FindMessageToHandle(map[string]aries.Message{"1": f.out.last(t)})
	require.True(t, found)
	iss, err = iss.Step(ctx, issuer.Inbound{Msg: req}, issuerAC, toHolder.send)
	require.NoError(t, err)

	issuerAC.EXPECT().IssuerCreateCredential(gomock.Any(), offerJSON, reqJSON, gomock.Any(), "", "").
		Return(`{"values":{}}`, "", nil)
	iss, err = iss.Step(ctx, issuer.CredentialSend{}, issuerAC, toHolder.send)
	require.NoError(t, err)
	assert.Equal(t, fsm.StatusSuccess.Code(), iss.CredentialStatus())

	_, cred, found := h.FindMessageToHandle(map[string]aries.Message{"1": toHolder.last(t)})
	require.True(t, found)
	f.prover.EXPECT().ProverStoreCredential(gomock.Any(), "meta", `{"values":{}}`, credDefJSON, "").Return("cred", nil)
	h, err = h.Step(ctx, Inbound{Msg: cred}, f.deps())
	require.NoError(t, err)
	assert.Equal(t, fsm.StatusSuccess.Code(), h.CredentialStatus())
	assert.Equal(t, aries.KindCredentialAck, f.out.last(t).Kind())
}
