package prover

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/agent/fsm"
	"github.com/findy-network/findy-aries-fsm/core"
	"github.com/findy-network/findy-aries-fsm/core/mock"
	"github.com/findy-network/findy-aries-fsm/protocol/presentproof/verifier"
	"github.com/findy-network/findy-aries-fsm/std/common"
	stdpp "github.com/findy-network/findy-aries-fsm/std/presentproof"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	schemaID  = "Th7MpTaRZVRYnPiabds81Y:2:email:1.0"
	credDefID = "Th7MpTaRZVRYnPiabds81Y:3:CL:1:tag"
	revRegID  = "Th7MpTaRZVRYnPiabds81Y:4:Th7MpTaRZVRYnPiabds81Y:3:CL:1:tag:CL_ACCUM:1"
	tailsFile = "/tmp/tails/" + revRegID

	proofReqJSON = `{"name":"age","version":"1.0","nonce":"1234",` +
		`"requested_attributes":{"attr1":{"name":"email"},"self1":{"name":"nick"}},` +
		`"requested_predicates":{"pred1":{"name":"age","p_type":">=","p_value":18}},` +
		`"non_revoked":{"to":200}}`

	credentialsJSON = `{"attrs":{` +
		`"attr1":{"credential":{"cred_info":{"referent":"cred-1","schema_id":"` + schemaID +
		`","cred_def_id":"` + credDefID + `","rev_reg_id":"` + revRegID + `","cred_rev_id":"7"}},` +
		`"tails_file":"` + tailsFile + `"},` +
		`"pred1":{"credential":{"cred_info":{"referent":"cred-2","schema_id":"` + schemaID +
		`","cred_def_id":"` + credDefID + `"}}}}}`

	noTailsJSON = `{"attrs":{` +
		`"attr1":{"credential":{"cred_info":{"referent":"cred-1","schema_id":"` + schemaID +
		`","cred_def_id":"` + credDefID + `","rev_reg_id":"` + revRegID + `","cred_rev_id":"7"}}}}}`

	proofJSON = `{"proof":{}}`
)

var errBoom = errors.New("boom")

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

func newRequest() *stdpp.Request {
	return stdpp.NewRequest("", "age", []byte(proofReqJSON))
}

func (f *fixture) prepared(t *testing.T) *SM {
	sm, err := FromRequest("prover", newRequest()).
		Step(context.Background(), SetPresentation{Proof: proofJSON}, f.deps())
	require.NoError(t, err)
	require.Equal(t, StatePresentationPrepared, sm.StateName())
	return sm
}

func (f *fixture) presentationSent(t *testing.T) *SM {
	sm, err := f.prepared(t).Step(context.Background(), SendPresentation{}, f.deps())
	require.NoError(t, err)
	require.Equal(t, StatePresentationSent, sm.StateName())
	return sm
}

func TestFromRequest(t *testing.T) {
	req := newRequest()
	sm := FromRequest("prover", req)
	assert.Equal(t, StatePresentationRequestReceived, sm.StateName())
	assert.Equal(t, req.ID, sm.ThreadID())
	assert.Same(t, req, sm.Request())
	assert.Equal(t, fsm.StatusUndefined.Code(), sm.PresentationStatus())
	assert.False(t, sm.IsTerminalState())
}

func TestStep_PreparePresentation(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		f := newFixture(t)
		f.ledger.EXPECT().Schema(gomock.Any(), schemaID).Return(`{"id":"schema"}`, nil)
		f.ledger.EXPECT().CredDef(gomock.Any(), credDefID).Return(`{"id":"cred-def"}`, nil)
		f.ledger.EXPECT().RevRegDef(gomock.Any(), revRegID).Return(`{"id":"rev-reg-def"}`, nil)
		f.ledger.EXPECT().RevRegDelta(gomock.Any(), revRegID, int64(0), int64(200)).
			Return(`{"delta":1}`, int64(150), nil)
		f.prover.EXPECT().CreateRevocationState(gomock.Any(), tailsFile, `{"id":"rev-reg-def"}`,
			`{"delta":1}`, int64(150), "7").Return(`{"witness":1}`, nil)

		var requested, schemas, credDefs, revStates string
		f.prover.EXPECT().ProverCreateProof(gomock.Any(), proofReqJSON, gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, rc, s, cd, rs string) (string, error) {
				requested, schemas, credDefs, revStates = rc, s, cd, rs
				return proofJSON, nil
			})

		sm, err := FromRequest("prover", newRequest()).Step(ctx, PreparePresentation{
			Credentials:  credentialsJSON,
			SelfAttested: `{"self1":"alice"}`,
		}, f.deps())
		require.NoError(t, err)
		require.Equal(t, StatePresentationPrepared, sm.StateName())
		assert.Equal(t, proofJSON, sm.State().(*PresentationPrepared).Proof)

		assert.JSONEq(t, `{
			"self_attested_attributes": {"self1": "alice"},
			"requested_attributes": {"attr1": {"cred_id": "cred-1", "revealed": true, "timestamp": 150}},
			"requested_predicates": {"pred1": {"cred_id": "cred-2"}}
		}`, requested)
		assert.JSONEq(t, `{"`+schemaID+`":{"id":"schema"}}`, schemas)
		assert.JSONEq(t, `{"`+credDefID+`":{"id":"cred-def"}}`, credDefs)
		assert.JSONEq(t, `{"`+revRegID+`":{"150":{"witness":1}}}`, revStates)
		assert.Empty(t, f.out.msgs)
	})

	failures := []struct {
		name  string
		creds string
		setup func(f *fixture)
		code  string
	}{
		{"malformed credentials", "{", func(*fixture) {}, common.CodeRequestNotAccepted},
		{"no tails file", noTailsJSON, func(f *fixture) {
			f.ledger.EXPECT().Schema(gomock.Any(), schemaID).Return(`{}`, nil)
			f.ledger.EXPECT().CredDef(gomock.Any(), credDefID).Return(`{}`, nil)
		}, common.CodeRequestProcessing},
		{"ledger fails", credentialsJSON, func(f *fixture) {
			f.ledger.EXPECT().Schema(gomock.Any(), schemaID).Return("", errBoom)
		}, common.CodeRequestProcessing},
		{"proof fails", `{"attrs":{}}`, func(f *fixture) {
			f.prover.EXPECT().ProverCreateProof(gomock.Any(), gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any()).Return("", errBoom)
		}, common.CodeRequestProcessing},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)
			sm, err := FromRequest("prover", newRequest()).
				Step(ctx, PreparePresentation{Credentials: tt.creds}, f.deps())
			require.NoError(t, err)
			require.Equal(t, StatePresentationPreparationFailed, sm.StateName())
			require.NotNil(t, sm.ProblemReport())
			assert.Equal(t, tt.code, sm.ProblemReport().Description.Code)
			assert.Empty(t, f.out.msgs, "nothing is sent before SendPresentation")

			sm, err = sm.Step(ctx, SendPresentation{}, f.deps())
			require.NoError(t, err)
			assert.Equal(t, fsm.StatusFailed.Code(), sm.PresentationStatus())
			assert.Same(t, sm.ProblemReport(), f.out.last(t))
			assert.Nil(t, sm.Presentation())
		})
	}

	t.Run("no capabilities", func(t *testing.T) {
		f := newFixture(t)
		_, err := FromRequest("prover", newRequest()).
			Step(ctx, PreparePresentation{Credentials: credentialsJSON}, Deps{Send: f.out.send})
		assert.True(t, errors.Is(err, core.ErrInvalidState))
	})
}

func TestStep_SendPresentation(t *testing.T) {
	ctx := context.Background()

	t.Run("ack", func(t *testing.T) {
		f := newFixture(t)
		sm := f.presentationSent(t)
		p, ok := f.out.last(t).(*stdpp.Presentation)
		require.True(t, ok)
		assert.True(t, aries.ThreadIDMatches(p, sm.ThreadID()))
		data, err := p.Data()
		require.NoError(t, err)
		assert.Equal(t, proofJSON, string(data))

		sm, err = sm.Step(ctx, Inbound{Msg: stdpp.NewAck(sm.ThreadID())}, f.deps())
		require.NoError(t, err)
		assert.Equal(t, fsm.StatusSuccess.Code(), sm.PresentationStatus())
		assert.Same(t, p, sm.Presentation())
	})
	t.Run("problem report", func(t *testing.T) {
		f := newFixture(t)
		sm := f.presentationSent(t)
		pr := stdpp.NewProblemReport(sm.ThreadID(), common.CodeInvalidProof, "revoked")
		sm, err := sm.Step(ctx, Inbound{Msg: pr}, f.deps())
		require.NoError(t, err)
		assert.Equal(t, fsm.StatusFailed.Code(), sm.PresentationStatus())
		assert.Same(t, pr, sm.ProblemReport())
		assert.NotNil(t, sm.Presentation())
	})
	t.Run("thread mismatch", func(t *testing.T) {
		f := newFixture(t)
		sm := f.presentationSent(t)
		_, err := sm.Step(ctx, Inbound{Msg: stdpp.NewAck("other")}, f.deps())
		assert.True(t, errors.Is(err, core.ErrThreadMismatch))
	})
	t.Run("send fails", func(t *testing.T) {
		f := newFixture(t)
		sm := f.prepared(t)
		f.out.err = errBoom
		sm, err := sm.Step(ctx, SendPresentation{}, f.deps())
		require.NoError(t, err)
		assert.Equal(t, fsm.StatusFailed.Code(), sm.PresentationStatus())
		assert.Len(t, f.out.msgs, 2)
		assert.Equal(t, aries.KindPresentationProblemReport, f.out.last(t).Kind())
	})
	t.Run("no send", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.prepared(t).Step(ctx, SendPresentation{}, Deps{})
		assert.True(t, errors.Is(err, core.ErrInvalidState))
	})
}

func TestStep_Reject(t *testing.T) {
	f := newFixture(t)
	req := newRequest()
	sm, err := FromRequest("prover", req).
		Step(context.Background(), RejectPresentationRequest{Reason: "no"}, f.deps())
	require.NoError(t, err)
	assert.Equal(t, fsm.StatusDeclined.Code(), sm.PresentationStatus())
	pr, ok := f.out.last(t).(*stdpp.ProblemReport)
	require.True(t, ok)
	assert.Equal(t, common.CodeRejected, pr.Description.Code)
	assert.True(t, aries.ThreadIDMatches(pr, req.ID))
}

func TestStep_Proposal(t *testing.T) {
	ctx := context.Background()
	preview := stdpp.NewPreview([]stdpp.Attribute{{Name: "email", CredDefID: credDefID}}, nil)

	t.Run("new thread", func(t *testing.T) {
		f := newFixture(t)
		sm, err := New("prover").Step(ctx, PresentationProposalSend{Preview: preview}, f.deps())
		require.NoError(t, err)
		require.Equal(t, StatePresentationProposalSent, sm.StateName())
		p := f.out.last(t).(*stdpp.Propose)
		assert.Equal(t, p.ID, sm.ThreadID())
		assert.Equal(t, preview, p.PresentationProposal)

		_, err = sm.Step(ctx, Inbound{Msg: stdpp.NewRequest("other", "", []byte(proofReqJSON))}, f.deps())
		assert.True(t, errors.Is(err, core.ErrThreadMismatch))

		req := stdpp.NewRequest(sm.ThreadID(), "", []byte(proofReqJSON))
		got, err := sm.Step(ctx, Inbound{Msg: req}, f.deps())
		require.NoError(t, err)
		assert.Equal(t, StatePresentationRequestReceived, got.StateName())
		assert.Same(t, req, got.Request())

		pr := stdpp.NewProblemReport(sm.ThreadID(), common.CodeRejected, "no")
		got, err = sm.Step(ctx, Inbound{Msg: pr}, f.deps())
		require.NoError(t, err)
		assert.Equal(t, fsm.StatusFailed.Code(), got.PresentationStatus())
	})
	t.Run("counter proposal", func(t *testing.T) {
		f := newFixture(t)
		req := newRequest()
		sm, err := FromRequest("prover", req).
			Step(ctx, ProposePresentation{Comment: "this instead", Preview: preview}, f.deps())
		require.NoError(t, err)
		assert.Equal(t, StatePresentationProposalSent, sm.StateName())
		assert.Equal(t, req.ID, sm.ThreadID())
		assert.True(t, aries.ThreadIDMatches(f.out.last(t), req.ID))
	})
	t.Run("no send", func(t *testing.T) {
		_, err := New("prover").Step(ctx, PresentationProposalSend{Preview: preview}, Deps{})
		assert.True(t, errors.Is(err, core.ErrInvalidState))
	})
}

func TestIllegalEvents(t *testing.T) {
	f := newFixture(t)
	sm := f.presentationSent(t)
	sent := len(f.out.msgs)
	for _, ev := range []Event{
		PreparePresentation{},
		SetPresentation{Proof: proofJSON},
		SendPresentation{},
		RejectPresentationRequest{},
	} {
		got, err := sm.Step(context.Background(), ev, f.deps())
		require.NoError(t, err)
		assert.Same(t, sm, got)
	}
	assert.Len(t, f.out.msgs, sent)
}

func TestRetrieveCredentials(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.prover.EXPECT().ProverGetCredentialsForProofReq(gomock.Any(), proofReqJSON).
		Return(credentialsJSON, nil)

	creds, err := FromRequest("prover", newRequest()).RetrieveCredentials(ctx, f.prover)
	require.NoError(t, err)
	assert.Equal(t, credentialsJSON, creds)

	_, err = New("prover").RetrieveCredentials(ctx, f.prover)
	assert.True(t, errors.Is(err, core.ErrNotReady))
}

func TestFindMessageToHandle(t *testing.T) {
	f := newFixture(t)
	sm := f.presentationSent(t)

	req := stdpp.NewRequest(sm.ThreadID(), "", []byte(proofReqJSON))
	other := stdpp.NewAck("other")
	_, _, ok := sm.FindMessageToHandle(map[string]aries.Message{"1": req, "2": other})
	assert.False(t, ok)

	ack := stdpp.NewAck(sm.ThreadID())
	id, m, ok := sm.FindMessageToHandle(map[string]aries.Message{"1": req, "2": other, "3": ack})
	require.True(t, ok)
	assert.Equal(t, "3", id)
	assert.Same(t, ack, m)

	_, _, ok = FromRequest("prover", newRequest()).
		FindMessageToHandle(map[string]aries.Message{"1": req, "3": ack})
	assert.False(t, ok, "no inbound messages are legal while preparing")
}

func TestSM_JSON(t *testing.T) {
	f := newFixture(t)
	failed := FromRequest("prover", newRequest())
	failed.state = &PresentationPreparationFailed{
		Request:       failed.Request(),
		ProblemReport: stdpp.NewProblemReport(failed.ThreadID(), common.CodeRequestProcessing, "boom"),
	}
	for _, sm := range []*SM{
		New("prover"),
		FromRequest("prover", newRequest()),
		failed,
		f.prepared(t),
		f.presentationSent(t),
	} {
		data, err := json.Marshal(sm)
		require.NoError(t, err)
		var got SM
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, sm, &got)
	}
}

func TestPresentation(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	ledger := mock.NewMockLedgerReader(ctrl)
	ac := mock.NewMockVerifier(ctrl)
	f := newFixture(t)
	toProver := &outbox{}

	const proof = `{"requested_proof":{"revealed_attrs":{}},"identifiers":[]}`
	f.prover.EXPECT().ProverCreateProof(gomock.Any(), proofReqJSON, gomock.Any(),
		"{}", "{}", "{}").Return(proof, nil)
	ac.EXPECT().VerifierVerifyProof(gomock.Any(), proofReqJSON, proof,
		"{}", "{}", "{}", "{}").Return(true, nil)

	vDeps := verifier.Deps{Anoncreds: ac, Ledger: ledger, Send: toProver.send}
	v, err := verifier.New("verifier").
		Step(ctx, verifier.SetPresentationRequest{ProofRequest: proofReqJSON}, vDeps)
	require.NoError(t, err)
	v, err = v.Step(ctx, verifier.SendPresentationRequest{}, vDeps)
	require.NoError(t, err)

	req := toProver.last(t).(*stdpp.Request)
	p := FromRequest("prover", req)
	p, err = p.Step(ctx, PreparePresentation{Credentials: `{"attrs":{}}`}, f.deps())
	require.NoError(t, err)
	p, err = p.Step(ctx, SendPresentation{}, f.deps())
	require.NoError(t, err)

	_, m, ok := v.FindMessageToHandle(map[string]aries.Message{"p": f.out.last(t)})
	require.True(t, ok)
	v, err = v.Step(ctx, verifier.Inbound{Msg: m}, vDeps)
	require.NoError(t, err)
	assert.Equal(t, verifier.NonRevoked, v.RevocationStatus())
	assert.Equal(t, fsm.StatusSuccess.Code(), v.PresentationStatus())

	_, m, ok = p.FindMessageToHandle(map[string]aries.Message{"a": toProver.last(t)})
	require.True(t, ok)
	p, err = p.Step(ctx, Inbound{Msg: m}, f.deps())
	require.NoError(t, err)
	assert.Equal(t, fsm.StatusSuccess.Code(), p.PresentationStatus())
	assert.Equal(t, v.ThreadID(), p.ThreadID())
}
