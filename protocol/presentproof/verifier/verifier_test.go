package verifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/agent/fsm"
	"github.com/findy-network/findy-aries-fsm/core"
	"github.com/findy-network/findy-aries-fsm/core/mock"
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

	proofReqJSON = `{"name":"age","version":"1.0","nonce":"1234",` +
		`"requested_attributes":{"attr1":{"name":"age"}},"requested_predicates":{}}`

	proofJSON = `{"proof":{},"requested_proof":{"revealed_attrs":` +
		`{"attr1":{"sub_proof_index":0,"raw":"25","encoded":"25"}}},` +
		`"identifiers":[{"schema_id":"` + schemaID + `","cred_def_id":"` + credDefID +
		`","rev_reg_id":"` + revRegID + `","timestamp":100}]}`

	badEncodingJSON = `{"requested_proof":{"revealed_attrs":` +
		`{"attr1":{"sub_proof_index":0,"raw":"alice","encoded":"1"}}},"identifiers":[]}`
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
	verifier *mock.MockVerifier
	ledger   *mock.MockLedgerReader
	out      *outbox
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	return &fixture{
		verifier: mock.NewMockVerifier(ctrl),
		ledger:   mock.NewMockLedgerReader(ctrl),
		out:      &outbox{},
	}
}

func (f *fixture) deps() Deps {
	return Deps{Anoncreds: f.verifier, Ledger: f.ledger, Send: f.out.send}
}

func (f *fixture) expectLedger() {
	f.ledger.EXPECT().Schema(gomock.Any(), schemaID).Return(`{"id":"schema"}`, nil)
	f.ledger.EXPECT().CredDef(gomock.Any(), credDefID).Return(`{"id":"cred-def"}`, nil)
	f.ledger.EXPECT().RevRegDef(gomock.Any(), revRegID).Return(`{"id":"rev-reg-def"}`, nil)
	f.ledger.EXPECT().RevReg(gomock.Any(), revRegID, int64(100)).Return(`{"accum":"1"}`, nil)
}

func (f *fixture) requestSent(t *testing.T) *SM {
	ctx := context.Background()
	sm, err := New("verifier").Step(ctx, SetPresentationRequest{ProofRequest: proofReqJSON}, f.deps())
	require.NoError(t, err)
	require.Equal(t, StatePresentationRequestSet, sm.StateName())

	sm, err = sm.Step(ctx, SendPresentationRequest{Comment: "age"}, f.deps())
	require.NoError(t, err)
	require.Equal(t, StatePresentationRequestSent, sm.StateName())
	return sm
}

func TestStep_SendPresentationRequest(t *testing.T) {
	f := newFixture(t)
	sm := f.requestSent(t)

	req, ok := f.out.last(t).(*stdpp.Request)
	require.True(t, ok)
	assert.Equal(t, req.ID, sm.ThreadID())
	assert.Equal(t, "age", req.Comment)
	data, err := req.Data()
	require.NoError(t, err)
	assert.JSONEq(t, proofReqJSON, string(data))
}

func TestStep_RequestFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid proof request", func(t *testing.T) {
		f := newFixture(t)
		_, err := New("verifier").Step(ctx, SetPresentationRequest{ProofRequest: "{"}, f.deps())
		assert.True(t, errors.Is(err, core.ErrInvalidJSON))
	})
	t.Run("no send", func(t *testing.T) {
		f := newFixture(t)
		sm, err := New("verifier").Step(ctx, SetPresentationRequest{ProofRequest: proofReqJSON}, f.deps())
		require.NoError(t, err)
		_, err = sm.Step(ctx, SendPresentationRequest{}, Deps{})
		assert.True(t, errors.Is(err, core.ErrInvalidState))
	})
	t.Run("send fails", func(t *testing.T) {
		f := newFixture(t)
		f.out.err = errBoom
		sm, err := New("verifier").Step(ctx, SetPresentationRequest{ProofRequest: proofReqJSON}, f.deps())
		require.NoError(t, err)
		_, err = sm.Step(ctx, SendPresentationRequest{}, f.deps())
		assert.True(t, errors.Is(err, errBoom))
		assert.Equal(t, StatePresentationRequestSet, sm.StateName())
	})
	t.Run("illegal event", func(t *testing.T) {
		f := newFixture(t)
		sm := New("verifier")
		got, err := sm.Step(ctx, SendPresentationRequest{}, f.deps())
		require.NoError(t, err)
		assert.Same(t, sm, got)
		assert.Empty(t, f.out.msgs)
	})
}

func TestStep_VerifyPresentation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		proof  string
		setup  func(f *fixture)
		status fsm.Status
		rs     RevocationStatus
		code   int
		sent   aries.Kind
	}{
		{"valid", proofJSON, func(f *fixture) {
			f.expectLedger()
			f.verifier.EXPECT().VerifierVerifyProof(gomock.Any(), proofReqJSON, proofJSON,
				`{"`+schemaID+`":{"id":"schema"}}`,
				`{"`+credDefID+`":{"id":"cred-def"}}`,
				`{"`+revRegID+`":{"id":"rev-reg-def"}}`,
				`{"`+revRegID+`":{"100":{"accum":"1"}}}`).Return(true, nil)
		}, fsm.StatusSuccess, NonRevoked, fsm.StatusSuccess.Code(), aries.KindPresentationAck},
		{"doesn't verify", proofJSON, func(f *fixture) {
			f.expectLedger()
			f.verifier.EXPECT().VerifierVerifyProof(gomock.Any(), gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		}, fsm.StatusSuccess, Revoked, fsm.StatusFailed.Code(), aries.KindPresentationRequest},
		{"bad encoding", badEncodingJSON, func(*fixture) {},
			fsm.StatusSuccess, Revoked, fsm.StatusFailed.Code(), aries.KindPresentationRequest},
		{"verification error", proofJSON, func(f *fixture) {
			f.expectLedger()
			f.verifier.EXPECT().VerifierVerifyProof(gomock.Any(), gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errBoom)
		}, fsm.StatusFailed, "", fsm.StatusFailed.Code(), aries.KindPresentationProblemReport},
		{"ledger error", proofJSON, func(f *fixture) {
			f.ledger.EXPECT().Schema(gomock.Any(), schemaID).Return("", errBoom)
		}, fsm.StatusFailed, "", fsm.StatusFailed.Code(), aries.KindPresentationProblemReport},
		{"malformed proof", "{", func(*fixture) {},
			fsm.StatusFailed, "", fsm.StatusFailed.Code(), aries.KindPresentationProblemReport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			sm := f.requestSent(t)
			tt.setup(f)

			p := stdpp.NewPresentation(sm.ThreadID(), []byte(tt.proof))
			got, err := sm.Step(ctx, VerifyPresentation{Presentation: p}, f.deps())
			require.NoError(t, err)
			require.True(t, got.IsTerminalState())

			s := got.State().(*Finished)
			assert.Equal(t, tt.status, s.Status)
			assert.Equal(t, tt.rs, got.RevocationStatus())
			assert.Equal(t, tt.code, got.PresentationStatus())
			assert.Same(t, p, got.Presentation())
			assert.Equal(t, tt.sent, f.out.last(t).Kind())
			if tt.status == fsm.StatusFailed {
				require.NotNil(t, got.ProblemReport())
				assert.Equal(t, common.CodeInvalidProof, got.ProblemReport().Description.Code)
			}
		})
	}
}

func TestStep_PresentationRequestSent(t *testing.T) {
	ctx := context.Background()

	t.Run("thread mismatch", func(t *testing.T) {
		f := newFixture(t)
		sm := f.requestSent(t)
		p := stdpp.NewPresentation("other", []byte(proofJSON))
		_, err := sm.Step(ctx, VerifyPresentation{Presentation: p}, f.deps())
		assert.True(t, errors.Is(err, core.ErrThreadMismatch))
		_, err = sm.Step(ctx, Inbound{Msg: p}, f.deps())
		assert.True(t, errors.Is(err, core.ErrThreadMismatch))
		assert.Equal(t, StatePresentationRequestSent, sm.StateName())
	})
	t.Run("inbound presentation", func(t *testing.T) {
		f := newFixture(t)
		sm := f.requestSent(t)
		f.expectLedger()
		f.verifier.EXPECT().VerifierVerifyProof(gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		p := stdpp.NewPresentation(sm.ThreadID(), []byte(proofJSON))
		got, err := sm.Step(ctx, Inbound{Msg: p}, f.deps())
		require.NoError(t, err)
		assert.Equal(t, NonRevoked, got.RevocationStatus())
	})
	t.Run("problem report", func(t *testing.T) {
		f := newFixture(t)
		sm := f.requestSent(t)
		pr := stdpp.NewProblemReport(sm.ThreadID(), common.CodeRejected, "no")
		got, err := sm.Step(ctx, Inbound{Msg: pr}, f.deps())
		require.NoError(t, err)
		assert.Equal(t, fsm.StatusFailed.Code(), got.PresentationStatus())
		assert.Same(t, pr, got.ProblemReport())
	})
	t.Run("proposal", func(t *testing.T) {
		f := newFixture(t)
		sm := f.requestSent(t)
		p := stdpp.NewPropose(sm.ThreadID(), "other", stdpp.NewPreview(nil, nil))
		got, err := sm.Step(ctx, Inbound{Msg: p}, f.deps())
		require.NoError(t, err)
		assert.Equal(t, StatePresentationProposalReceived, got.StateName())
		assert.Equal(t, sm.ThreadID(), got.ThreadID())
		assert.Same(t, p, got.Proposal())
	})
	t.Run("no capabilities", func(t *testing.T) {
		f := newFixture(t)
		sm := f.requestSent(t)
		p := stdpp.NewPresentation(sm.ThreadID(), []byte(proofJSON))
		_, err := sm.Step(ctx, VerifyPresentation{Presentation: p}, Deps{Send: f.out.send})
		assert.True(t, errors.Is(err, core.ErrInvalidState))
	})
}

func TestStep_Proposal(t *testing.T) {
	ctx := context.Background()
	newProposal := func() *stdpp.Propose {
		return stdpp.NewPropose("", "proposal",
			stdpp.NewPreview([]stdpp.Attribute{{Name: "age", CredDefID: credDefID}}, nil))
	}

	t.Run("inbound in initial", func(t *testing.T) {
		f := newFixture(t)
		p := newProposal()
		sm, err := New("verifier").Step(ctx, Inbound{Msg: p}, f.deps())
		require.NoError(t, err)
		assert.Equal(t, StatePresentationProposalReceived, sm.StateName())
		assert.Equal(t, p.ID, sm.ThreadID())
	})
	t.Run("request without template", func(t *testing.T) {
		f := newFixture(t)
		_, err := FromProposal("verifier", newProposal()).
			Step(ctx, SendPresentationRequest{}, f.deps())
		assert.True(t, errors.Is(err, core.ErrInvalidState))
		assert.Empty(t, f.out.msgs)
	})
	t.Run("request", func(t *testing.T) {
		f := newFixture(t)
		p := newProposal()
		sm, err := FromProposal("verifier", p).
			Step(ctx, SetPresentationRequest{ProofRequest: proofReqJSON}, f.deps())
		require.NoError(t, err)
		assert.Equal(t, StatePresentationProposalReceived, sm.StateName())

		sm, err = sm.Step(ctx, SendPresentationRequest{}, f.deps())
		require.NoError(t, err)
		assert.Equal(t, StatePresentationRequestSent, sm.StateName())
		assert.Equal(t, p.ID, sm.ThreadID())
		assert.True(t, aries.ThreadIDMatches(f.out.last(t), p.ID))
	})
	t.Run("reject", func(t *testing.T) {
		f := newFixture(t)
		p := newProposal()
		sm, err := FromProposal("verifier", p).
			Step(ctx, RejectPresentationProposal{Reason: "no thanks"}, f.deps())
		require.NoError(t, err)
		assert.Equal(t, fsm.StatusDeclined.Code(), sm.PresentationStatus())
		pr, ok := f.out.last(t).(*stdpp.ProblemReport)
		require.True(t, ok)
		assert.Equal(t, common.CodeRejected, pr.Description.Code)
		assert.True(t, aries.ThreadIDMatches(pr, p.ID))
	})
}

func TestFinishedAbsorbs(t *testing.T) {
	f := newFixture(t)
	sm := f.requestSent(t)
	sm, err := sm.Step(context.Background(), Inbound{
		Msg: stdpp.NewProblemReport(sm.ThreadID(), common.CodeRejected, "no"),
	}, f.deps())
	require.NoError(t, err)
	sent := len(f.out.msgs)

	for _, ev := range []Event{
		SetPresentationRequest{ProofRequest: proofReqJSON},
		SendPresentationRequest{},
		Inbound{Msg: stdpp.NewPresentation(sm.ThreadID(), []byte(proofJSON))},
	} {
		got, err := sm.Step(context.Background(), ev, f.deps())
		require.NoError(t, err)
		assert.Same(t, sm, got)
	}
	assert.Len(t, f.out.msgs, sent)
}

func TestFindMessageToHandle(t *testing.T) {
	f := newFixture(t)
	sm := f.requestSent(t)

	ack := stdpp.NewAck(sm.ThreadID())
	other := stdpp.NewPresentation("other", []byte(proofJSON))
	_, _, ok := sm.FindMessageToHandle(map[string]aries.Message{"1": ack, "2": other})
	assert.False(t, ok)

	p := stdpp.NewPresentation(sm.ThreadID(), []byte(proofJSON))
	id, m, ok := sm.FindMessageToHandle(map[string]aries.Message{"1": ack, "2": other, "3": p})
	require.True(t, ok)
	assert.Equal(t, "3", id)
	assert.Same(t, p, m)

	proposal := stdpp.NewPropose("", "", stdpp.NewPreview(nil, nil))
	id, _, ok = New("verifier").FindMessageToHandle(map[string]aries.Message{"1": p, "2": proposal})
	require.True(t, ok)
	assert.Equal(t, "2", id)
}

func TestSM_JSON(t *testing.T) {
	f := newFixture(t)
	sent := f.requestSent(t)
	finished, err := sent.Step(context.Background(), Inbound{
		Msg: stdpp.NewProblemReport(sent.ThreadID(), common.CodeRejected, "no"),
	}, f.deps())
	require.NoError(t, err)

	for _, sm := range []*SM{
		New("verifier"),
		FromProposal("verifier", stdpp.NewPropose("", "p", stdpp.NewPreview(nil, nil))),
		sent,
		finished,
	} {
		data, err := json.Marshal(sm)
		require.NoError(t, err)
		var got SM
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, sm, &got)
	}
}
