package prover

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/findy-network/findy-aries-fsm/core"
	"github.com/findy-network/findy-aries-fsm/protocol/presentproof"
	"github.com/findy-network/findy-common-go/dto"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

type credInfo struct {
	Referent  string `json:"referent"`
	SchemaID  string `json:"schema_id"`
	CredDefID string `json:"cred_def_id"`
	RevRegID  string `json:"rev_reg_id"`
	CredRevID string `json:"cred_rev_id"`
}

type selectedCredential struct {
	Credential struct {
		CredInfo credInfo               `json:"cred_info"`
		Interval *presentproof.Interval `json:"interval,omitempty"`
	} `json:"credential"`
	TailsFile string `json:"tails_file,omitempty"`
}

type selection struct {
	Attrs map[string]selectedCredential `json:"attrs"`
}

type requestedAttr struct {
	CredID    string `json:"cred_id"`
	Revealed  bool   `json:"revealed"`
	Timestamp *int64 `json:"timestamp,omitempty"`
}

type requestedPred struct {
	CredID    string `json:"cred_id"`
	Timestamp *int64 `json:"timestamp,omitempty"`
}

type requestedCredentials struct {
	SelfAttested map[string]string        `json:"self_attested_attributes"`
	Attrs        map[string]requestedAttr `json:"requested_attributes"`
	Preds        map[string]requestedPred `json:"requested_predicates"`
}

type proofInput struct {
	schemas   map[string]json.RawMessage
	credDefs  map[string]json.RawMessage
	revStates map[string]map[string]json.RawMessage
	requested requestedCredentials
}

// prepare builds the proof. The ledger objects of the selected credentials
// are fetched, and the revocation states are built for the revocable ones.
func prepare(ctx context.Context, proofReq, credentials, selfAttested string, deps Deps) (_ string, err error) {
	defer err2.Handle(&err, "prepare presentation")

	req := try.To1(presentproof.ParseProofRequest([]byte(proofReq)))
	var sel selection
	if credentials != "" && json.Unmarshal([]byte(credentials), &sel) != nil {
		return "", core.InvalidJSON("selected credentials")
	}
	in := proofInput{
		schemas:   make(map[string]json.RawMessage),
		credDefs:  make(map[string]json.RawMessage),
		revStates: make(map[string]map[string]json.RawMessage),
		requested: requestedCredentials{
			SelfAttested: make(map[string]string),
			Attrs:        make(map[string]requestedAttr),
			Preds:        make(map[string]requestedPred),
		},
	}
	if selfAttested != "" && json.Unmarshal([]byte(selfAttested), &in.requested.SelfAttested) != nil {
		return "", core.InvalidJSON("self attested attributes")
	}
	for ref, c := range sel.Attrs {
		info := c.Credential.CredInfo
		if _, ok := in.schemas[info.SchemaID]; !ok {
			in.schemas[info.SchemaID] = json.RawMessage(try.To1(deps.Ledger.Schema(ctx, info.SchemaID)))
		}
		if _, ok := in.credDefs[info.CredDefID]; !ok {
			in.credDefs[info.CredDefID] = json.RawMessage(try.To1(deps.Ledger.CredDef(ctx, info.CredDefID)))
		}
		var timestamp *int64
		if info.RevRegID != "" && info.CredRevID != "" {
			to := intervalTo(c.Credential.Interval, req.NonRevoked)
			ts := try.To1(in.addRevState(ctx, info, c.TailsFile, to, deps))
			timestamp = &ts
		}
		if _, ok := req.RequestedPredicates[ref]; ok {
			in.requested.Preds[ref] = requestedPred{CredID: info.Referent, Timestamp: timestamp}
		} else {
			in.requested.Attrs[ref] = requestedAttr{CredID: info.Referent, Revealed: true, Timestamp: timestamp}
		}
	}
	return try.To1(deps.Anoncreds.ProverCreateProof(ctx, proofReq, dto.ToJSON(in.requested),
		dto.ToJSON(in.schemas), dto.ToJSON(in.credDefs), dto.ToJSON(in.revStates))), nil
}

func (in *proofInput) addRevState(
	ctx context.Context,
	info credInfo,
	tailsFile string,
	to int64,
	deps Deps,
) (
	ts int64,
	err error,
) {
	defer err2.Handle(&err, "revocation state of %s", info.Referent)

	if tailsFile == "" {
		return 0, core.InvalidState("tails file missing")
	}
	revRegDef := try.To1(deps.Ledger.RevRegDef(ctx, info.RevRegID))
	delta, ts := try.To2(deps.Ledger.RevRegDelta(ctx, info.RevRegID, 0, to))
	state := try.To1(deps.Anoncreds.CreateRevocationState(ctx, tailsFile, revRegDef,
		delta, ts, info.CredRevID))

	if in.revStates[info.RevRegID] == nil {
		in.revStates[info.RevRegID] = make(map[string]json.RawMessage)
	}
	in.revStates[info.RevRegID][strconv.FormatInt(ts, 10)] = json.RawMessage(state)
	return ts, nil
}

// intervalTo returns the end of the non-revocation interval. The
// credential's own interval wins the request's, and now is the default.
func intervalTo(intervals ...*presentproof.Interval) int64 {
	for _, i := range intervals {
		if i != nil && i.To > 0 {
			return i.To
		}
	}
	return time.Now().Unix()
}
