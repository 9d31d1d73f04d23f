// Package presentproof holds what the verifier and the prover state machines
// of present-proof/1.0 share: the problem report handling and the parts of
// the libindy proof JSON both sides need to read.
package presentproof

import (
	"encoding/json"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/core"
	"github.com/findy-network/findy-aries-fsm/std/common"
	stdpp "github.com/findy-network/findy-aries-fsm/std/presentproof"
)

// ProblemReport returns the problem report of the message. The plain
// notification problem-report is accepted as well.
func ProblemReport(m aries.Message) (*stdpp.ProblemReport, bool) {
	switch pr := m.(type) {
	case *stdpp.ProblemReport:
		return pr, true
	case *common.ProblemReport:
		return &stdpp.ProblemReport{ProblemReport: *pr}, true
	}
	return nil, false
}

// ProblemReportKinds are the kinds ProblemReport accepts.
var ProblemReportKinds = []aries.Kind{
	aries.KindPresentationProblemReport,
	aries.KindProblemReport,
}

// Identifier tells which ledger objects the sub proof is built on.
type Identifier struct {
	SchemaID  string `json:"schema_id"`
	CredDefID string `json:"cred_def_id"`
	RevRegID  string `json:"rev_reg_id,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// AttrValue is the revealed value of the attribute.
type AttrValue struct {
	Raw     string `json:"raw"`
	Encoded string `json:"encoded"`
}

type RevealedAttr struct {
	SubProofIndex int `json:"sub_proof_index"`
	AttrValue
}

type RevealedAttrGroup struct {
	SubProofIndex int                  `json:"sub_proof_index"`
	Values        map[string]AttrValue `json:"values"`
}

type RequestedProof struct {
	RevealedAttrs      map[string]RevealedAttr      `json:"revealed_attrs"`
	RevealedAttrGroups map[string]RevealedAttrGroup `json:"revealed_attr_groups,omitempty"`
	SelfAttestedAttrs  map[string]string            `json:"self_attested_attrs,omitempty"`
}

// Proof is the part of the libindy proof which is read outside of the
// anoncreds. The proof itself is opaque.
type Proof struct {
	RequestedProof RequestedProof `json:"requested_proof"`
	Identifiers    []Identifier   `json:"identifiers"`
}

func ParseProof(data []byte) (p Proof, err error) {
	if json.Unmarshal(data, &p) != nil {
		return p, core.InvalidJSON("proof")
	}
	return p, nil
}

// AttrInfo is the requested attribute or predicate of the proof request.
// Restrictions are opaque.
type AttrInfo struct {
	Name         string          `json:"name,omitempty"`
	Names        []string        `json:"names,omitempty"`
	PType        string          `json:"p_type,omitempty"`
	PValue       int64           `json:"p_value,omitempty"`
	Restrictions json.RawMessage `json:"restrictions,omitempty"`
	NonRevoked   *Interval       `json:"non_revoked,omitempty"`
}

type Interval struct {
	From int64 `json:"from,omitempty"`
	To   int64 `json:"to,omitempty"`
}

// ProofRequest is the libindy proof request.
type ProofRequest struct {
	Name                string              `json:"name"`
	Version             string              `json:"version"`
	Nonce               string              `json:"nonce"`
	RequestedAttributes map[string]AttrInfo `json:"requested_attributes"`
	RequestedPredicates map[string]AttrInfo `json:"requested_predicates"`
	NonRevoked          *Interval           `json:"non_revoked,omitempty"`
}

func ParseProofRequest(data []byte) (r ProofRequest, err error) {
	if json.Unmarshal(data, &r) != nil {
		return r, core.InvalidJSON("proof request")
	}
	return r, nil
}
