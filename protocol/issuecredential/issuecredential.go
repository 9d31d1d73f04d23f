// Package issuecredential holds what the issuer and the holder state
// machines of issue-credential/1.0 share.
package issuecredential

import (
	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/std/common"
	stdic "github.com/findy-network/findy-aries-fsm/std/issuecredential"
)

// RevocationInfo is what the issuer needs to revoke the credential. It's
// present only for credentials of revocable cred defs.
type RevocationInfo struct {
	CredRevID string `json:"cred_rev_id"`
	RevRegID  string `json:"rev_reg_id"`
	TailsFile string `json:"tails_file"`
}

// Complete tells if all of the fields are set.
func (r *RevocationInfo) Complete() bool {
	return r != nil && r.CredRevID != "" && r.RevRegID != "" && r.TailsFile != ""
}

// ProblemReport returns the problem report of the message. The plain
// notification problem-report is accepted as well.
func ProblemReport(m aries.Message) (*stdic.ProblemReport, bool) {
	switch pr := m.(type) {
	case *stdic.ProblemReport:
		return pr, true
	case *common.ProblemReport:
		return &stdic.ProblemReport{ProblemReport: *pr}, true
	}
	return nil, false
}

// ProblemReportKinds are the kinds ProblemReport accepts.
var ProblemReportKinds = []aries.Kind{
	aries.KindCredentialProblemReport,
	aries.KindProblemReport,
}
