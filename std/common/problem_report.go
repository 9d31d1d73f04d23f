package common

import (
	"github.com/findy-network/findy-aries-fsm/agent/aries"
)

// Problem codes used by the state machines.
const (
	CodeRequestProcessing  = "request_processing_error"
	CodeResponseProcess    = "response_processing_error"
	CodeRequestNotAccepted = "request_not_accepted"
	CodeInvalidProof       = "invalid_proof"
	CodeRejected           = "rejected"
	CodeUnsupported        = "unsupported"
	CodeInternal           = "internal_error"
)

// ProblemReport problem report definition
type ProblemReport struct {
	aries.Threaded
	Description    Code   `json:"description"`
	ExplainLongTxt string `json:"explain-ltxt,omitempty"` // ACApy
	Comment        string `json:"comment,omitempty"`
	WhoRetries     string `json:"who_retries,omitempty"`
	Impact         string `json:"impact,omitempty"`
	Where          string `json:"where,omitempty"`
	FixHint        string `json:"fix_hint,omitempty"`
}

// Code represents a problem report code
type Code struct {
	Code string `json:"code"`
	En   string `json:"en,omitempty"`
}

func (p *ProblemReport) Kind() aries.Kind {
	return aries.KindProblemReport
}

// NewProblemReport builds a problem report to the thread. The k is the kind
// of the report because connection, issue-credential and present-proof
// adopt problem-report with their own types.
func NewProblemReport(k aries.Kind, thid, code, explain string) ProblemReport {
	return ProblemReport{
		Threaded:    aries.NewThreaded(k, thid, ""),
		Description: Code{Code: code, En: explain},
		Comment:     explain,
	}
}

// Explain returns the human readable reason of the problem.
func (p *ProblemReport) Explain() string {
	switch {
	case p.Description.En != "":
		return p.Description.En
	case p.ExplainLongTxt != "":
		return p.ExplainLongTxt
	case p.Comment != "":
		return p.Comment
	}
	return p.Description.Code
}
