package presentproof

import (
	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/agent/pltype"
	"github.com/findy-network/findy-aries-fsm/std/common"
	"github.com/findy-network/findy-aries-fsm/std/decorator"
)

// NewPreview builds the presentation preview with the canonical type.
func NewPreview(attrs []Attribute, preds []Predicate) *Preview {
	if attrs == nil {
		attrs = []Attribute{}
	}
	if preds == nil {
		preds = []Predicate{}
	}
	return &Preview{
		Type:       pltype.PresentProofPresentationPreview,
		Attributes: attrs,
		Predicates: preds,
	}
}

// NewPropose builds a proposal. Empty thid starts a new thread.
func NewPropose(thid, comment string, preview *Preview) *Propose {
	return &Propose{
		Threaded:             aries.NewThreaded(aries.KindPresentationProposal, thid, ""),
		Comment:              comment,
		PresentationProposal: preview,
	}
}

// NewRequest builds a presentation request with the libindy proof request
// attached. Empty thid starts a new thread.
func NewRequest(thid, comment string, proofReq []byte) *Request {
	return &Request{
		Threaded: aries.NewThreaded(aries.KindPresentationRequest, thid, ""),
		Comment:  comment,
		RequestPresentations: decorator.NewAttachment(
			pltype.LibindyRequestPresentationID, proofReq),
	}
}

// Data returns the libindy proof request.
func (r *Request) Data() ([]byte, error) {
	return decorator.FirstAttachment(r.RequestPresentations)
}

func NewPresentation(thid string, proof []byte) *Presentation {
	return &Presentation{
		Threaded:             aries.NewThreaded(aries.KindPresentation, thid, ""),
		PresentationAttaches: decorator.NewAttachment(pltype.LibindyPresentationID, proof),
		PleaseAck:            &decorator.PleaseAck{On: []string{"OUTCOME"}},
	}
}

// Data returns the libindy proof.
func (p *Presentation) Data() ([]byte, error) {
	return decorator.FirstAttachment(p.PresentationAttaches)
}

func NewAck(thid string) *Ack {
	return &Ack{Ack: common.NewAck(aries.KindPresentationAck, thid)}
}

func NewProblemReport(thid, code, explain string) *ProblemReport {
	return &ProblemReport{
		ProblemReport: common.NewProblemReport(aries.KindPresentationProblemReport,
			thid, code, explain),
	}
}
