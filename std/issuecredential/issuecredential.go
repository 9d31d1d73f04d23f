package issuecredential

import (
	"crypto/sha256"
	"encoding/json"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/agent/pltype"
	"github.com/findy-network/findy-aries-fsm/core"
	"github.com/findy-network/findy-aries-fsm/std/common"
	"github.com/findy-network/findy-aries-fsm/std/decorator"
	"github.com/findy-network/findy-common-go/dto"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// NewPropose builds a proposal which starts a new thread.
func NewPropose(comment string, preview *PreviewCredential) *Propose {
	return &Propose{
		Threaded:           aries.NewThreaded(aries.KindCredentialProposal, "", ""),
		Comment:            comment,
		CredentialProposal: preview,
	}
}

// NewOffer builds an offer for the thread. Empty thid starts a new thread
// where the offer's ID is the thread ID.
func NewOffer(thid, comment string, preview PreviewCredential, offer []byte) *Offer {
	return &Offer{
		Threaded:          aries.NewThreaded(aries.KindCredentialOffer, thid, ""),
		Comment:           comment,
		CredentialPreview: preview,
		OffersAttach:      decorator.NewAttachment(pltype.LibindyCredOfferID, offer),
	}
}

// Data returns the libindy credential offer.
func (o *Offer) Data() ([]byte, error) {
	return decorator.FirstAttachment(o.OffersAttach)
}

// CredDefID parses cred_def_id from the attached offer. It's the only field
// of the offer we need to read.
func (o *Offer) CredDefID() (id string, err error) {
	defer err2.Handle(&err, "offer cred def ID")

	data := try.To1(o.Data())
	var offer struct {
		CredDefID string `json:"cred_def_id"`
	}
	if json.Unmarshal(data, &offer) != nil {
		return "", core.InvalidJSON("offer attachment")
	}
	if offer.CredDefID == "" {
		return "", core.InvalidJSON("offer without cred_def_id")
	}
	return offer.CredDefID, nil
}

func NewRequest(thid string, request []byte) *Request {
	return &Request{
		Threaded:       aries.NewThreaded(aries.KindCredentialRequest, thid, ""),
		RequestsAttach: decorator.NewAttachment(pltype.LibindyCredRequestID, request),
	}
}

// Data returns the libindy credential request.
func (r *Request) Data() ([]byte, error) {
	return decorator.FirstAttachment(r.RequestsAttach)
}

func NewIssue(thid string, cred []byte) *Issue {
	return &Issue{
		Threaded:          aries.NewThreaded(aries.KindCredential, thid, ""),
		CredentialsAttach: decorator.NewAttachment(pltype.LibindyCredentialID, cred),
		PleaseAck:         &decorator.PleaseAck{On: []string{"RECEIPT"}},
	}
}

// Data returns the libindy credential.
func (i *Issue) Data() ([]byte, error) {
	return decorator.FirstAttachment(i.CredentialsAttach)
}

// RevRegID returns the optional rev_reg_id of the attached credential. Empty
// string means the credential isn't revocable.
func (i *Issue) RevRegID() (id string, err error) {
	defer err2.Handle(&err, "credential rev reg ID")

	data := try.To1(i.Data())
	var cred struct {
		RevRegID *string `json:"rev_reg_id"`
	}
	if json.Unmarshal(data, &cred) != nil {
		return "", core.InvalidJSON("credential attachment")
	}
	if cred.RevRegID == nil {
		return "", nil
	}
	return *cred.RevRegID, nil
}

func NewAck(thid string) *Ack {
	return &Ack{Ack: common.NewAck(aries.KindCredentialAck, thid)}
}

func NewProblemReport(thid, code, explain string) *ProblemReport {
	return &ProblemReport{
		ProblemReport: common.NewProblemReport(aries.KindCredentialProblemReport,
			thid, code, explain),
	}
}

// NewPreviewCredential builds the preview from JSON. The values can be either
// a flat object {"name": value} or an array of {"name", "value"} objects.
// Non-string values are given as their JSON text.
func NewPreviewCredential(values string) (p PreviewCredential, err error) {
	defer err2.Handle(&err, "credential preview")

	trimmed := strings.TrimSpace(values)
	var attrs []Attribute
	switch {
	case strings.HasPrefix(trimmed, "["):
		var array []struct {
			Name     string          `json:"name"`
			MimeType string          `json:"mime-type,omitempty"`
			Value    json.RawMessage `json:"value"`
		}
		if json.Unmarshal([]byte(trimmed), &array) != nil {
			return p, core.InvalidJSON("attribute array")
		}
		attrs = make([]Attribute, 0, len(array))
		for _, a := range array {
			attrs = append(attrs, Attribute{
				Name:     a.Name,
				MimeType: a.MimeType,
				Value:    rawValue(a.Value),
			})
		}
	case strings.HasPrefix(trimmed, "{"):
		var object map[string]json.RawMessage
		if json.Unmarshal([]byte(trimmed), &object) != nil {
			return p, core.InvalidJSON("attribute object")
		}
		names := make([]string, 0, len(object))
		for name := range object {
			names = append(names, name)
		}
		sort.Strings(names)
		attrs = make([]Attribute, 0, len(object))
		for _, name := range names {
			attrs = append(attrs, Attribute{Name: name, Value: rawValue(object[name])})
		}
	default:
		return p, core.InvalidJSON("attributes must be object or array")
	}
	return PreviewCredential{
		Type:       pltype.IssueCredentialCredentialPreview,
		Attributes: attrs,
	}, nil
}

func rawValue(v json.RawMessage) string {
	var s string
	if json.Unmarshal(v, &s) == nil {
		return s
	}
	return string(v)
}

// CredDefAttr is the raw and encoded value of the credential attribute.
type CredDefAttr struct {
	Raw     string `json:"raw"`
	Encoded string `json:"encoded"`
}

// CodedValues returns the values JSON for the anoncreds credential creation.
func (p PreviewCredential) CodedValues() string {
	values := make(map[string]CredDefAttr, len(p.Attributes))
	for _, attr := range p.Attributes {
		values[attr.Name] = CredDefAttr{Raw: attr.Value, Encoded: EncodeValue(attr.Value)}
	}
	return dto.ToJSON(values)
}

// EncodeValue encodes the raw attribute value like the Aries RFC 0036 tells:
// 32-bit integers are used as is, other values are SHA-256 hashed and
// presented as a decimal big integer.
func EncodeValue(raw string) string {
	if i, err := strconv.ParseInt(raw, 10, 32); err == nil {
		return strconv.FormatInt(i, 10)
	}
	h := sha256.Sum256([]byte(raw))
	return new(big.Int).SetBytes(h[:]).String()
}
