// Package outofband implements the messages of Aries RFC 0434 out-of-band
// protocol.
package outofband

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/agent/pltype"
	"github.com/findy-network/findy-aries-fsm/std/decorator"
	"github.com/findy-network/findy-aries-fsm/std/did"
	"github.com/mr-tron/base58"
)

func init() {
	aries.Creator.Add(aries.KindOutOfBandInvitation, aries.Unmarshaler[Invitation]())
	aries.Creator.Add(aries.KindHandshakeReuse, aries.Unmarshaler[HandshakeReuse]())
	aries.Creator.Add(aries.KindHandshakeReuseAccepted, aries.Unmarshaler[HandshakeReuseAccepted]())
}

const (
	ServiceTypeDIDComm = "did-communication"

	didKeyMultibase = "z"
)

// ed25519-pub multicodec varint
var ed25519Codec = []byte{0xed, 0x01}

type Invitation struct {
	aries.Header
	Label              string                 `json:"label,omitempty"`
	GoalCode           string                 `json:"goal_code,omitempty"`
	Goal               string                 `json:"goal,omitempty"`
	Accept             []string               `json:"accept,omitempty"`
	HandshakeProtocols []string               `json:"handshake_protocols,omitempty"`
	RequestsAttach     []decorator.Attachment `json:"requests~attach,omitempty"`
	Services           []Service              `json:"services"`
}

func (*Invitation) Kind() aries.Kind {
	return aries.KindOutOfBandInvitation
}

// Service is either a DID or an inline service block.
type Service struct {
	DID    string
	Inline *InlineService
}

type InlineService struct {
	ID              string   `json:"id"`
	Type            string   `json:"type"`
	RecipientKeys   []string `json:"recipientKeys"`
	RoutingKeys     []string `json:"routingKeys,omitempty"`
	ServiceEndpoint string   `json:"serviceEndpoint"`
}

func (s Service) MarshalJSON() ([]byte, error) {
	if s.Inline != nil {
		return json.Marshal(s.Inline)
	}
	return json.Marshal(s.DID)
}

func (s *Service) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &s.DID)
	}
	s.Inline = new(InlineService)
	return json.Unmarshal(data, s.Inline)
}

// Doc builds the DID doc from the inline service. did:key recipient keys
// are converted to base58 verkeys. If the service is a DID, it must be
// resolved by the caller and nil is returned.
func (s Service) Doc(id string) (*did.Doc, error) {
	if s.Inline == nil {
		return nil, nil
	}
	recipientKeys := make([]string, 0, len(s.Inline.RecipientKeys))
	for _, key := range s.Inline.RecipientKeys {
		verKey, err := VerKey(key)
		if err != nil {
			return nil, err
		}
		recipientKeys = append(recipientKeys, verKey)
	}
	routingKeys := make([]string, 0, len(s.Inline.RoutingKeys))
	for _, key := range s.Inline.RoutingKeys {
		verKey, err := VerKey(key)
		if err != nil {
			return nil, err
		}
		routingKeys = append(routingKeys, verKey)
	}
	if len(routingKeys) == 0 {
		routingKeys = nil
	}
	return did.NewDoc(id, recipientKeys, routingKeys, s.Inline.ServiceEndpoint), nil
}

// VerKey returns the base58 verkey of the key which can be did:key or raw
// verkey.
func VerKey(key string) (string, error) {
	if !strings.HasPrefix(key, did.DIDKeyPrefix) {
		return key, nil
	}
	mb := strings.TrimPrefix(key, did.DIDKeyPrefix)
	mb, _, _ = strings.Cut(mb, "#")
	if !strings.HasPrefix(mb, didKeyMultibase) {
		return "", fmt.Errorf("did:key %s: unsupported multibase", key)
	}
	raw, err := base58.Decode(strings.TrimPrefix(mb, didKeyMultibase))
	if err != nil {
		return "", fmt.Errorf("did:key %s: %w", key, err)
	}
	if len(raw) != len(ed25519Codec)+32 ||
		raw[0] != ed25519Codec[0] || raw[1] != ed25519Codec[1] {
		return "", fmt.Errorf("did:key %s: not ed25519 key", key)
	}
	return base58.Encode(raw[len(ed25519Codec):]), nil
}

// DIDKey returns the did:key presentation of the base58 verkey.
func DIDKey(verKey string) (string, error) {
	raw, err := base58.Decode(verKey)
	if err != nil {
		return "", err
	}
	return did.DIDKeyPrefix + didKeyMultibase +
		base58.Encode(append(append([]byte{}, ed25519Codec...), raw...)), nil
}

// NewInvitation builds an invitation for the connections handshake with the
// inline service.
func NewInvitation(label string, recipientKeys, routingKeys []string, endpoint string) (*Invitation, error) {
	inv := &Invitation{
		Header:             aries.NewHeader(aries.KindOutOfBandInvitation),
		Label:              label,
		HandshakeProtocols: []string{pltype.HandshakeConnections},
	}
	service := &InlineService{
		ID:              "#inline",
		Type:            ServiceTypeDIDComm,
		ServiceEndpoint: endpoint,
		RoutingKeys:     routingKeys,
	}
	for _, key := range recipientKeys {
		didKey, err := DIDKey(key)
		if err != nil {
			return nil, err
		}
		service.RecipientKeys = append(service.RecipientKeys, didKey)
	}
	inv.Services = []Service{{Inline: service}}
	return inv, nil
}

// HandshakeReuse tells the inviter that an existing connection is reused.
// The pthid is the invitation ID.
type HandshakeReuse struct {
	aries.Threaded
}

func (*HandshakeReuse) Kind() aries.Kind {
	return aries.KindHandshakeReuse
}

func NewHandshakeReuse(invitationID string) *HandshakeReuse {
	return &HandshakeReuse{
		Threaded: aries.NewThreaded(aries.KindHandshakeReuse, "", invitationID),
	}
}

type HandshakeReuseAccepted struct {
	aries.Threaded
}

func (*HandshakeReuseAccepted) Kind() aries.Kind {
	return aries.KindHandshakeReuseAccepted
}

// NewHandshakeReuseAccepted answers to the reuse in its thread.
func NewHandshakeReuseAccepted(reuse *HandshakeReuse) *HandshakeReuseAccepted {
	thid, _ := aries.ThreadID(reuse)
	return &HandshakeReuseAccepted{
		Threaded: aries.NewThreaded(aries.KindHandshakeReuseAccepted, thid,
			aries.ParentThreadID(reuse)),
	}
}
