// Package did implements the DID Document of the Aries connection protocol,
// the legacy Indy flavor which carries Ed25519 verkeys in base58.
package did

import (
	"errors"
	"fmt"
	"strings"

	afgodid "github.com/hyperledger/aries-framework-go/pkg/doc/did"
	"github.com/mr-tron/base58"
)

const (
	Context           = "https://w3id.org/did/v1"
	KeyType           = "Ed25519VerificationKey2018"
	AuthType          = "Ed25519SignatureAuthentication2018"
	ServiceTypeIndy   = "IndyAgent"
	DIDKeyPrefix      = "did:key:"
	ed25519PubKeySize = 32
)

var ErrInvalidDoc = errors.New("DID doc validation failed")

// Doc DID Document definition
type Doc struct {
	Context        string               `json:"@context,omitempty"`
	ID             string               `json:"id,omitempty"`
	PublicKey      []PublicKey          `json:"publicKey,omitempty"`
	Service        []Service            `json:"service,omitempty"`
	Authentication []VerificationMethod `json:"authentication,omitempty"`
}

// PublicKey DID doc public key
type PublicKey struct {
	ID              string `json:"id,omitempty"`
	Type            string `json:"type,omitempty"`
	Controller      string `json:"controller,omitempty"`
	PublicKeyBase58 string `json:"publicKeyBase58,omitempty"`
}

// Service DID doc service
type Service struct {
	ID              string   `json:"id,omitempty"`
	Type            string   `json:"type,omitempty"`
	Priority        uint     `json:"priority,omitempty"`
	RecipientKeys   []string `json:"recipientKeys,omitempty"`
	RoutingKeys     []string `json:"routingKeys,omitempty"`
	ServiceEndpoint string   `json:"serviceEndpoint"`
}

// VerificationMethod authentication verification method
type VerificationMethod struct {
	Type      string `json:"type,omitempty"`
	PublicKey string `json:"publicKey,omitempty"`
}

// NewDoc builds a DID doc with one service. The recipient keys are
// registered as public keys and authentication methods.
func NewDoc(did string, recipientKeys, routingKeys []string, endpoint string) *Doc {
	doc := &Doc{
		Context: Context,
		ID:      did,
	}
	service := Service{
		ID:              did + ";indy",
		Type:            ServiceTypeIndy,
		RoutingKeys:     routingKeys,
		ServiceEndpoint: endpoint,
	}
	for i, key := range recipientKeys {
		keyRef := fmt.Sprintf("%s#%d", did, i+1)
		doc.PublicKey = append(doc.PublicKey, PublicKey{
			ID:              keyRef,
			Type:            KeyType,
			Controller:      did,
			PublicKeyBase58: key,
		})
		doc.Authentication = append(doc.Authentication, VerificationMethod{
			Type:      AuthType,
			PublicKey: keyRef,
		})
		service.RecipientKeys = append(service.RecipientKeys, key)
	}
	doc.Service = []Service{service}
	return doc
}

// Validate checks that the doc is usable for the connection: it has an ID,
// a service, and every key it refers to is a valid Ed25519 verkey defined in
// the doc.
func (d *Doc) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: doc missing", ErrInvalidDoc)
	}
	if d.Context != Context {
		return fmt.Errorf("%w: unsupported @context %q", ErrInvalidDoc, d.Context)
	}
	if d.ID == "" {
		return fmt.Errorf("%w: id is empty", ErrInvalidDoc)
	}
	if strings.HasPrefix(d.ID, "did:") {
		if _, err := afgodid.Parse(d.ID); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDoc, err)
		}
	}
	if len(d.Service) == 0 {
		return fmt.Errorf("%w: no service", ErrInvalidDoc)
	}
	for _, s := range d.Service {
		if len(s.RecipientKeys) == 0 {
			return fmt.Errorf("%w: service %s has no recipient keys",
				ErrInvalidDoc, s.ID)
		}
		for _, key := range s.RecipientKeys {
			if err := d.validateRecipientKey(key); err != nil {
				return err
			}
		}
		for _, key := range s.RoutingKeys {
			if err := validateRoutingKey(key); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Doc) validateRecipientKey(key string) error {
	pk, ok := d.publicKey(key)
	if !ok {
		return fmt.Errorf("%w: cannot find public key definition for %s",
			ErrInvalidDoc, key)
	}
	if pk.Type != KeyType {
		return fmt.Errorf("%w: unsupported key type %s", ErrInvalidDoc, pk.Type)
	}
	if err := ValidateVerKey(pk.PublicKeyBase58); err != nil {
		return err
	}
	if len(d.Authentication) == 0 {
		return nil
	}
	for _, a := range d.Authentication {
		if a.PublicKey == pk.ID || a.PublicKey == pk.PublicKeyBase58 {
			return nil
		}
	}
	return fmt.Errorf("%w: no authentication for key %s", ErrInvalidDoc, pk.ID)
}

func validateRoutingKey(key string) error {
	if strings.HasPrefix(key, DIDKeyPrefix) {
		return nil
	}
	return ValidateVerKey(key)
}

// ValidateVerKey checks that the key is base58 encoded Ed25519 public key.
func ValidateVerKey(key string) error {
	raw, err := base58.Decode(key)
	if err != nil {
		return fmt.Errorf("%w: verkey %q: %v", ErrInvalidDoc, key, err)
	}
	if len(raw) != ed25519PubKeySize {
		return fmt.Errorf("%w: verkey %q has wrong length %d",
			ErrInvalidDoc, key, len(raw))
	}
	return nil
}

// publicKey finds the public key by its ID or by the key itself.
func (d *Doc) publicKey(key string) (PublicKey, bool) {
	for _, pk := range d.PublicKey {
		if pk.ID == key || pk.PublicKeyBase58 == key {
			return pk, true
		}
	}
	return PublicKey{}, false
}

// RecipientKeys returns the recipient verkeys of the first service. Key
// references are resolved to the keys.
func (d *Doc) RecipientKeys() []string {
	if d == nil || len(d.Service) == 0 {
		return nil
	}
	keys := make([]string, 0, len(d.Service[0].RecipientKeys))
	for _, key := range d.Service[0].RecipientKeys {
		if pk, ok := d.publicKey(key); ok {
			key = pk.PublicKeyBase58
		}
		keys = append(keys, key)
	}
	return keys
}

// RoutingKeys returns the routing keys of the first service.
func (d *Doc) RoutingKeys() []string {
	if d == nil || len(d.Service) == 0 {
		return nil
	}
	return d.Service[0].RoutingKeys
}

func (d *Doc) ServiceEndpoint() string {
	if d == nil || len(d.Service) == 0 {
		return ""
	}
	return d.Service[0].ServiceEndpoint
}
