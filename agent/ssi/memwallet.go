// Package ssi implements an in-memory wallet for the state machines. It's
// used by the CLI tooling and the tests, production agents plug their real
// wallet (see package indy) to the same core.Wallet interface.
package ssi

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"sync"

	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/mr-tron/base58"
)

var ErrKeyNotFound = errors.New("key not found")

// MemWallet holds Ed25519 keys indexed by their base58 verkeys. It's safe
// for concurrent use.
type MemWallet struct {
	sync.RWMutex
	keys map[string]ed25519.PrivateKey
}

func NewMemWallet() *MemWallet {
	return &MemWallet{keys: make(map[string]ed25519.PrivateKey)}
}

// CreateKey creates a new key pair. The seed must be 32 bytes if given. The
// DID is built from the first 16 bytes of the verkey like Indy does.
func (w *MemWallet) CreateKey(_ context.Context, seed string) (did, verKey string, err error) {
	defer err2.Handle(&err, "create key")

	var priv ed25519.PrivateKey
	if seed == "" {
		_, priv = try.To2(ed25519.GenerateKey(rand.Reader))
	} else {
		if len(seed) != ed25519.SeedSize {
			return "", "", fmt.Errorf("seed length must be %d", ed25519.SeedSize)
		}
		priv = ed25519.NewKeyFromSeed([]byte(seed))
	}
	pub := priv.Public().(ed25519.PublicKey)
	verKey = base58.Encode(pub)
	did = base58.Encode(pub[:16])

	w.Lock()
	defer w.Unlock()
	w.keys[verKey] = priv

	glog.V(3).Infoln("key created for DID:", did)
	return did, verKey, nil
}

func (w *MemWallet) Sign(_ context.Context, verKey string, data []byte) ([]byte, error) {
	w.RLock()
	priv, ok := w.keys[verKey]
	w.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, verKey)
	}
	return ed25519.Sign(priv, data), nil
}

// Verify doesn't need the key to be in the wallet, the verkey itself is the
// public key.
func (w *MemWallet) Verify(_ context.Context, verKey string, data, signature []byte) (ok bool, err error) {
	defer err2.Handle(&err, "verify")

	pub := try.To1(base58.Decode(verKey))
	if len(pub) != ed25519.PublicKeySize {
		return false, fmt.Errorf("verkey length %d", len(pub))
	}
	return ed25519.Verify(pub, data, signature), nil
}
