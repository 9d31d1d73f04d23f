// Package core declares the capabilities the protocol state machines consume
// from the outside world: wallet, ledger and anoncreds. The state machines
// never keep these between calls, every transition that needs one receives it
// as an argument.
package core

import "context"

//go:generate mockgen -source=core.go -destination=mock/core_mock.go -package=mock

// Wallet is the key management capability. Keys are identified by their
// base58 encoded ed25519 verkeys.
type Wallet interface {
	// CreateKey creates and stores a new DID and its verkey. Empty seed
	// means random key.
	CreateKey(ctx context.Context, seed string) (did, verKey string, err error)

	Sign(ctx context.Context, verKey string, data []byte) ([]byte, error)

	Verify(ctx context.Context, verKey string, data, signature []byte) (bool, error)
}

type LedgerReader interface {
	Schema(ctx context.Context, id string) (string, error)
	CredDef(ctx context.Context, id string) (string, error)
	RevRegDef(ctx context.Context, id string) (string, error)

	// RevRegDelta returns the revocation registry delta between from and to
	// and the timestamp the delta is valid at.
	RevRegDelta(ctx context.Context, id string, from, to int64) (delta string, timestamp int64, err error)

	RevReg(ctx context.Context, id string, timestamp int64) (string, error)
}

type LedgerWriter interface {
	PublishRevRegDelta(ctx context.Context, revRegID, delta string) error
}

// Issuer is the issuer's part of the anoncreds capability. All of the JSON
// arguments are opaque to the state machines.
type Issuer interface {
	IssuerCreateCredentialOffer(ctx context.Context, credDefID string) (string, error)

	// IssuerCreateCredential returns the credential and its revocation ID
	// which is empty when the cred def isn't revocable.
	IssuerCreateCredential(ctx context.Context, offer, request, values,
		revRegID, tailsFile string) (cred, credRevID string, err error)

	// IssuerRevokeCredential revokes and returns the registry delta which
	// must be published to the ledger.
	IssuerRevokeCredential(ctx context.Context, tailsFile, revRegID,
		credRevID string) (delta string, err error)

	// IssuerRevokeCredentialLocal revokes without producing a delta to
	// publish, the deltas are collected until IssuerTakeLocalRevocations.
	IssuerRevokeCredentialLocal(ctx context.Context, tailsFile, revRegID,
		credRevID string) error

	IssuerTakeLocalRevocations(ctx context.Context, revRegID string) (delta string, err error)
}

type Prover interface {
	ProverCreateCredentialReq(ctx context.Context, proverDID, offer,
		credDef string) (req, reqMeta string, err error)

	ProverStoreCredential(ctx context.Context, reqMeta, cred, credDef,
		revRegDef string) (credID string, err error)

	ProverGetCredentialsForProofReq(ctx context.Context, proofReq string) (string, error)

	ProverCreateProof(ctx context.Context, proofReq, requestedCreds, schemas,
		credDefs, revStates string) (string, error)

	CreateRevocationState(ctx context.Context, tailsFile, revRegDef,
		revRegDelta string, timestamp int64, credRevID string) (string, error)
}

type Verifier interface {
	// VerifierVerifyProof returns false when the proof doesn't verify, an
	// error is returned only when the verification couldn't be executed.
	VerifierVerifyProof(ctx context.Context, proofReq, proof, schemas,
		credDefs, revRegDefs, revRegs string) (bool, error)
}

type Anoncreds interface {
	Issuer
	Prover
	Verifier
}
