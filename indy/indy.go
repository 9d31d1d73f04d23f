// Package indy adapts the libindy wallet, ledger and anoncreds of
// findy-wrapper-go to the capabilities of the protocol state machines.
//
// The revocation registries need blob storage handles which the adapter
// doesn't manage yet, so the revocation operations return
// core.ErrNotSupported and the adapter isn't a core.LedgerWriter.
package indy

import (
	"context"
	"encoding/json"

	"github.com/findy-network/findy-aries-fsm/core"
	"github.com/findy-network/findy-aries-fsm/protocol/presentproof"
	"github.com/findy-network/findy-common-go/dto"
	"github.com/findy-network/findy-wrapper-go"
	"github.com/findy-network/findy-wrapper-go/anoncreds"
	indycrypto "github.com/findy-network/findy-wrapper-go/crypto"
	"github.com/findy-network/findy-wrapper-go/did"
	"github.com/findy-network/findy-wrapper-go/ledger"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const fetchMax = 100

type Config struct {
	// Wallet and Pool are the opened libindy handles.
	Wallet int
	Pool   int

	// SubmitterDID is used for the ledger reads.
	SubmitterDID string

	MasterSecretID string
}

// Indy implements core.Wallet, core.LedgerReader and core.Anoncreds with
// the libindy handles. The handles are owned by the caller.
type Indy struct {
	cfg Config
}

var (
	_ core.Wallet       = (*Indy)(nil)
	_ core.LedgerReader = (*Indy)(nil)
	_ core.Anoncreds    = (*Indy)(nil)
)

func New(cfg Config) *Indy {
	return &Indy{cfg: cfg}
}

// MARK: Wallet

func (i *Indy) CreateKey(_ context.Context, seed string) (d, verKey string, err error) {
	defer err2.Handle(&err, "indy create key")

	r := <-did.CreateAndStore(i.cfg.Wallet, did.Did{Seed: seed})
	try.To(r.Err())
	return r.Str1(), r.Str2(), nil
}

func (i *Indy) Sign(_ context.Context, verKey string, data []byte) (_ []byte, err error) {
	defer err2.Handle(&err, "indy sign")

	r := <-indycrypto.SignMsg(i.cfg.Wallet, verKey, data)
	try.To(r.Err())
	return r.Bytes(), nil
}

func (i *Indy) Verify(_ context.Context, verKey string, data, signature []byte) (_ bool, err error) {
	defer err2.Handle(&err, "indy verify")

	r := <-indycrypto.VerifySignature(verKey, data, signature)
	try.To(r.Err())
	return r.Yes(), nil
}

// MARK: Ledger

func (i *Indy) Schema(_ context.Context, id string) (_ string, err error) {
	defer err2.Handle(&err, "indy schema %s", id)

	_, schema := try.To2(ledger.ReadSchema(i.cfg.Pool, i.cfg.SubmitterDID, id))
	return schema, nil
}

func (i *Indy) CredDef(_ context.Context, id string) (_ string, err error) {
	defer err2.Handle(&err, "indy cred def %s", id)

	_, cd := try.To2(ledger.ReadCredDef(i.cfg.Pool, i.cfg.SubmitterDID, id))
	return cd, nil
}

func (i *Indy) RevRegDef(context.Context, string) (string, error) {
	return "", notSupported("rev reg def")
}

func (i *Indy) RevRegDelta(context.Context, string, int64, int64) (string, int64, error) {
	return "", 0, notSupported("rev reg delta")
}

func (i *Indy) RevReg(context.Context, string, int64) (string, error) {
	return "", notSupported("rev reg")
}

// MARK: Issuer

func (i *Indy) IssuerCreateCredentialOffer(_ context.Context, credDefID string) (_ string, err error) {
	defer err2.Handle(&err, "indy credential offer")

	r := <-anoncreds.IssuerCreateCredentialOffer(i.cfg.Wallet, credDefID)
	try.To(r.Err())
	return r.Str1(), nil
}

func (i *Indy) IssuerCreateCredential(
	_ context.Context,
	offer, request, values, revRegID, _ string,
) (
	cred, credRevID string,
	err error,
) {
	defer err2.Handle(&err, "indy create credential")

	if revRegID != "" {
		return "", "", notSupported("revocable credential")
	}
	r := <-anoncreds.IssuerCreateCredential(i.cfg.Wallet, offer, request, values,
		findy.NullString, findy.NullHandle)
	try.To(r.Err())
	return r.Str1(), "", nil
}

func (i *Indy) IssuerRevokeCredential(context.Context, string, string, string) (string, error) {
	return "", notSupported("revoke credential")
}

func (i *Indy) IssuerRevokeCredentialLocal(context.Context, string, string, string) error {
	return notSupported("revoke credential")
}

func (i *Indy) IssuerTakeLocalRevocations(context.Context, string) (string, error) {
	return "", notSupported("local revocations")
}

// MARK: Prover

func (i *Indy) ProverCreateCredentialReq(
	_ context.Context,
	proverDID, offer, credDef string,
) (
	req, reqMeta string,
	err error,
) {
	defer err2.Handle(&err, "indy credential request")

	r := <-anoncreds.ProverCreateCredentialReq(i.cfg.Wallet, proverDID, offer,
		credDef, i.cfg.MasterSecretID)
	try.To(r.Err())
	return r.Str1(), r.Str2(), nil
}

func (i *Indy) ProverStoreCredential(
	_ context.Context,
	reqMeta, cred, credDef, revRegDef string,
) (
	_ string,
	err error,
) {
	defer err2.Handle(&err, "indy store credential")

	if revRegDef == "" {
		revRegDef = findy.NullString
	}
	r := <-anoncreds.ProverStoreCredential(i.cfg.Wallet, findy.NullString, reqMeta,
		cred, credDef, revRegDef)
	try.To(r.Err())
	return r.Str1(), nil
}

// ProverGetCredentialsForProofReq returns the matching credentials of each
// referent of the proof request:
//
//	{"attrs": {"<referent>": [{"cred_info": {...}, "interval": {...}}]}}
func (i *Indy) ProverGetCredentialsForProofReq(_ context.Context, proofReq string) (_ string, err error) {
	defer err2.Handle(&err, "indy credentials for proof request")

	req := try.To1(presentproof.ParseProofRequest([]byte(proofReq)))

	r := <-anoncreds.ProverSearchCredentialsForProofReq(i.cfg.Wallet, proofReq, findy.NullString)
	try.To(r.Err())
	searchHandle := r.Handle()
	defer func() {
		r := <-anoncreds.ProverCloseCredentialsSearchForProofReq(searchHandle)
		if r.Err() != nil {
			glog.Errorln("close credential search:", r.Err())
		}
	}()

	attrs := make(map[string][]json.RawMessage,
		len(req.RequestedAttributes)+len(req.RequestedPredicates))
	fetch := func(ref string) {
		creds := make([]json.RawMessage, 0)
		for {
			r := <-anoncreds.ProverFetchCredentialsForProofReq(searchHandle, ref, fetchMax)
			try.To(r.Err())
			var batch []json.RawMessage
			dto.FromJSONStr(r.Str1(), &batch)
			creds = append(creds, batch...)
			if len(batch) < fetchMax {
				break
			}
		}
		attrs[ref] = creds
	}
	for ref := range req.RequestedAttributes {
		fetch(ref)
	}
	for ref := range req.RequestedPredicates {
		fetch(ref)
	}
	return dto.ToJSON(map[string]any{"attrs": attrs}), nil
}

func (i *Indy) ProverCreateProof(
	_ context.Context,
	proofReq, requestedCreds, schemas, credDefs, revStates string,
) (
	_ string,
	err error,
) {
	defer err2.Handle(&err, "indy create proof")

	r := <-anoncreds.ProverCreateProof(i.cfg.Wallet, proofReq, requestedCreds,
		i.cfg.MasterSecretID, schemas, credDefs, revStates)
	try.To(r.Err())
	return r.Str1(), nil
}

func (i *Indy) CreateRevocationState(context.Context, string, string, string, int64, string) (string, error) {
	return "", notSupported("revocation state")
}

// MARK: Verifier

func (i *Indy) VerifierVerifyProof(
	_ context.Context,
	proofReq, proof, schemas, credDefs, revRegDefs, revRegs string,
) (
	_ bool,
	err error,
) {
	defer err2.Handle(&err, "indy verify proof")

	r := <-anoncreds.VerifierVerifyProof(proofReq, proof, schemas, credDefs,
		revRegDefs, revRegs)
	try.To(r.Err())
	return r.Yes(), nil
}

func notSupported(what string) error {
	return core.NotSupported("indy: %s", what)
}
