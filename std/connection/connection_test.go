package connection

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"testing"
	"time"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/agent/ssi"
	"github.com/findy-network/findy-aries-fsm/std/decorator"
	"github.com/findy-network/findy-aries-fsm/std/did"
	"github.com/stretchr/testify/require"
)

const pairwiseInvitationJSON = `{
  "@type": "did:sov:BzCbsNYhMrjHiqZDTUASHg;spec/connections/1.0/invitation",
  "@id": "12345678900987654321",
  "label": "Alice",
  "recipientKeys": ["8HH5gYEeNc3z7PYXmd54d4x6qAfCNrqQqEB3nS7Zfu7K"],
  "serviceEndpoint": "https://example.com/endpoint",
  "routingKeys": ["8HH5gYEeNc3z7PYXmd54d4x6qAfCNrqQqEB3nS7Zfu7K"]
}`

const publicInvitationJSON = `{
  "@type": "https://didcomm.org/connections/1.0/invitation",
  "@id": "12345678900987654321",
  "label": "Faber",
  "did": "did:sov:QmWbsNYhMrjHiqZDTUTEJs"
}`

func TestInvitation_Parse(t *testing.T) {
	m, err := aries.ParseString(pairwiseInvitationJSON)
	require.NoError(t, err)
	inv, ok := m.(*PairwiseInvitation)
	require.True(t, ok)
	require.Equal(t, "Alice", inv.Label)
	require.Len(t, inv.RecipientKeys, 1)
	require.False(t, aries.ThreadIDMatches(m, "12345678900987654321"),
		"invitations don't carry thread")

	m, err = aries.ParseString(publicInvitationJSON)
	require.NoError(t, err)
	pub, ok := m.(*PublicInvitation)
	require.True(t, ok)
	require.Equal(t, "did:sov:QmWbsNYhMrjHiqZDTUTEJs", pub.DID)
}

func newResponse(t *testing.T, w *ssi.MemWallet) *Response {
	myDID, myVerKey, err := w.CreateKey(context.Background(), "")
	require.NoError(t, err)
	return &Response{
		ID:     "response-id",
		Thread: &decorator.Thread{ID: "thread-id"},
		Connection: Connection{
			DID:    myDID,
			DIDDoc: did.NewDoc(myDID, []string{myVerKey}, nil, "http://localhost"),
		},
	}
}

func TestSignVerify(t *testing.T) {
	ctx := context.Background()
	w := ssi.NewMemWallet()
	_, invKey, err := w.CreateKey(ctx, "")
	require.NoError(t, err)
	_, otherKey, err := w.CreateKey(ctx, "")
	require.NoError(t, err)

	r := newResponse(t, w)
	sr, err := Sign(ctx, w, r, invKey)
	require.NoError(t, err)
	require.Equal(t, invKey, sr.ConnectionSignature.SignVerKey)
	require.True(t, aries.ThreadIDMatches(sr, "thread-id"))

	// wire round trip
	data, err := aries.Marshal(sr)
	require.NoError(t, err)
	m, err := aries.Parse(data)
	require.NoError(t, err)
	require.Equal(t, sr, m)

	got, err := Verify(ctx, w, sr, invKey)
	require.NoError(t, err)
	require.Equal(t, r, got)
	require.Equal(t, "thread-id", got.ThreadID())

	_, err = Verify(ctx, w, sr, otherKey)
	require.ErrorIs(t, err, ErrSignature)
}

func TestVerify_Tampered(t *testing.T) {
	ctx := context.Background()
	w := ssi.NewMemWallet()
	_, invKey, err := w.CreateKey(ctx, "")
	require.NoError(t, err)

	sr, err := Sign(ctx, w, newResponse(t, w), invKey)
	require.NoError(t, err)

	data, err := base64.URLEncoding.DecodeString(sr.ConnectionSignature.SignedData)
	require.NoError(t, err)
	data[len(data)-2] ^= 0xFF
	sr.ConnectionSignature.SignedData = base64.URLEncoding.EncodeToString(data)

	_, err = Verify(ctx, w, sr, invKey)
	require.ErrorIs(t, err, ErrSignature)

	sr.ConnectionSignature.SignedData = "AAAA"
	_, err = Verify(ctx, w, sr, invKey)
	require.ErrorIs(t, err, ErrSignature)
}

func TestVerify_Expired(t *testing.T) {
	ctx := context.Background()
	w := ssi.NewMemWallet()
	_, invKey, err := w.CreateKey(ctx, "")
	require.NoError(t, err)

	connJSON, err := json.Marshal(newResponse(t, w).Connection)
	require.NoError(t, err)
	data := make([]byte, timestampLen)
	binary.BigEndian.PutUint64(data, uint64(time.Now().Add(-24*time.Hour).Unix()))
	data = append(data, connJSON...)
	sig, err := w.Sign(ctx, invKey, data)
	require.NoError(t, err)

	sr := &SignedResponse{ConnectionSignature: ConnectionSignature{
		Signature:  base64.URLEncoding.EncodeToString(sig),
		SignedData: base64.URLEncoding.EncodeToString(data),
		SignVerKey: invKey,
	}}
	_, err = Verify(ctx, w, sr, invKey)
	require.ErrorIs(t, err, ErrSignature)
}

func TestProblemReport(t *testing.T) {
	pr := NewProblemReport("thread", "request_processing_error", "bad doc")
	data, err := aries.Marshal(pr)
	require.NoError(t, err)

	m, err := aries.Parse(data)
	require.NoError(t, err)
	got, ok := m.(*ProblemReport)
	require.True(t, ok)
	require.Equal(t, pr, got)
	require.Equal(t, aries.KindConnectionProblemReport, got.Kind())
}
