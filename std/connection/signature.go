package connection

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/agent/pltype"
	"github.com/findy-network/findy-aries-fsm/core"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const (
	connectionSigExpTime = 10 * 60 * 60
	timestampLen         = 8
)

var ErrSignature = errors.New("connection signature invalid")

// Sign signs the connection of the response with the verKey. The signed data
// is the big endian timestamp followed by the connection JSON.
func Sign(ctx context.Context, w core.Wallet, r *Response, verKey string) (sr *SignedResponse, err error) {
	defer err2.Handle(&err, "sign connection response")

	connectionJSON := try.To1(json.Marshal(r.Connection))
	data := make([]byte, timestampLen, timestampLen+len(connectionJSON))
	binary.BigEndian.PutUint64(data, uint64(time.Now().Unix()))
	data = append(data, connectionJSON...)

	signature := try.To1(w.Sign(ctx, verKey, data))

	return &SignedResponse{
		Threaded: aries.Threaded{
			Header: aries.Header{
				ID:   r.ID,
				Type: aries.KindConnectionResponse.Type(),
			},
			Thread: r.Thread,
		},
		ConnectionSignature: ConnectionSignature{
			Type:       pltype.ConnectionSignature,
			Signature:  base64.URLEncoding.EncodeToString(signature),
			SignedData: base64.URLEncoding.EncodeToString(data),
			SignVerKey: verKey,
		},
	}, nil
}

// Verify checks the signature of the response against their verkey, which is
// the key of the invitation, and returns the decoded response.
func Verify(ctx context.Context, w core.Wallet, sr *SignedResponse, theirVerKey string) (r *Response, err error) {
	defer err2.Handle(&err, "verify connection response")

	cs := sr.ConnectionSignature
	data := try.To1(decodeB64(cs.SignedData))
	if len(data) <= timestampLen {
		return nil, fmt.Errorf("%w: missing or invalid signature data", ErrSignature)
	}
	signature := try.To1(decodeB64(cs.Signature))

	if !try.To1(w.Verify(ctx, theirVerKey, data, signature)) {
		return nil, fmt.Errorf("%w: not signed with invitation key", ErrSignature)
	}
	if cs.SignVerKey != theirVerKey {
		return nil, fmt.Errorf("%w: signer %s doesn't match", ErrSignature, cs.SignVerKey)
	}
	if !validTimestamp(data) {
		return nil, fmt.Errorf("%w: timestamp expired", ErrSignature)
	}

	var connection Connection
	if err := json.Unmarshal(data[timestampLen:], &connection); err != nil {
		return nil, core.InvalidJSON("signed connection: %v", err)
	}
	return &Response{
		ID:         sr.ID,
		Thread:     sr.Thread,
		Connection: connection,
	}, nil
}

func validTimestamp(data []byte) bool {
	now := time.Now().Unix()
	timestamp := int64(binary.BigEndian.Uint64(data))
	diff := now - timestamp
	if diff < 0 || diff > connectionSigExpTime {
		// some agents use little endian, the RFC doesn't say
		glog.Warningf("signature timestamp %s is invalid for big endian encoding, try little endian",
			time.Unix(timestamp, 0))
		timestamp = int64(binary.LittleEndian.Uint64(data))
		diff = now - timestamp
	}
	if diff < 0 || diff > connectionSigExpTime {
		glog.Errorln("connection signature timestamp is invalid: ", timestamp)
		return false
	}
	glog.V(3).Info("verified connection signature w/ ts:", time.Unix(timestamp, 0))
	return true
}

func decodeB64(s string) ([]byte, error) {
	for _, enc := range []*base64.Encoding{
		base64.URLEncoding,
		base64.StdEncoding,
		base64.RawURLEncoding,
		base64.RawStdEncoding,
	} {
		if d, err := enc.DecodeString(s); err == nil {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: cannot decode base64", ErrSignature)
}
