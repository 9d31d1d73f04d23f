package utils

import (
	"crypto/rand"
	"math"
	"math/big"
	"strconv"

	"github.com/golang/glog"
	"github.com/google/uuid"
)

func gen() uint64 {
	m := big.NewInt(math.MaxInt64)
	r, err := rand.Int(rand.Reader, m)
	if err != nil {
		panic("cannot create nonce")
	}
	return r.Uint64()
}

// NewNonce generates new uint64 nonce with Go's crypto package
func NewNonce() uint64 {
	return gen()
}

// NewNonceStr generates new nonce with Go's crypto package, and returns value
// as string. Proof requests use it as their nonce.
func NewNonceStr() string {
	return NonceToStr(NewNonce())
}

// UUID generates new random UUID string. It's used for message and thread
// IDs.
func UUID() string {
	return uuid.New().String()
}

func NonceToStr(n uint64) string {
	return strconv.FormatUint(n, 10)
}

func NonceNum(s string) uint64 {
	sn := s
	if sn == "" {
		sn = "0"
	}
	n, err := strconv.ParseUint(sn, 10, 64)
	if err != nil {
		glog.Warning("Error nonce conversion! Using zero")
		n = 0
	}
	return n
}
