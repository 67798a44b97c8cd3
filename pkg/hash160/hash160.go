// Package hash160 computes RIPEMD160(SHA256(x)) digests of serialized public
// keys and matches them against one or more target digests.
package hash160

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // HASH160 is defined over RIPEMD-160
)

// Size is the length of a HASH160 digest in bytes.
const Size = ripemd160.Size

// ErrInvalidDigest is returned for target text that is not 40 hex digits.
var ErrInvalidDigest = errors.New("hash160: digest must be 40 hexadecimal characters")

// Digest is a 20-byte HASH160 value.
type Digest [Size]byte

// ParseDigest parses a 40-character hex digest. Surrounding whitespace is
// trimmed and letter case is ignored.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	s = strings.TrimSpace(s)
	if len(s) != 2*Size {
		return d, errors.Wrapf(ErrInvalidDigest, "got %d characters", len(s))
	}
	if _, err := hex.Decode(d[:], []byte(strings.ToLower(s))); err != nil {
		return d, errors.Wrap(ErrInvalidDigest, err.Error())
	}
	return d, nil
}

// String returns the lowercase hex form of d.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Sum returns RIPEMD160(SHA256(b)).
func Sum(b []byte) Digest {
	return NewHasher().Sum(b)
}

// Hasher reuses its hash states across calls. It is not safe for concurrent
// use; keep one per goroutine.
type Hasher struct {
	sha  hash.Hash
	ripe hash.Hash
	buf  [sha256.Size]byte
}

// NewHasher returns a ready Hasher.
func NewHasher() *Hasher {
	return &Hasher{
		sha:  sha256.New(),
		ripe: ripemd160.New(),
	}
}

// Sum returns RIPEMD160(SHA256(b)).
func (h *Hasher) Sum(b []byte) Digest {
	h.sha.Reset()
	h.sha.Write(b)
	inner := h.sha.Sum(h.buf[:0])

	h.ripe.Reset()
	h.ripe.Write(inner)
	var d Digest
	h.ripe.Sum(d[:0])
	return d
}
