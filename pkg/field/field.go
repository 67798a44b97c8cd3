// Package field implements arithmetic on secp256k1 base field elements.
//
// Elements are integers modulo P = 2^256 - 2^32 - 977. Every exported
// operation leaves its result fully reduced, so two elements holding the same
// residue always compare equal and serialize to the same bytes.
//
// Methods follow the math/big convention: the receiver is the destination and
// is returned to allow chaining, e.g. x.Mul(a, b).Add(x, c).
package field

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
)

// Size is the length in bytes of a serialized field element.
const Size = 32

// Prime is the secp256k1 field prime P.
var Prime, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F", 16)

var (
	// ErrZeroInverse is returned when an inversion is requested for zero.
	ErrZeroInverse = errors.New("field: inverse of zero")

	// ErrInvalidEncoding is returned for byte or hex input that is not a
	// canonical field element.
	ErrInvalidEncoding = errors.New("field: invalid encoding")
)

// Element is a field element in canonical form. The zero value is 0.
type Element struct {
	v secp256k1.FieldVal
}

// NewElement returns a new element holding the small value n.
func NewElement(n uint16) *Element {
	return new(Element).SetInt(n)
}

// Zero returns the additive identity.
func Zero() Element { return Element{} }

// One returns the multiplicative identity.
func One() Element {
	var e Element
	e.v.SetInt(1)
	return e
}

// Set sets e = a.
func (e *Element) Set(a *Element) *Element {
	e.v.Set(&a.v)
	return e
}

// SetInt sets e to the small value n.
func (e *Element) SetInt(n uint16) *Element {
	e.v.SetInt(n)
	return e
}

// SetBytes sets e from a 32-byte big-endian encoding. Values >= P are
// rejected so that every element has exactly one encoding.
func (e *Element) SetBytes(b []byte) (*Element, error) {
	if len(b) != Size {
		return nil, errors.Wrapf(ErrInvalidEncoding, "expected %d bytes, got %d", Size, len(b))
	}
	var buf [Size]byte
	copy(buf[:], b)
	if overflow := e.v.SetBytes(&buf); overflow != 0 {
		return nil, errors.Wrap(ErrInvalidEncoding, "value is not below the field prime")
	}
	return e, nil
}

// SetBig sets e = x mod P.
func (e *Element) SetBig(x *big.Int) *Element {
	r := new(big.Int).Mod(x, Prime)
	var buf [Size]byte
	r.FillBytes(buf[:])
	e.v.SetBytes(&buf)
	e.v.Normalize()
	return e
}

// SetHex parses a big-endian hex string of at most 64 digits, with or
// without a 0x prefix.
func (e *Element) SetHex(s string) (*Element, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if len(s) == 0 || len(s) > 2*Size {
		return nil, errors.Wrapf(ErrInvalidEncoding, "hex length %d", len(s))
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidEncoding, err.Error())
	}
	var buf [Size]byte
	copy(buf[Size-len(raw):], raw)
	return e.SetBytes(buf[:])
}

// Bytes returns the 32-byte big-endian encoding of e.
func (e *Element) Bytes() [Size]byte {
	var out [Size]byte
	e.v.PutBytes(&out)
	return out
}

// PutBytes writes the encoding of e into dst, which must hold 32 bytes.
func (e *Element) PutBytes(dst []byte) {
	e.v.PutBytesUnchecked(dst)
}

// Big returns e as a new big.Int.
func (e *Element) Big() *big.Int {
	b := e.Bytes()
	return new(big.Int).SetBytes(b[:])
}

func (e *Element) String() string {
	b := e.Bytes()
	return hex.EncodeToString(b[:])
}

// IsZero reports whether e == 0.
func (e *Element) IsZero() bool { return e.v.IsZero() }

// IsOne reports whether e == 1.
func (e *Element) IsOne() bool { return e.v.IsOne() }

// IsOdd reports whether the canonical value of e is odd.
func (e *Element) IsOdd() bool { return e.v.IsOdd() }

// Equal reports whether e and a hold the same residue.
func (e *Element) Equal(a *Element) bool { return e.v.Equals(&a.v) }

// Add sets e = a + b.
func (e *Element) Add(a, b *Element) *Element {
	e.v.Add2(&a.v, &b.v).Normalize()
	return e
}

// Sub sets e = a - b.
func (e *Element) Sub(a, b *Element) *Element {
	var nb secp256k1.FieldVal
	nb.NegateVal(&b.v, 1)
	e.v.Add2(&a.v, &nb).Normalize()
	return e
}

// Negate sets e = -a.
func (e *Element) Negate(a *Element) *Element {
	e.v.NegateVal(&a.v, 1).Normalize()
	return e
}

// Mul sets e = a * b.
func (e *Element) Mul(a, b *Element) *Element {
	e.v.Mul2(&a.v, &b.v).Normalize()
	return e
}

// MulInt sets e = a * n for a small n.
func (e *Element) MulInt(a *Element, n uint8) *Element {
	e.v.Set(&a.v)
	e.v.MulInt(n).Normalize()
	return e
}

// Square sets e = a^2.
func (e *Element) Square(a *Element) *Element {
	e.v.SquareVal(&a.v).Normalize()
	return e
}

// Inverse sets e = 1/a. Zero has no inverse and maps to zero; callers that
// must not divide by zero check IsZero first.
func (e *Element) Inverse(a *Element) *Element {
	e.v.Set(&a.v)
	e.v.Inverse().Normalize()
	return e
}

// Sqrt sets e to a square root of a and reports whether one exists. Since
// P = 3 mod 4 the root is a^((P+1)/4). When false is returned e is left
// holding an unspecified value.
func (e *Element) Sqrt(a *Element) bool {
	ok := e.v.SquareRootVal(&a.v)
	e.v.Normalize()
	return ok
}
