package curve

import (
	"github.com/mahdiidarabi/hashhunt/pkg/field"
	"github.com/pkg/errors"
)

const (
	// CompressedLen is the size of a SEC1 compressed public key.
	CompressedLen = 33

	// UncompressedLen is the size of a SEC1 uncompressed public key.
	UncompressedLen = 65

	prefixEven         = 0x02
	prefixOdd          = 0x03
	prefixUncompressed = 0x04
)

// PutCompressed writes the 33-byte compressed encoding of p into dst.
// The prefix is 0x02 for even y and 0x03 for odd y.
func (p *Point) PutCompressed(dst []byte) {
	dst[0] = prefixEven
	if p.Y.IsOdd() {
		dst[0] = prefixOdd
	}
	p.X.PutBytes(dst[1:CompressedLen])
}

// PutUncompressed writes the 65-byte uncompressed encoding of p into dst.
func (p *Point) PutUncompressed(dst []byte) {
	dst[0] = prefixUncompressed
	p.X.PutBytes(dst[1:33])
	p.Y.PutBytes(dst[33:UncompressedLen])
}

// SerializeCompressed returns the compressed SEC1 encoding of p.
func (p Point) SerializeCompressed() [CompressedLen]byte {
	var out [CompressedLen]byte
	p.PutCompressed(out[:])
	return out
}

// SerializeUncompressed returns the uncompressed SEC1 encoding of p.
func (p Point) SerializeUncompressed() [UncompressedLen]byte {
	var out [UncompressedLen]byte
	p.PutUncompressed(out[:])
	return out
}

// ParsePubKey decodes a compressed or uncompressed SEC1 public key. For the
// compressed form y is recovered as a square root of x^3 + 7 and negated
// when its parity disagrees with the prefix.
func ParsePubKey(b []byte) (Point, error) {
	if len(b) == 0 {
		return Point{}, errors.Wrap(ErrInvalidPubKey, "empty input")
	}

	switch {
	case len(b) == CompressedLen && (b[0] == prefixEven || b[0] == prefixOdd):
		var x field.Element
		if _, err := x.SetBytes(b[1:]); err != nil {
			return Point{}, errors.Wrap(ErrInvalidPubKey, err.Error())
		}
		y, err := recoverY(&x, b[0] == prefixOdd)
		if err != nil {
			return Point{}, err
		}
		return NewPoint(x, y), nil

	case len(b) == UncompressedLen && b[0] == prefixUncompressed:
		var x, y field.Element
		if _, err := x.SetBytes(b[1:33]); err != nil {
			return Point{}, errors.Wrap(ErrInvalidPubKey, err.Error())
		}
		if _, err := y.SetBytes(b[33:]); err != nil {
			return Point{}, errors.Wrap(ErrInvalidPubKey, err.Error())
		}
		p := NewPoint(x, y)
		if !p.OnCurve() {
			return Point{}, ErrNotOnCurve
		}
		return p, nil
	}

	return Point{}, errors.Wrapf(ErrInvalidPubKey, "length %d with prefix 0x%02x", len(b), b[0])
}

func recoverY(x *field.Element, odd bool) (field.Element, error) {
	var rhs, y field.Element
	rhs.Square(x)
	rhs.Mul(&rhs, x)
	rhs.Add(&rhs, &curveB)
	if !y.Sqrt(&rhs) {
		return field.Element{}, errors.Wrap(ErrNotOnCurve, "x has no matching y")
	}
	if y.IsOdd() != odd {
		y.Negate(&y)
	}
	return y, nil
}
