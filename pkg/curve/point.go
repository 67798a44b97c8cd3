// Package curve implements secp256k1 group operations on affine and
// projective points, fixed-base scalar multiplication through a precomputed
// table, and batched point walks that share one field inversion per batch.
//
// All addition functions are total: the identity, equal operands and
// opposite operands are handled explicitly and never produce garbage.
package curve

import (
	"math/big"

	"github.com/mahdiidarabi/hashhunt/pkg/field"
	"github.com/pkg/errors"
)

// Order is the order n of the secp256k1 base point.
var Order, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)

var (
	// ErrNotOnCurve reports a point that does not satisfy y^2 = x^3 + 7.
	ErrNotOnCurve = errors.New("curve: point is not on the curve")

	// ErrDegenerateBatch reports a batch whose anchor shares an x coordinate
	// with one of the step points, so the chord formula would divide by zero.
	ErrDegenerateBatch = errors.New("curve: degenerate batch addition")

	// ErrInvalidPubKey reports a malformed serialized public key.
	ErrInvalidPubKey = errors.New("curve: invalid public key encoding")
)

var (
	curveB = *field.NewElement(7)

	generator = func() Point {
		var x, y field.Element
		if _, err := x.SetHex("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"); err != nil {
			panic(err)
		}
		if _, err := y.SetHex("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8"); err != nil {
			panic(err)
		}
		return Point{X: x, Y: y}
	}()
)

// Point is an affine curve point. The zero value is not the identity; use
// Infinity for that.
type Point struct {
	X, Y     field.Element
	infinity bool
}

// NewPoint returns the affine point (x, y). It does not check membership.
func NewPoint(x, y field.Element) Point {
	return Point{X: x, Y: y}
}

// Infinity returns the point at infinity.
func Infinity() Point {
	return Point{infinity: true}
}

// Generator returns the base point G.
func Generator() Point {
	return generator
}

// IsInfinity reports whether p is the identity.
func (p Point) IsInfinity() bool {
	return p.infinity
}

// Equal reports whether p and q are the same point.
func (p Point) Equal(q Point) bool {
	if p.infinity || q.infinity {
		return p.infinity == q.infinity
	}
	return p.X.Equal(&q.X) && p.Y.Equal(&q.Y)
}

// OnCurve reports whether y^2 - (x^3 + 7) == 0 mod P. The identity is
// considered on the curve.
func (p Point) OnCurve() bool {
	if p.infinity {
		return true
	}
	var lhs, rhs field.Element
	lhs.Square(&p.Y)
	rhs.Square(&p.X)
	rhs.Mul(&rhs, &p.X)
	rhs.Add(&rhs, &curveB)
	return lhs.Equal(&rhs)
}

// Projective lifts p to projective coordinates with Z = 1.
func (p Point) Projective() ProjectivePoint {
	if p.infinity {
		return ProjectivePoint{}
	}
	return ProjectivePoint{X: p.X, Y: p.Y, Z: field.One()}
}

func (p Point) String() string {
	if p.infinity {
		return "infinity"
	}
	return "(" + p.X.String() + ", " + p.Y.String() + ")"
}

// Negate returns -p.
func Negate(p Point) Point {
	if p.infinity {
		return p
	}
	r := p
	r.Y.Negate(&p.Y)
	return r
}

// Double returns 2p using the affine tangent formula. Points with y = 0 and
// the identity double to the identity.
func Double(p Point) Point {
	if p.infinity || p.Y.IsZero() {
		return Infinity()
	}

	// lambda = 3x^2 / 2y
	var num, den, lambda field.Element
	num.Square(&p.X)
	num.MulInt(&num, 3)
	den.Add(&p.Y, &p.Y)
	den.Inverse(&den)
	lambda.Mul(&num, &den)

	return chord(&lambda, &p.X, &p.X, &p.Y)
}

// AddAffine returns p + q with a single field inversion. Equal operands are
// doubled and opposite operands give the identity.
func AddAffine(p, q Point) Point {
	switch {
	case p.infinity:
		return q
	case q.infinity:
		return p
	}
	if p.X.Equal(&q.X) {
		if p.Y.Equal(&q.Y) {
			return Double(p)
		}
		return Infinity()
	}

	// lambda = (y2 - y1) / (x2 - x1)
	var num, den, lambda field.Element
	num.Sub(&q.Y, &p.Y)
	den.Sub(&q.X, &p.X)
	den.Inverse(&den)
	lambda.Mul(&num, &den)

	return chord(&lambda, &p.X, &q.X, &p.Y)
}

// Sub returns p - q.
func Sub(p, q Point) Point {
	return AddAffine(p, Negate(q))
}

// chord completes an affine addition given the slope through (x1, y1):
// x3 = lambda^2 - x1 - x2, y3 = lambda(x1 - x3) - y1.
func chord(lambda, x1, x2, y1 *field.Element) Point {
	var r Point
	r.X.Square(lambda)
	r.X.Sub(&r.X, x1)
	r.X.Sub(&r.X, x2)
	r.Y.Sub(x1, &r.X)
	r.Y.Mul(&r.Y, lambda)
	r.Y.Sub(&r.Y, y1)
	return r
}

// ScalarMult returns k*p by plain double-and-add. It is the slow reference
// path; fixed-base work goes through Table.
func ScalarMult(p Point, k *big.Int) Point {
	s := new(big.Int).Mod(k, Order)
	acc := ProjectivePoint{}
	for i := s.BitLen() - 1; i >= 0; i-- {
		acc = acc.Double()
		if s.Bit(i) == 1 {
			acc = AddMixed(acc, p)
		}
	}
	return acc.ToAffine()
}
