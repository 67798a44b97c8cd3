package curve

import "github.com/mahdiidarabi/hashhunt/pkg/field"

// ProjectivePoint is a point in homogeneous projective coordinates; the
// affine point is (X/Z, Y/Z). Z = 0 is the identity, which is also what the
// zero value holds.
type ProjectivePoint struct {
	X, Y, Z field.Element
}

// IsInfinity reports whether p is the identity.
func (p ProjectivePoint) IsInfinity() bool {
	return p.Z.IsZero()
}

// ToAffine reduces p to affine coordinates with one inversion.
func (p ProjectivePoint) ToAffine() Point {
	if p.IsInfinity() {
		return Infinity()
	}
	var zInv field.Element
	zInv.Inverse(&p.Z)
	var r Point
	r.X.Mul(&p.X, &zInv)
	r.Y.Mul(&p.Y, &zInv)
	return r
}

// Double returns 2p.
//
//	W = 3X^2, S = YZ, B = XYS, H = W^2 - 8B
//	X' = 2HS, Y' = W(4B - H) - 8Y^2 S^2, Z' = 8S^3
func (p ProjectivePoint) Double() ProjectivePoint {
	if p.IsInfinity() || p.Y.IsZero() {
		return ProjectivePoint{}
	}

	var w, s, s2, b, h, t field.Element
	w.Square(&p.X)
	w.MulInt(&w, 3)
	s.Mul(&p.Y, &p.Z)
	s2.Square(&s)
	b.Mul(&p.X, &p.Y)
	b.Mul(&b, &s)

	h.Square(&w)
	t.MulInt(&b, 8)
	h.Sub(&h, &t)

	var r ProjectivePoint
	r.X.Mul(&h, &s)
	r.X.Add(&r.X, &r.X)

	t.MulInt(&b, 4)
	t.Sub(&t, &h)
	r.Y.Mul(&w, &t)
	t.Square(&p.Y)
	t.Mul(&t, &s2)
	t.MulInt(&t, 8)
	r.Y.Sub(&r.Y, &t)

	r.Z.Mul(&s2, &s)
	r.Z.MulInt(&r.Z, 8)
	return r
}

// Add returns p1 + p2 for operands with arbitrary Z.
//
//	U1 = Y2 Z1, U2 = Y1 Z2, V1 = X2 Z1, V2 = X1 Z2
//	U = U1 - U2, V = V1 - V2, W = Z1 Z2
//	A = U^2 W - V^3 - 2 V^2 V2
//	X3 = V A, Y3 = U(V^2 V2 - A) - V^3 U2, Z3 = V^3 W
func Add(p1, p2 ProjectivePoint) ProjectivePoint {
	switch {
	case p1.IsInfinity():
		return p2
	case p2.IsInfinity():
		return p1
	}

	var u1, u2, v1, v2 field.Element
	u1.Mul(&p2.Y, &p1.Z)
	u2.Mul(&p1.Y, &p2.Z)
	v1.Mul(&p2.X, &p1.Z)
	v2.Mul(&p1.X, &p2.Z)
	if v1.Equal(&v2) {
		if u1.Equal(&u2) {
			return p1.Double()
		}
		return ProjectivePoint{}
	}

	var w field.Element
	w.Mul(&p1.Z, &p2.Z)
	return addCore(&u1, &u2, &v1, &v2, &w)
}

// AddMixed returns p1 + p2 where p2 is affine (unit Z). It saves the
// multiplications by Z2 that Add performs.
func AddMixed(p1 ProjectivePoint, p2 Point) ProjectivePoint {
	switch {
	case p2.IsInfinity():
		return p1
	case p1.IsInfinity():
		return p2.Projective()
	}

	var u1, v1 field.Element
	u1.Mul(&p2.Y, &p1.Z)
	v1.Mul(&p2.X, &p1.Z)
	if v1.Equal(&p1.X) {
		if u1.Equal(&p1.Y) {
			return p1.Double()
		}
		return ProjectivePoint{}
	}
	return addCore(&u1, &p1.Y, &v1, &p1.X, &p1.Z)
}

func addCore(u1, u2, v1, v2, w *field.Element) ProjectivePoint {
	var u, v, us, vs, vc, vsv2, a, t field.Element
	u.Sub(u1, u2)
	v.Sub(v1, v2)
	us.Square(&u)
	vs.Square(&v)
	vc.Mul(&vs, &v)
	vsv2.Mul(&vs, v2)

	a.Mul(&us, w)
	a.Sub(&a, &vc)
	t.Add(&vsv2, &vsv2)
	a.Sub(&a, &t)

	var r ProjectivePoint
	r.X.Mul(&v, &a)
	t.Sub(&vsv2, &a)
	r.Y.Mul(&u, &t)
	t.Mul(&vc, u2)
	r.Y.Sub(&r.Y, &t)
	r.Z.Mul(&vc, w)
	return r
}

// BatchToAffine reduces every point with a single shared inversion. Points
// at infinity stay at infinity.
func BatchToAffine(ps []ProjectivePoint) []Point {
	out := make([]Point, len(ps))
	zs := make([]field.Element, 0, len(ps))
	idx := make([]int, 0, len(ps))
	for i := range ps {
		if ps[i].IsInfinity() {
			out[i] = Infinity()
			continue
		}
		zs = append(zs, ps[i].Z)
		idx = append(idx, i)
	}

	// Every Z collected above is non-zero, so the inversion cannot fail.
	if err := field.BatchInverse(zs, make([]field.Element, len(zs))); err != nil {
		panic(err)
	}
	for j, i := range idx {
		out[i].X.Mul(&ps[i].X, &zs[j])
		out[i].Y.Mul(&ps[i].Y, &zs[j])
	}
	return out
}
