package field

import "github.com/pkg/errors"

// BatchInverse replaces every element of a with its inverse using a single
// field inversion (Montgomery's simultaneous inversion). scratch must be at
// least as long as a and is overwritten with prefix products.
//
// If any element is zero, ErrZeroInverse is returned with the index of the
// first offending element and a is left unchanged.
func BatchInverse(a, scratch []Element) error {
	n := len(a)
	if n == 0 {
		return nil
	}
	if len(scratch) < n {
		return errors.Errorf("field: scratch length %d is shorter than input %d", len(scratch), n)
	}

	// scratch[i] = a[0] * ... * a[i]
	scratch[0] = a[0]
	if scratch[0].IsZero() {
		return errors.Wrap(ErrZeroInverse, "element 0")
	}
	for i := 1; i < n; i++ {
		if a[i].IsZero() {
			return errors.Wrapf(ErrZeroInverse, "element %d", i)
		}
		scratch[i].Mul(&scratch[i-1], &a[i])
	}

	var inv, t Element
	inv.Inverse(&scratch[n-1])

	for i := n - 1; i > 0; i-- {
		t.Mul(&inv, &scratch[i-1])
		inv.Mul(&inv, &a[i])
		a[i] = t
	}
	a[0] = inv
	return nil
}
