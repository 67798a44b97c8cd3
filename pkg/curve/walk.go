package curve

import (
	"math/big"

	"github.com/mahdiidarabi/hashhunt/pkg/field"
	"github.com/pkg/errors"
)

// Walker enumerates k*G for consecutive k, one batch of N points at a time.
// It owns its buffers and is not safe for concurrent use; run one walker per
// goroutine over a shared Table and StepTable.
type Walker struct {
	steps *StepTable

	anchor       Point
	anchorScalar *big.Int // scalar of anchor, mod Order
	next         *big.Int // key of out[0] in the next batch

	out          []Point
	dx, scratch  []field.Element
	nearIdentity *big.Int
	farIdentity  *big.Int
}

// NewWalker prepares a walk whose first batch starts at key start. The
// anchor (start-1)*G is derived through table.
func NewWalker(table *Table, steps *StepTable, start *big.Int) (*Walker, error) {
	n := steps.Len()
	a := new(big.Int).Sub(start, big.NewInt(1))
	a.Mod(a, Order)

	anchor := table.ScalarBaseMult(a)
	if !anchor.OnCurve() {
		return nil, errors.Wrapf(ErrNotOnCurve, "anchor for key %s", start.String())
	}

	far := new(big.Int).Sub(Order, big.NewInt(int64(n)+1))
	return &Walker{
		steps:        steps,
		anchor:       anchor,
		anchorScalar: a,
		next:         new(big.Int).Set(start),
		out:          make([]Point, n),
		dx:           make([]field.Element, n),
		scratch:      make([]field.Element, n),
		nearIdentity: big.NewInt(int64(n) + 1),
		farIdentity:  far,
	}, nil
}

// BatchSize returns the number of points produced by each call to Next.
func (w *Walker) BatchSize() int {
	return len(w.out)
}

// Next returns the points for keys first .. first+N-1 together with first,
// then moves the anchor to the last point of the batch. The returned slice
// is reused by the following call.
//
// Near the identity an anchor may share its x coordinate with a step point;
// those batches are computed one total addition at a time instead.
func (w *Walker) Next() ([]Point, *big.Int, error) {
	first := new(big.Int).Set(w.next)
	steps := w.steps.Points()

	if w.anchorScalar.Cmp(w.nearIdentity) <= 0 || w.anchorScalar.Cmp(w.farIdentity) >= 0 {
		for i := range steps {
			w.out[i] = AddAffine(w.anchor, steps[i])
		}
	} else if err := AddBatch(w.anchor, steps, w.out, w.dx, w.scratch); err != nil {
		return nil, nil, errors.WithMessagef(err, "batch starting at key %s", first.String())
	}

	n := int64(len(w.out))
	w.anchor = w.out[len(w.out)-1]
	w.anchorScalar.Add(w.anchorScalar, big.NewInt(n))
	w.anchorScalar.Mod(w.anchorScalar, Order)
	w.next.Add(w.next, big.NewInt(n))
	return w.out, first, nil
}
