package curve

import (
	"github.com/mahdiidarabi/hashhunt/pkg/field"
	"github.com/pkg/errors"
)

// DefaultBatchSize is the number of consecutive keys covered by one batch.
const DefaultBatchSize = 1024

// StepTable holds S_i = i*G for i = 1..N in affine form. It is immutable
// and may be shared by any number of walkers.
type StepTable struct {
	points []Point
}

// NewStepTable computes 1*G .. n*G.
func NewStepTable(n int) (*StepTable, error) {
	if n < 1 {
		return nil, errors.Errorf("curve: step table size must be positive, got %d", n)
	}
	proj := make([]ProjectivePoint, n)
	g := Generator()
	proj[0] = g.Projective()
	for i := 1; i < n; i++ {
		proj[i] = AddMixed(proj[i-1], g)
	}
	return NewStepTableFromPoints(BatchToAffine(proj))
}

// NewStepTableFromPoints wraps points as a step table without recomputing
// them. Element i must be (i+1)*G for walkers to produce the keys they
// report; only curve membership is checked here.
func NewStepTableFromPoints(points []Point) (*StepTable, error) {
	if len(points) == 0 {
		return nil, errors.New("curve: step table is empty")
	}
	for i := range points {
		if points[i].IsInfinity() || !points[i].OnCurve() {
			return nil, errors.Wrapf(ErrNotOnCurve, "step %d", i+1)
		}
	}
	return &StepTable{points: points}, nil
}

// Len returns N.
func (s *StepTable) Len() int {
	return len(s.points)
}

// Step returns i*G for 1 <= i <= N.
func (s *StepTable) Step(i int) Point {
	return s.points[i-1]
}

// Points returns the backing slice; element i is (i+1)*G. Callers must not
// modify it.
func (s *StepTable) Points() []Point {
	return s.points
}

// AddBatch sets out[i] = anchor + steps[i] for every i using one shared
// inversion. dx and scratch are caller-owned work buffers at least as long
// as steps. A zero x difference yields ErrDegenerateBatch and out is left
// unspecified. AddBatch keeps no state between calls.
func AddBatch(anchor Point, steps, out []Point, dx, scratch []field.Element) error {
	n := len(steps)
	if len(out) < n || len(dx) < n || len(scratch) < n {
		return errors.Errorf("curve: batch buffers too short for %d steps", n)
	}
	if anchor.IsInfinity() {
		return errors.Wrap(ErrDegenerateBatch, "anchor is the identity")
	}

	for i := 0; i < n; i++ {
		dx[i].Sub(&steps[i].X, &anchor.X)
		if dx[i].IsZero() {
			return errors.Wrapf(ErrDegenerateBatch, "step %d shares x with the anchor", i+1)
		}
	}
	if err := field.BatchInverse(dx[:n], scratch); err != nil {
		return errors.Wrap(ErrDegenerateBatch, err.Error())
	}

	var lambda field.Element
	for i := 0; i < n; i++ {
		lambda.Sub(&steps[i].Y, &anchor.Y)
		lambda.Mul(&lambda, &dx[i])
		out[i] = chord(&lambda, &anchor.X, &steps[i].X, &anchor.Y)
	}
	return nil
}
