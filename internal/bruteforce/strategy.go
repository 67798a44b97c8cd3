package bruteforce

import (
	"math/big"

	"github.com/mahdiidarabi/hashhunt/pkg/curve"
	"github.com/pkg/errors"
)

// sequentialChunk is how many keys the sequential strategy produces between
// cancellation checks when no step table is configured.
const sequentialChunk = curve.DefaultBatchSize

// KeySource yields the public keys of consecutive private keys.
type KeySource interface {
	// Next returns the points for keys first .. first+len(points)-1. The
	// slice may be reused by the following call.
	Next() (points []curve.Point, first *big.Int, err error)
}

// Strategy defines how a worker turns a partition start into public keys.
// Implement this interface to plug a different point walk into Search.
type Strategy interface {
	// Open returns a source whose first batch starts at key start. It may
	// read the job's tables but must not modify them.
	Open(job *Job, start *big.Int) (KeySource, error)

	// Name returns a human-readable name for this strategy.
	Name() string
}

var (
	// Batch walks N keys per field inversion using the job's step table.
	Batch Strategy = batchStrategy{}

	// Sequential adds G once per key with its own inversion.
	Sequential Strategy = sequentialStrategy{}
)

type batchStrategy struct{}

func (batchStrategy) Name() string { return "batch" }

func (batchStrategy) Open(job *Job, start *big.Int) (KeySource, error) {
	return curve.NewWalker(job.Table, job.Steps, start)
}

type sequentialStrategy struct{}

func (sequentialStrategy) Name() string { return "sequential" }

func (sequentialStrategy) Open(job *Job, start *big.Int) (KeySource, error) {
	p := job.Table.ScalarBaseMult(start)
	if !p.OnCurve() {
		return nil, errors.Wrapf(curve.ErrNotOnCurve, "start point for key %s", start.String())
	}
	chunk := sequentialChunk
	if job.Steps != nil {
		chunk = job.Steps.Len()
	}
	return &sequentialSource{
		point: p,
		g:     curve.Generator(),
		next:  new(big.Int).Set(start),
		out:   make([]curve.Point, chunk),
	}, nil
}

type sequentialSource struct {
	point curve.Point
	g     curve.Point
	next  *big.Int
	out   []curve.Point
}

func (s *sequentialSource) Next() ([]curve.Point, *big.Int, error) {
	first := new(big.Int).Set(s.next)
	for i := range s.out {
		s.out[i] = s.point
		s.point = curve.AddAffine(s.point, s.g)
	}
	s.next.Add(s.next, big.NewInt(int64(len(s.out))))
	return s.out, first, nil
}

// Mode names one of the built-in strategies in configuration.
type Mode int

const (
	// ModeBatch selects Batch.
	ModeBatch Mode = iota

	// ModeSequential selects Sequential.
	ModeSequential
)

func (m Mode) String() string {
	switch m {
	case ModeBatch:
		return "batch"
	case ModeSequential:
		return "sequential"
	default:
		return "unknown"
	}
}

// Strategy returns the built-in strategy m names. Unknown modes fall back
// to Batch.
func (m Mode) Strategy() Strategy {
	if m == ModeSequential {
		return Sequential
	}
	return Batch
}

// ParseMode accepts "batch" or "sequential".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "batch":
		return ModeBatch, nil
	case "sequential":
		return ModeSequential, nil
	}
	return 0, errors.Errorf("bruteforce: unknown mode %q", s)
}
