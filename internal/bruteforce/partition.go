package bruteforce

import (
	"math/big"
	"strings"

	"github.com/mahdiidarabi/hashhunt/pkg/curve"
	"github.com/pkg/errors"
)

// MaxBits is the largest supported key bit length.
const MaxBits = 256

var (
	// ErrInvalidRange is returned for an empty or malformed key range.
	ErrInvalidRange = errors.New("bruteforce: invalid key range")

	// ErrIndivisibleRange is returned by RemainderReject when the range width
	// is not a multiple of the worker count.
	ErrIndivisibleRange = errors.New("bruteforce: range width is not divisible by the worker count")
)

// RemainderPolicy decides what happens to width mod workers keys.
type RemainderPolicy int

const (
	// RemainderToLast gives the leftover keys to the last partition.
	RemainderToLast RemainderPolicy = iota

	// RemainderReject refuses ranges that do not split evenly.
	RemainderReject
)

func (p RemainderPolicy) String() string {
	switch p {
	case RemainderToLast:
		return "last"
	case RemainderReject:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseRemainderPolicy accepts "last" or "reject".
func ParseRemainderPolicy(s string) (RemainderPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last":
		return RemainderToLast, nil
	case "reject":
		return RemainderReject, nil
	}
	return 0, errors.Errorf("bruteforce: unknown remainder policy %q", s)
}

// Partition is the half-open key interval [Start, Start+Width) assigned to
// one worker.
type Partition struct {
	Index int
	Start *big.Int
	Width *big.Int
}

// End returns the exclusive upper bound of p.
func (p Partition) End() *big.Int {
	return new(big.Int).Add(p.Start, p.Width)
}

// Window returns the key window [2^(bits-1), 2^bits) as a start and width.
// Keys at or above the group order are not valid private keys, so for
// bits = 256 the window ends at the order instead.
func Window(bits int) (start, width *big.Int, err error) {
	if bits < 1 || bits > MaxBits {
		return nil, nil, errors.Wrapf(ErrInvalidRange, "bit length %d outside [1, %d]", bits, MaxBits)
	}
	start = new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	end := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	if end.Cmp(curve.Order) > 0 {
		end.Set(curve.Order)
	}
	return start, end.Sub(end, start), nil
}

// Split divides [start, start+width) into contiguous partitions of
// width/workers keys each. The partitions never overlap and their widths
// sum to width. When width is smaller than workers the worker count is
// reduced so that no partition is empty.
func Split(start, width *big.Int, workers int, policy RemainderPolicy) ([]Partition, error) {
	if start == nil || width == nil || start.Sign() < 0 || width.Sign() <= 0 {
		return nil, errors.Wrap(ErrInvalidRange, "start must be non-negative and width positive")
	}
	if workers < 1 {
		return nil, errors.Errorf("bruteforce: worker count must be positive, got %d", workers)
	}
	if width.Cmp(big.NewInt(int64(workers))) < 0 {
		workers = int(width.Int64())
	}

	w := big.NewInt(int64(workers))
	chunk, rem := new(big.Int).QuoRem(width, w, new(big.Int))
	if rem.Sign() != 0 && policy == RemainderReject {
		return nil, errors.Wrapf(ErrIndivisibleRange, "width %s, workers %d", width.String(), workers)
	}

	parts := make([]Partition, workers)
	for i := range parts {
		s := new(big.Int).Mul(chunk, big.NewInt(int64(i)))
		s.Add(s, start)
		parts[i] = Partition{
			Index: i,
			Start: s,
			Width: new(big.Int).Set(chunk),
		}
	}
	parts[workers-1].Width.Add(parts[workers-1].Width, rem)
	return parts, nil
}
