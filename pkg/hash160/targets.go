package hash160

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/pkg/errors"
)

// bloomThreshold is the target count above which lookups go through the
// bloom filter before the exact map.
const bloomThreshold = 16

// TargetSet is an immutable set of digests. A set with a single digest
// compares directly; larger sets are prefiltered with a bloom filter and
// confirmed against an exact map, so false positives never escape Contains.
type TargetSet struct {
	single  Digest
	exact   map[Digest]struct{}
	filter  *bloom.BloomFilter
	ordered []Digest
}

// NewTargetSet builds a set from one or more digests. Duplicates are
// collapsed while preserving first-seen order.
func NewTargetSet(digests ...Digest) (*TargetSet, error) {
	if len(digests) == 0 {
		return nil, errors.New("hash160: at least one target digest is required")
	}

	s := &TargetSet{exact: make(map[Digest]struct{}, len(digests))}
	for _, d := range digests {
		if _, dup := s.exact[d]; dup {
			continue
		}
		s.exact[d] = struct{}{}
		s.ordered = append(s.ordered, d)
	}
	s.single = s.ordered[0]

	if len(s.ordered) > bloomThreshold {
		s.filter = bloom.NewWithEstimates(uint(len(s.ordered)), 0.0001)
		for i := range s.ordered {
			s.filter.Add(s.ordered[i][:])
		}
	}
	return s, nil
}

// ParseTargetSet parses each hex digest and builds a set.
func ParseTargetSet(hexDigests ...string) (*TargetSet, error) {
	digests := make([]Digest, 0, len(hexDigests))
	for i, h := range hexDigests {
		d, err := ParseDigest(h)
		if err != nil {
			return nil, errors.WithMessagef(err, "target %d", i+1)
		}
		digests = append(digests, d)
	}
	return NewTargetSet(digests...)
}

// Len returns the number of distinct digests.
func (s *TargetSet) Len() int {
	return len(s.ordered)
}

// Digests returns the digests in first-seen order.
func (s *TargetSet) Digests() []Digest {
	out := make([]Digest, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Contains reports whether d is exactly one of the targets.
func (s *TargetSet) Contains(d *Digest) bool {
	if len(s.ordered) == 1 {
		return *d == s.single
	}
	if s.filter != nil && !s.filter.Test(d[:]) {
		return false
	}
	_, ok := s.exact[*d]
	return ok
}
