package hashhunt

import (
	"math/big"
	"time"

	"github.com/mahdiidarabi/hashhunt/pkg/hash160"
)

// Result describes a private key whose public key hashes to a target.
type Result struct {
	PrivateKey *big.Int
	PublicKey  []byte         // serialized form that was hashed
	Digest     hash160.Digest // matched target
	Compressed bool
	Partition  int
	Keys       *KeyReport
}

// PartitionSummary is the final state of one worker's share of the window.
type PartitionSummary struct {
	Index   int
	Start   *big.Int
	Width   *big.Int
	Status  string
	Checked uint64
}

// Summary is the outcome of a search run. Found is nil when the window was
// exhausted without a match.
type Summary struct {
	Found      *Result
	Bits       int
	Start      *big.Int
	Width      *big.Int
	Checked    uint64
	Elapsed    time.Duration
	TableBuild time.Duration
	Partitions []PartitionSummary
}

// KeysPerSecond returns the average search rate.
func (s *Summary) KeysPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Checked) / s.Elapsed.Seconds()
}
