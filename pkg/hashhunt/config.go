package hashhunt

import (
	"runtime"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/mahdiidarabi/hashhunt/internal/bruteforce"
	"github.com/mahdiidarabi/hashhunt/pkg/curve"
)

// Mode selects how consecutive public keys are produced.
type Mode = bruteforce.Mode

const (
	// ModeBatch walks BatchSize keys per field inversion.
	ModeBatch = bruteforce.ModeBatch

	// ModeSequential performs one affine addition per key.
	ModeSequential = bruteforce.ModeSequential
)

// RemainderPolicy decides what happens when the window width is not a
// multiple of the worker count.
type RemainderPolicy = bruteforce.RemainderPolicy

const (
	RemainderToLast = bruteforce.RemainderToLast
	RemainderReject = bruteforce.RemainderReject
)

// SearchConfig configures a search run.
type SearchConfig struct {
	// NumWorkers controls parallelization (0 = auto-detect)
	NumWorkers int

	// BatchSize is the number of keys per batch inversion
	BatchSize int

	// Mode chooses batch or sequential key generation
	Mode Mode

	// Remainder decides where width mod NumWorkers keys go
	Remainder RemainderPolicy

	// Uncompressed hashes the 65-byte public key instead of the 33-byte one
	Uncompressed bool

	// Network selects address prefixes in the found-key report
	Network *chaincfg.Params
}

// DefaultSearchConfig returns a sensible default configuration.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		NumWorkers: 0, // Auto-detect
		BatchSize:  curve.DefaultBatchSize,
		Mode:       ModeBatch,
		Remainder:  RemainderToLast,
		Network:    &chaincfg.MainNetParams,
	}
}

func (c SearchConfig) workers() int {
	if c.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return c.NumWorkers
}
