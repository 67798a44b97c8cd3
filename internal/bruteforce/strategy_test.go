package bruteforce

import (
	"context"
	"math/big"
	"sync/atomic"
	"testing"

	"github.com/mahdiidarabi/hashhunt/pkg/curve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	m, err := ParseMode("sequential")
	require.NoError(t, err)
	assert.Equal(t, ModeSequential, m)
	assert.Equal(t, "sequential", m.String())
	assert.Equal(t, Sequential, m.Strategy())

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, Batch, m.Strategy())
	assert.Equal(t, "batch", m.Strategy().Name())

	_, err = ParseMode("random")
	assert.Error(t, err)
}

func TestStrategies_SameKeys(t *testing.T) {
	table := testTable()
	steps, err := curve.NewStepTable(16)
	require.NoError(t, err)
	job := &Job{Table: table, Steps: steps}
	start := big.NewInt(1000)

	batch, err := Batch.Open(job, start)
	require.NoError(t, err)
	seq, err := Sequential.Open(job, start)
	require.NoError(t, err)

	for round := 0; round < 3; round++ {
		bp, bfirst, err := batch.Next()
		require.NoError(t, err)
		sp, sfirst, err := seq.Next()
		require.NoError(t, err)

		require.Equal(t, 0, bfirst.Cmp(sfirst))
		require.Len(t, sp, len(bp))
		for i := range bp {
			require.True(t, bp[i].Equal(sp[i]), "round %d offset %d", round, i)
		}
	}
}

// countingStrategy delegates to Sequential and records how many partitions
// it opened.
type countingStrategy struct {
	opened int64
}

func (c *countingStrategy) Name() string { return "counting" }

func (c *countingStrategy) Open(job *Job, start *big.Int) (KeySource, error) {
	atomic.AddInt64(&c.opened, 1)
	return Sequential.Open(job, start)
}

func TestSearch_CustomStrategy(t *testing.T) {
	job := newJob(t, 12, 3, 64, targetsFor(t, "d43e772e9cb935f29e6f99fe55c9dc4689d21534"))
	custom := &countingStrategy{}
	job.Strategy = custom

	report, err := Search(context.Background(), job)
	require.NoError(t, err)
	require.NotNil(t, report.Found)
	assert.Equal(t, int64(3000), report.Found.Key.Int64())
	assert.Equal(t, int64(3), atomic.LoadInt64(&custom.opened))
}
