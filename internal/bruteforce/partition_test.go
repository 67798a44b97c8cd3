package bruteforce

import (
	"math/big"
	"testing"

	"github.com/mahdiidarabi/hashhunt/pkg/curve"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		bits  int
		start int64
		width int64
	}{
		{1, 1, 1},
		{2, 2, 2},
		{3, 4, 4},
		{20, 1 << 19, 1 << 19},
	}
	for _, tt := range tests {
		start, width, err := Window(tt.bits)
		require.NoError(t, err)
		assert.Equal(t, tt.start, start.Int64(), "bits %d", tt.bits)
		assert.Equal(t, tt.width, width.Int64(), "bits %d", tt.bits)
	}

	start, width, err := Window(256)
	require.NoError(t, err)
	end := new(big.Int).Add(start, width)
	assert.Equal(t, 0, end.Cmp(curve.Order))

	for _, bad := range []int{0, -1, 257} {
		_, _, err := Window(bad)
		assert.True(t, errors.Is(err, ErrInvalidRange), "bits %d", bad)
	}
}

func requireCoverage(t *testing.T, start, width *big.Int, parts []Partition) {
	t.Helper()
	sum := new(big.Int)
	next := new(big.Int).Set(start)
	for i, p := range parts {
		require.Equal(t, i, p.Index)
		require.Equal(t, 0, p.Start.Cmp(next), "partition %d is not contiguous", i)
		require.Positive(t, p.Width.Sign(), "partition %d is empty", i)
		next = p.End()
		sum.Add(sum, p.Width)
	}
	require.Equal(t, 0, sum.Cmp(width), "widths do not sum to the range width")
}

func TestSplit_Even(t *testing.T) {
	start, width, err := Window(12)
	require.NoError(t, err)

	parts, err := Split(start, width, 4, RemainderReject)
	require.NoError(t, err)
	require.Len(t, parts, 4)
	requireCoverage(t, start, width, parts)
	for _, p := range parts {
		assert.Equal(t, int64(512), p.Width.Int64())
	}
	assert.Equal(t, int64(2048+3*512), parts[3].Start.Int64())
}

func TestSplit_RemainderToLast(t *testing.T) {
	start := big.NewInt(1000)
	width := big.NewInt(103)

	parts, err := Split(start, width, 4, RemainderToLast)
	require.NoError(t, err)
	require.Len(t, parts, 4)
	requireCoverage(t, start, width, parts)
	assert.Equal(t, int64(25), parts[0].Width.Int64())
	assert.Equal(t, int64(28), parts[3].Width.Int64())
	assert.Equal(t, int64(1103), parts[3].End().Int64())
}

func TestSplit_RemainderReject(t *testing.T) {
	_, err := Split(big.NewInt(1000), big.NewInt(103), 4, RemainderReject)
	assert.True(t, errors.Is(err, ErrIndivisibleRange))
}

func TestSplit_FewerKeysThanWorkers(t *testing.T) {
	start, width, err := Window(2)
	require.NoError(t, err)

	parts, err := Split(start, width, 8, RemainderReject)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	requireCoverage(t, start, width, parts)
}

func TestSplit_Large(t *testing.T) {
	start, width, err := Window(256)
	require.NoError(t, err)

	parts, err := Split(start, width, 7, RemainderToLast)
	require.NoError(t, err)
	requireCoverage(t, start, width, parts)
}

func TestSplit_Invalid(t *testing.T) {
	_, err := Split(big.NewInt(1), big.NewInt(0), 2, RemainderToLast)
	assert.True(t, errors.Is(err, ErrInvalidRange))

	_, err = Split(big.NewInt(-1), big.NewInt(10), 2, RemainderToLast)
	assert.True(t, errors.Is(err, ErrInvalidRange))

	_, err = Split(big.NewInt(1), big.NewInt(10), 0, RemainderToLast)
	assert.Error(t, err)
}

func TestParseRemainderPolicy(t *testing.T) {
	p, err := ParseRemainderPolicy("Reject")
	require.NoError(t, err)
	assert.Equal(t, RemainderReject, p)
	assert.Equal(t, "reject", p.String())

	p, err = ParseRemainderPolicy("")
	require.NoError(t, err)
	assert.Equal(t, RemainderToLast, p)

	_, err = ParseRemainderPolicy("spread")
	assert.Error(t, err)
}
