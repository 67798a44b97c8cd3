package hash160

import (
	"fmt"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/mahdiidarabi/hashhunt/pkg/curve"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum_Generator(t *testing.T) {
	g := curve.Generator()
	c := g.SerializeCompressed()
	assert.Equal(t, "751e76e8199196d454941c45d1b3a323f1433bd6", Sum(c[:]).String())

	u := g.SerializeUncompressed()
	assert.Equal(t, "91b24bf9f5288532960ac687abb035127b1d28a5", Sum(u[:]).String())
}

func TestHasher_MatchesBtcutil(t *testing.T) {
	h := NewHasher()
	p := curve.Generator()
	for i := 0; i < 16; i++ {
		c := p.SerializeCompressed()
		got := h.Sum(c[:])
		assert.Equal(t, btcutil.Hash160(c[:]), got[:], "point %d", i)
		p = curve.AddAffine(p, curve.Generator())
	}
}

func TestParseDigest(t *testing.T) {
	d, err := ParseDigest("  751E76E8199196D454941C45D1B3A323F1433BD6\n")
	require.NoError(t, err)
	assert.Equal(t, "751e76e8199196d454941c45d1b3a323f1433bd6", d.String())

	for _, bad := range []string{"", "751e76", "751e76e8199196d454941c45d1b3a323f1433bd6aa", "zz1e76e8199196d454941c45d1b3a323f1433bd6"} {
		_, err := ParseDigest(bad)
		assert.True(t, errors.Is(err, ErrInvalidDigest), "input %q", bad)
	}
}

func TestTargetSet_Single(t *testing.T) {
	s, err := ParseTargetSet("751e76e8199196d454941c45d1b3a323f1433bd6")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	g := curve.Generator().SerializeCompressed()
	d := Sum(g[:])
	assert.True(t, s.Contains(&d))

	d[19] ^= 1
	assert.False(t, s.Contains(&d))
}

func TestTargetSet_Many(t *testing.T) {
	var digests []Digest
	for i := 0; i < 100; i++ {
		digests = append(digests, Sum([]byte(fmt.Sprintf("target-%d", i))))
	}
	digests = append(digests, digests[0])

	s, err := NewTargetSet(digests...)
	require.NoError(t, err)
	assert.Equal(t, 100, s.Len())
	assert.Equal(t, digests[:100], s.Digests())

	for i := range digests {
		assert.True(t, s.Contains(&digests[i]))
	}
	for i := 0; i < 1000; i++ {
		miss := Sum([]byte(fmt.Sprintf("other-%d", i)))
		assert.False(t, s.Contains(&miss))
	}
}

func TestTargetSet_Errors(t *testing.T) {
	_, err := NewTargetSet()
	require.Error(t, err)

	_, err = ParseTargetSet("751e76e8199196d454941c45d1b3a323f1433bd6", "nothex")
	assert.True(t, errors.Is(err, ErrInvalidDigest))
}
