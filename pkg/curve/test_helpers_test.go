package curve

import (
	"math/big"
	"sync"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mahdiidarabi/hashhunt/pkg/field"
	"github.com/stretchr/testify/require"
)

var (
	sharedTableOnce sync.Once
	sharedTable     *Table
)

// testTable builds the fixed-base table once per test binary.
func testTable() *Table {
	sharedTableOnce.Do(func() {
		sharedTable = NewTable()
	})
	return sharedTable
}

// referenceBaseMult computes k*G with the decred implementation.
func referenceBaseMult(t *testing.T, k *big.Int) Point {
	t.Helper()
	s := new(big.Int).Mod(k, Order)
	if s.Sign() == 0 {
		return Infinity()
	}

	var buf [32]byte
	s.FillBytes(buf[:])
	var scalar secp256k1.ModNScalar
	scalar.SetBytes(&buf)

	var j secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&scalar, &j)
	j.ToAffine()

	var x, y field.Element
	_, err := x.SetBytes(j.X.Bytes()[:])
	require.NoError(t, err)
	_, err = y.SetBytes(j.Y.Bytes()[:])
	require.NoError(t, err)
	return NewPoint(x, y)
}

func mustHex(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 16)
	require.True(t, ok, "bad hex %q", s)
	return v
}

func requirePointEqual(t *testing.T, want, got Point) {
	t.Helper()
	require.Truef(t, want.Equal(got), "want %s, got %s", want, got)
}
