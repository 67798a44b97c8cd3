package hashhunt

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/mahdiidarabi/hashhunt/pkg/curve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeKey(t *testing.T) {
	tests := []struct {
		key        int64
		compressed bool
		want       KeyReport
	}{
		{
			key:        1,
			compressed: true,
			want: KeyReport{
				PrivateKeyHex: "0000000000000000000000000000000000000000000000000000000000000001",
				WIF:           "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn",
				P2PKH:         "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH",
				P2SHP2WPKH:    "3JvL6Ymt8MVWiCNHC7oWU6nLeHNJKLZGLN",
				Bech32:        "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4",
			},
		},
		{
			key:        2,
			compressed: true,
			want: KeyReport{
				PrivateKeyHex: "0000000000000000000000000000000000000000000000000000000000000002",
				WIF:           "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU74NMTptX4",
				P2PKH:         "1cMh228HTCiwS8ZsaakH8A8wze1JR5ZsP",
				P2SHP2WPKH:    "3FWHHE3RVgyv5vYmMrcoRdA25uugWvQbso",
				Bech32:        "bc1qq6hag67dl53wl99vzg42z8eyzfz2xlkvxechjp",
			},
		},
		{
			key:        1,
			compressed: false,
			want: KeyReport{
				PrivateKeyHex: "0000000000000000000000000000000000000000000000000000000000000001",
				WIF:           "5HpHagT65TZzG1PH3CSu63k8DbpvD8s5ip4nEB3kEsreAnchuDf",
				P2PKH:         "1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm",
			},
		},
	}

	for _, tt := range tests {
		got, err := DescribeKey(big.NewInt(tt.key), tt.compressed, &chaincfg.MainNetParams)
		require.NoError(t, err)
		assert.Equal(t, tt.want, *got, "key %d compressed=%v", tt.key, tt.compressed)
	}
}

func TestDescribeKey_OutOfRange(t *testing.T) {
	_, err := DescribeKey(big.NewInt(0), true, nil)
	assert.Error(t, err)

	_, err = DescribeKey(curve.Order, true, nil)
	assert.Error(t, err)
}

func TestVerifyKey(t *testing.T) {
	pub, err := hex.DecodeString("02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5")
	require.NoError(t, err)

	ok, err := VerifyKey(big.NewInt(2), pub)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyKey(big.NewInt(3), pub)
	require.NoError(t, err)
	assert.False(t, ok)

	g := curve.Generator().SerializeUncompressed()
	ok, err = VerifyKey(big.NewInt(1), g[:])
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = VerifyKey(big.NewInt(1), pub[:10])
	assert.Error(t, err)
}
