package hashhunt

import (
	"bytes"
	"encoding/hex"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mahdiidarabi/hashhunt/pkg/curve"
	"github.com/pkg/errors"
)

// KeyReport holds the common encodings of a found private key.
type KeyReport struct {
	PrivateKeyHex string
	WIF           string
	P2PKH         string

	// Segwit forms are only defined for compressed keys.
	P2SHP2WPKH string
	Bech32     string
}

// DescribeKey derives the WIF and addresses of key for the given network.
//
// Args:
//   - key: Private key in [1, n)
//   - compressed: Whether the public key is serialized in compressed form
//   - params: Network parameters (mainnet when nil)
//
// Returns:
//   - KeyReport with every encoding that applies
func DescribeKey(key *big.Int, compressed bool, params *chaincfg.Params) (*KeyReport, error) {
	if key.Sign() <= 0 || key.Cmp(curve.Order) >= 0 {
		return nil, errors.Errorf("private key %s is outside [1, n)", key.String())
	}
	if params == nil {
		params = &chaincfg.MainNetParams
	}

	var raw [32]byte
	key.FillBytes(raw[:])
	priv, pub := btcec.PrivKeyFromBytes(raw[:])

	wif, err := btcutil.NewWIF(priv, params, compressed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode WIF")
	}

	var serialized []byte
	if compressed {
		serialized = pub.SerializeCompressed()
	} else {
		serialized = pub.SerializeUncompressed()
	}
	pkHash := btcutil.Hash160(serialized)

	p2pkh, err := btcutil.NewAddressPubKeyHash(pkHash, params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build P2PKH address")
	}

	report := &KeyReport{
		PrivateKeyHex: hex.EncodeToString(raw[:]),
		WIF:           wif.String(),
		P2PKH:         p2pkh.EncodeAddress(),
	}
	if !compressed {
		return report, nil
	}

	witness, err := btcutil.NewAddressWitnessPubKeyHash(pkHash, params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build bech32 address")
	}
	report.Bech32 = witness.EncodeAddress()

	// P2SH-P2WPKH redeem script: OP_0 <20-byte key hash>
	redeem := append([]byte{0x00, 0x14}, pkHash...)
	nested, err := btcutil.NewAddressScriptHash(redeem, params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build P2SH-P2WPKH address")
	}
	report.P2SHP2WPKH = nested.EncodeAddress()
	return report, nil
}

// VerifyKey checks with an independent secp256k1 implementation that key
// produces the given serialized public key.
func VerifyKey(key *big.Int, publicKey []byte) (bool, error) {
	if key.Sign() <= 0 || key.Cmp(curve.Order) >= 0 {
		return false, errors.Errorf("private key %s is outside [1, n)", key.String())
	}

	var raw [32]byte
	key.FillBytes(raw[:])
	pub := secp256k1.PrivKeyFromBytes(raw[:]).PubKey()

	switch len(publicKey) {
	case curve.CompressedLen:
		return bytes.Equal(pub.SerializeCompressed(), publicKey), nil
	case curve.UncompressedLen:
		return bytes.Equal(pub.SerializeUncompressed(), publicKey), nil
	}
	return false, errors.Errorf("public key must be 33 or 65 bytes, got %d", len(publicKey))
}
