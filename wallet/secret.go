package wallet

import (
	"errors"
	"fmt"

	"heliumtx/blockchain"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcutil/base58"
)

var ErrInvalidSecret = errors.New("invalid secret")

// ExportSecret encodes a raw secret as base58check, using the key type as
// the version byte.
func ExportSecret(kt blockchain.KeyType, secret []byte) string {
	return base58.CheckEncode(secret, byte(kt))
}

// ImportSecret parses a secret produced by ExportSecret and returns the
// matching keypair. Nothing is written to disk.
func ImportSecret(s string) (Keypair, error) {
	raw, version, err := base58.CheckDecode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}

	switch kt := blockchain.KeyType(version); kt {
	case blockchain.KeyTypeEd25519:
		return NewEd25519Keypair(raw)

	case blockchain.KeyTypeSecp256k1:
		if len(raw) != btcec.PrivKeyBytesLen {
			return nil, fmt.Errorf("%w: secp256k1 secret must be %d bytes, got %d",
				ErrInvalidSecret, btcec.PrivKeyBytesLen, len(raw))
		}
		priv, _ := btcec.PrivKeyFromBytes(raw)
		return NewSecp256k1Keypair(priv), nil

	default:
		return nil, fmt.Errorf("%w: %s keys are not supported", ErrInvalidSecret, kt)
	}
}
