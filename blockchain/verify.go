package blockchain

import (
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// Verify checks Signature against the payer's public key over the
// re-derived unsigned payload.
func (tx *PaymentV2) Verify() error {
	if tx.Payer == nil {
		return fmt.Errorf("%w: no payer", ErrInvalidSignature)
	}
	if len(tx.Signature) == 0 {
		return fmt.Errorf("%w: not signed", ErrInvalidSignature)
	}

	payload, err := tx.MarshalUnsigned()
	if err != nil {
		return err
	}
	return VerifySignature(*tx.Payer, payload, tx.Signature)
}

// VerifySignature checks sig over msg with the key embedded in addr.
func VerifySignature(addr Address, msg, sig []byte) error {
	if err := addr.Validate(); err != nil {
		return err
	}

	switch kt := addr.KeyType(); kt {
	case KeyTypeEd25519:
		if !ed25519.Verify(ed25519.PublicKey(addr.PublicKey()), msg, sig) {
			return ErrInvalidSignature
		}
		return nil

	case KeyTypeSecp256k1:
		// DER signature over sha256(msg)
		pub, err := btcec.ParsePubKey(addr.PublicKey())
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
		}
		parsed, err := ecdsa.ParseDERSignature(sig)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
		hash := sha256.Sum256(msg)
		if !parsed.Verify(hash[:], pub) {
			return ErrInvalidSignature
		}
		return nil

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedKeyType, kt)
	}
}
