package wallet

import (
	"context"
	"crypto/ed25519"
	"fmt"

	"heliumtx/blockchain"
)

// Ed25519Keypair signs the raw message with an ed25519 key.
type Ed25519Keypair struct {
	priv ed25519.PrivateKey
}

// NewEd25519Keypair accepts a 32-byte seed or a 64-byte private key.
func NewEd25519Keypair(secret []byte) (*Ed25519Keypair, error) {
	switch len(secret) {
	case ed25519.SeedSize:
		return &Ed25519Keypair{priv: ed25519.NewKeyFromSeed(secret)}, nil
	case ed25519.PrivateKeySize:
		priv := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
		copy(priv, secret)
		return &Ed25519Keypair{priv: priv}, nil
	default:
		return nil, fmt.Errorf("%w: ed25519 secret must be %d or %d bytes, got %d",
			ErrInvalidSecret, ed25519.SeedSize, ed25519.PrivateKeySize, len(secret))
	}
}

func (k *Ed25519Keypair) KeyType() blockchain.KeyType {
	return blockchain.KeyTypeEd25519
}

func (k *Ed25519Keypair) PublicKey() []byte {
	return k.priv.Public().(ed25519.PublicKey)
}

func (k *Ed25519Keypair) Address(net blockchain.NetType) blockchain.Address {
	return blockchain.AddressFromPublicKey(net, blockchain.KeyTypeEd25519, k.PublicKey())
}

func (k *Ed25519Keypair) Sign(ctx context.Context, msg []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ed25519.Sign(k.priv, msg), nil
}
