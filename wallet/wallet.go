package wallet

import (
	"context"
	"crypto/sha256"

	"heliumtx/blockchain"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// Keypair is a blockchain.Keypair that also knows its own address.
type Keypair interface {
	blockchain.Keypair
	KeyType() blockchain.KeyType
	PublicKey() []byte
	Address(net blockchain.NetType) blockchain.Address
}

// Secp256k1Keypair signs with a secp256k1 key: DER ECDSA over sha256(msg).
type Secp256k1Keypair struct {
	PrivateKey *btcec.PrivateKey
	pub        []byte
}

func NewSecp256k1Keypair(priv *btcec.PrivateKey) *Secp256k1Keypair {
	return &Secp256k1Keypair{
		PrivateKey: priv,
		pub:        priv.PubKey().SerializeCompressed(),
	}
}

func (k *Secp256k1Keypair) KeyType() blockchain.KeyType {
	return blockchain.KeyTypeSecp256k1
}

// PublicKey returns the 33-byte compressed key.
func (k *Secp256k1Keypair) PublicKey() []byte {
	return k.pub
}

func (k *Secp256k1Keypair) Address(net blockchain.NetType) blockchain.Address {
	return blockchain.AddressFromPublicKey(net, blockchain.KeyTypeSecp256k1, k.pub)
}

func (k *Secp256k1Keypair) Sign(ctx context.Context, msg []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash := sha256.Sum256(msg)
	sig := ecdsa.Sign(k.PrivateKey, hash[:])
	return sig.Serialize(), nil
}
