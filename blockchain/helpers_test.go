package blockchain

import (
	"bytes"
	"context"
	"crypto/ed25519"
)

func testKey(seed byte) ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(bytes.Repeat([]byte{seed}, ed25519.SeedSize))
}

func testAddress(seed byte) Address {
	pub := testKey(seed).Public().(ed25519.PublicKey)
	return AddressFromPublicKey(NetTypeMainnet, KeyTypeEd25519, pub)
}

// edKeypair signs with a real ed25519 key.
type edKeypair struct {
	priv ed25519.PrivateKey
}

func (k edKeypair) Sign(_ context.Context, msg []byte) ([]byte, error) {
	return ed25519.Sign(k.priv, msg), nil
}

// mockKeypair returns a fixed signature or error and records its input.
type mockKeypair struct {
	sig   []byte
	err   error
	calls int
	got   []byte
}

func (m *mockKeypair) Sign(_ context.Context, msg []byte) ([]byte, error) {
	m.calls++
	m.got = append([]byte(nil), msg...)
	if m.err != nil {
		return nil, m.err
	}
	return m.sig, nil
}

func samplePayment() *PaymentV2 {
	payer := testAddress(1)
	return NewPaymentV2(PaymentV2Options{
		Payer: &payer,
		Payments: []Payment{
			{Payee: testAddress(2), Amount: 100},
			{Payee: testAddress(3), Amount: 250},
		},
		Fee:   Int64(35000),
		Nonce: Int64(1),
	})
}
