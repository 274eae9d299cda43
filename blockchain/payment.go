package blockchain

import (
	"context"
	"fmt"
)

// Keypair is anything that holds a private key and can sign arbitrary
// bytes: a software key, a hardware token or a remote signer.
type Keypair interface {
	Sign(ctx context.Context, msg []byte) ([]byte, error)
}

// Payment moves Amount bones to Payee.
type Payment struct {
	Payee  Address
	Amount int64
	Memo   *uint64
}

// PaymentV2 is a payment from one payer to an ordered list of payees.
//
// Every field may be left unset. Missing payer, fee or nonce are encoded as
// absent wire fields; the ledger will reject such a transaction but the
// codec will not.
type PaymentV2 struct {
	Payer     *Address
	Payments  []Payment
	Fee       *int64
	Nonce     *int64
	Signature []byte
}

type PaymentV2Options struct {
	Payer     *Address
	Payments  []Payment
	Fee       *int64
	Nonce     *int64
	Signature []byte
}

// NewPaymentV2 copies opts into a new transaction. No validation happens here.
func NewPaymentV2(opts PaymentV2Options) *PaymentV2 {
	payments := opts.Payments
	if payments == nil {
		payments = []Payment{}
	}
	return &PaymentV2{
		Payer:     opts.Payer,
		Payments:  payments,
		Fee:       opts.Fee,
		Nonce:     opts.Nonce,
		Signature: opts.Signature,
	}
}

// Int64 returns a pointer to v, for the optional fee and nonce fields.
func Int64(v int64) *int64 {
	return &v
}

func Uint64(v uint64) *uint64 {
	return &v
}

func (tx *PaymentV2) Kind() TxnKind {
	return KindPaymentV2
}

// Sign encodes the unsigned payload, asks kp to sign it and stores the
// result on tx, replacing any earlier signature. tx is returned for
// chaining. On any error tx is left untouched.
func (tx *PaymentV2) Sign(ctx context.Context, kp Keypair) (*PaymentV2, error) {
	// 1. payload with the signature forced absent
	payload, err := tx.MarshalUnsigned()
	if err != nil {
		return nil, err
	}

	// 2. delegate to the key-holder
	sig, err := kp.Sign(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}

	// 3. overwrite, never accumulate
	tx.Signature = append([]byte(nil), sig...)
	return tx, nil
}
