package blockchain

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// payment
const (
	fieldPaymentPayee  protowire.Number = 1
	fieldPaymentAmount protowire.Number = 2
	fieldPaymentMemo   protowire.Number = 3
)

// blockchain_txn_payment_v2
const (
	fieldPayer     protowire.Number = 1
	fieldPayments  protowire.Number = 2
	fieldFee       protowire.Number = 3
	fieldNonce     protowire.Number = 4
	fieldSignature protowire.Number = 5
)

// MarshalUnsigned returns the payment_v2 message with the signature field
// absent. These are the exact bytes a Keypair signs and a verifier rebuilds.
func (tx *PaymentV2) MarshalUnsigned() ([]byte, error) {
	return tx.marshal(false)
}

// MarshalPaymentV2 returns the inner payment_v2 message including the
// signature, without the envelope.
func (tx *PaymentV2) MarshalPaymentV2() ([]byte, error) {
	return tx.marshal(true)
}

// Serialize returns the envelope encoding ready for submission.
func (tx *PaymentV2) Serialize() ([]byte, error) {
	inner, err := tx.marshal(true)
	if err != nil {
		return nil, err
	}
	return wrapEnvelope(KindPaymentV2, inner), nil
}

func (tx *PaymentV2) marshal(withSignature bool) ([]byte, error) {
	var b []byte

	if tx.Payer != nil {
		if err := tx.Payer.Validate(); err != nil {
			return nil, fmt.Errorf("payer: %w", err)
		}
		b = protowire.AppendTag(b, fieldPayer, protowire.BytesType)
		b = protowire.AppendBytes(b, tx.Payer.Bin)
	}

	for i := range tx.Payments {
		sub, err := marshalPayment(&tx.Payments[i])
		if err != nil {
			return nil, fmt.Errorf("payments[%d]: %w", i, err)
		}
		b = protowire.AppendTag(b, fieldPayments, protowire.BytesType)
		b = protowire.AppendBytes(b, sub)
	}

	var err error
	if b, err = appendOptionalUint(b, fieldFee, tx.Fee); err != nil {
		return nil, fmt.Errorf("fee: %w", err)
	}
	if b, err = appendOptionalUint(b, fieldNonce, tx.Nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}

	if withSignature && len(tx.Signature) > 0 {
		b = protowire.AppendTag(b, fieldSignature, protowire.BytesType)
		b = protowire.AppendBytes(b, tx.Signature)
	}

	if b == nil {
		b = []byte{}
	}
	return b, nil
}

func marshalPayment(p *Payment) ([]byte, error) {
	if err := p.Payee.Validate(); err != nil {
		return nil, fmt.Errorf("payee: %w", err)
	}
	if p.Amount < 0 {
		return nil, fmt.Errorf("%w: amount %d is negative", ErrSchemaViolation, p.Amount)
	}

	var b []byte
	b = protowire.AppendTag(b, fieldPaymentPayee, protowire.BytesType)
	b = protowire.AppendBytes(b, p.Payee.Bin)
	// amount is always written, zero included
	b = protowire.AppendTag(b, fieldPaymentAmount, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(p.Amount))
	if p.Memo != nil {
		b = protowire.AppendTag(b, fieldPaymentMemo, protowire.VarintType)
		b = protowire.AppendVarint(b, *p.Memo)
	}
	return b, nil
}

// appendOptionalUint maps an optional integer onto the wire: nil is
// omitted, a present value is written even when zero.
func appendOptionalUint(b []byte, num protowire.Number, v *int64) ([]byte, error) {
	if v == nil {
		return b, nil
	}
	if *v < 0 {
		return b, fmt.Errorf("%w: value %d is negative", ErrSchemaViolation, *v)
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(*v)), nil
}

// DecodePaymentV2 parses an inner payment_v2 message.
func DecodePaymentV2(b []byte) (*PaymentV2, error) {
	tx := NewPaymentV2(PaymentV2Options{})

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, wireError(protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldPayer && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, wireError(protowire.ParseError(n))
			}
			if len(v) > 0 {
				tx.Payer = &Address{Bin: cloneBytes(v)}
			}
			b = b[n:]

		case num == fieldPayments && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, wireError(protowire.ParseError(n))
			}
			p, err := decodePayment(v)
			if err != nil {
				return nil, fmt.Errorf("payments[%d]: %w", len(tx.Payments), err)
			}
			tx.Payments = append(tx.Payments, p)
			b = b[n:]

		case (num == fieldFee || num == fieldNonce) && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, wireError(protowire.ParseError(n))
			}
			i, err := toInt64(v)
			if err != nil {
				return nil, err
			}
			if num == fieldFee {
				tx.Fee = Int64(i)
			} else {
				tx.Nonce = Int64(i)
			}
			b = b[n:]

		case num == fieldSignature && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, wireError(protowire.ParseError(n))
			}
			if len(v) > 0 {
				tx.Signature = cloneBytes(v)
			}
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, wireError(protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	return tx, nil
}

func decodePayment(b []byte) (Payment, error) {
	var p Payment

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Payment{}, wireError(protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldPaymentPayee && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return Payment{}, wireError(protowire.ParseError(n))
			}
			p.Payee = Address{Bin: cloneBytes(v)}
			b = b[n:]

		case num == fieldPaymentAmount && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return Payment{}, wireError(protowire.ParseError(n))
			}
			amount, err := toInt64(v)
			if err != nil {
				return Payment{}, err
			}
			p.Amount = amount
			b = b[n:]

		case num == fieldPaymentMemo && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return Payment{}, wireError(protowire.ParseError(n))
			}
			p.Memo = Uint64(v)
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return Payment{}, wireError(protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	return p, nil
}

func toInt64(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("%w: value %d overflows int64", ErrSchemaViolation, v)
	}
	return int64(v), nil
}

func wireError(err error) error {
	return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
}

func cloneBytes(b []byte) []byte {
	return append([]byte(nil), b...)
}
