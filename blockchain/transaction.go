package blockchain

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// TxnKind is the tag of a transaction inside the blockchain_txn envelope.
type TxnKind protowire.Number

const (
	KindAddGateway     TxnKind = 1
	KindAssertLocation TxnKind = 2
	KindPayment        TxnKind = 8
	KindTokenBurn      TxnKind = 17
	KindBundle         TxnKind = 20
	KindPaymentV2      TxnKind = 21
)

func (k TxnKind) String() string {
	switch k {
	case KindAddGateway:
		return "add_gateway_v1"
	case KindAssertLocation:
		return "assert_location_v1"
	case KindPayment:
		return "payment_v1"
	case KindTokenBurn:
		return "token_burn_v1"
	case KindBundle:
		return "bundle_v1"
	case KindPaymentV2:
		return "payment_v2"
	default:
		return fmt.Sprintf("txn(%d)", int(k))
	}
}

// Txn is implemented by every transaction type this package can encode.
type Txn interface {
	Kind() TxnKind
	Serialize() ([]byte, error)
	Hash() (string, error)
}

var _ Txn = (*PaymentV2)(nil)

// Hash returns the ledger transaction hash: SHA-256 over the unsigned
// payload, base64url without padding. Signing does not change it.
func (tx *PaymentV2) Hash() (string, error) {
	payload, err := tx.MarshalUnsigned()
	if err != nil {
		return "", err
	}
	return HashTxBytes(payload), nil
}

func HashTxBytes(b []byte) string {
	h := sha256.Sum256(b)
	return base64.RawURLEncoding.EncodeToString(h[:])
}

func wrapEnvelope(kind TxnKind, inner []byte) []byte {
	b := make([]byte, 0, len(inner)+protowire.SizeTag(protowire.Number(kind))+protowire.SizeVarint(uint64(len(inner))))
	b = protowire.AppendTag(b, protowire.Number(kind), protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}

// DecodeTxn parses a blockchain_txn envelope and returns the concrete
// transaction it carries.
func DecodeTxn(b []byte) (Txn, error) {
	var (
		kind  TxnKind
		inner []byte
	)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, wireError(protowire.ParseError(n))
		}
		b = b[n:]

		if typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, wireError(protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}

		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, wireError(protowire.ParseError(n))
		}
		// oneof: the last member on the wire wins
		kind, inner = TxnKind(num), v
		b = b[n:]
	}

	switch kind {
	case 0:
		return nil, fmt.Errorf("%w: envelope carries no transaction", ErrSchemaViolation)
	case KindPaymentV2:
		tx, err := DecodePaymentV2(inner)
		if err != nil {
			return nil, err
		}
		return tx, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTxn, kind)
	}
}
