package blockchain

import "errors"

var (
	// ErrSchemaViolation reports a value the wire schema cannot represent.
	ErrSchemaViolation = errors.New("schema violation")
	// ErrInvalidAddress reports a missing or malformed binary address.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrSigningFailed wraps any failure returned by a Keypair.
	ErrSigningFailed = errors.New("signing failed")

	ErrMalformedSignature = errors.New("malformed signature")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrUnsupportedTxn     = errors.New("unsupported transaction type")
	ErrUnsupportedKeyType = errors.New("unsupported key type")
)
