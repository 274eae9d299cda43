package blockchain

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ParseSignature converts the legacy textual signature form (hex, with an
// optional 0x prefix) to bytes. Malformed input is rejected rather than
// passed through to the wire.
func ParseSignature(text string) ([]byte, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, nil
	}
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length %d", ErrMalformedSignature, len(s))
	}
	sig, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}
	return sig, nil
}

// SignatureHex is the inverse of ParseSignature.
func SignatureHex(sig []byte) string {
	return hex.EncodeToString(sig)
}
