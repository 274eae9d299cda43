package utils

import (
	"fmt"
	"math/big"
	"strings"
)

// BonesPerHNT is the number of indivisible units in one HNT.
const BonesPerHNT = 100_000_000

const hntDecimals = 8

// FormatBones renders an amount in bones as an HNT decimal string.
func FormatBones(bones int64) string {
	r := new(big.Rat).SetFrac(big.NewInt(bones), big.NewInt(BonesPerHNT))
	return r.FloatString(hntDecimals)
}

// ParseHNT converts a decimal HNT string ("1.5") to bones. More than eight
// fractional digits or a result outside int64 is an error.
func ParseHNT(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if frac := strings.IndexByte(s, '.'); frac >= 0 && len(s)-frac-1 > hntDecimals {
		return 0, fmt.Errorf("amount %q has more than %d decimals", s, hntDecimals)
	}

	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	r.Mul(r, new(big.Rat).SetInt64(BonesPerHNT))
	if !r.IsInt() {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	n := r.Num()
	if !n.IsInt64() {
		return 0, fmt.Errorf("amount %q out of range", s)
	}
	return n.Int64(), nil
}
