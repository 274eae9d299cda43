package blockchain

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
)

// b58 version byte prefixed to the binary address before the checksum
const addressVersion = byte(0x00)

type KeyType byte

const (
	KeyTypeECCCompact KeyType = 0x00
	KeyTypeEd25519    KeyType = 0x01
	KeyTypeMultisig   KeyType = 0x02
	KeyTypeSecp256k1  KeyType = 0x03
)

type NetType byte

const (
	NetTypeMainnet NetType = 0x00
	NetTypeTestnet NetType = 0x10
)

func (k KeyType) String() string {
	switch k {
	case KeyTypeECCCompact:
		return "ecc_compact"
	case KeyTypeEd25519:
		return "ed25519"
	case KeyTypeMultisig:
		return "multisig"
	case KeyTypeSecp256k1:
		return "secp256k1"
	default:
		return fmt.Sprintf("keytype(%d)", byte(k))
	}
}

// KeySize returns the raw public key length for k, or 0 if k is unknown or
// has no fixed size (multisig).
func (k KeyType) KeySize() int {
	switch k {
	case KeyTypeECCCompact, KeyTypeEd25519:
		return 32
	case KeyTypeSecp256k1:
		return 33
	default:
		return 0
	}
}

func (n NetType) String() string {
	switch n {
	case NetTypeMainnet:
		return "mainnet"
	case NetTypeTestnet:
		return "testnet"
	default:
		return fmt.Sprintf("nettype(%d)", byte(n))
	}
}

// ParseNetType maps a config value ("mainnet", "testnet") to a NetType.
func ParseNetType(s string) (NetType, error) {
	switch s {
	case "", "mainnet":
		return NetTypeMainnet, nil
	case "testnet":
		return NetTypeTestnet, nil
	default:
		return 0, fmt.Errorf("unknown network %q", s)
	}
}

// Address is a ledger account identity. Bin is the authoritative binary
// form: one header byte (net type | key type) followed by the public key.
// Nothing is validated on construction; Validate runs at encode time.
type Address struct {
	Bin []byte
}

// AddressFromPublicKey builds the binary address for a raw public key.
func AddressFromPublicKey(net NetType, kt KeyType, pubKey []byte) Address {
	bin := make([]byte, 0, 1+len(pubKey))
	bin = append(bin, byte(net)|byte(kt))
	bin = append(bin, pubKey...)
	return Address{Bin: bin}
}

// AddressFromB58 decodes the textual form and checks its checksum.
func AddressFromB58(s string) (Address, error) {
	bin, version, err := base58.CheckDecode(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, s, err)
	}
	if version != addressVersion {
		return Address{}, fmt.Errorf("%w: %q: unexpected version %d", ErrInvalidAddress, s, version)
	}
	a := Address{Bin: bin}
	if err := a.Validate(); err != nil {
		return Address{}, err
	}
	return a, nil
}

// B58 returns the base58check text derived from Bin.
func (a Address) B58() string {
	return base58.CheckEncode(a.Bin, addressVersion)
}

func (a Address) String() string {
	if len(a.Bin) == 0 {
		return "<empty>"
	}
	return a.B58()
}

func (a Address) KeyType() KeyType {
	if len(a.Bin) == 0 {
		return 0
	}
	return KeyType(a.Bin[0] & 0x0f)
}

func (a Address) NetType() NetType {
	if len(a.Bin) == 0 {
		return 0
	}
	return NetType(a.Bin[0] & 0xf0)
}

// PublicKey returns the raw key bytes following the header byte.
func (a Address) PublicKey() []byte {
	if len(a.Bin) < 2 {
		return nil
	}
	return a.Bin[1:]
}

func (a Address) Equal(b Address) bool {
	return bytes.Equal(a.Bin, b.Bin)
}

// Validate checks that Bin has a known key type and the matching length.
func (a Address) Validate() error {
	if len(a.Bin) == 0 {
		return fmt.Errorf("%w: empty binary form", ErrInvalidAddress)
	}
	kt := a.KeyType()
	if kt == KeyTypeMultisig {
		return fmt.Errorf("%w: %w: multisig", ErrInvalidAddress, ErrUnsupportedKeyType)
	}
	size := kt.KeySize()
	if size == 0 {
		return fmt.Errorf("%w: unknown key type %d", ErrInvalidAddress, byte(kt))
	}
	if nt := a.NetType(); nt != NetTypeMainnet && nt != NetTypeTestnet {
		return fmt.Errorf("%w: unknown net type %d", ErrInvalidAddress, byte(nt))
	}
	if got := len(a.Bin) - 1; got != size {
		return fmt.Errorf("%w: %s key must be %d bytes, got %d", ErrInvalidAddress, kt, size, got)
	}
	return nil
}
