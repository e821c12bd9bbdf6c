package ledger

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// AddressLength is the size in bytes of a register address or identity.
const AddressLength = 32

// TxHashLength is the size in bytes of a transaction hash.
const TxHashLength = 64

// Address identifies a register or an owning identity (sigchain genesis).
// The value is opaque; only equality and ordering are meaningful.
type Address [AddressLength]byte

// ZeroAddress is the empty address. It never names a live register.
var ZeroAddress = Address{}

// BytesToAddress converts a byte slice into an address. It returns an error
// if the slice is not exactly AddressLength bytes long.
func BytesToAddress(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLength {
		return a, fmt.Errorf("invalid address length (expected=%d, got=%d)", AddressLength, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// HexToAddress decodes a hex string into an address.
func HexToAddress(s string) (Address, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return ZeroAddress, fmt.Errorf("could not decode address %q: %w", s, err)
	}
	return BytesToAddress(b)
}

// MustHexToAddress is HexToAddress for fixtures and constants; it panics on
// malformed input.
func MustHexToAddress(s string) Address {
	a, err := HexToAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

func (a Address) IsZero() bool {
	return a == ZeroAddress
}

func (a Address) Bytes() []byte {
	return a[:]
}

// Compare orders addresses bytewise.
func (a Address) Compare(other Address) int {
	return bytes.Compare(a[:], other[:])
}

// TxHash identifies a transaction.
type TxHash [TxHashLength]byte

// ZeroTxHash is the empty transaction hash.
var ZeroTxHash = TxHash{}

// BytesToTxHash converts a byte slice into a transaction hash.
func BytesToTxHash(b []byte) (TxHash, error) {
	var h TxHash
	if len(b) != TxHashLength {
		return h, fmt.Errorf("invalid tx hash length (expected=%d, got=%d)", TxHashLength, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// HexToTxHash decodes a hex string into a transaction hash.
func HexToTxHash(s string) (TxHash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return ZeroTxHash, fmt.Errorf("could not decode tx hash %q: %w", s, err)
	}
	return BytesToTxHash(b)
}

func (h TxHash) String() string {
	return hex.EncodeToString(h[:])
}

// Short returns a truncated hex form for log lines.
func (h TxHash) Short() string {
	return hex.EncodeToString(h[:8])
}

func (h TxHash) IsZero() bool {
	return h == ZeroTxHash
}

func (h TxHash) Bytes() []byte {
	return h[:]
}
