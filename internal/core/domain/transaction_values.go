package domain

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	// ErrInvalidTransactionHashFormat indicates a string that is not a 0x-prefixed 32-byte hex hash.
	ErrInvalidTransactionHashFormat = errors.New("invalid transaction hash format")

	// ErrInvalidWeiValueFormat indicates a string that is not a non-negative hex or decimal integer.
	ErrInvalidWeiValueFormat = errors.New("invalid wei value format")
)

const hashByteLen = 32

// normalizeFixedHex lower-cases s and reports whether it is "0x" followed by exactly n bytes of hex.
func normalizeFixedHex(s string, n int) (string, bool) {
	clean := strings.ToLower(strings.TrimSpace(s))
	if len(clean) != 2+2*n || !strings.HasPrefix(clean, "0x") {
		return "", false
	}
	if _, err := hex.DecodeString(clean[2:]); err != nil {
		return "", false
	}
	return clean, true
}

// TransactionHash identifies a transaction. Lookups by hash are case-insensitive.
type TransactionHash struct {
	value string
}

func NewTransactionHash(hash string) (TransactionHash, error) {
	clean, ok := normalizeFixedHex(hash, hashByteLen)
	if !ok {
		return TransactionHash{}, fmt.Errorf("%w: %s", ErrInvalidTransactionHashFormat, hash)
	}
	return TransactionHash{value: clean}, nil
}

func (th TransactionHash) String() string { return th.value }

func (th TransactionHash) IsZero() bool { return th.value == "" }

func (th TransactionHash) Equals(other TransactionHash) bool { return th.value == other.value }

// WeiValue is a non-negative integer quantity of wei as reported by the node.
// The zero value is 0 wei.
type WeiValue struct {
	value *big.Int
}

// NewWeiValue parses a JSON-RPC quantity ("0x...") or a base-10 string.
func NewWeiValue(s string) (WeiValue, error) {
	trimmed := strings.TrimSpace(s)

	digits, base := trimmed, 10
	if len(trimmed) >= 2 && (trimmed[:2] == "0x" || trimmed[:2] == "0X") {
		digits, base = trimmed[2:], 16
	}
	if digits == "" || digits[0] == '-' || digits[0] == '+' {
		return WeiValue{}, fmt.Errorf("%w: '%s'", ErrInvalidWeiValueFormat, s)
	}

	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return WeiValue{}, fmt.Errorf("%w: '%s'", ErrInvalidWeiValueFormat, s)
	}
	return WeiValue{value: v}, nil
}

func (wv WeiValue) int() *big.Int {
	if wv.value == nil {
		return new(big.Int)
	}
	return wv.value
}

// String returns the JSON-RPC quantity form, e.g. "0x3b9aca00".
func (wv WeiValue) String() string {
	return "0x" + wv.int().Text(16)
}

// Decimal returns the base-10 form.
func (wv WeiValue) Decimal() string {
	return wv.int().String()
}

// BigInt returns a copy that the caller may modify.
func (wv WeiValue) BigInt() *big.Int {
	return new(big.Int).Set(wv.int())
}

func (wv WeiValue) IsZero() bool {
	return wv.int().Sign() == 0
}

func (wv WeiValue) Equals(other WeiValue) bool {
	return wv.int().Cmp(other.int()) == 0
}
