// Package utils provides hex quantity helpers for Ethereum JSON-RPC values.
package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyHex indicates a hex quantity with no digits.
var ErrEmptyHex = errors.New("empty hex string")

// HexToInt64 converts a hex string (e.g., "0x1a") to int64.
func HexToInt64(hexStr string) (int64, error) {
	cleaned, err := cleanHex(hexStr)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(cleaned, 16, 64)
}

// HexToUint64 converts a hex string (e.g., "0x1a") to uint64.
func HexToUint64(hexStr string) (uint64, error) {
	cleaned, err := cleanHex(hexStr)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(cleaned, 16, 64)
}

// Uint64ToHex encodes n as a JSON-RPC quantity, e.g. 26 -> "0x1a".
func Uint64ToHex(n uint64) string {
	return fmt.Sprintf("0x%x", n)
}

func cleanHex(hexStr string) (string, error) {
	cleaned := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(hexStr)), "0x")
	if cleaned == "" {
		return "", ErrEmptyHex
	}
	return cleaned, nil
}
