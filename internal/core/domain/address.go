// Package domain defines the transfer tracking model: addresses, blocks, transactions,
// receipts, amounts and the confirmations derived from them.
package domain

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidAddressFormat indicates that the provided string is not a 0x-prefixed 20-byte hex address.
var ErrInvalidAddressFormat = errors.New("invalid ethereum address format")

const addressByteLen = 20

// Address is a lower-cased Ethereum account address.
type Address struct {
	value string
}

// NewAddress trims and lower-cases addr and checks that it encodes exactly 20 bytes.
// EIP-55 checksums are not verified.
func NewAddress(addr string) (Address, error) {
	clean, ok := normalizeFixedHex(addr, addressByteLen)
	if !ok {
		return Address{}, fmt.Errorf("%w: %s", ErrInvalidAddressFormat, addr)
	}
	return Address{value: clean}, nil
}

func (a Address) String() string {
	return a.value
}

// IsZero reports whether a is unset. Contract creations have a zero recipient.
func (a Address) IsZero() bool {
	return a.value == ""
}

func (a Address) Equals(other Address) bool {
	return a.value == other.value
}

// AddressSet is a set of monitored addresses.
type AddressSet map[Address]struct{}

// NewAddressSet builds a set from addrs, ignoring zero addresses.
func NewAddressSet(addrs ...Address) AddressSet {
	set := make(AddressSet, len(addrs))
	for _, a := range addrs {
		set.Add(a)
	}
	return set
}

// Add inserts a and reports whether it was not already present.
func (s AddressSet) Add(a Address) bool {
	if a.IsZero() {
		return false
	}
	if _, ok := s[a]; ok {
		return false
	}
	s[a] = struct{}{}
	return true
}

// Contains is safe on a nil set.
func (s AddressSet) Contains(a Address) bool {
	_, ok := s[a]
	return ok
}

// Sorted returns the members in lexical order.
func (s AddressSet) Sorted() []Address {
	out := make([]Address, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].value < out[j].value })
	return out
}
