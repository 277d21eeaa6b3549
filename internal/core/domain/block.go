package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeBlockNumber indicates a negative block height.
	ErrNegativeBlockNumber = errors.New("block number cannot be negative")

	// ErrInvalidBlockHashFormat indicates a string that is not a 0x-prefixed 32-byte hex hash.
	ErrInvalidBlockHashFormat = errors.New("invalid block hash format")
)

// BlockNumber is a block height. Heights start at 0 (genesis).
type BlockNumber struct {
	value int64
}

func NewBlockNumber(number int64) (BlockNumber, error) {
	if number < 0 {
		return BlockNumber{}, fmt.Errorf("%w: %d", ErrNegativeBlockNumber, number)
	}
	return BlockNumber{value: number}, nil
}

func (bn BlockNumber) Value() int64 {
	return bn.value
}

// BlockHash identifies a block; it is compared on lower-cased hex.
type BlockHash struct {
	value string
}

func NewBlockHash(hash string) (BlockHash, error) {
	clean, ok := normalizeFixedHex(hash, hashByteLen)
	if !ok {
		return BlockHash{}, fmt.Errorf("%w: %s", ErrInvalidBlockHashFormat, hash)
	}
	return BlockHash{value: clean}, nil
}

func (bh BlockHash) String() string { return bh.value }

func (bh BlockHash) IsZero() bool { return bh.value == "" }

func (bh BlockHash) Equals(other BlockHash) bool { return bh.value == other.value }

// Block is a block header summary together with its full transactions.
type Block struct {
	Number       BlockNumber
	Hash         BlockHash
	Timestamp    uint64
	Transactions []Transaction
}

func NewBlock(number BlockNumber, hash BlockHash, timestamp uint64, transactions []Transaction) Block {
	return Block{
		Number:       number,
		Hash:         hash,
		Timestamp:    timestamp,
		Transactions: transactions,
	}
}

// Involving returns the block's transactions sent from or to any of the given addresses, in block order.
func (b Block) Involving(addresses AddressSet) []Transaction {
	if len(addresses) == 0 {
		return nil
	}
	matched := make([]Transaction, 0)
	for _, tx := range b.Transactions {
		if tx.Involves(addresses) {
			matched = append(matched, tx)
		}
	}
	return matched
}
