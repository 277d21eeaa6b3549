package domain

import (
	"errors"
	"time"
)

// ErrMissingFee indicates that a confirmation was built without a fee amount.
var ErrMissingFee = errors.New("transfer confirmation fee is required")

// TransferConfirmation records where and when a transfer was included on chain
// and the network fee it paid. It is immutable once created.
type TransferConfirmation struct {
	blockNumber      uint64
	transactionIndex uint64
	timestamp        int64
	fee              Amount
}

// NewTransferConfirmation creates a confirmation. The timestamp is in seconds since the Unix epoch.
// Block number and index are taken as given; only an absent fee is rejected.
func NewTransferConfirmation(
	blockNumber uint64,
	transactionIndex uint64,
	timestamp int64,
	fee Amount,
) (TransferConfirmation, error) {
	if fee.IsZero() {
		return TransferConfirmation{}, ErrMissingFee
	}
	return TransferConfirmation{
		blockNumber:      blockNumber,
		transactionIndex: transactionIndex,
		timestamp:        timestamp,
		fee:              fee,
	}, nil
}

// BlockNumber returns the height of the block containing the transfer.
func (c TransferConfirmation) BlockNumber() uint64 {
	return c.blockNumber
}

// TransactionIndex returns the position of the transaction within its block.
func (c TransferConfirmation) TransactionIndex() uint64 {
	return c.transactionIndex
}

// Timestamp returns the block timestamp in Unix seconds.
func (c TransferConfirmation) Timestamp() int64 {
	return c.timestamp
}

// Time returns the block timestamp as a UTC time.
func (c TransferConfirmation) Time() time.Time {
	return time.Unix(c.timestamp, 0).UTC()
}

// Fee returns the network fee paid.
func (c TransferConfirmation) Fee() Amount {
	return c.fee
}

// IsZero checks if the confirmation is the zero value.
func (c TransferConfirmation) IsZero() bool {
	return c.fee.IsZero()
}

// Equals compares all four fields.
func (c TransferConfirmation) Equals(other TransferConfirmation) bool {
	return c.blockNumber == other.blockNumber &&
		c.transactionIndex == other.transactionIndex &&
		c.timestamp == other.timestamp &&
		c.fee.Equals(other.fee)
}
