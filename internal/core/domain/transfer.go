package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTransferNotFound indicates that no transfer is stored for the requested hash.
	ErrTransferNotFound = errors.New("transfer not found")

	// ErrReceiptMismatch indicates a receipt that does not belong to the transaction or block at hand.
	ErrReceiptMismatch = errors.New("receipt does not match transaction")

	// ErrInvalidTransferStatus indicates an unknown transfer status string.
	ErrInvalidTransferStatus = errors.New("invalid transfer status")
)

// TransferStatus is the terminal state of a transfer observed on chain.
type TransferStatus string

// Supported transfer statuses. A failed transfer is still included and still pays its fee.
const (
	TransferStatusIncluded TransferStatus = "included"
	TransferStatusFailed   TransferStatus = "failed"
)

// ParseTransferStatus validates a status string.
func ParseTransferStatus(s string) (TransferStatus, error) {
	switch TransferStatus(s) {
	case TransferStatusIncluded, TransferStatusFailed:
		return TransferStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidTransferStatus, s)
	}
}

// String returns the status as a string.
func (s TransferStatus) String() string {
	return string(s)
}

// Transfer is a transaction involving a monitored address together with its confirmation.
type Transfer struct {
	Transaction  Transaction
	Status       TransferStatus
	Confirmation TransferConfirmation
}

// NewTransfer is a simple constructor for the Transfer entity.
func NewTransfer(tx Transaction, status TransferStatus, confirmation TransferConfirmation) Transfer {
	return Transfer{
		Transaction:  tx,
		Status:       status,
		Confirmation: confirmation,
	}
}

// BuildTransfer combines a block transaction with its receipt.
// The receipt must name the same transaction, block hash, height and index as the block did;
// otherwise it comes from a block that is no longer canonical and ErrReceiptMismatch is returned.
// When the receipt carries no effective gas price the transaction's gas price is used.
func BuildTransfer(tx Transaction, receipt Receipt) (Transfer, error) {
	if !receipt.TransactionHash.Equals(tx.Hash) {
		return Transfer{}, fmt.Errorf("%w: receipt hash %s, transaction hash %s",
			ErrReceiptMismatch, receipt.TransactionHash.String(), tx.Hash.String())
	}
	if receipt.BlockNumber.Value() != tx.BlockNumber.Value() {
		return Transfer{}, fmt.Errorf("%w: receipt block %d, transaction block %d",
			ErrReceiptMismatch, receipt.BlockNumber.Value(), tx.BlockNumber.Value())
	}
	if !receipt.BlockHash.Equals(tx.BlockHash) {
		return Transfer{}, fmt.Errorf("%w: receipt block hash %s, transaction block hash %s",
			ErrReceiptMismatch, receipt.BlockHash.String(), tx.BlockHash.String())
	}
	if receipt.TransactionIndex != tx.Index {
		return Transfer{}, fmt.Errorf("%w: receipt index %d, transaction index %d",
			ErrReceiptMismatch, receipt.TransactionIndex, tx.Index)
	}

	gasPrice := receipt.EffectiveGasPrice
	if gasPrice.IsZero() {
		gasPrice = tx.GasPrice
	}

	confirmation, err := NewTransferConfirmation(
		uint64(tx.BlockNumber.Value()),
		tx.Index,
		int64(tx.Timestamp),
		ComputeFee(receipt.GasUsed, gasPrice),
	)
	if err != nil {
		return Transfer{}, fmt.Errorf("failed to create confirmation: %w", err)
	}

	status := TransferStatusIncluded
	if !receipt.Succeeded {
		status = TransferStatusFailed
	}
	return NewTransfer(tx, status, confirmation), nil
}
