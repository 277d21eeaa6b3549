// Package transferparser defines the public API contracts for the transfer tracking service.
//
//go:generate mockery --name=Parser --output=../../internal/core/mocks/mock_transferparser --outpkg=mock_transferparser
package transferparser

import (
	"context"
)

// Fee is the network fee of a confirmed transfer.
type Fee struct {
	// Amount in display units, e.g. "0.000021".
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	// BaseUnits is the integer amount in the smallest unit (wei for ETH).
	BaseUnits string `json:"baseUnits"`
}

// Confirmation describes where and when a transfer was included and what it cost.
type Confirmation struct {
	BlockNumber      uint64 `json:"blockNumber"`
	TransactionIndex uint64 `json:"transactionIndex"`
	// Timestamp is the block time in Unix seconds.
	Timestamp int64 `json:"timestamp"`
	Fee       Fee   `json:"fee"`
}

// Transfer represents a tracked transaction returned by the API.
type Transfer struct {
	Hash  string `json:"hash"`
	From  string `json:"from"`
	To    string `json:"to"`
	Value string `json:"value"`
	// Status is "included" or "failed".
	Status       string       `json:"status"`
	Confirmation Confirmation `json:"confirmation"`
}

// SubscribeRequestDTO represents the expected JSON body for a subscription request.
type SubscribeRequestDTO struct {
	Address string `json:"address"`
}

// Parser defines the public interface for the transfer tracking service.
type Parser interface {
	// GetCurrentBlock returns the number of the last block that was fully processed.
	GetCurrentBlock(ctx context.Context) (blockNumber int64, err error)

	// Subscribe adds an Ethereum address to the set of monitored addresses.
	Subscribe(ctx context.Context, address string) (err error)

	// GetTransfers retrieves all confirmed transfers (both inbound and outbound) for an address.
	GetTransfers(ctx context.Context, address string) (transfers []Transfer, err error)

	// GetConfirmation returns the confirmation recorded for a transaction hash.
	GetConfirmation(ctx context.Context, hash string) (confirmation Confirmation, err error)

	// Start initiates the background process of polling for new blocks and recording transfers.
	Start(ctx context.Context) (err error)

	// Stop gracefully shuts down the background polling process.
	Stop(ctx context.Context) (err error)
}
