// Package repository defines interfaces for data storage and retrieval operations.
//
//go:generate mockery --name=TransferRepository --output=../../mocks/mock_repository --outpkg=mock_repository
package repository

import (
	"context"

	"transfer_tracker/internal/core/domain"
)

// TransferRepository defines the interface for storing and retrieving confirmed transfers.
type TransferRepository interface {
	// Store saves a transfer. Storing the same transaction hash again replaces the earlier record.
	Store(ctx context.Context, transfer domain.Transfer) error

	// FindByAddress retrieves all stored transfers (both inbound and outbound) ordered by block and index.
	FindByAddress(ctx context.Context, address domain.Address) ([]domain.Transfer, error)

	// FindByHash retrieves a single transfer. It returns domain.ErrTransferNotFound when absent.
	FindByHash(ctx context.Context, hash domain.TransactionHash) (domain.Transfer, error)
}
