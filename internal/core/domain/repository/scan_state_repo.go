// Package repository defines interfaces for data storage and retrieval operations.
//
//go:generate mockery --name=ScanStateRepository --output=../../mocks/mock_repository --outpkg=mock_repository
package repository

import (
	"context"
	"errors"

	"transfer_tracker/internal/core/domain"
)

// ErrScanStateNotInitialized indicates that no block has been recorded as scanned yet.
var ErrScanStateNotInitialized = errors.New("scan state not initialized")

// ScanStateRepository persists the scanner's progress through the chain.
type ScanStateRepository interface {
	// GetLastScannedBlock returns the last block whose transfers were fully processed.
	GetLastScannedBlock(ctx context.Context) (domain.BlockNumber, error)

	// SetLastScannedBlock records the last fully processed block.
	SetLastScannedBlock(ctx context.Context, blockNumber domain.BlockNumber) error
}
