// Package scan_state keeps the scanner's progress in process memory.
package scan_state

import (
	"context"
	"sync/atomic"

	"transfer_tracker/internal/core/domain"
	"transfer_tracker/internal/core/domain/repository"
)

// notScanned marks a repository that has never recorded a block. Heights are never negative.
const notScanned = -1

// InMemoryScanStateRepo holds the last scanned height in a single atomic word.
// Use NewInMemoryScanStateRepo; the zero value reports block 0 as scanned.
type InMemoryScanStateRepo struct {
	last atomic.Int64
}

var _ repository.ScanStateRepository = (*InMemoryScanStateRepo)(nil)

func NewInMemoryScanStateRepo() *InMemoryScanStateRepo {
	r := &InMemoryScanStateRepo{}
	r.last.Store(notScanned)
	return r
}

// GetLastScannedBlock returns repository.ErrScanStateNotInitialized until the first Set.
// Like the Postgres store it fails fast on a cancelled context.
func (r *InMemoryScanStateRepo) GetLastScannedBlock(ctx context.Context) (domain.BlockNumber, error) {
	if err := ctx.Err(); err != nil {
		return domain.BlockNumber{}, err
	}
	v := r.last.Load()
	if v == notScanned {
		return domain.BlockNumber{}, repository.ErrScanStateNotInitialized
	}
	return domain.NewBlockNumber(v)
}

func (r *InMemoryScanStateRepo) SetLastScannedBlock(ctx context.Context, blockNumber domain.BlockNumber) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.last.Store(blockNumber.Value())
	return nil
}
