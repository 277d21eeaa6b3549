package postgres

import (
	"context"
	"fmt"

	"transfer_tracker/internal/core/domain"
	"transfer_tracker/internal/core/domain/repository"
)

// ScanStateStore is a PostgreSQL implementation of repository.ScanStateRepository.
// The state lives in a single row of parser_state.
type ScanStateStore struct {
	pool *Pool
}

var _ repository.ScanStateRepository = (*ScanStateStore)(nil)

// NewScanStateStore creates a new PostgreSQL scan state store.
func NewScanStateStore(pool *Pool) *ScanStateStore {
	return &ScanStateStore{pool: pool}
}

// GetLastScannedBlock returns the last scanned block.
func (s *ScanStateStore) GetLastScannedBlock(ctx context.Context) (domain.BlockNumber, error) {
	var last int64
	err := s.pool.QueryRow(ctx, `
		SELECT last_scanned_block FROM parser_state WHERE id = 1
	`).Scan(&last)
	if err != nil {
		if isNotFoundError(err) {
			return domain.BlockNumber{}, repository.ErrScanStateNotInitialized
		}
		return domain.BlockNumber{}, fmt.Errorf("query parser state: %w", err)
	}
	return domain.NewBlockNumber(last)
}

// SetLastScannedBlock upserts the last scanned block.
func (s *ScanStateStore) SetLastScannedBlock(ctx context.Context, blockNumber domain.BlockNumber) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO parser_state (id, last_scanned_block, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE
		SET last_scanned_block = EXCLUDED.last_scanned_block,
		    updated_at = NOW()
	`, blockNumber.Value())
	if err != nil {
		return fmt.Errorf("upsert parser state: %w", err)
	}
	return nil
}
