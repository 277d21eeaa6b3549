package scan_state_test

import (
	"context"
	"testing"

	"transfer_tracker/internal/adapters/storage/memory/scan_state"
	"transfer_tracker/internal/core/domain"
	"transfer_tracker/internal/core/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryScanStateRepo(t *testing.T) {
	repo := scan_state.NewInMemoryScanStateRepo()
	ctx := context.Background()

	_, err := repo.GetLastScannedBlock(ctx)
	assert.ErrorIs(t, err, repository.ErrScanStateNotInitialized)

	first, err := domain.NewBlockNumber(0)
	require.NoError(t, err)
	require.NoError(t, repo.SetLastScannedBlock(ctx, first))

	got, err := repo.GetLastScannedBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, got, "block zero is a valid state")

	next, err := domain.NewBlockNumber(12345)
	require.NoError(t, err)
	require.NoError(t, repo.SetLastScannedBlock(ctx, next))

	got, err = repo.GetLastScannedBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), got.Value())
}

func TestInMemoryScanStateRepo_CancelledContext(t *testing.T) {
	repo := scan_state.NewInMemoryScanStateRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	block, err := domain.NewBlockNumber(7)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.SetLastScannedBlock(ctx, block), context.Canceled)

	_, err = repo.GetLastScannedBlock(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = repo.GetLastScannedBlock(context.Background())
	assert.ErrorIs(t, err, repository.ErrScanStateNotInitialized, "a cancelled write must not be recorded")
}
