package subscription_test

import (
	"context"
	"sync"
	"testing"

	"transfer_tracker/internal/adapters/storage/memory/subscription"
	"transfer_tracker/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemorySubscriptionRepo_AddExistsFindAll(t *testing.T) {
	repo := subscription.NewInMemorySubscriptionRepo()
	ctx := context.Background()

	addr1, err := domain.NewAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	require.NoError(t, err)
	addr2, err := domain.NewAddress("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	require.NoError(t, err)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	exists, err := repo.Exists(ctx, addr1)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Add(ctx, addr1))
	require.NoError(t, repo.Add(ctx, addr2))
	require.NoError(t, repo.Add(ctx, addr1))

	exists, err = repo.Exists(ctx, addr1)
	require.NoError(t, err)
	assert.True(t, exists)

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Address{addr2, addr1}, all, "duplicates collapse and output is sorted")
}

func TestInMemorySubscriptionRepo_ConcurrentAdd(t *testing.T) {
	repo := subscription.NewInMemorySubscriptionRepo()
	ctx := context.Background()
	addr, err := domain.NewAddress("0xcccccccccccccccccccccccccccccccccccccccc")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Add(ctx, addr))
		}()
	}
	wg.Wait()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
