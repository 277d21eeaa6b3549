package transfer_test

import (
	"context"
	"fmt"
	"testing"

	"transfer_tracker/internal/adapters/storage/memory/transfer"
	"transfer_tracker/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = mustAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	bob   = mustAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	carol = mustAddress("0xcccccccccccccccccccccccccccccccccccccccc")
)

func mustAddress(s string) domain.Address {
	a, err := domain.NewAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

func newTransfer(t *testing.T, seq int, from, to domain.Address, block int64, index uint64) domain.Transfer {
	t.Helper()
	hash, err := domain.NewTransactionHash(fmt.Sprintf("0x%064x", seq))
	require.NoError(t, err)
	num, err := domain.NewBlockNumber(block)
	require.NoError(t, err)
	value, err := domain.NewWeiValue("1000")
	require.NoError(t, err)
	fee, err := domain.ParseAmount(domain.CurrencyETH, "0.000021")
	require.NoError(t, err)
	confirmation, err := domain.NewTransferConfirmation(uint64(block), index, 1_600_000_000, fee)
	require.NoError(t, err)

	tx := domain.NewTransaction(hash, from, to, value, domain.WeiValue{}, num, domain.BlockHash{}, index, 1_600_000_000)
	return domain.NewTransfer(tx, domain.TransferStatusIncluded, confirmation)
}

func TestInMemoryTransferRepo_StoreAndFind(t *testing.T) {
	repo := transfer.NewInMemoryTransferRepo()
	ctx := context.Background()

	late := newTransfer(t, 1, alice, bob, 20, 0)
	earlySecond := newTransfer(t, 2, bob, alice, 10, 5)
	earlyFirst := newTransfer(t, 3, alice, carol, 10, 1)

	for _, tr := range []domain.Transfer{late, earlySecond, earlyFirst} {
		require.NoError(t, repo.Store(ctx, tr))
	}

	got, err := repo.FindByAddress(ctx, alice)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, earlyFirst.Transaction.Hash, got[0].Transaction.Hash)
	assert.Equal(t, earlySecond.Transaction.Hash, got[1].Transaction.Hash)
	assert.Equal(t, late.Transaction.Hash, got[2].Transaction.Hash)

	got, err = repo.FindByAddress(ctx, carol)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Confirmation.Equals(earlyFirst.Confirmation))

	found, err := repo.FindByHash(ctx, late.Transaction.Hash)
	require.NoError(t, err)
	assert.Equal(t, late, found)
}

func TestInMemoryTransferRepo_StoreIsIdempotent(t *testing.T) {
	repo := transfer.NewInMemoryTransferRepo()
	ctx := context.Background()

	tr := newTransfer(t, 7, alice, alice, 5, 0)
	require.NoError(t, repo.Store(ctx, tr))
	require.NoError(t, repo.Store(ctx, tr))

	got, err := repo.FindByAddress(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, got, 1, "self-transfer stored twice appears once")
}

func TestInMemoryTransferRepo_NotFound(t *testing.T) {
	repo := transfer.NewInMemoryTransferRepo()
	ctx := context.Background()

	got, err := repo.FindByAddress(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, got)

	hash, err := domain.NewTransactionHash(fmt.Sprintf("0x%064x", 99))
	require.NoError(t, err)
	_, err = repo.FindByHash(ctx, hash)
	assert.ErrorIs(t, err, domain.ErrTransferNotFound)
}
