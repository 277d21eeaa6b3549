// Package transfer provides an in-memory implementation of the TransferRepository interface.
package transfer

import (
	"context"
	"sort"
	"sync"

	"transfer_tracker/internal/core/domain"
	"transfer_tracker/internal/core/domain/repository"
)

// InMemoryTransferRepo implements the TransferRepository interface using in-memory storage.
// Transfers are keyed by transaction hash and indexed by sender and recipient.
type InMemoryTransferRepo struct {
	mu        sync.RWMutex
	byHash    map[domain.TransactionHash]domain.Transfer
	byAddress map[domain.Address]map[domain.TransactionHash]struct{}
}

// Compile-time check to ensure InMemoryTransferRepo implements repository.TransferRepository
var _ repository.TransferRepository = (*InMemoryTransferRepo)(nil)

// NewInMemoryTransferRepo creates a new in-memory transfer repository.
func NewInMemoryTransferRepo() *InMemoryTransferRepo {
	return &InMemoryTransferRepo{
		byHash:    make(map[domain.TransactionHash]domain.Transfer),
		byAddress: make(map[domain.Address]map[domain.TransactionHash]struct{}),
	}
}

// Store saves a transfer, replacing any earlier record with the same hash.
func (r *InMemoryTransferRepo) Store(_ context.Context, transfer domain.Transfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	hash := transfer.Transaction.Hash
	r.byHash[hash] = transfer
	r.index(transfer.Transaction.From, hash)
	if !transfer.Transaction.To.IsZero() {
		r.index(transfer.Transaction.To, hash)
	}
	return nil
}

func (r *InMemoryTransferRepo) index(address domain.Address, hash domain.TransactionHash) {
	hashes, ok := r.byAddress[address]
	if !ok {
		hashes = make(map[domain.TransactionHash]struct{})
		r.byAddress[address] = hashes
	}
	hashes[hash] = struct{}{}
}

// FindByAddress retrieves all stored transfers (both inbound and outbound) ordered by block and index.
func (r *InMemoryTransferRepo) FindByAddress(
	_ context.Context,
	address domain.Address,
) ([]domain.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hashes := r.byAddress[address]
	transfers := make([]domain.Transfer, 0, len(hashes))
	for hash := range hashes {
		transfers = append(transfers, r.byHash[hash])
	}
	sort.Slice(transfers, func(i, j int) bool {
		ci, cj := transfers[i].Confirmation, transfers[j].Confirmation
		if ci.BlockNumber() != cj.BlockNumber() {
			return ci.BlockNumber() < cj.BlockNumber()
		}
		return ci.TransactionIndex() < cj.TransactionIndex()
	})
	return transfers, nil
}

// FindByHash retrieves a single transfer.
func (r *InMemoryTransferRepo) FindByHash(_ context.Context, hash domain.TransactionHash) (domain.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	transfer, ok := r.byHash[hash]
	if !ok {
		return domain.Transfer{}, domain.ErrTransferNotFound
	}
	return transfer, nil
}
