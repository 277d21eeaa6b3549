// Package subscription provides an in-memory implementation of the SubscriptionRepository interface.
package subscription

import (
	"context"
	"sync"

	"transfer_tracker/internal/core/domain"
	"transfer_tracker/internal/core/domain/repository"
)

// InMemorySubscriptionRepo implements the SubscriptionRepository interface using an in-memory set.
type InMemorySubscriptionRepo struct {
	mu        sync.RWMutex
	addresses domain.AddressSet
}

// Compile-time check to ensure InMemorySubscriptionRepo implements repository.SubscriptionRepository
var _ repository.SubscriptionRepository = (*InMemorySubscriptionRepo)(nil)

// NewInMemorySubscriptionRepo creates a new in-memory subscription repository.
func NewInMemorySubscriptionRepo() *InMemorySubscriptionRepo {
	return &InMemorySubscriptionRepo{
		addresses: domain.NewAddressSet(),
	}
}

// Add subscribes an address.
func (r *InMemorySubscriptionRepo) Add(_ context.Context, address domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.addresses.Add(address)
	return nil
}

// Exists checks if a given address is subscribed.
func (r *InMemorySubscriptionRepo) Exists(_ context.Context, address domain.Address) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.addresses.Contains(address), nil
}

// FindAll returns the subscribed addresses sorted lexically.
func (r *InMemorySubscriptionRepo) FindAll(_ context.Context) ([]domain.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.addresses.Sorted(), nil
}
