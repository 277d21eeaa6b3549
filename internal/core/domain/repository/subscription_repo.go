// Package repository defines interfaces for data storage and retrieval operations.
//
//go:generate mockery --name=SubscriptionRepository --output=../../mocks/mock_repository --outpkg=mock_repository
package repository

import (
	"context"

	"transfer_tracker/internal/core/domain"
)

// SubscriptionRepository manages the set of addresses whose transfers are tracked.
type SubscriptionRepository interface {
	// Add subscribes an address. Adding an address twice is not an error.
	Add(ctx context.Context, address domain.Address) error

	// Exists checks if a given address is subscribed.
	Exists(ctx context.Context, address domain.Address) (bool, error)

	// FindAll retrieves all subscribed addresses.
	FindAll(ctx context.Context) ([]domain.Address, error)
}
