package postgres

import (
	"context"
	"fmt"

	"transfer_tracker/internal/core/domain"
	"transfer_tracker/internal/core/domain/repository"
)

// SubscriptionStore is a PostgreSQL implementation of repository.SubscriptionRepository.
type SubscriptionStore struct {
	pool *Pool
}

var _ repository.SubscriptionRepository = (*SubscriptionStore)(nil)

// NewSubscriptionStore creates a new PostgreSQL subscription store.
func NewSubscriptionStore(pool *Pool) *SubscriptionStore {
	return &SubscriptionStore{pool: pool}
}

// Add subscribes an address. Existing subscriptions are left untouched.
func (s *SubscriptionStore) Add(ctx context.Context, address domain.Address) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO monitored_addresses (address)
		VALUES ($1)
		ON CONFLICT (address) DO NOTHING
	`, address.String())
	if err != nil {
		return fmt.Errorf("insert monitored address: %w", err)
	}
	return nil
}

// Exists checks if a given address is subscribed.
func (s *SubscriptionStore) Exists(ctx context.Context, address domain.Address) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM monitored_addresses WHERE address = $1)
	`, address.String()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query monitored address: %w", err)
	}
	return exists, nil
}

// FindAll returns the subscribed addresses sorted lexically.
func (s *SubscriptionStore) FindAll(ctx context.Context) ([]domain.Address, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT address FROM monitored_addresses ORDER BY address
	`)
	if err != nil {
		return nil, fmt.Errorf("query monitored addresses: %w", err)
	}
	defer rows.Close()

	addresses := make([]domain.Address, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		addr, err := domain.NewAddress(raw)
		if err != nil {
			return nil, fmt.Errorf("stored address: %w", err)
		}
		addresses = append(addresses, addr)
	}
	return addresses, rows.Err()
}
