// Package notifier defines the outbound port for announcing confirmed transfers.
//
//go:generate mockery --name=TransferNotifier --output=../../mocks/mock_notifier --outpkg=mock_notifier
package notifier

import (
	"context"

	"transfer_tracker/internal/core/domain"
)

// TransferNotifier announces transfers once their confirmation is stored.
type TransferNotifier interface {
	// NotifyTransferConfirmed publishes a confirmed transfer to downstream consumers.
	NotifyTransferConfirmed(ctx context.Context, transfer domain.Transfer) error
}
