package rabbitmq

import (
	"context"
	"time"

	"transfer_tracker/internal/core/domain"
	"transfer_tracker/internal/core/domain/notifier"
	"transfer_tracker/internal/logger"
)

// LoggingNotifier is the fallback used when no broker is configured. It logs the event it would publish.
type LoggingNotifier struct {
	logger logger.AppLogger
}

var _ notifier.TransferNotifier = (*LoggingNotifier)(nil)

// NewLoggingNotifier creates a LoggingNotifier.
func NewLoggingNotifier(appLogger logger.AppLogger) *LoggingNotifier {
	return &LoggingNotifier{logger: appLogger.Component("LoggingNotifier")}
}

// NotifyTransferConfirmed logs the transfer at info level.
func (n *LoggingNotifier) NotifyTransferConfirmed(_ context.Context, transfer domain.Transfer) error {
	event := NewTransferConfirmedEvent(transfer, time.Now())
	n.logger.Info("Transfer confirmed",
		"eventId", event.EventID.String(),
		"txHash", event.TxHash,
		"status", event.Status,
		"blockNumber", event.BlockNumber,
		"transactionIndex", event.TransactionIndex,
		"fee", transfer.Confirmation.Fee().String(),
	)
	return nil
}
