// Package rabbitmq publishes confirmed-transfer events to a RabbitMQ topic exchange.
package rabbitmq

import (
	"time"

	"github.com/google/uuid"

	"transfer_tracker/internal/core/domain"
)

// EventTypeTransferConfirmed names the payload carried by TransferConfirmedEvent.
const EventTypeTransferConfirmed = "transfer.confirmed"

// TransferConfirmedEvent is the JSON payload published for every stored transfer.
type TransferConfirmedEvent struct {
	EventID          uuid.UUID `json:"event_id"`
	EventType        string    `json:"event_type"`
	OccurredAt       time.Time `json:"occurred_at"`
	TxHash           string    `json:"tx_hash"`
	From             string    `json:"from"`
	To               string    `json:"to,omitempty"`
	ValueWei         string    `json:"value_wei"`
	Status           string    `json:"status"`
	BlockNumber      uint64    `json:"block_number"`
	BlockHash        string    `json:"block_hash,omitempty"`
	TransactionIndex uint64    `json:"transaction_index"`
	BlockTimestamp   int64     `json:"block_timestamp"`
	FeeAmount        string    `json:"fee_amount"`
	FeeCurrency      string    `json:"fee_currency"`
}

// NewTransferConfirmedEvent builds the event for a transfer with a fresh event ID.
func NewTransferConfirmedEvent(transfer domain.Transfer, occurredAt time.Time) TransferConfirmedEvent {
	tx := transfer.Transaction
	conf := transfer.Confirmation

	return TransferConfirmedEvent{
		EventID:          uuid.New(),
		EventType:        EventTypeTransferConfirmed,
		OccurredAt:       occurredAt.UTC(),
		TxHash:           tx.Hash.String(),
		From:             tx.From.String(),
		To:               tx.To.String(),
		ValueWei:         tx.Value.Decimal(),
		Status:           transfer.Status.String(),
		BlockNumber:      conf.BlockNumber(),
		BlockHash:        tx.BlockHash.String(),
		TransactionIndex: conf.TransactionIndex(),
		BlockTimestamp:   conf.Timestamp(),
		FeeAmount:        conf.Fee().Decimal(),
		FeeCurrency:      conf.Fee().Currency().Code(),
	}
}
