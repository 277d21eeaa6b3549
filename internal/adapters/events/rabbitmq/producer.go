package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"transfer_tracker/internal/core/domain"
	"transfer_tracker/internal/core/domain/notifier"
	"transfer_tracker/internal/logger"
)

const (
	exchangeKind = "topic"
	dialTimeout  = 10 * time.Second
)

// Producer publishes TransferConfirmedEvent messages to a durable topic exchange.
type Producer struct {
	mu         sync.Mutex
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	exchange   string
	routingKey string
	logger     logger.AppLogger
	now        func() time.Time
}

var _ notifier.TransferNotifier = (*Producer)(nil)

// NewProducer dials RabbitMQ, opens a channel and declares the exchange.
func NewProducer(amqpURL, exchange, routingKey string, appLogger logger.AppLogger) (*Producer, error) {
	if appLogger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if exchange == "" || routingKey == "" {
		return nil, errors.New("exchange and routing key are required")
	}
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}

	conn, err := amqp091.DialConfig(cleanURL, amqp091.Config{Dial: amqp091.DefaultDial(dialTimeout)})
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	p := &Producer{
		conn:       conn,
		exchange:   exchange,
		routingKey: routingKey,
		logger:     appLogger.Component("RabbitMQProducer").With("exchange", exchange),
		now:        time.Now,
	}
	if err := p.openChannel(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return p, nil
}

// openChannel replaces the current channel and declares the exchange on it. Callers hold mu or own p exclusively.
func (p *Producer) openChannel() error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchange, exchangeKind, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return fmt.Errorf("declare exchange %s: %w", p.exchange, err)
	}
	p.channel = ch
	return nil
}

// NotifyTransferConfirmed publishes the transfer. A failed publish is retried once on a fresh channel.
func (p *Producer) NotifyTransferConfirmed(ctx context.Context, transfer domain.Transfer) error {
	event := NewTransferConfirmedEvent(transfer, p.now())
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal transfer event: %w", err)
	}

	msg := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    event.EventID.String(),
		Type:         event.EventType,
		Timestamp:    event.OccurredAt,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, msg)
	if err == nil {
		return nil
	}

	p.logger.Warn("Publish failed, reopening channel", "txHash", event.TxHash, "error", err)
	if reopenErr := p.openChannel(); reopenErr != nil {
		return fmt.Errorf("publish transfer event: %w", errors.Join(err, reopenErr))
	}
	if err := p.channel.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, msg); err != nil {
		return fmt.Errorf("publish transfer event: %w", err)
	}
	return nil
}

// Close closes the channel and the connection.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.channel != nil {
		errs = append(errs, p.channel.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}

// sanitizeAMQPURL trims quotes and whitespace and requires an amqp or amqps scheme.
func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	u, err := url.Parse(clean)
	if err != nil {
		return "", fmt.Errorf("parse rabbitmq url: %w", err)
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}
