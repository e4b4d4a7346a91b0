package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rabbitmq/amqp091-go"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// AMQPPublisher publishes alerts to a durable AMQP queue.
type AMQPPublisher struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
	clock        adapter.Clock
	mu           sync.Mutex // amqp091 channels are not safe for concurrent publishing
}

// NewAMQPPublisher dials the broker and declares the exchange and queue.
func NewAMQPPublisher(url, exchangeName, queueName string, clock adapter.Clock) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p := &AMQPPublisher{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
		clock:        clock,
	}

	if err := p.setup(); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return p, nil
}

func (p *AMQPPublisher) setup() error {
	if err := p.channel.ExchangeDeclare(p.exchangeName, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := p.channel.QueueDeclare(p.queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// Routing key equals the queue name on the direct exchange.
	if err := p.channel.QueueBind(p.queueName, p.queueName, p.exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// Present publishes the alert as a persistent JSON message.
func (p *AMQPPublisher) Present(ctx context.Context, alert *entity.BudgetAlert) error {
	now := p.clock.Now()
	body, err := NewAlertMessage(alert, now).ToJSON()
	if err != nil {
		return domainerror.NewAlertError(domainerror.ErrCodeAlertDispatchFailed, "failed to encode alert", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() {
		return domainerror.NewAlertError(
			domainerror.ErrCodeAlertTransportUnavailable,
			"amqp channel is closed",
			domainerror.ErrAlertTransportUnavailable,
		)
	}

	err = p.channel.PublishWithContext(ctx, p.exchangeName, p.queueName, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    now,
		Type:         entity.AlertMetadataType,
		Body:         body,
	})
	if err != nil {
		return domainerror.NewAlertError(domainerror.ErrCodeAlertDispatchFailed, "failed to publish alert to amqp", err)
	}

	slog.Debug("Published budget alert",
		"exchange", p.exchangeName,
		"queue", p.queueName,
		"budget_id", alert.BudgetID,
	)
	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
