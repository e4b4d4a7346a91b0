package notification

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// DefaultAlertStream is the Redis stream alerts are appended to.
const DefaultAlertStream = "budget-alerts"

// RedisPublisher appends alerts to a Redis stream for push delivery.
type RedisPublisher struct {
	client *redis.Client
	stream string
	clock  adapter.Clock
}

// NewRedisPublisher creates a new RedisPublisher.
func NewRedisPublisher(client *redis.Client, stream string, clock adapter.Clock) *RedisPublisher {
	if stream == "" {
		stream = DefaultAlertStream
	}
	return &RedisPublisher{
		client: client,
		stream: stream,
		clock:  clock,
	}
}

// Present appends the alert to the stream.
func (p *RedisPublisher) Present(ctx context.Context, alert *entity.BudgetAlert) error {
	payload, err := NewAlertMessage(alert, p.clock.Now()).ToJSON()
	if err != nil {
		return domainerror.NewAlertError(domainerror.ErrCodeAlertDispatchFailed, "failed to encode alert", err)
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"user_id": alert.UserID.String(),
			"kind":    string(alert.Kind),
			"payload": string(payload),
		},
	}).Result()
	if err != nil {
		return domainerror.NewAlertError(domainerror.ErrCodeAlertDispatchFailed, "failed to publish alert to redis", err)
	}

	slog.Debug("Published budget alert", "stream", p.stream, "entry_id", id, "budget_id", alert.BudgetID)
	return nil
}
