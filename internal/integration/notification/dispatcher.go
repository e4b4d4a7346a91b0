package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/avast/retry-go"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// FanOut presents every alert through each of its dispatchers.
type FanOut []adapter.AlertDispatcher

// Present calls every dispatcher and joins their errors.
func (f FanOut) Present(ctx context.Context, alert *entity.BudgetAlert) error {
	var errs []error
	for _, d := range f {
		if err := d.Present(ctx, alert); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogDispatcher only logs alerts. It backs the "none" transport.
type LogDispatcher struct{}

// Present logs the alert.
func (LogDispatcher) Present(_ context.Context, alert *entity.BudgetAlert) error {
	slog.Info("Budget alert",
		"budget_id", alert.BudgetID,
		"user_id", alert.UserID,
		"kind", alert.Kind,
		"title", alert.Title,
		"body", alert.Body,
	)
	return nil
}

// AsyncConfig holds delivery settings for the AsyncDispatcher.
type AsyncConfig struct {
	Timeout  time.Duration // Per dispatcher, across its attempts
	Attempts uint
	Delay    time.Duration
}

// DefaultAsyncConfig returns the default delivery settings.
func DefaultAsyncConfig() AsyncConfig {
	return AsyncConfig{
		Timeout:  5 * time.Second,
		Attempts: 3,
		Delay:    200 * time.Millisecond,
	}
}

// AsyncDispatcher delivers alerts on background goroutines so the caller never waits on a transport.
type AsyncDispatcher struct {
	next   adapter.AlertDispatcher
	config AsyncConfig
	wg     sync.WaitGroup
}

// NewAsyncDispatcher wraps next with fire-and-forget delivery.
func NewAsyncDispatcher(next adapter.AlertDispatcher, config AsyncConfig) *AsyncDispatcher {
	if config.Attempts == 0 {
		config.Attempts = 1
	}
	return &AsyncDispatcher{
		next:   next,
		config: config,
	}
}

// Present schedules delivery and returns immediately. Delivery outlives the caller's context.
func (d *AsyncDispatcher) Present(ctx context.Context, alert *entity.BudgetAlert) error {
	deliveryCtx := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.deliver(deliveryCtx, alert)
	}()

	return nil
}

// deliver retries each fan-out member independently. A member that succeeded is
// not called again.
func (d *AsyncDispatcher) deliver(ctx context.Context, alert *entity.BudgetAlert) {
	targets := []adapter.AlertDispatcher{d.next}
	if fan, ok := d.next.(FanOut); ok {
		targets = fan
	}

	for _, target := range targets {
		d.deliverTo(ctx, target, alert)
	}
}

func (d *AsyncDispatcher) deliverTo(ctx context.Context, target adapter.AlertDispatcher, alert *entity.BudgetAlert) {
	if d.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.Timeout)
		defer cancel()
	}

	err := retry.Do(
		func() error {
			return target.Present(ctx, alert)
		},
		retry.Context(ctx),
		retry.Attempts(d.config.Attempts),
		retry.Delay(d.config.Delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		slog.Warn("Failed to dispatch budget alert",
			"budget_id", alert.BudgetID,
			"kind", alert.Kind,
			"dispatcher", fmt.Sprintf("%T", target),
			"attempts", d.config.Attempts,
			"error", err,
		)
	}
}

// Wait blocks until in-flight deliveries finish.
func (d *AsyncDispatcher) Wait() {
	d.wg.Wait()
}
