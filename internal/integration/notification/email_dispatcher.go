package notification

import (
	"context"
	"log/slog"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// EmailDispatcher queues alerts as budget_alert emails for the email worker.
type EmailDispatcher struct {
	queue adapter.EmailQueueRepository
	clock adapter.Clock
}

// NewEmailDispatcher creates a new EmailDispatcher.
func NewEmailDispatcher(queue adapter.EmailQueueRepository, clock adapter.Clock) *EmailDispatcher {
	return &EmailDispatcher{
		queue: queue,
		clock: clock,
	}
}

// Present enqueues the alert. Alerts without a recipient address are skipped.
func (d *EmailDispatcher) Present(ctx context.Context, alert *entity.BudgetAlert) error {
	if alert.UserEmail == "" {
		slog.Debug("Skipping budget alert email without recipient", "budget_id", alert.BudgetID)
		return nil
	}

	data := map[string]interface{}{
		"title":         alert.Title,
		"body":          alert.Body,
		"kind":          string(alert.Kind),
		"category_name": alert.CategoryName,
		"spent":         alert.Spent.StringFixed(2),
		"total":         alert.Total.StringFixed(2),
		"remaining":     alert.Remaining.StringFixed(2),
		"percentage":    alert.Percentage.Round(0).String(),
		"budget_id":     alert.BudgetID.String(),
	}

	job := entity.NewEmailJob(entity.TemplateBudgetAlert, alert.UserEmail, "", alert.Title, data, d.clock.Now()).
		ForBudget(alert.UserID, alert.BudgetID)

	if err := d.queue.Create(ctx, job); err != nil {
		return domainerror.NewAlertError(domainerror.ErrCodeAlertDispatchFailed, "failed to queue budget alert email", err)
	}

	return nil
}
