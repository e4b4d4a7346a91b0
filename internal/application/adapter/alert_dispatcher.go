// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// AlertDispatcher presents a budget alert to the user through some transport.
// Callers never depend on the outcome for correctness: errors are logged, not surfaced.
type AlertDispatcher interface {
	// Present hands the alert to the transport.
	Present(ctx context.Context, alert *entity.BudgetAlert) error
}
