// Package budget contains the budget registry use cases and the threshold engine.
package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// ComputeSpend sums the expenses in snapshot that count toward b.
// Entries outside the budget's scope, window or creation floor are ignored,
// so the snapshot may be the whole ledger or an already narrowed query result.
func ComputeSpend(b *entity.Budget, snapshot []*entity.Transaction) decimal.Decimal {
	filter := entity.NewSpendFilter(b)

	total := decimal.Zero
	for _, t := range snapshot {
		if filter.Matches(t) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// SpendCalculator computes the current spend of a budget.
type SpendCalculator interface {
	ComputeSpend(ctx context.Context, b *entity.Budget) (decimal.Decimal, error)
}

// SpendAggregator computes budget spend from the transaction ledger.
type SpendAggregator struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewSpendAggregator creates a new SpendAggregator instance.
func NewSpendAggregator(transactionRepo adapter.TransactionRepository, categoryRepo adapter.CategoryRepository) *SpendAggregator {
	return &SpendAggregator{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// ComputeSpend returns the spend of b recomputed from the ledger.
// A budget whose category no longer exists has nothing in scope and spends zero.
func (a *SpendAggregator) ComputeSpend(ctx context.Context, b *entity.Budget) (decimal.Decimal, error) {
	if b.CategoryID != nil {
		if _, err := a.categoryRepo.FindByID(ctx, *b.CategoryID); err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFound) {
				return decimal.Zero, nil
			}
			return decimal.Zero, fmt.Errorf("failed to resolve budget category: %w", err)
		}
	}

	snapshot, err := a.transactionRepo.FindExpenses(ctx, entity.NewSpendFilter(b))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query ledger: %w", err)
	}

	return ComputeSpend(b, snapshot), nil
}
