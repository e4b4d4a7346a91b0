package budget

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// ThresholdEvaluator decides which budget alerts a not yet recorded transaction triggers.
type ThresholdEvaluator struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	spend        SpendCalculator
	clock        adapter.Clock
}

// NewThresholdEvaluator creates a new ThresholdEvaluator instance.
func NewThresholdEvaluator(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	spend SpendCalculator,
	clock adapter.Clock,
) *ThresholdEvaluator {
	return &ThresholdEvaluator{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		spend:        spend,
		clock:        clock,
	}
}

// Evaluate returns the alerts triggered by candidate. It must run before candidate
// is stored: the current ledger spend is taken as the "before" figure.
func (e *ThresholdEvaluator) Evaluate(ctx context.Context, candidate *entity.Transaction) ([]*entity.BudgetAlert, error) {
	if candidate == nil || !candidate.IsExpense() {
		return nil, nil
	}

	now := e.clock.Now()
	budgets, err := e.budgetRepo.FindActive(ctx, candidate.UserID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to find active budgets: %w", err)
	}

	var alerts []*entity.BudgetAlert
	for _, b := range budgets {
		if b.UserID != candidate.UserID || !b.IsActive(now) || !b.Covers(candidate.CategoryID) {
			continue
		}

		if !b.Amount.IsPositive() {
			slog.Warn("Skipping budget with non-positive amount",
				"budget_id", b.ID,
				"amount", b.Amount.String(),
			)
			continue
		}

		spentBefore, err := e.spend.ComputeSpend(ctx, b)
		if err != nil {
			return nil, fmt.Errorf("failed to compute spend for budget %s: %w", b.ID, err)
		}
		spentAfter := spentBefore.Add(candidate.Amount)

		percentBefore, _ := b.PercentageOf(spentBefore)
		percentAfter, _ := b.PercentageOf(spentAfter)

		kinds := DetectCrossings(percentBefore, percentAfter, b.Threshold())
		if len(kinds) == 0 {
			continue
		}

		name := e.categoryName(ctx, b)
		for _, kind := range kinds {
			alerts = append(alerts, entity.NewBudgetAlert(b, kind, name, spentAfter, percentAfter))
		}
	}

	return alerts, nil
}

// categoryName resolves the display name for alert content. Lookup failures fall back
// to a placeholder and never abort the evaluation.
func (e *ThresholdEvaluator) categoryName(ctx context.Context, b *entity.Budget) string {
	if b.CategoryID == nil {
		return entity.AllCategoriesName
	}

	category, err := e.categoryRepo.FindByID(ctx, *b.CategoryID)
	if err != nil || category == nil {
		slog.Warn("Could not resolve budget category name",
			"budget_id", b.ID,
			"category_id", *b.CategoryID,
			"error", err,
		)
		return entity.UnknownCategoryName
	}
	return category.Name
}
