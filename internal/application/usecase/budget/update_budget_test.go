package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

func TestUpdateBudgetUseCase(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)
	food := entity.NewCategory(userID, "Food", "🍔", "#FF6B6B", entity.CategoryTypeExpense, now)

	setup := func() (*UpdateBudgetUseCase, *entity.Budget) {
		foodID := food.ID
		b := budgetFixture(userID, &foodID, "100", 80, date(2025, 1, 1), date(2025, 1, 31), date(2025, 1, 1))
		categories := newFakeCategoryRepo(food)
		uc := NewUpdateBudgetUseCase(newFakeBudgetRepo(b), categories, NewSpendAggregator(&fakeLedger{}, categories), &fixedClock{now: now})
		return uc, b
	}

	t.Run("clears the category scope", func(t *testing.T) {
		uc, b := setup()
		out, err := uc.Execute(context.Background(), UpdateBudgetInput{BudgetID: b.ID, UserID: userID, AllCategories: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Budget.Budget.CategoryID != nil {
			t.Error("expected the budget to track all categories")
		}
	})

	t.Run("updates fields independently", func(t *testing.T) {
		uc, b := setup()
		amount := dec("250")
		threshold := 95
		end := date(2025, 2, 28)
		out, err := uc.Execute(context.Background(), UpdateBudgetInput{
			BudgetID:       b.ID,
			UserID:         userID,
			Amount:         &amount,
			AlertThreshold: &threshold,
			EndDate:        &end,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := out.Budget.Budget
		if !got.Amount.Equal(amount) || got.AlertThreshold != 95 || !got.EndDate.Equal(end) {
			t.Errorf("unexpected budget after update: %+v", got)
		}
		if !got.StartDate.Equal(date(2025, 1, 1)) || got.CategoryID == nil {
			t.Error("expected untouched fields to keep their values")
		}
		if !got.CreatedAt.Equal(date(2025, 1, 1)) {
			t.Error("expected the creation floor to be preserved")
		}
		if !got.UpdatedAt.Equal(now) {
			t.Errorf("expected UpdatedAt %s, got %s", now, got.UpdatedAt)
		}
	})

	t.Run("rejects an inverted window", func(t *testing.T) {
		uc, b := setup()
		end := date(2024, 12, 31)
		_, err := uc.Execute(context.Background(), UpdateBudgetInput{BudgetID: b.ID, UserID: userID, EndDate: &end})
		if !errors.Is(err, domainerror.ErrInvalidBudgetWindow) {
			t.Fatalf("expected ErrInvalidBudgetWindow, got %v", err)
		}
	})

	t.Run("rejects another user's budget", func(t *testing.T) {
		uc, b := setup()
		_, err := uc.Execute(context.Background(), UpdateBudgetInput{BudgetID: b.ID, UserID: uuid.New(), AllCategories: true})
		if !errors.Is(err, domainerror.ErrUnauthorizedBudgetAccess) {
			t.Fatalf("expected ErrUnauthorizedBudgetAccess, got %v", err)
		}
	})

	t.Run("reports a missing budget", func(t *testing.T) {
		uc, _ := setup()
		_, err := uc.Execute(context.Background(), UpdateBudgetInput{BudgetID: uuid.New(), UserID: userID})
		if !errors.Is(err, domainerror.ErrBudgetNotFound) {
			t.Fatalf("expected ErrBudgetNotFound, got %v", err)
		}
	})
}

func TestListBudgetsUseCase_ActiveFilterAndProgress(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)
	active := budgetFixture(userID, nil, "100", 80, date(2025, 1, 1), date(2025, 1, 31), date(2025, 1, 1))
	old := budgetFixture(userID, nil, "100", 80, date(2024, 12, 1), date(2024, 12, 31), date(2024, 12, 1))

	ledger := &fakeLedger{}
	ledger.add(expense(userID, uuid.New(), "85", date(2025, 1, 10), date(2025, 1, 10)))
	ledger.add(expense(userID, uuid.New(), "30", date(2025, 1, 11), date(2025, 1, 11)))

	categories := newFakeCategoryRepo()
	uc := NewListBudgetsUseCase(newFakeBudgetRepo(active, old), categories, NewSpendAggregator(ledger, categories), &fixedClock{now: now})

	out, err := uc.Execute(context.Background(), ListBudgetsInput{UserID: userID, ActiveOnly: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Budgets) != 1 || out.Budgets[0].Budget.ID != active.ID {
		t.Fatalf("expected only the active budget, got %d budgets", len(out.Budgets))
	}

	p := out.Budgets[0]
	if !p.Spent.Equal(dec("115")) {
		t.Errorf("expected spent 115, got %s", p.Spent)
	}
	if !p.Remaining.IsZero() {
		t.Errorf("expected remaining floored at zero, got %s", p.Remaining)
	}
	if !p.Percentage.Equal(dec("115")) {
		t.Errorf("expected 115%%, got %s", p.Percentage)
	}
	if p.State != entity.AlertStateExceeded {
		t.Errorf("expected exceeded state, got %s", p.State)
	}
}

func TestDeleteBudgetUseCase(t *testing.T) {
	userID := uuid.New()
	b := budgetFixture(userID, nil, "100", 80, date(2025, 1, 1), date(2025, 1, 31), date(2025, 1, 1))
	repo := newFakeBudgetRepo(b)
	uc := NewDeleteBudgetUseCase(repo)

	if err := uc.Execute(context.Background(), DeleteBudgetInput{BudgetID: b.ID, UserID: uuid.New()}); !errors.Is(err, domainerror.ErrUnauthorizedBudgetAccess) {
		t.Fatalf("expected ErrUnauthorizedBudgetAccess, got %v", err)
	}
	if err := uc.Execute(context.Background(), DeleteBudgetInput{BudgetID: b.ID, UserID: userID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.budgets[b.ID]; ok {
		t.Error("expected budget to be removed")
	}
}
