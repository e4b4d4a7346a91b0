package budget

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

type evaluatorFixture struct {
	userID     uuid.UUID
	food       *entity.Category
	transport  *entity.Category
	categories *fakeCategoryRepo
	ledger     *fakeLedger
	budgets    *fakeBudgetRepo
	clock      *fixedClock
	evaluator  *ThresholdEvaluator
}

func newEvaluatorFixture(t *testing.T) *evaluatorFixture {
	t.Helper()

	userID := uuid.New()
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	food := entity.NewCategory(userID, "Food", "🍔", "#FF6B6B", entity.CategoryTypeExpense, now.AddDate(0, -1, 0))
	transport := entity.NewCategory(userID, "Transport", "🚗", "#4ECDC4", entity.CategoryTypeExpense, now.AddDate(0, -1, 0))

	f := &evaluatorFixture{
		userID:     userID,
		food:       food,
		transport:  transport,
		categories: newFakeCategoryRepo(food, transport),
		ledger:     &fakeLedger{},
		budgets:    newFakeBudgetRepo(),
		clock:      &fixedClock{now: now},
	}
	f.evaluator = NewThresholdEvaluator(f.budgets, f.categories, NewSpendAggregator(f.ledger, f.categories), f.clock)
	return f
}

// record evaluates a candidate and then commits it, the way the transaction use case does.
func (f *evaluatorFixture) record(t *testing.T, candidate *entity.Transaction) []*entity.BudgetAlert {
	t.Helper()
	alerts, err := f.evaluator.Evaluate(context.Background(), candidate)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	f.ledger.add(candidate)
	return alerts
}

func (f *evaluatorFixture) expenseNow(categoryID uuid.UUID, amount string) *entity.Transaction {
	return expense(f.userID, categoryID, amount, f.clock.now, f.clock.now)
}

func TestThresholdEvaluator_MonthlyAllCategoriesScenario(t *testing.T) {
	f := newEvaluatorFixture(t)
	b1 := budgetFixture(f.userID, nil, "100", 80, date(2025, 1, 1), date(2025, 1, 31), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	f.budgets.budgets[b1.ID] = b1

	// Spending recorded before the budget existed never counts.
	f.ledger.add(expense(f.userID, f.food.ID, "50", date(2025, 1, 1), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
	if got := ComputeSpend(b1, f.ledger.transactions); !got.IsZero() {
		t.Fatalf("expected pre-existing spend to be excluded, got %s", got)
	}

	t.Run("crossing the threshold warns once", func(t *testing.T) {
		alerts := f.record(t, expense(f.userID, f.food.ID, "85", date(2025, 1, 15), f.clock.now))
		if len(alerts) != 1 {
			t.Fatalf("expected 1 alert, got %d", len(alerts))
		}
		a := alerts[0]
		if a.Kind != entity.AlertKindWarning {
			t.Errorf("expected warning, got %s", a.Kind)
		}
		if a.BudgetID != b1.ID {
			t.Errorf("expected alert for budget %s, got %s", b1.ID, a.BudgetID)
		}
		if !a.Spent.Equal(dec("85")) || !a.Total.Equal(dec("100")) {
			t.Errorf("expected spent 85 of 100, got %s of %s", a.Spent, a.Total)
		}
		if a.Title != "📊 Budget Alert" {
			t.Errorf("unexpected title %q", a.Title)
		}
		if a.Body != "You've used 85% of your All Categories budget. 15.00 remaining." {
			t.Errorf("unexpected body %q", a.Body)
		}
	})

	t.Run("staying above the threshold does not warn again", func(t *testing.T) {
		alerts := f.record(t, f.expenseNow(f.transport.ID, "5"))
		if len(alerts) != 0 {
			t.Fatalf("expected no alerts, got %d", len(alerts))
		}
	})

	t.Run("crossing 100 emits exactly one exceeded alert", func(t *testing.T) {
		alerts := f.record(t, f.expenseNow(f.food.ID, "20"))
		if len(alerts) != 1 {
			t.Fatalf("expected 1 alert, got %d", len(alerts))
		}
		if alerts[0].Kind != entity.AlertKindExceeded {
			t.Errorf("expected exceeded, got %s", alerts[0].Kind)
		}
		if alerts[0].Title != "⚠️ Budget Exceeded!" {
			t.Errorf("unexpected title %q", alerts[0].Title)
		}
		if !alerts[0].Percentage.Equal(dec("110")) {
			t.Errorf("expected 110%%, got %s", alerts[0].Percentage)
		}
	})

	t.Run("exceeded is terminal for the window", func(t *testing.T) {
		alerts := f.record(t, f.expenseNow(f.food.ID, "300"))
		if len(alerts) != 0 {
			t.Fatalf("expected no alerts, got %d", len(alerts))
		}
	})
}

func TestThresholdEvaluator_ThresholdAt100FiresOnce(t *testing.T) {
	f := newEvaluatorFixture(t)
	foodID := f.food.ID
	b2 := budgetFixture(f.userID, &foodID, "50", 100, date(2025, 1, 15), date(2025, 2, 15), f.clock.now.Add(-time.Hour))
	f.budgets.budgets[b2.ID] = b2

	alerts := f.record(t, f.expenseNow(f.food.ID, "60"))
	if len(alerts) != 1 {
		t.Fatalf("expected exactly 1 alert, got %d", len(alerts))
	}
	a := alerts[0]
	if a.Kind != entity.AlertKindExceeded {
		t.Errorf("expected exceeded, got %s", a.Kind)
	}
	if a.Body != "You've exceeded your Food budget! Spent 60.00 of 50.00 (120%)" {
		t.Errorf("unexpected body %q", a.Body)
	}
	if a.Metadata["budget_id"] != b2.ID.String() || a.Metadata["type"] != entity.AlertMetadataType {
		t.Errorf("unexpected metadata %v", a.Metadata)
	}
}

func TestThresholdEvaluator_IncomeNeverAlerts(t *testing.T) {
	f := newEvaluatorFixture(t)
	foodID := f.food.ID
	f.budgets.budgets[uuid.New()] = budgetFixture(f.userID, nil, "100", 80, date(2025, 1, 1), date(2025, 1, 31), date(2025, 1, 1))
	b2 := budgetFixture(f.userID, &foodID, "50", 100, date(2025, 1, 15), date(2025, 2, 15), date(2025, 1, 15))
	f.budgets.budgets[b2.ID] = b2

	income := entity.NewTransaction(f.userID, f.food.ID, dec("1000"), "bonus", f.clock.now, entity.TransactionTypeIncome, f.clock.now)
	alerts := f.record(t, income)
	if len(alerts) != 0 {
		t.Fatalf("expected no alerts for income, got %d", len(alerts))
	}
	if f.ledger.queries != 0 {
		t.Errorf("expected no ledger queries for income, got %d", f.ledger.queries)
	}
}

func TestThresholdEvaluator_Relevance(t *testing.T) {
	f := newEvaluatorFixture(t)
	foodID := f.food.ID
	foodBudget := budgetFixture(f.userID, &foodID, "10", 80, date(2025, 1, 1), date(2025, 1, 31), date(2025, 1, 1))
	expired := budgetFixture(f.userID, nil, "10", 80, date(2024, 12, 1), date(2024, 12, 31), date(2024, 12, 1))
	upcoming := budgetFixture(f.userID, nil, "10", 80, date(2025, 1, 16), date(2025, 2, 16), date(2025, 1, 1))
	f.budgets.budgets[foodBudget.ID] = foodBudget
	f.budgets.budgets[expired.ID] = expired
	f.budgets.budgets[upcoming.ID] = upcoming

	alerts := f.record(t, f.expenseNow(f.transport.ID, "50"))
	if len(alerts) != 0 {
		t.Fatalf("expected no alerts for unrelated or inactive budgets, got %d", len(alerts))
	}
}

func TestThresholdEvaluator_NoActiveBudgetsSkipsLedger(t *testing.T) {
	f := newEvaluatorFixture(t)

	alerts := f.record(t, f.expenseNow(f.food.ID, "50"))
	if len(alerts) != 0 {
		t.Fatalf("expected no alerts, got %d", len(alerts))
	}
	if f.ledger.queries != 0 {
		t.Errorf("expected no ledger queries, got %d", f.ledger.queries)
	}
}

func TestThresholdEvaluator_SkipsNonPositiveAmount(t *testing.T) {
	f := newEvaluatorFixture(t)
	zero := budgetFixture(f.userID, nil, "0", 80, date(2025, 1, 1), date(2025, 1, 31), date(2025, 1, 1))
	f.budgets.budgets[zero.ID] = zero

	alerts := f.record(t, f.expenseNow(f.food.ID, "1"))
	if len(alerts) != 0 {
		t.Fatalf("expected zero-amount budget to be skipped, got %d alerts", len(alerts))
	}
}

func TestThresholdEvaluator_UnresolvableCategoryUsesPlaceholder(t *testing.T) {
	f := newEvaluatorFixture(t)
	foodID := f.food.ID
	b := budgetFixture(f.userID, &foodID, "10", 80, date(2025, 1, 1), date(2025, 1, 31), date(2025, 1, 1))
	f.budgets.budgets[b.ID] = b

	// Spend still resolves the category; only the naming lookup fails.
	evaluator := NewThresholdEvaluator(f.budgets, &flakyCategoryRepo{fakeCategoryRepo: f.categories}, NewSpendAggregator(f.ledger, f.categories), f.clock)

	alerts, err := evaluator.Evaluate(context.Background(), f.expenseNow(f.food.ID, "9"))
	if err != nil {
		t.Fatalf("expected naming failure to be tolerated, got %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].CategoryName != entity.UnknownCategoryName {
		t.Errorf("expected placeholder name, got %q", alerts[0].CategoryName)
	}
	if !strings.Contains(alerts[0].Body, entity.UnknownCategoryName) {
		t.Errorf("expected body to mention placeholder, got %q", alerts[0].Body)
	}
}

func TestThresholdEvaluator_PropagatesRegistryErrors(t *testing.T) {
	f := newEvaluatorFixture(t)
	registryErr := errors.New("registry unavailable")
	f.budgets.err = registryErr

	_, err := f.evaluator.Evaluate(context.Background(), f.expenseNow(f.food.ID, "5"))
	if !errors.Is(err, registryErr) {
		t.Fatalf("expected registry error, got %v", err)
	}
}

func TestThresholdEvaluator_PropagatesLedgerErrors(t *testing.T) {
	f := newEvaluatorFixture(t)
	b := budgetFixture(f.userID, nil, "10", 80, date(2025, 1, 1), date(2025, 1, 31), date(2025, 1, 1))
	f.budgets.budgets[b.ID] = b
	ledgerErr := errors.New("ledger unavailable")
	f.ledger.err = ledgerErr

	_, err := f.evaluator.Evaluate(context.Background(), f.expenseNow(f.food.ID, "5"))
	if !errors.Is(err, ledgerErr) {
		t.Fatalf("expected ledger error, got %v", err)
	}
}

// flakyCategoryRepo succeeds for the first failAfter lookups and fails afterwards.
type flakyCategoryRepo struct {
	*fakeCategoryRepo
	failAfter int
	calls     int
}

func (r *flakyCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	r.calls++
	if r.calls > r.failAfter {
		return nil, errors.New("category store offline")
	}
	return r.fakeCategoryRepo.FindByID(ctx, id)
}

func TestThresholdEvaluator_CandidateDateOutsideWindowStillCounts(t *testing.T) {
	f := newEvaluatorFixture(t)
	b := budgetFixture(f.userID, &f.food.ID, "100", 80, date(2025, 1, 1), date(2025, 1, 31), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	f.budgets.budgets[b.ID] = b

	// Relevance is decided by scope and by the budget being active today;
	// the candidate's own date is not consulted.
	backdated := expense(f.userID, f.food.ID, "90", date(2024, 12, 20), f.clock.now)
	alerts := f.record(t, backdated)

	if len(alerts) != 1 || alerts[0].Kind != entity.AlertKindWarning {
		t.Fatalf("expected one warning, got %d alerts", len(alerts))
	}
	if got := ComputeSpend(b, f.ledger.transactions); !got.IsZero() {
		t.Errorf("expected the stored expense to stay outside the window, got %s", got)
	}
}
