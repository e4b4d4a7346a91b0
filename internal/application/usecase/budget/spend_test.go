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

func TestComputeSpend(t *testing.T) {
	userID := uuid.New()
	food := uuid.New()
	transport := uuid.New()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	after := created.Add(time.Hour)

	allCategories := budgetFixture(userID, nil, "100", 80, date(2025, 1, 1), date(2025, 1, 31), created)
	foodOnly := budgetFixture(userID, &food, "100", 80, date(2025, 1, 1), date(2025, 1, 31), created)

	income := entity.NewTransaction(userID, food, dec("500"), "salary", date(2025, 1, 10), entity.TransactionTypeIncome, after)
	deleted := expense(userID, food, "7", date(2025, 1, 10), after)
	deletedAt := after
	deleted.DeletedAt = &deletedAt

	tests := []struct {
		name     string
		budget   *entity.Budget
		snapshot []*entity.Transaction
		want     string
	}{
		{
			name:   "empty ledger spends exactly zero",
			budget: allCategories,
			want:   "0",
		},
		{
			name:   "transaction created before the budget is excluded even when dated inside the window",
			budget: allCategories,
			snapshot: []*entity.Transaction{
				expense(userID, food, "50", date(2025, 1, 1), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)),
			},
			want: "0",
		},
		{
			name:   "transaction created at the same instant as the budget is included",
			budget: allCategories,
			snapshot: []*entity.Transaction{
				expense(userID, food, "12.50", date(2025, 1, 2), created),
			},
			want: "12.5",
		},
		{
			name:   "window bounds are inclusive",
			budget: allCategories,
			snapshot: []*entity.Transaction{
				expense(userID, food, "10", date(2025, 1, 1), after),
				expense(userID, food, "20", date(2025, 1, 31), after),
				expense(userID, food, "40", date(2024, 12, 31), after),
				expense(userID, food, "80", date(2025, 2, 1), after),
			},
			want: "30",
		},
		{
			name:   "category scoped budget only sums its category",
			budget: foodOnly,
			snapshot: []*entity.Transaction{
				expense(userID, food, "10", date(2025, 1, 5), after),
				expense(userID, transport, "25", date(2025, 1, 5), after),
			},
			want: "10",
		},
		{
			name:   "all categories budget sums every expense category",
			budget: allCategories,
			snapshot: []*entity.Transaction{
				expense(userID, food, "10", date(2025, 1, 5), after),
				expense(userID, transport, "25", date(2025, 1, 5), after),
			},
			want: "35",
		},
		{
			name:     "income is never spend",
			budget:   allCategories,
			snapshot: []*entity.Transaction{income},
			want:     "0",
		},
		{
			name:   "other users and deleted entries are ignored",
			budget: allCategories,
			snapshot: []*entity.Transaction{
				expense(uuid.New(), food, "99", date(2025, 1, 5), after),
				deleted,
			},
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSpend(tt.budget, tt.snapshot)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("ComputeSpend = %s, want %s", got, tt.want)
			}
			if got.IsNegative() {
				t.Errorf("ComputeSpend returned a negative total %s", got)
			}
		})
	}
}

func TestSpendAggregator_DeletedCategoryHasZeroScope(t *testing.T) {
	userID := uuid.New()
	gone := uuid.New()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	ledger := &fakeLedger{}
	ledger.add(expense(userID, gone, "30", date(2025, 1, 3), created.Add(time.Minute)))

	aggregator := NewSpendAggregator(ledger, newFakeCategoryRepo())
	b := budgetFixture(userID, &gone, "100", 80, date(2025, 1, 1), date(2025, 1, 31), created)

	spent, err := aggregator.ComputeSpend(context.Background(), b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !spent.IsZero() {
		t.Errorf("expected zero spend, got %s", spent)
	}
	if ledger.queries != 0 {
		t.Errorf("expected no ledger query for a budget without scope, got %d", ledger.queries)
	}
}

func TestSpendAggregator_PropagatesLedgerErrors(t *testing.T) {
	ledgerErr := errors.New("connection reset")
	ledger := &fakeLedger{err: ledgerErr}
	aggregator := NewSpendAggregator(ledger, newFakeCategoryRepo())

	b := budgetFixture(uuid.New(), nil, "100", 80, date(2025, 1, 1), date(2025, 1, 31), time.Now())

	_, err := aggregator.ComputeSpend(context.Background(), b)
	if !errors.Is(err, ledgerErr) {
		t.Fatalf("expected ledger error to be wrapped, got %v", err)
	}
}

func TestSpendAggregator_PropagatesCategoryLookupErrors(t *testing.T) {
	categories := newFakeCategoryRepo()
	categories.err = errors.New("timeout")
	aggregator := NewSpendAggregator(&fakeLedger{}, categories)

	categoryID := uuid.New()
	b := budgetFixture(uuid.New(), &categoryID, "100", 80, date(2025, 1, 1), date(2025, 1, 31), time.Now())

	_, err := aggregator.ComputeSpend(context.Background(), b)
	if err == nil || errors.Is(err, domainerror.ErrCategoryNotFound) {
		t.Fatalf("expected infrastructure error, got %v", err)
	}
}
