package budget

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
	err        error
	lookups    int
}

func newFakeCategoryRepo(categories ...*entity.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{categories: map[uuid.UUID]*entity.Category{}}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) CreateBatch(ctx context.Context, cs []*entity.Category) error {
	for _, c := range cs {
		_ = r.Create(ctx, c)
	}
	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.lookups++
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return c, nil
}

func (r *fakeCategoryRepo) FindByUser(_ context.Context, userID uuid.UUID, t *entity.CategoryType) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		if c.UserID == userID && (t == nil || c.Type == *t) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) ExistsByNameAndUser(_ context.Context, name string, userID uuid.UUID) (bool, error) {
	for _, c := range r.categories {
		if c.UserID == userID && c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	cs, _ := r.FindByUser(ctx, userID, nil)
	return int64(len(cs)), nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

// fakeLedger returns every stored transaction from FindExpenses without narrowing,
// leaving the filtering to the aggregation code under test.
type fakeLedger struct {
	transactions []*entity.Transaction
	err          error
	queries      int
}

func (l *fakeLedger) add(t *entity.Transaction) { l.transactions = append(l.transactions, t) }

func (l *fakeLedger) Create(_ context.Context, t *entity.Transaction) error {
	l.add(t)
	return nil
}

func (l *fakeLedger) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	for _, t := range l.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (l *fakeLedger) FindByIDWithCategory(ctx context.Context, id uuid.UUID) (*entity.TransactionWithCategory, error) {
	t, err := l.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entity.TransactionWithCategory{Transaction: t}, nil
}

func (l *fakeLedger) FindByFilter(context.Context, adapter.TransactionFilter, adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	return nil, errors.New("not implemented")
}

func (l *fakeLedger) FindExpenses(context.Context, entity.SpendFilter) ([]*entity.Transaction, error) {
	l.queries++
	if l.err != nil {
		return nil, l.err
	}
	return l.transactions, nil
}

func (l *fakeLedger) GetTotals(context.Context, adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	return nil, errors.New("not implemented")
}

func (l *fakeLedger) Update(context.Context, *entity.Transaction) error { return nil }

func (l *fakeLedger) Delete(context.Context, uuid.UUID) error { return nil }

type fakeBudgetRepo struct {
	budgets map[uuid.UUID]*entity.Budget
	err     error
}

func newFakeBudgetRepo(budgets ...*entity.Budget) *fakeBudgetRepo {
	repo := &fakeBudgetRepo{budgets: map[uuid.UUID]*entity.Budget{}}
	for _, b := range budgets {
		repo.budgets[b.ID] = b
	}
	return repo
}

func (r *fakeBudgetRepo) Create(_ context.Context, b *entity.Budget) error {
	r.budgets[b.ID] = b
	return nil
}

func (r *fakeBudgetRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Budget, error) {
	b, ok := r.budgets[id]
	if !ok {
		return nil, domainerror.ErrBudgetNotFound
	}
	return b, nil
}

func (r *fakeBudgetRepo) FindByUser(_ context.Context, f adapter.BudgetFilter) ([]*entity.Budget, error) {
	var out []*entity.Budget
	for _, b := range r.budgets {
		if b.UserID != f.UserID {
			continue
		}
		if f.ActiveOn != nil && !b.IsActive(*f.ActiveOn) {
			continue
		}
		if f.CategoryID != nil && (b.CategoryID == nil || *b.CategoryID != *f.CategoryID) {
			continue
		}
		if f.Period != nil && b.Period != *f.Period {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// FindActive deliberately returns every budget of the user so tests cover the
// evaluator's own window check.
func (r *fakeBudgetRepo) FindActive(_ context.Context, userID uuid.UUID, _ time.Time) ([]*entity.Budget, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*entity.Budget
	for _, b := range r.budgets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeBudgetRepo) FindByCategory(_ context.Context, categoryID uuid.UUID) ([]*entity.Budget, error) {
	var out []*entity.Budget
	for _, b := range r.budgets {
		if b.CategoryID != nil && *b.CategoryID == categoryID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBudgetRepo) Update(_ context.Context, b *entity.Budget) error {
	r.budgets[b.ID] = b
	return nil
}

func (r *fakeBudgetRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.budgets, id)
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func expense(userID, categoryID uuid.UUID, amount string, day, createdAt time.Time) *entity.Transaction {
	return entity.NewTransaction(userID, categoryID, dec(amount), "test", day, entity.TransactionTypeExpense, createdAt)
}

func budgetFixture(userID uuid.UUID, categoryID *uuid.UUID, amount string, threshold int, start, end, createdAt time.Time) *entity.Budget {
	return &entity.Budget{
		ID:             uuid.New(),
		UserID:         userID,
		CategoryID:     categoryID,
		Amount:         dec(amount),
		Period:         entity.BudgetPeriodMonthly,
		StartDate:      start,
		EndDate:        end,
		AlertThreshold: threshold,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}
