package savings_goal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type memoryGoalRepo struct {
	goals map[uuid.UUID]*entity.SavingsGoal
}

func newMemoryGoalRepo() *memoryGoalRepo {
	return &memoryGoalRepo{goals: map[uuid.UUID]*entity.SavingsGoal{}}
}

func (r *memoryGoalRepo) Create(_ context.Context, g *entity.SavingsGoal) error {
	r.goals[g.ID] = g
	return nil
}

func (r *memoryGoalRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.SavingsGoal, error) {
	g, ok := r.goals[id]
	if !ok {
		return nil, domainerror.ErrSavingsGoalNotFound
	}
	return g, nil
}

func (r *memoryGoalRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.SavingsGoal, error) {
	var out []*entity.SavingsGoal
	for _, g := range r.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *memoryGoalRepo) Update(_ context.Context, g *entity.SavingsGoal) error {
	r.goals[g.ID] = g
	return nil
}

func (r *memoryGoalRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.goals, id)
	return nil
}

var now = time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)

func TestCreateSavingsGoal(t *testing.T) {
	repo := newMemoryGoalRepo()
	uc := NewCreateSavingsGoalUseCase(repo, fixedClock{now: now})
	deadline := time.Date(2025, 12, 24, 18, 0, 0, 0, time.UTC)

	out, err := uc.Execute(context.Background(), CreateSavingsGoalInput{
		UserID:       uuid.New(),
		Name:         "  Vacation ",
		TargetAmount: decimal.NewFromInt(1500),
		Deadline:     &deadline,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Goal.Name != "Vacation" {
		t.Errorf("expected trimmed name, got %q", out.Goal.Name)
	}
	if out.Goal.Icon != DefaultGoalIcon || out.Goal.Color != entity.DefaultCategoryColor {
		t.Errorf("expected defaults, got %s %s", out.Goal.Icon, out.Goal.Color)
	}
	if !out.Goal.Deadline.Equal(time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected deadline normalized to the day, got %s", out.Goal.Deadline)
	}
	if !out.Goal.CurrentAmount.IsZero() {
		t.Errorf("expected nothing saved yet, got %s", out.Goal.CurrentAmount)
	}
}

func TestCreateSavingsGoal_Validation(t *testing.T) {
	uc := NewCreateSavingsGoalUseCase(newMemoryGoalRepo(), fixedClock{now: now})

	tests := []struct {
		name  string
		input CreateSavingsGoalInput
		code  domainerror.SavingsGoalErrorCode
	}{
		{"empty name", CreateSavingsGoalInput{Name: " ", TargetAmount: decimal.NewFromInt(10)}, domainerror.ErrCodeMissingSavingsGoalFields},
		{"zero target", CreateSavingsGoalInput{Name: "Car", TargetAmount: decimal.Zero}, domainerror.ErrCodeInvalidTargetAmount},
		{"negative target", CreateSavingsGoalInput{Name: "Car", TargetAmount: decimal.NewFromInt(-5)}, domainerror.ErrCodeInvalidTargetAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			var goalErr *domainerror.SavingsGoalError
			if !errors.As(err, &goalErr) || goalErr.Code != tt.code {
				t.Fatalf("expected code %s, got %v", tt.code, err)
			}
		})
	}
}

func TestContributeAndListByStatus(t *testing.T) {
	repo := newMemoryGoalRepo()
	userID := uuid.New()
	clock := fixedClock{now: now}

	create := NewCreateSavingsGoalUseCase(repo, clock)
	phone, _ := create.Execute(context.Background(), CreateSavingsGoalInput{UserID: userID, Name: "Phone", TargetAmount: decimal.NewFromInt(100)})
	_, _ = create.Execute(context.Background(), CreateSavingsGoalInput{UserID: userID, Name: "House", TargetAmount: decimal.NewFromInt(50000)})

	contribute := NewContributeUseCase(repo, clock)
	goal, err := contribute.Execute(context.Background(), ContributeInput{GoalID: phone.Goal.ID, UserID: userID, Amount: decimal.NewFromInt(120)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !goal.IsCompleted() {
		t.Error("expected goal to be completed")
	}
	if !goal.Progress().Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected progress capped at 100, got %s", goal.Progress())
	}

	list := NewListSavingsGoalsUseCase(repo)
	tests := []struct {
		status entity.SavingsGoalStatus
		want   int
	}{
		{entity.SavingsGoalStatusActive, 1},
		{entity.SavingsGoalStatusCompleted, 1},
		{entity.SavingsGoalStatusAll, 2},
		{"", 2},
	}
	for _, tt := range tests {
		out, err := list.Execute(context.Background(), ListSavingsGoalsInput{UserID: userID, Status: tt.status})
		if err != nil {
			t.Fatalf("status %q: unexpected error: %v", tt.status, err)
		}
		if len(out.Goals) != tt.want {
			t.Errorf("status %q: expected %d goals, got %d", tt.status, tt.want, len(out.Goals))
		}
	}

	if _, err := list.Execute(context.Background(), ListSavingsGoalsInput{UserID: userID, Status: "paused"}); !errors.Is(err, domainerror.ErrInvalidSavingsGoalStatus) {
		t.Errorf("expected invalid status error, got %v", err)
	}
}

func TestContribute_RejectsNonPositiveAmount(t *testing.T) {
	uc := NewContributeUseCase(newMemoryGoalRepo(), fixedClock{now: now})

	_, err := uc.Execute(context.Background(), ContributeInput{GoalID: uuid.New(), UserID: uuid.New(), Amount: decimal.Zero})
	if !errors.Is(err, domainerror.ErrInvalidContributionAmount) {
		t.Fatalf("expected invalid contribution error, got %v", err)
	}
}

func TestOwnershipIsEnforced(t *testing.T) {
	repo := newMemoryGoalRepo()
	owner := uuid.New()
	created, _ := NewCreateSavingsGoalUseCase(repo, fixedClock{now: now}).Execute(context.Background(), CreateSavingsGoalInput{
		UserID: owner, Name: "Bike", TargetAmount: decimal.NewFromInt(800),
	})
	stranger := uuid.New()

	if _, err := NewGetSavingsGoalUseCase(repo).Execute(context.Background(), GetSavingsGoalInput{GoalID: created.Goal.ID, UserID: stranger}); !errors.Is(err, domainerror.ErrUnauthorizedSavingsGoalAccess) {
		t.Errorf("get: expected unauthorized, got %v", err)
	}

	name := "Road bike"
	if _, err := NewUpdateSavingsGoalUseCase(repo, fixedClock{now: now}).Execute(context.Background(), UpdateSavingsGoalInput{GoalID: created.Goal.ID, UserID: stranger, Name: &name}); !errors.Is(err, domainerror.ErrUnauthorizedSavingsGoalAccess) {
		t.Errorf("update: expected unauthorized, got %v", err)
	}

	del := NewDeleteSavingsGoalUseCase(repo)
	if err := del.Execute(context.Background(), DeleteSavingsGoalInput{GoalID: created.Goal.ID, UserID: stranger}); !errors.Is(err, domainerror.ErrUnauthorizedSavingsGoalAccess) {
		t.Errorf("delete: expected unauthorized, got %v", err)
	}
	if err := del.Execute(context.Background(), DeleteSavingsGoalInput{GoalID: created.Goal.ID, UserID: owner}); err != nil {
		t.Fatalf("delete: unexpected error: %v", err)
	}
	if _, err := NewGetSavingsGoalUseCase(repo).Execute(context.Background(), GetSavingsGoalInput{GoalID: created.Goal.ID, UserID: owner}); !errors.Is(err, domainerror.ErrSavingsGoalNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestUpdateSavingsGoal_ClearDeadline(t *testing.T) {
	repo := newMemoryGoalRepo()
	userID := uuid.New()
	deadline := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	created, _ := NewCreateSavingsGoalUseCase(repo, fixedClock{now: now}).Execute(context.Background(), CreateSavingsGoalInput{
		UserID: userID, Name: "Laptop", TargetAmount: decimal.NewFromInt(2000), Deadline: &deadline,
	})

	target := decimal.NewFromInt(2500)
	later := now.Add(time.Hour)
	goal, err := NewUpdateSavingsGoalUseCase(repo, fixedClock{now: later}).Execute(context.Background(), UpdateSavingsGoalInput{
		GoalID: created.Goal.ID, UserID: userID, TargetAmount: &target, ClearDeadline: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goal.Deadline != nil {
		t.Error("expected deadline to be cleared")
	}
	if !goal.TargetAmount.Equal(target) || !goal.UpdatedAt.Equal(later) {
		t.Errorf("unexpected goal state: target %s updated %s", goal.TargetAmount, goal.UpdatedAt)
	}
}
