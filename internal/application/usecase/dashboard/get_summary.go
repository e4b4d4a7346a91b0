package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
)

// GetSummaryInput represents the input for the period summary.
type GetSummaryInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// GetSummaryOutput represents the period summary.
type GetSummaryOutput struct {
	Period  Period
	Summary PeriodSummary
}

// GetSummaryUseCase computes income, expenses and balance for a period.
type GetSummaryUseCase struct {
	dashboardRepo DashboardRepository
	clock         adapter.Clock
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(dashboardRepo DashboardRepository, clock adapter.Clock) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		dashboardRepo: dashboardRepo,
		clock:         clock,
	}
}

// Execute returns the summary.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	period, err := resolvePeriod(input.StartDate, input.EndDate, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	summary, err := uc.dashboardRepo.GetPeriodSummary(ctx, input.UserID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get period summary: %w", err)
	}

	return &GetSummaryOutput{Period: period, Summary: *summary}, nil
}
