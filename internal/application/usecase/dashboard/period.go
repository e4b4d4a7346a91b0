package dashboard

import (
	"fmt"
	"time"

	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// Period is the inclusive day range a dashboard query covers.
type Period struct {
	StartDate   time.Time
	EndDate     time.Time
	PeriodLabel string
}

// resolvePeriod validates the requested range. Without bounds it covers the month of now.
func resolvePeriod(start, end *time.Time, now time.Time) (Period, error) {
	if start == nil && end == nil {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return newPeriod(first, first.AddDate(0, 1, -1)), nil
	}

	if start == nil {
		return Period{}, domainerror.NewDashboardError(
			domainerror.ErrCodeMissingStartDate,
			"start_date is required",
			domainerror.ErrMissingStartDate,
		)
	}
	if end == nil {
		return Period{}, domainerror.NewDashboardError(
			domainerror.ErrCodeMissingEndDate,
			"end_date is required",
			domainerror.ErrMissingEndDate,
		)
	}

	window, err := valueobject.NewDateWindow(*start, *end)
	if err != nil {
		return Period{}, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidDateRange,
			"end_date must not be before start_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	return newPeriod(window.Start, window.End), nil
}

func newPeriod(start, end time.Time) Period {
	return Period{StartDate: start, EndDate: end, PeriodLabel: periodLabel(start, end)}
}

// periodLabel renders "Jan 2025" for a single month and "Jan 2025 - Mar 2025" otherwise.
func periodLabel(start, end time.Time) string {
	if start.Year() == end.Year() && start.Month() == end.Month() {
		return start.Format("Jan 2006")
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2006"), end.Format("Jan 2006"))
}
