package budget

import (
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

var hundred = decimal.NewFromInt(entity.ExceededPercentage)

// DetectCrossings reports which alerts a move from percentBefore to percentAfter triggers.
//
// A warning fires when the threshold is crossed and an exceeded alert when 100% is
// crossed. Only transitions count: a budget already past a mark never fires for it again.
// When the threshold is 100 or more both checks describe the same crossing, and only
// the exceeded alert is kept.
func DetectCrossings(percentBefore, percentAfter decimal.Decimal, threshold int) []entity.AlertKind {
	limit := decimal.NewFromInt(int64(threshold))

	warning := percentBefore.LessThan(limit) && percentAfter.GreaterThanOrEqual(limit)
	exceeded := percentBefore.LessThan(hundred) && percentAfter.GreaterThanOrEqual(hundred)

	if warning && exceeded && threshold >= entity.ExceededPercentage {
		warning = false
	}

	var kinds []entity.AlertKind
	if warning {
		kinds = append(kinds, entity.AlertKindWarning)
	}
	if exceeded {
		kinds = append(kinds, entity.AlertKindExceeded)
	}
	return kinds
}
