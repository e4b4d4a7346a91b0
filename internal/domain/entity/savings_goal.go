// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SavingsGoalStatus filters savings goals by completion.
type SavingsGoalStatus string

const (
	SavingsGoalStatusActive    SavingsGoalStatus = "active"
	SavingsGoalStatusCompleted SavingsGoalStatus = "completed"
	SavingsGoalStatusAll       SavingsGoalStatus = "all"
)

// IsValid reports whether the status filter is known.
func (s SavingsGoalStatus) IsValid() bool {
	switch s {
	case SavingsGoalStatusActive, SavingsGoalStatusCompleted, SavingsGoalStatusAll:
		return true
	}
	return false
}

// SavingsGoal represents an amount the user is saving toward.
type SavingsGoal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *time.Time // Calendar day
	Icon          string
	Color         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time // Soft-delete support
}

// NewSavingsGoal creates a new SavingsGoal entity with nothing saved yet.
func NewSavingsGoal(userID uuid.UUID, name string, target decimal.Decimal, deadline *time.Time, icon, color string, now time.Time) *SavingsGoal {
	return &SavingsGoal{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		TargetAmount:  target,
		CurrentAmount: decimal.Zero,
		Deadline:      deadline,
		Icon:          icon,
		Color:         color,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsCompleted reports whether the saved amount has reached the target.
func (g *SavingsGoal) IsCompleted() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// Contribute adds amount to the saved total.
func (g *SavingsGoal) Contribute(amount decimal.Decimal, now time.Time) {
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	g.UpdatedAt = now
}

// Progress returns the saved percentage of the target, capped at 100.
func (g *SavingsGoal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	pct := g.CurrentAmount.Mul(decimal.NewFromInt(100)).Div(g.TargetAmount).Round(2)
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.NewFromInt(100)
	}
	return pct
}

// MatchesStatus reports whether the goal passes a status filter.
func (g *SavingsGoal) MatchesStatus(status SavingsGoalStatus) bool {
	switch status {
	case SavingsGoalStatusActive:
		return !g.IsCompleted()
	case SavingsGoalStatusCompleted:
		return g.IsCompleted()
	default:
		return true
	}
}
