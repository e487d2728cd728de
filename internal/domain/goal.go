package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalStatus tracks where a savings goal stands
type GoalStatus string

const (
	GoalStatusInProgress GoalStatus = "in_progress"
	GoalStatusCompleted  GoalStatus = "completed"
	GoalStatusCancelled  GoalStatus = "cancelled"
)

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalStatusInProgress, GoalStatusCompleted, GoalStatusCancelled:
		return true
	}
	return false
}

// Goal is a savings target with a deadline
type Goal struct {
	ID            int64           `json:"id"`
	OwnerID       uuid.UUID       `json:"ownerId"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetDate    time.Time       `json:"targetDate"`
	Description   *string         `json:"description,omitempty"`
	Status        GoalStatus      `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Remaining is what is still needed to reach the target, never below zero
func (g *Goal) Remaining() decimal.Decimal {
	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// Progress is the saved share of the target as a percentage, capped at 100
func (g *Goal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	pct := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2)
	hundred := decimal.NewFromInt(100)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

type GoalRepository interface {
	Create(goal *Goal) (*Goal, error)
	GetByID(ownerID uuid.UUID, id int64) (*Goal, error)
	// ListByOwner filters on status when set, ordered by target date ascending
	ListByOwner(ownerID uuid.UUID, status *GoalStatus) ([]*Goal, error)
	Update(goal *Goal) (*Goal, error)
	Delete(ownerID uuid.UUID, id int64) error
}
