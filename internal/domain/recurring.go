package domain

import (
	"time"

	"github.com/dafibh/tally/tally-backend/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Frequency string

// Only FrequencyMonthly is projected or materialized. Weekly and yearly rules can
// exist in storage from older clients but are rejected on create/update and are
// never in effect.
const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyYearly  Frequency = "yearly"
)

// Valid reports whether f is a declared frequency
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyWeekly, FrequencyYearly:
		return true
	}
	return false
}

// Supported reports whether rules with this frequency are projected
func (f Frequency) Supported() bool {
	return f == FrequencyMonthly
}

type RecurringRule struct {
	ID          int64           `json:"id"`
	OwnerID     uuid.UUID       `json:"ownerId"`
	Kind        EntryKind       `json:"kind"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Frequency   Frequency       `json:"frequency"`
	DayOfMonth  int             `json:"dayOfMonth"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     *time.Time      `json:"endDate,omitempty"`
	IsActive    bool            `json:"isActive"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type RecurringRepository interface {
	Create(rule *RecurringRule) (*RecurringRule, error)
	GetByID(ownerID uuid.UUID, id int64) (*RecurringRule, error)
	// ListByOwner returns rules in insertion order; activeOnly filters on IsActive when set
	ListByOwner(ownerID uuid.UUID, activeOnly *bool) ([]*RecurringRule, error)
	Update(rule *RecurringRule) (*RecurringRule, error)
	Delete(ownerID uuid.UUID, id int64) error
}

// StartPeriod is the month containing the rule's start date
func (r *RecurringRule) StartPeriod() Period {
	return PeriodOf(r.StartDate)
}

// EndPeriod is the month containing the rule's end date, or nil when open-ended
func (r *RecurringRule) EndPeriod() *Period {
	if r.EndDate == nil {
		return nil
	}
	p := PeriodOf(*r.EndDate)
	return &p
}

// InEffect reports whether the rule contributes to period p: the frequency must be
// monthly and p must fall within [start month, end month] inclusive. Day-of-month
// within the start or end month is irrelevant.
func (r *RecurringRule) InEffect(p Period) bool {
	if !r.Frequency.Supported() {
		return false
	}
	if p.Before(r.StartPeriod()) {
		return false
	}
	if end := r.EndPeriod(); end != nil && p.After(*end) {
		return false
	}
	return true
}

// Materialize returns the concrete date and amount the rule produces in period p.
// The day is clamped to the last day of the month.
func (r *RecurringRule) Materialize(p Period) (time.Time, decimal.Decimal) {
	return util.CalculateActualDate(p.Year, time.Month(p.Month), r.DayOfMonth), r.Amount
}

// RecurringInstance is a preview of the ledger entry a rule would produce for a period
type RecurringInstance struct {
	RuleID      int64           `json:"recurringId"`
	Kind        EntryKind       `json:"kind"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Description *string         `json:"description,omitempty"`
	IsRecurring bool            `json:"isRecurring"`
}

// Instance materializes the rule into a preview for p
func (r *RecurringRule) Instance(p Period) RecurringInstance {
	date, amount := r.Materialize(p)
	return RecurringInstance{
		RuleID:      r.ID,
		Kind:        r.Kind,
		Name:        r.Name,
		Amount:      amount,
		Category:    r.Category,
		Date:        date,
		Description: r.Description,
		IsRecurring: true,
	}
}
