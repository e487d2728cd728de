package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProjectionMode controls how recurring rules combine with actual entries
type ProjectionMode string

const (
	// ProjectionModeAdditive adds every in-effect rule regardless of actuals.
	// A rule already recorded as an entry is counted twice.
	ProjectionModeAdditive ProjectionMode = "additive"
	// ProjectionModeDeduplicated skips rules that already have a matching actual entry
	ProjectionModeDeduplicated ProjectionMode = "deduplicated"
)

// ParseProjectionMode maps a config value to a mode. Empty selects additive.
func ParseProjectionMode(s string) (ProjectionMode, error) {
	switch ProjectionMode(s) {
	case "", ProjectionModeAdditive:
		return ProjectionModeAdditive, nil
	case ProjectionModeDeduplicated:
		return ProjectionModeDeduplicated, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidProjectionMode, s)
}

// Projection is a non-persisted forecast of a period's closing balance
type Projection struct {
	Year                    int             `json:"year"`
	Month                   int             `json:"month"`
	Mode                    ProjectionMode  `json:"mode"`
	OpeningBalance          decimal.Decimal `json:"openingBalance"`
	ActualIncome            decimal.Decimal `json:"actualIncome"`
	ActualExpense           decimal.Decimal `json:"actualExpense"`
	ProjectedIncome         decimal.Decimal `json:"projectedIncome"`
	ProjectedExpense        decimal.Decimal `json:"projectedExpense"`
	ProjectedClosingBalance decimal.Decimal `json:"projectedClosingBalance"`
	RulesApplied            int             `json:"rulesApplied"`
	RulesSkipped            int             `json:"rulesSkipped"`
}

// TotalIncome is actual plus projected income
func (p *Projection) TotalIncome() decimal.Decimal {
	return p.ActualIncome.Add(p.ProjectedIncome)
}

// TotalExpense is actual plus projected expense
func (p *Projection) TotalExpense() decimal.Decimal {
	return p.ActualExpense.Add(p.ProjectedExpense)
}
