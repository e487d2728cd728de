package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ProjectionService forecasts a period's closing balance from actual entries plus recurring rules.
// It never writes.
type ProjectionService struct {
	ledgerRepo    domain.LedgerRepository
	recurringRepo domain.RecurringRepository
	balances      *BalanceService
	mode          domain.ProjectionMode
}

// NewProjectionService creates a new ProjectionService
func NewProjectionService(
	ledgerRepo domain.LedgerRepository,
	recurringRepo domain.RecurringRepository,
	balances *BalanceService,
	mode domain.ProjectionMode,
) *ProjectionService {
	if mode == "" {
		mode = domain.ProjectionModeAdditive
	}
	return &ProjectionService{
		ledgerRepo:    ledgerRepo,
		recurringRepo: recurringRepo,
		balances:      balances,
		mode:          mode,
	}
}

// Mode returns the configured projection mode
func (s *ProjectionService) Mode() domain.ProjectionMode {
	return s.mode
}

// Project computes the forecast for one owner's month
func (s *ProjectionService) Project(ctx context.Context, ownerID uuid.UUID, year, month int) (*domain.Projection, error) {
	period, err := domain.NewPeriod(year, month)
	if err != nil {
		return nil, err
	}
	start, end := period.Bounds()

	var (
		incomes, expenses []*domain.LedgerEntry
		rules             []*domain.RecurringRule
		opening           decimal.Decimal
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var g errgroup.Group
	g.Go(func() error {
		var err error
		incomes, err = s.ledgerRepo.ListByDateRange(ownerID, domain.EntryKindIncome, start, end)
		if err != nil {
			return fmt.Errorf("fetch income: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		expenses, err = s.ledgerRepo.ListByDateRange(ownerID, domain.EntryKindExpense, start, end)
		if err != nil {
			return fmt.Errorf("fetch expense: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		active := true
		var err error
		rules, err = s.recurringRepo.ListByOwner(ownerID, &active)
		if err != nil {
			return fmt.Errorf("fetch recurring rules: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		opening, err = s.balances.OpeningBalance(ownerID, year, month)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p := &domain.Projection{
		Year:             year,
		Month:            month,
		Mode:             s.mode,
		OpeningBalance:   opening,
		ActualIncome:     domain.SumAmounts(incomes),
		ActualExpense:    domain.SumAmounts(expenses),
		ProjectedIncome:  decimal.Zero,
		ProjectedExpense: decimal.Zero,
	}

	matcher := newActualMatcher(incomes, expenses)
	for _, rule := range rules {
		if !rule.IsActive || !rule.InEffect(period) {
			continue
		}
		date, amount := rule.Materialize(period)
		if s.mode == domain.ProjectionModeDeduplicated && matcher.claim(rule, date, amount) {
			p.RulesSkipped++
			continue
		}
		switch rule.Kind {
		case domain.EntryKindIncome:
			p.ProjectedIncome = p.ProjectedIncome.Add(amount)
		case domain.EntryKindExpense:
			p.ProjectedExpense = p.ProjectedExpense.Add(amount)
		}
		p.RulesApplied++
	}

	p.ProjectedClosingBalance = opening.
		Add(p.ActualIncome).
		Add(p.ProjectedIncome).
		Sub(p.ActualExpense).
		Sub(p.ProjectedExpense)
	return p, nil
}

// actualMatcher finds the actual entry, if any, that already records a rule's occurrence.
// Each entry can satisfy at most one rule.
type actualMatcher struct {
	byKind  map[domain.EntryKind][]*domain.LedgerEntry
	claimed map[int64]bool
}

func newActualMatcher(incomes, expenses []*domain.LedgerEntry) *actualMatcher {
	return &actualMatcher{
		byKind: map[domain.EntryKind][]*domain.LedgerEntry{
			domain.EntryKindIncome:  incomes,
			domain.EntryKindExpense: expenses,
		},
		claimed: make(map[int64]bool),
	}
}

// claim marks and reports a matching entry. Explicit rule references win over date and amount matches.
func (m *actualMatcher) claim(rule *domain.RecurringRule, date time.Time, amount decimal.Decimal) bool {
	entries := m.byKind[rule.Kind]
	for _, e := range entries {
		if !m.claimed[e.ID] && e.RecurringRuleID != nil && *e.RecurringRuleID == rule.ID {
			m.claimed[e.ID] = true
			return true
		}
	}
	for _, e := range entries {
		if m.claimed[e.ID] || e.RecurringRuleID != nil {
			continue
		}
		if util.DateOnly(e.EntryDate).Equal(date) && e.Amount.Equal(amount) {
			m.claimed[e.ID] = true
			return true
		}
	}
	return false
}
