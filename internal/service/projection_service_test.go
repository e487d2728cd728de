package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type projectionFixture struct {
	*balanceFixture
	rules   *testutil.MockRecurringRepository
	service *ProjectionService
}

func setupProjectionService(mode domain.ProjectionMode) *projectionFixture {
	bf := setupBalanceService(nil)
	rules := testutil.NewMockRecurringRepository()
	return &projectionFixture{
		balanceFixture: bf,
		rules:          rules,
		service:        NewProjectionService(bf.ledger, rules, bf.service, mode),
	}
}

func (f *projectionFixture) addRule(kind domain.EntryKind, amount string, dayOfMonth int, start time.Time, end *time.Time) *domain.RecurringRule {
	r := &domain.RecurringRule{
		OwnerID:    f.owner.ID,
		Kind:       kind,
		Name:       "rule",
		Amount:     d(amount),
		Category:   "Bills",
		Frequency:  domain.FrequencyMonthly,
		DayOfMonth: dayOfMonth,
		StartDate:  start,
		EndDate:    end,
		IsActive:   true,
	}
	f.rules.AddRule(r)
	return r
}

func TestProject_Additivity(t *testing.T) {
	f := setupProjectionService(domain.ProjectionModeAdditive)
	f.addEntry(domain.EntryKindIncome, "200.00", "2024-03-05")
	f.addEntry(domain.EntryKindExpense, "50.00", "2024-03-06")
	f.addRule(domain.EntryKindExpense, "30.00", 15, day(2024, 1, 1), nil)

	p, err := f.service.Project(context.Background(), f.owner.ID, 2024, 3)
	require.NoError(t, err)

	assert.Equal(t, "0.00", p.OpeningBalance.StringFixed(2))
	assert.Equal(t, "200.00", p.ActualIncome.StringFixed(2))
	assert.Equal(t, "50.00", p.ActualExpense.StringFixed(2))
	assert.Equal(t, "0.00", p.ProjectedIncome.StringFixed(2))
	assert.Equal(t, "30.00", p.ProjectedExpense.StringFixed(2))
	assert.Equal(t, "120.00", p.ProjectedClosingBalance.StringFixed(2))
	assert.Equal(t, domain.ProjectionModeAdditive, p.Mode)
	assert.Equal(t, 1, p.RulesApplied)
}

func TestProject_NoEntriesNoRulesEqualsChainDefault(t *testing.T) {
	f := setupProjectionService(domain.ProjectionModeAdditive)
	f.balances.AddBalance(&domain.PeriodBalance{OwnerID: f.owner.ID, Year: 2024, Month: 1, ClosingBalance: d("321.09")})

	p, err := f.service.Project(context.Background(), f.owner.ID, 2024, 4)
	require.NoError(t, err)
	assert.Equal(t, "321.09", p.ProjectedClosingBalance.StringFixed(2))
	assert.True(t, p.ProjectedClosingBalance.Equal(p.OpeningBalance))
}

func TestProject_NeverPersists(t *testing.T) {
	f := setupProjectionService(domain.ProjectionModeAdditive)
	f.addEntry(domain.EntryKindIncome, "10.00", "2024-03-05")
	f.addRule(domain.EntryKindIncome, "20.00", 1, day(2024, 1, 1), nil)

	_, err := f.service.Project(context.Background(), f.owner.ID, 2024, 3)
	require.NoError(t, err)

	_, upserts := f.balances.Calls()
	assert.Equal(t, 0, upserts)
	assert.Empty(t, f.balances.Balances)
}

func TestProject_RuleBoundaries(t *testing.T) {
	f := setupProjectionService(domain.ProjectionModeAdditive)
	f.addRule(domain.EntryKindExpense, "10.00", 10, day(2024, 3, 10), ptr(day(2024, 5, 31)))

	tests := []struct {
		month    int
		expected string
	}{
		{2, "0.00"},
		{3, "10.00"},
		{5, "10.00"},
		{6, "0.00"},
	}
	for _, tt := range tests {
		p, err := f.service.Project(context.Background(), f.owner.ID, 2024, tt.month)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, p.ProjectedExpense.StringFixed(2), "month %d", tt.month)
	}
}

func TestProject_IgnoresInactiveAndUnsupportedRules(t *testing.T) {
	f := setupProjectionService(domain.ProjectionModeAdditive)
	inactive := f.addRule(domain.EntryKindExpense, "10.00", 1, day(2024, 1, 1), nil)
	inactive.IsActive = false
	weekly := f.addRule(domain.EntryKindExpense, "99.00", 1, day(2024, 1, 1), nil)
	weekly.Frequency = domain.FrequencyWeekly

	p, err := f.service.Project(context.Background(), f.owner.ID, 2024, 3)
	require.NoError(t, err)
	assert.True(t, p.ProjectedExpense.IsZero())
	assert.Equal(t, 0, p.RulesApplied)
}

func TestProject_AdditiveCountsRecordedRuleTwice(t *testing.T) {
	f := setupProjectionService(domain.ProjectionModeAdditive)
	rule := f.addRule(domain.EntryKindExpense, "1200.00", 1, day(2024, 1, 1), nil)
	f.ledger.AddEntry(&domain.LedgerEntry{
		OwnerID: f.owner.ID, Kind: domain.EntryKindExpense, Name: "Rent", Amount: d("1200.00"),
		Category: "Housing", EntryDate: day(2024, 3, 1), RecurringRuleID: &rule.ID,
	})

	p, err := f.service.Project(context.Background(), f.owner.ID, 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, "-2400.00", p.ProjectedClosingBalance.StringFixed(2))
}

func TestProject_DeduplicatedSkipsRecordedRules(t *testing.T) {
	f := setupProjectionService(domain.ProjectionModeDeduplicated)
	rent := f.addRule(domain.EntryKindExpense, "1200.00", 1, day(2024, 1, 1), nil)
	f.addRule(domain.EntryKindIncome, "3000.00", 31, day(2024, 1, 1), nil)
	f.addRule(domain.EntryKindExpense, "15.00", 20, day(2024, 1, 1), nil)

	// linked by rule id, on a different day than scheduled
	f.ledger.AddEntry(&domain.LedgerEntry{
		OwnerID: f.owner.ID, Kind: domain.EntryKindExpense, Name: "Rent", Amount: d("1200.00"),
		Category: "Housing", EntryDate: day(2024, 2, 3), RecurringRuleID: &rent.ID,
	})
	// matched by clamped date and amount
	f.ledger.AddEntry(&domain.LedgerEntry{
		OwnerID: f.owner.ID, Kind: domain.EntryKindIncome, Name: "Salary", Amount: d("3000.00"),
		Category: "Work", EntryDate: day(2024, 2, 29),
	})
	// same amount, wrong date: not a match
	f.ledger.AddEntry(&domain.LedgerEntry{
		OwnerID: f.owner.ID, Kind: domain.EntryKindExpense, Name: "Streaming", Amount: d("15.00"),
		Category: "Fun", EntryDate: day(2024, 2, 21),
	})

	p, err := f.service.Project(context.Background(), f.owner.ID, 2024, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, p.RulesSkipped)
	assert.Equal(t, 1, p.RulesApplied)
	assert.Equal(t, "0.00", p.ProjectedIncome.StringFixed(2))
	assert.Equal(t, "15.00", p.ProjectedExpense.StringFixed(2))
	// 0 + 3000 + 0 - (1200 + 15) - 15
	assert.Equal(t, "1770.00", p.ProjectedClosingBalance.StringFixed(2))
}

func TestProject_DeduplicatedEntryMatchesOnlyOneRule(t *testing.T) {
	f := setupProjectionService(domain.ProjectionModeDeduplicated)
	f.addRule(domain.EntryKindExpense, "50.00", 10, day(2024, 1, 1), nil)
	f.addRule(domain.EntryKindExpense, "50.00", 10, day(2024, 1, 1), nil)
	f.addEntry(domain.EntryKindExpense, "50.00", "2024-04-10")

	p, err := f.service.Project(context.Background(), f.owner.ID, 2024, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, p.RulesSkipped)
	assert.Equal(t, "50.00", p.ProjectedExpense.StringFixed(2))
}

func TestProject_InvalidPeriod(t *testing.T) {
	f := setupProjectionService(domain.ProjectionModeAdditive)
	_, err := f.service.Project(context.Background(), f.owner.ID, 2024, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestProject_PropagatesRepositoryErrors(t *testing.T) {
	f := setupProjectionService(domain.ProjectionModeAdditive)
	boom := errors.New("timeout")
	f.rules.ListByOwnerFn = func(ownerID uuid.UUID, activeOnly *bool) ([]*domain.RecurringRule, error) {
		return nil, boom
	}

	_, err := f.service.Project(context.Background(), f.owner.ID, 2024, 3)
	assert.ErrorIs(t, err, boom)
}

func TestProject_CancelledContext(t *testing.T) {
	f := setupProjectionService(domain.ProjectionModeAdditive)
	fetched := false
	f.rules.ListByOwnerFn = func(ownerID uuid.UUID, activeOnly *bool) ([]*domain.RecurringRule, error) {
		fetched = true
		return nil, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.service.Project(ctx, f.owner.ID, 2024, 3)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, fetched)
}

func TestNewProjectionService_DefaultsToAdditive(t *testing.T) {
	svc := NewProjectionService(nil, nil, nil, "")
	assert.Equal(t, domain.ProjectionModeAdditive, svc.Mode())
}
