package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/lock"
	"github.com/dafibh/tally/tally-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BalanceService chains and persists monthly period balances
type BalanceService struct {
	ownerRepo      domain.OwnerRepository
	ledgerRepo     domain.LedgerRepository
	balanceRepo    domain.PeriodBalanceRepository
	locker         lock.PeriodLocker
	eventPublisher websocket.EventPublisher
}

// NewBalanceService creates a new BalanceService. A nil locker means last-write-wins.
func NewBalanceService(
	ownerRepo domain.OwnerRepository,
	ledgerRepo domain.LedgerRepository,
	balanceRepo domain.PeriodBalanceRepository,
	locker lock.PeriodLocker,
) *BalanceService {
	if locker == nil {
		locker = lock.NoopLocker{}
	}
	return &BalanceService{
		ownerRepo:   ownerRepo,
		ledgerRepo:  ledgerRepo,
		balanceRepo: balanceRepo,
		locker:      locker,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *BalanceService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// OpeningBalance returns the closing balance of the latest stored period strictly
// before (year, month), or zero when the owner has no earlier period.
func (s *BalanceService) OpeningBalance(ownerID uuid.UUID, year, month int) (decimal.Decimal, error) {
	prev, err := s.balanceRepo.GetLatestBefore(ownerID, year, month)
	if err != nil {
		if errors.Is(err, domain.ErrBalanceNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return prev.ClosingBalance, nil
}

// periodTotals sums actual income and expense within the period's inclusive window
func periodTotals(ledgerRepo domain.LedgerRepository, ownerID uuid.UUID, period domain.Period) (income, expense decimal.Decimal, err error) {
	start, end := period.Bounds()

	incomes, err := ledgerRepo.ListByDateRange(ownerID, domain.EntryKindIncome, start, end)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("fetch income: %w", err)
	}
	expenses, err := ledgerRepo.ListByDateRange(ownerID, domain.EntryKindExpense, start, end)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("fetch expense: %w", err)
	}
	return domain.SumAmounts(incomes), domain.SumAmounts(expenses), nil
}

// Recalculate recomputes and upserts the balance for one owner's month.
// Later months are not touched; use RecalculateFrom to cascade.
func (s *BalanceService) Recalculate(ctx context.Context, ownerID uuid.UUID, year, month int) (*domain.PeriodBalance, error) {
	period, err := domain.NewPeriod(year, month)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownerRepo.GetByID(ownerID); err != nil {
		return nil, err
	}

	balance, err := s.recalculate(ctx, ownerID, period)
	if err != nil {
		return nil, err
	}
	s.publishRecalculated(ownerID, balance)
	return balance, nil
}

func (s *BalanceService) recalculate(ctx context.Context, ownerID uuid.UUID, period domain.Period) (*domain.PeriodBalance, error) {
	unlock, err := s.locker.Lock(ctx, lock.PeriodKey(ownerID, period.Year, period.Month))
	if err != nil {
		return nil, fmt.Errorf("lock period %s: %w", period, err)
	}
	defer unlock()

	income, expense, err := periodTotals(s.ledgerRepo, ownerID, period)
	if err != nil {
		return nil, err
	}

	opening, err := s.OpeningBalance(ownerID, period.Year, period.Month)
	if err != nil {
		return nil, err
	}

	saved, err := s.balanceRepo.Upsert(&domain.PeriodBalance{
		OwnerID:        ownerID,
		Year:           period.Year,
		Month:          period.Month,
		OpeningBalance: opening,
		ClosingBalance: opening.Add(income).Sub(expense),
		TotalIncome:    income,
		TotalExpense:   expense,
	})
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("owner_id", ownerID.String()).
		Int("year", period.Year).
		Int("month", period.Month).
		Str("closing_balance", saved.ClosingBalance.StringFixed(2)).
		Msg("Recalculated period balance")
	return saved, nil
}

// RecalculateFrom recalculates (year, month) and then every stored later period in
// ascending order, so each later opening balance follows the updated chain.
func (s *BalanceService) RecalculateFrom(ctx context.Context, ownerID uuid.UUID, year, month int) ([]*domain.PeriodBalance, error) {
	first, err := s.Recalculate(ctx, ownerID, year, month)
	if err != nil {
		return nil, err
	}

	later, err := s.balanceRepo.ListAfter(ownerID, year, month)
	if err != nil {
		return nil, err
	}

	results := make([]*domain.PeriodBalance, 0, len(later)+1)
	results = append(results, first)
	for _, b := range later {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		updated, err := s.recalculate(ctx, ownerID, b.Period())
		if err != nil {
			return results, err
		}
		s.publishRecalculated(ownerID, updated)
		results = append(results, updated)
	}

	log.Info().
		Str("owner_id", ownerID.String()).
		Int("year", year).
		Int("month", month).
		Int("periods", len(results)).
		Msg("Cascaded period balance recalculation")
	return results, nil
}

// ApplyLedgerChange is the entry point for asynchronous ledger-change messages
func (s *BalanceService) ApplyLedgerChange(ctx context.Context, ownerID uuid.UUID, year, month int, cascade bool) error {
	if cascade {
		_, err := s.RecalculateFrom(ctx, ownerID, year, month)
		return err
	}
	_, err := s.Recalculate(ctx, ownerID, year, month)
	return err
}

// GetBalance returns the stored balance for a period
func (s *BalanceService) GetBalance(ownerID uuid.UUID, year, month int) (*domain.PeriodBalance, error) {
	if _, err := domain.NewPeriod(year, month); err != nil {
		return nil, err
	}
	return s.balanceRepo.GetByPeriod(ownerID, year, month)
}

// ListBalances returns every stored period, newest first
func (s *BalanceService) ListBalances(ownerID uuid.UUID) ([]*domain.PeriodBalance, error) {
	return s.balanceRepo.ListByOwner(ownerID)
}

func (s *BalanceService) publishRecalculated(ownerID uuid.UUID, balance *domain.PeriodBalance) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(ownerID, websocket.BalanceRecalculated(balance))
	}
}
