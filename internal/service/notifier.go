package service

import (
	"context"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/google/uuid"
)

// LedgerChangeNotifier announces that an owner's ledger changed within a period,
// so an asynchronous consumer can recalculate it.
type LedgerChangeNotifier interface {
	NotifyLedgerChanged(ctx context.Context, ownerID uuid.UUID, period domain.Period) error
}

// affectedPeriods returns the distinct periods touched by a set of entry dates
func affectedPeriods(entries ...*domain.LedgerEntry) []domain.Period {
	var periods []domain.Period
	seen := make(map[domain.Period]bool)
	for _, e := range entries {
		if e == nil {
			continue
		}
		p := domain.PeriodOf(e.EntryDate)
		if !seen[p] {
			seen[p] = true
			periods = append(periods, p)
		}
	}
	return periods
}
