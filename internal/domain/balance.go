package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodBalance is the persisted rollup of one owner's month. Unique per (owner, year, month).
type PeriodBalance struct {
	ID             int64           `json:"id"`
	OwnerID        uuid.UUID       `json:"ownerId"`
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpense   decimal.Decimal `json:"totalExpense"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Period returns the (year, month) key of the record
func (b *PeriodBalance) Period() Period {
	return Period{Year: b.Year, Month: b.Month}
}

type PeriodBalanceRepository interface {
	GetByPeriod(ownerID uuid.UUID, year, month int) (*PeriodBalance, error)
	// GetLatestBefore returns the record with the greatest (year, month) strictly
	// before the given period, or ErrBalanceNotFound
	GetLatestBefore(ownerID uuid.UUID, year, month int) (*PeriodBalance, error)
	// ListAfter returns records strictly after the given period, oldest first
	ListAfter(ownerID uuid.UUID, year, month int) ([]*PeriodBalance, error)
	// ListByOwner returns all records, newest first
	ListByOwner(ownerID uuid.UUID) ([]*PeriodBalance, error)
	// Upsert inserts or updates the record for (owner, year, month) and returns the stored row
	Upsert(balance *PeriodBalance) (*PeriodBalance, error)
}
