package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryKind distinguishes income from expense, for both ledger entries and recurring rules
type EntryKind string

const (
	EntryKindIncome  EntryKind = "income"
	EntryKindExpense EntryKind = "expense"
)

// Valid reports whether k is a known kind
func (k EntryKind) Valid() bool {
	return k == EntryKindIncome || k == EntryKindExpense
}

// LedgerEntry is a single actual income or expense record
type LedgerEntry struct {
	ID              int64           `json:"id"`
	OwnerID         uuid.UUID       `json:"ownerId"`
	Kind            EntryKind       `json:"kind"`
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	EntryDate       time.Time       `json:"entryDate"`
	Description     *string         `json:"description,omitempty"`
	RecurringRuleID *int64          `json:"recurringRuleId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// LedgerFilters narrows ListByOwner results. Nil fields are not applied.
type LedgerFilters struct {
	Kind      *EntryKind
	StartDate *time.Time
	EndDate   *time.Time
}

// LedgerRepository is the ledger accessor used by the balance and projection engines
type LedgerRepository interface {
	Create(entry *LedgerEntry) (*LedgerEntry, error)
	GetByID(ownerID uuid.UUID, id int64) (*LedgerEntry, error)
	Update(entry *LedgerEntry) (*LedgerEntry, error)
	Delete(ownerID uuid.UUID, id int64) error
	ListByOwner(ownerID uuid.UUID, filters *LedgerFilters) ([]*LedgerEntry, error)
	// ListByDateRange returns entries of one kind dated within [startDate, endDate] inclusive
	ListByDateRange(ownerID uuid.UUID, kind EntryKind, startDate, endDate time.Time) ([]*LedgerEntry, error)
}

// SumAmounts adds entry amounts exactly. An empty slice sums to zero.
func SumAmounts(entries []*LedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}
