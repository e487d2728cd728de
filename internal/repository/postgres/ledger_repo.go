package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ledgerColumns = `id, owner_id, kind, name, amount, category, entry_date, description, recurring_rule_id, created_at, updated_at`

// LedgerRepository implements domain.LedgerRepository using PostgreSQL
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// Create inserts a new entry
func (r *LedgerRepository) Create(entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	amount, err := decimalToPgNumeric(entry.Amount)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO ledger_entries (owner_id, kind, name, amount, category, entry_date, description, recurring_rule_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+ledgerColumns,
		entry.OwnerID,
		string(entry.Kind),
		entry.Name,
		amount,
		entry.Category,
		timeToPgDate(entry.EntryDate),
		stringPtrToPgText(entry.Description),
		int64PtrToPgInt8(entry.RecurringRuleID),
	)
	return scanLedgerEntry(row)
}

// GetByID retrieves an entry owned by ownerID
func (r *LedgerRepository) GetByID(ownerID uuid.UUID, id int64) (*domain.LedgerEntry, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+ledgerColumns+` FROM ledger_entries WHERE owner_id = $1 AND id = $2`, ownerID, id)
	entry, err := scanLedgerEntry(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// Update replaces an entry's fields
func (r *LedgerRepository) Update(entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	amount, err := decimalToPgNumeric(entry.Amount)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(context.Background(), `
		UPDATE ledger_entries
		SET kind = $3, name = $4, amount = $5, category = $6, entry_date = $7,
		    description = $8, recurring_rule_id = $9, updated_at = NOW()
		WHERE owner_id = $1 AND id = $2
		RETURNING `+ledgerColumns,
		entry.OwnerID,
		entry.ID,
		string(entry.Kind),
		entry.Name,
		amount,
		entry.Category,
		timeToPgDate(entry.EntryDate),
		stringPtrToPgText(entry.Description),
		int64PtrToPgInt8(entry.RecurringRuleID),
	)
	updated, err := scanLedgerEntry(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes an entry
func (r *LedgerRepository) Delete(ownerID uuid.UUID, id int64) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM ledger_entries WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// ListByOwner returns entries matching filters, newest date first
func (r *LedgerRepository) ListByOwner(ownerID uuid.UUID, filters *domain.LedgerFilters) ([]*domain.LedgerEntry, error) {
	where := []string{"owner_id = $1"}
	args := []any{ownerID}
	if filters != nil {
		if filters.Kind != nil {
			args = append(args, string(*filters.Kind))
			where = append(where, fmt.Sprintf("kind = $%d", len(args)))
		}
		if filters.StartDate != nil {
			args = append(args, timeToPgDate(*filters.StartDate))
			where = append(where, fmt.Sprintf("entry_date >= $%d", len(args)))
		}
		if filters.EndDate != nil {
			args = append(args, timeToPgDate(*filters.EndDate))
			where = append(where, fmt.Sprintf("entry_date <= $%d", len(args)))
		}
	}

	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY entry_date DESC, id DESC`
	return r.list(query, args...)
}

// ListByDateRange returns entries of one kind dated within [startDate, endDate]
func (r *LedgerRepository) ListByDateRange(ownerID uuid.UUID, kind domain.EntryKind, startDate, endDate time.Time) ([]*domain.LedgerEntry, error) {
	return r.list(`
		SELECT `+ledgerColumns+`
		FROM ledger_entries
		WHERE owner_id = $1 AND kind = $2 AND entry_date BETWEEN $3 AND $4
		ORDER BY entry_date, id`,
		ownerID, string(kind), timeToPgDate(startDate), timeToPgDate(endDate))
}

func (r *LedgerRepository) list(query string, args ...any) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*domain.LedgerEntry{}
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanLedgerEntry(row rowScanner) (*domain.LedgerEntry, error) {
	var (
		e           domain.LedgerEntry
		kind        string
		amount      pgtype.Numeric
		entryDate   pgtype.Date
		description pgtype.Text
		ruleID      pgtype.Int8
	)
	err := row.Scan(&e.ID, &e.OwnerID, &kind, &e.Name, &amount, &e.Category,
		&entryDate, &description, &ruleID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Kind = domain.EntryKind(kind)
	e.Amount = pgNumericToDecimal(amount)
	e.EntryDate = pgDateToTime(entryDate)
	e.Description = pgTextToStringPtr(description)
	e.RecurringRuleID = pgInt8ToInt64Ptr(ruleID)
	return &e, nil
}
