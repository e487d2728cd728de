package postgres

import (
	"context"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const balanceColumns = `id, owner_id, year, month, opening_balance, closing_balance,
	total_income, total_expense, created_at, updated_at`

// PeriodBalanceRepository implements domain.PeriodBalanceRepository using PostgreSQL
type PeriodBalanceRepository struct {
	pool *pgxpool.Pool
}

// NewPeriodBalanceRepository creates a new PeriodBalanceRepository
func NewPeriodBalanceRepository(pool *pgxpool.Pool) *PeriodBalanceRepository {
	return &PeriodBalanceRepository{pool: pool}
}

// GetByPeriod retrieves the record for (owner, year, month)
func (r *PeriodBalanceRepository) GetByPeriod(ownerID uuid.UUID, year, month int) (*domain.PeriodBalance, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+balanceColumns+` FROM period_balances WHERE owner_id = $1 AND year = $2 AND month = $3`,
		ownerID, year, month)
	balance, err := scanPeriodBalance(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrBalanceNotFound
		}
		return nil, err
	}
	return balance, nil
}

// GetLatestBefore returns the newest record strictly before (year, month)
func (r *PeriodBalanceRepository) GetLatestBefore(ownerID uuid.UUID, year, month int) (*domain.PeriodBalance, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+balanceColumns+`
		FROM period_balances
		WHERE owner_id = $1 AND (year, month) < ($2, $3)
		ORDER BY year DESC, month DESC
		LIMIT 1`,
		ownerID, year, month)
	balance, err := scanPeriodBalance(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrBalanceNotFound
		}
		return nil, err
	}
	return balance, nil
}

// ListAfter returns records strictly after (year, month), oldest first
func (r *PeriodBalanceRepository) ListAfter(ownerID uuid.UUID, year, month int) ([]*domain.PeriodBalance, error) {
	return r.list(`
		SELECT `+balanceColumns+`
		FROM period_balances
		WHERE owner_id = $1 AND (year, month) > ($2, $3)
		ORDER BY year, month`,
		ownerID, year, month)
}

// ListByOwner returns all records, newest first
func (r *PeriodBalanceRepository) ListByOwner(ownerID uuid.UUID) ([]*domain.PeriodBalance, error) {
	return r.list(`
		SELECT `+balanceColumns+`
		FROM period_balances
		WHERE owner_id = $1
		ORDER BY year DESC, month DESC`,
		ownerID)
}

// Upsert inserts or updates the record keyed by (owner, year, month)
func (r *PeriodBalanceRepository) Upsert(balance *domain.PeriodBalance) (*domain.PeriodBalance, error) {
	opening, err := decimalToPgNumeric(balance.OpeningBalance)
	if err != nil {
		return nil, err
	}
	closing, err := decimalToPgNumeric(balance.ClosingBalance)
	if err != nil {
		return nil, err
	}
	income, err := decimalToPgNumeric(balance.TotalIncome)
	if err != nil {
		return nil, err
	}
	expense, err := decimalToPgNumeric(balance.TotalExpense)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO period_balances (owner_id, year, month, opening_balance, closing_balance, total_income, total_expense)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (owner_id, year, month) DO UPDATE
		SET opening_balance = EXCLUDED.opening_balance,
		    closing_balance = EXCLUDED.closing_balance,
		    total_income = EXCLUDED.total_income,
		    total_expense = EXCLUDED.total_expense,
		    updated_at = NOW()
		RETURNING `+balanceColumns,
		balance.OwnerID, balance.Year, balance.Month, opening, closing, income, expense)
	return scanPeriodBalance(row)
}

func (r *PeriodBalanceRepository) list(query string, args ...any) ([]*domain.PeriodBalance, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := []*domain.PeriodBalance{}
	for rows.Next() {
		balance, err := scanPeriodBalance(rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}
	return balances, rows.Err()
}

func scanPeriodBalance(row rowScanner) (*domain.PeriodBalance, error) {
	var (
		b                                 domain.PeriodBalance
		year, month                       int32
		opening, closing, income, expense pgtype.Numeric
	)
	err := row.Scan(&b.ID, &b.OwnerID, &year, &month, &opening, &closing, &income, &expense, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Year = int(year)
	b.Month = int(month)
	b.OpeningBalance = pgNumericToDecimal(opening)
	b.ClosingBalance = pgNumericToDecimal(closing)
	b.TotalIncome = pgNumericToDecimal(income)
	b.TotalExpense = pgNumericToDecimal(expense)
	return &b, nil
}
