package postgres

import (
	"context"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const recurringColumns = `id, owner_id, kind, name, amount, category, frequency, day_of_month,
	start_date, end_date, is_active, description, created_at, updated_at`

// RecurringRepository implements domain.RecurringRepository using PostgreSQL
type RecurringRepository struct {
	pool *pgxpool.Pool
}

// NewRecurringRepository creates a new RecurringRepository
func NewRecurringRepository(pool *pgxpool.Pool) *RecurringRepository {
	return &RecurringRepository{pool: pool}
}

// Create inserts a new rule
func (r *RecurringRepository) Create(rule *domain.RecurringRule) (*domain.RecurringRule, error) {
	amount, err := decimalToPgNumeric(rule.Amount)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO recurring_rules (owner_id, kind, name, amount, category, frequency, day_of_month,
			start_date, end_date, is_active, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+recurringColumns,
		rule.OwnerID,
		string(rule.Kind),
		rule.Name,
		amount,
		rule.Category,
		string(rule.Frequency),
		rule.DayOfMonth,
		timeToPgDate(rule.StartDate),
		timePtrToPgDate(rule.EndDate),
		rule.IsActive,
		stringPtrToPgText(rule.Description),
	)
	return scanRecurringRule(row)
}

// GetByID retrieves a rule owned by ownerID
func (r *RecurringRepository) GetByID(ownerID uuid.UUID, id int64) (*domain.RecurringRule, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+recurringColumns+` FROM recurring_rules WHERE owner_id = $1 AND id = $2`, ownerID, id)
	rule, err := scanRecurringRule(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrRuleNotFound
		}
		return nil, err
	}
	return rule, nil
}

// ListByOwner returns rules in insertion order
func (r *RecurringRepository) ListByOwner(ownerID uuid.UUID, activeOnly *bool) ([]*domain.RecurringRule, error) {
	var active pgtype.Bool
	if activeOnly != nil {
		active = pgtype.Bool{Bool: *activeOnly, Valid: true}
	}

	rows, err := r.pool.Query(context.Background(), `
		SELECT `+recurringColumns+`
		FROM recurring_rules
		WHERE owner_id = $1 AND ($2::boolean IS NULL OR is_active = $2)
		ORDER BY id`,
		ownerID, active)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := []*domain.RecurringRule{}
	for rows.Next() {
		rule, err := scanRecurringRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// Update replaces a rule's fields
func (r *RecurringRepository) Update(rule *domain.RecurringRule) (*domain.RecurringRule, error) {
	amount, err := decimalToPgNumeric(rule.Amount)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(context.Background(), `
		UPDATE recurring_rules
		SET kind = $3, name = $4, amount = $5, category = $6, frequency = $7, day_of_month = $8,
		    start_date = $9, end_date = $10, is_active = $11, description = $12, updated_at = NOW()
		WHERE owner_id = $1 AND id = $2
		RETURNING `+recurringColumns,
		rule.OwnerID,
		rule.ID,
		string(rule.Kind),
		rule.Name,
		amount,
		rule.Category,
		string(rule.Frequency),
		rule.DayOfMonth,
		timeToPgDate(rule.StartDate),
		timePtrToPgDate(rule.EndDate),
		rule.IsActive,
		stringPtrToPgText(rule.Description),
	)
	updated, err := scanRecurringRule(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrRuleNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a rule; linked ledger entries keep their data and lose the link
func (r *RecurringRepository) Delete(ownerID uuid.UUID, id int64) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM recurring_rules WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRuleNotFound
	}
	return nil
}

func scanRecurringRule(row rowScanner) (*domain.RecurringRule, error) {
	var (
		rule        domain.RecurringRule
		kind        string
		frequency   string
		amount      pgtype.Numeric
		startDate   pgtype.Date
		endDate     pgtype.Date
		description pgtype.Text
		dayOfMonth  int32
	)
	err := row.Scan(&rule.ID, &rule.OwnerID, &kind, &rule.Name, &amount, &rule.Category, &frequency,
		&dayOfMonth, &startDate, &endDate, &rule.IsActive, &description, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rule.Kind = domain.EntryKind(kind)
	rule.Frequency = domain.Frequency(frequency)
	rule.Amount = pgNumericToDecimal(amount)
	rule.DayOfMonth = int(dayOfMonth)
	rule.StartDate = pgDateToTime(startDate)
	rule.EndDate = pgDateToTimePtr(endDate)
	rule.Description = pgTextToStringPtr(description)
	return &rule, nil
}
