package postgres

import (
	"context"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const goalColumns = `id, owner_id, name, target_amount, current_amount, target_date, description,
	status, created_at, updated_at`

// GoalRepository implements domain.GoalRepository using PostgreSQL
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

// Create inserts a new goal
func (r *GoalRepository) Create(goal *domain.Goal) (*domain.Goal, error) {
	target, current, err := goalNumerics(goal)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO goals (owner_id, name, target_amount, current_amount, target_date, description, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+goalColumns,
		goal.OwnerID, goal.Name, target, current, timeToPgDate(goal.TargetDate),
		stringPtrToPgText(goal.Description), string(goal.Status))
	return scanGoal(row)
}

// GetByID retrieves a goal owned by ownerID
func (r *GoalRepository) GetByID(ownerID uuid.UUID, id int64) (*domain.Goal, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+goalColumns+` FROM goals WHERE owner_id = $1 AND id = $2`, ownerID, id)
	goal, err := scanGoal(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

// ListByOwner returns goals, nearest target date first
func (r *GoalRepository) ListByOwner(ownerID uuid.UUID, status *domain.GoalStatus) ([]*domain.Goal, error) {
	var filter pgtype.Text
	if status != nil {
		filter = pgtype.Text{String: string(*status), Valid: true}
	}

	rows, err := r.pool.Query(context.Background(), `
		SELECT `+goalColumns+`
		FROM goals
		WHERE owner_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY target_date, id`,
		ownerID, filter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []*domain.Goal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// Update replaces a goal's fields
func (r *GoalRepository) Update(goal *domain.Goal) (*domain.Goal, error) {
	target, current, err := goalNumerics(goal)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(context.Background(), `
		UPDATE goals
		SET name = $3, target_amount = $4, current_amount = $5, target_date = $6, description = $7,
		    status = $8, updated_at = NOW()
		WHERE owner_id = $1 AND id = $2
		RETURNING `+goalColumns,
		goal.OwnerID, goal.ID, goal.Name, target, current, timeToPgDate(goal.TargetDate),
		stringPtrToPgText(goal.Description), string(goal.Status))
	updated, err := scanGoal(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a goal
func (r *GoalRepository) Delete(ownerID uuid.UUID, id int64) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM goals WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

func goalNumerics(g *domain.Goal) (target, current pgtype.Numeric, err error) {
	if target, err = decimalToPgNumeric(g.TargetAmount); err != nil {
		return
	}
	current, err = decimalToPgNumeric(g.CurrentAmount)
	return
}

func scanGoal(row rowScanner) (*domain.Goal, error) {
	var (
		goal            domain.Goal
		target, current pgtype.Numeric
		targetDate      pgtype.Date
		description     pgtype.Text
		status          string
	)
	err := row.Scan(&goal.ID, &goal.OwnerID, &goal.Name, &target, &current, &targetDate,
		&description, &status, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return nil, err
	}
	goal.TargetAmount = pgNumericToDecimal(target)
	goal.CurrentAmount = pgNumericToDecimal(current)
	goal.TargetDate = pgDateToTime(targetDate)
	goal.Description = pgTextToStringPtr(description)
	goal.Status = domain.GoalStatus(status)
	return &goal, nil
}
