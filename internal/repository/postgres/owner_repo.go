package postgres

import (
	"context"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ownerColumns = `id, auth0_id, email, name, created_at, updated_at`

// OwnerRepository implements domain.OwnerRepository using PostgreSQL
type OwnerRepository struct {
	pool *pgxpool.Pool
}

// NewOwnerRepository creates a new OwnerRepository
func NewOwnerRepository(pool *pgxpool.Pool) *OwnerRepository {
	return &OwnerRepository{pool: pool}
}

// GetByID retrieves an owner by UUID
func (r *OwnerRepository) GetByID(id uuid.UUID) (*domain.Owner, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+ownerColumns+` FROM owners WHERE id = $1`, id)
	owner, err := scanOwner(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrOwnerNotFound
		}
		return nil, err
	}
	return owner, nil
}

// GetByAuth0ID retrieves an owner by Auth0 subject
func (r *OwnerRepository) GetByAuth0ID(auth0ID string) (*domain.Owner, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+ownerColumns+` FROM owners WHERE auth0_id = $1`, auth0ID)
	owner, err := scanOwner(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrOwnerNotFound
		}
		return nil, err
	}
	return owner, nil
}

// CreateOrGetByAuth0ID creates a new owner or returns the existing one (upsert on login)
func (r *OwnerRepository) CreateOrGetByAuth0ID(auth0ID, email string, name *string) (*domain.Owner, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO owners (auth0_id, email, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (auth0_id) DO UPDATE
		SET email = EXCLUDED.email, updated_at = NOW()
		RETURNING `+ownerColumns,
		auth0ID, email, stringPtrToPgText(name))
	return scanOwner(row)
}

// ListAll returns every owner ordered by creation time
func (r *OwnerRepository) ListAll() ([]*domain.Owner, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+ownerColumns+` FROM owners ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	owners := []*domain.Owner{}
	for rows.Next() {
		owner, err := scanOwner(rows)
		if err != nil {
			return nil, err
		}
		owners = append(owners, owner)
	}
	return owners, rows.Err()
}

func scanOwner(row rowScanner) (*domain.Owner, error) {
	var (
		o    domain.Owner
		name pgtype.Text
	)
	if err := row.Scan(&o.ID, &o.Auth0ID, &o.Email, &name, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Name = pgTextToStringPtr(name)
	return &o, nil
}
