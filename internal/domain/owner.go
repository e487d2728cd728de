package domain

import (
	"time"

	"github.com/google/uuid"
)

// Owner is the principal that owns ledger entries, recurring rules and period balances
type Owner struct {
	ID        uuid.UUID `json:"id"`
	Auth0ID   string    `json:"auth0Id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerRepository defines the interface for owner persistence operations
type OwnerRepository interface {
	GetByID(id uuid.UUID) (*Owner, error)
	GetByAuth0ID(auth0ID string) (*Owner, error)
	CreateOrGetByAuth0ID(auth0ID, email string, name *string) (*Owner, error)
	ListAll() ([]*Owner, error)
}
