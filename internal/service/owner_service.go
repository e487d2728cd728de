package service

import (
	"errors"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// OwnerService maps authenticated principals to owner records
type OwnerService struct {
	ownerRepo domain.OwnerRepository
}

// NewOwnerService creates a new OwnerService
func NewOwnerService(ownerRepo domain.OwnerRepository) *OwnerService {
	return &OwnerService{ownerRepo: ownerRepo}
}

// AuthResult represents the result of an authentication operation
type AuthResult struct {
	Owner      *domain.Owner
	IsNewOwner bool
}

// AuthenticateOwner handles the flow after the Auth0 callback, creating the owner on first login
func (s *OwnerService) AuthenticateOwner(auth0ID, email string, name *string) (*AuthResult, error) {
	existing, err := s.ownerRepo.GetByAuth0ID(auth0ID)
	if err == nil {
		log.Info().Str("owner_id", existing.ID.String()).Msg("Existing owner authenticated")
		return &AuthResult{Owner: existing}, nil
	}
	if !errors.Is(err, domain.ErrOwnerNotFound) {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to look up owner")
		return nil, err
	}

	owner, err := s.ownerRepo.CreateOrGetByAuth0ID(auth0ID, email, name)
	if err != nil {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to create owner")
		return nil, err
	}

	log.Info().Str("owner_id", owner.ID.String()).Msg("Created new owner")
	return &AuthResult{Owner: owner, IsNewOwner: true}, nil
}

// GetOwner retrieves an owner by ID
func (s *OwnerService) GetOwner(id uuid.UUID) (*domain.Owner, error) {
	return s.ownerRepo.GetByID(id)
}

// GetOwnerByAuth0ID retrieves an owner by Auth0 subject
func (s *OwnerService) GetOwnerByAuth0ID(auth0ID string) (*domain.Owner, error) {
	return s.ownerRepo.GetByAuth0ID(auth0ID)
}

// GetOwnerIDByAuth0ID resolves just the owner ID; used by the auth middleware and websocket validator
func (s *OwnerService) GetOwnerIDByAuth0ID(auth0ID string) (uuid.UUID, error) {
	owner, err := s.ownerRepo.GetByAuth0ID(auth0ID)
	if err != nil {
		return uuid.Nil, err
	}
	return owner.ID, nil
}

// ListOwners returns every owner
func (s *OwnerService) ListOwners() ([]*domain.Owner, error) {
	return s.ownerRepo.ListAll()
}
