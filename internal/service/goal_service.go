package service

import (
	"strings"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/util"
	"github.com/dafibh/tally/tally-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalService manages savings goals
type GoalService struct {
	goalRepo       domain.GoalRepository
	eventPublisher websocket.EventPublisher
}

// NewGoalService creates a new GoalService
func NewGoalService(goalRepo domain.GoalRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *GoalService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *GoalService) publishEvent(ownerID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(ownerID, event)
	}
}

// GoalInput holds the fields for creating or replacing a goal. Status defaults to in_progress.
type GoalInput struct {
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    *time.Time
	Description   *string
	Status        domain.GoalStatus
}

func validateGoalInput(input GoalInput) (*domain.Goal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}

	if err := domain.ValidatePositiveAmount(input.TargetAmount); err != nil {
		return nil, err
	}
	if input.CurrentAmount.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}
	if err := domain.ValidateMoney(input.CurrentAmount); err != nil {
		return nil, err
	}

	if input.TargetDate == nil || input.TargetDate.IsZero() {
		return nil, domain.ErrDateRequired
	}

	status := input.Status
	if status == "" {
		status = domain.GoalStatusInProgress
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidGoalStatus
	}

	description, err := trimDescription(input.Description)
	if err != nil {
		return nil, err
	}

	return &domain.Goal{
		Name:          name,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: input.CurrentAmount,
		TargetDate:    util.DateOnly(*input.TargetDate),
		Description:   description,
		Status:        status,
	}, nil
}

// CreateGoal validates and stores a new goal
func (s *GoalService) CreateGoal(ownerID uuid.UUID, input GoalInput) (*domain.Goal, error) {
	goal, err := validateGoalInput(input)
	if err != nil {
		return nil, err
	}
	goal.OwnerID = ownerID

	created, err := s.goalRepo.Create(goal)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ownerID, websocket.GoalCreated(created))
	return created, nil
}

// GetGoal retrieves one goal
func (s *GoalService) GetGoal(ownerID uuid.UUID, id int64) (*domain.Goal, error) {
	return s.goalRepo.GetByID(ownerID, id)
}

// ListGoals returns goals ordered by target date, optionally filtered by status
func (s *GoalService) ListGoals(ownerID uuid.UUID, status *domain.GoalStatus) ([]*domain.Goal, error) {
	if status != nil && !status.Valid() {
		return nil, domain.ErrInvalidGoalStatus
	}
	return s.goalRepo.ListByOwner(ownerID, status)
}

// UpdateGoal replaces a goal's fields. An empty status keeps the stored one.
func (s *GoalService) UpdateGoal(ownerID uuid.UUID, id int64, input GoalInput) (*domain.Goal, error) {
	if input.Status == "" {
		existing, err := s.goalRepo.GetByID(ownerID, id)
		if err != nil {
			return nil, err
		}
		input.Status = existing.Status
	}

	goal, err := validateGoalInput(input)
	if err != nil {
		return nil, err
	}
	goal.ID = id
	goal.OwnerID = ownerID

	updated, err := s.goalRepo.Update(goal)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ownerID, websocket.GoalUpdated(updated))
	return updated, nil
}

// DeleteGoal removes a goal
func (s *GoalService) DeleteGoal(ownerID uuid.UUID, id int64) error {
	if err := s.goalRepo.Delete(ownerID, id); err != nil {
		return err
	}
	s.publishEvent(ownerID, websocket.GoalDeleted(map[string]interface{}{"id": id}))
	return nil
}
