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

// RecurringService handles recurring rules and previews of their instances
type RecurringService struct {
	recurringRepo  domain.RecurringRepository
	eventPublisher websocket.EventPublisher
}

// NewRecurringService creates a new RecurringService
func NewRecurringService(recurringRepo domain.RecurringRepository) *RecurringService {
	return &RecurringService{recurringRepo: recurringRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *RecurringService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *RecurringService) publishEvent(ownerID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(ownerID, event)
	}
}

// RuleInput holds the fields for creating or replacing a rule
type RuleInput struct {
	Kind        domain.EntryKind
	Name        string
	Amount      decimal.Decimal
	Category    string
	Frequency   domain.Frequency
	DayOfMonth  int
	StartDate   *time.Time
	EndDate     *time.Time
	IsActive    *bool
	Description *string
}

func validateRuleInput(input RuleInput) (*domain.RecurringRule, error) {
	if !input.Kind.Valid() {
		return nil, domain.ErrInvalidEntryKind
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}

	if err := domain.ValidatePositiveAmount(input.Amount); err != nil {
		return nil, err
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, domain.ErrCategoryRequired
	}
	if len(category) > domain.MaxCategoryLength {
		return nil, domain.ErrCategoryTooLong
	}

	frequency := input.Frequency
	if frequency == "" {
		frequency = domain.FrequencyMonthly
	}
	if !frequency.Valid() {
		return nil, domain.ErrInvalidFrequency
	}
	if !frequency.Supported() {
		return nil, domain.ErrUnsupportedFrequency
	}

	if input.DayOfMonth < 1 || input.DayOfMonth > 31 {
		return nil, domain.ErrInvalidDayOfMonth
	}

	if input.StartDate == nil || input.StartDate.IsZero() {
		return nil, domain.ErrDateRequired
	}
	start := util.DateOnly(*input.StartDate)

	var end *time.Time
	if input.EndDate != nil {
		e := util.DateOnly(*input.EndDate)
		if e.Before(start) {
			return nil, domain.ErrEndDateBeforeStart
		}
		end = &e
	}

	description, err := trimDescription(input.Description)
	if err != nil {
		return nil, err
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	return &domain.RecurringRule{
		Kind:        input.Kind,
		Name:        name,
		Amount:      input.Amount,
		Category:    category,
		Frequency:   frequency,
		DayOfMonth:  input.DayOfMonth,
		StartDate:   start,
		EndDate:     end,
		IsActive:    active,
		Description: description,
	}, nil
}

// CreateRule validates and stores a new rule
func (s *RecurringService) CreateRule(ownerID uuid.UUID, input RuleInput) (*domain.RecurringRule, error) {
	rule, err := validateRuleInput(input)
	if err != nil {
		return nil, err
	}
	rule.OwnerID = ownerID

	created, err := s.recurringRepo.Create(rule)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ownerID, websocket.RecurringCreated(created))
	return created, nil
}

// GetRule retrieves one rule
func (s *RecurringService) GetRule(ownerID uuid.UUID, id int64) (*domain.RecurringRule, error) {
	return s.recurringRepo.GetByID(ownerID, id)
}

// ListRules returns the owner's rules; activeOnly filters when set
func (s *RecurringService) ListRules(ownerID uuid.UUID, activeOnly *bool) ([]*domain.RecurringRule, error) {
	return s.recurringRepo.ListByOwner(ownerID, activeOnly)
}

// UpdateRule replaces a rule's fields
func (s *RecurringService) UpdateRule(ownerID uuid.UUID, id int64, input RuleInput) (*domain.RecurringRule, error) {
	rule, err := validateRuleInput(input)
	if err != nil {
		return nil, err
	}
	if _, err := s.recurringRepo.GetByID(ownerID, id); err != nil {
		return nil, err
	}

	rule.ID = id
	rule.OwnerID = ownerID
	updated, err := s.recurringRepo.Update(rule)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ownerID, websocket.RecurringUpdated(updated))
	return updated, nil
}

// DeleteRule removes a rule
func (s *RecurringService) DeleteRule(ownerID uuid.UUID, id int64) error {
	if err := s.recurringRepo.Delete(ownerID, id); err != nil {
		return err
	}
	s.publishEvent(ownerID, websocket.RecurringDeleted(map[string]interface{}{"id": id}))
	return nil
}

// GenerateInstances previews the entries the owner's active rules would produce for a period.
// Order follows the repository's active-rule fetch. Nothing is persisted.
func (s *RecurringService) GenerateInstances(ownerID uuid.UUID, year, month int) ([]domain.RecurringInstance, error) {
	period, err := domain.NewPeriod(year, month)
	if err != nil {
		return nil, err
	}

	active := true
	rules, err := s.recurringRepo.ListByOwner(ownerID, &active)
	if err != nil {
		return nil, err
	}

	instances := []domain.RecurringInstance{}
	for _, rule := range rules {
		if !rule.IsActive || !rule.InEffect(period) {
			continue
		}
		instances = append(instances, rule.Instance(period))
	}
	return instances, nil
}
