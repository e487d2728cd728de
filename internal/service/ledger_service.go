package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/util"
	"github.com/dafibh/tally/tally-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// LedgerService handles income and expense entries
type LedgerService struct {
	ledgerRepo     domain.LedgerRepository
	recurringRepo  domain.RecurringRepository
	eventPublisher websocket.EventPublisher
	notifier       LedgerChangeNotifier
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(ledgerRepo domain.LedgerRepository, recurringRepo domain.RecurringRepository) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo, recurringRepo: recurringRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *LedgerService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// SetChangeNotifier sets the notifier used to request asynchronous recalculation
func (s *LedgerService) SetChangeNotifier(notifier LedgerChangeNotifier) {
	s.notifier = notifier
}

// EntryInput holds the fields for creating or replacing an entry
type EntryInput struct {
	Kind            domain.EntryKind
	Name            string
	Amount          decimal.Decimal
	Category        string
	EntryDate       *time.Time
	Description     *string
	RecurringRuleID *int64
}

func (s *LedgerService) publishEvent(ownerID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(ownerID, event)
	}
}

// notifyChanged is best-effort: the balance can always be recalculated on demand
func (s *LedgerService) notifyChanged(ownerID uuid.UUID, entries ...*domain.LedgerEntry) {
	if s.notifier == nil {
		return
	}
	for _, p := range affectedPeriods(entries...) {
		if err := s.notifier.NotifyLedgerChanged(context.Background(), ownerID, p); err != nil {
			log.Warn().Err(err).
				Str("owner_id", ownerID.String()).
				Int("year", p.Year).
				Int("month", p.Month).
				Msg("Failed to publish ledger change")
		}
	}
}

func validateEntryInput(input EntryInput) (*domain.LedgerEntry, error) {
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

	if input.EntryDate == nil || input.EntryDate.IsZero() {
		return nil, domain.ErrDateRequired
	}

	description, err := trimDescription(input.Description)
	if err != nil {
		return nil, err
	}

	return &domain.LedgerEntry{
		Kind:            input.Kind,
		Name:            name,
		Amount:          input.Amount,
		Category:        category,
		EntryDate:       util.DateOnly(*input.EntryDate),
		Description:     description,
		RecurringRuleID: input.RecurringRuleID,
	}, nil
}

// trimDescription drops blank descriptions and enforces the length limit
func trimDescription(description *string) (*string, error) {
	if description == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) > domain.MaxDescriptionLength {
		return nil, domain.ErrDescriptionTooLong
	}
	return &trimmed, nil
}

// checkRuleLink ensures a linked rule exists and belongs to the owner
func (s *LedgerService) checkRuleLink(ownerID uuid.UUID, ruleID *int64) error {
	if ruleID == nil {
		return nil
	}
	if _, err := s.recurringRepo.GetByID(ownerID, *ruleID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrRuleNotFound
		}
		return err
	}
	return nil
}

// CreateEntry validates and records a new entry
func (s *LedgerService) CreateEntry(ownerID uuid.UUID, input EntryInput) (*domain.LedgerEntry, error) {
	entry, err := validateEntryInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.checkRuleLink(ownerID, entry.RecurringRuleID); err != nil {
		return nil, err
	}
	entry.OwnerID = ownerID

	created, err := s.ledgerRepo.Create(entry)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ownerID, websocket.EntryCreated(created))
	s.notifyChanged(ownerID, created)
	return created, nil
}

// GetEntry retrieves one entry
func (s *LedgerService) GetEntry(ownerID uuid.UUID, id int64) (*domain.LedgerEntry, error) {
	return s.ledgerRepo.GetByID(ownerID, id)
}

// ListEntries returns the owner's entries, newest first
func (s *LedgerService) ListEntries(ownerID uuid.UUID, filters *domain.LedgerFilters) ([]*domain.LedgerEntry, error) {
	if filters != nil && filters.Kind != nil && !filters.Kind.Valid() {
		return nil, domain.ErrInvalidEntryKind
	}
	return s.ledgerRepo.ListByOwner(ownerID, filters)
}

// UpdateEntry replaces an entry's fields. Both the old and new period are reported as changed.
func (s *LedgerService) UpdateEntry(ownerID uuid.UUID, id int64, input EntryInput) (*domain.LedgerEntry, error) {
	entry, err := validateEntryInput(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.ledgerRepo.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkRuleLink(ownerID, entry.RecurringRuleID); err != nil {
		return nil, err
	}
	previous := *existing

	entry.ID = id
	entry.OwnerID = ownerID
	updated, err := s.ledgerRepo.Update(entry)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ownerID, websocket.EntryUpdated(updated))
	s.notifyChanged(ownerID, &previous, updated)
	return updated, nil
}

// DeleteEntry removes an entry
func (s *LedgerService) DeleteEntry(ownerID uuid.UUID, id int64) error {
	existing, err := s.ledgerRepo.GetByID(ownerID, id)
	if err != nil {
		return err
	}
	if err := s.ledgerRepo.Delete(ownerID, id); err != nil {
		return err
	}

	s.publishEvent(ownerID, websocket.EntryDeleted(map[string]interface{}{"id": id}))
	s.notifyChanged(ownerID, existing)
	return nil
}
