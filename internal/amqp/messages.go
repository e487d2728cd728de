package amqp

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/google/uuid"
)

// ErrInvalidMessage marks a message that can never be processed
var ErrInvalidMessage = errors.New("invalid ledger change message")

// LedgerChangedMessage announces that an owner's ledger changed within one period.
// It carries no amounts; the consumer re-reads the ledger.
type LedgerChangedMessage struct {
	OwnerID   uuid.UUID `json:"ownerId"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerChangedMessage creates a message for the given owner and period
func NewLedgerChangedMessage(ownerID uuid.UUID, period domain.Period) *LedgerChangedMessage {
	return &LedgerChangedMessage{
		OwnerID:   ownerID,
		Year:      period.Year,
		Month:     period.Month,
		Timestamp: time.Now().UTC(),
	}
}

// Period returns the changed period
func (m *LedgerChangedMessage) Period() domain.Period {
	return domain.Period{Year: m.Year, Month: m.Month}
}

// Validate rejects messages without an owner or with an impossible period
func (m *LedgerChangedMessage) Validate() error {
	if m.OwnerID == uuid.Nil {
		return ErrInvalidMessage
	}
	if err := m.Period().Validate(); err != nil {
		return errors.Join(ErrInvalidMessage, err)
	}
	return nil
}

// ToJSON converts the message to JSON bytes
func (m *LedgerChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerChangedMessageFromJSON decodes and validates a message
func LedgerChangedMessageFromJSON(data []byte) (*LedgerChangedMessage, error) {
	var msg LedgerChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, errors.Join(ErrInvalidMessage, err)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
