package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType is the verb part of an event name
type EventType string

const (
	EventTypeCreated      EventType = "created"
	EventTypeUpdated      EventType = "updated"
	EventTypeDeleted      EventType = "deleted"
	EventTypeRecalculated EventType = "recalculated"
	EventTypeExported     EventType = "exported"
)

// EntityType is the noun part of an event name
type EntityType string

const (
	EntityTypeEntry     EntityType = "entry"
	EntityTypeRecurring EntityType = "recurring"
	EntityTypeBalance   EntityType = "balance"
	EntityTypeNetWorth  EntityType = "net_worth"
	EntityTypeAsset     EntityType = "asset"
	EntityTypeGoal      EntityType = "goal"
)

// Event is the message pushed to clients.
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`
	Entity    EntityType  `json:"entity"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func EntryCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeEntry, payload)
}

func EntryUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeEntry, payload)
}

func EntryDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeEntry, payload)
}

func RecurringCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeRecurring, payload)
}

func RecurringUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeRecurring, payload)
}

func RecurringDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeRecurring, payload)
}

// BalanceRecalculated creates a balance.recalculated event
func BalanceRecalculated(payload interface{}) Event {
	return NewEvent(EventTypeRecalculated, EntityTypeBalance, payload)
}

// BalanceExported creates a balance.exported event
func BalanceExported(payload interface{}) Event {
	return NewEvent(EventTypeExported, EntityTypeBalance, payload)
}

func NetWorthCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeNetWorth, payload)
}

func NetWorthUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeNetWorth, payload)
}

func NetWorthDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeNetWorth, payload)
}

func AssetCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeAsset, payload)
}

func AssetUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeAsset, payload)
}

func AssetDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeAsset, payload)
}

func GoalCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeGoal, payload)
}

func GoalUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeGoal, payload)
}

func GoalDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeGoal, payload)
}
