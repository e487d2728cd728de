package websocket

import "github.com/google/uuid"

// EventPublisher defines the interface for publishing events to WebSocket clients
type EventPublisher interface {
	// Publish sends an event to all connections of the owner
	Publish(ownerID uuid.UUID, event Event)
}

var _ EventPublisher = (*Hub)(nil)

// Publish implements EventPublisher by broadcasting to the owner's room
func (h *Hub) Publish(ownerID uuid.UUID, event Event) {
	h.Broadcast(ownerID, event)
}

// NoOpPublisher is a publisher that does nothing (for testing or when WebSocket is disabled)
type NoOpPublisher struct{}

// Publish does nothing
func (n *NoOpPublisher) Publish(ownerID uuid.UUID, event Event) {}
