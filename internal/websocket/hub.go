package websocket

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrClientClosed is returned when attempting to send to a closed client
var ErrClientClosed = errors.New("client is closed")

// ClientInterface defines the interface that clients must implement
type ClientInterface interface {
	ID() string
	OwnerID() uuid.UUID
	Send(data []byte) error
	Close() error
}

// Hub fans events out to the connections of each owner.
// It is safe for concurrent use.
type Hub struct {
	rooms map[uuid.UUID]map[string]ClientInterface
	mu    sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[uuid.UUID]map[string]ClientInterface),
	}
}

// Register adds a client to its owner's room
func (h *Hub) Register(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ownerID := client.OwnerID()
	if h.rooms[ownerID] == nil {
		h.rooms[ownerID] = make(map[string]ClientInterface)
	}
	h.rooms[ownerID][client.ID()] = client

	log.Debug().
		Str("owner_id", ownerID.String()).
		Str("client_id", client.ID()).
		Msg("WebSocket client registered")
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ownerID := client.OwnerID()
	clients, ok := h.rooms[ownerID]
	if !ok {
		return
	}
	if _, exists := clients[client.ID()]; !exists {
		return
	}
	delete(clients, client.ID())
	if len(clients) == 0 {
		delete(h.rooms, ownerID)
	}

	log.Debug().
		Str("owner_id", ownerID.String()).
		Str("client_id", client.ID()).
		Msg("WebSocket client unregistered")
}

// Broadcast sends an event to every connection of one owner. Send never
// blocks, so events are queued in call order. Clients that refuse the event
// are dropped from the room and closed.
func (h *Hub) Broadcast(ownerID uuid.UUID, event Event) {
	data, err := event.ToJSON()
	if err != nil {
		log.Error().
			Err(err).
			Str("owner_id", ownerID.String()).
			Str("event_type", event.Type).
			Msg("Failed to serialize event")
		return
	}

	h.mu.RLock()
	clients := h.rooms[ownerID]
	targets := make([]ClientInterface, 0, len(clients))
	for _, client := range clients {
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return
	}

	var dropped []ClientInterface
	for _, client := range targets {
		if err := client.Send(data); err != nil {
			log.Warn().
				Err(err).
				Str("owner_id", ownerID.String()).
				Str("client_id", client.ID()).
				Msg("Dropping client")
			dropped = append(dropped, client)
		}
	}
	for _, client := range dropped {
		h.Unregister(client)
		_ = client.Close()
	}

	log.Debug().
		Str("owner_id", ownerID.String()).
		Str("event_type", event.Type).
		Int("client_count", len(targets)-len(dropped)).
		Msg("Broadcast event")
}

// ClientCount returns the number of connections for an owner
func (h *Hub) ClientCount(ownerID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[ownerID])
}

// TotalClientCount returns the number of connections across all owners
func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clients := range h.rooms {
		total += len(clients)
	}
	return total
}
