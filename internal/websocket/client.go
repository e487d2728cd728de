package websocket

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Connection timing. Pings go out well inside the idle window so a healthy
// peer always refreshes its read deadline in time.
const (
	writeTimeout  = 10 * time.Second
	idleTimeout   = 60 * time.Second
	pingInterval  = idleTimeout / 2
	inboundLimit  = 1024
	outboxSize    = 64
	closeDeadline = time.Second
)

// ErrSlowClient is returned by Send when the outbox is full
var ErrSlowClient = errors.New("client outbox is full")

// Client is one owner's push-only WebSocket connection.
// Events are queued on an outbox and written by a single writer goroutine,
// so they reach the peer in the order Send accepted them.
type Client struct {
	id      string
	ownerID uuid.UUID
	ws      *websocket.Conn
	hub     *Hub

	outbox    chan []byte
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// NewClient wraps an upgraded connection for ownerID
func NewClient(ws *websocket.Conn, ownerID uuid.UUID, hub *Hub) *Client {
	return &Client{
		id:      uuid.NewString(),
		ownerID: ownerID,
		ws:      ws,
		hub:     hub,
		outbox:  make(chan []byte, outboxSize),
		done:    make(chan struct{}),
	}
}

func (c *Client) ID() string         { return c.id }
func (c *Client) OwnerID() uuid.UUID { return c.ownerID }

// Send queues data without blocking. A closed client returns ErrClientClosed
// and a client whose outbox is full returns ErrSlowClient.
func (c *Client) Send(data []byte) error {
	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}

	select {
	case c.outbox <- data:
		return nil
	case <-c.done:
		return ErrClientClosed
	default:
		return ErrSlowClient
	}
}

// Close stops both loops and releases the connection. Only the first call
// has any effect.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		c.closeErr = c.ws.Close()
	})
	return c.closeErr
}

// IsClosed reports whether Close has been called
func (c *Client) IsClosed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Serve runs the connection until the peer goes away or the client is closed.
// It blocks, so callers start it on its own goroutine after registering.
func (c *Client) Serve() {
	defer func() {
		if c.hub != nil {
			c.hub.Unregister(c)
		}
		c.Close()
	}()

	go c.writeLoop()
	c.readLoop()
}

// readLoop discards inbound frames and keeps the idle deadline fresh on pong
func (c *Client) readLoop() {
	c.ws.SetReadLimit(inboundLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(idleTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(idleTimeout))
	})

	for {
		if _, _, err := c.ws.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().
					Err(err).
					Str("client_id", c.id).
					Str("owner_id", c.ownerID.String()).
					Msg("WebSocket closed unexpectedly")
			}
			return
		}
	}
}

func (c *Client) writeLoop() {
	pings := time.NewTicker(pingInterval)
	defer pings.Stop()
	defer c.Close()

	for {
		select {
		case <-c.done:
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeDeadline))
			return
		case data := <-c.outbox:
			if err := c.write(websocket.TextMessage, data); err != nil {
				log.Warn().
					Err(err).
					Str("client_id", c.id).
					Str("owner_id", c.ownerID.String()).
					Msg("WebSocket write failed")
				return
			}
		case <-pings.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) write(messageType int, data []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.ws.WriteMessage(messageType, data)
}
