package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startClientServer upgrades every request into a Client registered on hub
func startClientServer(t *testing.T, hub *Hub, ownerID uuid.UUID) (*websocket.Conn, chan *Client) {
	t.Helper()
	clients := make(chan *Client, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(ws, ownerID, hub)
		hub.Register(client)
		clients <- client
		go client.Serve()
	}))
	t.Cleanup(srv.Close)

	peer, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { peer.Close() })
	return peer, clients
}

func TestClient_DeliversInOrder(t *testing.T) {
	hub := NewHub()
	owner := uuid.New()
	peer, clients := startClientServer(t, hub, owner)
	<-clients

	for i := 0; i < 20; i++ {
		hub.Broadcast(owner, EntryCreated(map[string]interface{}{"seq": float64(i)}))
	}

	require.NoError(t, peer.SetReadDeadline(time.Now().Add(5*time.Second)))
	for i := 0; i < 20; i++ {
		_, raw, err := peer.ReadMessage()
		require.NoError(t, err)
		var event Event
		require.NoError(t, json.Unmarshal(raw, &event))
		assert.Equal(t, "entry.created", event.Type)
		assert.Equal(t, float64(i), event.Payload.(map[string]interface{})["seq"])
	}
}

func TestClient_PeerDisconnectUnregisters(t *testing.T) {
	hub := NewHub()
	owner := uuid.New()
	peer, clients := startClientServer(t, hub, owner)
	client := <-clients
	require.Equal(t, 1, hub.ClientCount(owner))

	require.NoError(t, peer.Close())

	assert.Eventually(t, func() bool { return hub.ClientCount(owner) == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.True(t, client.IsClosed())
	assert.ErrorIs(t, client.Send([]byte("late")), ErrClientClosed)
}

func TestClient_CloseIsIdempotent(t *testing.T) {
	hub := NewHub()
	owner := uuid.New()
	_, clients := startClientServer(t, hub, owner)
	client := <-clients

	first := client.Close()
	assert.NotPanics(t, func() { _ = client.Close() })
	assert.Equal(t, first, client.Close())
	assert.True(t, client.IsClosed())
}

func TestClient_SendReportsFullOutbox(t *testing.T) {
	client := &Client{
		id:      "queued",
		ownerID: uuid.New(),
		outbox:  make(chan []byte, 2),
		done:    make(chan struct{}),
	}

	require.NoError(t, client.Send([]byte("1")))
	require.NoError(t, client.Send([]byte("2")))
	assert.ErrorIs(t, client.Send([]byte("3")), ErrSlowClient)
}
