package notifications

import (
	"context"
	"errors"
	"sync"

	"soulverse/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const maxTotalConns = 10000

var goingAwayFrame = websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down")

// ErrConnectionLimit is returned by Register when the hub is full.
var ErrConnectionLimit = errors.New("server connection limit reached")

// Hub tracks connected comment feed clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	closed  bool
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// Register adds a connection to the hub.
func (h *Hub) Register(conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed || len(h.clients) >= maxTotalConns {
		return nil, ErrConnectionLimit
	}

	client := newClient(h, conn)
	h.clients[client] = struct{}{}
	observability.WebSocketConnections.Inc()
	return client, nil
}

// UnregisterClient removes the client and closes its send channel. It is safe to call
// more than once.
func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)
	observability.WebSocketConnections.Dec()
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastAll sends message to every connected client.
func (h *Hub) BroadcastAll(message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	data := []byte(message)
	for c := range h.clients {
		c.TrySend(data)
	}
}

// StartWiring forwards every event received on the Redis comment channel to the
// local clients.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartCommentSubscriber(ctx, h.BroadcastAll)
}

// Shutdown disconnects every client. Each client's WritePump sends the going-away
// frame once its Send channel is closed, so the connection keeps a single writer.
func (h *Hub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for client := range h.clients {
		client.closeFrame = goingAwayFrame
		delete(h.clients, client)
		close(client.Send)
		observability.WebSocketConnections.Dec()
	}
	return nil
}
