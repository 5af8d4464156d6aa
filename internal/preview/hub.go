package preview

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// MessageType identifies a hub message.
type MessageType string

const (
	MessageRender MessageType = "render"
	MessageError  MessageType = "error"
)

// Message is sent to websocket clients as JSON.
type Message struct {
	Type  MessageType `json:"type"`
	Seq   int         `json:"seq,omitempty"`
	HTML  string      `json:"html,omitempty"`
	Error string      `json:"error,omitempty"`
}

type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex // serialises writes
}

func (c *client) send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub fans render snapshots out to websocket clients.
type Hub struct {
	clients  map[string]*client
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger

	// snapshot produces the greeting for a new client.
	snapshot func() Message
}

// NewHub creates a hub. snapshot may be nil.
func NewHub(logger *slog.Logger, snapshot func() Message) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[string]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // local preview only
			},
		},
		logger:   logger,
		snapshot: snapshot,
	}
}

// ServeHTTP upgrades the connection and holds it until the client leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	c := &client{id: uuid.NewString(), conn: conn}
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	h.logger.Debug("preview client connected", "client", c.id)

	if h.snapshot != nil {
		if data, err := json.Marshal(h.snapshot()); err == nil {
			c.send(data)
		}
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(c)
	h.logger.Debug("preview client disconnected", "client", c.id)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	delete(h.clients, c.id)
	h.mu.Unlock()
	if ok {
		c.conn.Close()
	}
}

// Broadcast sends msg to every client. Clients that fail a write are
// dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.send(data); err != nil {
			h.logger.Debug("dropping preview client", "client", c.id, "error", err)
			h.remove(c)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		c.conn.Close()
		delete(h.clients, id)
	}
}
