// internal/websocket/hub.go
package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event is the wire format pushed to connected dashboard clients.
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub fans expiry and system events out to connected dashboard clients.
// Connections are anonymous: the notification stream carries no per-user
// data, so there is nothing to authorize.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("ws client connected", zap.Int("total", total))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.close()
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("ws client disconnected", zap.Int("total", total))

		case msg := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				client.enqueue(msg)
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast pushes an event to every connected client. Safe to call from any
// goroutine; drops the event when the hub's queue is full rather than block
// the caller (the scanner must never stall on a slow dashboard).
func (h *Hub) Broadcast(event string, payload interface{}) {
	data, err := json.Marshal(Event{Type: event, Data: payload, Timestamp: time.Now()})
	if err != nil {
		h.logger.Warn("ws event marshal failed", zap.String("event", event), zap.Error(err))
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("ws broadcast queue full, event dropped", zap.String("event", event))
	}
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.close()
	}
	h.clients = make(map[*Client]bool)
}
