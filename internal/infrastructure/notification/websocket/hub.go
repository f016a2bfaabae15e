package websocket

import (
	"sync"

	"github.com/dreschagin/macro-watch/internal/application/dto"
	"github.com/dreschagin/macro-watch/pkg/logger"
)

// Message is the envelope pushed to connected clients
type Message struct {
	Type string      `json:"type"` // currently only "report"
	Data interface{} `json:"data"`
}

// Hub tracks WebSocket clients and pushes each finished report to all of
// them. Implements port.ReportNotifier.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *dto.ReportDTO
	register   chan *Client
	unregister chan *Client

	mu     sync.RWMutex
	logger *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *dto.ReportDTO, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     log,
	}
}

// Run processes registrations and broadcasts; run it in its own goroutine
func (h *Hub) Run() {
	h.logger.Info("WebSocket hub started")

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("Client registered", "total_clients", h.ClientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Debug("Client unregistered", "total_clients", h.ClientCount())

		case report := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- Message{Type: "report", Data: report}:
				default:
					// Slow consumer, drop the connection
					close(client.send)
					delete(h.clients, client)
					h.logger.Warn("Client channel full, disconnected")
				}
			}
			h.mu.Unlock()
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast queues a report for delivery to all connected clients
func (h *Hub) Broadcast(report *dto.ReportDTO) {
	select {
	case h.broadcast <- report:
	default:
		h.logger.Warn("Broadcast channel full, dropping report")
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
