// Package ws streams committed board mutations to connected viewers so other
// sessions can fold moves into their local board instead of polling.
package ws

import (
	"encoding/json"
	"sync"

	"kanban_board/internal/domain"
	"kanban_board/internal/logger"
)

type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	logger.Debug("board viewer connected", "viewers", h.ClientCount())
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Publish fans a committed board event out to every connected viewer. A
// viewer that cannot keep up is dropped rather than allowed to block the
// mutation path.
func (h *Hub) Publish(ev domain.BoardEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		logger.Error("marshal board event", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			delete(h.clients, c)
			close(c.send)
			logger.Warn("dropping slow board viewer")
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
