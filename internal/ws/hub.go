// Package ws pushes store change events to connected presentation clients.
// The feed is read-only: clients get topic events and refetch over HTTP.
package ws

import (
	"log"
	"sync"
)

// Hub owns the set of connected clients. Membership changes and broadcasts
// flow through channels into the single Run goroutine; the mutex only
// shields the client set for reads from other goroutines.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	logger *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.attach(client)
		case client := <-h.unregister:
			h.detach(client)
		case message := <-h.broadcast:
			h.fanOut(message)
		}
	}
}

func (h *Hub) attach(client *Client) {
	if client == nil {
		return
	}
	h.mu.Lock()
	h.clients[client] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	h.logf("WS connected | total_clients=%d", total)
}

func (h *Hub) detach(client *Client) {
	if client == nil {
		return
	}
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		h.logf("WS disconnected | total_clients=%d", total)
	}
}

// fanOut delivers one message to every client. A client whose send buffer
// is full is detached rather than allowed to stall the feed.
func (h *Hub) fanOut(message []byte) {
	for _, client := range h.snapshot() {
		select {
		case client.send <- message:
		default:
			h.detach(client)
		}
	}
}

func (h *Hub) snapshot() []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		out = append(out, c)
	}
	return out
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.logf("WS broadcast dropped | reason=buffer_full")
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
