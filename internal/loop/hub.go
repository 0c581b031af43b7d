package loop

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// HubEventType identifies the type of hub event.
type HubEventType int

const (
	EventServerShutdown HubEventType = iota
)

// HubEvent is a notice sent from the hub to a connected client.
type HubEvent struct {
	Type HubEventType
}

// Handle is a client's registration with the hub.
type Handle struct {
	ID     int
	Name   string
	Events chan HubEvent
}

// Hub tracks the clients of a multi-session server so they can show the
// player count and be told about shutdown. Each client runs its own game.
type Hub struct {
	mu      sync.RWMutex
	clients map[int]*Handle
	nextID  int
	logger  *log.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		clients: make(map[int]*Handle),
		nextID:  1,
		logger:  logger,
	}
}

// Register adds a client and returns its handle.
func (h *Hub) Register(name string) *Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	handle := &Handle{
		ID:     h.nextID,
		Name:   name,
		Events: make(chan HubEvent, 16),
	}
	h.nextID++
	h.clients[handle.ID] = handle
	h.logger.Debug("client registered", "id", handle.ID, "player", name, "players", len(h.clients))
	return handle
}

// Unregister removes a client and closes its event channel. Unknown ids are
// ignored.
func (h *Hub) Unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	handle, ok := h.clients[id]
	if !ok {
		return
	}
	close(handle.Events)
	delete(h.clients, id)
	h.logger.Debug("client unregistered", "id", id, "players", len(h.clients))
}

// Players returns the number of connected clients.
func (h *Hub) Players() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown notifies every client and waits until they have all left or the
// timeout passes. It reports whether every client left in time.
func (h *Hub) Shutdown(timeout time.Duration) bool {
	h.mu.RLock()
	for _, handle := range h.clients {
		select {
		case handle.Events <- HubEvent{Type: EventServerShutdown}:
		default:
		}
	}
	h.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if h.Players() == 0 {
			return true
		}
		select {
		case <-deadline:
			h.logger.Warn("clients still connected at shutdown", "players", h.Players())
			return false
		case <-ticker.C:
		}
	}
}
