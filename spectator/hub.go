// Package spectator serves a read-only live view of a drawing session over
// HTTP and WebSocket.
package spectator

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"arpaint/canvas"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Spectators only send control frames.
	maxMessageSize = 512

	// Pending snapshots; Publish drops beyond this.
	updateBuffer = 8
)

// Snapshot is an immutable copy of the session state handed to the hub.
type Snapshot struct {
	SessionID string    `json:"session_id"`
	Revision  uint64    `json:"revision"`
	Color     string    `json:"color"`
	Thickness int       `json:"thickness"`
	Mode      string    `json:"mode"`
	Source    string    `json:"source"`
	MoveCount int       `json:"move_count"`
	Accuracy  *int      `json:"accuracy,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`

	Moves []canvas.DrawMove `json:"-"`
	Frame []byte            `json:"-"` // PNG
}

// Hub fans snapshots out to connected spectators.
type Hub struct {
	updates    chan Snapshot
	register   chan *Client
	unregister chan *Client

	clients map[*Client]bool

	mu     sync.RWMutex
	latest Snapshot

	log *logrus.Entry
}

func NewHub(sessionID string) *Hub {
	return &Hub{
		updates:    make(chan Snapshot, updateBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		latest:     Snapshot{SessionID: sessionID},
		log:        logrus.WithFields(logrus.Fields{"component": "spectator", "session_id": sessionID}),
	}
}

// Publish hands s to the hub without blocking. It reports false when the
// hub is busy and the snapshot was dropped.
func (h *Hub) Publish(s Snapshot) bool {
	select {
	case h.updates <- s:
		return true
	default:
		h.log.WithField("revision", s.Revision).Debug("Hub busy, dropping snapshot")
		return false
	}
}

// Latest returns the most recent snapshot the hub has processed.
func (h *Hub) Latest() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// Run processes registrations and snapshots until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	h.log.Info("Hub is running...")
	defer h.log.Info("Hub is shutting down...")

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			h.log.WithField("clients", len(h.clients)).Info("Spectator connected")
			if msg, err := h.statusMessage(h.Latest()); err == nil {
				h.send(c, msg)
			}

		case c := <-h.unregister:
			if h.clients[c] {
				h.drop(c)
				h.log.WithField("clients", len(h.clients)).Info("Spectator disconnected")
			}

		case s := <-h.updates:
			h.mu.Lock()
			h.latest = s
			h.mu.Unlock()

			msg, err := h.statusMessage(s)
			if err != nil {
				h.log.WithError(err).Error("Failed to encode snapshot")
				continue
			}
			for c := range h.clients {
				h.send(c, msg)
			}
		}
	}
}

func (h *Hub) statusMessage(s Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

// send queues msg for c; a client that cannot keep up is dropped.
func (h *Hub) send(c *Client, msg []byte) {
	select {
	case c.send <- msg:
	default:
		h.log.Warn("Spectator too slow, removing client")
		h.drop(c)
	}
}

func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.send)
}
