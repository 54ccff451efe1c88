package web

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/bountyops/bountyops/internal/events"
)

// Hub broadcasts bus events to every connected websocket client. One
// subscriber channel feeds the hub; slow clients drop frames rather than
// stalling the broadcast loop.
type Hub struct {
	bus      *events.Bus
	log      *logrus.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
}

// NewHub creates a hub attached to the event bus.
func NewHub(bus *events.Bus, log *logrus.Logger) *Hub {
	return &Hub{
		bus: bus,
		log: log,
		upgrader: websocket.Upgrader{
			// The backend is a local demo; any origin may connect.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]chan []byte),
	}
}

// Run pumps events from the bus to connected clients until the bus
// subscription is closed.
func (h *Hub) Run() {
	sub := h.bus.Subscribe()
	defer h.bus.Unsubscribe(sub)

	for ev := range sub {
		frame, err := json.Marshal(ev)
		if err != nil {
			h.log.WithError(err).Warn("dropping unmarshalable event")
			continue
		}
		h.broadcast(frame)
	}
}

// Serve upgrades the request to a websocket connection and streams events
// until the client disconnects.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	send := make(chan []byte, 32)
	h.mu.Lock()
	h.clients[conn] = send
	h.mu.Unlock()

	go func() {
		for frame := range send {
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				break
			}
		}
		conn.Close()
	}()

	// Clients never send application data; the read loop only detects
	// disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(conn)
}

// broadcast queues a frame on every client that has buffer space.
func (h *Hub) broadcast(frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, send := range h.clients {
		select {
		case send <- frame:
		default:
		}
	}
}

// drop unregisters a client and closes its send channel.
func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if send, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(send)
	}
}
