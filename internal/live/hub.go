// Package live pushes record-change notifications to connected consoles
// over WebSocket so other sessions can refetch after a mutation elsewhere.
package live

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/urmhq/urm/internal/event"
)

// ServerMessage is the wire shape pushed to clients.
type ServerMessage struct {
	Type   string `json:"type"`             // "changed" | "pong"
	Entity string `json:"entity,omitempty"` // "user"
}

// clientMessage is what clients may send; only pings are meaningful.
type clientMessage struct {
	Type string `json:"type"`
}

// Hub tracks connected clients and broadcasts change notifications. It
// implements eventbus.Handler so it can be subscribed directly.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]struct{})}
}

// HandleEvent broadcasts a "changed" message for every record mutation.
// Clients that fail the write are dropped.
func (h *Hub) HandleEvent(ctx context.Context, evt event.DomainEvent) error {
	msg := ServerMessage{Type: "changed", Entity: evt.Entity}

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := wsjson.Write(ctx, c, msg); err != nil {
			log.Printf("live: dropping client: %v", err)
			h.remove(c)
			c.CloseNow()
		}
	}
	return nil
}

// ServeHTTP upgrades to WebSocket and keeps the connection registered until
// the client goes away. The read loop only answers pings.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("live: websocket accept: %v", err)
		return
	}
	defer conn.CloseNow()

	h.add(conn)
	defer h.remove(conn)

	ctx := r.Context()
	for {
		var msg clientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			return
		}
		if msg.Type == "ping" {
			if err := wsjson.Write(ctx, conn, ServerMessage{Type: "pong"}); err != nil {
				return
			}
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) add(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = struct{}{}
}

func (h *Hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, c)
}
