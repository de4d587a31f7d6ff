// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notify delivers progress log lines to the browser session that
// started a job, over a WebSocket keyed by a client-generated session id.
package notify

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Message is the wire envelope pushed to the browser.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// logPayload is the body of a log_message event.
type logPayload struct {
	Message string `json:"message"`
}

const sendBuffer = 256

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Registry owns the session-id → push-channel map. Registration happens
// when the page opens its WebSocket; jobs look sessions up by the sid the
// browser echoes back on the generate request.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*client

	upgrader websocket.Upgrader
}

// NewRegistry returns an empty registry. The upgrader accepts any origin:
// the service is single-tenant and bound to localhost by default.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// HandleWS upgrades GET /ws?sid=... and registers the connection under the
// given session id. A second connection for the same sid replaces the
// first (last-registered wins).
func (r *Registry) HandleWS(w http.ResponseWriter, req *http.Request) {
	sid := req.URL.Query().Get("sid")
	if sid == "" {
		http.Error(w, "missing sid", http.StatusBadRequest)
		return
	}

	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	r.mu.Lock()
	if old, ok := r.clients[sid]; ok {
		close(old.send)
	}
	r.clients[sid] = c
	r.mu.Unlock()

	go c.writePump()
	go r.readPump(sid, c)
}

// Send pushes a log_message event to the session's channel. Delivery is
// fire-and-forget: an unknown sid or a full buffer drops the line and the
// job carries on.
func (r *Registry) Send(sid, text string) {
	payload, err := json.Marshal(logPayload{Message: text})
	if err != nil {
		return
	}
	data, err := json.Marshal(Message{Type: "log_message", Payload: payload})
	if err != nil {
		return
	}

	// The read lock is held across the non-blocking send: send channels
	// are only closed under the write lock, so a channel obtained here
	// cannot be closed mid-send.
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[sid]
	if !ok {
		return
	}

	select {
	case c.send <- data:
	default:
	}
}

// Sessions reports the number of registered push channels.
func (r *Registry) Sessions() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// readPump consumes (and ignores) client frames until the connection
// closes, then unregisters the session if it still owns this connection.
func (r *Registry) readPump(sid string, c *client) {
	defer func() {
		r.mu.Lock()
		if cur, ok := r.clients[sid]; ok && cur == c {
			delete(r.clients, sid)
			close(c.send)
		}
		r.mu.Unlock()
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
