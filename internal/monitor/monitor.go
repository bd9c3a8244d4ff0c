// Package monitor is an ambient observability dashboard: a websocket hub
// that broadcasts board-activity events for local debugging. It is not part
// of the simulated wire protocol; nothing in spec.md depends on it being
// present or absent.
package monitor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/srobo/sbot-simulator/internal/boards"
)

// Event is the envelope broadcast to every connected dashboard client.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Client wraps a websocket connection with a per-connection write mutex:
// gorilla/websocket requires writes not be issued concurrently on one Conn.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *Client) send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

// Hub is a broadcast hub for a set of dashboard clients. The simulator is
// local + single-operator, so a simple in-memory hub is enough.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) add(conn *websocket.Conn) *Client {
	c := &Client{conn: conn}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	_ = c.conn.Close()
}

// Broadcast marshals msg once and fans the raw bytes out to every client;
// failed sends are ignored, the read loop below will notice the disconnect.
func (h *Hub) Broadcast(event Event) {
	b, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		_ = c.send(b)
	}
}

// upgrader upgrades HTTP requests to WebSockets. CheckOrigin is permissive
// because this dashboard only ever listens on loopback.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// commandEvent is the shape broadcast for each dispatched board command.
type commandEvent struct {
	BoardClass string `json:"board_class"`
	AssetTag   string `json:"asset_tag"`
	Command    string `json:"command"`
	Reply      string `json:"reply"`
}

// Observe implements deviceserver.Observer, broadcasting every dispatched
// command and its reply to connected dashboard clients.
func (h *Hub) Observe(boardClass, assetTag, cmd string, reply boards.Reply) {
	text := reply.Text
	switch {
	case reply.NoReply:
		text = "<no reply>"
	case reply.Binary != nil:
		text = fmt.Sprintf("<%d binary bytes>", len(reply.Binary))
	}
	h.Broadcast(Event{Type: "command", Data: commandEvent{
		BoardClass: boardClass,
		AssetTag:   assetTag,
		Command:    cmd,
		Reply:      text,
	}})
}

// ServeHTTP upgrades the connection and registers it with the hub; the read
// loop exists only to detect client disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := h.add(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.remove(client)
			return
		}
	}
}
