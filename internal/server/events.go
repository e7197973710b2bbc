package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	clientBuffer = 64
	writeWait    = 10 * time.Second
)

// IconEvent is sent to every /v1/events client when an icon finishes
// loading.
type IconEvent struct {
	Type     string `json:"type"`
	NodeID   string `json:"nodeId"`
	IconData string `json:"iconData"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// hub fans icon events out to websocket clients. Slow clients drop
// events rather than stall the load queue.
type hub struct {
	logger *log.Logger

	mu      sync.Mutex
	clients map[string]*client
}

func newHub(logger *log.Logger) *hub {
	return &hub{logger: logger, clients: map[string]*client{}}
}

func (h *hub) iconLoaded(nodeID string, data []byte) {
	h.broadcast(IconEvent{Type: "icon", NodeID: nodeID, IconData: string(data)})
}

func (h *hub) broadcast(evt IconEvent) {
	msg, err := json.Marshal(evt)
	if err != nil {
		h.logger.Warn("encode event", "err", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("dropping event for slow client", "client", c.id, "node", evt.NodeID)
		}
	}
}

func (h *hub) add(conn *websocket.Conn) *client {
	c := &client{id: uuid.NewString(), conn: conn, send: make(chan []byte, clientBuffer)}
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	h.logger.Debug("events client connected", "client", c.id)
	return c
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
	h.mu.Unlock()
	h.logger.Debug("events client disconnected", "client", c.id)
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", "err", err)
		return
	}
	c := s.hub.add(conn)

	// Clients never send anything meaningful; reading detects the close.
	go func() {
		defer s.hub.remove(c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer conn.Close()
	for msg := range c.send {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			s.logger.Debug("websocket write", "client", c.id, "err", err)
			return
		}
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
