package server

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yildizm/scrollmark/internal/logger"
	"github.com/yildizm/scrollmark/internal/session"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 32
)

// eventClient is one connected websocket
type eventClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub pushes a session snapshot to every connected client on each
// transition, including every simulated progress tick.
type Hub struct {
	ctrl     *session.Controller
	render   func(session.Session) Snapshot
	upgrader websocket.Upgrader
	log      *logger.Logger

	clients    map[*eventClient]bool
	register   chan *eventClient
	unregister chan *eventClient
	done       chan struct{}
}

// NewHub creates a hub for ctrl. Connections without an Origin header, or
// from one of origins, are accepted.
func NewHub(ctrl *session.Controller, origins []string, render func(session.Session) Snapshot, log *logger.Logger) *Hub {
	h := &Hub{
		ctrl:       ctrl,
		render:     render,
		log:        log,
		clients:    make(map[*eventClient]bool),
		register:   make(chan *eventClient),
		unregister: make(chan *eventClient),
		done:       make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(origins, origin)
		},
	}
	return h
}

// Run is the hub's main loop. It returns when ctx is done, closing every
// client. It must only be called once.
func (h *Hub) Run(ctx context.Context) {
	updates, cancel := h.ctrl.Subscribe()
	defer cancel()
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			h.log.Debug("event client connected (%d total)", len(h.clients))
			if msg, ok := h.encode(h.ctrl.Snapshot()); ok {
				c.send <- msg // fresh buffer, cannot block
			}

		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
				h.log.Debug("event client disconnected (%d left)", len(h.clients))
			}

		case sess := <-updates:
			msg, ok := h.encode(sess)
			if !ok {
				continue
			}
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// a full buffer could swallow the final state; drop the
					// client instead so it reconnects and gets a fresh snapshot
					delete(h.clients, c)
					close(c.send)
					h.log.Warn("evicted slow event client (%d left)", len(h.clients))
				}
			}
		}
	}
}

func (h *Hub) encode(sess session.Session) ([]byte, bool) {
	msg, err := json.Marshal(h.render(sess))
	if err != nil {
		h.log.Error("failed to encode snapshot: %v", err)
		return nil, false
	}
	return msg, true
}

// ServeWS upgrades the request and streams snapshots until either side
// closes the connection.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed: %v", err)
		return
	}

	client := &eventClient{conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- client:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go client.writePump()
	client.readPump(h)
}

// readPump discards inbound messages; it exists to process control frames
// and to notice when the peer goes away.
func (c *eventClient) readPump(h *Hub) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *eventClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
