// Package websocket serves games over WebSocket connections. Each connection
// plays one game: every inbound text frame is a command, every outbound frame
// is a JSON Message.
package websocket

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/text2048/internal/command"
	"github.com/vovakirdan/text2048/internal/registry"
	"github.com/vovakirdan/text2048/internal/t2048"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum command size allowed from peer.
	maxMessageSize = 512

	sendBuffer = 16
)

// Events carried by Message.
const (
	EventWelcome = "welcome"
	EventReply   = "reply"
)

// Message is sent to the client after connecting and after every command.
type Message struct {
	SessionID string          `json:"session_id"`
	Event     string          `json:"event"`
	Text      string          `json:"text"`
	Stop      bool            `json:"stop"`
	State     *t2048.Snapshot `json:"state,omitempty"`
}

// Handler upgrades HTTP requests and runs one game per connection.
type Handler struct {
	sessions *registry.Registry
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a handler whose games live in sessions.
func NewHandler(sessions *registry.Registry, logger *log.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// client is one connected player.
type client struct {
	id      string
	conn    *websocket.Conn
	session *command.Session
	send    chan Message
	logger  *log.Logger
}

// ServeHTTP handles WebSocket requests from clients. It blocks until the
// game ends or the client goes away.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	id, session := h.sessions.Create()
	defer h.sessions.Remove(id)

	c := &client{
		id:      id,
		conn:    conn,
		session: session,
		send:    make(chan Message, sendBuffer),
		logger:  h.logger,
	}

	h.logger.Info("websocket client connected", "session", id, "remote", r.RemoteAddr)
	defer h.logger.Info("websocket client disconnected", "session", id, "remote", r.RemoteAddr)

	c.send <- c.message(EventWelcome, session.Look(), false)

	go c.writePump()
	c.readPump()
}

func (c *client) message(event, text string, stop bool) Message {
	snap := c.session.Snapshot()
	return Message{
		SessionID: c.id,
		Event:     event,
		Text:      text,
		Stop:      stop,
		State:     &snap,
	}
}

// readPump runs commands from the connection until the game stops.
func (c *client) readPump() {
	defer close(c.send)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket read failed", "session", c.id, "error", err)
			}
			return
		}

		reply := c.session.Process(string(data))
		c.send <- c.message(EventReply, reply.Text, reply.Stop)
		if reply.Stop {
			return
		}
	}
}

// writePump writes queued messages and keeps the connection alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		// Unblock readPump if it is still queueing.
		for range c.send {
		}
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Game over or peer gone
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"))
				return
			}

			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
