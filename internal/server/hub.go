package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/nameplate/pkg/arrange"
	"github.com/matzehuels/nameplate/pkg/observability"
)

const (
	pongWait   = 30 * time.Second
	pingPeriod = (pongWait * 9) / 10 // send ping slightly before timeout
	writeWait  = 10 * time.Second

	clientBuffer    = 16
	broadcastBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// message is one feed entry sent to browsers.
type message struct {
	Type    string        `json:"type"`
	BoardID string        `json:"board_id"`
	Frame   arrange.Frame `json:"frame"`
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

// Hub fans controller frames out to every connected websocket client.
// Sends never block: a client whose buffer is full is dropped.
type Hub struct {
	boardID  string
	snapshot func() arrange.Frame
	logger   *log.Logger

	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	done       chan struct{}
}

// NewHub creates a hub for one board. snapshot supplies the frame sent
// to each client when it connects.
func NewHub(boardID string, snapshot func() arrange.Frame, logger *log.Logger) *Hub {
	return &Hub{
		boardID:    boardID,
		snapshot:   snapshot,
		logger:     logger,
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
	}
}

// Run serves the hub until ctx is done, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for c := range h.clients {
			close(c.send)
			delete(h.clients, c)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.clients[c] = true
			if data, err := h.encode(h.snapshot()); err == nil {
				c.send <- data
			}
			h.logger.Debug("Feed client connected", "client", c.id, "clients", len(h.clients))
			observability.HTTP().OnFeed(ctx, "connect", len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.logger.Debug("Feed client disconnected", "client", c.id, "clients", len(h.clients))
				observability.HTTP().OnFeed(ctx, "disconnect", len(h.clients))
			}

		case data := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
					delete(h.clients, c)
					close(c.send)
					h.logger.Warn("Feed client too slow, dropped", "client", c.id)
					observability.HTTP().OnFeed(ctx, "drop", len(h.clients))
				}
			}
		}
	}
}

// Publish queues f for every client. It is a controller listener and never
// blocks; frames are dropped when the queue is full.
func (h *Hub) Publish(f arrange.Frame) {
	data, err := h.encode(f)
	if err != nil {
		h.logger.Error("Encode frame", "seq", f.Seq, "err", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("Feed queue full, frame dropped", "seq", f.Seq)
	}
}

func (h *Hub) encode(f arrange.Frame) ([]byte, error) {
	return json.Marshal(message{Type: "frame", BoardID: h.boardID, Frame: f})
}

// ServeWS upgrades the request and attaches the connection to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("Websocket upgrade failed", "err", err)
		return
	}
	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, clientBuffer),
		hub:  h,
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}
	go c.write()
	go c.read()
}

// read discards client messages and enforces the pong deadline.
func (c *client) read() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) write() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
