package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"trading-mind-backend/internal/events"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin is enforced by the CORS middleware; the handshake itself
		// already passed JWT auth.
		return true
	},
}

// WSClient is one connected websocket consumer
type WSClient struct {
	conn   *websocket.Conn
	send   chan []byte
	userID string
	hub    *WSHub
}

// WSHub fans system events out to connected websocket clients. Each
// client only receives events for its own user.
type WSHub struct {
	clients    map[*WSClient]bool
	register   chan *WSClient
	unregister chan *WSClient
	broadcast  chan events.Event
	mu         sync.RWMutex
	logger     zerolog.Logger
}

// NewWSHub creates a new websocket hub
func NewWSHub(logger zerolog.Logger) *WSHub {
	return &WSHub{
		clients:    make(map[*WSClient]bool),
		register:   make(chan *WSClient),
		unregister: make(chan *WSClient),
		broadcast:  make(chan events.Event, 64),
		logger:     logger.With().Str("component", "websocket").Logger(),
	}
}

// Run processes hub registration and broadcast messages. Call in a
// goroutine.
func (h *WSHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug().Str("user_id", client.userID).Int("clients", len(h.clients)).Msg("Client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Debug().Str("user_id", client.userID).Msg("Client disconnected")

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				h.logger.Error().Err(err).Msg("Failed to marshal event")
				continue
			}
			h.mu.RLock()
			for client := range h.clients {
				// Per-user events go only to that user's connections;
				// events without a user (e.g. errors) go to everyone.
				if event.UserID != "" && event.UserID != client.userID {
					continue
				}
				select {
				case client.send <- data:
				default:
					// Slow consumer, drop the message
				}
			}
			h.mu.RUnlock()
		}
	}
}

// HandleEvent enqueues a system event for broadcast. Registered with the
// event bus via SubscribeAll.
func (h *WSHub) HandleEvent(event events.Event) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn().Str("type", string(event.Type)).Msg("Broadcast queue full, dropping event")
	}
}

// handleWebSocket upgrades the connection and streams the user's events
func (s *Server) handleWebSocket(c *gin.Context) {
	userID := s.getUserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := &WSClient{
		conn:   conn,
		send:   make(chan []byte, 32),
		userID: userID,
		hub:    s.wsHub,
	}

	s.wsHub.register <- client

	go client.writePump()
	go client.readPump()
}

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second
)

// writePump sends queued messages and periodic pings to the client
func (c *WSClient) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound messages and detects disconnects
func (c *WSClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
