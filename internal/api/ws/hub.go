package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/your-org/sentinel/internal/models"
	"github.com/your-org/sentinel/internal/observability"
	"github.com/your-org/sentinel/pkg/dto"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Sink receives what ingest clients push over the socket channel.
type Sink interface {
	HandleLandmarks(ctx context.Context, clientID string, frame models.LandmarkFrame) error
	HandleFrame(ctx context.Context, clientID string, jpeg []byte) error
}

// Client represents a connected viewer.
type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	clientID string // optional ingest-source filter
}

// Hub maintains viewer clients and broadcasts events to them. Ingest
// connections write into the Sink and are not tracked as viewers.
type Hub struct {
	sink       Sink
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub(sink Sink) *Hub {
	return &Hub{
		sink:       sink,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub event loop. Call this in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			observability.WSConnections.WithLabelValues("viewer").Inc()
			slog.Debug("viewer connected", "filter", client.clientID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				observability.WSConnections.WithLabelValues("viewer").Dec()
				slog.Debug("viewer disconnected")
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				// If client has a source filter, check it
				if client.clientID != "" {
					var evt dto.WSEvent
					if err := json.Unmarshal(message, &evt); err == nil {
						if evt.ClientID != client.clientID {
							continue
						}
					}
				}

				select {
				case client.send <- message:
				default:
					// Slow viewer, drop it
					delete(h.clients, client)
					close(client.send)
					observability.WSConnections.WithLabelValues("viewer").Dec()
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastEvent sends an event to all connected viewers.
func (h *Hub) BroadcastEvent(event *dto.WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("marshal ws event", "error", err)
		return
	}
	h.broadcast <- data
}

// HandleViewer upgrades a viewer connection. Viewers only receive; the loop
// reading from them exists to detect disconnection.
func (h *Hub) HandleViewer(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("ws upgrade failed", "error", err)
		return
	}

	client := &Client{
		conn:     conn,
		send:     make(chan []byte, 64),
		clientID: c.Query("client_id"),
	}

	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

// HandleIngest upgrades an ingest connection: JSON text messages carry
// landmark frames, binary messages carry raw JPEG snapshots.
func (h *Hub) HandleIngest(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("ws upgrade failed", "error", err)
		return
	}

	clientID := c.Query("client_id")
	if clientID == "" {
		clientID = uuid.New().String()
	}

	observability.WSConnections.WithLabelValues("ingest").Inc()
	slog.Info("ingest client connected", "client_id", clientID)

	go func() {
		defer func() {
			conn.Close()
			observability.WSConnections.WithLabelValues("ingest").Dec()
			slog.Info("ingest client disconnected", "client_id", clientID)
		}()

		// The request context dies with the handler; the connection outlives it.
		ctx := context.Background()
		for {
			msgType, data, err := conn.ReadMessage()
			if err != nil {
				return
			}

			switch msgType {
			case websocket.TextMessage:
				var frame models.LandmarkFrame
				if err := json.Unmarshal(data, &frame); err != nil {
					slog.Warn("bad landmark message", "client_id", clientID, "error", err)
					continue
				}
				if err := h.sink.HandleLandmarks(ctx, clientID, frame); err != nil {
					slog.Warn("handle landmarks", "client_id", clientID, "error", err)
				}

			case websocket.BinaryMessage:
				if err := h.sink.HandleFrame(ctx, clientID, data); err != nil {
					slog.Warn("handle frame", "client_id", clientID, "error", err)
				}
			}
		}
	}()
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
