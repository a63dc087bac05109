package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/models"
)

var wallUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WallHub is the single hub behind the live donation wall.
var WallHub = NewDonationWallHub()

// WallEvent is what wall clients receive when a donation completes.
type WallEvent struct {
	DisplayName string    `json:"displayName"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	At          time.Time `json:"at"`
}

type wallClient struct {
	hub  *DonationWallHub
	conn *websocket.Conn
	send chan []byte
}

// DonationWallHub fans confirmed donations out to every connected wall
// client. Clients are anonymous viewers; there is nothing to key them by.
type DonationWallHub struct {
	clients    map[*wallClient]bool
	broadcast  chan []byte
	register   chan *wallClient
	unregister chan *wallClient
	mu         sync.Mutex
}

func NewDonationWallHub() *DonationWallHub {
	return &DonationWallHub{
		clients:    make(map[*wallClient]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *wallClient),
		unregister: make(chan *wallClient),
	}
}

func (h *DonationWallHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			slog.Info("Donation wall client connected", "clients", len(h.clients))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow client; drop it rather than stall the hub.
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastDonation publishes a completed, recognition-opted donation to
// the wall. Anonymous gifts are announced without a name.
func (h *DonationWallHub) BroadcastDonation(d *models.Donation) {
	if d.Status != models.DonationCompleted {
		return
	}

	name := "Anonymous"
	if d.OptInRecognition {
		if d.DisplayName != "" {
			name = d.DisplayName
		} else if d.DonorName != "" {
			name = d.DonorName
		}
	}

	at := time.Now()
	if d.CompletedAt != nil {
		at = *d.CompletedAt
	}

	payload, err := json.Marshal(WallEvent{
		DisplayName: name,
		Amount:      d.Amount,
		Category:    models.CategoryLabel(d.Category),
		At:          at,
	})
	if err != nil {
		slog.Error("Failed to marshal wall event", "error", err)
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		slog.Warn("Donation wall broadcast buffer full, dropping event")
	}
}

func (c *wallClient) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

func (c *wallClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		// Wall clients never send; reading just detects disconnects.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// WallWSEndpoint upgrades a wall viewer to a websocket connection.
func WallWSEndpoint(c *gin.Context) {
	conn, err := wallUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Donation wall upgrade failed", "error", err)
		return
	}

	client := &wallClient{hub: WallHub, conn: conn, send: make(chan []byte, 8)}
	WallHub.register <- client

	go client.writePump()
	go client.readPump()
}
