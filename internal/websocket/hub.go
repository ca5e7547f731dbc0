package websocket

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/cx-tal-miterani/flight-quote/internal/airport"
	"github.com/cx-tal-miterani/flight-quote/shared/models"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub manages autocomplete sessions. Each connected client owns a
// Suggester over the shared airport list.
type Hub struct {
	airports   *airport.List
	fields     []string
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []models.Airport
	done       chan struct{}
	mu         sync.RWMutex
	upgrader   websocket.Upgrader
}

// NewHub creates a new Hub. Sessions get autocomplete on airport.DefaultFields.
// allowedOrigin restricts the Origin header of upgrade requests; "*" or
// empty allows any origin.
func NewHub(airports *airport.List, allowedOrigin string) *Hub {
	h := &Hub{
		airports:   airports,
		fields:     airport.DefaultFields,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []models.Airport, 16),
		done:       make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" || allowedOrigin == "*" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}
	return h
}

// Run starts the hub's main loop. It returns when ctx is cancelled, after
// closing every session.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				client.close()
			}
			h.mu.Unlock()
			log.Println("WebSocket: Hub stopped")
			return nil

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			log.Printf("WebSocket: Client %s registered (total: %d)", client.id, len(h.clients))
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.close()
				log.Printf("WebSocket: Client %s unregistered (remaining: %d)", client.id, len(h.clients))
			}
			h.mu.Unlock()

		case added := <-h.broadcast:
			h.mu.RLock()
			clients := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				clients = append(clients, client)
			}
			h.mu.RUnlock()

			log.Printf("WebSocket: Refreshing suggestions for %d clients", len(clients))

			for _, client := range clients {
				if !client.sendAll(client.refresh(added)) {
					h.mu.Lock()
					delete(h.clients, client)
					client.close()
					h.mu.Unlock()
				}
			}
		}
	}
}

// AirportsChanged makes every session re-evaluate the text typed in its
// fields against the current airport list.
func (h *Hub) AirportsChanged(added ...models.Airport) {
	select {
	case h.broadcast <- added:
	case <-h.done:
	}
}

// GetClientCount returns the number of connected sessions
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleWebSocket handles GET /api/suggest/ws
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket: Upgrade failed: %v", err)
		return
	}

	client := &Client{
		id:        uuid.New(),
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBufferSize),
		suggester: airport.NewSuggester(h.airports, h.fields...),
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
