package ws

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Hub tracks all connected clients and delivers per-user events. One
// connection per user; a new connection replaces the old one.
type Hub struct {
	// clients maps userID → client.
	clients map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client
	direct     chan *directMsg

	log zerolog.Logger
}

type directMsg struct {
	userID uuid.UUID
	data   []byte
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		direct:     make(chan *directMsg, 256),
		log:        log,
	}
}

// Run starts the Hub's main event loop. Call this in a goroutine. All
// map access happens here, so delivery never races registration.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if old, ok := h.clients[client.userID]; ok {
				close(old.send)
				close(old.done)
			}
			h.clients[client.userID] = client
			h.log.Debug().Str("user_id", client.userID.String()).Int("total", len(h.clients)).Msg("ws connected")

		case client := <-h.unregister:
			if current, ok := h.clients[client.userID]; ok && current == client {
				delete(h.clients, client.userID)
				close(client.send)
				close(client.done)
				h.log.Debug().Str("user_id", client.userID.String()).Int("total", len(h.clients)).Msg("ws disconnected")
			}

		case msg := <-h.direct:
			client, ok := h.clients[msg.userID]
			if !ok {
				continue
			}
			select {
			case client.send <- msg.data:
			default:
				// Client buffer full - disconnect
				delete(h.clients, client.userID)
				close(client.send)
				close(client.done)
			}
		}
	}
}

// SendToUser delivers an event to one user's connection, if any. A
// user without an open connection simply misses the event; state is
// always recoverable over HTTP.
func (h *Hub) SendToUser(userID uuid.UUID, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Msg("ws hub: marshal error")
		return
	}
	h.direct <- &directMsg{userID: userID, data: data}
}
