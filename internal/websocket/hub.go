package websocket

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// Hub maintains the set of active clients and routes task and auth
// activity to the owner each client authenticated as.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// A map of owner IDs to the set of clients connected as that owner.
	subscriptions map[string]map[*Client]bool

	notify chan ownerMessage
}

type ownerMessage struct {
	ownerID string
	data    []byte
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
		notify:        make(chan ownerMessage, 64),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.addSubscription(client)
			log.Info().Int("total_clients", len(h.clients)).Str("owner_id", client.OwnerID).Msg("Client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeSubscription(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case msg := <-h.notify:
			h.broadcastTo(msg.ownerID, msg.data)
		}
	}
}

// NotifyOwner sends a message to all clients connected as the given owner.
// It never blocks the caller; messages beyond the channel's buffer are
// dropped.
func (h *Hub) NotifyOwner(ownerID, action string, payload interface{}) {
	data, err := json.Marshal(Message{Action: action, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("Failed to encode websocket message")
		return
	}
	select {
	case h.notify <- ownerMessage{ownerID: ownerID, data: data}:
	default:
		log.Warn().Str("action", action).Msg("Notify channel full, dropping websocket message")
	}
}

func (h *Hub) broadcastTo(ownerID string, message []byte) {
	if subs, ok := h.subscriptions[ownerID]; ok {
		for client := range subs {
			select {
			case client.Send <- message:
			default:
				close(client.Send)
				delete(h.clients, client)
				delete(h.subscriptions[ownerID], client)
			}
		}
	}
}

func (h *Hub) addSubscription(client *Client) {
	if h.subscriptions[client.OwnerID] == nil {
		h.subscriptions[client.OwnerID] = make(map[*Client]bool)
	}
	h.subscriptions[client.OwnerID][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	if subs, ok := h.subscriptions[client.OwnerID]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscriptions, client.OwnerID)
		}
	}
}
