package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/taskboard/taskboard-be/internal/auth"
	ws "github.com/taskboard/taskboard-be/internal/websocket"
)

// WebSocketHandler upgrades authenticated connections and registers them
// with the hub so that the owner's task activity is pushed to them.
type WebSocketHandler struct {
	hub *ws.Hub
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The endpoint sits behind token auth; origin filtering is left to CORS.
		return true
	},
}

// Serve handles the websocket connection request. Auth middleware has
// already validated the token, so the claims identify the owner.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "could not retrieve user from token")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(h.hub, conn, claims.UserID)
	h.hub.Register <- client

	go client.WritePump()
	go func() {
		client.ReadPump()
		h.hub.Unregister <- client
	}()
}
