package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/taskboard/taskboard-be/internal/models"
	"github.com/taskboard/taskboard-be/internal/services"
)

// EventHandler serves the caller's recent activity feed.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// GetRecent handles the request to get the caller's recent activity.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "could not retrieve user from token")
		return
	}

	limitStr := r.URL.Query().Get("limit")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 20 // Default limit
	}

	events, err := h.service.GetRecentEvents(r.Context(), owner, limit)
	if err != nil {
		log.Error().Err(err).Str("owner_id", owner).Msg("Failed to retrieve events")
		respondServiceError(w, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}

	respondJSON(w, http.StatusOK, events)
}
