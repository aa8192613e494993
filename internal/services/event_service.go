package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taskboard/taskboard-be/internal/models"
	"github.com/taskboard/taskboard-be/internal/storage"
)

// EventServiceProvider defines the interface for activity-log services.
type EventServiceProvider interface {
	CreateEvent(ctx context.Context, eventType, level, message string, ownerID *string) error
	GetRecentEvents(ctx context.Context, ownerID string, limit int) ([]models.Event, error)
}

// EventService records and serves per-owner activity events.
type EventService struct {
	store storage.Store
}

// NewEventService creates a new EventService.
func NewEventService(store storage.Store) *EventService {
	return &EventService{store: store}
}

// CreateEvent logs a new event.
func (s *EventService) CreateEvent(ctx context.Context, eventType, level, message string, ownerID *string) error {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Level:     level,
		Message:   message,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}
	return s.store.InsertEvent(ctx, event)
}

// GetRecentEvents retrieves the owner's most recent events.
func (s *EventService) GetRecentEvents(ctx context.Context, ownerID string, limit int) ([]models.Event, error) {
	return s.store.ListRecentEventsByOwner(ctx, ownerID, limit)
}
