package models

import "time"

// Event represents a loggable action in a user's activity feed.
type Event struct {
	ID        string    `json:"id" bson:"_id"`
	Type      string    `json:"type" bson:"type"`   // e.g. "task.created", "auth.login"
	Level     string    `json:"level" bson:"level"` // e.g. "info", "warn"
	Message   string    `json:"message" bson:"message"`
	OwnerID   *string   `json:"ownerId,omitempty" bson:"owner_id,omitempty"` // Nullable for system-wide events
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
