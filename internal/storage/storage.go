// Package storage defines the persistence backend abstraction. Two
// implementations exist: an embedded SQLite store and a MongoDB store.
// The backend is chosen once, at configuration time.
package storage

import (
	"context"
	"time"

	"github.com/taskboard/taskboard-be/internal/models"
)

// Store is the durable backend for users, tasks, sessions and events.
//
// Lookups that miss return common.ErrNotFound. InsertUser returns
// common.ErrDuplicateEmail when the email is already registered. Task
// operations taking an ownerID never see or touch another owner's tasks.
type Store interface {
	// Users
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	InsertUser(ctx context.Context, user models.User) error

	// Tasks
	ListTasksByOwner(ctx context.Context, ownerID string) ([]models.Task, error)
	GetTaskByID(ctx context.Context, ownerID, id string) (models.Task, error)
	InsertTask(ctx context.Context, task models.Task) error
	UpdateTask(ctx context.Context, task models.Task) error
	DeleteTask(ctx context.Context, ownerID, id string) error

	// Sessions
	InsertSession(ctx context.Context, session models.Session) error
	FindSessionByTokenID(ctx context.Context, tokenID string) (models.Session, error)
	DeleteSessionByTokenID(ctx context.Context, tokenID string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)

	// Events
	InsertEvent(ctx context.Context, event models.Event) error
	ListRecentEventsByOwner(ctx context.Context, ownerID string, limit int) ([]models.Event, error)
	DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error)

	Close(ctx context.Context) error
}
