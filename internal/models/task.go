package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/taskboard/taskboard-be/internal/common"
)

// TaskStatus enumerates the allowed states of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// ParseStatus validates a raw status string. The empty string maps to the
// default status, pending.
func ParseStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case "":
		return StatusPending, nil
	case StatusPending, StatusInProgress, StatusCompleted:
		return TaskStatus(s), nil
	}
	return "", fmt.Errorf("%w: unknown status %q", common.ErrValidation, s)
}

// Task represents a single to-do item owned by exactly one user.
type Task struct {
	ID          string     `json:"id" bson:"_id"`
	OwnerID     string     `json:"-" bson:"owner_id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Status      TaskStatus `json:"status" bson:"status"`
	CreatedAt   time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updated_at"`
}

// Validate checks the required fields. Title and description must be
// non-empty after trimming; the trimmed values are written back.
func (t *Task) Validate() error {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	if t.Title == "" {
		return fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if t.Description == "" {
		return fmt.Errorf("%w: description is required", common.ErrValidation)
	}
	return nil
}

// TaskPatch carries a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}
