package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/taskboard/taskboard-be/internal/models"
	"github.com/taskboard/taskboard-be/internal/storage"
)

// Notifier pushes a domain change to an owner's connected clients.
// Satisfied by the websocket hub.
type Notifier interface {
	NotifyOwner(ownerID, action string, payload interface{})
}

// TaskServiceProvider defines the interface for task services. Every
// operation is scoped to one owner; a task belonging to someone else is
// indistinguishable from a missing one.
type TaskServiceProvider interface {
	ListTasks(ctx context.Context, ownerID string) ([]models.Task, error)
	CreateTask(ctx context.Context, ownerID, title, description, status string) (models.Task, error)
	UpdateTask(ctx context.Context, ownerID, id string, patch models.TaskPatch) (models.Task, error)
	DeleteTask(ctx context.Context, ownerID, id string) error
}

// TaskService provides business logic for task management.
type TaskService struct {
	store    storage.Store
	eventSvc EventServiceProvider
	notifier Notifier
}

// NewTaskService creates a new TaskService.
func NewTaskService(store storage.Store, eventSvc EventServiceProvider, notifier Notifier) *TaskService {
	return &TaskService{store: store, eventSvc: eventSvc, notifier: notifier}
}

// ListTasks returns all tasks owned by the caller, most recently created
// first.
func (s *TaskService) ListTasks(ctx context.Context, ownerID string) ([]models.Task, error) {
	return s.store.ListTasksByOwner(ctx, ownerID)
}

// CreateTask validates and stores a new task. An empty status defaults to
// pending; createdAt and updatedAt start out equal.
func (s *TaskService) CreateTask(ctx context.Context, ownerID, title, description, status string) (models.Task, error) {
	parsedStatus, err := models.ParseStatus(status)
	if err != nil {
		return models.Task{}, err
	}

	now := time.Now().UTC()
	task := models.Task{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Status:      parsedStatus,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := task.Validate(); err != nil {
		return models.Task{}, err
	}

	if err := s.store.InsertTask(ctx, task); err != nil {
		return models.Task{}, err
	}

	s.announce(ctx, ownerID, "task.created", fmt.Sprintf("Created task %q", task.Title), task)
	return task, nil
}

// UpdateTask merges the supplied fields over the stored record and
// refreshes updatedAt. Unset patch fields are left untouched.
func (s *TaskService) UpdateTask(ctx context.Context, ownerID, id string, patch models.TaskPatch) (models.Task, error) {
	task, err := s.store.GetTaskByID(ctx, ownerID, id)
	if err != nil {
		return models.Task{}, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		parsedStatus, err := models.ParseStatus(*patch.Status)
		if err != nil {
			return models.Task{}, err
		}
		task.Status = parsedStatus
	}
	if err := task.Validate(); err != nil {
		return models.Task{}, err
	}

	// updatedAt must move strictly forward even within timer resolution.
	now := time.Now().UTC()
	if !now.After(task.UpdatedAt) {
		now = task.UpdatedAt.Add(time.Nanosecond)
	}
	task.UpdatedAt = now

	if err := s.store.UpdateTask(ctx, task); err != nil {
		return models.Task{}, err
	}

	s.announce(ctx, ownerID, "task.updated", fmt.Sprintf("Updated task %q", task.Title), task)
	return task, nil
}

// DeleteTask removes a task unconditionally. A second delete of the same id
// reports common.ErrNotFound.
func (s *TaskService) DeleteTask(ctx context.Context, ownerID, id string) error {
	task, err := s.store.GetTaskByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteTask(ctx, ownerID, id); err != nil {
		return err
	}

	s.announce(ctx, ownerID, "task.deleted", fmt.Sprintf("Deleted task %q", task.Title), map[string]string{"id": id})
	return nil
}

// announce records an activity event and pushes the change to the owner's
// connected clients. Neither is allowed to fail the originating mutation.
func (s *TaskService) announce(ctx context.Context, ownerID, eventType, message string, payload interface{}) {
	if err := s.eventSvc.CreateEvent(ctx, eventType, "info", message, &ownerID); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record task event")
	}
	if s.notifier != nil {
		s.notifier.NotifyOwner(ownerID, eventType, payload)
	}
}
