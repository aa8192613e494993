package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/taskboard/taskboard-be/internal/auth"
	"github.com/taskboard/taskboard-be/internal/models"
	"github.com/taskboard/taskboard-be/internal/services"
)

// TaskHandler handles HTTP requests for the task CRUD surface.
type TaskHandler struct {
	service services.TaskServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider) *TaskHandler {
	return &TaskHandler{service: service}
}

// CreateTaskPayload defines the structure for task creation requests.
type CreateTaskPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func ownerID(r *http.Request) (string, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return "", false
	}
	return claims.UserID, true
}

// List handles the request to get all of the caller's tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "could not retrieve user from token")
		return
	}

	tasks, err := h.service.ListTasks(r.Context(), owner)
	if err != nil {
		log.Error().Err(err).Str("owner_id", owner).Msg("Failed to list tasks")
		respondServiceError(w, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	respondJSON(w, http.StatusOK, tasks)
}

// Create handles the request to create a new task.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "could not retrieve user from token")
		return
	}

	var payload CreateTaskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.service.CreateTask(r.Context(), owner, payload.Title, payload.Description, payload.Status)
	if err != nil {
		log.Warn().Err(err).Str("owner_id", owner).Msg("Failed to create task")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// Update handles the request to partially update a task.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "could not retrieve user from token")
		return
	}
	id := chi.URLParam(r, "id")

	var patch models.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.service.UpdateTask(r.Context(), owner, id, patch)
	if err != nil {
		log.Warn().Err(err).Str("owner_id", owner).Str("task_id", id).Msg("Failed to update task")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// Delete handles the request to delete a task.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "could not retrieve user from token")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteTask(r.Context(), owner, id); err != nil {
		log.Warn().Err(err).Str("owner_id", owner).Str("task_id", id).Msg("Failed to delete task")
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
