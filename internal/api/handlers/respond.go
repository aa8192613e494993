package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskboard/taskboard-be/internal/common"
)

// respondJSON writes a JSON body with the given status.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError writes the `{"error": "..."}` envelope every endpoint uses
// on failure.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondServiceError maps the shared error taxonomy onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrDuplicateEmail):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, common.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
