package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/taskboard/taskboard-be/internal/auth"
	"github.com/taskboard/taskboard-be/internal/services"
)

// AuthHandler handles HTTP requests for signup, login and logout.
type AuthHandler struct {
	service services.AuthServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// SignupPayload defines the structure for signup requests.
type SignupPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles new user registration. Responds with the new user and a
// session token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.service.Signup(r.Context(), payload.Email, payload.Password, payload.Name)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Signup failed")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Login handles user authentication and token issue.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed authentication attempt")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Logout revokes the session behind the presented token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "could not retrieve user from token")
		return
	}

	if err := h.service.Logout(r.Context(), claims.ID); err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Msg("Logout failed")
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me retrieves the currently authenticated user from the token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "could not retrieve user from token")
		return
	}

	user, err := h.service.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("User from token not found")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
