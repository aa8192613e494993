// Package api implements the HTTP client for the taskboard REST surface.
// Failures carry the sentinel errors from internal/common so callers can
// match them with errors.Is; transport faults map to common.ErrUnavailable.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/taskboard/taskboard-be/internal/common"
	"github.com/taskboard/taskboard-be/internal/models"
)

// Client is the remote surface the CLI talks to.
type Client interface {
	Signup(ctx context.Context, email, password, name string) (models.User, string, error)
	Login(ctx context.Context, email, password string) (models.User, string, error)
	Logout(ctx context.Context, token string) error
	ListTasks(ctx context.Context, token string) ([]models.Task, error)
	CreateTask(ctx context.Context, token, title, description, status string) (models.Task, error)
	UpdateTask(ctx context.Context, token, id string, patch models.TaskPatch) (models.Task, error)
	DeleteTask(ctx context.Context, token, id string) error
}

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given server base URL, e.g.
// "http://localhost:8080".
func New(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// authResponse mirrors the `{user, token}` body of signup and login.
type authResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// errorResponse mirrors the `{"error": "..."}` envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// Signup registers a new account.
func (c *HTTPClient) Signup(ctx context.Context, email, password, name string) (models.User, string, error) {
	body := map[string]string{"email": email, "password": password, "name": name}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", "", body, &resp); err != nil {
		return models.User{}, "", err
	}
	return resp.User, resp.Token, nil
}

// Login authenticates and returns the user and a fresh token.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (models.User, string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &resp); err != nil {
		return models.User{}, "", err
	}
	return resp.User, resp.Token, nil
}

// Logout revokes the token's session on the server.
func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", token, nil, nil)
}

// ListTasks fetches the caller's tasks, newest first.
func (c *HTTPClient) ListTasks(ctx context.Context, token string) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", token, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a new task.
func (c *HTTPClient) CreateTask(ctx context.Context, token, title, description, status string) (models.Task, error) {
	body := map[string]string{"title": title, "description": description, "status": status}
	var task models.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", token, body, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// UpdateTask sends a partial update for one task.
func (c *HTTPClient) UpdateTask(ctx context.Context, token, id string, patch models.TaskPatch) (models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+id, token, patch, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// DeleteTask deletes one task.
func (c *HTTPClient) DeleteTask(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, token, nil, nil)
}

// do performs one request/response cycle. out may be nil for endpoints
// that return no body.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", common.ErrUnavailable, err)
	}
	return nil
}

// decodeError turns the `{error}` envelope back into the shared taxonomy.
func decodeError(resp *http.Response) error {
	var envelope errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error == "" {
		return fmt.Errorf("%w: http status %d", common.ErrUnavailable, resp.StatusCode)
	}

	var sentinel error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		sentinel = common.ErrValidation
	case http.StatusUnauthorized:
		sentinel = common.ErrInvalidCredentials
	case http.StatusNotFound:
		sentinel = common.ErrNotFound
	case http.StatusConflict:
		sentinel = common.ErrDuplicateEmail
	default:
		return fmt.Errorf("%w: %s", common.ErrUnavailable, envelope.Error)
	}
	return fmt.Errorf("%w: %s", sentinel, envelope.Error)
}
