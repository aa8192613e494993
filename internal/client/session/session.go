// Package session holds the client-side session controller: a small state
// machine tracking who is signed in, fed by the auth API and persisted so
// that a later process start resumes the session.
package session

import (
	"context"
	"errors"

	"github.com/taskboard/taskboard-be/internal/common"
	"github.com/taskboard/taskboard-be/internal/models"
)

// State enumerates the controller's states.
type State int

const (
	Uninitialized State = iota
	Loading
	Authenticated
	Anonymous
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "uninitialized"
	}
}

// AuthAPI is the slice of the remote surface the controller needs.
type AuthAPI interface {
	Signup(ctx context.Context, email, password, name string) (models.User, string, error)
	Login(ctx context.Context, email, password string) (models.User, string, error)
	Logout(ctx context.Context, token string) error
}

// Controller manages the current session for a single client process. It
// performs no business validation; the auth API decides what succeeds.
// It is not safe for concurrent use: the view layer issues one action at a
// time and awaits the result.
type Controller struct {
	api   AuthAPI
	store *FileStore

	state   State
	user    models.User
	token   string
	lastErr error
}

// NewController creates a controller in the Uninitialized state.
func NewController(api AuthAPI, store *FileStore) *Controller {
	return &Controller{api: api, store: store, state: Uninitialized}
}

// State reports the current state.
func (c *Controller) State() State { return c.state }

// IsAuthenticated reports whether a user is signed in.
func (c *Controller) IsAuthenticated() bool { return c.state == Authenticated }

// User returns the signed-in user. Zero value while not authenticated.
func (c *Controller) User() models.User { return c.user }

// Token returns the active bearer token, or "" while not authenticated.
func (c *Controller) Token() string { return c.token }

// Err returns the error carried by the last failed transition, cleared by
// the next successful one.
func (c *Controller) Err() error { return c.lastErr }

// Rehydrate resumes a persisted session. With a stored session pointer the
// controller goes straight to Authenticated; otherwise it settles on
// Anonymous.
func (c *Controller) Rehydrate() {
	c.state = Loading
	user, token, err := c.store.Load()
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			c.lastErr = err
		}
		c.state = Anonymous
		return
	}
	c.user = user
	c.token = token
	c.lastErr = nil
	c.state = Authenticated
}

// Login authenticates and persists the session pointer. On failure the
// controller lands on Anonymous carrying the error, and the error is also
// returned so the caller can react.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	return c.transition(func() (models.User, string, error) {
		return c.api.Login(ctx, email, password)
	})
}

// Signup registers a new account and signs it in.
func (c *Controller) Signup(ctx context.Context, email, password, name string) error {
	return c.transition(func() (models.User, string, error) {
		return c.api.Signup(ctx, email, password, name)
	})
}

func (c *Controller) transition(action func() (models.User, string, error)) error {
	c.state = Loading
	user, token, err := action()
	if err != nil {
		c.user = models.User{}
		c.token = ""
		c.lastErr = err
		c.state = Anonymous
		return err
	}

	if err := c.store.Save(user, token); err != nil {
		c.user = models.User{}
		c.token = ""
		c.lastErr = err
		c.state = Anonymous
		return err
	}

	c.user = user
	c.token = token
	c.lastErr = nil
	c.state = Authenticated
	return nil
}

// Logout clears the persisted session pointer and transitions to Anonymous
// immediately. The server-side revocation is best-effort; its failure does
// not keep the client signed in, but is returned for reporting.
func (c *Controller) Logout(ctx context.Context) error {
	token := c.token

	c.user = models.User{}
	c.token = ""
	c.lastErr = nil
	c.state = Anonymous

	if err := c.store.Clear(); err != nil {
		return err
	}
	if token != "" {
		if err := c.api.Logout(ctx, token); err != nil {
			return err
		}
	}
	return nil
}
