package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard-be/internal/common"
	"github.com/taskboard/taskboard-be/internal/models"
)

type fakeAuthAPI struct {
	user models.User
	err  error

	logoutCalls  int
	logoutTokens []string
}

func (f *fakeAuthAPI) Signup(ctx context.Context, email, password, name string) (models.User, string, error) {
	if f.err != nil {
		return models.User{}, "", f.err
	}
	return f.user, "token-signup", nil
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (models.User, string, error) {
	if f.err != nil {
		return models.User{}, "", f.err
	}
	return f.user, "token-login", nil
}

func (f *fakeAuthAPI) Logout(ctx context.Context, token string) error {
	f.logoutCalls++
	f.logoutTokens = append(f.logoutTokens, token)
	return f.err
}

func newTestController(t *testing.T, api *fakeAuthAPI) (*Controller, *FileStore) {
	t.Helper()
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	return NewController(api, store), store
}

func TestController_StartsUninitialized(t *testing.T) {
	c, _ := newTestController(t, &fakeAuthAPI{})
	require.Equal(t, Uninitialized, c.State())
	require.False(t, c.IsAuthenticated())
}

func TestLogin_SuccessAuthenticatesAndPersists(t *testing.T) {
	api := &fakeAuthAPI{user: models.User{ID: "u1", Name: "Ann", Email: "a@x.com"}}
	c, store := newTestController(t, api)

	require.NoError(t, c.Login(context.Background(), "a@x.com", "pw"))
	require.Equal(t, Authenticated, c.State())
	require.Equal(t, "u1", c.User().ID)
	require.Equal(t, "token-login", c.Token())
	require.NoError(t, c.Err())

	// The session pointer survives on disk.
	user, token, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
	require.Equal(t, "token-login", token)
}

func TestLogin_FailureLandsAnonymousCarryingError(t *testing.T) {
	wantErr := errors.New("invalid credentials")
	c, store := newTestController(t, &fakeAuthAPI{err: wantErr})

	err := c.Login(context.Background(), "a@x.com", "nope")
	require.ErrorIs(t, err, wantErr)
	require.Equal(t, Anonymous, c.State())
	require.ErrorIs(t, c.Err(), wantErr)
	require.Empty(t, c.Token())

	// Nothing was persisted.
	_, _, err = store.Load()
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSignup_SuccessAuthenticates(t *testing.T) {
	api := &fakeAuthAPI{user: models.User{ID: "u1", Name: "Ann"}}
	c, _ := newTestController(t, api)

	require.NoError(t, c.Signup(context.Background(), "a@x.com", "pw", "Ann"))
	require.Equal(t, Authenticated, c.State())
	require.Equal(t, "token-signup", c.Token())
}

func TestRehydrate_ResumesPersistedSession(t *testing.T) {
	api := &fakeAuthAPI{user: models.User{ID: "u1", Name: "Ann"}}
	first, store := newTestController(t, api)
	require.NoError(t, first.Login(context.Background(), "a@x.com", "pw"))

	// A fresh controller over the same store resumes without the API.
	second := NewController(&fakeAuthAPI{err: errors.New("unreachable")}, store)
	second.Rehydrate()
	require.Equal(t, Authenticated, second.State())
	require.Equal(t, "u1", second.User().ID)
	require.Equal(t, "token-login", second.Token())
}

func TestRehydrate_NoSessionSettlesAnonymous(t *testing.T) {
	c, _ := newTestController(t, &fakeAuthAPI{})
	c.Rehydrate()
	require.Equal(t, Anonymous, c.State())
	require.NoError(t, c.Err())
}

func TestLogout_ClearsLocallyAndRevokesRemotely(t *testing.T) {
	api := &fakeAuthAPI{user: models.User{ID: "u1"}}
	c, store := newTestController(t, api)
	require.NoError(t, c.Login(context.Background(), "a@x.com", "pw"))

	require.NoError(t, c.Logout(context.Background()))
	require.Equal(t, Anonymous, c.State())
	require.Empty(t, c.Token())
	require.Equal(t, []string{"token-login"}, api.logoutTokens)

	_, _, err := store.Load()
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestLogout_ServerFailureStillSignsOut(t *testing.T) {
	api := &fakeAuthAPI{user: models.User{ID: "u1"}}
	c, store := newTestController(t, api)
	require.NoError(t, c.Login(context.Background(), "a@x.com", "pw"))

	api.err = errors.New("server down")
	err := c.Logout(context.Background())
	require.Error(t, err)

	// The client is signed out regardless of the revocation failure.
	require.Equal(t, Anonymous, c.State())
	require.Empty(t, c.Token())
	_, _, loadErr := store.Load()
	require.ErrorIs(t, loadErr, common.ErrNotFound)
}

func TestLogout_WithoutSessionSkipsRevocation(t *testing.T) {
	api := &fakeAuthAPI{}
	c, _ := newTestController(t, api)
	c.Rehydrate()

	require.NoError(t, c.Logout(context.Background()))
	require.Zero(t, api.logoutCalls)
}
