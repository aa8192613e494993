package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard-be/internal/common"
	"github.com/taskboard/taskboard-be/internal/models"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	store, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func newUser(email string) models.User {
	return models.User{
		ID:           uuid.New().String(),
		Name:         "Ann",
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		CreatedAt:    time.Now().UTC(),
	}
}

func newTask(ownerID, title string, createdAt time.Time) models.Task {
	return models.Task{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Title:       title,
		Description: "desc",
		Status:      models.StatusPending,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestInsertUser_DuplicateEmail(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	first := newUser("a@x.com")
	require.NoError(t, store.InsertUser(ctx, first))

	err := store.InsertUser(ctx, newUser("a@x.com"))
	require.ErrorIs(t, err, common.ErrDuplicateEmail)

	// The first record is unmodified.
	got, err := store.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
	require.Equal(t, first.PasswordHash, got.PasswordHash)
}

func TestFindUser_NotFound(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	_, err := store.FindUserByEmail(ctx, "nobody@x.com")
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = store.FindUserByID(ctx, "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestFindUserByEmail_ExactMatch(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertUser(ctx, newUser("Ann@X.com")))

	// Email matching is exact, not case-folded.
	_, err := store.FindUserByEmail(ctx, "ann@x.com")
	require.ErrorIs(t, err, common.ErrNotFound)

	got, err := store.FindUserByEmail(ctx, "Ann@X.com")
	require.NoError(t, err)
	require.Equal(t, "Ann@X.com", got.Email)
}

func TestTasks_NewestFirstOrdering(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	owner := newUser("a@x.com")
	require.NoError(t, store.InsertUser(ctx, owner))

	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		task := newTask(owner.ID, fmt.Sprintf("task-%d", i), base.Add(time.Duration(i)*time.Millisecond))
		require.NoError(t, store.InsertTask(ctx, task))
	}

	tasks, err := store.ListTasksByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	require.Equal(t, "task-2", tasks[0].Title)
	require.Equal(t, "task-1", tasks[1].Title)
	require.Equal(t, "task-0", tasks[2].Title)
}

func TestTasks_OwnershipIsolation(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	ann := newUser("a@x.com")
	bob := newUser("b@x.com")
	require.NoError(t, store.InsertUser(ctx, ann))
	require.NoError(t, store.InsertUser(ctx, bob))

	annTask := newTask(ann.ID, "Ann's task", time.Now().UTC())
	require.NoError(t, store.InsertTask(ctx, annTask))

	// Bob never sees Ann's task.
	tasks, err := store.ListTasksByOwner(ctx, bob.ID)
	require.NoError(t, err)
	require.Empty(t, tasks)

	_, err = store.GetTaskByID(ctx, bob.ID, annTask.ID)
	require.ErrorIs(t, err, common.ErrNotFound)

	err = store.DeleteTask(ctx, bob.ID, annTask.ID)
	require.ErrorIs(t, err, common.ErrNotFound)

	annTask.Title = "hijacked"
	annTask.OwnerID = bob.ID
	require.ErrorIs(t, store.UpdateTask(ctx, annTask), common.ErrNotFound)

	// Ann's copy is untouched.
	got, err := store.GetTaskByID(ctx, ann.ID, annTask.ID)
	require.NoError(t, err)
	require.Equal(t, "Ann's task", got.Title)
}

func TestTasks_UpdateAndDelete(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	owner := newUser("a@x.com")
	require.NoError(t, store.InsertUser(ctx, owner))

	task := newTask(owner.ID, "Buy milk", time.Now().UTC())
	require.NoError(t, store.InsertTask(ctx, task))

	task.Status = models.StatusCompleted
	task.UpdatedAt = task.UpdatedAt.Add(time.Second)
	require.NoError(t, store.UpdateTask(ctx, task))

	got, err := store.GetTaskByID(ctx, owner.ID, task.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, got.Status)
	require.True(t, got.UpdatedAt.After(got.CreatedAt))

	require.NoError(t, store.DeleteTask(ctx, owner.ID, task.ID))
	require.ErrorIs(t, store.DeleteTask(ctx, owner.ID, task.ID), common.ErrNotFound)
	_, err = store.GetTaskByID(ctx, owner.ID, task.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSessions_Lifecycle(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	active := models.Session{TokenID: uuid.New().String(), UserID: "u1", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	expired := models.Session{TokenID: uuid.New().String(), UserID: "u1", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
	require.NoError(t, store.InsertSession(ctx, active))
	require.NoError(t, store.InsertSession(ctx, expired))

	got, err := store.FindSessionByTokenID(ctx, active.TokenID)
	require.NoError(t, err)
	require.Equal(t, "u1", got.UserID)

	purged, err := store.DeleteExpiredSessions(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, purged)

	_, err = store.FindSessionByTokenID(ctx, expired.TokenID)
	require.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, store.DeleteSessionByTokenID(ctx, active.TokenID))
	require.ErrorIs(t, store.DeleteSessionByTokenID(ctx, active.TokenID), common.ErrNotFound)
}

func TestEvents_RecentPerOwner(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	ann := "ann"
	bob := "bob"
	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		event := models.Event{
			ID:        uuid.New().String(),
			Type:      "task.created",
			Level:     "info",
			Message:   fmt.Sprintf("event-%d", i),
			OwnerID:   &ann,
			CreatedAt: base.Add(time.Duration(i) * time.Millisecond),
		}
		require.NoError(t, store.InsertEvent(ctx, event))
	}

	events, err := store.ListRecentEventsByOwner(ctx, ann, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "event-2", events[0].Message)

	events, err = store.ListRecentEventsByOwner(ctx, bob, 10)
	require.NoError(t, err)
	require.Empty(t, events)

	purged, err := store.DeleteEventsBefore(ctx, base.Add(time.Minute))
	require.NoError(t, err)
	require.EqualValues(t, 3, purged)
}
