// Package sqlite implements the storage.Store interface on an embedded
// SQLite database. It is the "local" backend: everything lives in a single
// file next to the process, no network involved.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/taskboard/taskboard-be/internal/common"
	"github.com/taskboard/taskboard-be/internal/models"

	_ "modernc.org/sqlite" // SQLite driver
)

// Store is a storage.Store backed by SQLite.
type Store struct {
	db *sql.DB
}

// New opens the database file and applies the schema.
func New(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// migrate runs the SQL statements to set up the database schema.
// Timestamps are stored as unix nanoseconds so that ordering comparisons
// stay exact.
func migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT NOT NULL PRIMARY KEY,
		owner_id TEXT NOT NULL REFERENCES users(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_id, created_at DESC);

	CREATE TABLE IF NOT EXISTS sessions (
		token_id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		expires_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT NOT NULL PRIMARY KEY,
		type TEXT NOT NULL,
		level TEXT NOT NULL,
		message TEXT NOT NULL,
		owner_id TEXT,
		created_at INTEGER NOT NULL
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}

// Close releases the underlying database handle.
func (s *Store) Close(ctx context.Context) error {
	return s.db.Close()
}

// FindUserByEmail looks up a user by exact email match.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?", email)
	return scanUser(row)
}

// FindUserByID retrieves a single user by their ID.
func (s *Store) FindUserByID(ctx context.Context, id string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?", id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	var createdAt int64
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, common.ErrNotFound
		}
		return models.User{}, err
	}
	user.CreatedAt = time.Unix(0, createdAt).UTC()
	return user, nil
}

// InsertUser stores a new user. The email must not be registered yet.
func (s *Store) InsertUser(ctx context.Context, user models.User) error {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM users WHERE email = ?", user.Email).Scan(&exists)
	if err == nil {
		return common.ErrDuplicateEmail
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users(id, name, email, password_hash, created_at) VALUES(?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt.UnixNano())
	return err
}

// ListTasksByOwner returns the owner's tasks, most recently created first.
func (s *Store) ListTasksByOwner(ctx context.Context, ownerID string) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, owner_id, title, description, status, created_at, updated_at FROM tasks WHERE owner_id = ? ORDER BY created_at DESC, id DESC",
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var task models.Task
	var createdAt, updatedAt int64
	err := row.Scan(&task.ID, &task.OwnerID, &task.Title, &task.Description, &task.Status, &createdAt, &updatedAt)
	if err != nil {
		return models.Task{}, err
	}
	task.CreatedAt = time.Unix(0, createdAt).UTC()
	task.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return task, nil
}

// GetTaskByID retrieves one task, scoped to its owner. A task belonging to
// a different owner is reported as not found.
func (s *Store) GetTaskByID(ctx context.Context, ownerID, id string) (models.Task, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, owner_id, title, description, status, created_at, updated_at FROM tasks WHERE id = ? AND owner_id = ?",
		id, ownerID)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, common.ErrNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

// InsertTask stores a new task.
func (s *Store) InsertTask(ctx context.Context, task models.Task) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tasks(id, owner_id, title, description, status, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?, ?)",
		task.ID, task.OwnerID, task.Title, task.Description, task.Status,
		task.CreatedAt.UnixNano(), task.UpdatedAt.UnixNano())
	return err
}

// UpdateTask writes the full record back, scoped to its owner.
func (s *Store) UpdateTask(ctx context.Context, task models.Task) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET title = ?, description = ?, status = ?, updated_at = ? WHERE id = ? AND owner_id = ?",
		task.Title, task.Description, task.Status, task.UpdatedAt.UnixNano(), task.ID, task.OwnerID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// DeleteTask removes a task, scoped to its owner. Hard delete, no tombstone.
func (s *Store) DeleteTask(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// InsertSession records an issued token.
func (s *Store) InsertSession(ctx context.Context, session models.Session) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions(token_id, user_id, created_at, expires_at) VALUES(?, ?, ?, ?)",
		session.TokenID, session.UserID, session.CreatedAt.UnixNano(), session.ExpiresAt.UnixNano())
	return err
}

// FindSessionByTokenID looks up an issued session by its token ID.
func (s *Store) FindSessionByTokenID(ctx context.Context, tokenID string) (models.Session, error) {
	var session models.Session
	var createdAt, expiresAt int64
	row := s.db.QueryRowContext(ctx,
		"SELECT token_id, user_id, created_at, expires_at FROM sessions WHERE token_id = ?", tokenID)
	err := row.Scan(&session.TokenID, &session.UserID, &createdAt, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, common.ErrNotFound
		}
		return models.Session{}, err
	}
	session.CreatedAt = time.Unix(0, createdAt).UTC()
	session.ExpiresAt = time.Unix(0, expiresAt).UTC()
	return session, nil
}

// DeleteSessionByTokenID revokes a session.
func (s *Store) DeleteSessionByTokenID(ctx context.Context, tokenID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE token_id = ?", tokenID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// DeleteExpiredSessions purges sessions whose expiry is in the past.
func (s *Store) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < ?", now.UnixNano())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// InsertEvent appends an event to the activity log.
func (s *Store) InsertEvent(ctx context.Context, event models.Event) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO events(id, type, level, message, owner_id, created_at) VALUES(?, ?, ?, ?, ?, ?)",
		event.ID, event.Type, event.Level, event.Message, event.OwnerID, event.CreatedAt.UnixNano())
	return err
}

// ListRecentEventsByOwner retrieves the owner's most recent events.
func (s *Store) ListRecentEventsByOwner(ctx context.Context, ownerID string, limit int) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, type, level, message, owner_id, created_at FROM events WHERE owner_id = ? ORDER BY created_at DESC, id DESC LIMIT ?",
		ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		var createdAt int64
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.OwnerID, &createdAt); err != nil {
			return nil, err
		}
		event.CreatedAt = time.Unix(0, createdAt).UTC()
		events = append(events, event)
	}
	return events, rows.Err()
}

// DeleteEventsBefore purges events older than the cutoff.
func (s *Store) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM events WHERE created_at < ?", cutoff.UnixNano())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
