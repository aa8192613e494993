package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/taskboard/taskboard-be/internal/common"
	"github.com/taskboard/taskboard-be/internal/models"
)

// persistedSession is the on-disk shape of the session pointer, the
// counterpart of a browser's localStorage `{token, user}` entry.
type persistedSession struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// FileStore persists the session pointer as a JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a store at an explicit path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFileStore places the session file under the user's home directory.
func DefaultFileStore() (*FileStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewFileStore(filepath.Join(home, ".taskboard", "session.json")), nil
}

// Load reads the persisted session. A missing file reports
// common.ErrNotFound; a corrupt file is treated the same way, since a
// session that cannot be read cannot be resumed.
func (f *FileStore) Load() (models.User, string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.User{}, "", common.ErrNotFound
		}
		return models.User{}, "", err
	}

	var stored persistedSession
	if err := json.Unmarshal(data, &stored); err != nil || stored.Token == "" {
		return models.User{}, "", common.ErrNotFound
	}
	return stored.User, stored.Token, nil
}

// Save writes the session pointer, creating the directory if needed.
func (f *FileStore) Save(user models.User, token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(persistedSession{Token: token, User: user})
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}

// Clear removes the session pointer. Clearing an absent session is not an
// error.
func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
