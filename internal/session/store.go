// internal/session/store.go
//
// Durable {token, user} pair surviving process restarts. Two entries in the
// state directory, written on login, removed on logout, read once at startup.
// No expiry check happens here; the server decides token validity.

package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arshanss504/job-contractor/internal/domain"
)

const (
	tokenFile = "token"
	userFile  = "user.json"
)

// ErrNoSession reports that no stored session exists. Absence is a normal
// startup outcome, not a failure.
var ErrNoSession = errors.New("session: no stored session")

// Store persists the session under a state directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily on
// first Save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the token and user durably. A partial prior session is
// overwritten.
func (s *Store) Save(token string, user domain.User) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	encoded, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, userFile), encoded, 0o600)
}

// Load returns the stored session. ErrNoSession is returned when either
// entry is missing or empty; a malformed user record also counts as absent
// so a corrupt session never blocks startup.
func (s *Store) Load() (string, domain.User, error) {
	var user domain.User
	raw, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", user, ErrNoSession
		}
		return "", user, err
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", user, ErrNoSession
	}
	encoded, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", user, ErrNoSession
		}
		return "", user, err
	}
	if err := json.Unmarshal(encoded, &user); err != nil || user.ID == 0 {
		return "", domain.User{}, ErrNoSession
	}
	return token, user, nil
}

// Clear removes any stored session. Idempotent.
func (s *Store) Clear() error {
	var firstErr error
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
