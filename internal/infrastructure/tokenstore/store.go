package tokenstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
)

// Store persists the bearer token between runs so a restart resumes the
// session, the way the browser build keeps it in local storage. The file
// holds the token in the clear, hence the 0600 mode and the dedicated
// directory.
type Store struct {
	path string
}

type record struct {
	AccessToken string    `json:"access_token"`
	UserID      string    `json:"user_id"`
	SavedAt     time.Time `json:"saved_at"`
}

// New builds a store at path. An empty path resolves to
// <user-config-dir>/poker-league/session.json.
func New(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve user config dir: %w", err)
		}
		path = filepath.Join(configDir, "poker-league", "session.json")
	}
	return &Store{path: path}, nil
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted token and user id, or ok=false when no session
// was saved. A corrupt file reads as no session; the next Save overwrites it.
func (s *Store) Load() (token, userID string, ok bool) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return "", "", false
	}

	var rec record
	if err := sonic.Unmarshal(raw, &rec); err != nil {
		return "", "", false
	}
	if strings.TrimSpace(rec.AccessToken) == "" {
		return "", "", false
	}

	return rec.AccessToken, rec.UserID, true
}

func (s *Store) Save(token, userID string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token is required")
	}

	raw, err := sonic.Marshal(record{
		AccessToken: token,
		UserID:      userID,
		SavedAt:     time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	return nil
}

// Clear removes the persisted session. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
