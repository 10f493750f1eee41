// Package session holds the current authenticated identity and its
// SQLite-backed credential store.
package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jfmoncada/plata/internal/api"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Credential store keys. Both must be present for an authenticated session.
const (
	keyToken = "token"
	keyUser  = "user"
)

// Store is a SQLite-backed key-value store for the session credentials.
// It is the only client-side persistence besides the config file.
type Store struct {
	db *sql.DB
}

// DefaultStorePath returns the XDG-compliant credential database path.
func DefaultStorePath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "plata", "session.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "plata", "session.db")
}

// OpenStore opens or creates the credential database at the given path.
func OpenStore(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating session dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the credential database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value for key, or "" if absent.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM credentials WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Put stores or replaces the value for key.
func (s *Store) Put(key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`INSERT OR REPLACE INTO credentials (key, value, updated_at)
		VALUES (?, ?, ?)`, key, value, now)
	return err
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec("DELETE FROM credentials WHERE key = ?", key)
	return err
}

// Token returns the persisted auth token, or "".
func (s *Store) Token() (string, error) {
	return s.Get(keyToken)
}

// User returns the persisted user record, or nil if absent or corrupt.
func (s *Store) User() (*api.User, error) {
	raw, err := s.Get(keyUser)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var user api.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		// Corrupt record is treated as absent; CheckAuth will clear it.
		return nil, nil
	}
	return &user, nil
}

// SaveCredentials persists token and user together.
func (s *Store) SaveCredentials(token string, user api.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	if err := s.Put(keyToken, token); err != nil {
		return err
	}
	return s.Put(keyUser, string(raw))
}

// ClearCredentials removes both token and user.
func (s *Store) ClearCredentials() error {
	if err := s.Delete(keyToken); err != nil {
		return err
	}
	return s.Delete(keyUser)
}
