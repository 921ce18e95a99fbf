package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/jobdeck/jobdeck/internal/model"
)

// Ensure Store implements model.SessionStore.
var _ model.SessionStore = (*Store)(nil)

// Keys under which the session is persisted.
const (
	keyToken = "token"
	keyEmail = "userEmail"
)

// Store persists the session in a SQLite key-value table so it survives
// across runs. No validation and no expiry tracking happen here: token
// validity is determined only by server responses.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the session database at dbPath and ensures the
// session table exists. Parent directories are created as needed.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating session dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging session db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS session (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating session table: %w", err)
	}

	return &Store{db: db}, nil
}

// Get returns the stored value for key, or the empty string when absent.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM session WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading session key %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO session (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing session key %s: %w", key, err)
	}
	return nil
}

// Load reads the persisted session. A missing session comes back with empty
// fields, never an error.
func (s *Store) Load() (model.Session, error) {
	token, err := s.Get(keyToken)
	if err != nil {
		return model.Session{}, err
	}
	email, err := s.Get(keyEmail)
	if err != nil {
		return model.Session{}, err
	}
	return model.Session{Token: token, Email: email}, nil
}

// Save persists the session's token and email.
func (s *Store) Save(sess model.Session) error {
	if err := s.Set(keyToken, sess.Token); err != nil {
		return err
	}
	return s.Set(keyEmail, sess.Email)
}

// Clear removes every stored key. Used on logout and on a detected 401.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM session"); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
