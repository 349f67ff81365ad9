// Package store persists UI preferences and input history in a local
// SQLite database under the config directory. This is presentation state
// only (sidebar, theme, last visited page); domain data is never cached
// here.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"deloconnect/internal/logging"

	_ "modernc.org/sqlite"
)

// Well-known preference keys.
const (
	KeySidebarOpen = "chat_sidebar_open"
	KeyTheme       = "theme"
	KeyLastPage    = "last_page"
)

const historyLimit = 100

// PrefsStore is a small key/value store plus a bounded input history.
type PrefsStore struct {
	mu     sync.Mutex
	db     *sql.DB
	dbPath string
}

// Open initializes the store at dir/prefs.db, creating the schema on first
// use.
func Open(dir string) (*PrefsStore, error) {
	log := logging.Get(logging.CategoryStore)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	path := filepath.Join(dir, "prefs.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		log.Debug("failed to set busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		log.Debug("failed to set journal_mode=WAL: %v", err)
	}

	s := &PrefsStore{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	log.Info("preferences store opened at %s", path)
	return s, nil
}

func (s *PrefsStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS prefs (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS input_history (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		context TEXT NOT NULL,
		entry   TEXT NOT NULL,
		added_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_history_context ON input_history(context, id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Get returns the value for key, or def when unset.
func (s *PrefsStore) Get(key, def string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var value string
	err := s.db.QueryRow("SELECT value FROM prefs WHERE key = ?", key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logging.Get(logging.CategoryStore).Error("pref read %s: %v", key, err)
		}
		return def
	}
	return value
}

// Set stores a value.
func (s *PrefsStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		"INSERT INTO prefs(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		return fmt.Errorf("pref write %s: %w", key, err)
	}
	return nil
}

// GetBool reads a boolean preference.
func (s *PrefsStore) GetBool(key string, def bool) bool {
	v := s.Get(key, strconv.FormatBool(def))
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// SetBool stores a boolean preference.
func (s *PrefsStore) SetBool(key string, value bool) error {
	return s.Set(key, strconv.FormatBool(value))
}

// AppendHistory records one input line for a context (e.g. "chat" or
// "search"), trimming the oldest entries past the limit.
func (s *PrefsStore) AppendHistory(context, entry string) error {
	if entry == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec("INSERT INTO input_history(context, entry) VALUES(?, ?)", context, entry); err != nil {
		return fmt.Errorf("history write: %w", err)
	}
	_, err := s.db.Exec(`
		DELETE FROM input_history
		WHERE context = ? AND id NOT IN (
			SELECT id FROM input_history WHERE context = ? ORDER BY id DESC LIMIT ?
		)`, context, context, historyLimit)
	if err != nil {
		return fmt.Errorf("history trim: %w", err)
	}
	return nil
}

// History returns up to limit entries for a context, newest first.
func (s *PrefsStore) History(context string, limit int) ([]string, error) {
	if limit <= 0 || limit > historyLimit {
		limit = historyLimit
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(
		"SELECT entry FROM input_history WHERE context = ? ORDER BY id DESC LIMIT ?", context, limit)
	if err != nil {
		return nil, fmt.Errorf("history read: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var entry string
		if err := rows.Scan(&entry); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *PrefsStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
