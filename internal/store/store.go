package store

import (
	"database/sql"
	_ "embed"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// Store holds every collection (users, projects, tasks, notifications,
// activities) in an in-memory database. Nothing survives the process.
type Store struct {
	*sql.DB
}

// Open creates the in-memory database and initializes the schema
func Open() (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, err
	}

	// Each sqlite :memory: connection is its own database, so the pool
	// must stay at a single connection. This also serializes mutations.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db}, nil
}

// GetSetting retrieves a setting value by key
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetSetting sets a setting value
func (s *Store) SetSetting(key, value string) error {
	_, err := s.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
