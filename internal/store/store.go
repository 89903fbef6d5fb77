// Package store keeps a local history of search calls in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// History records and lists past calls.
type History interface {
	// Record stores e, filling ID and CreatedAt when empty.
	Record(e Entry) error
	// Recent returns up to n entries, newest first.
	Recent(n int) ([]Entry, error)
	// Close closes the underlying database.
	Close() error
}

// SQLiteStore implements History backed by SQLite.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens a SQLite database at the given path and initializes the schema.
func Open(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := Init(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.SetMeta("schema_version", schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("set schema version: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Record(e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	_, err := s.db.Exec(
		`INSERT INTO searches (id, kind, pattern, path, include, result_count, truncated, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.Kind), e.Pattern, e.Path, e.Include, e.Count, e.Truncated, e.CreatedAt.UTC(),
	)
	return err
}

func (s *SQLiteStore) Recent(n int) ([]Entry, error) {
	if n <= 0 {
		n = 20
	}
	rows, err := s.db.Query(`
		SELECT id, kind, pattern, path, include, result_count, truncated, created_at
		FROM searches
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind string
		if err := rows.Scan(&e.ID, &kind, &e.Pattern, &e.Path, &e.Include, &e.Count, &e.Truncated, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Kind = Kind(kind)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetMeta returns a metadata value by key, or "" if not set.
func (s *SQLiteStore) GetMeta(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetMeta sets a metadata key-value pair.
func (s *SQLiteStore) SetMeta(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
