// Package session persists the cursor position per file: quitting
// remembers where the cursor was, the next open restores it.
package session

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"ved/internal/log"
)

// schema is applied on every open. A fresh database gets the table, an
// existing one is left untouched.
const schema = `
CREATE TABLE IF NOT EXISTS positions (
	file_path TEXT PRIMARY KEY,
	cursor_offset INTEGER NOT NULL,
	top_line INTEGER NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Position is a remembered cursor location within a file. Offsets are
// clamped against the buffer on restore; the file may have changed since
// they were saved.
type Position struct {
	Offset  int
	TopLine int
}

// Store reads and writes remembered positions.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the position store at dbPath, creating the file and its
// parent directory if needed.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}

	log.Debug(log.CatSession, "Opening position store", "path", dbPath)
	db, err := sql.Open("sqlite3", "file:"+dbPath)
	if err != nil {
		log.ErrorErr(log.CatSession, "Failed to open position store", err, "path", dbPath)
		return nil, fmt.Errorf("opening position store: %w", err)
	}
	// Verify connection works
	if err := db.Ping(); err != nil {
		_ = db.Close()
		log.ErrorErr(log.CatSession, "Failed to ping position store", err, "path", dbPath)
		return nil, fmt.Errorf("pinging position store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying position store schema: %w", err)
	}

	log.Info(log.CatSession, "Position store ready", "path", dbPath)
	return &Store{db: db, path: dbPath}, nil
}

// Get returns the remembered position for path, reporting whether one
// exists.
func (s *Store) Get(path string) (Position, bool, error) {
	row := s.db.QueryRow(
		`SELECT cursor_offset, top_line FROM positions WHERE file_path = ?`, path)

	var pos Position
	err := row.Scan(&pos.Offset, &pos.TopLine)
	if errors.Is(err, sql.ErrNoRows) {
		return Position{}, false, nil
	}
	if err != nil {
		return Position{}, false, fmt.Errorf("failed to load position: %w", err)
	}
	return pos, true, nil
}

// Save upserts the position for path.
func (s *Store) Save(path string, pos Position) error {
	_, err := s.db.Exec(
		`INSERT INTO positions (file_path, cursor_offset, top_line, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(file_path) DO UPDATE SET
			cursor_offset = excluded.cursor_offset,
			top_line = excluded.top_line,
			updated_at = excluded.updated_at`,
		path, pos.Offset, pos.TopLine, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save position: %w", err)
	}
	log.Debug(log.CatSession, "Saved position", "path", path, "offset", pos.Offset, "top_line", pos.TopLine)
	return nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}
