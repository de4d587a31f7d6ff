// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docstore holds generated bibliography documents server-side so
// the download endpoint can serve them after the generate response has
// been returned.
package docstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/bibgen/pkg/types"
)

const dbFile = "bibgen.db"

// ErrNotFound reports that no document exists under the given filename.
var ErrNotFound = errors.New("document not found")

// Store manages the generated-documents SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at cfg.DataDir/bibgen.db, creating
// the schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS documents (
		filename   TEXT PRIMARY KEY,
		content    TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Put stores content under filename, replacing any previous document with
// the same name (regenerating under the same title overwrites).
func (s *Store) Put(filename, content string) error {
	_, err := s.db.Exec(
		`INSERT INTO documents (filename, content, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(filename) DO UPDATE SET content = excluded.content, created_at = excluded.created_at`,
		filename, content, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("storing document %s: %w", filename, err)
	}
	return nil
}

// Get returns the document stored under filename, or ErrNotFound.
func (s *Store) Get(filename string) (string, error) {
	var content string
	err := s.db.QueryRow(`SELECT content FROM documents WHERE filename = ?`, filename).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("loading document %s: %w", filename, err)
	}
	return content, nil
}
