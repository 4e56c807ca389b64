package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite data access layer for the sprout index: source files,
// extracted type declarations and the derived configuration metadata.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates all tables and indexes. Idempotent.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(schemaDDL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS files (
  id              INTEGER PRIMARY KEY,
  path            TEXT NOT NULL UNIQUE,
  package         TEXT,
  hash            TEXT,
  last_indexed    TIMESTAMP
);

CREATE TABLE IF NOT EXISTS types (
  id              INTEGER PRIMARY KEY,
  file_id         INTEGER NOT NULL REFERENCES files(id),
  qualified_name  TEXT NOT NULL,
  binary_name     TEXT NOT NULL,
  kind            TEXT NOT NULL,
  parent_type_id  INTEGER REFERENCES types(id)
);

-- Derived metadata tables. Rewritten whenever any source file changes:
-- properties can cross file boundaries, so per-file invalidation is not
-- sound for them.

CREATE TABLE IF NOT EXISTS property_groups (
  id              INTEGER PRIMARY KEY,
  file_id         INTEGER REFERENCES files(id),
  name            TEXT NOT NULL,
  type            TEXT,
  source_type     TEXT
);

CREATE TABLE IF NOT EXISTS properties (
  id              INTEGER PRIMARY KEY,
  file_id         INTEGER REFERENCES files(id),
  group_name      TEXT,
  name            TEXT NOT NULL,
  type            TEXT,
  description     TEXT,
  default_value   TEXT,
  source_type     TEXT
);

CREATE TABLE IF NOT EXISTS metadata (
  key             TEXT PRIMARY KEY,
  value           TEXT
);

CREATE INDEX IF NOT EXISTS idx_types_file ON types(file_id);
CREATE INDEX IF NOT EXISTS idx_types_qualified ON types(qualified_name);
CREATE INDEX IF NOT EXISTS idx_groups_name ON property_groups(name);
CREATE INDEX IF NOT EXISTS idx_properties_name ON properties(name);
CREATE INDEX IF NOT EXISTS idx_properties_group ON properties(group_name);
`

// DeleteFileData transactionally removes a file's rows across all tables,
// including the file record itself.
func (s *Store) DeleteFileData(fileID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM properties WHERE file_id = ?",
		"DELETE FROM property_groups WHERE file_id = ?",
		"DELETE FROM types WHERE file_id = ?",
		"DELETE FROM files WHERE id = ?",
	} {
		if _, err := tx.Exec(q, fileID); err != nil {
			return fmt.Errorf("delete file data: %w", err)
		}
	}
	return tx.Commit()
}

// ClearDerived removes every derived metadata row. Called before a rewrite.
func (s *Store) ClearDerived() error {
	for _, q := range []string{
		"DELETE FROM properties",
		"DELETE FROM property_groups",
	} {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("clear derived: %w", err)
		}
	}
	return nil
}

// GetMetadata returns the value stored under key, "" when absent.
func (s *Store) GetMetadata(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get metadata: %w", err)
	}
	return value, nil
}

// SetMetadata stores value under key, replacing any previous value.
func (s *Store) SetMetadata(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO metadata (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set metadata: %w", err)
	}
	return nil
}
