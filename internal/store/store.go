package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// builder renders SQLite-flavoured statements for every repo in this package.
var builder = entsql.Dialect(dialect.SQLite)

// Store holds the database handle and provides access to repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	if err := migrate(context.Background(), drv); err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	seq, err := newSequenceCounter(context.Background(), drv)
	if err != nil {
		drv.Close()
		return nil, err
	}

	return &Store{db: db, drv: drv, seq: seq}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// KV returns the key-value repo backed by this store.
func (s *Store) KV() *KVRepo {
	return &KVRepo{drv: s.drv}
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{drv: s.drv, seq: s.seq}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS kv (
		name TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS answer_events (
		id TEXT PRIMARY KEY,
		sequence INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		item_kind TEXT NOT NULL,
		item_key TEXT NOT NULL,
		mode TEXT NOT NULL,
		review INTEGER NOT NULL DEFAULT 0,
		correct INTEGER NOT NULL DEFAULT 0,
		answer TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS answer_events_sequence ON answer_events (sequence)`,
	`CREATE INDEX IF NOT EXISTS answer_events_item ON answer_events (item_kind, item_key)`,
	`CREATE TABLE IF NOT EXISTS session_events (
		id TEXT PRIMARY KEY,
		sequence INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		action TEXT NOT NULL,
		mode TEXT NOT NULL,
		remaining INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS session_events_sequence ON session_events (sequence)`,
}

func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range schema {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return err
		}
	}
	return nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. GREEKQUIZ_DB environment variable
// 2. $XDG_DATA_HOME/greekquiz/greekquiz.db
// 3. ~/.local/share/greekquiz/greekquiz.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("GREEKQUIZ_DB"); p != "" {
		return p, ensureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "greekquiz", "greekquiz.db")
	return p, ensureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return ensureDir(path)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
