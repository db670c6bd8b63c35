package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
	"tasklist/backend"
)

// Name is the registry name of this backend
const Name = "sqlite"

// DBFile is the database file name used inside a data directory
const DBFile = "tasklist.db"

func init() {
	backend.RegisterSlotWithPriority(Name, func(dir string) (backend.Slot, error) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("could not create data directory: %w", err)
		}
		return New(filepath.Join(dir, DBFile))
	}, 20)
}

// Backend implements backend.Slot using SQLite
type Backend struct {
	db *sql.DB
}

// New creates a new SQLite backend and initializes the database schema
func New(path string) (*Backend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	b := &Backend{db: db}
	if err := b.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return b, nil
}

// initSchema creates the slot table if it doesn't exist
func (b *Backend) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS slots (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			modified TEXT NOT NULL
		);
	`

	_, err := b.db.Exec(schema)
	return err
}

// Get returns the value stored under key, or nil if the key is absent
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := b.db.QueryRowContext(ctx,
		"SELECT value FROM slots WHERE key = ?",
		key,
	).Scan(&value)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return []byte(value), nil
}

// Put inserts or replaces the value stored under key
func (b *Backend) Put(ctx context.Context, key string, value []byte) error {
	nowStr := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := b.db.ExecContext(ctx,
		`INSERT INTO slots (key, value, modified) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, modified = excluded.modified`,
		key, string(value), nowStr,
	)
	return err
}

// Modified returns when key was last written, or the zero time if it is absent
func (b *Backend) Modified(ctx context.Context, key string) (time.Time, error) {
	var modifiedStr string
	err := b.db.QueryRowContext(ctx,
		"SELECT modified FROM slots WHERE key = ?",
		key,
	).Scan(&modifiedStr)

	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}

	modified, _ := time.Parse(time.RFC3339Nano, modifiedStr)
	return modified, nil
}

// Close closes the database connection
func (b *Backend) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

// Verify interface compliance at compile time
var _ backend.Slot = (*Backend)(nil)
