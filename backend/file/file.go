// Package file implements a Slot backend that stores each key in its own JSON file.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"tasklist/backend"
)

// Name is the registry name of this backend
const Name = "file"

func init() {
	backend.RegisterSlotWithPriority(Name, func(dir string) (backend.Slot, error) {
		return New(Config{Dir: dir})
	}, 10)
}

// keyPattern restricts keys to names that are safe as file names
var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Config holds file backend configuration
type Config struct {
	Dir string // Directory holding one <key>.json file per key
}

// Backend implements backend.Slot for file-based storage
type Backend struct {
	config Config
	dir    string // Resolved absolute path
}

// New creates a new file backend
func New(cfg Config) (*Backend, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}

	// Resolve relative paths
	if !filepath.IsAbs(dir) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = filepath.Join(wd, dir)
	}

	return &Backend{
		config: cfg,
		dir:    dir,
	}, nil
}

// Close closes the backend
func (b *Backend) Close() error {
	return nil
}

// Path returns the file a key is stored in
func (b *Backend) Path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

// Get returns the contents of the key's file, or nil if it does not exist
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !keyPattern.MatchString(key) {
		return nil, fmt.Errorf("invalid key: %q", key)
	}

	data, err := os.ReadFile(b.Path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Put atomically replaces the key's file
func (b *Backend) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("invalid key: %q", key)
	}

	// Ensure directory exists
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(b.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, b.Path(key)); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", b.Path(key), err)
	}
	return nil
}

// Verify interface compliance at compile time
var _ backend.Slot = (*Backend)(nil)
