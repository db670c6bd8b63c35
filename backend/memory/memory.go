// Package memory implements a process-local Slot backend, used in tests and
// for throwaway sessions.
package memory

import (
	"context"
	"sync"

	"tasklist/backend"
)

// Name is the registry name of this backend
const Name = "memory"

func init() {
	backend.RegisterSlotWithPriority(Name, func(string) (backend.Slot, error) {
		return New(), nil
	}, 90)
}

// Backend implements backend.Slot in memory
type Backend struct {
	mu     sync.RWMutex
	values map[string][]byte
	puts   int

	// PutErr, when set, is returned by every Put without storing anything.
	PutErr error
}

// New creates an empty memory backend
func New() *Backend {
	return &Backend{values: make(map[string][]byte)}
}

// NewWithValue creates a memory backend with key pre-populated
func NewWithValue(key string, value []byte) *Backend {
	b := New()
	b.values[key] = append([]byte(nil), value...)
	return b
}

// Get returns a copy of the value stored under key
func (b *Backend) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	value, ok := b.values[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), value...), nil
}

// Put stores a copy of value under key
func (b *Backend) Put(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.PutErr != nil {
		return b.PutErr
	}
	b.values[key] = append([]byte(nil), value...)
	b.puts++
	return nil
}

// Puts returns how many successful writes the backend received
func (b *Backend) Puts() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.puts
}

// Close closes the backend
func (b *Backend) Close() error {
	return nil
}

// Verify interface compliance at compile time
var _ backend.Slot = (*Backend)(nil)
