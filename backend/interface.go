package backend

import (
	"context"
	"errors"
)

// Task represents a todo item
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// DefaultKey is the storage key the task collection lives under
const DefaultKey = "tasks"

// ErrUnknownSlot is returned when no slot backend is registered under a name
var ErrUnknownSlot = errors.New("unknown storage backend")

// Slot is a local key-value store holding serialized state.
// Implementations hold a single value per key and overwrite it on Put.
type Slot interface {
	// Get returns the value stored under key, or nil if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// Connection management
	Close() error
}

// FindTask returns the index of the task with the given ID, or -1.
func FindTask(tasks []Task, id int64) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
