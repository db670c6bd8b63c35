// Package store holds the ordered task collection and the active filter,
// persisting the collection to a backend.Slot after every mutation.
//
// A Store is not safe for concurrent use. It is owned by a single UI loop
// or command invocation.
package store

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"tasklist/backend"
	"tasklist/internal/utils"
)

// Store is the task-state reducer
type Store struct {
	slot   backend.Slot
	key    string
	now    func() time.Time
	tasks  []backend.Task
	filter Filter
}

// Option configures a Store
type Option func(*Store)

// WithKey sets the storage key (default backend.DefaultKey).
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock sets the clock used to derive task IDs.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithFilter sets the initial filter. Invalid filters are ignored.
func WithFilter(f Filter) Option {
	return func(s *Store) {
		if f.Valid() {
			s.filter = f
		}
	}
}

// New creates a store and loads the collection from slot.
// Absent or malformed stored data yields an empty collection; only a failure
// to read the slot itself is returned as an error.
func New(ctx context.Context, slot backend.Slot, opts ...Option) (*Store, error) {
	s := &Store{
		slot:   slot,
		key:    backend.DefaultKey,
		now:    time.Now,
		filter: FilterAll,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// load replaces the in-memory collection with the slot contents
func (s *Store) load(ctx context.Context) error {
	data, err := s.slot.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("failed to read tasks: %w", err)
	}

	s.tasks = []backend.Task{}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	tasks, err := Decode(data)
	if err != nil {
		utils.Debugf("Ignoring malformed data under key %q: %v", s.key, err)
		return nil
	}

	seen := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		if strings.TrimSpace(t.Text) == "" {
			utils.Debugf("Dropping stored task %d with empty text", t.ID)
			continue
		}
		if seen[t.ID] {
			utils.Debugf("Dropping stored task with duplicate id %d", t.ID)
			continue
		}
		seen[t.ID] = true
		s.tasks = append(s.tasks, t)
	}
	return nil
}

// persist writes the full collection to the slot
func (s *Store) persist(ctx context.Context) error {
	data, err := Encode(s.tasks)
	if err != nil {
		return err
	}
	if err := s.slot.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	utils.Debugf("Saved %d tasks under key %q", len(s.tasks), s.key)
	return nil
}

// nextID returns the current timestamp in milliseconds, bumped past every
// existing ID so IDs stay unique even when the clock stalls or goes back.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	for _, t := range s.tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

// =============================================================================
// Mutations
// =============================================================================

// Add appends a new active task with the trimmed text.
// Returns nil without persisting when the text is blank.
func (s *Store) Add(ctx context.Context, text string) (*backend.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	task := backend.Task{
		ID:   s.nextID(),
		Text: text,
	}
	s.tasks = append(s.tasks, task)

	if err := s.persist(ctx); err != nil {
		return &task, err
	}
	return &task, nil
}

// Import appends tasks with fresh IDs, keeping their text and completed
// flag, and persists once. Entries with blank text are skipped.
// Returns how many tasks were added.
func (s *Store) Import(ctx context.Context, tasks []backend.Task) (int, error) {
	added := 0
	for _, t := range tasks {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		s.tasks = append(s.tasks, backend.Task{
			ID:        s.nextID(),
			Text:      text,
			Completed: t.Completed,
		})
		added++
	}

	if added == 0 {
		return 0, nil
	}
	return added, s.persist(ctx)
}

// Toggle flips the completed flag of the task with the given ID and returns
// the updated task, or nil if no such task exists.
func (s *Store) Toggle(ctx context.Context, id int64) (*backend.Task, error) {
	i := backend.FindTask(s.tasks, id)
	if i < 0 {
		return nil, nil
	}

	s.tasks[i].Completed = !s.tasks[i].Completed
	task := s.tasks[i]

	if err := s.persist(ctx); err != nil {
		return &task, err
	}
	return &task, nil
}

// Edit replaces the task's text when the trimmed new text is non-empty and
// differs from the current text. Reports whether anything changed.
func (s *Store) Edit(ctx context.Context, id int64, text string) (bool, error) {
	i := backend.FindTask(s.tasks, id)
	if i < 0 {
		return false, nil
	}

	text = strings.TrimSpace(text)
	if text == "" || text == s.tasks[i].Text {
		return false, nil
	}

	s.tasks[i].Text = text
	return true, s.persist(ctx)
}

// Remove deletes the task with the given ID. Reports whether it existed.
func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	i := backend.FindTask(s.tasks, id)
	if i < 0 {
		return false, nil
	}

	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return true, s.persist(ctx)
}

// ClearCompleted removes every completed task, keeping the order of the
// rest. Returns how many tasks were removed.
func (s *Store) ClearCompleted(ctx context.Context) (int, error) {
	kept := make([]backend.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}

	removed := len(s.tasks) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	s.tasks = kept
	return removed, s.persist(ctx)
}

// SetFilter changes the active filter. Invalid filters are ignored.
func (s *Store) SetFilter(f Filter) {
	if f.Valid() {
		s.filter = f
	}
}

// =============================================================================
// Queries
// =============================================================================

// Tasks returns a copy of the collection in insertion order
func (s *Store) Tasks() []backend.Task {
	out := make([]backend.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the task with the given ID
func (s *Store) Get(id int64) (backend.Task, bool) {
	i := backend.FindTask(s.tasks, id)
	if i < 0 {
		return backend.Task{}, false
	}
	return s.tasks[i], true
}

// Filter returns the active filter
func (s *Store) Filter() Filter {
	return s.filter
}

// Len returns the number of tasks
func (s *Store) Len() int {
	return len(s.tasks)
}

// ActiveCount returns the number of tasks that are not completed
func (s *Store) ActiveCount() int {
	n := 0
	for _, t := range s.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// CompletedCount returns the number of completed tasks
func (s *Store) CompletedCount() int {
	return len(s.tasks) - s.ActiveCount()
}

// Key returns the storage key the collection is persisted under
func (s *Store) Key() string {
	return s.key
}
