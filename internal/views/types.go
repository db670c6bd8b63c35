package views

import (
	"tasklist/backend"
	"tasklist/internal/store"
)

// ViewModel is everything a surface needs to draw the task list.
// It is derived from a store snapshot and never mutated by the surface.
type ViewModel struct {
	Filter    store.Filter   `json:"filter"`
	Rows      []backend.Task `json:"tasks"`
	Empty     string         `json:"empty,omitempty"` // set only when Rows is empty
	Counter   string         `json:"counter"`
	Active    int            `json:"active"`
	Completed int            `json:"completed"`
}

// IsEmpty reports whether no rows are visible under the current filter
func (vm ViewModel) IsEmpty() bool {
	return len(vm.Rows) == 0
}
