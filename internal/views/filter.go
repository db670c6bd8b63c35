package views

import (
	"fmt"

	"tasklist/backend"
	"tasklist/internal/store"
)

// FilterTasks returns the tasks visible under filter, in their original order
func FilterTasks(tasks []backend.Task, filter store.Filter) []backend.Task {
	result := make([]backend.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Match(t) {
			result = append(result, t)
		}
	}
	return result
}

// EmptyMessage returns the placeholder shown when nothing matches filter
func EmptyMessage(filter store.Filter) string {
	switch filter {
	case store.FilterActive:
		return "No active tasks!"
	case store.FilterCompleted:
		return "No completed tasks!"
	default:
		return "No tasks yet!"
	}
}

// CounterText formats the remaining-task counter with singular/plural agreement
func CounterText(active int) string {
	noun := "tasks"
	if active == 1 {
		noun = "task"
	}
	return fmt.Sprintf("%d %s left", active, noun)
}

// Build derives the view model for tasks under filter
func Build(tasks []backend.Task, filter store.Filter) ViewModel {
	active := 0
	for _, t := range tasks {
		if !t.Completed {
			active++
		}
	}

	vm := ViewModel{
		Filter:    filter,
		Rows:      FilterTasks(tasks, filter),
		Counter:   CounterText(active),
		Active:    active,
		Completed: len(tasks) - active,
	}
	if len(vm.Rows) == 0 {
		vm.Empty = EmptyMessage(filter)
	}
	return vm
}

// FromStore derives the view model from the store's tasks and active filter
func FromStore(s *store.Store) ViewModel {
	return Build(s.Tasks(), s.Filter())
}
