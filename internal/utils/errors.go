package utils

import (
	"fmt"
	"strings"
)

// ErrorWithSuggestion wraps an error with a user-friendly suggestion.
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface.
func (e *ErrorWithSuggestion) Error() string {
	return fmt.Sprintf("%s\n\nSuggestion: %s", e.Err.Error(), e.Suggestion)
}

// GetSuggestion returns the suggestion text.
func (e *ErrorWithSuggestion) GetSuggestion() string {
	return e.Suggestion
}

// Unwrap returns the underlying error for error chain support.
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// WrapWithSuggestion wraps an existing error with a suggestion.
func WrapWithSuggestion(err error, suggestion string) error {
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// ErrInvalidTaskID returns an error for a task ID that is not a positive integer.
func ErrInvalidTaskID(s string) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("invalid task id: %q", s),
		Suggestion: "Task ids are the numbers shown by 'tasklist list'",
	}
}

// ErrInvalidFilter returns an error for an unknown filter with valid options.
func ErrInvalidFilter(filter string, valid []string) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("invalid filter: %s", filter),
		Suggestion: fmt.Sprintf("Valid options: %s", strings.Join(valid, ", ")),
	}
}

// ErrUnknownStorage returns an error for a storage backend that is not available.
func ErrUnknownStorage(name string, valid []string) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("unknown storage backend: %s", name),
		Suggestion: fmt.Sprintf("Set storage.backend to one of: %s", strings.Join(valid, ", ")),
	}
}

// ErrStorageUnavailable returns an error when the storage slot cannot be opened or read.
func ErrStorageUnavailable(name string, err error) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("storage %s is unavailable: %w", name, err),
		Suggestion: "Check that the data directory exists and is writable, or pass --data-dir",
	}
}

// ErrInvalidFormat returns an error for an unsupported export/output format.
func ErrInvalidFormat(format string, valid []string) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("invalid format: %s", format),
		Suggestion: fmt.Sprintf("Valid options: %s", strings.Join(valid, ", ")),
	}
}

// ErrAmbiguousTask returns an error for task text that matches several tasks
// when no prompt can ask which one was meant.
func ErrAmbiguousTask(query string, matches int) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("%d tasks match %q", matches, query),
		Suggestion: "Use the task id shown by 'tasklist list', or run without --no-prompt to choose",
	}
}

// ErrTaskRequired returns an error for a command run without naming a task
// when no prompt can ask for one.
func ErrTaskRequired(command string) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("%s needs a task id or text", command),
		Suggestion: fmt.Sprintf("Run 'tasklist %s <id|text>'; 'tasklist list' shows the ids", command),
	}
}
