// Package prompt handles interactive prompts with no-prompt mode support.
// It provides task selection by typed text and interactive entry of task text.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"tasklist/backend"
)

// Sentinel errors for prompt operations.
var (
	ErrSelectionCancelled = errors.New("selection cancelled")
	ErrNoPromptMode       = errors.New("interactive prompts disabled (--no-prompt / -y)")
	ErrNoTasks            = errors.New("no tasks available")
	ErrNoMatches          = errors.New("no tasks match the filter")
	ErrNoInput            = errors.New("no input")
)

// LineReader returns r as a *bufio.Reader, wrapping it only when needed.
// Prompts that share one input must share the returned reader so that
// buffered lines are not lost between them.
func LineReader(r io.Reader) *bufio.Reader {
	if r == nil {
		r = os.Stdin
	}
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(r)
}

// readLine reads one line without its terminator. ok is false at end of input.
func readLine(br *bufio.Reader) (string, bool) {
	line, err := br.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

// Match returns the tasks whose text contains query, ignoring case.
// An empty query matches every task.
func Match(tasks []backend.Task, query string) []backend.Task {
	query = strings.ToLower(strings.TrimSpace(query))
	var matched []backend.Task
	for _, t := range tasks {
		if query == "" || strings.Contains(strings.ToLower(t.Text), query) {
			matched = append(matched, t)
		}
	}
	return matched
}

// TaskSelector picks one task, narrowing by Query and asking the user to
// choose when more than one candidate is left.
type TaskSelector struct {
	Tasks    []backend.Task
	Query    string
	Prompt   string
	Reader   io.Reader
	Writer   io.Writer
	NoPrompt bool
}

// Run executes the task selection.
// A query matching exactly one task selects it without prompting.
// Without a query the user is first asked for filter text.
// If a choice is needed and NoPrompt is true, returns ErrNoPromptMode.
func (s *TaskSelector) Run() (*backend.Task, error) {
	if len(s.Tasks) == 0 {
		return nil, ErrNoTasks
	}

	candidates := Match(s.Tasks, s.Query)
	if len(candidates) == 0 {
		return nil, ErrNoMatches
	}
	if s.Query != "" && len(candidates) == 1 {
		return &candidates[0], nil
	}

	if s.NoPrompt {
		return nil, ErrNoPromptMode
	}

	writer := s.Writer
	if writer == nil {
		writer = io.Discard
	}
	br := LineReader(s.Reader)

	if s.Query == "" {
		_, _ = fmt.Fprintf(writer, "%s\nFilter (or press Enter to show all): ", s.Prompt)
		filter, ok := readLine(br)
		if !ok {
			return nil, ErrSelectionCancelled
		}
		candidates = Match(s.Tasks, filter)
		if len(candidates) == 0 {
			return nil, ErrNoMatches
		}
		if len(candidates) == 1 {
			_, _ = fmt.Fprintf(writer, "Auto-selected: %s\n", candidates[0].Text)
			return &candidates[0], nil
		}
	} else {
		_, _ = fmt.Fprintln(writer, s.Prompt)
	}

	for i, t := range candidates {
		_, _ = fmt.Fprintf(writer, "  %d) %s\n", i+1, formatTaskLine(t))
	}

	_, _ = fmt.Fprintf(writer, "Select (0 to cancel): ")
	input, ok := readLine(br)
	if !ok {
		return nil, ErrSelectionCancelled
	}

	input = strings.TrimSpace(input)
	num, err := strconv.Atoi(input)
	if err != nil {
		return nil, fmt.Errorf("invalid selection: %s", input)
	}

	if num == 0 {
		return nil, ErrSelectionCancelled
	}

	if num < 1 || num > len(candidates) {
		return nil, fmt.Errorf("selection out of range: %d", num)
	}

	return &candidates[num-1], nil
}

// formatTaskLine shows the checkbox, text and id of a candidate
func formatTaskLine(t backend.Task) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	return fmt.Sprintf("%s %s (id %d)", box, t.Text, t.ID)
}

// TextPrompt asks for a line of task text, re-asking while it is blank.
type TextPrompt struct {
	Label    string
	Reader   io.Reader
	Writer   io.Writer
	NoPrompt bool
}

// Run returns the trimmed text. End of input before any text returns ErrNoInput.
func (p *TextPrompt) Run() (string, error) {
	if p.NoPrompt {
		return "", ErrNoPromptMode
	}

	writer := p.Writer
	if writer == nil {
		writer = io.Discard
	}
	label := p.Label
	if label == "" {
		label = "Task"
	}
	br := LineReader(p.Reader)

	for {
		_, _ = fmt.Fprintf(writer, "%s (required): ", label)
		line, ok := readLine(br)
		if !ok {
			return "", ErrNoInput
		}
		if text := strings.TrimSpace(line); text != "" {
			return text, nil
		}
		_, _ = fmt.Fprintf(writer, "%s cannot be empty.\n", label)
	}
}
