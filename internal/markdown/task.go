// Package markdown converts task collections to and from markdown checklists
// used by the export and import commands.
package markdown

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"tasklist/backend"
)

// Item is a checklist entry parsed from markdown. Items carry no id; the
// store assigns one when they are imported.
type Item struct {
	Text      string
	Completed bool
}

var checklistPattern = regexp.MustCompile(`^\s*[-*+]\s+\[([ xX])\]\s+(.*)$`)

// ParseStatusChar converts a markdown checkbox character to a completion flag.
func ParseStatusChar(char string) bool {
	return strings.EqualFold(char, "x")
}

// FormatStatusChar converts a completion flag to a markdown checkbox character.
func FormatStatusChar(completed bool) string {
	if completed {
		return "x"
	}
	return " "
}

// ParseLine parses a single checklist line. ok is false for anything that is
// not a "- [ ] text" or "- [x] text" line, or whose text is blank.
func ParseLine(line string) (item Item, ok bool) {
	matches := checklistPattern.FindStringSubmatch(line)
	if len(matches) != 3 {
		return Item{}, false
	}
	text := strings.TrimSpace(matches[2])
	if text == "" {
		return Item{}, false
	}
	return Item{Text: text, Completed: ParseStatusChar(matches[1])}, true
}

// Parse reads checklist items from r, skipping headings, prose and blank lines.
func Parse(r io.Reader) ([]Item, error) {
	var items []Item
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if item, ok := ParseLine(scanner.Text()); ok {
			items = append(items, item)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read checklist: %w", err)
	}
	return items, nil
}

// WriteTask writes a single task as a checklist line to a strings.Builder.
func WriteTask(sb *strings.Builder, task *backend.Task) {
	sb.WriteString("- [")
	sb.WriteString(FormatStatusChar(task.Completed))
	sb.WriteString("] ")
	sb.WriteString(FormatTaskText(task.Text))
	sb.WriteString("\n")
}

// FormatTaskText flattens task text onto one line so it survives a round trip.
func FormatTaskText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Format renders tasks as a markdown checklist in collection order.
func Format(tasks []backend.Task) string {
	var sb strings.Builder
	for i := range tasks {
		WriteTask(&sb, &tasks[i])
	}
	return sb.String()
}
