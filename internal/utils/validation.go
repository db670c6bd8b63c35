package utils

import (
	"strconv"
	"strings"
)

// ParseTaskID parses a task id given on the command line.
// Ids are positive integers (creation timestamps in milliseconds).
func ParseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidTaskID(s)
	}
	return id, nil
}

// JoinText joins command-line words into a single task text, so
// `tasklist add Buy milk` and `tasklist add "Buy milk"` behave the same.
func JoinText(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
