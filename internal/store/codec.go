package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"tasklist/backend"
)

// Encode serializes the collection as a JSON array. An empty collection
// encodes as [] and HTML characters are written unescaped.
func Encode(tasks []backend.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []backend.Task{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tasks); err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses a JSON array of tasks. A JSON null decodes as an empty collection.
func Decode(data []byte) ([]backend.Task, error) {
	var tasks []backend.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	if tasks == nil {
		tasks = []backend.Task{}
	}
	return tasks, nil
}
