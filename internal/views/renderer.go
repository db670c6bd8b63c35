package views

import (
	"fmt"
	"io"
	"strconv"

	"tasklist/backend"
)

// Renderer writes a view model as plain text
type Renderer struct {
	writer io.Writer
}

// NewRenderer creates a new view renderer
func NewRenderer(writer io.Writer) *Renderer {
	return &Renderer{writer: writer}
}

// Render writes one line per visible task followed by the counter:
//
//	[ ] 1712345678901  Buy milk
//	[x] 1712345678950  Walk the dog
//
//	1 task left
func (r *Renderer) Render(vm ViewModel) {
	if vm.IsEmpty() {
		_, _ = fmt.Fprintln(r.writer, vm.Empty)
	} else {
		width := idWidth(vm.Rows)
		for _, t := range vm.Rows {
			_, _ = fmt.Fprintf(r.writer, "%s %-*d  %s\n", Checkbox(t.Completed), width, t.ID, t.Text)
		}
	}

	_, _ = fmt.Fprintln(r.writer)
	_, _ = fmt.Fprintln(r.writer, vm.Counter)
}

// Checkbox returns the text checkbox for a completion state
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// idWidth returns the widest id in digits
func idWidth(tasks []backend.Task) int {
	width := 0
	for _, t := range tasks {
		if n := len(strconv.FormatInt(t.ID, 10)); n > width {
			width = n
		}
	}
	return width
}

// RenderText is a convenience function for rendering a view model as text
func RenderText(vm ViewModel, writer io.Writer) {
	NewRenderer(writer).Render(vm)
}
