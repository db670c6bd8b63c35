// Package tui provides a terminal user interface for the task list.
package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tasklist/backend"
	"tasklist/internal/store"
	"tasklist/internal/utils"
	"tasklist/internal/views"
)

// DefaultTransition is how long a removed row stays on screen
const DefaultTransition = 300 * time.Millisecond

// Mode indicates the current input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAdd
	ModeEdit
)

// row is one line of the list; ghost rows are already gone from the
// current view and are only drawn until their transition expires
type row struct {
	task  backend.Task
	ghost bool
}

// ghost keeps a removed row on screen. pos is the collection index the task
// was deleted from, or -1 when the task still exists but left the filter.
type ghost struct {
	task backend.Task
	pos  int
	seq  int
}

// Model represents the TUI state
type Model struct {
	store *store.Store
	ctx   context.Context

	// Selection
	cursor int

	// Mode and input
	mode   Mode
	input  textinput.Model
	editor textinput.Model
	editID int64

	// Transitions
	transition time.Duration
	ghosts     map[int64]ghost
	seq        int

	keys      KeyMap
	help      help.Model
	clipboard func(string) error

	status string
	err    error

	// UI dimensions
	width  int
	height int

	// Styles
	titleStyle     lipgloss.Style
	selectedStyle  lipgloss.Style
	completedStyle lipgloss.Style
	ghostStyle     lipgloss.Style
	emptyStyle     lipgloss.Style
	tabStyle       lipgloss.Style
	activeTabStyle lipgloss.Style
	hintStyle      lipgloss.Style
	errorStyle     lipgloss.Style
}

// Option configures a Model
type Option func(*Model)

// WithContext sets the context passed to store mutations
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// WithTransition sets how long deleted or filtered-out rows stay dimmed.
// Zero removes them immediately.
func WithTransition(d time.Duration) Option {
	return func(m *Model) {
		if d >= 0 {
			m.transition = d
		}
	}
}

// WithClipboard replaces the function used by the copy key
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.clipboard = write
		}
	}
}

// Message types
type ghostExpiredMsg struct {
	id  int64
	seq int
}

type statusMsg struct {
	text string
	err  error
}

// New creates a new TUI model over s
func New(s *store.Store, opts ...Option) *Model {
	input := textinput.New()
	input.Placeholder = "What needs to be done?"
	input.Prompt = "+ "
	input.CharLimit = 256

	editor := textinput.New()
	editor.Prompt = ""
	editor.CharLimit = 256

	m := &Model{
		store:      s,
		ctx:        context.Background(),
		mode:       ModeNormal,
		input:      input,
		editor:     editor,
		transition: DefaultTransition,
		ghosts:     make(map[int64]ghost),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		clipboard:  clipboard.WriteAll,
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		selectedStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		completedStyle: lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(lipgloss.Color("240")),
		ghostStyle: lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color("238")),
		emptyStyle: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("245")),
		tabStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1),
		activeTabStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		hintStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		errorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ghostExpiredMsg:
		if g, ok := m.ghosts[msg.id]; ok && g.seq == msg.seq {
			delete(m.ghosts, msg.id)
			m.clampCursor()
		}
		return m, nil

	case statusMsg:
		m.status = msg.text
		if msg.err != nil {
			m.setErr(msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		switch m.mode {
		case ModeAdd:
			return m.handleAddMode(msg)
		case ModeEdit:
			return m.handleEditMode(msg)
		}
		return m.handleNormalMode(msg)
	}

	return m, nil
}

func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Add):
		m.mode = ModeAdd
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggleSelected()

	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteSelected()

	case key.Matches(msg, m.keys.Edit):
		return m, m.startEdit()

	case key.Matches(msg, m.keys.FilterAll):
		m.setFilter(store.FilterAll)

	case key.Matches(msg, m.keys.FilterAct):
		m.setFilter(store.FilterActive)

	case key.Matches(msg, m.keys.FilterDone):
		m.setFilter(store.FilterCompleted)

	case key.Matches(msg, m.keys.CycleFilter):
		m.setFilter(m.store.Filter().Next())

	case key.Matches(msg, m.keys.Clear):
		removed, err := m.store.ClearCompleted(m.ctx)
		m.setErr(err)
		if removed > 0 {
			m.status = fmt.Sprintf("Cleared %d completed", removed)
		}
		m.clampCursor()

	case key.Matches(msg, m.keys.Copy):
		return m, m.copySelected()
	}

	return m, nil
}

func (m *Model) handleAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		task, err := m.store.Add(m.ctx, m.input.Value())
		m.setErr(err)
		m.input.Reset()
		if task != nil {
			m.selectTask(task.ID)
		}
		return m, nil

	case tea.KeyEsc, tea.KeyTab:
		m.input.Blur()
		m.mode = ModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc, tea.KeyTab, tea.KeyShiftTab:
		m.commitEdit()
		return m, nil

	case tea.KeyUp:
		m.commitEdit()
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case tea.KeyDown:
		m.commitEdit()
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// =============================================================================
// Actions
// =============================================================================

func (m *Model) toggleSelected() tea.Cmd {
	r, ok := m.selected()
	if !ok || r.ghost {
		return nil
	}

	updated, err := m.store.Toggle(m.ctx, r.task.ID)
	m.setErr(err)
	if updated == nil {
		return nil
	}
	if !m.store.Filter().Match(*updated) {
		return m.addGhost(*updated, -1)
	}
	return nil
}

func (m *Model) deleteSelected() tea.Cmd {
	r, ok := m.selected()
	if !ok || r.ghost {
		return nil
	}

	pos := backend.FindTask(m.store.Tasks(), r.task.ID)
	removed, err := m.store.Remove(m.ctx, r.task.ID)
	m.setErr(err)
	if !removed {
		return nil
	}
	cmd := m.addGhost(r.task, pos)
	m.clampCursor()
	return cmd
}

func (m *Model) startEdit() tea.Cmd {
	r, ok := m.selected()
	if !ok || r.ghost {
		return nil
	}

	m.mode = ModeEdit
	m.editID = r.task.ID
	m.editor.SetValue(r.task.Text)
	m.editor.CursorEnd()
	return m.editor.Focus()
}

// commitEdit applies the editor text; blank or unchanged text leaves the task as it was
func (m *Model) commitEdit() {
	_, err := m.store.Edit(m.ctx, m.editID, m.editor.Value())
	m.setErr(err)
	m.editor.Blur()
	m.editor.Reset()
	m.mode = ModeNormal
	m.editID = 0
}

func (m *Model) copySelected() tea.Cmd {
	r, ok := m.selected()
	if !ok {
		return nil
	}

	text := r.task.Text
	write := m.clipboard
	return func() tea.Msg {
		if err := write(text); err != nil {
			return statusMsg{err: fmt.Errorf("failed to copy: %w", err)}
		}
		return statusMsg{text: "Copied: " + text}
	}
}

func (m *Model) setFilter(f store.Filter) {
	m.store.SetFilter(f)
	m.ghosts = make(map[int64]ghost)
	m.clampCursor()
}

// addGhost keeps task on screen for the transition and schedules its removal
func (m *Model) addGhost(task backend.Task, pos int) tea.Cmd {
	if m.transition <= 0 {
		m.clampCursor()
		return nil
	}

	m.seq++
	seq := m.seq
	id := task.ID
	m.ghosts[id] = ghost{task: task, pos: pos, seq: seq}
	return tea.Tick(m.transition, func(time.Time) tea.Msg {
		return ghostExpiredMsg{id: id, seq: seq}
	})
}

func (m *Model) setErr(err error) {
	if err == nil {
		return
	}
	m.err = err
	utils.Errorf("%v", err)
}

// =============================================================================
// Rows and selection
// =============================================================================

// rows returns the visible tasks in collection order, with ghost rows
// interleaved where their tasks used to be
func (m *Model) rows() []row {
	tasks := m.store.Tasks()
	filter := m.store.Filter()

	var deleted []ghost
	for _, g := range m.ghosts {
		if g.pos >= 0 {
			deleted = append(deleted, g)
		}
	}
	sort.Slice(deleted, func(i, j int) bool {
		if deleted[i].pos != deleted[j].pos {
			return deleted[i].pos < deleted[j].pos
		}
		return deleted[i].seq > deleted[j].seq
	})

	rows := make([]row, 0, len(tasks)+len(deleted))
	d := 0
	for i, t := range tasks {
		for d < len(deleted) && deleted[d].pos <= i {
			rows = append(rows, row{task: deleted[d].task, ghost: true})
			d++
		}
		if filter.Match(t) {
			rows = append(rows, row{task: t})
		} else if g, ok := m.ghosts[t.ID]; ok && g.pos < 0 {
			rows = append(rows, row{task: t, ghost: true})
		}
	}
	for ; d < len(deleted); d++ {
		rows = append(rows, row{task: deleted[d].task, ghost: true})
	}
	return rows
}

func (m *Model) selected() (row, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return row{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) selectTask(id int64) {
	for i, r := range m.rows() {
		if !r.ghost && r.task.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// =============================================================================
// View
// =============================================================================

// View renders the TUI
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.titleStyle.Render("tasks"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	rows := m.rows()
	if len(rows) == 0 {
		b.WriteString(m.emptyStyle.Render(views.EmptyMessage(m.store.Filter())))
		b.WriteString("\n")
	}
	for i, r := range rows {
		m.renderRow(&b, r, i == m.cursor)
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.hintStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m *Model) renderRow(b *strings.Builder, r row, selected bool) {
	cursor := " "
	if selected {
		cursor = ">"
	}

	if m.mode == ModeEdit && !r.ghost && r.task.ID == m.editID {
		b.WriteString(cursor + " " + views.Checkbox(r.task.Completed) + " " + m.editor.View() + "\n")
		return
	}

	line := views.Checkbox(r.task.Completed) + " " + r.task.Text
	switch {
	case r.ghost:
		line = m.ghostStyle.Render(line)
	case r.task.Completed:
		line = m.completedStyle.Render(line)
	case selected:
		line = m.selectedStyle.Render(line)
	}

	b.WriteString(cursor + " " + line + "\n")
}

func (m *Model) renderFooter() string {
	counter := views.CounterText(m.store.ActiveCount())

	tabs := make([]string, 0, len(store.Filters))
	for _, f := range store.Filters {
		if f == m.store.Filter() {
			tabs = append(tabs, m.activeTabStyle.Render(f.Label()))
		} else {
			tabs = append(tabs, m.tabStyle.Render(f.Label()))
		}
	}

	parts := []string{counter, strings.Join(tabs, " ")}
	if m.store.CompletedCount() > 0 {
		parts = append(parts, m.hintStyle.Render("c: clear completed"))
	}
	return strings.Join(parts, "   ")
}

// Mode returns the current input mode
func (m *Model) Mode() Mode {
	return m.mode
}

// Err returns the last error reported by the store
func (m *Model) Err() error {
	return m.err
}
