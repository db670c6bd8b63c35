package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tasklist/backend"
	_ "tasklist/backend/file"
	_ "tasklist/backend/memory"
	_ "tasklist/backend/sqlite"
	"tasklist/internal/cli/prompt"
	"tasklist/internal/config"
	"tasklist/internal/markdown"
	"tasklist/internal/shutdown"
	"tasklist/internal/store"
	"tasklist/internal/tui"
	"tasklist/internal/utils"
	"tasklist/internal/views"
)

// Version is set at build time
var Version = "dev"

// Result codes for CLI output (used in no-prompt mode)
const (
	ResultActionCompleted = "ACTION_COMPLETED"
	ResultInfoOnly        = "INFO_ONLY"
	ResultError           = "ERROR"
)

// cleanupTimeout bounds how long closing the slot may take
const cleanupTimeout = 5 * time.Second

// Config holds command-line overrides. Zero values defer to the config file.
type Config struct {
	NoPrompt     bool
	Verbose      bool
	OutputFormat string
	ConfigPath   string    // Path to config.yaml (for testing)
	DataDir      string    // Storage directory (for testing)
	Storage      string    // Storage backend name (for testing)
	Stdin        io.Reader // Source of prompt answers and import -, default os.Stdin
}

// Execute runs the CLI with the given arguments and IO writers
func Execute(args []string, stdout, stderr io.Writer, cfg *Config) int {
	if cfg == nil {
		cfg = &Config{}
	}
	rootCmd := NewTaskList(stdout, stderr, cfg)

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		if containsJSONFlag(args) || cfg.OutputFormat == "json" {
			outputErrorJSON(err, stdout)
		} else {
			_, _ = fmt.Fprintln(stderr, "Error:", err)
			if cfg.NoPrompt {
				_, _ = fmt.Fprintln(stdout, ResultError)
			}
		}
		return 1
	}
	return 0
}

// containsJSONFlag checks if args contain --json flag
func containsJSONFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--json" {
			return true
		}
	}
	return false
}

// NewTaskList creates the root command with injectable IO
func NewTaskList(stdout, stderr io.Writer, cfg *Config) *cobra.Command {
	if cfg == nil {
		cfg = &Config{}
	}

	cmd := &cobra.Command{
		Use:   "tasklist",
		Short: "A small task list manager",
		Long: "tasklist keeps an ordered list of tasks. Run it without arguments in a terminal\n" +
			"for the interactive list, or use the subcommands from scripts.",
		Version: Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if isTerminal(stdout) {
				return runTUI(cmd, cfg, stdout)
			}
			return runList(cmd, cfg, stdout, "")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("no-prompt", "y", false, "Disable interactive prompts")
	cmd.PersistentFlags().BoolP("verbose", "V", false, "Enable verbose/debug output")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/tasklist/config.yaml)")
	cmd.PersistentFlags().String("storage", "", "Storage backend (file, sqlite)")
	cmd.PersistentFlags().String("data-dir", "", "Directory holding the task data")

	cmd.AddCommand(newTUICmd(stdout, cfg))
	cmd.AddCommand(newAddCmd(stdout, cfg))
	cmd.AddCommand(newListCmd(stdout, cfg))
	cmd.AddCommand(newToggleCmd(stdout, cfg))
	cmd.AddCommand(newEditCmd(stdout, cfg))
	cmd.AddCommand(newDeleteCmd(stdout, cfg))
	cmd.AddCommand(newClearCmd(stdout, cfg))
	cmd.AddCommand(newExportCmd(stdout, cfg))
	cmd.AddCommand(newImportCmd(stdout, cfg))

	return cmd
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// =============================================================================
// Session
// =============================================================================

// session is the state shared by one command invocation
type session struct {
	cfg      *Config
	app      *config.Config
	store    *store.Store
	mgr      *shutdown.Manager
	stopSigs func()
	in       *bufio.Reader
}

// applyFlags copies persistent flags into cfg
func applyFlags(cmd *cobra.Command, cfg *Config) {
	if noPrompt, _ := cmd.Flags().GetBool("no-prompt"); noPrompt {
		cfg.NoPrompt = true
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Verbose = true
	}
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		cfg.OutputFormat = "json"
	}
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg.ConfigPath = path
	}
	if storage, _ := cmd.Flags().GetString("storage"); storage != "" {
		cfg.Storage = storage
	}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.DataDir = dir
	}
}

// openSession loads configuration, opens the storage slot and loads the store
func openSession(cmd *cobra.Command, cfg *Config) (*session, error) {
	applyFlags(cmd, cfg)
	if cfg.Verbose {
		utils.SetVerboseMode(true)
	}

	app, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	app.ApplyFlags(cfg.NoPrompt, cfg.OutputFormat, cfg.Storage, cfg.DataDir)
	if err := app.Validate(); err != nil {
		return nil, err
	}
	// The file may also ask for no-prompt or JSON; later output and Execute
	// need to see the effective values.
	cfg.NoPrompt = app.NoPrompt
	cfg.OutputFormat = app.OutputFormat

	name := app.Storage.Backend
	dir := app.GetDataDir()
	utils.Debugf("Opening %s storage in %s", name, dir)

	slot, err := backend.OpenSlot(name, dir)
	if errors.Is(err, backend.ErrUnknownSlot) {
		return nil, utils.ErrUnknownStorage(name, backend.SlotNames())
	}
	if err != nil {
		return nil, utils.ErrStorageUnavailable(name, err)
	}

	mgr := shutdown.NewManager()
	mgr.RegisterCleanup("close-slot", func(ctx context.Context) error {
		return slot.Close()
	})

	s, err := store.New(mgr.Context(), slot,
		store.WithKey(app.GetStorageKey()),
		store.WithFilter(app.GetDefaultFilter()),
	)
	if err != nil {
		_ = slot.Close()
		return nil, utils.ErrStorageUnavailable(name, err)
	}

	return &session{
		cfg:      cfg,
		app:      app,
		store:    s,
		mgr:      mgr,
		stopSigs: mgr.HandleSignals(),
	}, nil
}

// Context returns the context store operations run under
func (s *session) Context() context.Context {
	return s.mgr.Context()
}

// Close runs the registered cleanups
func (s *session) Close() {
	s.stopSigs()
	s.mgr.Shutdown()
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()
	if err := s.mgr.Wait(ctx); err != nil {
		utils.Warnf("Cleanup did not finish: %v", err)
	}
}

// input returns the reader every prompt of this session shares
func (s *session) input() *bufio.Reader {
	if s.in == nil {
		s.in = prompt.LineReader(s.cfg.Stdin)
	}
	return s.in
}

// JSON reports whether output should be JSON
func (s *session) JSON() bool {
	return s.app.IsJSON()
}

// result prints a result code in no-prompt mode
func (s *session) result(stdout io.Writer, code string) {
	if s.cfg.NoPrompt {
		_, _ = fmt.Fprintln(stdout, code)
	}
}

// info prints an informational message ending in INFO_ONLY
func (s *session) info(stdout io.Writer, msg string) error {
	if s.JSON() {
		return writeJSON(stdout, infoResponse{Message: msg, Result: ResultInfoOnly})
	}
	_, _ = fmt.Fprintln(stdout, msg)
	s.result(stdout, ResultInfoOnly)
	return nil
}

// action prints the outcome of a mutation ending in ACTION_COMPLETED
func (s *session) action(stdout io.Writer, action, msg string, task *backend.Task) error {
	if s.JSON() {
		return writeJSON(stdout, actionResponse{Action: action, Task: task, Message: msg, Result: ResultActionCompleted})
	}
	_, _ = fmt.Fprintln(stdout, msg)
	s.result(stdout, ResultActionCompleted)
	return nil
}

// withSession opens a session, runs fn and closes the session
func withSession(cmd *cobra.Command, cfg *Config, fn func(s *session) error) error {
	s, err := openSession(cmd, cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func notFound(id int64) string {
	return fmt.Sprintf("No task with id %d", id)
}

// =============================================================================
// TUI
// =============================================================================

func newTUICmd(stdout io.Writer, cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive task list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, cfg, stdout)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func runTUI(cmd *cobra.Command, cfg *Config, stdout io.Writer) error {
	return withSession(cmd, cfg, func(s *session) error {
		bl, err := utils.NewBackgroundLogger(s.app.IsBackgroundLoggingEnabled())
		if err != nil {
			utils.Warnf("Background log unavailable: %v", err)
		}
		prev := utils.GetLogger().SetOutput(bl)
		s.mgr.RegisterCleanup("restore-log", func(ctx context.Context) error {
			utils.GetLogger().SetOutput(prev)
			bl.Close()
			return nil
		})
		if bl.IsEnabled() {
			utils.Debugf("TUI started, logging to %s", bl.GetLogPath())
		}

		model := tui.New(s.store,
			tui.WithContext(s.Context()),
			tui.WithTransition(s.app.GetTransitionDuration()),
		)

		input := cfg.Stdin
		if input == nil {
			input = os.Stdin
		}
		p := tea.NewProgram(model,
			tea.WithAltScreen(),
			tea.WithContext(s.Context()),
			tea.WithInput(input),
			tea.WithOutput(stdout),
		)
		if _, err := p.Run(); err != nil && !s.mgr.IsShutdown() {
			return fmt.Errorf("tui: %w", err)
		}
		return nil
	})
}

// =============================================================================
// Task commands
// =============================================================================

func newAddCmd(stdout io.Writer, cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "add [text...]",
		Short: "Add a task",
		Long: "Add a task to the end of the list. Words are joined with single spaces.\n" +
			"Without text, the task is asked for interactively.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, cfg, func(s *session) error {
				text := utils.JoinText(args)
				if len(args) == 0 {
					var err error
					text, err = (&prompt.TextPrompt{
						Label:    "Task",
						Reader:   s.input(),
						Writer:   stdout,
						NoPrompt: s.cfg.NoPrompt,
					}).Run()
					if errors.Is(err, prompt.ErrNoPromptMode) {
						return utils.WrapWithSuggestion(errors.New("add needs the task text"), "Run 'tasklist add <text>'")
					}
					if errors.Is(err, prompt.ErrNoInput) {
						return s.info(stdout, "Nothing to add: task text is empty")
					}
					if err != nil {
						return err
					}
				}
				return doAdd(s, text, stdout)
			})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func doAdd(s *session, text string, stdout io.Writer) error {
	task, err := s.store.Add(s.Context(), text)
	if err != nil {
		return err
	}
	if task == nil {
		return s.info(stdout, "Nothing to add: task text is empty")
	}
	return s.action(stdout, "add", fmt.Sprintf("Added task %d: %s", task.ID, task.Text), task)
}

func newListCmd(stdout io.Writer, cfg *Config) *cobra.Command {
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show tasks",
		Long:    "Show tasks under a filter (all, active, completed) followed by the number of tasks left.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, _ := cmd.Flags().GetString("filter")
			return runList(cmd, cfg, stdout, filter)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	listCmd.Flags().StringP("filter", "f", "", "Filter: all, active or completed (default from config)")
	return listCmd
}

func runList(cmd *cobra.Command, cfg *Config, stdout io.Writer, filter string) error {
	return withSession(cmd, cfg, func(s *session) error {
		if filter != "" {
			f, ok := store.ParseFilter(filter)
			if !ok {
				return utils.ErrInvalidFilter(filter, filterNames())
			}
			s.store.SetFilter(f)
		}
		return doList(s, stdout)
	})
}

func doList(s *session, stdout io.Writer) error {
	vm := views.FromStore(s.store)
	if s.JSON() {
		if vm.Rows == nil {
			vm.Rows = []backend.Task{}
		}
		return writeJSON(stdout, listResponse{ViewModel: vm, Result: ResultInfoOnly})
	}

	views.RenderText(vm, stdout)
	s.result(stdout, ResultInfoOnly)
	return nil
}

// looksLikeID reports whether a task argument is meant as a numeric id
func looksLikeID(arg string) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	return err == nil
}

// resolveTask finds the task an argument names: a numeric id, or text matched
// against the task list with a prompt to choose when several tasks match.
// A nil task comes with the informational message to print instead.
func resolveTask(s *session, command, arg string, stdout io.Writer) (*backend.Task, string, error) {
	if arg != "" && looksLikeID(arg) {
		id, err := utils.ParseTaskID(arg)
		if err != nil {
			return nil, "", err
		}
		task, ok := s.store.Get(id)
		if !ok {
			return nil, notFound(id), nil
		}
		return &task, "", nil
	}

	tasks := s.store.Tasks()
	selector := &prompt.TaskSelector{
		Tasks:    tasks,
		Query:    arg,
		Prompt:   fmt.Sprintf("Several tasks match %q:", arg),
		Reader:   s.input(),
		Writer:   stdout,
		NoPrompt: s.cfg.NoPrompt,
	}
	if arg == "" {
		selector.Prompt = fmt.Sprintf("Choose a task to %s:", command)
	}

	task, err := selector.Run()
	switch {
	case err == nil:
		return task, "", nil
	case errors.Is(err, prompt.ErrNoTasks):
		return nil, views.EmptyMessage(store.FilterAll), nil
	case errors.Is(err, prompt.ErrNoMatches):
		return nil, fmt.Sprintf("No task matching %q", arg), nil
	case errors.Is(err, prompt.ErrSelectionCancelled):
		return nil, "Cancelled", nil
	case errors.Is(err, prompt.ErrNoPromptMode):
		if arg == "" {
			return nil, "", utils.ErrTaskRequired(command)
		}
		return nil, "", utils.ErrAmbiguousTask(arg, len(prompt.Match(tasks, arg)))
	}
	return nil, "", err
}

// taskArg returns the optional first argument naming a task
func taskArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return strings.TrimSpace(args[0])
}

func newToggleCmd(stdout io.Writer, cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [id|text]",
		Short: "Mark a task completed, or active again",
		Long: "Mark a task completed, or active again. The task is named by its id or by\n" +
			"part of its text; without either it is chosen interactively.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, cfg, func(s *session) error {
				task, msg, err := resolveTask(s, "toggle", taskArg(args), stdout)
				if err != nil {
					return err
				}
				if task == nil {
					return s.info(stdout, msg)
				}
				return doToggle(s, task.ID, stdout)
			})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func doToggle(s *session, id int64, stdout io.Writer) error {
	task, err := s.store.Toggle(s.Context(), id)
	if err != nil {
		return err
	}
	if task == nil {
		return s.info(stdout, notFound(id))
	}

	verb := "Reopened"
	if task.Completed {
		verb = "Completed"
	}
	return s.action(stdout, "toggle", fmt.Sprintf("%s task: %s", verb, task.Text), task)
}

func newEditCmd(stdout io.Writer, cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id|text> [new text...]",
		Short: "Change the text of a task",
		Long: "Change the text of a task. Without new text it is asked for interactively.\n" +
			"Empty new text leaves the task unchanged.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, cfg, func(s *session) error {
				task, msg, err := resolveTask(s, "edit", taskArg(args), stdout)
				if err != nil {
					return err
				}
				if task == nil {
					return s.info(stdout, msg)
				}

				text := utils.JoinText(args[1:])
				if len(args) == 1 && !s.cfg.NoPrompt {
					_, _ = fmt.Fprintf(stdout, "Editing: %s\n", task.Text)
					text, err = (&prompt.TextPrompt{Label: "New text", Reader: s.input(), Writer: stdout}).Run()
					if err != nil && !errors.Is(err, prompt.ErrNoInput) {
						return err
					}
				}
				return doEdit(s, task.ID, text, stdout)
			})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func doEdit(s *session, id int64, text string, stdout io.Writer) error {
	if _, ok := s.store.Get(id); !ok {
		return s.info(stdout, notFound(id))
	}

	changed, err := s.store.Edit(s.Context(), id, text)
	if err != nil {
		return err
	}
	if !changed {
		if strings.TrimSpace(text) == "" {
			return s.info(stdout, "Task unchanged: new text is empty")
		}
		return s.info(stdout, "Task unchanged")
	}

	task, _ := s.store.Get(id)
	return s.action(stdout, "edit", fmt.Sprintf("Updated task %d: %s", task.ID, task.Text), &task)
}

func newDeleteCmd(stdout io.Writer, cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:     "delete [id|text]",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Long:    "Delete a task named by its id or by part of its text; without either it is chosen interactively.",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, cfg, func(s *session) error {
				task, msg, err := resolveTask(s, "delete", taskArg(args), stdout)
				if err != nil {
					return err
				}
				if task == nil {
					return s.info(stdout, msg)
				}
				return doDelete(s, task.ID, stdout)
			})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func doDelete(s *session, id int64, stdout io.Writer) error {
	task, ok := s.store.Get(id)
	if !ok {
		return s.info(stdout, notFound(id))
	}

	if _, err := s.store.Remove(s.Context(), id); err != nil {
		return err
	}
	return s.action(stdout, "delete", fmt.Sprintf("Deleted task: %s", task.Text), &task)
}

func newClearCmd(stdout io.Writer, cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:     "clear-completed",
		Aliases: []string{"clear"},
		Short:   "Delete every completed task",
		Long:    "Delete every completed task. Asks for confirmation unless --no-prompt is set.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, cfg, func(s *session) error {
				return doClear(s, stdout)
			})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func doClear(s *session, stdout io.Writer) error {
	n := s.store.CompletedCount()
	if n == 0 {
		return s.info(stdout, "No completed tasks to clear")
	}

	if !s.cfg.NoPrompt {
		if !utils.PromptYesNo(fmt.Sprintf("Delete %d completed %s?", n, plural(n, "task")), s.input(), stdout) {
			return s.info(stdout, "Cancelled")
		}
	}

	removed, err := s.store.ClearCompleted(s.Context())
	if err != nil {
		return err
	}
	return s.action(stdout, "clear", fmt.Sprintf("Cleared %d completed %s", removed, plural(removed, "task")), nil)
}

// =============================================================================
// Export and import
// =============================================================================

// Export formats
var exportFormats = []string{"markdown", "json"}

func newExportCmd(stdout io.Writer, cfg *Config) *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write all tasks to stdout",
		Long: "Write all tasks to stdout as a markdown checklist or as the stored JSON array.\n" +
			"Output is meant for redirection, so no result code is printed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			return withSession(cmd, cfg, func(s *session) error {
				if format == "" {
					format = "markdown"
					if s.JSON() {
						format = "json"
					}
				}
				return doExport(s, strings.ToLower(format), stdout)
			})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	exportCmd.Flags().String("format", "", "Export format: markdown or json (default markdown, json with --json)")
	return exportCmd
}

func doExport(s *session, format string, stdout io.Writer) error {
	tasks := s.store.Tasks()

	switch format {
	case "markdown", "md":
		_, _ = io.WriteString(stdout, markdown.Format(tasks))
	case "json":
		data, err := store.Encode(tasks)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(stdout, string(data))
	default:
		return utils.ErrInvalidFormat(format, exportFormats)
	}
	return nil
}

func newImportCmd(stdout io.Writer, cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Append tasks from a markdown checklist",
		Long:  "Append every '- [ ] text' and '- [x] text' line of a markdown file as a new task. Use - for stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, cfg, func(s *session) error {
				return doImport(s, args[0], stdout)
			})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func doImport(s *session, path string, stdout io.Writer) error {
	var r io.Reader
	if path == "-" {
		r = s.input()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	items, err := markdown.Parse(r)
	if err != nil {
		return err
	}

	tasks := make([]backend.Task, len(items))
	for i, item := range items {
		tasks[i] = backend.Task{Text: item.Text, Completed: item.Completed}
	}

	n, err := s.store.Import(s.Context(), tasks)
	if err != nil {
		return err
	}
	if n == 0 {
		return s.info(stdout, fmt.Sprintf("No tasks found in %s", path))
	}
	return s.action(stdout, "import", fmt.Sprintf("Imported %d %s", n, plural(n, "task")), nil)
}

// =============================================================================
// Output helpers
// =============================================================================

type listResponse struct {
	views.ViewModel
	Result string `json:"result"`
}

type actionResponse struct {
	Action  string        `json:"action"`
	Task    *backend.Task `json:"task,omitempty"`
	Message string        `json:"message"`
	Result  string        `json:"result"`
}

type infoResponse struct {
	Message string `json:"message"`
	Result  string `json:"result"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Code   int    `json:"code"`
	Result string `json:"result"`
}

func writeJSON(stdout io.Writer, v any) error {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout, string(jsonBytes))
	return nil
}

// outputErrorJSON outputs error in JSON format
func outputErrorJSON(err error, stdout io.Writer) {
	response := errorResponse{
		Error:  err.Error(),
		Code:   1,
		Result: ResultError,
	}

	jsonBytes, _ := json.Marshal(response)
	_, _ = fmt.Fprintln(stdout, string(jsonBytes))
}

func filterNames() []string {
	names := make([]string, len(store.Filters))
	for i, f := range store.Filters {
		names[i] = string(f)
	}
	return names
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
