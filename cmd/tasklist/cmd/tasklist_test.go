package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// =============================================================================
// Root Command Tests
// =============================================================================

// testConfig returns a Config pointing at a fresh temp config and data dir
func testConfig(t *testing.T, yamlContent string) *Config {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if yamlContent == "" {
		yamlContent = "logging:\n  background_enabled: false\n"
	}
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return &Config{
		NoPrompt:   true,
		ConfigPath: configPath,
		DataDir:    filepath.Join(tmpDir, "data"),
		Storage:    "file",
	}
}

func run(t *testing.T, cfg *Config, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(args, &stdout, &stderr, cfg)
	return stdout.String(), stderr.String(), code
}

func TestHelpListsCommands(t *testing.T) {
	stdout, _, code := run(t, testConfig(t, ""), "--help")

	if code != 0 {
		t.Fatalf("--help exit code = %d", code)
	}
	for _, name := range []string{"add", "list", "toggle", "edit", "delete", "clear-completed", "export", "import", "tui"} {
		if !strings.Contains(stdout, name) {
			t.Errorf("help output missing %q:\n%s", name, stdout)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	stdout, _, code := run(t, testConfig(t, ""), "--version")

	if code != 0 {
		t.Fatalf("--version exit code = %d", code)
	}
	if !strings.Contains(stdout, Version) {
		t.Errorf("version output = %q, want it to contain %q", stdout, Version)
	}
}

func TestRootListsWhenNotTerminal(t *testing.T) {
	stdout, stderr, code := run(t, testConfig(t, ""))

	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, "No tasks yet!") {
		t.Errorf("root without a terminal should list, got %q", stdout)
	}
	if !strings.Contains(stdout, ResultInfoOnly) {
		t.Errorf("expected %s in %q", ResultInfoOnly, stdout)
	}
}

func TestRootRejectsArgs(t *testing.T) {
	_, stderr, code := run(t, testConfig(t, ""), "bogus")

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "Error:") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestUnknownStorage(t *testing.T) {
	cfg := testConfig(t, "")
	cfg.Storage = "redis"

	stdout, stderr, code := run(t, cfg, "list")

	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "unknown storage backend: redis") {
		t.Errorf("stderr = %q", stderr)
	}
	if !strings.Contains(stdout, ResultError) {
		t.Errorf("stdout = %q, want %s", stdout, ResultError)
	}
}

func TestStorageFlagOverridesConfig(t *testing.T) {
	cfg := testConfig(t, "storage:\n  backend: file\nlogging:\n  background_enabled: false\n")
	cfg.Storage = ""

	_, stderr, code := run(t, cfg, "--storage", "sqlite", "add", "x")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(cfg.DataDir, "tasklist.db")); err != nil {
		t.Errorf("expected sqlite database: %v", err)
	}
}

// =============================================================================
// Output Format Tests
// =============================================================================

func TestJSONErrorOutput(t *testing.T) {
	stdout, _, code := run(t, testConfig(t, ""), "--json", "toggle", "0")

	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	var resp errorResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(stdout)), &resp); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if resp.Result != ResultError || resp.Code != 1 || !strings.Contains(resp.Error, "invalid task id") {
		t.Errorf("resp = %+v", resp)
	}
}

func TestOutputFormatFromConfig(t *testing.T) {
	cfg := testConfig(t, "output_format: json\nlogging:\n  background_enabled: false\n")

	stdout, stderr, code := run(t, cfg, "add", "Buy", "milk")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}

	var resp actionResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(stdout)), &resp); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if resp.Action != "add" || resp.Task == nil || resp.Task.Text != "Buy milk" || resp.Result != ResultActionCompleted {
		t.Errorf("resp = %+v", resp)
	}
}

func TestNoPromptFromConfig(t *testing.T) {
	cfg := testConfig(t, "no_prompt: true\nlogging:\n  background_enabled: false\n")
	cfg.NoPrompt = false

	stdout, _, code := run(t, cfg, "add", "x")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout, ResultActionCompleted) {
		t.Errorf("no_prompt in config should print result codes, got %q", stdout)
	}
}

func TestResultCodesHiddenWhenPrompting(t *testing.T) {
	cfg := testConfig(t, "")
	cfg.NoPrompt = false

	stdout, _, _ := run(t, cfg, "add", "x")
	if strings.Contains(stdout, ResultActionCompleted) {
		t.Errorf("result code printed in interactive mode: %q", stdout)
	}
}

func TestExportHasNoResultCode(t *testing.T) {
	cfg := testConfig(t, "")
	run(t, cfg, "add", "x")

	stdout, _, code := run(t, cfg, "export")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if stdout != "- [ ] x\n" {
		t.Errorf("export = %q", stdout)
	}
}

func TestExportDefaultsToJSONWithJSONFlag(t *testing.T) {
	cfg := testConfig(t, "")
	run(t, cfg, "add", "x")

	stdout, _, _ := run(t, cfg, "--json", "export")
	if !strings.HasPrefix(stdout, "[{") {
		t.Errorf("export --json = %q, want stored JSON array", stdout)
	}
}

// =============================================================================
// Helper Tests
// =============================================================================

func TestPlural(t *testing.T) {
	if plural(1, "task") != "task" || plural(0, "task") != "tasks" || plural(2, "task") != "tasks" {
		t.Error("unexpected plural forms")
	}
}

func TestFilterNames(t *testing.T) {
	if got := strings.Join(filterNames(), ","); got != "all,active,completed" {
		t.Errorf("filterNames = %s", got)
	}
}

func TestContainsJSONFlag(t *testing.T) {
	if !containsJSONFlag([]string{"list", "--json"}) {
		t.Error("expected --json to be found")
	}
	if containsJSONFlag([]string{"list"}) {
		t.Error("did not expect --json")
	}
}
