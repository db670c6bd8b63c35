package file_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"tasklist/internal/testutil"
)

// =============================================================================
// Persistence and export/import tests (file storage)
// =============================================================================

func TestFileStorageFormatCLI(t *testing.T) {
	cli := testutil.NewCLITest(t)
	id := cli.AddTask("Buy milk")

	data, err := os.ReadFile(filepath.Join(cli.DataDir(), "tasks.json"))
	if err != nil {
		t.Fatalf("expected tasks.json in data dir: %v", err)
	}

	var stored []map[string]any
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("stored data is not a JSON array: %v\n%s", err, data)
	}
	if len(stored) != 1 || stored[0]["text"] != "Buy milk" || stored[0]["completed"] != false {
		t.Errorf("stored = %v", stored)
	}
	if int64(stored[0]["id"].(float64)) != id {
		t.Errorf("stored id = %v, want %d", stored[0]["id"], id)
	}
}

func TestFileStorageKeyFromConfigCLI(t *testing.T) {
	cli := testutil.NewCLITest(t)
	cli.SetFullConfig("storage:\n  key: work\nlogging:\n  background_enabled: false\n")

	cli.AddTask("Ship release")

	if _, err := os.Stat(filepath.Join(cli.DataDir(), "work.json")); err != nil {
		t.Errorf("expected work.json: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cli.DataDir(), "tasks.json")); !os.IsNotExist(err) {
		t.Error("did not expect tasks.json when storage.key is set")
	}
}

func TestMalformedDataLoadsEmptyCLI(t *testing.T) {
	cli := testutil.NewCLITest(t)
	if err := os.MkdirAll(cli.DataDir(), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cli.DataDir(), "tasks.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	stdout := cli.MustExecute("list")
	testutil.AssertContains(t, stdout, "No tasks yet!")
	testutil.AssertContains(t, stdout, "0 tasks left")
}

func TestExportMarkdownCLI(t *testing.T) {
	cli := testutil.NewCLITest(t)
	cli.AddTask("Buy milk")
	done := cli.AddTask("Walk the dog")
	cli.MustExecute("toggle", strconv.FormatInt(done, 10))

	stdout := cli.MustExecute("export")

	want := "- [ ] Buy milk\n- [x] Walk the dog\n"
	if stdout != want {
		t.Errorf("export = %q, want %q", stdout, want)
	}
}

func TestExportJSONCLI(t *testing.T) {
	cli := testutil.NewCLITest(t)
	cli.AddTask("Buy milk")

	stdout := cli.MustExecute("export", "--format", "json")

	data, _ := os.ReadFile(filepath.Join(cli.DataDir(), "tasks.json"))
	if strings.TrimSpace(stdout) != string(data) {
		t.Errorf("json export %q should match stored data %q", stdout, data)
	}
}

func TestExportInvalidFormatCLI(t *testing.T) {
	cli := testutil.NewCLITest(t)

	_, stderr := cli.ExecuteAndFail("export", "--format", "csv")
	testutil.AssertContains(t, stderr, "invalid format: csv")
}

func TestImportMarkdownCLI(t *testing.T) {
	cli := testutil.NewCLITest(t)
	cli.AddTask("existing")

	path := filepath.Join(cli.TmpDir(), "todo.md")
	content := "# Groceries\n\n- [ ] Buy milk\n- [x] Buy eggs\nnot a task\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	stdout := cli.MustExecute("import", path)
	testutil.AssertContains(t, stdout, "Imported 2 tasks")
	testutil.AssertResultCode(t, stdout, testutil.ResultActionCompleted)

	export := cli.MustExecute("export")
	want := "- [ ] existing\n- [ ] Buy milk\n- [x] Buy eggs\n"
	if export != want {
		t.Errorf("after import export = %q, want %q", export, want)
	}
}

func TestImportNothingCLI(t *testing.T) {
	cli := testutil.NewCLITest(t)

	path := filepath.Join(cli.TmpDir(), "empty.md")
	if err := os.WriteFile(path, []byte("just prose\n"), 0644); err != nil {
		t.Fatal(err)
	}

	stdout := cli.MustExecute("import", path)
	testutil.AssertContains(t, stdout, "No tasks found")
	testutil.AssertResultCode(t, stdout, testutil.ResultInfoOnly)
}

func TestImportMissingFileCLI(t *testing.T) {
	cli := testutil.NewCLITest(t)

	_, stderr := cli.ExecuteAndFail("import", filepath.Join(cli.TmpDir(), "missing.md"))
	testutil.AssertContains(t, stderr, "failed to open")
}

func TestImportStdinCLI(t *testing.T) {
	cli := testutil.NewCLITest(t)
	cli.Config().Stdin = strings.NewReader("- [ ] from stdin\n")

	stdout := cli.MustExecute("import", "-")
	testutil.AssertContains(t, stdout, "Imported 1 task")
	testutil.AssertContains(t, cli.MustExecute("list"), "from stdin")
}
