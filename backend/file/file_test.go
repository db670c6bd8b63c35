package file_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tasklist/backend"
	"tasklist/backend/file"
)

// =============================================================================
// Test Helpers
// =============================================================================

// newTestBackend creates a file backend rooted in a temp directory
func newTestBackend(t *testing.T) (*file.Backend, string) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "data")
	be, err := file.New(file.Config{Dir: dir})
	if err != nil {
		t.Fatalf("failed to create file backend: %v", err)
	}
	t.Cleanup(func() { _ = be.Close() })
	return be, dir
}

// =============================================================================
// Get / Put
// =============================================================================

func TestFileBackendGetMissingKey(t *testing.T) {
	be, _ := newTestBackend(t)

	data, err := be.Get(context.Background(), "tasks")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil for missing key, got %q", data)
	}
}

func TestFileBackendPutCreatesDirectoryAndFile(t *testing.T) {
	be, dir := newTestBackend(t)
	ctx := context.Background()

	value := []byte(`[{"id":1,"text":"Buy milk","completed":false}]`)
	if err := be.Put(ctx, "tasks", value); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	onDisk, err := os.ReadFile(filepath.Join(dir, "tasks.json"))
	if err != nil {
		t.Fatalf("expected tasks.json to exist: %v", err)
	}
	if string(onDisk) != string(value) {
		t.Errorf("file content = %q, want %q", onDisk, value)
	}

	got, err := be.Get(ctx, "tasks")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if string(got) != string(value) {
		t.Errorf("Get = %q, want %q", got, value)
	}
}

func TestFileBackendPutOverwrites(t *testing.T) {
	be, dir := newTestBackend(t)
	ctx := context.Background()

	if err := be.Put(ctx, "tasks", []byte("first")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := be.Put(ctx, "tasks", []byte("second")); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, _ := be.Get(ctx, "tasks")
	if string(got) != "second" {
		t.Errorf("Get = %q, want %q", got, "second")
	}

	// No temp files should be left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir error: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestFileBackendKeysAreIndependent(t *testing.T) {
	be, _ := newTestBackend(t)
	ctx := context.Background()

	_ = be.Put(ctx, "tasks", []byte("a"))
	_ = be.Put(ctx, "archive", []byte("b"))

	a, _ := be.Get(ctx, "tasks")
	b, _ := be.Get(ctx, "archive")
	if string(a) != "a" || string(b) != "b" {
		t.Errorf("got tasks=%q archive=%q", a, b)
	}
}

func TestFileBackendRejectsUnsafeKeys(t *testing.T) {
	be, _ := newTestBackend(t)
	ctx := context.Background()

	for _, key := range []string{"", "../escape", "a/b", "with space"} {
		if err := be.Put(ctx, key, []byte("x")); err == nil {
			t.Errorf("Put(%q) expected error", key)
		}
		if _, err := be.Get(ctx, key); err == nil {
			t.Errorf("Get(%q) expected error", key)
		}
	}
}

func TestFileBackendCancelledContext(t *testing.T) {
	be, _ := newTestBackend(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := be.Put(ctx, "tasks", []byte("x")); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestFileBackendRegistered(t *testing.T) {
	if !backend.IsRegistered(file.Name) {
		t.Fatal("file backend should register itself")
	}

	slot, err := backend.OpenSlot(file.Name, t.TempDir())
	if err != nil {
		t.Fatalf("OpenSlot error: %v", err)
	}
	defer func() { _ = slot.Close() }()

	if _, ok := slot.(*file.Backend); !ok {
		t.Errorf("OpenSlot returned %T, want *file.Backend", slot)
	}
}
