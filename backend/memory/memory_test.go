package memory

import (
	"context"
	"errors"
	"testing"
)

func TestGetReturnsCopy(t *testing.T) {
	b := NewWithValue("tasks", []byte("abc"))
	ctx := context.Background()

	got, err := b.Get(ctx, "tasks")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	got[0] = 'x'

	again, _ := b.Get(ctx, "tasks")
	if string(again) != "abc" {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}
}

func TestPutCountsAndFails(t *testing.T) {
	b := New()
	ctx := context.Background()

	if err := b.Put(ctx, "tasks", []byte("[]")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if b.Puts() != 1 {
		t.Errorf("Puts = %d, want 1", b.Puts())
	}

	b.PutErr = errors.New("disk full")
	if err := b.Put(ctx, "tasks", []byte("[1]")); err == nil {
		t.Fatal("expected PutErr to be returned")
	}
	got, _ := b.Get(ctx, "tasks")
	if string(got) != "[]" {
		t.Errorf("failed Put changed the value: %q", got)
	}
	if b.Puts() != 1 {
		t.Errorf("Puts = %d, want 1", b.Puts())
	}
}
