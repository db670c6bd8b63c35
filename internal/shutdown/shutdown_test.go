package shutdown_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"tasklist/backend/memory"
	"tasklist/internal/shutdown"
	"tasklist/internal/store"
)

// =============================================================================
// Shutdown Manager Tests
// =============================================================================

// TestShutdownClosesSlotAfterWrites verifies pending store writes land before the slot closes
func TestShutdownClosesSlotAfterWrites(t *testing.T) {
	mgr := shutdown.NewManager()
	slot := memory.New()

	var closed atomic.Bool
	mgr.RegisterCleanup("close-slot", func(ctx context.Context) error {
		closed.Store(true)
		return slot.Close()
	})

	s, err := store.New(mgr.Context(), slot)
	if err != nil {
		t.Fatalf("store.New error: %v", err)
	}
	if _, err := s.Add(mgr.Context(), "Buy milk"); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	mgr.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := mgr.Wait(ctx); err != nil {
		t.Fatalf("Wait error: %v", err)
	}

	if !closed.Load() {
		t.Error("expected slot cleanup to run")
	}
	if data, _ := slot.Get(context.Background(), "tasks"); len(data) == 0 {
		t.Error("expected the added task to be persisted before shutdown")
	}
}

// TestShutdownCancelsContext verifies the shared context ends with shutdown
func TestShutdownCancelsContext(t *testing.T) {
	mgr := shutdown.NewManager()

	if mgr.IsShutdown() {
		t.Fatal("new manager reports shutdown")
	}

	mgr.Shutdown()

	if !mgr.IsShutdown() {
		t.Error("expected IsShutdown to return true after Shutdown call")
	}
	select {
	case <-mgr.Context().Done():
	default:
		t.Error("expected context to be cancelled after shutdown")
	}
	select {
	case <-mgr.Done():
	default:
		t.Error("expected Done channel to be closed after shutdown")
	}
}

// TestShutdownCleanupErrorsDoNotStopOthers verifies every cleanup runs
func TestShutdownCleanupErrorsDoNotStopOthers(t *testing.T) {
	mgr := shutdown.NewManager()

	var ran atomic.Int32
	mgr.RegisterCleanup("ok", func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})
	mgr.RegisterCleanup("failing", func(ctx context.Context) error {
		ran.Add(1)
		return errors.New("boom")
	})

	if err := mgr.Wait(context.Background()); err != nil {
		t.Fatalf("Wait error: %v", err)
	}
	if ran.Load() != 2 {
		t.Errorf("ran %d cleanups, want 2", ran.Load())
	}
}

// TestShutdownTimeout tests that shutdown times out if cleanup takes too long.
func TestShutdownTimeout(t *testing.T) {
	mgr := shutdown.NewManager()

	mgr.RegisterCleanup("slow-cleanup", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	mgr.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := mgr.Wait(ctx); err == nil {
		t.Error("expected timeout error")
	}
}

// TestShutdownConcurrentSafety tests that shutdown is safe to call from multiple goroutines.
func TestShutdownConcurrentSafety(t *testing.T) {
	mgr := shutdown.NewManager()

	var cleanupCount atomic.Int32
	mgr.RegisterCleanup("test", func(ctx context.Context) error {
		cleanupCount.Add(1)
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mgr.Shutdown()
		}()
	}
	wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = mgr.Wait(ctx)
	_ = mgr.Wait(ctx)

	if cleanupCount.Load() != 1 {
		t.Errorf("expected cleanup to be called exactly once, got %d", cleanupCount.Load())
	}
}

// TestShutdownOrder tests that cleanup functions run in LIFO order (last registered first).
func TestShutdownOrder(t *testing.T) {
	mgr := shutdown.NewManager()

	var order []string
	var mu sync.Mutex
	record := func(name string) shutdown.CleanupFunc {
		return func(ctx context.Context) error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil
		}
	}

	mgr.RegisterCleanup("close-log", record("close-log"))
	mgr.RegisterCleanup("close-slot", record("close-slot"))

	_ = mgr.Wait(context.Background())

	if len(order) != 2 || order[0] != "close-slot" || order[1] != "close-log" {
		t.Errorf("expected LIFO order [close-slot close-log], got %v", order)
	}
}
