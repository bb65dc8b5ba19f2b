package shutdown

import (
	"context"
	"errors"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"
)

func TestNewHandler(t *testing.T) {
	h := NewHandler(5*time.Second, nil)
	if h == nil {
		t.Fatal("NewHandler returned nil")
	}
	if h.timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", h.timeout)
	}
	if h.log == nil {
		t.Error("logger should default to a discard logger")
	}
	if h.done == nil {
		t.Error("done channel should be initialized")
	}
}

func TestHandler_RunReverseOrder(t *testing.T) {
	h := NewHandler(time.Second, nil)

	var mu sync.Mutex
	var order []string
	for _, name := range []string{"http", "local", "watcher"} {
		name := name
		h.OnShutdown(name, func(context.Context) error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil
		})
	}

	if err := h.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"watcher", "local", "http"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}

	select {
	case <-h.Done():
	default:
		t.Error("Done() should be closed after Run()")
	}
}

func TestHandler_RunJoinsErrors(t *testing.T) {
	h := NewHandler(time.Second, nil)
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	ran := false
	h.OnShutdown("ok", func(context.Context) error { ran = true; return nil })
	h.OnShutdown("a", func(context.Context) error { return errA })
	h.OnShutdown("b", func(context.Context) error { return errB })

	err := h.Run()
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Run() error = %v, want both hook errors", err)
	}
	if !ran {
		t.Error("hooks after a failure should still run")
	}
}

func TestHandler_HookDeadline(t *testing.T) {
	h := NewHandler(50*time.Millisecond, nil)
	h.OnShutdown("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	start := time.Now()
	err := h.Run()
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() error = %v, want deadline exceeded", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Run() took %v, want about 50ms", elapsed)
	}
}

func TestHandler_WaitContextCancel(t *testing.T) {
	h := NewHandler(time.Second, nil)
	called := make(chan struct{})
	h.OnShutdown("hook", func(context.Context) error {
		close(called)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- h.Wait(ctx) }()

	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Wait() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not return after cancel")
	}
	<-called
}

func TestHandler_WaitSignal(t *testing.T) {
	h := NewHandler(time.Second, nil)
	h.signals = []os.Signal{syscall.SIGUSR1}

	errCh := make(chan error, 1)
	go func() { errCh <- h.Wait(context.Background()) }()

	// Give Wait time to register the signal handler.
	time.Sleep(50 * time.Millisecond)
	if err := syscall.Kill(os.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatalf("Kill() error = %v", err)
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Wait() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not return after signal")
	}
}
