package git

import (
	"context"
	"os/exec"
	"sync/atomic"
	"testing"
	"time"

	"github.com/notegit/notegit/internal/testutil"
)

func newTestPoller(window time.Duration) *Poller {
	gateway := NewGateway("", []string{"notegit-status"}, []string{"notegit-sync"}, 0)
	return NewPoller(gateway, window)
}

func TestPoller_RefreshReplacesSnapshot(t *testing.T) {
	original := CommandContext
	defer func() { CommandContext = original }()
	CommandContext = testutil.MockCommandFunc("Branch: main\nUncommitted: 2\nM  a.md\n")

	poller := newTestPoller(time.Hour)
	defer poller.Close()

	if _, ok := poller.Last(); ok {
		t.Error("expected no snapshot before the first poll")
	}

	status, err := poller.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Branch != "main" || status.ChangeCount != 2 {
		t.Errorf("unexpected status: %+v", status)
	}

	last, ok := poller.Last()
	if !ok {
		t.Fatal("expected a cached snapshot")
	}
	if last.Branch != "main" {
		t.Errorf("Last().Branch = %q", last.Branch)
	}
}

func TestPoller_FailedRefreshKeepsPreviousSnapshot(t *testing.T) {
	original := CommandContext
	defer func() { CommandContext = original }()

	poller := newTestPoller(time.Hour)
	defer poller.Close()

	CommandContext = testutil.MockCommandFunc("Branch: main\nWorking tree clean\n")
	if _, err := poller.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	CommandContext = testutil.MockFailingCommandFunc("tool exploded")
	if _, err := poller.Refresh(context.Background()); err == nil {
		t.Fatal("expected error from failed poll")
	}

	last, ok := poller.Last()
	if !ok {
		t.Fatal("previous snapshot should survive a failed poll")
	}
	if last.Branch != "main" || !last.Clean {
		t.Errorf("previous snapshot was disturbed: %+v", last)
	}
}

func TestPoller_DebounceCollapsesBurst(t *testing.T) {
	original := CommandContext
	defer func() { CommandContext = original }()

	var calls atomic.Int32
	CommandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		calls.Add(1)
		return exec.CommandContext(ctx, "echo", "-n", "Branch: main\n")
	}

	const window = 100 * time.Millisecond
	poller := newTestPoller(window)
	defer poller.Close()

	// Three triggers inside the window must collapse into exactly one
	// refresh, fired only after the window elapses from the last call.
	for i := 0; i < 3; i++ {
		poller.RefreshDebounced()
		time.Sleep(10 * time.Millisecond)
	}

	// Inside the window: nothing has fired yet.
	if n := calls.Load(); n != 0 {
		t.Errorf("refresh fired during the window: %d calls", n)
	}

	time.Sleep(window + 200*time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("got %d refresh invocations, want exactly 1", n)
	}

	if _, ok := poller.Last(); !ok {
		t.Error("expected the debounced refresh to cache a snapshot")
	}
}

func TestPoller_CloseCancelsPendingRefresh(t *testing.T) {
	original := CommandContext
	defer func() { CommandContext = original }()

	var calls atomic.Int32
	CommandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		calls.Add(1)
		return exec.CommandContext(ctx, "echo", "-n", "Branch: main\n")
	}

	poller := newTestPoller(50 * time.Millisecond)
	poller.RefreshDebounced()
	poller.Close()

	time.Sleep(200 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Errorf("refresh fired after Close: %d calls", n)
	}
}
