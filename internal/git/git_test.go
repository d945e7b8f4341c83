package git

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/notegit/notegit/internal/testutil"
)

func TestGateway_RawStatus(t *testing.T) {
	original := CommandContext
	defer func() { CommandContext = original }()
	CommandContext = testutil.MockCommandFunc("Branch: main\nWorking tree clean\n")

	gateway := NewGateway(t.TempDir(), []string{"notegit-status"}, []string{"notegit-sync"}, 0)

	output, err := gateway.RawStatus(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, "Branch: main") {
		t.Errorf("unexpected output: %q", output)
	}
}

func TestGateway_NonZeroExit(t *testing.T) {
	original := CommandContext
	defer func() { CommandContext = original }()
	CommandContext = testutil.MockFailingCommandFunc("fatal: not a repository")

	gateway := NewGateway(t.TempDir(), []string{"notegit-status"}, []string{"notegit-sync"}, 0)

	_, err := gateway.RawStatus(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected *ToolError, got %T", err)
	}
	if toolErr.TimedOut {
		t.Error("non-zero exit should not be reported as timeout")
	}
	// Output is surfaced verbatim for diagnostics.
	if !strings.Contains(toolErr.Output, "fatal: not a repository") {
		t.Errorf("Output = %q", toolErr.Output)
	}
	if !strings.Contains(toolErr.Error(), "notegit-status") {
		t.Errorf("Error() = %q", toolErr.Error())
	}
}

func TestGateway_Timeout(t *testing.T) {
	original := CommandContext
	defer func() { CommandContext = original }()
	CommandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sleep", "5")
	}

	gateway := NewGateway(t.TempDir(), []string{"notegit-status"}, []string{"notegit-sync"}, 50*time.Millisecond)

	start := time.Now()
	_, err := gateway.RawStatus(context.Background())
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took too long: %v", elapsed)
	}

	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected *ToolError, got %T", err)
	}
	if !toolErr.TimedOut {
		t.Error("expected TimedOut = true")
	}
}

func TestGateway_CallerDeadlineWins(t *testing.T) {
	original := CommandContext
	defer func() { CommandContext = original }()
	CommandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sleep", "5")
	}

	// The gateway timeout is long, but the caller's deadline is short
	// and must be honored as-is.
	gateway := NewGateway(t.TempDir(), []string{"notegit-status"}, []string{"notegit-sync"}, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := gateway.RawStatus(ctx)
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("caller deadline not honored: %v", elapsed)
	}
}

func TestGateway_Sync(t *testing.T) {
	original := CommandContext
	defer func() { CommandContext = original }()

	t.Run("success", func(t *testing.T) {
		CommandContext = testutil.MockCommandFunc("pushed 2 commits\n")
		gateway := NewGateway(t.TempDir(), nil, []string{"notegit-sync"}, 0)
		if err := gateway.Sync(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("failure surfaces output", func(t *testing.T) {
		CommandContext = testutil.MockFailingCommandFunc("merge conflict in a.md")
		gateway := NewGateway(t.TempDir(), nil, []string{"notegit-sync"}, 0)
		err := gateway.Sync(context.Background())
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		var toolErr *ToolError
		if !errors.As(err, &toolErr) {
			t.Fatalf("expected *ToolError, got %T", err)
		}
		if !strings.Contains(toolErr.Output, "merge conflict") {
			t.Errorf("Output = %q", toolErr.Output)
		}
	})
}

func TestGateway_NoCommandConfigured(t *testing.T) {
	gateway := NewGateway(t.TempDir(), nil, nil, 0)
	if _, err := gateway.RawStatus(context.Background()); err == nil {
		t.Fatal("expected error for empty argv")
	}
}
