// Package testutil provides testing utilities for the notegit project.
package testutil

import (
	"context"
	"os/exec"
)

// MockCommandFunc creates a mock command that outputs the given response.
// Usage: git.CommandContext = testutil.MockCommandFunc(statusOutput)
func MockCommandFunc(output string) func(ctx context.Context, name string, args ...string) *exec.Cmd {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "echo", "-n", output)
	}
}

// MockFailingCommandFunc creates a mock command that writes the given
// output and exits non-zero.
func MockFailingCommandFunc(output string) func(ctx context.Context, name string, args ...string) *exec.Cmd {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", "echo -n '"+output+"'; exit 1")
	}
}
