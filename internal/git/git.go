// Package git tracks the working tree state of the vault by invoking an
// external version-control tool as an opaque subprocess. The tool's
// status output follows a fixed line grammar (see ParseStatus); the
// sync command is contracted on exit code only.
package git

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// CommandContext creates the exec.Cmd used to invoke the external tool.
// It can be replaced in tests to mock command execution.
var CommandContext = exec.CommandContext

// DefaultTimeout bounds a single external tool invocation when the
// caller's context carries no deadline.
const DefaultTimeout = 30 * time.Second

// ToolError reports a failed external tool invocation: non-zero exit or
// timeout. Output carries the tool's combined stdout/stderr verbatim
// for diagnostics. Failures are never retried automatically.
type ToolError struct {
	Command  string
	Output   string
	TimedOut bool
	Err      error
}

func (e *ToolError) Error() string {
	if e.TimedOut {
		return "external tool timed out: " + e.Command
	}
	msg := "external tool failed: " + e.Command
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *ToolError) Unwrap() error { return e.Err }

// Gateway invokes the external status and sync commands in the vault
// directory.
type Gateway struct {
	dir        string
	statusArgv []string
	syncArgv   []string
	timeout    time.Duration
}

// NewGateway creates a gateway running commands in dir. A zero timeout
// falls back to DefaultTimeout.
func NewGateway(dir string, statusArgv, syncArgv []string, timeout time.Duration) *Gateway {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Gateway{
		dir:        dir,
		statusArgv: statusArgv,
		syncArgv:   syncArgv,
		timeout:    timeout,
	}
}

// RawStatus invokes the external status command and returns its output
// verbatim.
func (g *Gateway) RawStatus(ctx context.Context) (string, error) {
	return g.run(ctx, g.statusArgv)
}

// Sync invokes the external sync command. Success is the exit code;
// on failure stdout/stderr are surfaced through the ToolError.
func (g *Gateway) Sync(ctx context.Context) error {
	_, err := g.run(ctx, g.syncArgv)
	return err
}

func (g *Gateway) run(ctx context.Context, argv []string) (string, error) {
	if len(argv) == 0 {
		return "", errors.New("no external command configured")
	}

	// Apply the gateway timeout if the context has no deadline, so an
	// unresponsive tool fails deterministically instead of hanging.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	cmd := CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = g.dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", &ToolError{
			Command:  strings.Join(argv, " "),
			Output:   string(output),
			TimedOut: ctx.Err() == context.DeadlineExceeded,
			Err:      err,
		}
	}
	return string(output), nil
}
