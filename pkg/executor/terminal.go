package executor

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// Terminal is the capability the orchestrator drives to run commands. The
// host environment supplies the implementation; LocalTerminal is the
// built-in shell-backed one.
type Terminal interface {
	// Send runs one shell command in the terminal's working directory.
	Send(ctx context.Context, command string) error

	// WaitReady blocks until the terminal can accept commands.
	WaitReady(ctx context.Context) error

	// Focus brings the terminal to the foreground, where the host
	// supports that.
	Focus() error

	// Dispose releases the terminal.
	Dispose() error
}

// TerminalFactory creates terminals bound to a working directory.
type TerminalFactory interface {
	Create(name, workingDir string) (Terminal, error)
}

// LocalTerminal runs commands through the local shell. Output is streamed
// to the configured writers as it is produced.
type LocalTerminal struct {
	workingDir string
	stdout     io.Writer
	stderr     io.Writer
}

// LocalTerminalFactory creates LocalTerminals writing to the given streams.
type LocalTerminalFactory struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Create returns a LocalTerminal bound to workingDir. The name is accepted
// for interface parity; a local shell has no titled window.
func (f *LocalTerminalFactory) Create(name, workingDir string) (Terminal, error) {
	stdout := f.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := f.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	return &LocalTerminal{
		workingDir: workingDir,
		stdout:     stdout,
		stderr:     stderr,
	}, nil
}

// Send runs the command via `sh -c` in the terminal's working directory and
// waits for it to finish. The context cancels the process.
func (t *LocalTerminal) Send(ctx context.Context, command string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = t.workingDir
	cmd.Stdout = t.stdout
	cmd.Stderr = t.stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("command cancelled: %w", ctx.Err())
		}
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

// WaitReady is immediate for a local shell.
func (t *LocalTerminal) WaitReady(ctx context.Context) error {
	return ctx.Err()
}

// Focus is a no-op for a local shell.
func (t *LocalTerminal) Focus() error { return nil }

// Dispose is a no-op for a local shell.
func (t *LocalTerminal) Dispose() error { return nil }
