package executor

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalTerminal_Send(t *testing.T) {
	var stdout bytes.Buffer
	factory := &LocalTerminalFactory{Stdout: &stdout}

	terminal, err := factory.Create("test", t.TempDir())
	require.NoError(t, err)
	defer terminal.Dispose()

	require.NoError(t, terminal.WaitReady(context.Background()))
	require.NoError(t, terminal.Send(context.Background(), "echo hello"))
	assert.Contains(t, stdout.String(), "hello")
}

func TestLocalTerminal_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer
	factory := &LocalTerminalFactory{Stdout: &stdout}

	terminal, err := factory.Create("test", dir)
	require.NoError(t, err)

	require.NoError(t, terminal.Send(context.Background(), "pwd"))
	assert.Contains(t, stdout.String(), dir)
}

func TestLocalTerminal_CommandFailure(t *testing.T) {
	factory := &LocalTerminalFactory{}
	terminal, err := factory.Create("test", t.TempDir())
	require.NoError(t, err)

	err = terminal.Send(context.Background(), "exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command failed")
}

func TestLocalTerminal_Cancelled(t *testing.T) {
	factory := &LocalTerminalFactory{}
	terminal, err := factory.Create("test", t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = terminal.Send(ctx, "sleep 5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
}
