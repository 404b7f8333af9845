package executor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testwright/testwright/pkg/security/workspace"
	"github.com/testwright/testwright/pkg/types"
)

func testGuard(t *testing.T) *workspace.Guard {
	t.Helper()
	guard, err := workspace.NewGuard(t.TempDir())
	require.NoError(t, err)
	return guard
}

func generatedCases(framework types.Framework) []*types.TestCase {
	first := &types.TestCase{ID: "login-001", Name: "Valid Login"}
	first.SetCode(framework, "// code for login-001\n")
	second := &types.TestCase{ID: "login-002", Name: "Invalid Username"}
	second.SetCode(framework, "// code for login-002\n")
	return []*types.TestCase{first, second}
}

// recordingTerminal captures sent commands with their timestamps.
type recordingTerminal struct {
	commands []string
	sentAt   []time.Time
	sendErr  error
}

func (r *recordingTerminal) Send(ctx context.Context, command string) error {
	r.commands = append(r.commands, command)
	r.sentAt = append(r.sentAt, time.Now())
	return r.sendErr
}

func (r *recordingTerminal) WaitReady(ctx context.Context) error { return nil }
func (r *recordingTerminal) Focus() error                        { return nil }
func (r *recordingTerminal) Dispose() error                      { return nil }

type recordingFactory struct {
	terminal *recordingTerminal
}

func (f *recordingFactory) Create(name, workingDir string) (Terminal, error) {
	return f.terminal, nil
}

func TestBuildPlan_WritesFilesAndSuite(t *testing.T) {
	guard := testGuard(t)
	orchestrator := NewOrchestrator(guard)

	config := &RunConfig{
		Framework:    types.FrameworkPlaywright,
		Mode:         ModeHeadless,
		WorkspaceDir: guard.WorkspaceDir(),
	}

	plan, err := orchestrator.BuildPlan(generatedCases(types.FrameworkPlaywright), config)
	require.NoError(t, err)

	expectedDir := filepath.Join("tests", "playwright", "generated")
	require.Len(t, plan.Files, 3)
	assert.Equal(t, filepath.Join(expectedDir, "login-001.spec.ts"), plan.Files[0])
	assert.Equal(t, filepath.Join(expectedDir, "login-002.spec.ts"), plan.Files[1])
	// The suite file is always last.
	assert.Equal(t, filepath.Join(expectedDir, "suite.spec.ts"), plan.Files[2])

	for _, file := range plan.Files {
		_, err := os.Stat(filepath.Join(guard.WorkspaceDir(), file))
		assert.NoError(t, err, "missing %s", file)
	}

	suite, err := os.ReadFile(filepath.Join(guard.WorkspaceDir(), expectedDir, "suite.spec.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(suite), "import './login-001.spec';")
}

func TestBuildPlan_MissingCodeFails(t *testing.T) {
	guard := testGuard(t)
	orchestrator := NewOrchestrator(guard)

	cases := []*types.TestCase{{ID: "login-001", Name: "Valid Login"}}
	config := &RunConfig{
		Framework:    types.FrameworkPlaywright,
		Mode:         ModeHeadless,
		WorkspaceDir: guard.WorkspaceDir(),
	}

	_, err := orchestrator.BuildPlan(cases, config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login-001")
}

func TestBuildPlan_ArtifactRulesEnforced(t *testing.T) {
	guard := testGuard(t)
	rules, err := workspace.NewPathRules([]string{"docs/**"}, nil)
	require.NoError(t, err)
	guard.SetArtifactRules(rules)

	orchestrator := NewOrchestrator(guard)
	config := &RunConfig{
		Framework:    types.FrameworkPlaywright,
		Mode:         ModeHeadless,
		WorkspaceDir: guard.WorkspaceDir(),
	}

	_, err = orchestrator.BuildPlan(generatedCases(types.FrameworkPlaywright), config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not permitted")
}

func TestCommands_Playwright(t *testing.T) {
	commands, err := Commands(types.FrameworkPlaywright, ModeHeadless, "chromium")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"npx playwright --version || npm install -D @playwright/test",
		"npx playwright install",
		"npx playwright test tests/playwright/generated --project=chromium",
	}, commands)
}

func TestCommands_PlaywrightHeaded(t *testing.T) {
	commands, err := Commands(types.FrameworkPlaywright, ModeHeaded, "")
	require.NoError(t, err)
	require.Len(t, commands, 3)
	assert.Equal(t, "npx playwright test tests/playwright/generated --headed", commands[2])
}

func TestCommands_CypressHeadless(t *testing.T) {
	commands, err := Commands(types.FrameworkCypress, ModeHeadless, "chrome")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"npx cypress --version || npm install -D cypress",
		`npx cypress run --spec "tests/cypress/generated/**" --browser chrome`,
	}, commands)
}

func TestCommands_CypressHeaded(t *testing.T) {
	commands, err := Commands(types.FrameworkCypress, ModeHeaded, "")
	require.NoError(t, err)
	assert.Equal(t, "npx cypress open", commands[1])
}

func TestCommands_Selenium(t *testing.T) {
	_, err := Commands(types.FrameworkSelenium, ModeHeadless, "")
	assert.Error(t, err)
}

func TestExecute_SendsCommandsInOrder(t *testing.T) {
	guard := testGuard(t)
	orchestrator := NewOrchestrator(guard, WithPacing(time.Millisecond))

	terminal := &recordingTerminal{}
	plan := &types.ExecutionPlan{
		Framework: types.FrameworkPlaywright,
		Commands:  []string{"echo one", "echo two", "echo three"},
	}

	err := orchestrator.Execute(context.Background(), plan, &recordingFactory{terminal: terminal})
	require.NoError(t, err)
	assert.Equal(t, plan.Commands, terminal.commands)
}

func TestExecute_PacingBetweenCommands(t *testing.T) {
	guard := testGuard(t)
	pacing := 30 * time.Millisecond
	orchestrator := NewOrchestrator(guard, WithPacing(pacing))

	terminal := &recordingTerminal{}
	plan := &types.ExecutionPlan{Commands: []string{"echo one", "echo two"}}

	err := orchestrator.Execute(context.Background(), plan, &recordingFactory{terminal: terminal})
	require.NoError(t, err)
	require.Len(t, terminal.sentAt, 2)
	assert.GreaterOrEqual(t, terminal.sentAt[1].Sub(terminal.sentAt[0]), pacing)
}

func TestExecute_CommandFailureStopsSequence(t *testing.T) {
	guard := testGuard(t)
	orchestrator := NewOrchestrator(guard, WithPacing(time.Millisecond))

	terminal := &recordingTerminal{sendErr: errors.New("exit 1")}
	plan := &types.ExecutionPlan{Commands: []string{"bad command", "never runs"}}

	err := orchestrator.Execute(context.Background(), plan, &recordingFactory{terminal: terminal})
	require.Error(t, err)
	assert.Len(t, terminal.commands, 1)
}

func TestExecute_ContextCancellation(t *testing.T) {
	guard := testGuard(t)
	orchestrator := NewOrchestrator(guard, WithPacing(time.Minute))

	terminal := &recordingTerminal{}
	plan := &types.ExecutionPlan{Commands: []string{"echo one", "echo two"}}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := orchestrator.Execute(ctx, plan, &recordingFactory{terminal: terminal})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, terminal.commands, 1)
}

func TestGeneratedDir(t *testing.T) {
	assert.Equal(t, filepath.Join("tests", "cypress", "generated"), GeneratedDir(types.FrameworkCypress))
}
