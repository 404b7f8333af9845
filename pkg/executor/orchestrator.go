package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/testwright/testwright/pkg/codegen"
	"github.com/testwright/testwright/pkg/logging"
	"github.com/testwright/testwright/pkg/security/workspace"
	"github.com/testwright/testwright/pkg/types"
)

// CommandPacing is the fixed delay between terminal sends, giving each
// command time to settle before the next one arrives.
const CommandPacing = 2 * time.Second

// Orchestrator persists generated test files into the workspace and drives
// the framework commands through a Terminal.
type Orchestrator struct {
	guard  *workspace.Guard
	logger *logging.Logger
	pacing time.Duration
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithPacing overrides the inter-command delay. Intended for tests.
func WithPacing(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		o.pacing = d
	}
}

// WithLogger attaches a session logger.
func WithLogger(logger *logging.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// NewOrchestrator creates an orchestrator writing through the given
// workspace guard.
func NewOrchestrator(guard *workspace.Guard, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		guard:  guard,
		pacing: CommandPacing,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GeneratedDir returns the workspace-relative directory that holds
// generated files for a framework.
func GeneratedDir(framework types.Framework) string {
	return filepath.Join("tests", string(framework), "generated")
}

// BuildPlan writes one file per test case into the framework's generated
// directory, in input order, then the aggregate suite file, and returns the
// plan with the command sequence for the requested mode and browser. Every
// case must already carry code for the framework.
func (o *Orchestrator) BuildPlan(cases []*types.TestCase, config *RunConfig) (*types.ExecutionPlan, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	ext, err := codegen.FileExtension(config.Framework)
	if err != nil {
		return nil, err
	}

	dir := GeneratedDir(config.Framework)
	if err := o.ensureDir(dir); err != nil {
		return nil, err
	}

	plan := &types.ExecutionPlan{Framework: config.Framework}

	for _, tc := range cases {
		code, ok := tc.CodeFor(config.Framework)
		if !ok || code == "" {
			return nil, fmt.Errorf("test case %s has no %s code", tc.ID, config.Framework)
		}

		relPath := filepath.Join(dir, tc.ID+ext)
		if err := o.writeArtifact(relPath, code); err != nil {
			return nil, err
		}
		plan.Files = append(plan.Files, relPath)
		o.debugf("wrote %s", relPath)
	}

	// The suite file is written only after every individual file exists,
	// so a partial write never leaves a suite referencing missing files.
	suiteName, err := codegen.SuiteFileName(config.Framework)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, file := range plan.Files {
		names = append(names, filepath.Base(file))
	}
	suite, err := codegen.SuiteFile(config.Framework, names)
	if err != nil {
		return nil, err
	}

	suitePath := filepath.Join(dir, suiteName)
	if err := o.writeArtifact(suitePath, suite); err != nil {
		return nil, err
	}
	plan.Files = append(plan.Files, suitePath)
	o.debugf("wrote %s", suitePath)

	plan.Commands, err = Commands(config.Framework, config.Mode, config.Browser)
	if err != nil {
		return nil, err
	}

	return plan, nil
}

// Commands returns the shell command sequence for a framework, mode and
// browser. It is a pure function of its inputs.
func Commands(framework types.Framework, mode Mode, browser string) ([]string, error) {
	switch framework {
	case types.FrameworkPlaywright:
		run := "npx playwright test tests/playwright/generated"
		if mode == ModeHeaded {
			run += " --headed"
		}
		if browser != "" {
			run += fmt.Sprintf(" --project=%s", browser)
		}
		return []string{
			"npx playwright --version || npm install -D @playwright/test",
			"npx playwright install",
			run,
		}, nil

	case types.FrameworkCypress:
		commands := []string{
			"npx cypress --version || npm install -D cypress",
		}
		if mode == ModeHeaded {
			commands = append(commands, "npx cypress open")
		} else {
			run := `npx cypress run --spec "tests/cypress/generated/**"`
			if browser != "" {
				run += fmt.Sprintf(" --browser %s", browser)
			}
			commands = append(commands, run)
		}
		return commands, nil

	default:
		return nil, fmt.Errorf("%w: %s", codegen.ErrUnsupportedFramework, framework)
	}
}

// Execute sends the plan's commands through a terminal created by the
// factory, pacing between sends. The terminal is disposed before return.
func (o *Orchestrator) Execute(ctx context.Context, plan *types.ExecutionPlan, factory TerminalFactory) error {
	term, err := factory.Create("testwright", o.guard.WorkspaceDir())
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	defer term.Dispose()

	if err := term.WaitReady(ctx); err != nil {
		return fmt.Errorf("terminal not ready: %w", err)
	}
	if err := term.Focus(); err != nil {
		o.logf("terminal focus failed: %v", err)
	}

	for i, command := range plan.Commands {
		if i > 0 {
			select {
			case <-time.After(o.pacing):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		o.logf("running: %s", command)
		if err := term.Send(ctx, command); err != nil {
			return fmt.Errorf("command %d failed: %w", i+1, err)
		}
	}

	return nil
}

// ensureDir creates a workspace-relative directory after validating it
// against the guard.
func (o *Orchestrator) ensureDir(relPath string) error {
	if err := o.guard.ValidateArtifactPath(relPath); err != nil {
		return err
	}
	abs, err := o.guard.ResolvePath(relPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", relPath, err)
	}
	return nil
}

// writeArtifact validates the path against the guard and writes the content
// atomically: a temp file in the target directory, then a rename.
func (o *Orchestrator) writeArtifact(relPath, content string) error {
	if err := o.guard.ValidateArtifactPath(relPath); err != nil {
		return err
	}
	abs, err := o.guard.ResolvePath(relPath)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(abs), ".testwright-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", relPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, abs); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to persist %s: %w", relPath, err)
	}

	return nil
}

func (o *Orchestrator) logf(format string, args ...any) {
	if o.logger != nil {
		o.logger.Infof(format, args...)
	}
}

func (o *Orchestrator) debugf(format string, args ...any) {
	if o.logger != nil {
		o.logger.Debugf(format, args...)
	}
}
