// Package main provides the testwright CLI: it analyzes product
// requirement documents into test cases, generates browser automation code
// for the chosen framework, and orchestrates the test run in a workspace.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/testwright/testwright/pkg/analyzer"
	"github.com/testwright/testwright/pkg/codegen"
	appconfig "github.com/testwright/testwright/pkg/config"
	"github.com/testwright/testwright/pkg/executor"
	"github.com/testwright/testwright/pkg/logging"
	"github.com/testwright/testwright/pkg/prd"
	"github.com/testwright/testwright/pkg/security/workspace"
	"github.com/testwright/testwright/pkg/types"
)

const version = "0.1.0" // Version of the testwright CLI

// Config holds the application configuration
type Config struct {
	Requirements string
	Text         string
	Framework    string
	Mode         string
	Browser      string
	WorkspaceDir string
	RunConfig    string
	APIKey       string
	Model        string
	GenerateOnly bool
	ShowCode     bool
	Debug        bool
	ShowVersion  bool
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("testwright v%s\n", version)
		return
	}

	if err := config.validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Create context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nShutting down gracefully...")
		cancel()
	}()

	if runErr := run(ctx, config); runErr != nil {
		cancel()
		log.Fatalf("Application error: %v", runErr)
	}
}

// parseFlags parses command line flags and environment variables
func parseFlags() *Config {
	config := &Config{}

	flag.StringVar(&config.Requirements, "requirements", "", "Path to the requirements document (.txt, .md, .html or .pdf)")
	flag.StringVar(&config.Text, "text", "", "Inline requirement text (alternative to -requirements)")
	flag.StringVar(&config.Framework, "framework", string(types.FrameworkPlaywright), "Target framework (playwright, cypress)")
	flag.StringVar(&config.Mode, "mode", string(executor.ModeHeadless), "Execution mode (headless, headed)")
	flag.StringVar(&config.Browser, "browser", "", "Browser to run against (default: configured default)")
	flag.StringVar(&config.WorkspaceDir, "workspace", ".", "Workspace directory (default: current directory)")
	flag.StringVar(&config.RunConfig, "run-config", "", "Path to a run configuration file (YAML)")
	flag.StringVar(&config.APIKey, "api-key", os.Getenv("OPENAI_API_KEY"), "OpenAI API key (or set OPENAI_API_KEY env var)")
	flag.StringVar(&config.Model, "model", "", "LLM model to use (default: configured model)")
	flag.BoolVar(&config.GenerateOnly, "generate-only", false, "Generate test files without running them")
	flag.BoolVar(&config.ShowCode, "show", false, "Print generated code with syntax highlighting")
	flag.BoolVar(&config.Debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&config.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "testwright - requirement-driven browser test generation\n\n")
		fmt.Fprintf(os.Stderr, "Usage: testwright [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  OPENAI_API_KEY     OpenAI API key\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  testwright -requirements prd.md\n")
		fmt.Fprintf(os.Stderr, "  testwright -requirements prd.pdf -framework cypress -mode headed\n")
		fmt.Fprintf(os.Stderr, "  testwright -text 'URL: https://example.com/login' -generate-only -show\n")
		fmt.Fprintf(os.Stderr, "  testwright -run-config run.yaml\n")
	}

	flag.Parse()
	return config
}

// validate checks that the configuration is valid
func (c *Config) validate() error {
	if c.Requirements == "" && c.Text == "" {
		return fmt.Errorf("requirement input is required (use -requirements or -text)")
	}
	if c.Requirements != "" && c.Text != "" {
		return fmt.Errorf("-requirements and -text are mutually exclusive")
	}

	framework := types.Framework(c.Framework)
	if !framework.IsValid() {
		return fmt.Errorf("unknown framework '%s' (supported: %v)", c.Framework, types.Frameworks())
	}
	if !framework.SupportsGeneration() {
		return fmt.Errorf("framework '%s' does not support code generation", c.Framework)
	}

	info, err := os.Stat(c.WorkspaceDir)
	if err != nil {
		return fmt.Errorf("workspace directory error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("workspace path '%s' is not a directory", c.WorkspaceDir)
	}

	return nil
}

// run executes the main application logic
func run(ctx context.Context, config *Config) error {
	// Initialize global configuration (LLM credentials and execution defaults)
	if err := appconfig.Initialize(""); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}
	if config.Model != "" {
		appconfig.GetLLM().SetModel(config.Model)
	}
	if config.APIKey != "" {
		appconfig.GetLLM().SetAPIKey(config.APIKey)
	}
	if config.Debug {
		appconfig.GetExecution().SetDebug(true)
	}
	logging.SetDebugEnabled(appconfig.GetExecution().GetDebug())

	runConfig, err := buildRunConfig(config)
	if err != nil {
		return err
	}
	framework := runConfig.Framework

	logger, err := logging.NewLogger("main")
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	// Load and normalize the requirement text
	text := config.Text
	if config.Requirements != "" {
		text, err = prd.Load(config.Requirements)
		if err != nil {
			return fmt.Errorf("failed to load requirements: %w", err)
		}
	}

	// Analyze requirements into test cases
	remote := analyzer.NewRemoteAnalysisClient(analyzer.WithAPIKey(config.APIKey))
	pipeline := analyzer.NewPipeline(remote)
	result := pipeline.Analyze(ctx, text)

	fmt.Printf("testwright v%s\n", version)
	fmt.Printf("Session:   %s\n", result.SessionID)
	fmt.Printf("Framework: %s\n", framework)
	fmt.Printf("Cases:     %d\n\n", len(result.TestCases))

	// Generate code for each case, sequentially and in order
	generator := codegen.NewGenerator()
	for _, tc := range result.TestCases {
		code, err := generator.Generate(ctx, tc, framework)
		if err != nil {
			return fmt.Errorf("failed to generate %s: %w", tc.ID, err)
		}
		tc.SetCode(framework, code)
		logger.Infof("generated %s (%s)", tc.ID, framework)

		if config.ShowCode {
			fmt.Printf("--- %s: %s ---\n", tc.ID, tc.Name)
			if err := quick.Highlight(os.Stdout, code, codegen.Language(framework), "terminal256", "monokai"); err != nil {
				fmt.Print(code)
			}
			fmt.Println()
		}
	}

	// Persist files and build the execution plan
	guard, err := workspace.NewGuard(runConfig.WorkspaceDir)
	if err != nil {
		return fmt.Errorf("failed to create workspace guard: %w", err)
	}
	rules, err := workspace.NewPathRules(runConfig.Artifacts.AllowedPatterns, runConfig.Artifacts.DeniedPatterns)
	if err != nil {
		return fmt.Errorf("invalid artifact rules: %w", err)
	}
	guard.SetArtifactRules(rules)

	orchestrator := executor.NewOrchestrator(guard, executor.WithLogger(logger))
	plan, err := orchestrator.BuildPlan(result.TestCases, runConfig)
	if err != nil {
		return fmt.Errorf("failed to build execution plan: %w", err)
	}

	fmt.Printf("Wrote %d files to %s\n", len(plan.Files), executor.GeneratedDir(framework))

	if config.GenerateOnly {
		fmt.Println("\nGenerate-only mode; to run the suite:")
		for _, command := range plan.Commands {
			fmt.Printf("  %s\n", command)
		}
		return nil
	}

	// Run the plan
	if err := executor.EnsureBrowsers(framework, logger.Writer()); err != nil {
		return err
	}

	factory := &executor.LocalTerminalFactory{Stdout: os.Stdout, Stderr: os.Stderr}
	if err := orchestrator.Execute(ctx, plan, factory); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	fmt.Println("\nDone.")
	return nil
}

// buildRunConfig assembles the run configuration from the yaml file, if
// given. Flags the user passed explicitly take precedence over file values;
// flag defaults do not.
func buildRunConfig(config *Config) (*executor.RunConfig, error) {
	runConfig := executor.DefaultRunConfig()
	if config.RunConfig != "" {
		loaded, err := executor.LoadRunConfig(config.RunConfig)
		if err != nil {
			return nil, err
		}
		runConfig = loaded
	}

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if explicit["framework"] || config.RunConfig == "" {
		runConfig.Framework = types.Framework(config.Framework)
	}
	if explicit["mode"] || config.RunConfig == "" {
		runConfig.Mode = executor.Mode(config.Mode)
	}
	if config.Browser != "" {
		runConfig.Browser = config.Browser
	}
	if runConfig.Browser == "" {
		// The configured default only applies when the selected framework
		// can actually run it; otherwise the framework picks its own.
		if def := appconfig.GetExecution().GetDefaultBrowser(); executor.BrowserSupported(runConfig.Framework, def) {
			runConfig.Browser = def
		}
	}
	if explicit["workspace"] || runConfig.WorkspaceDir == "" {
		runConfig.WorkspaceDir = config.WorkspaceDir
	}

	if err := runConfig.Validate(); err != nil {
		return nil, err
	}

	return runConfig, nil
}
