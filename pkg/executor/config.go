// Package executor builds and runs execution plans for generated test
// cases: it persists one file per case plus an aggregate suite file under
// the per-framework directory convention, and sequences the shell commands
// that install dependencies and run the tests. Process spawning itself is
// delegated to the Terminal capability.
package executor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/testwright/testwright/pkg/types"
)

// Mode selects between headless and headed (UI) execution.
type Mode string

const (
	// ModeHeadless runs tests without a visible browser window.
	ModeHeadless Mode = "headless"
	// ModeHeaded runs tests with a visible browser window.
	ModeHeaded Mode = "headed"
)

// RunConfig describes one execution request. It can be loaded from a yaml
// file or assembled from CLI flags.
type RunConfig struct {
	// Target framework
	Framework types.Framework `yaml:"framework" json:"framework"`

	// Execution mode
	Mode Mode `yaml:"mode" json:"mode"`

	// Browser choice (chromium/firefox/webkit for playwright,
	// chrome/firefox/electron for cypress). Empty means the configured
	// default.
	Browser string `yaml:"browser" json:"browser"`

	// Workspace directory
	WorkspaceDir string `yaml:"workspace_dir" json:"workspace_dir"`

	// Artifact path rules
	Artifacts ArtifactRules `yaml:"artifacts" json:"artifacts"`
}

// ArtifactRules restricts where generated files may be written, relative to
// the workspace. Denied patterns take precedence.
type ArtifactRules struct {
	AllowedPatterns []string `yaml:"allowed_patterns" json:"allowed_patterns"`
	DeniedPatterns  []string `yaml:"denied_patterns" json:"denied_patterns"`
}

// frameworkBrowsers fixes the browser choices each framework accepts.
var frameworkBrowsers = map[types.Framework][]string{
	types.FrameworkPlaywright: {"chromium", "firefox", "webkit"},
	types.FrameworkCypress:    {"chrome", "firefox", "electron"},
}

// SupportedBrowsers returns the browsers a framework can run against.
func SupportedBrowsers(framework types.Framework) []string {
	return frameworkBrowsers[framework]
}

// BrowserSupported reports whether a framework can run against the given
// browser.
func BrowserSupported(framework types.Framework, browser string) bool {
	for _, b := range frameworkBrowsers[framework] {
		if b == browser {
			return true
		}
	}
	return false
}

// DefaultRunConfig returns a run config with defaults applied.
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		Framework: types.FrameworkPlaywright,
		Mode:      ModeHeadless,
		Artifacts: ArtifactRules{
			AllowedPatterns: []string{"tests/**"},
		},
	}
}

// LoadRunConfig loads a run config from a yaml file and applies defaults
// for unset fields.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run config: %w", err)
	}

	config := DefaultRunConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse run config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the run config for consistency.
func (c *RunConfig) Validate() error {
	if !c.Framework.IsValid() {
		return fmt.Errorf("unknown framework %q", c.Framework)
	}

	if c.Mode != ModeHeadless && c.Mode != ModeHeaded {
		return fmt.Errorf("unknown mode %q (expected headless or headed)", c.Mode)
	}

	if c.Browser != "" && !BrowserSupported(c.Framework, c.Browser) {
		return fmt.Errorf("browser %q is not supported by %s (supported: %v)",
			c.Browser, c.Framework, SupportedBrowsers(c.Framework))
	}

	return nil
}
