package config

import (
	"fmt"
	"sync"
)

const (
	// SectionIDExecution is the identifier for the execution settings section
	SectionIDExecution = "execution"

	// DefaultTimeoutMs is the default per-command execution timeout.
	DefaultTimeoutMs = 30000

	// DefaultBrowser is the browser used when none is configured.
	DefaultBrowser = "chromium"
)

// ExecutionSection manages test execution settings.
type ExecutionSection struct {
	TimeoutMs      int
	Debug          bool
	DefaultBrowser string
	mu             sync.RWMutex
}

// NewExecutionSection creates a new execution section with default settings.
func NewExecutionSection() *ExecutionSection {
	return &ExecutionSection{
		TimeoutMs:      DefaultTimeoutMs,
		Debug:          false,
		DefaultBrowser: DefaultBrowser,
	}
}

// ID returns the section identifier.
func (s *ExecutionSection) ID() string {
	return SectionIDExecution
}

// Title returns the section title.
func (s *ExecutionSection) Title() string {
	return "Execution Settings"
}

// Description returns the section description.
func (s *ExecutionSection) Description() string {
	return "Configure test execution defaults: per-command timeout in milliseconds, debug logging, and the default browser."
}

// Data returns the current configuration data.
func (s *ExecutionSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"timeout_ms":      s.TimeoutMs,
		"debug":           s.Debug,
		"default_browser": s.DefaultBrowser,
	}
}

// SetData updates the configuration from the provided data.
// Numeric values arrive as float64 when loaded from JSON.
func (s *ExecutionSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch timeout := data["timeout_ms"].(type) {
	case int:
		if timeout > 0 {
			s.TimeoutMs = timeout
		}
	case float64:
		if timeout > 0 {
			s.TimeoutMs = int(timeout)
		}
	}

	if debug, ok := data["debug"].(bool); ok {
		s.Debug = debug
	}

	if browser, ok := data["default_browser"].(string); ok && browser != "" {
		s.DefaultBrowser = browser
	}

	return nil
}

// Validate validates the current configuration.
func (s *ExecutionSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.TimeoutMs <= 0 {
		return fmt.Errorf("timeout_ms must be positive, got %d", s.TimeoutMs)
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *ExecutionSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TimeoutMs = DefaultTimeoutMs
	s.Debug = false
	s.DefaultBrowser = DefaultBrowser
}

// GetTimeoutMs returns the configured execution timeout in milliseconds.
func (s *ExecutionSection) GetTimeoutMs() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.TimeoutMs
}

// SetTimeoutMs sets the execution timeout in milliseconds.
func (s *ExecutionSection) SetTimeoutMs(timeoutMs int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TimeoutMs = timeoutMs
}

// GetDebug returns whether debug logging is enabled.
func (s *ExecutionSection) GetDebug() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Debug
}

// SetDebug toggles debug logging.
func (s *ExecutionSection) SetDebug(debug bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Debug = debug
}

// GetDefaultBrowser returns the configured default browser.
func (s *ExecutionSection) GetDefaultBrowser() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.DefaultBrowser
}

// SetDefaultBrowser sets the default browser.
func (s *ExecutionSection) SetDefaultBrowser(browser string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DefaultBrowser = browser
}
