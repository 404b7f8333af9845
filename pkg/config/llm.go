package config

import (
	"fmt"
	"sync"
)

const (
	// SectionIDLLM is the identifier for the LLM settings section
	SectionIDLLM = "llm"

	// DefaultBaseURL is the base URL used when none is configured.
	DefaultBaseURL = "https://api.openai.com/v1"
)

// SupportedModels lists the model identifiers accepted by the llm section.
// The first entry is the default.
var SupportedModels = []string{
	"gpt-4o",
	"gpt-4o-mini",
	"gpt-4-turbo",
	"o3-mini",
}

// LLMSection manages LLM provider configuration settings.
type LLMSection struct {
	APIKey  string
	Model   string
	BaseURL string
	mu      sync.RWMutex
}

// NewLLMSection creates a new LLM section with default settings.
func NewLLMSection() *LLMSection {
	return &LLMSection{
		APIKey:  "",
		Model:   SupportedModels[0],
		BaseURL: DefaultBaseURL,
	}
}

// ID returns the section identifier.
func (s *LLMSection) ID() string {
	return SectionIDLLM
}

// Title returns the section title.
func (s *LLMSection) Title() string {
	return "LLM Settings"
}

// Description returns the section description.
func (s *LLMSection) Description() string {
	return "Configure the LLM provider used for requirement analysis and code generation. Without an api_key the deterministic analysis path is used instead. model must be one of the supported identifiers."
}

// Data returns the current configuration data.
func (s *LLMSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"api_key":  s.APIKey,
		"model":    s.Model,
		"base_url": s.BaseURL,
	}
}

// SetData updates the configuration from the provided data.
func (s *LLMSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if apiKey, ok := data["api_key"].(string); ok {
		s.APIKey = apiKey
	}

	if model, ok := data["model"].(string); ok && model != "" {
		s.Model = model
	}

	if baseURL, ok := data["base_url"].(string); ok && baseURL != "" {
		s.BaseURL = baseURL
	}

	return nil
}

// Validate validates the current configuration.
// An empty api_key is valid: the analysis pipeline falls back to its
// deterministic path when no credential is configured.
func (s *LLMSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, model := range SupportedModels {
		if s.Model == model {
			return nil
		}
	}
	return fmt.Errorf("unsupported model %q (supported: %v)", s.Model, SupportedModels)
}

// Reset resets the section to default configuration.
func (s *LLMSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.APIKey = ""
	s.Model = SupportedModels[0]
	s.BaseURL = DefaultBaseURL
}

// GetAPIKey returns the configured API key.
func (s *LLMSection) GetAPIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.APIKey
}

// SetAPIKey sets the API key.
func (s *LLMSection) SetAPIKey(apiKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.APIKey = apiKey
}

// GetModel returns the configured model name.
func (s *LLMSection) GetModel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Model
}

// SetModel sets the model name.
func (s *LLMSection) SetModel(model string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Model = model
}

// GetBaseURL returns the configured base URL.
func (s *LLMSection) GetBaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.BaseURL
}

// SetBaseURL sets the base URL.
func (s *LLMSection) SetBaseURL(baseURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.BaseURL = baseURL
}
