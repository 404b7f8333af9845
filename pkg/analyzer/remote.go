package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pkoukk/tiktoken-go"

	"github.com/testwright/testwright/pkg/config"
	"github.com/testwright/testwright/pkg/llm"
	"github.com/testwright/testwright/pkg/llm/openai"
	"github.com/testwright/testwright/pkg/logging"
	"github.com/testwright/testwright/pkg/types"
)

// ErrNoCredential is returned when no API key is available from either the
// runtime override or the configuration.
var ErrNoCredential = errors.New("no API key configured for remote analysis")

const analysisSystemPrompt = `You are a QA engineer analyzing a product requirements document.
Respond with ONLY a JSON object of this exact shape, no prose:
{
  "features": ["feature name", ...],
  "userStories": ["As a <role>, I want ...", ...],
  "acceptanceCriteria": ["criterion", ...],
  "testCases": [
    {
      "id": "tc-001",
      "name": "short name",
      "description": "what the test verifies",
      "steps": ["step 1", "step 2", ...],
      "expectedResult": "expected outcome"
    }
  ]
}`

// maxPromptTokens bounds the requirement text sent on the remote round
// trip. Deterministic paths never truncate.
const maxPromptTokens = 8000

// promptEncoding is the tokenizer used for the prompt budget.
const promptEncoding = "cl100k_base"

// ProviderFactory builds an LLM provider from resolved settings. Swappable
// in tests.
type ProviderFactory func(apiKey, model, baseURL string, timeout time.Duration) (llm.Provider, error)

// RemoteAnalysisClient performs one analysis round trip against an external
// text-completion capability. It has no fallback logic of its own: any
// failure is surfaced as an error and the caller is responsible for
// invoking the deterministic path.
type RemoteAnalysisClient struct {
	apiKeyOverride string
	factory        ProviderFactory
	logger         *logging.Logger
}

// RemoteOption configures a RemoteAnalysisClient.
type RemoteOption func(*RemoteAnalysisClient)

// WithAPIKey sets a runtime credential that takes precedence over the
// configured one.
func WithAPIKey(apiKey string) RemoteOption {
	return func(c *RemoteAnalysisClient) {
		c.apiKeyOverride = apiKey
	}
}

// WithProviderFactory replaces the default OpenAI provider factory.
func WithProviderFactory(factory ProviderFactory) RemoteOption {
	return func(c *RemoteAnalysisClient) {
		c.factory = factory
	}
}

// NewRemoteAnalysisClient creates a remote analysis client.
func NewRemoteAnalysisClient(opts ...RemoteOption) *RemoteAnalysisClient {
	logger, _ := logging.NewLogger("analyzer")

	c := &RemoteAnalysisClient{
		factory: defaultProviderFactory,
		logger:  logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// defaultProviderFactory builds the OpenAI-compatible provider used outside
// of tests.
func defaultProviderFactory(apiKey, model, baseURL string, timeout time.Duration) (llm.Provider, error) {
	return openai.NewProvider(apiKey,
		openai.WithModel(model),
		openai.WithBaseURL(baseURL),
		openai.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
}

// SetAPIKey installs a runtime credential override.
func (c *RemoteAnalysisClient) SetAPIKey(apiKey string) {
	c.apiKeyOverride = apiKey
}

// resolveAPIKey applies the credential precedence rule at read time:
// explicit override, else configured value, else absent.
func (c *RemoteAnalysisClient) resolveAPIKey() string {
	if c.apiKeyOverride != "" {
		return c.apiKeyOverride
	}
	if section := config.GetLLM(); section != nil {
		return section.GetAPIKey()
	}
	return ""
}

// resolveModel returns the configured model, defaulting to the first
// supported one.
func (c *RemoteAnalysisClient) resolveModel() string {
	if section := config.GetLLM(); section != nil {
		return section.GetModel()
	}
	return config.SupportedModels[0]
}

// resolveBaseURL returns the configured base URL or the default.
func (c *RemoteAnalysisClient) resolveBaseURL() string {
	if section := config.GetLLM(); section != nil {
		return section.GetBaseURL()
	}
	return config.DefaultBaseURL
}

// resolveTimeout returns the configured execution timeout or the default.
func (c *RemoteAnalysisClient) resolveTimeout() time.Duration {
	if section := config.GetExecution(); section != nil {
		return time.Duration(section.GetTimeoutMs()) * time.Millisecond
	}
	return time.Duration(config.DefaultTimeoutMs) * time.Millisecond
}

// remoteCase is the wire shape of a test case in the analysis payload.
type remoteCase struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Steps          []string `json:"steps"`
	ExpectedResult string   `json:"expectedResult"`
}

// remotePayload is the wire shape of the full analysis response.
type remotePayload struct {
	Features           []string     `json:"features"`
	UserStories        []string     `json:"userStories"`
	AcceptanceCriteria []string     `json:"acceptanceCriteria"`
	TestCases          []remoteCase `json:"testCases"`
}

// Analyze performs one round trip to the remote capability and parses the
// structured response. It makes exactly one attempt: transport or parse
// failures are returned to the caller without retry.
func (c *RemoteAnalysisClient) Analyze(ctx context.Context, text string) (*types.AnalysisResult, error) {
	apiKey := c.resolveAPIKey()
	if apiKey == "" {
		return nil, ErrNoCredential
	}

	provider, err := c.factory(apiKey, c.resolveModel(), c.resolveBaseURL(), c.resolveTimeout())
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	messages := []*types.Message{
		types.NewSystemMessage(analysisSystemPrompt),
		types.NewUserMessage(c.truncateToBudget(text)),
	}

	response, err := provider.Complete(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("remote analysis request failed: %w", err)
	}

	result, err := parseAnalysisResponse(response.Content)
	if err != nil {
		return nil, err
	}

	c.logger.Infof("remote analysis produced %d test cases", len(result.TestCases))
	return result, nil
}

// truncateToBudget caps the requirement text at the prompt token budget.
// If the tokenizer cannot be initialized the text passes through unchanged;
// an oversized prompt then fails at the transport and the caller falls back.
func (c *RemoteAnalysisClient) truncateToBudget(text string) string {
	encoding, err := tiktoken.GetEncoding(promptEncoding)
	if err != nil {
		c.logger.Warnf("tokenizer unavailable, sending untruncated text: %v", err)
		return text
	}

	tokens := encoding.Encode(text, nil, nil)
	if len(tokens) <= maxPromptTokens {
		return text
	}

	c.logger.Warnf("requirement text truncated from %d to %d tokens", len(tokens), maxPromptTokens)
	return encoding.Decode(tokens[:maxPromptTokens])
}

// parseAnalysisResponse unmarshals the (possibly fenced) JSON payload and
// stamps every returned case to pending, overriding whatever the response
// supplied.
func parseAnalysisResponse(content string) (*types.AnalysisResult, error) {
	stripped := llm.StripCodeFences(content)

	var payload remotePayload
	if err := json.Unmarshal([]byte(stripped), &payload); err != nil {
		return nil, fmt.Errorf("remote analysis response is not valid JSON: %w", err)
	}

	if len(payload.TestCases) == 0 {
		return nil, fmt.Errorf("remote analysis response contains no test cases")
	}

	result := &types.AnalysisResult{
		Features:           payload.Features,
		UserStories:        payload.UserStories,
		AcceptanceCriteria: payload.AcceptanceCriteria,
	}

	for _, rc := range payload.TestCases {
		result.TestCases = append(result.TestCases, &types.TestCase{
			ID:             rc.ID,
			Name:           rc.Name,
			Description:    rc.Description,
			Steps:          rc.Steps,
			ExpectedResult: rc.ExpectedResult,
			Status:         types.StatusPending,
		})
	}

	return result, nil
}
