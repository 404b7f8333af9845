// Package codegen translates abstract test cases into runnable automation
// code for the supported frameworks. Generation prefers the remote
// capability for free-form cases but is strictly deterministic whenever a
// case carries quick-test data: exact URLs and credentials must be
// reproduced verbatim and cannot be left to non-deterministic generation.
package codegen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/testwright/testwright/pkg/config"
	"github.com/testwright/testwright/pkg/llm"
	"github.com/testwright/testwright/pkg/llm/openai"
	"github.com/testwright/testwright/pkg/logging"
	"github.com/testwright/testwright/pkg/types"
)

// ErrUnsupportedFramework is returned for frameworks without code
// generation support (selenium is execution-only).
var ErrUnsupportedFramework = errors.New("framework does not support code generation")

// translator renders test-case fragments for one target framework.
type translator interface {
	// URLTemplate renders the full deterministic source for a quick-test
	// case, reproducing the embedded URL and credentials verbatim.
	URLTemplate(tc *types.TestCase) string

	// Header opens a test file for a free-form case.
	Header(tc *types.TestCase) string

	// Footer closes a test file.
	Footer() string

	// Navigate, Click, Fill, Select, Verify render one command each.
	Navigate(url string) string
	Click(selector string) string
	Fill(selector, value string) string
	Select(selector, value string) string
	Verify(text string) string

	// Comment echoes an unrecognized step literally.
	Comment(step string) string

	// AssertRedirect, AssertVisible, AssertError, AssertSuccess render the
	// expected-result assertion.
	AssertRedirect() string
	AssertVisible(text string) string
	AssertError() string
	AssertSuccess() string

	// FileExt is the generated file extension, including the dot.
	FileExt() string

	// Language is the syntax-highlighting language of generated code.
	Language() string

	// BestPractices names the framework-specific guidance included in the
	// remote generation instruction.
	BestPractices() string
}

// translatorFor returns the translator for a framework, or nil when the
// framework has no code generation support.
func translatorFor(framework types.Framework) translator {
	switch framework {
	case types.FrameworkPlaywright:
		return playwrightTranslator{}
	case types.FrameworkCypress:
		return cypressTranslator{}
	default:
		return nil
	}
}

// FileExtension returns the generated-file extension for a framework.
func FileExtension(framework types.Framework) (string, error) {
	tr := translatorFor(framework)
	if tr == nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFramework, framework)
	}
	return tr.FileExt(), nil
}

// Language returns the syntax-highlighting language for a framework's
// generated code.
func Language(framework types.Framework) string {
	if tr := translatorFor(framework); tr != nil {
		return tr.Language()
	}
	return "javascript"
}

// Generator produces framework-specific test code for test cases.
type Generator struct {
	remote  bool
	factory ProviderFactory
	logger  *logging.Logger
}

// ProviderFactory builds an LLM provider from resolved settings.
type ProviderFactory func(apiKey, model, baseURL string, timeout time.Duration) (llm.Provider, error)

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithoutRemote disables the remote generation path entirely; every case
// takes the deterministic translator.
func WithoutRemote() GeneratorOption {
	return func(g *Generator) {
		g.remote = false
	}
}

// WithProviderFactory replaces the default OpenAI provider factory.
func WithProviderFactory(factory ProviderFactory) GeneratorOption {
	return func(g *Generator) {
		g.factory = factory
	}
}

// NewGenerator creates a code generator.
func NewGenerator(opts ...GeneratorOption) *Generator {
	logger, _ := logging.NewLogger("codegen")

	g := &Generator{
		remote:  true,
		factory: defaultProviderFactory,
		logger:  logger,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

func defaultProviderFactory(apiKey, model, baseURL string, timeout time.Duration) (llm.Provider, error) {
	return openai.NewProvider(apiKey,
		openai.WithModel(model),
		openai.WithBaseURL(baseURL),
		openai.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
}

// Generate maps one test case into source code for the target framework.
//
// A case carrying a quick-test payload with a URL always takes the
// deterministic URL-template path, bypassing the remote capability. Other
// cases attempt one remote round trip and fall back to the deterministic
// step translator on any failure. With the remote capability absent or
// unavailable, repeated calls produce byte-identical code.
func (g *Generator) Generate(ctx context.Context, tc *types.TestCase, framework types.Framework) (string, error) {
	tr := translatorFor(framework)
	if tr == nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFramework, framework)
	}

	if tc.TestData != nil && tc.TestData.URL != "" {
		return tr.URLTemplate(tc), nil
	}

	if g.remote {
		if code, err := g.generateRemote(ctx, tc, tr); err == nil {
			return code, nil
		} else {
			g.logger.Warnf("remote generation unavailable for %s, using deterministic translator: %v", tc.ID, err)
		}
	}

	return translateSteps(tr, tc), nil
}

// generateRemote performs one remote round trip for code generation and
// strips markdown fences from the response.
func (g *Generator) generateRemote(ctx context.Context, tc *types.TestCase, tr translator) (string, error) {
	llmSection := config.GetLLM()
	if llmSection == nil || llmSection.GetAPIKey() == "" {
		return "", fmt.Errorf("no API key configured for remote generation")
	}

	timeout := time.Duration(config.DefaultTimeoutMs) * time.Millisecond
	if execSection := config.GetExecution(); execSection != nil {
		timeout = time.Duration(execSection.GetTimeoutMs()) * time.Millisecond
	}

	provider, err := g.factory(llmSection.GetAPIKey(), llmSection.GetModel(), llmSection.GetBaseURL(), timeout)
	if err != nil {
		return "", fmt.Errorf("failed to create LLM provider: %w", err)
	}

	system := fmt.Sprintf(
		"You are a test automation engineer. Write a complete, runnable test file. %s Respond with ONLY the code, no explanation.",
		tr.BestPractices(),
	)

	user := fmt.Sprintf(
		"Test case %s: %s\nDescription: %s\nSteps:\n%s\nExpected result: %s",
		tc.ID, tc.Name, tc.Description, numberedSteps(tc.Steps), tc.ExpectedResult,
	)

	response, err := provider.Complete(ctx, []*types.Message{
		types.NewSystemMessage(system),
		types.NewUserMessage(user),
	})
	if err != nil {
		return "", fmt.Errorf("remote generation request failed: %w", err)
	}

	code := llm.StripCodeFences(response.Content)
	if code == "" {
		return "", fmt.Errorf("remote generation returned an empty response")
	}

	return code, nil
}

func numberedSteps(steps []string) string {
	out := ""
	for i, step := range steps {
		out += fmt.Sprintf("%d. %s\n", i+1, step)
	}
	return out
}
