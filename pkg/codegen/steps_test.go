package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateStep_RuleSelection(t *testing.T) {
	tr := playwrightTranslator{}

	tests := []struct {
		name     string
		step     string
		expected string
	}{
		{
			name:     "navigate with url",
			step:     "Navigate to https://example.com/login",
			expected: "await page.goto('https://example.com/login');",
		},
		{
			name:     "go to without url defaults to root",
			step:     "Go to the home page",
			expected: "await page.goto('/');",
		},
		{
			name:     "click button",
			step:     "Click the login button",
			expected: `await page.click('button[type="submit"]');`,
		},
		{
			name:     "click link",
			step:     "Click the profile link",
			expected: "await page.click('a');",
		},
		{
			name:     "click generic",
			step:     "Click anywhere",
			expected: `await page.click('button, [role="button"]');`,
		},
		{
			name:     "enter username",
			step:     "Enter valid username",
			expected: `await page.fill('input[name="username"], input[type="email"]', 'testuser');`,
		},
		{
			name:     "type password",
			step:     "Type the password",
			expected: `await page.fill('input[name="password"], input[type="password"]', 'testpass');`,
		},
		{
			name:     "enter search term",
			step:     "Enter a search term in the search field",
			expected: `await page.fill('input[type="search"], input[name="q"]', 'test query');`,
		},
		{
			name:     "verify step",
			step:     "Verify the cart counter increases",
			expected: "// Verify the cart counter increases",
		},
		{
			name:     "unmatched step echoed as comment",
			step:     "Wait for background sync",
			expected: "// Wait for background sync",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, translateStep(tr, tt.step), tt.expected)
		})
	}
}

func TestTranslateStep_FirstRuleWins(t *testing.T) {
	// "Navigate ... and click" matches both rules; the navigate rule is
	// declared first and takes it.
	tr := playwrightTranslator{}
	out := translateStep(tr, "Navigate to the page and click around")
	assert.Contains(t, out, "await page.goto(")
	assert.NotContains(t, out, "await page.click(")
}

func TestTranslateAssertion(t *testing.T) {
	tr := playwrightTranslator{}

	tests := []struct {
		name     string
		expected string
		want     string
	}{
		{"redirect", "User is redirected to the dashboard", "not.toHaveURL"},
		// "displayed" and "error" both match; the display rule is declared
		// first and wins.
		{"display wins over error", "An error banner is displayed", "toBeVisible"},
		{"error without display", "The form rejects with an error", ".error"},
		{"generic default", "Everything works", "toHaveTitle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, translateAssertion(tr, tt.expected), tt.want)
		})
	}
}

func TestUrlFromStep(t *testing.T) {
	assert.Equal(t, "https://example.com", urlFromStep("Navigate to https://example.com"))
	assert.Equal(t, "https://example.com", urlFromStep("Navigate to https://example.com."))
	assert.Equal(t, "/", urlFromStep("Navigate to the login page"))
}

func TestEscapeJS(t *testing.T) {
	assert.Equal(t, `it\'s`, escapeJS("it's"))
	assert.Equal(t, `a\\b`, escapeJS(`a\b`))
	assert.Equal(t, `line\nbreak`, escapeJS("line\nbreak"))
}
