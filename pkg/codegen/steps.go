package codegen

import (
	"strings"

	"github.com/testwright/testwright/pkg/types"
)

// stepRule pairs a substring predicate with the command it renders. Rules
// are evaluated in declaration order and the first match wins; this
// tie-break policy is deliberate and pinned by tests. Steps matching no
// rule become a literal comment echoing the step text, never silently
// dropped.
type stepRule struct {
	keywords []string
	emit     func(tr translator, step string) string
}

var stepRules = []stepRule{
	{
		keywords: []string{"navigate", "go to"},
		emit: func(tr translator, step string) string {
			return tr.Navigate(urlFromStep(step))
		},
	},
	{
		keywords: []string{"click"},
		emit: func(tr translator, step string) string {
			return tr.Click(selectorFromStep(step))
		},
	},
	{
		keywords: []string{"enter", "type"},
		emit: func(tr translator, step string) string {
			selector, value := inputFromStep(step)
			return tr.Fill(selector, value)
		},
	},
	{
		keywords: []string{"select"},
		emit: func(tr translator, step string) string {
			return tr.Select("select", "1")
		},
	},
	{
		keywords: []string{"verify", "check"},
		emit: func(tr translator, step string) string {
			return tr.Verify(step)
		},
	},
}

// assertionRule pairs a substring predicate with the assertion it renders
// for an expected-result description. First match wins; the generic success
// assertion is the default.
type assertionRule struct {
	keywords []string
	emit     func(tr translator, expected string) string
}

var assertionRules = []assertionRule{
	{
		keywords: []string{"redirect"},
		emit: func(tr translator, expected string) string {
			return tr.AssertRedirect()
		},
	},
	{
		keywords: []string{"display", "show"},
		emit: func(tr translator, expected string) string {
			return tr.AssertVisible(expected)
		},
	},
	{
		keywords: []string{"error"},
		emit: func(tr translator, expected string) string {
			return tr.AssertError()
		},
	},
}

// translateSteps is the deterministic fallback: each step is classified by
// the ordered rule table and rendered as a command, and the expected result
// is rendered as an assertion. Output is a pure function of the test case.
func translateSteps(tr translator, tc *types.TestCase) string {
	var b strings.Builder
	b.WriteString(tr.Header(tc))

	for _, step := range tc.Steps {
		b.WriteString(translateStep(tr, step))
	}

	b.WriteString(translateAssertion(tr, tc.ExpectedResult))
	b.WriteString(tr.Footer())
	return b.String()
}

// translateStep classifies one step against the rule table.
func translateStep(tr translator, step string) string {
	lower := strings.ToLower(step)
	for _, rule := range stepRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.emit(tr, step)
			}
		}
	}
	return tr.Comment(step)
}

// translateAssertion classifies the expected result against the rule table.
func translateAssertion(tr translator, expected string) string {
	lower := strings.ToLower(expected)
	for _, rule := range assertionRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.emit(tr, expected)
			}
		}
	}
	return tr.AssertSuccess()
}

// urlFromStep pulls an http(s) URL out of a navigation step, defaulting to
// the application root.
func urlFromStep(step string) string {
	for _, field := range strings.Fields(step) {
		if strings.HasPrefix(field, "http://") || strings.HasPrefix(field, "https://") {
			return strings.TrimRight(field, ".,;")
		}
	}
	return "/"
}

// selectorFromStep derives a stable selector for click steps. Button steps
// get a submit-button selector; links get an anchor selector; everything
// else falls back to a generic clickable.
func selectorFromStep(step string) string {
	lower := strings.ToLower(step)
	switch {
	case strings.Contains(lower, "button"):
		return `button[type="submit"]`
	case strings.Contains(lower, "link"):
		return "a"
	default:
		return `button, [role="button"]`
	}
}

// inputFromStep derives the target field and a deterministic value for
// enter/type steps.
func inputFromStep(step string) (selector, value string) {
	lower := strings.ToLower(step)
	switch {
	case strings.Contains(lower, "username") || strings.Contains(lower, "email"):
		return `input[name="username"], input[type="email"]`, "testuser"
	case strings.Contains(lower, "password"):
		return `input[name="password"], input[type="password"]`, "testpass"
	case strings.Contains(lower, "search"):
		return `input[type="search"], input[name="q"]`, "test query"
	default:
		return `input[type="text"]`, "test value"
	}
}

// escapeJS escapes a string for embedding in a single-quoted JS literal.
func escapeJS(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}
