// Package analyzer turns free-form requirement text into structured test
// cases. It has two arms: a remote LLM-backed analysis and a deterministic
// rule-based path. The selection between them is made by the caller — the
// remote client signals failure and never falls back on its own.
package analyzer

import (
	"regexp"
	"strings"

	"github.com/testwright/testwright/pkg/types"
)

// Quick-test line patterns. Each captures one token up to whitespace; the
// URL additionally requires an http(s) scheme. Matching is case-insensitive
// and the three lines may appear in any order.
var (
	quickTestURLPattern      = regexp.MustCompile(`(?i)url:\s*(https?://\S+)`)
	quickTestUsernamePattern = regexp.MustCompile(`(?i)username:\s*(\S+)`)
	quickTestPasswordPattern = regexp.MustCompile(`(?i)password:\s*(\S+)`)
)

// ParseQuickTest scans text line-by-line for URL/Username/Password labels
// and returns the descriptor when a URL line is present. The second return
// value is false when no URL was found — that is the normal "this is a PRD,
// not a quick test" outcome, not an error.
func ParseQuickTest(text string) (*types.QuickTest, bool) {
	descriptor := &types.QuickTest{}

	for _, line := range strings.Split(text, "\n") {
		if descriptor.URL == "" {
			if m := quickTestURLPattern.FindStringSubmatch(line); m != nil {
				descriptor.URL = m[1]
			}
		}
		if descriptor.Username == "" {
			if m := quickTestUsernamePattern.FindStringSubmatch(line); m != nil {
				descriptor.Username = m[1]
			}
		}
		if descriptor.Password == "" {
			if m := quickTestPasswordPattern.FindStringSubmatch(line); m != nil {
				descriptor.Password = m[1]
			}
		}
	}

	if descriptor.URL == "" {
		return nil, false
	}

	return descriptor, true
}
