package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
)

// PathRules handles glob pattern matching for artifact path control.
// Denied patterns take precedence over allowed patterns; an empty allow
// list permits everything not denied.
type PathRules struct {
	allowedPatterns []glob.Glob
	deniedPatterns  []glob.Glob
}

// NewPathRules compiles allow/deny glob patterns into a rule set.
func NewPathRules(allowed, denied []string) (*PathRules, error) {
	rules := &PathRules{}

	// Compile allowed patterns
	for _, pattern := range allowed {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed pattern '%s': %w", pattern, err)
		}
		rules.allowedPatterns = append(rules.allowedPatterns, g)
	}

	// Compile denied patterns
	for _, pattern := range denied {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid denied pattern '%s': %w", pattern, err)
		}
		rules.deniedPatterns = append(rules.deniedPatterns, g)
	}

	return rules, nil
}

// Allows returns true if the path is permitted by the pattern rules.
func (r *PathRules) Allows(path string) bool {
	// Normalize path
	path = filepath.Clean(path)

	// Denied patterns take precedence
	for _, pattern := range r.deniedPatterns {
		if pattern.Match(path) {
			return false
		}
	}

	// If no allowed patterns specified, allow all (except denied)
	if len(r.allowedPatterns) == 0 {
		return true
	}

	// Check if path matches any allowed pattern
	for _, pattern := range r.allowedPatterns {
		if pattern.Match(path) {
			return true
		}
	}

	return false
}
