package analyzer

import (
	"regexp"
	"strings"

	"github.com/testwright/testwright/pkg/types"
)

// Labeled feature lines: each captures the inline text after the label.
var featureLabelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)features?:\s*(.+)`),
	regexp.MustCompile(`(?i)functionalit(?:y|ies):\s*(.+)`),
	regexp.MustCompile(`(?i)requirements?:\s*(.+)`),
}

// keywordFeature maps a domain keyword (case-insensitive substring test)
// to a fixed literal feature name. Evaluated in declaration order.
type keywordFeature struct {
	keyword string
	feature string
}

var keywordFeatures = []keywordFeature{
	{"login", "User Authentication"},
	{"cart", "Shopping Cart"},
	{"checkout", "Checkout Process"},
	{"search", "Search Functionality"},
}

// Canonical user-story sentence: "As a(n) <role>, I want/need/would like ...",
// terminated at sentence end.
var userStoryPattern = regexp.MustCompile(`(?i)as an? [^,\n]+,\s*I (?:want|need|would like)[^.!?\n]*`)

// defaultUserStory is emitted when no story sentence matches.
const defaultUserStory = "As a user, I want to use the system effectively"

// Acceptance-criteria label fragments: each captures the remainder of the
// line after the fragment. Checked per line in declaration order, first
// match wins for that line.
var criteriaPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)acceptance criteria:\s*(.+)`),
	regexp.MustCompile(`(?i)\bmust\s+(.+)`),
	regexp.MustCompile(`(?i)\bshould\s+(.+)`),
}

// AnalyzeHeuristically extracts features, user stories, and acceptance
// criteria from raw text using keyword and regex heuristics. It is pure
// text-pattern extraction: no external calls, fully deterministic, and it
// never fails.
//
// Features are deduplicated on first occurrence; user stories and
// acceptance criteria are not. That asymmetry is intentional and pinned by
// tests.
func AnalyzeHeuristically(text string) *types.AnalysisResult {
	return &types.AnalysisResult{
		Features:           ExtractFeatures(text),
		UserStories:        ExtractUserStories(text),
		AcceptanceCriteria: ExtractAcceptanceCriteria(text),
	}
}

// ExtractFeatures collects labeled feature lines and keyword-derived fixed
// features, deduplicated in first-occurrence order.
func ExtractFeatures(text string) []string {
	var features []string
	seen := make(map[string]bool)

	appendFeature := func(feature string) {
		feature = strings.TrimSpace(feature)
		if feature == "" || seen[feature] {
			return
		}
		seen[feature] = true
		features = append(features, feature)
	}

	for _, line := range strings.Split(text, "\n") {
		for _, pattern := range featureLabelPatterns {
			if m := pattern.FindStringSubmatch(line); m != nil {
				appendFeature(m[1])
				break
			}
		}
	}

	lower := strings.ToLower(text)
	for _, kf := range keywordFeatures {
		if strings.Contains(lower, kf.keyword) {
			appendFeature(kf.feature)
		}
	}

	return features
}

// ExtractUserStories collects canonical user-story sentences. When none
// match, exactly one default story is returned.
func ExtractUserStories(text string) []string {
	matches := userStoryPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return []string{defaultUserStory}
	}

	stories := make([]string, 0, len(matches))
	for _, m := range matches {
		stories = append(stories, strings.TrimSpace(m))
	}
	return stories
}

// ExtractAcceptanceCriteria collects criteria from labeled line fragments.
// No deduplication is applied.
func ExtractAcceptanceCriteria(text string) []string {
	var criteria []string

	for _, line := range strings.Split(text, "\n") {
		for _, pattern := range criteriaPatterns {
			if m := pattern.FindStringSubmatch(line); m != nil {
				criteria = append(criteria, strings.TrimSpace(m[1]))
				break
			}
		}
	}

	return criteria
}
