package llm

import "strings"

// StripCodeFences removes markdown code-fence delimiters (optionally
// annotated with a language tag) and surrounding whitespace from a model
// response. Nested fence pairs are stripped until none remain, so the
// operation is idempotent: stripping an already stripped string returns it
// unchanged.
func StripCodeFences(response string) string {
	trimmed := strings.TrimSpace(response)

	for strings.HasPrefix(trimmed, "```") {
		// Drop the opening fence line, including any language tag.
		idx := strings.IndexByte(trimmed, '\n')
		if idx < 0 {
			// A lone fence marker with no body.
			return ""
		}
		trimmed = strings.TrimSpace(trimmed[idx+1:])

		// Drop the closing fence, if present.
		if strings.HasSuffix(trimmed, "```") {
			trimmed = strings.TrimSpace(trimmed[:len(trimmed)-3])
		}
	}

	return trimmed
}
