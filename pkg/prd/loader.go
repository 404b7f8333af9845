// Package prd loads requirement documents for analysis. Plain text and
// markdown pass through unchanged; PDF inputs are text-extracted and HTML
// documents are stripped down to their visible text. Loader failures are
// hard input errors, not part of the analysis fallback path.
package prd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Load reads the requirement document at path and returns normalized text.
func Load(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("requirement file path cannot be empty")
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return loadPDF(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read requirement file: %w", err)
	}

	return Normalize(string(data)), nil
}

// Normalize prepares raw requirement text for analysis. HTML documents are
// reduced to visible text; everything else is returned trimmed but otherwise
// unchanged so the line-oriented extractors see the original layout.
func Normalize(text string) string {
	if looksLikeHTML(text) {
		if stripped, err := stripHTML(text); err == nil {
			return strings.TrimSpace(stripped)
		}
	}
	return strings.TrimSpace(text)
}

// loadPDF extracts page content from a PDF into a temp directory and
// concatenates the extracted pages in order.
func loadPDF(path string) (string, error) {
	outDir, err := os.MkdirTemp("", "testwright-pdf-*")
	if err != nil {
		return "", fmt.Errorf("failed to create extraction directory: %w", err)
	}
	defer os.RemoveAll(outDir)

	if err := api.ExtractContentFile(path, outDir, nil, nil); err != nil {
		return "", fmt.Errorf("failed to extract PDF content: %w", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return "", fmt.Errorf("failed to read extraction directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var builder strings.Builder
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			return "", fmt.Errorf("failed to read extracted page %s: %w", name, err)
		}
		builder.Write(data)
		builder.WriteString("\n")
	}

	text := strings.TrimSpace(builder.String())
	if text == "" {
		return "", fmt.Errorf("no extractable text in PDF %s", path)
	}

	return text, nil
}

// looksLikeHTML reports whether the text appears to be an HTML document
// rather than a plain requirement doc with incidental angle brackets.
func looksLikeHTML(text string) bool {
	trimmed := strings.TrimSpace(strings.ToLower(text))
	return strings.HasPrefix(trimmed, "<!doctype html") ||
		strings.HasPrefix(trimmed, "<html") ||
		strings.Contains(trimmed, "<body")
}
