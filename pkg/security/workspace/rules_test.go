package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewPathRules_InvalidPattern(t *testing.T) {
	_, err := NewPathRules([]string{"tests/["}, nil)
	if err == nil {
		t.Error("Expected error for invalid allowed pattern")
	}

	_, err = NewPathRules(nil, []string{"["})
	if err == nil {
		t.Error("Expected error for invalid denied pattern")
	}
}

func TestPathRules_Allows(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		denied  []string
		path    string
		want    bool
	}{
		{
			name: "no rules allows everything",
			path: "tests/playwright/generated/login-001.spec.ts",
			want: true,
		},
		{
			name:    "allowed pattern matches",
			allowed: []string{"tests/**"},
			path:    "tests/playwright/generated/login-001.spec.ts",
			want:    true,
		},
		{
			name:    "allowed pattern does not match",
			allowed: []string{"tests/**"},
			path:    "src/main.go",
			want:    false,
		},
		{
			name:   "denied pattern wins without allow list",
			denied: []string{"**/*.env"},
			path:   "tests/playwright/.env",
			want:   false,
		},
		{
			name:    "denied pattern wins over allowed",
			allowed: []string{"tests/**"},
			denied:  []string{"tests/**/secrets*"},
			path:    "tests/playwright/secrets.ts",
			want:    false,
		},
		{
			name:    "path normalized before matching",
			allowed: []string{"tests/**"},
			path:    "tests/./playwright/../playwright/spec.ts",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := NewPathRules(tt.allowed, tt.denied)
			if err != nil {
				t.Fatalf("NewPathRules failed: %v", err)
			}
			if got := rules.Allows(tt.path); got != tt.want {
				t.Errorf("Allows(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestGuard_ValidateArtifactPath(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "artifact-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	guard, err := NewGuard(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create guard: %v", err)
	}

	// Without rules only the boundary check applies.
	if err := guard.ValidateArtifactPath("tests/playwright/generated/a.spec.ts"); err != nil {
		t.Errorf("Expected artifact path to validate without rules: %v", err)
	}
	if err := guard.ValidateArtifactPath("../outside.txt"); err == nil {
		t.Error("Expected boundary violation for path outside workspace")
	}

	rules, err := NewPathRules([]string{"tests/**"}, []string{"**/*.env"})
	if err != nil {
		t.Fatalf("Failed to compile rules: %v", err)
	}
	guard.SetArtifactRules(rules)

	if err := guard.ValidateArtifactPath("tests/playwright/generated/a.spec.ts"); err != nil {
		t.Errorf("Expected allowed artifact path to validate: %v", err)
	}
	if err := guard.ValidateArtifactPath("src/main.go"); err == nil {
		t.Error("Expected artifact path outside allow list to be rejected")
	}
	if err := guard.ValidateArtifactPath("tests/playwright/.env"); err == nil {
		t.Error("Expected denied artifact path to be rejected")
	}

	// Absolute paths inside the workspace validate against the same rules.
	if err := guard.ValidateArtifactPath(filepath.Join(guard.WorkspaceDir(), "tests", "ok.ts")); err != nil {
		t.Errorf("Expected absolute in-workspace path to validate: %v", err)
	}
}
