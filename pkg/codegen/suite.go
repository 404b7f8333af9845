package codegen

import (
	"fmt"
	"strings"

	"github.com/testwright/testwright/pkg/types"
)

// SuiteFileName returns the aggregate suite file name for a framework.
func SuiteFileName(framework types.Framework) (string, error) {
	switch framework {
	case types.FrameworkPlaywright:
		return "suite.spec.ts", nil
	case types.FrameworkCypress:
		return "suite.cy.js", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFramework, framework)
	}
}

// SuiteFile renders the aggregate suite source referencing every generated
// file by relative path, in generation order.
func SuiteFile(framework types.Framework, files []string) (string, error) {
	var b strings.Builder

	switch framework {
	case types.FrameworkPlaywright:
		b.WriteString("// Aggregate suite: imports every generated test in order.\n")
		for _, file := range files {
			name := strings.TrimSuffix(file, ".ts")
			fmt.Fprintf(&b, "import './%s';\n", name)
		}
	case types.FrameworkCypress:
		b.WriteString("// Aggregate suite: requires every generated test in order.\n")
		for _, file := range files {
			fmt.Fprintf(&b, "require('./%s');\n", file)
		}
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFramework, framework)
	}

	return b.String(), nil
}
