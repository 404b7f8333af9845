package codegen

import (
	"fmt"
	"strings"

	"github.com/testwright/testwright/pkg/types"
)

// cypressTranslator renders Cypress test sources (JavaScript).
type cypressTranslator struct{}

func (cypressTranslator) FileExt() string  { return ".cy.js" }
func (cypressTranslator) Language() string { return "javascript" }

func (cypressTranslator) BestPractices() string {
	return "Use Cypress with JavaScript: describe/it blocks, cy.* commands, data-cy attributes where possible, and automatic retry-ability instead of explicit waits."
}

func (cypressTranslator) Header(tc *types.TestCase) string {
	var b strings.Builder
	fmt.Fprintf(&b, "describe('%s', () => {\n", escapeJS(tc.Name))
	fmt.Fprintf(&b, "  it('%s: %s', () => {\n", escapeJS(tc.ID), escapeJS(tc.Description))
	return b.String()
}

func (cypressTranslator) Footer() string {
	return "  });\n});\n"
}

func (cypressTranslator) Navigate(url string) string {
	return fmt.Sprintf("    cy.visit('%s');\n", escapeJS(url))
}

func (cypressTranslator) Click(selector string) string {
	return fmt.Sprintf("    cy.get('%s').first().click();\n", escapeJS(selector))
}

func (cypressTranslator) Fill(selector, value string) string {
	return fmt.Sprintf("    cy.get('%s').first().type('%s');\n", escapeJS(selector), escapeJS(value))
}

func (cypressTranslator) Select(selector, value string) string {
	return fmt.Sprintf("    cy.get('%s').first().select('%s');\n", escapeJS(selector), escapeJS(value))
}

func (cypressTranslator) Verify(text string) string {
	return fmt.Sprintf("    cy.get('body').should('be.visible'); // %s\n", text)
}

func (cypressTranslator) Comment(step string) string {
	return fmt.Sprintf("    // %s\n", step)
}

func (cypressTranslator) AssertRedirect() string {
	return "    cy.url().should('not.include', '/login');\n"
}

func (cypressTranslator) AssertVisible(text string) string {
	return fmt.Sprintf("    cy.get('body').should('be.visible'); // %s\n", text)
}

func (cypressTranslator) AssertError() string {
	return "    cy.get('.error, [role=\"alert\"]').should('be.visible');\n"
}

func (cypressTranslator) AssertSuccess() string {
	return "    cy.title().should('not.be.empty');\n"
}

// URLTemplate renders the deterministic quick-test source with the embedded
// URL and credentials reproduced verbatim.
func (t cypressTranslator) URLTemplate(tc *types.TestCase) string {
	qt := tc.TestData
	username := qt.Username
	if username == "" {
		username = "testuser"
	}
	password := qt.Password
	if password == "" {
		password = "testpass"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "describe('%s', () => {\n", escapeJS(tc.Name))
	fmt.Fprintf(&b, "  it('%s: %s', () => {\n", escapeJS(tc.ID), escapeJS(tc.Description))
	fmt.Fprintf(&b, "    cy.visit('%s');\n", escapeJS(qt.URL))

	switch tc.ID {
	case "login-002":
		b.WriteString(t.Fill(`input[name="username"], input[type="email"]`, "invalid_user"))
		b.WriteString(t.Fill(`input[name="password"], input[type="password"]`, password))
		b.WriteString(t.Click(`button[type="submit"]`))
		b.WriteString(t.AssertError())
	case "login-003":
		b.WriteString(t.Fill(`input[name="username"], input[type="email"]`, username))
		b.WriteString(t.Fill(`input[name="password"], input[type="password"]`, "invalid_password"))
		b.WriteString(t.Click(`button[type="submit"]`))
		b.WriteString(t.AssertError())
	case "login-004":
		b.WriteString(t.Click(`button[type="submit"]`))
		b.WriteString(t.AssertError())
	default:
		b.WriteString(t.Fill(`input[name="username"], input[type="email"]`, username))
		b.WriteString(t.Fill(`input[name="password"], input[type="password"]`, password))
		b.WriteString(t.Click(`button[type="submit"]`))
		fmt.Fprintf(&b, "    cy.url().should('not.eq', '%s');\n", escapeJS(qt.URL))
	}

	b.WriteString("  });\n});\n")
	return b.String()
}
