package codegen

import (
	"fmt"
	"strings"

	"github.com/testwright/testwright/pkg/types"
)

// playwrightTranslator renders Playwright test sources (TypeScript).
type playwrightTranslator struct{}

func (playwrightTranslator) FileExt() string  { return ".spec.ts" }
func (playwrightTranslator) Language() string { return "typescript" }

func (playwrightTranslator) BestPractices() string {
	return "Use Playwright with TypeScript: import { test, expect } from '@playwright/test', use web-first assertions (await expect(...)), prefer role- and label-based locators, and keep each test independent."
}

func (playwrightTranslator) Header(tc *types.TestCase) string {
	var b strings.Builder
	b.WriteString("import { test, expect } from '@playwright/test';\n\n")
	fmt.Fprintf(&b, "test('%s: %s', async ({ page }) => {\n", escapeJS(tc.ID), escapeJS(tc.Name))
	return b.String()
}

func (playwrightTranslator) Footer() string {
	return "});\n"
}

func (playwrightTranslator) Navigate(url string) string {
	return fmt.Sprintf("  await page.goto('%s');\n", escapeJS(url))
}

func (playwrightTranslator) Click(selector string) string {
	return fmt.Sprintf("  await page.click('%s');\n", escapeJS(selector))
}

func (playwrightTranslator) Fill(selector, value string) string {
	return fmt.Sprintf("  await page.fill('%s', '%s');\n", escapeJS(selector), escapeJS(value))
}

func (playwrightTranslator) Select(selector, value string) string {
	return fmt.Sprintf("  await page.selectOption('%s', '%s');\n", escapeJS(selector), escapeJS(value))
}

func (playwrightTranslator) Verify(text string) string {
	return fmt.Sprintf("  await expect(page.locator('body')).toBeVisible(); // %s\n", text)
}

func (playwrightTranslator) Comment(step string) string {
	return fmt.Sprintf("  // %s\n", step)
}

func (playwrightTranslator) AssertRedirect() string {
	return "  await expect(page).not.toHaveURL(/login/);\n"
}

func (playwrightTranslator) AssertVisible(text string) string {
	return fmt.Sprintf("  await expect(page.locator('body')).toBeVisible(); // %s\n", text)
}

func (playwrightTranslator) AssertError() string {
	return "  await expect(page.locator('.error, [role=\"alert\"]')).toBeVisible();\n"
}

func (playwrightTranslator) AssertSuccess() string {
	return "  await expect(page).toHaveTitle(/.+/);\n"
}

// URLTemplate renders the deterministic quick-test source. The embedded
// URL and credentials are reproduced verbatim; the scenario variant is
// selected by the case id.
func (t playwrightTranslator) URLTemplate(tc *types.TestCase) string {
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
	b.WriteString("import { test, expect } from '@playwright/test';\n\n")
	fmt.Fprintf(&b, "test('%s: %s', async ({ page }) => {\n", escapeJS(tc.ID), escapeJS(tc.Name))
	fmt.Fprintf(&b, "  await page.goto('%s');\n", escapeJS(qt.URL))

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
		fmt.Fprintf(&b, "  await expect(page).not.toHaveURL('%s');\n", escapeJS(qt.URL))
	}

	b.WriteString("});\n")
	return b.String()
}
