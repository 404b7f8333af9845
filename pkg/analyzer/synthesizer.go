package analyzer

import (
	"strings"

	"github.com/testwright/testwright/pkg/types"
)

// SynthesizeFromQuickTest emits the canonical four login test cases for a
// quick-test descriptor: valid credentials, invalid username, invalid
// password, and empty-fields validation. Every case embeds the same
// descriptor so later code generation can recover the exact URL and
// credentials without re-parsing.
//
// The ids are literal constants; uniqueness holds only within one
// AnalysisResult, never across analysis calls.
func SynthesizeFromQuickTest(descriptor *types.QuickTest) []*types.TestCase {
	return []*types.TestCase{
		{
			ID:          "login-001",
			Name:        "Valid Login",
			Description: "Verify that a user can log in with valid credentials",
			Steps: []string{
				"Navigate to " + descriptor.URL,
				"Enter valid username",
				"Enter valid password",
				"Click the login button",
			},
			ExpectedResult: "User is redirected to the dashboard",
			Status:         types.StatusPending,
			TestData:       descriptor,
		},
		{
			ID:          "login-002",
			Name:        "Invalid Username",
			Description: "Verify that login fails with an invalid username",
			Steps: []string{
				"Navigate to " + descriptor.URL,
				"Enter invalid username",
				"Enter valid password",
				"Click the login button",
			},
			ExpectedResult: "An error message is displayed",
			Status:         types.StatusPending,
			TestData:       descriptor,
		},
		{
			ID:          "login-003",
			Name:        "Invalid Password",
			Description: "Verify that login fails with an invalid password",
			Steps: []string{
				"Navigate to " + descriptor.URL,
				"Enter valid username",
				"Enter invalid password",
				"Click the login button",
			},
			ExpectedResult: "An error message is displayed",
			Status:         types.StatusPending,
			TestData:       descriptor,
		},
		{
			ID:          "login-004",
			Name:        "Empty Fields Validation",
			Description: "Verify that validation triggers when fields are left empty",
			Steps: []string{
				"Navigate to " + descriptor.URL,
				"Leave username and password empty",
				"Click the login button",
			},
			ExpectedResult: "Validation errors are displayed for the empty fields",
			Status:         types.StatusPending,
			TestData:       descriptor,
		},
	}
}

// domainRule pairs a keyword predicate with the canned case set it emits.
// Rules are evaluated independently in declaration order; a text matching
// multiple keywords yields the union of their case sets.
type domainRule struct {
	keyword string
	cases   func() []*types.TestCase
}

var domainRules = []domainRule{
	{"login", loginCases},
	{"cart", cartCases},
	{"search", searchCases},
}

// SynthesizeFromKeywords inspects the lower-cased text for domain keywords
// and appends the fixed canned case set for each match, in rule order. When
// no keyword matches, exactly one generic fallback case is emitted. The
// output is deterministic: identical input yields an identical ordered list.
func SynthesizeFromKeywords(text string) []*types.TestCase {
	lower := strings.ToLower(text)

	var cases []*types.TestCase
	for _, rule := range domainRules {
		if strings.Contains(lower, rule.keyword) {
			cases = append(cases, rule.cases()...)
		}
	}

	if len(cases) == 0 {
		cases = append(cases, genericCase())
	}

	return cases
}

func loginCases() []*types.TestCase {
	return []*types.TestCase{
		{
			ID:          "login-001",
			Name:        "Valid Login",
			Description: "Verify that a user can log in with valid credentials",
			Steps: []string{
				"Navigate to the login page",
				"Enter valid username",
				"Enter valid password",
				"Click the login button",
			},
			ExpectedResult: "User is redirected to the dashboard",
			Status:         types.StatusPending,
		},
		{
			ID:          "login-002",
			Name:        "Invalid Login",
			Description: "Verify that login fails with invalid credentials",
			Steps: []string{
				"Navigate to the login page",
				"Enter invalid username",
				"Enter invalid password",
				"Click the login button",
			},
			ExpectedResult: "An error message is displayed",
			Status:         types.StatusPending,
		},
	}
}

func cartCases() []*types.TestCase {
	return []*types.TestCase{
		{
			ID:          "cart-001",
			Name:        "Add Item to Cart",
			Description: "Verify that a product can be added to the shopping cart",
			Steps: []string{
				"Navigate to the product page",
				"Click the add to cart button",
				"Verify the cart counter increases",
			},
			ExpectedResult: "The cart displays the added product",
			Status:         types.StatusPending,
		},
		{
			ID:          "cart-002",
			Name:        "Remove Item from Cart",
			Description: "Verify that a product can be removed from the shopping cart",
			Steps: []string{
				"Navigate to the cart page",
				"Click the remove button for a product",
				"Verify the cart counter decreases",
			},
			ExpectedResult: "The cart no longer displays the removed product",
			Status:         types.StatusPending,
		},
	}
}

func searchCases() []*types.TestCase {
	return []*types.TestCase{
		{
			ID:          "search-001",
			Name:        "Search for Product",
			Description: "Verify that searching returns matching results",
			Steps: []string{
				"Navigate to the home page",
				"Enter a search term in the search field",
				"Click the search button",
			},
			ExpectedResult: "Matching results are displayed",
			Status:         types.StatusPending,
		},
	}
}

func genericCase() *types.TestCase {
	return &types.TestCase{
		ID:          "generic-001",
		Name:        "Basic Functionality",
		Description: "Verify that the core functionality of the system works",
		Steps: []string{
			"Navigate to the application",
			"Verify the main page loads",
		},
		ExpectedResult: "The application responds without errors",
		Status:         types.StatusPending,
	}
}
