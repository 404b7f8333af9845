package types

// TestStatus is the lifecycle state of a test case. Statuses only move
// forward through this set; callers are responsible for never regressing a
// case (e.g. from generated back to pending).
type TestStatus string

const (
	StatusPending   TestStatus = "pending"   // StatusPending means the case exists but has no generated code yet.
	StatusGenerated TestStatus = "generated" // StatusGenerated means code has been generated for the case.
	StatusRunning   TestStatus = "running"   // StatusRunning means the case is currently executing.
	StatusPassed    TestStatus = "passed"    // StatusPassed means execution completed successfully.
	StatusFailed    TestStatus = "failed"    // StatusFailed means execution completed with failures.
)

// Framework identifies a browser-automation target.
type Framework string

const (
	// FrameworkPlaywright supports code generation and execution.
	FrameworkPlaywright Framework = "playwright"
	// FrameworkCypress supports code generation and execution.
	FrameworkCypress Framework = "cypress"
	// FrameworkSelenium is execution-only; no code generation support.
	FrameworkSelenium Framework = "selenium"
)

// Frameworks lists all known frameworks in declaration order.
func Frameworks() []Framework {
	return []Framework{FrameworkPlaywright, FrameworkCypress, FrameworkSelenium}
}

// IsValid reports whether f is one of the known frameworks.
func (f Framework) IsValid() bool {
	switch f {
	case FrameworkPlaywright, FrameworkCypress, FrameworkSelenium:
		return true
	}
	return false
}

// SupportsGeneration reports whether code can be generated for f.
// Selenium is execution-only.
func (f Framework) SupportsGeneration() bool {
	return f == FrameworkPlaywright || f == FrameworkCypress
}

// QuickTest is the structured descriptor extracted from an ad-hoc
// URL+credentials snippet. URL is required for the descriptor to be valid;
// username and password are independently optional.
type QuickTest struct {
	URL      string `json:"url"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// TestCase is one executable browser-automation test case.
//
// The id is stable and unique within one AnalysisResult only; synthesized
// ids are literal constants reused across analysis calls, so callers must
// not assume global uniqueness.
type TestCase struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	Steps          []string             `json:"steps"`
	ExpectedResult string               `json:"expectedResult"`
	Status         TestStatus           `json:"status"`
	TestData       *QuickTest           `json:"testData,omitempty"`
	Code           map[Framework]string `json:"code,omitempty"`
}

// SetCode records generated code for a framework and advances the case to
// StatusGenerated.
func (tc *TestCase) SetCode(framework Framework, code string) {
	if tc.Code == nil {
		tc.Code = make(map[Framework]string)
	}
	tc.Code[framework] = code
	tc.Status = StatusGenerated
}

// CodeFor returns the generated code for a framework, if any.
func (tc *TestCase) CodeFor(framework Framework) (string, bool) {
	code, ok := tc.Code[framework]
	return code, ok
}

// AnalysisResult is the full output of one requirement analysis. It is
// owned by the session that requested it and replaced wholesale on
// re-analysis, never merged.
type AnalysisResult struct {
	SessionID          string      `json:"sessionId,omitempty"`
	Features           []string    `json:"features"`
	UserStories        []string    `json:"userStories"`
	AcceptanceCriteria []string    `json:"acceptanceCriteria"`
	TestCases          []*TestCase `json:"testCases"`
}

// ExecutionPlan is the ordered file and command sequence for one execution
// request. Built fresh per request and never persisted beyond the call.
type ExecutionPlan struct {
	Framework Framework
	Files     []string
	Commands  []string
}
