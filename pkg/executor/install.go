package executor

import (
	"fmt"
	"io"

	"github.com/playwright-community/playwright-go"

	"github.com/testwright/testwright/pkg/types"
)

// EnsureBrowsers makes sure the framework's browser runtime is present
// before a run. For playwright this downloads the driver and browsers if
// missing; cypress manages its own binaries through npm, so there is
// nothing to do. Progress output goes to w.
func EnsureBrowsers(framework types.Framework, w io.Writer) error {
	if framework != types.FrameworkPlaywright {
		return nil
	}
	if w == nil {
		w = io.Discard
	}

	opts := &playwright.RunOptions{
		Browsers: []string{"chromium", "firefox", "webkit"},
		Stdout:   w,
		Stderr:   w,
	}
	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright browsers: %w", err)
	}

	return nil
}
