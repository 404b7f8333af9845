package analyzer

import (
	"context"

	"github.com/google/uuid"

	"github.com/testwright/testwright/pkg/logging"
	"github.com/testwright/testwright/pkg/types"
)

// Pipeline is the two-arm analysis strategy: a quick-test descriptor short
// circuits to the URL-based synthesizer; otherwise the remote arm is tried
// first and the deterministic arm (heuristics + keyword synthesis) is the
// explicit fallback. The fallback decision lives here, at the call site,
// never inside the remote client.
type Pipeline struct {
	remote *RemoteAnalysisClient
	logger *logging.Logger
}

// NewPipeline creates an analysis pipeline around the given remote client.
// A nil client disables the remote arm entirely.
func NewPipeline(remote *RemoteAnalysisClient) *Pipeline {
	logger, _ := logging.NewLogger("pipeline")
	return &Pipeline{
		remote: remote,
		logger: logger,
	}
}

// Analyze turns requirement text into an AnalysisResult. It never fails:
// malformed or unrecognizable text degrades to the generic fallback case.
// Each call produces a fresh result with its own session id; results are
// replaced wholesale on re-analysis, never merged.
func (p *Pipeline) Analyze(ctx context.Context, text string) *types.AnalysisResult {
	sessionID := uuid.New().String()
	p.logger.Debugf("analyzing %d bytes of requirement text (session %s)", len(text), sessionID)

	if descriptor, ok := ParseQuickTest(text); ok {
		p.logger.Infof("quick-test descriptor found for %s", descriptor.URL)
		return &types.AnalysisResult{
			SessionID:   sessionID,
			Features:    []string{"User Authentication"},
			UserStories: []string{defaultUserStory},
			TestCases:   SynthesizeFromQuickTest(descriptor),
		}
	}

	if p.remote != nil {
		if result, err := p.remote.Analyze(ctx, text); err == nil {
			result.SessionID = sessionID
			return result
		} else {
			p.logger.Warnf("remote analysis unavailable, using deterministic path: %v", err)
		}
	}

	result := AnalyzeHeuristically(text)
	result.SessionID = sessionID
	result.TestCases = SynthesizeFromKeywords(text)
	return result
}
