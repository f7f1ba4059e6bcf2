package assist

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// AnalyticsResult is the review-analytics payload for one restaurant.
type AnalyticsResult struct {
	ReviewsCount int            `json:"reviewsCount"`
	Reviews      []ReviewRecord `json:"reviews"`
	Analysis     string         `json:"analysis"`
	Source       Provenance     `json:"source"`
}

// Analyzer summarizes a restaurant's reviews for the admin dashboard.
type Analyzer struct {
	infer Inferrer
	model string
	log   *zap.Logger
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(infer Inferrer, model string, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{infer: infer, model: model, log: log}
}

// Analyze produces a free-text analysis of the given reviews. Zero reviews
// short-circuits without an inference call; model failure degrades to the
// deterministic sentiment-count summary.
func (a *Analyzer) Analyze(ctx context.Context, reviews []ReviewRecord) *AnalyticsResult {
	if len(reviews) == 0 {
		return &AnalyticsResult{
			Reviews:  []ReviewRecord{},
			Analysis: "No reviews available to analyze.",
			Source:   ProvenanceFallback,
		}
	}

	out := &AnalyticsResult{ReviewsCount: len(reviews), Reviews: reviews}

	prompt, err := BuildPrompt(TaskReviewAnalytics, Params{Reviews: reviews})
	if err != nil {
		out.Analysis = FallbackAnalysis(reviews)
		out.Source = ProvenanceFallback
		return out
	}

	res := a.infer.Infer(ctx, prompt, a.model)
	if !res.OK || strings.TrimSpace(res.RawText) == "" {
		a.log.Info("review analytics unavailable, using fallback",
			zap.String("errorKind", string(res.ErrKind)))
		out.Analysis = FallbackAnalysis(reviews)
		out.Source = ProvenanceFallback
		return out
	}

	out.Analysis = strings.TrimSpace(res.RawText)
	out.Source = ProvenanceModel
	return out
}
