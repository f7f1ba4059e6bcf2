package assist

import (
	"context"
	"testing"

	"github.com/mealdash/mealdash/internal/infra/llm"
)

func TestAnalyzeZeroReviewsShortCircuits(t *testing.T) {
	infer := &stubInferrer{}
	result := NewAnalyzer(infer, "test-model", nil).Analyze(context.Background(), nil)

	if result.Analysis != "No reviews available to analyze." {
		t.Errorf("analysis = %q", result.Analysis)
	}
	if result.ReviewsCount != 0 {
		t.Errorf("reviewsCount = %d, want 0", result.ReviewsCount)
	}
	if infer.calls != 0 {
		t.Errorf("inference called %d times for zero reviews, want 0", infer.calls)
	}
}

func TestAnalyzeModelPath(t *testing.T) {
	infer := &stubInferrer{res: llm.Result{OK: true, RawText: "• Customers love the biryani.\n• Delivery times need work."}}
	reviews := []ReviewRecord{{Review: "great biryani", Sentiment: "positive", Rating: "5"}}

	result := NewAnalyzer(infer, "test-model", nil).Analyze(context.Background(), reviews)
	if result.Source != ProvenanceModel {
		t.Errorf("source = %q, want model", result.Source)
	}
	if result.ReviewsCount != 1 {
		t.Errorf("reviewsCount = %d, want 1", result.ReviewsCount)
	}
	if result.Analysis == "" {
		t.Error("empty analysis on the model path")
	}
}

func TestAnalyzeModelFailureFallsBack(t *testing.T) {
	infer := &stubInferrer{res: llm.Result{OK: false, ErrKind: llm.ErrorTimeout}}
	reviews := []ReviewRecord{
		{Review: "cold food", Sentiment: "negative", Rating: "2"},
		{Review: "tasty", Sentiment: "positive", Rating: "4"},
	}

	result := NewAnalyzer(infer, "test-model", nil).Analyze(context.Background(), reviews)
	if result.Source != ProvenanceFallback {
		t.Errorf("source = %q, want fallback", result.Source)
	}
	if result.Analysis != FallbackAnalysis(reviews) {
		t.Errorf("analysis = %q, want the deterministic fallback", result.Analysis)
	}
}
