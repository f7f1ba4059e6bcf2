package assist

import (
	"strings"
	"testing"
)

func TestFallbackReviewReplyRatingThreshold(t *testing.T) {
	tests := []struct {
		rating int
		want   string
	}{
		{5, "positive"},
		{4, "positive"},
		{3, "neutral"},
		{1, "neutral"},
		{0, "neutral"},
	}
	for _, tt := range tests {
		reply := FallbackReviewReply(tt.rating)
		if reply.Sentiment != tt.want {
			t.Errorf("rating %d: sentiment = %q, want %q", tt.rating, reply.Sentiment, tt.want)
		}
		if reply.Message != fallbackReviewMessage {
			t.Errorf("rating %d: message = %q", tt.rating, reply.Message)
		}
		if reply.Provenance != ProvenanceFallback {
			t.Errorf("rating %d: provenance = %q", tt.rating, reply.Provenance)
		}
	}
}

func TestFallbackDescriptionDeterministic(t *testing.T) {
	a := FallbackDescription("spicy, crispy, paneer")
	b := FallbackDescription("spicy, crispy, paneer")
	if a != b {
		t.Errorf("fallback description is not deterministic: %q vs %q", a, b)
	}
	if !strings.Contains(a, "spicy, crispy, paneer") {
		t.Errorf("description %q does not include the features", a)
	}
}

func TestFallbackAnalysisCounts(t *testing.T) {
	reviews := []ReviewRecord{
		{Sentiment: "positive"},
		{Sentiment: "positive"},
		{Sentiment: "negative"},
		{Sentiment: ""},
	}
	got := FallbackAnalysis(reviews)
	if !strings.Contains(got, "4 customer reviews") {
		t.Errorf("analysis missing review count: %q", got)
	}
	if !strings.Contains(got, "2 positive, 1 negative, 1 neutral") {
		t.Errorf("analysis missing sentiment breakdown: %q", got)
	}
	if !strings.Contains(got, "mostly satisfied") {
		t.Errorf("analysis missing trend line: %q", got)
	}
}
