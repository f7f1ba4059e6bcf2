package assist

import (
	"fmt"
	"strings"
)

// fallbackReviewMessage is the canonical acknowledgement used whenever the
// model cannot produce a personalized reply. It must read sensibly for any
// rating, so it stays gratitude-only.
const fallbackReviewMessage = "Thank you for your feedback!"

// FallbackReviewReply derives a review reply from the numeric rating alone.
// Ratings above 3 are positive; everything else (including absent) is
// neutral — never negative, a safe default for a customer-facing message.
func FallbackReviewReply(rating int) ReviewReply {
	sentiment := "neutral"
	if rating > 3 {
		sentiment = "positive"
	}
	return ReviewReply{
		Sentiment:  sentiment,
		Message:    fallbackReviewMessage,
		Provenance: ProvenanceFallback,
	}
}

// FallbackDescription produces a deterministic menu description from the
// feature keywords. Same features, same text — no randomness.
func FallbackDescription(features string) string {
	features = strings.TrimSpace(features)
	return fmt.Sprintf(
		"Delicious %s prepared fresh to order with quality ingredients. A customer favorite, crafted to satisfy.",
		features,
	)
}

// FallbackAnalysis summarizes reviews without a model: sentiment counts and
// the review total, in the same bullet format the model is asked for.
func FallbackAnalysis(reviews []ReviewRecord) string {
	var positive, negative, neutral int
	for _, r := range reviews {
		switch strings.ToLower(r.Sentiment) {
		case "positive":
			positive++
		case "negative":
			negative++
		default:
			neutral++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "• Analyzed %d customer reviews.\n", len(reviews))
	fmt.Fprintf(&b, "• Sentiment breakdown: %d positive, %d negative, %d neutral.\n", positive, negative, neutral)
	switch {
	case positive > negative:
		b.WriteString("• Overall sentiment trend: customers are mostly satisfied.")
	case negative > positive:
		b.WriteString("• Overall sentiment trend: customers report recurring issues worth reviewing.")
	default:
		b.WriteString("• Overall sentiment trend: mixed feedback with no clear lean.")
	}
	return b.String()
}
