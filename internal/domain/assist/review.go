package assist

import (
	"context"

	"go.uber.org/zap"
)

// ReviewResponder produces a sentiment classification and acknowledgement
// message for a submitted review.
type ReviewResponder struct {
	infer Inferrer
	model string
	log   *zap.Logger
}

// NewReviewResponder creates a ReviewResponder.
func NewReviewResponder(infer Inferrer, model string, log *zap.Logger) *ReviewResponder {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReviewResponder{infer: infer, model: model, log: log}
}

// Respond classifies a review and generates an acknowledgement. It never
// fails: any model or extraction problem yields the rating-derived
// fallback, and a partially extracted reply is completed field by field.
// Exactly one inference attempt is made — the caller persists the outcome,
// so re-sampling would make review submission non-deterministic.
func (r *ReviewResponder) Respond(ctx context.Context, rating int, review string) ReviewReply {
	prompt, err := BuildPrompt(TaskReviewResponse, Params{Rating: rating, Review: review})
	if err != nil {
		return FallbackReviewReply(rating)
	}

	res := r.infer.Infer(ctx, prompt, r.model)
	if !res.OK {
		r.log.Info("review response generation unavailable, using fallback",
			zap.String("errorKind", string(res.ErrKind)))
		return FallbackReviewReply(rating)
	}

	reply, err := ExtractReviewReply(res.RawText)
	if err != nil {
		r.log.Info("review response unextractable, using fallback")
		return FallbackReviewReply(rating)
	}

	// Fill whichever field the extraction could not recover.
	if reply.Sentiment == "" {
		reply.Sentiment = FallbackReviewReply(rating).Sentiment
	}
	if reply.Message == "" {
		reply.Message = fallbackReviewMessage
	}
	return *reply
}
