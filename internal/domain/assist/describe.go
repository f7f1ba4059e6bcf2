package assist

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// DescribeResult is a generated menu-item description with provenance.
type DescribeResult struct {
	Features    string     `json:"features"`
	Description string     `json:"description"`
	Source      Provenance `json:"source"`
	IsDummyData bool       `json:"isDummyData"`
}

// Describer generates menu-item descriptions.
type Describer struct {
	infer Inferrer
	model string
	log   *zap.Logger
}

// NewDescriber creates a Describer.
func NewDescriber(infer Inferrer, model string, log *zap.Logger) *Describer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Describer{infer: infer, model: model, log: log}
}

// Describe generates a description for the given feature keywords.
// Model failure degrades to the deterministic template; only missing
// features is an error.
func (d *Describer) Describe(ctx context.Context, features string) (*DescribeResult, error) {
	prompt, err := BuildPrompt(TaskDescription, Params{Features: features})
	if err != nil {
		return nil, err
	}

	res := d.infer.Infer(ctx, prompt, d.model)
	if !res.OK || strings.TrimSpace(res.RawText) == "" {
		d.log.Info("description generation unavailable, using fallback",
			zap.String("errorKind", string(res.ErrKind)))
		return &DescribeResult{
			Features:    features,
			Description: FallbackDescription(features),
			Source:      ProvenanceFallback,
			IsDummyData: true,
		}, nil
	}

	return &DescribeResult{
		Features:    features,
		Description: strings.TrimSpace(res.RawText),
		Source:      ProvenanceModel,
	}, nil
}
