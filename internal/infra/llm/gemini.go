// Gemini adapter backed by google.golang.org/genai.
// Registered in the Router alongside Ollama when GEMINI_API_KEY is configured.
package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider implements Provider against the hosted Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a GeminiProvider. The API key is required.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini provider: api key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("gemini provider: create client: %w", err)
	}

	return &GeminiProvider{client: client, model: model}, nil
}

// Generate performs a non-streaming completion via Models.GenerateContent.
func (p *GeminiProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	cfg := &genai.GenerateContentConfig{}
	if req.Temperature != 0 {
		cfg.Temperature = genai.Ptr(req.Temperature)
	}
	if req.MaxTokens != 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	result, err := p.client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return nil, &CallError{Kind: classifyGeminiError(ctx, err), Err: err}
	}

	return &GenerateResponse{
		Text:       result.Text(),
		StopReason: "stop",
	}, nil
}

// ModelInfo returns static metadata for this provider/model.
func (p *GeminiProvider) ModelInfo() ModelMeta {
	return ModelMeta{
		ID:        p.model,
		Provider:  "gemini",
		Version:   "v1",
		MaxTokens: 8192,
	}
}

// HealthCheck is a no-op for the hosted endpoint: there is no cheap liveness
// probe that does not consume quota. Reachability failures surface on Generate.
func (p *GeminiProvider) HealthCheck(_ context.Context) error {
	return nil
}

// classifyGeminiError maps SDK failures onto the shared ErrorKind taxonomy.
func classifyGeminiError(ctx context.Context, err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return ErrorTimeout
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return ErrorNon2xx
	}
	return ErrorNetwork
}
