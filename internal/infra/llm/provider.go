// Provider interface. Adapters (Ollama, Gemini, etc.) implement this so the
// application is never coupled to a specific LLM vendor.
package llm

import "context"

// Provider is the model-agnostic interface for text generation.
// Streaming is deliberately excluded: every call in this system is a single
// blocking request/response.
type Provider interface {
	// Generate performs a non-streaming completion.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// ModelInfo returns static metadata about the provider/model.
	ModelInfo() ModelMeta

	// HealthCheck returns nil if the provider is reachable and operational.
	HealthCheck(ctx context.Context) error
}
