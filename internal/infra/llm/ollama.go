// Ollama HTTP adapter.
// OllamaProvider calls the Ollama REST API using stdlib net/http.
// Endpoints used:
//   - POST /api/generate — non-streaming completion
//   - GET  /api/tags     — health check (lists available models)
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

const (
	mimeJSON          = "application/json"
	headerContentType = "Content-Type"
)

// OllamaProvider implements Provider against a running Ollama instance.
type OllamaProvider struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOllamaProvider creates an OllamaProvider with a 30s default timeout.
func NewOllamaProvider(baseURL, model string) *OllamaProvider {
	return &OllamaProvider{
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ─── internal Ollama JSON types ──────────────────────────────────────────────

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response   string `json:"response"`
	DoneReason string `json:"done_reason"`
	Done       bool   `json:"done"`
}

// ─── Provider implementation ─────────────────────────────────────────────────

// Generate performs a non-streaming completion via POST /api/generate.
// Failures are returned as *CallError so callers can key fallback decisions
// on the classification instead of error strings.
func (p *OllamaProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	body, err := json.Marshal(ollamaGenerateRequest{
		Model:   model,
		Prompt:  req.Prompt,
		Stream:  false,
		Options: buildGenerateOptions(req),
	})
	if err != nil {
		return nil, fmt.Errorf("ollama generate: marshal request: %w", err)
	}

	url := p.baseURL + "/api/generate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ollama generate: build request: %w", err)
	}
	httpReq.Header.Set(headerContentType, mimeJSON)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, &CallError{Kind: classifyTransportError(err), Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &CallError{Kind: ErrorNon2xx, Err: fmt.Errorf("ollama generate: status %d", resp.StatusCode)}
	}

	var ollamaResp ollamaGenerateResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&ollamaResp); decodeErr != nil {
		return nil, &CallError{Kind: ErrorMalformedBody, Err: fmt.Errorf("decode generate response: %w", decodeErr)}
	}

	return &GenerateResponse{
		Text:       ollamaResp.Response,
		StopReason: ollamaResp.DoneReason,
	}, nil
}

// buildGenerateOptions converts GenerateRequest fields into the Ollama options map.
func buildGenerateOptions(req GenerateRequest) map[string]any {
	opts := map[string]any{}
	if req.Temperature != 0 {
		opts["temperature"] = req.Temperature
	}
	if req.MaxTokens != 0 {
		opts["num_predict"] = req.MaxTokens
	}
	if len(opts) == 0 {
		return nil
	}
	return opts
}

// ModelInfo returns static metadata for this provider/model.
func (p *OllamaProvider) ModelInfo() ModelMeta {
	return ModelMeta{
		ID:        p.model,
		Provider:  "ollama",
		Version:   "v1",
		MaxTokens: 4096,
	}
}

// HealthCheck calls GET /api/tags — returns nil if Ollama is reachable.
func (p *OllamaProvider) HealthCheck(ctx context.Context) error {
	url := p.baseURL + "/api/tags"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("ollama healthcheck: build request: %w", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ollama healthcheck: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama healthcheck: status %d", resp.StatusCode)
	}
	return nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// classifyTransportError distinguishes a deadline expiry from a connection
// failure. Both context deadlines and net-level timeouts count as timeout.
func classifyTransportError(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrorTimeout
	}
	return ErrorNetwork
}
