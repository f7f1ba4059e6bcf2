// Client is the inference entry point used by the resilience layer.
// It wraps the Router with a per-call deadline and classifies every failure
// into an ErrorKind. It never retries: retries are a caller policy, and the
// only mutating caller (review submission) must not re-sample the model.
package llm

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Client performs single blocking inference calls.
type Client struct {
	router  *Router
	timeout time.Duration
	log     *zap.Logger
}

// NewClient creates a Client. A zero timeout defaults to 30 seconds.
func NewClient(router *Router, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{router: router, timeout: timeout, log: log}
}

// Generate routes to a provider and performs one completion call.
// The inbound context is bounded by the client deadline, so an aborted HTTP
// request cancels the outbound call as well.
func (c *Client) Generate(ctx context.Context, prompt, model string) (string, error) {
	provider, err := c.router.Route(ctx)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := provider.Generate(ctx, GenerateRequest{Model: model, Prompt: prompt})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// Infer performs one completion call and reports the outcome as a Result.
// It never returns an error: transport failures become Result{OK:false} with
// a classification, which is what the fallback policy keys on.
func (c *Client) Infer(ctx context.Context, prompt, model string) Result {
	text, err := c.Generate(ctx, prompt, model)
	if err != nil {
		kind := ErrorNetwork
		var callErr *CallError
		if errors.As(err, &callErr) {
			kind = callErr.Kind
		}
		c.log.Warn("inference call failed",
			zap.String("model", model),
			zap.String("errorKind", string(kind)),
			zap.Error(err),
		)
		return Result{OK: false, ErrKind: kind}
	}
	return Result{OK: true, RawText: text}
}
