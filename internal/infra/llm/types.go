// Package llm defines the model-agnostic text-generation provider abstraction.
// All types here are shared between the provider interface and adapters.
package llm

import "fmt"

// GenerateRequest is the input for a non-streaming completion.
type GenerateRequest struct {
	// Model overrides the provider default when non-empty.
	Model       string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// GenerateResponse is the output from a non-streaming completion.
type GenerateResponse struct {
	Text       string // The generated text.
	StopReason string // "stop" | "length" | "error"
}

// ModelMeta describes the model / provider identity.
type ModelMeta struct {
	ID        string // e.g. "llama3.2:1b", "gemini-2.0-flash"
	Provider  string // e.g. "ollama", "gemini"
	Version   string
	MaxTokens int // Maximum context window size.
}

// ErrorKind classifies a failed inference call. The resilience layer keys its
// fallback decisions on this, never on raw error strings.
type ErrorKind string

const (
	ErrorNone          ErrorKind = ""
	ErrorNetwork       ErrorKind = "network"
	ErrorTimeout       ErrorKind = "timeout"
	ErrorNon2xx        ErrorKind = "non2xx"
	ErrorMalformedBody ErrorKind = "malformedBody"
)

// CallError wraps a transport-level inference failure with its classification.
type CallError struct {
	Kind ErrorKind
	Err  error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("llm call failed (%s): %v", e.Kind, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// Result is the outcome of Client.Infer. Exactly one of the two states holds:
// OK with RawText, or !OK with ErrKind set.
type Result struct {
	OK      bool
	RawText string
	ErrKind ErrorKind
}
