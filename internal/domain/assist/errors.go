// Package assist is the LLM-response resilience layer: it builds prompts,
// extracts structured data from unstructured model output, and falls back
// deterministically when extraction or the model itself fails. Every public
// operation returns a usable payload (possibly fallback-provenance) or a
// well-defined error — a raw parse failure never reaches a caller.
package assist

import "errors"

// ErrInvalidParameters is returned when a caller supplies an unusable prompt
// request (missing required fields). Surfaced as 4xx at the HTTP boundary.
var ErrInvalidParameters = errors.New("invalid prompt parameters")

// ErrUnextractable is returned when the model replied but no extraction
// strategy could recover the expected shape. Always recovered via fallback
// before the HTTP boundary.
var ErrUnextractable = errors.New("could not extract structured data from model output")
