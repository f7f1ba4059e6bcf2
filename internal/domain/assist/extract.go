package assist

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Provenance records where a payload came from. Callers surface it so
// clients can distinguish real model output from deterministic fallback.
type Provenance string

const (
	ProvenanceModel    Provenance = "model"
	ProvenanceFallback Provenance = "fallback"
)

// validSentiments is the closed set accepted from model output. Anything
// else is discarded and re-derived from the numeric rating.
var validSentiments = map[string]bool{
	"positive": true,
	"negative": true,
	"neutral":  true,
}

// ReviewReply is the structured outcome of a review-response task.
type ReviewReply struct {
	Sentiment  string     `json:"sentiment"`
	Message    string     `json:"response"`
	Provenance Provenance `json:"source"`
}

// SearchMatches holds the restaurant names the model picked for a query.
type SearchMatches struct {
	Names []string `json:"matchingRestaurants"`
}

// RecommendationItem is one model-picked restaurant with its reasoning.
type RecommendationItem struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Field regexes are the last-resort extraction strategy: they recover
// individual fields from prose-wrapped or truncated model replies.
var (
	sentimentPattern = regexp.MustCompile(`(?i)sentiment["\s:]+([a-zA-Z]+)`)
	responsePattern  = regexp.MustCompile(`(?i)response["\s:]+([^}]+)`)
)

// ExtractReviewReply recovers {sentiment, response} from raw model output.
// Strategies, in order: direct JSON parse, balanced-brace scan, per-field
// regex. A reply with at least one usable field succeeds; a sentiment
// outside the closed set counts as absent. Returns ErrUnextractable when
// no strategy recovers anything.
func ExtractReviewReply(raw string) (*ReviewReply, error) {
	var parsed struct {
		Sentiment string `json:"sentiment"`
		Response  string `json:"response"`
	}

	if candidate, ok := firstJSONObject(raw); ok {
		if err := json.Unmarshal([]byte(candidate), &parsed); err == nil {
			reply := sanitizeReviewReply(parsed.Sentiment, parsed.Response)
			if reply != nil {
				return reply, nil
			}
		}
	}

	// Field-level salvage for replies that are not valid JSON at all.
	var sentiment, message string
	if m := sentimentPattern.FindStringSubmatch(raw); m != nil {
		sentiment = strings.ToLower(m[1])
	}
	if m := responsePattern.FindStringSubmatch(raw); m != nil {
		message = strings.Trim(strings.TrimSpace(m[1]), `"',`)
	}
	if reply := sanitizeReviewReply(sentiment, message); reply != nil {
		return reply, nil
	}
	return nil, fmt.Errorf("%w: review reply", ErrUnextractable)
}

func sanitizeReviewReply(sentiment, message string) *ReviewReply {
	sentiment = strings.ToLower(strings.TrimSpace(sentiment))
	if !validSentiments[sentiment] {
		sentiment = ""
	}
	message = strings.TrimSpace(message)
	if sentiment == "" && message == "" {
		return nil
	}
	return &ReviewReply{Sentiment: sentiment, Message: message, Provenance: ProvenanceModel}
}

// ExtractSearchMatches recovers {"matchingRestaurants": [...]} from raw
// model output via direct parse then balanced-brace scan. An empty list is
// a valid extraction; the resolver decides what an empty list means.
func ExtractSearchMatches(raw string) (*SearchMatches, error) {
	var parsed SearchMatches

	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &parsed); err == nil && parsed.Names != nil {
		return &parsed, nil
	}
	if candidate, ok := firstJSONObject(raw); ok {
		if err := json.Unmarshal([]byte(candidate), &parsed); err == nil && parsed.Names != nil {
			return &parsed, nil
		}
	}
	return nil, fmt.Errorf("%w: search matches", ErrUnextractable)
}

// ExtractRecommendations recovers a recommendation list from raw model
// output. Accepts either the documented object shape or a bare JSON array.
func ExtractRecommendations(raw string) ([]RecommendationItem, error) {
	var parsed struct {
		Recommendations []RecommendationItem `json:"recommendations"`
	}

	if candidate, ok := firstJSONObject(raw); ok {
		if err := json.Unmarshal([]byte(candidate), &parsed); err == nil && parsed.Recommendations != nil {
			return parsed.Recommendations, nil
		}
	}
	if candidate, ok := firstBalanced(raw, '[', ']'); ok {
		var items []RecommendationItem
		if err := json.Unmarshal([]byte(candidate), &items); err == nil {
			return items, nil
		}
	}
	return nil, fmt.Errorf("%w: recommendations", ErrUnextractable)
}

// firstJSONObject returns the first balanced {...} substring, skipping any
// prose the model wrapped around it. Braces inside JSON strings are ignored.
func firstJSONObject(raw string) (string, bool) {
	return firstBalanced(raw, '{', '}')
}

func firstBalanced(raw string, open, close byte) (string, bool) {
	start := strings.IndexByte(raw, open)
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		ch := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}
