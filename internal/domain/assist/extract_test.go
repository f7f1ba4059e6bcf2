package assist

import (
	"errors"
	"testing"
)

func TestExtractReviewReplyDirectJSON(t *testing.T) {
	raw := `{"sentiment": "positive", "response": "Thanks so much for the kind words!"}`
	reply, err := ExtractReviewReply(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Sentiment != "positive" {
		t.Errorf("sentiment = %q, want positive", reply.Sentiment)
	}
	if reply.Message != "Thanks so much for the kind words!" {
		t.Errorf("message = %q", reply.Message)
	}
	if reply.Provenance != ProvenanceModel {
		t.Errorf("provenance = %q, want model", reply.Provenance)
	}
}

func TestExtractReviewReplyProseWrappedJSON(t *testing.T) {
	raw := `Sure! Here is the JSON you asked for:
{"sentiment": "negative", "response": "We are sorry about the cold food."}
Let me know if you need anything else.`

	reply, err := ExtractReviewReply(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Sentiment != "negative" {
		t.Errorf("sentiment = %q, want negative", reply.Sentiment)
	}
}

func TestExtractReviewReplyBracesInsideStrings(t *testing.T) {
	raw := `{"sentiment": "neutral", "response": "We hear you {and} we care"} trailing`
	reply, err := ExtractReviewReply(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Message != "We hear you {and} we care" {
		t.Errorf("message = %q", reply.Message)
	}
}

func TestExtractReviewReplyFieldRegexSalvage(t *testing.T) {
	// Truncated, unparseable reply: per-field salvage still works.
	raw := `sentiment: positive, response: "Glad you enjoyed the biryani`
	reply, err := ExtractReviewReply(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Sentiment != "positive" {
		t.Errorf("sentiment = %q, want positive", reply.Sentiment)
	}
	if reply.Message == "" {
		t.Error("expected salvaged message, got empty")
	}
}

func TestExtractReviewReplySentimentOnlySalvage(t *testing.T) {
	// No braces at all; one recoverable field is enough.
	reply, err := ExtractReviewReply("overall the sentiment: negative based on the text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Sentiment != "negative" {
		t.Errorf("sentiment = %q, want negative", reply.Sentiment)
	}
	if reply.Message != "" {
		t.Errorf("message = %q, want absent (callers fill from fallback)", reply.Message)
	}
}

func TestExtractReviewReplyInvalidSentimentDiscarded(t *testing.T) {
	raw := `{"sentiment": "ecstatic", "response": "So happy!"}`
	reply, err := ExtractReviewReply(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Sentiment != "" {
		t.Errorf("sentiment = %q, want empty (out of closed set)", reply.Sentiment)
	}
	if reply.Message != "So happy!" {
		t.Errorf("message = %q", reply.Message)
	}
}

func TestExtractReviewReplyUnextractable(t *testing.T) {
	_, err := ExtractReviewReply("I am a language model and I cannot help with that.")
	if !errors.Is(err, ErrUnextractable) {
		t.Fatalf("err = %v, want ErrUnextractable", err)
	}
}

func TestExtractSearchMatches(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "clean json",
			raw:  `{"matchingRestaurants": ["Punjabi Dhaba", "Biryani House"]}`,
			want: []string{"Punjabi Dhaba", "Biryani House"},
		},
		{
			name: "prose wrapped",
			raw:  "Based on the query, here you go:\n```json\n{\"matchingRestaurants\": [\"Udupi Palace\"]}\n```",
			want: []string{"Udupi Palace"},
		},
		{
			name: "empty list is a valid extraction",
			raw:  `{"matchingRestaurants": []}`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractSearchMatches(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got.Names) != len(tt.want) {
				t.Fatalf("names = %v, want %v", got.Names, tt.want)
			}
			for i := range tt.want {
				if got.Names[i] != tt.want[i] {
					t.Errorf("names[%d] = %q, want %q", i, got.Names[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractSearchMatchesUnextractable(t *testing.T) {
	_, err := ExtractSearchMatches(`these places look great: Punjabi Dhaba and Udupi Palace`)
	if !errors.Is(err, ErrUnextractable) {
		t.Fatalf("err = %v, want ErrUnextractable", err)
	}
}

func TestExtractRecommendations(t *testing.T) {
	raw := `{"recommendations": [{"name": "Udupi Palace", "reason": "matches your veg preference"}]}`
	items, err := ExtractRecommendations(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Udupi Palace" {
		t.Fatalf("items = %+v", items)
	}
}

func TestExtractRecommendationsBareArray(t *testing.T) {
	raw := `[{"name": "Biryani House", "reason": "you order biryani often"}]`
	items, err := ExtractRecommendations(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Biryani House" {
		t.Fatalf("items = %+v", items)
	}
}
