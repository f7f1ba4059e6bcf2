package assist

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mealdash/mealdash/internal/domain/catalog"
)

// TaskKind identifies which prompt template to build.
type TaskKind string

const (
	TaskDescription     TaskKind = "description"
	TaskReviewResponse  TaskKind = "reviewResponse"
	TaskSearch          TaskKind = "search"
	TaskRecommendation  TaskKind = "recommendation"
	TaskReviewAnalytics TaskKind = "reviewAnalytics"
)

// Candidate is the reduced restaurant projection serialized into prompts.
// Never the full entity: this bounds prompt size.
type Candidate struct {
	Name       string   `json:"name"`
	AreaName   string   `json:"area"`
	AvgRating  float64  `json:"rating"`
	CostForTwo int      `json:"costForTwo"`
	Cuisines   []string `json:"cuisines"`
	Veg        bool     `json:"veg"`
}

// Preferences are derived deterministically from a user's order history and
// fed into the recommendation prompt (the model never invents them).
type Preferences struct {
	FavoriteCuisines   []string `json:"favoriteCuisines"`
	PricePreference    string   `json:"pricePreference"`
	DietaryPreferences string   `json:"dietaryPreferences"`
}

// ReviewRecord is one stored review, projected for the analytics prompt.
type ReviewRecord struct {
	Review    string `json:"review"`
	Sentiment string `json:"sentiment"`
	Rating    string `json:"rating"`
}

// Params carries the task-specific inputs for BuildPrompt. Only the fields
// relevant to the requested TaskKind are read.
type Params struct {
	Features    string
	Rating      int
	Review      string
	Query       string
	Candidates  []Candidate
	Preferences *Preferences
	Reviews     []ReviewRecord
}

// ProjectCandidates reduces full restaurant records to the prompt projection.
func ProjectCandidates(restaurants []catalog.Restaurant) []Candidate {
	out := make([]Candidate, len(restaurants))
	for i, r := range restaurants {
		out[i] = Candidate{
			Name:       r.Name,
			AreaName:   r.AreaName,
			AvgRating:  r.AvgRating,
			CostForTwo: r.CostForTwo,
			Cuisines:   r.Cuisines,
			Veg:        r.Veg,
		}
	}
	return out
}

// BuildPrompt constructs the prompt text for a task. It is a pure function:
// identical inputs yield identical prompts. Templates that expect structured
// output end with an explicit JSON-only instruction — the extraction
// strategies depend on that contract.
func BuildPrompt(kind TaskKind, params Params) (string, error) {
	switch kind {
	case TaskDescription:
		return buildDescriptionPrompt(params)
	case TaskReviewResponse:
		return buildReviewResponsePrompt(params)
	case TaskSearch:
		return buildSearchPrompt(params)
	case TaskRecommendation:
		return buildRecommendationPrompt(params)
	case TaskReviewAnalytics:
		return buildReviewAnalyticsPrompt(params)
	default:
		return "", fmt.Errorf("%w: unknown task kind %q", ErrInvalidParameters, kind)
	}
}

func buildDescriptionPrompt(params Params) (string, error) {
	features := strings.TrimSpace(params.Features)
	if features == "" {
		return "", fmt.Errorf("%w: description requires features", ErrInvalidParameters)
	}

	return fmt.Sprintf(`You are a professional food writer specializing in compelling menu descriptions.
Create an engaging and appetizing description for a menu item with these features/keywords: %s.
The description should be between 25-50 words, be persuasive, highlight the unique selling points,
and make the dish sound appealing to customers.
Return ONLY the description text without any additional commentary or formatting.`, features), nil
}

func buildReviewResponsePrompt(params Params) (string, error) {
	if params.Rating == 0 && strings.TrimSpace(params.Review) == "" {
		return "", fmt.Errorf("%w: review response requires a rating or review text", ErrInvalidParameters)
	}

	var b strings.Builder
	b.WriteString("You are a restaurant customer service AI.\n")
	b.WriteString("A customer has given the following ")
	if params.Rating != 0 {
		fmt.Fprintf(&b, "rating (%d/5) ", params.Rating)
	}
	if strings.TrimSpace(params.Review) != "" {
		fmt.Fprintf(&b, "and review: %q", params.Review)
	}
	b.WriteString("\n\n")
	b.WriteString("1. Analyze if this review is positive, negative, or neutral.\n")
	b.WriteString("2. Generate a brief, personalized response thanking them for positive feedback or apologizing for any issues if negative.\n\n")
	b.WriteString("Respond with ONLY a single JSON object in this exact format and nothing else:\n")
	b.WriteString(`{"sentiment": "positive|negative|neutral", "response": "Your personalized response message here"}`)
	return b.String(), nil
}

func buildSearchPrompt(params Params) (string, error) {
	if strings.TrimSpace(params.Query) == "" {
		return "", fmt.Errorf("%w: search requires a query", ErrInvalidParameters)
	}
	if len(params.Candidates) == 0 {
		return "", fmt.Errorf("%w: search requires a non-empty candidate list", ErrInvalidParameters)
	}

	candidates, err := json.Marshal(params.Candidates)
	if err != nil {
		return "", fmt.Errorf("marshal candidates: %w", err)
	}

	return fmt.Sprintf(`You are a restaurant search assistant.
A customer is searching for: %q

Here is the list of available restaurants:
%s

Pick the restaurants that match the customer's query (cuisine, dish, area, price or dietary intent).
Return ONLY a single JSON object of this exact shape and nothing else:
{"matchingRestaurants": ["restaurant name", ...]}`, params.Query, candidates), nil
}

func buildRecommendationPrompt(params Params) (string, error) {
	if params.Preferences == nil {
		return "", fmt.Errorf("%w: recommendation requires user preferences", ErrInvalidParameters)
	}
	if len(params.Candidates) == 0 {
		return "", fmt.Errorf("%w: recommendation requires a non-empty candidate list", ErrInvalidParameters)
	}

	prefs, err := json.Marshal(params.Preferences)
	if err != nil {
		return "", fmt.Errorf("marshal preferences: %w", err)
	}
	candidates, err := json.Marshal(params.Candidates)
	if err != nil {
		return "", fmt.Errorf("marshal candidates: %w", err)
	}

	return fmt.Sprintf(`You are a restaurant recommendation assistant.
A customer has these preferences derived from their order history:
%s

Here is the list of available restaurants:
%s

Recommend up to 5 restaurants from the list that best match the preferences.
Return ONLY a single JSON object of this exact shape and nothing else:
{"recommendations": [{"name": "restaurant name", "reason": "one short sentence"}]}`, prefs, candidates), nil
}

func buildReviewAnalyticsPrompt(params Params) (string, error) {
	if len(params.Reviews) == 0 {
		return "", fmt.Errorf("%w: analytics requires at least one review", ErrInvalidParameters)
	}

	reviews, err := json.MarshalIndent(params.Reviews, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal reviews: %w", err)
	}

	return fmt.Sprintf(`You are a restaurant analytics expert.
Analyze these customer reviews for a restaurant:
%s

Create a concise, insightful analysis in bullet point format covering:
• Overall sentiment trend
• Common positive and negative feedback
• Areas for improvement
• Standout features

Format your response with bullet points (•) for easy reading. Keep your analysis under 200 words.`, reviews), nil
}
