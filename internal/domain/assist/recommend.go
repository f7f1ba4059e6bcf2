package assist

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mealdash/mealdash/internal/domain/catalog"
)

// PastOrder is the slice of an order the recommender needs: which
// restaurant it was placed with.
type PastOrder struct {
	RestaurantID string
	TotalAmount  int
}

// OrderReader reads a user's recent order history.
type OrderReader interface {
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]PastOrder, error)
}

// RecommendedRestaurant is one recommendation: the authoritative record
// plus the model's (or fallback's) reasoning.
type RecommendedRestaurant struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Cuisines   []string `json:"cuisines"`
	AreaName   string   `json:"areaName"`
	AvgRating  float64  `json:"avgRating"`
	CostForTwo int      `json:"costForTwo"`
	Veg        bool     `json:"veg"`
	Reason     string   `json:"reason"`
}

// RecommendationResult is the personalized-recommendation payload.
type RecommendationResult struct {
	Recommendations []RecommendedRestaurant `json:"recommendations"`
	UserPreferences Preferences             `json:"userPreferences"`
	OrdersAnalyzed  int                     `json:"ordersAnalyzed"`
	IsDummyData     bool                    `json:"isDummyData"`
	Source          Provenance              `json:"source"`
}

// Recommender builds personalized restaurant recommendations from order
// history. Preferences are derived deterministically; only the final pick
// and reasoning come from the model.
type Recommender struct {
	infer  Inferrer
	orders OrderReader
	store  CandidateStore
	model  string
	log    *zap.Logger
}

// NewRecommender creates a Recommender.
func NewRecommender(infer Inferrer, orders OrderReader, store CandidateStore, model string, log *zap.Logger) *Recommender {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recommender{infer: infer, orders: orders, store: store, model: model, log: log}
}

// recentOrderWindow bounds how much history feeds preference derivation.
const recentOrderWindow = 20

// Recommend produces recommendations for a user. A user with no order
// history, an unavailable model, or unextractable output all yield an
// empty recommendation list flagged IsDummyData — never an error, so the
// endpoint always answers 200.
func (r *Recommender) Recommend(ctx context.Context, userID string) (*RecommendationResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: recommendation requires a user id", ErrInvalidParameters)
	}

	history, err := r.orders.ListRecentByUser(ctx, userID, recentOrderWindow)
	if err != nil {
		return nil, fmt.Errorf("load order history: %w", err)
	}
	if len(history) == 0 {
		return &RecommendationResult{
			Recommendations: []RecommendedRestaurant{},
			UserPreferences: Preferences{FavoriteCuisines: []string{}},
			IsDummyData:     true,
			Source:          ProvenanceFallback,
		}, nil
	}

	candidates, err := r.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	prefs := DerivePreferences(history, candidates)
	fallback := &RecommendationResult{
		Recommendations: []RecommendedRestaurant{},
		UserPreferences: prefs,
		OrdersAnalyzed:  len(history),
		IsDummyData:     true,
		Source:          ProvenanceFallback,
	}
	if len(candidates) == 0 {
		return fallback, nil
	}

	prompt, err := BuildPrompt(TaskRecommendation, Params{
		Preferences: &prefs,
		Candidates:  ProjectCandidates(candidates),
	})
	if err != nil {
		return nil, err
	}

	res := r.infer.Infer(ctx, prompt, r.model)
	if !res.OK {
		r.log.Info("recommendation generation unavailable, using fallback",
			zap.String("errorKind", string(res.ErrKind)))
		return fallback, nil
	}

	items, err := ExtractRecommendations(res.RawText)
	if err != nil {
		r.log.Info("recommendation output unextractable, using fallback")
		return fallback, nil
	}

	picks := resolveRecommendations(items, candidates)
	if len(picks) == 0 {
		return fallback, nil
	}

	return &RecommendationResult{
		Recommendations: picks,
		UserPreferences: prefs,
		OrdersAnalyzed:  len(history),
		Source:          ProvenanceModel,
	}, nil
}

// resolveRecommendations maps model picks back to authoritative records,
// dropping names that resolve to nothing and deduping by id.
func resolveRecommendations(items []RecommendationItem, candidates []catalog.Restaurant) []RecommendedRestaurant {
	out := make([]RecommendedRestaurant, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		resolved := ResolveNames([]string{item.Name}, candidates)
		if len(resolved) == 0 {
			continue
		}
		c := resolved[0]
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, RecommendedRestaurant{
			ID:         c.ID,
			Name:       c.Name,
			Cuisines:   c.Cuisines,
			AreaName:   c.AreaName,
			AvgRating:  c.AvgRating,
			CostForTwo: c.CostForTwo,
			Veg:        c.Veg,
			Reason:     strings.TrimSpace(item.Reason),
		})
	}
	return out
}

// DerivePreferences computes user preferences from order history. Pure and
// deterministic: cuisine frequency with lexicographic tie-break, average
// order spend bands, and veg-only detection across ordered restaurants.
func DerivePreferences(history []PastOrder, candidates []catalog.Restaurant) Preferences {
	byID := make(map[string]catalog.Restaurant, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	cuisineCount := make(map[string]int)
	allVeg := true
	matched := 0
	totalSpend := 0
	for _, o := range history {
		totalSpend += o.TotalAmount
		c, ok := byID[o.RestaurantID]
		if !ok {
			continue
		}
		matched++
		for _, cu := range c.Cuisines {
			cuisineCount[cu]++
		}
		if !c.Veg {
			allVeg = false
		}
	}
	if matched == 0 {
		allVeg = false
	}

	cuisines := make([]string, 0, len(cuisineCount))
	for cu := range cuisineCount {
		cuisines = append(cuisines, cu)
	}
	sort.Slice(cuisines, func(i, j int) bool {
		if cuisineCount[cuisines[i]] != cuisineCount[cuisines[j]] {
			return cuisineCount[cuisines[i]] > cuisineCount[cuisines[j]]
		}
		return cuisines[i] < cuisines[j]
	})
	if len(cuisines) > 3 {
		cuisines = cuisines[:3]
	}

	avgSpend := 0
	if len(history) > 0 {
		avgSpend = totalSpend / len(history)
	}
	price := "moderate"
	switch {
	case avgSpend < 300:
		price = "budget"
	case avgSpend >= 600:
		price = "premium"
	}

	dietary := "no preference"
	if allVeg {
		dietary = "veg"
	}

	return Preferences{
		FavoriteCuisines:   cuisines,
		PricePreference:    price,
		DietaryPreferences: dietary,
	}
}
