package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mealdash/mealdash/internal/domain/assist"
)

// SearchResolver is the resolver surface this handler needs.
type SearchResolver interface {
	Search(ctx context.Context, query string) (*assist.SearchOutput, error)
	SearchSecondary(ctx context.Context, query string) (*assist.SearchOutput, error)
}

// Generator is the raw single-call inference surface for /llm/inference.
type Generator interface {
	Generate(ctx context.Context, prompt, model string) (string, error)
}

// ReviewLister reads a restaurant's reviews for analytics.
type ReviewLister interface {
	ListReviews(ctx context.Context, restaurantID string) ([]assist.ReviewRecord, error)
}

// Recommender is the personalized-recommendation surface.
type Recommender interface {
	Recommend(ctx context.Context, userID string) (*assist.RecommendationResult, error)
}

// Analyzer is the review-analytics surface.
type Analyzer interface {
	Analyze(ctx context.Context, reviews []assist.ReviewRecord) *assist.AnalyticsResult
}

// Describer is the menu-description surface.
type Describer interface {
	Describe(ctx context.Context, features string) (*assist.DescribeResult, error)
}

// AssistHandler serves the model-backed routes. Every route except raw
// /llm/inference answers 200 on model failure with fallback provenance;
// only invalid input yields a 4xx.
type AssistHandler struct {
	generator   Generator
	describer   Describer
	resolver    SearchResolver
	recommender Recommender
	analyzer    Analyzer
	reviews     ReviewLister
	model       string
}

// NewAssistHandler creates an AssistHandler.
func NewAssistHandler(generator Generator, describer Describer, resolver SearchResolver, recommender Recommender, analyzer Analyzer, reviews ReviewLister, model string) *AssistHandler {
	return &AssistHandler{
		generator:   generator,
		describer:   describer,
		resolver:    resolver,
		recommender: recommender,
		analyzer:    analyzer,
		reviews:     reviews,
		model:       model,
	}
}

// Inference handles POST /api/v1/llm/inference: a raw completion call with
// no fallback. This is the one model route where provider failure surfaces
// as an error status, because there is no shape to fall back to.
func (h *AssistHandler) Inference(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
		Model  string `json:"model"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	model := req.Model
	if model == "" {
		model = h.model
	}
	text, err := h.generator.Generate(r.Context(), req.Prompt, model)
	if err != nil {
		writeError(w, http.StatusBadGateway, "inference service unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": text, "model": model})
}

// GenerateDescription handles POST /api/v1/llm/generate-description.
func (h *AssistHandler) GenerateDescription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Features string `json:"features"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.describer.Describe(r.Context(), req.Features)
	if errors.Is(err, assist.ErrInvalidParameters) {
		writeError(w, http.StatusBadRequest, "features are required")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate description")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SearchRestaurants handles POST /api/v1/llm/search-restaurants: the
// model-first search path.
func (h *AssistHandler) SearchRestaurants(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, h.resolver.Search)
}

// ElasticSearch handles POST /api/v1/llm/elastic-search: the
// secondary-index search path.
func (h *AssistHandler) ElasticSearch(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, h.resolver.SearchSecondary)
}

func (h *AssistHandler) search(w http.ResponseWriter, r *http.Request, resolve func(context.Context, string) (*assist.SearchOutput, error)) {
	var req struct {
		Query string `json:"query"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := resolve(r.Context(), req.Query)
	if errors.Is(err, assist.ErrInvalidParameters) {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Recommendations handles GET /api/v1/llm/personalized-recommendations.
func (h *AssistHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	result, err := h.recommender.Recommend(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build recommendations")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ReviewAnalytics handles GET /api/v1/admin/restaurants/{id}/review-analytics.
func (h *AssistHandler) ReviewAnalytics(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListReviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load reviews")
		return
	}
	writeJSON(w, http.StatusOK, h.analyzer.Analyze(r.Context(), reviews))
}
