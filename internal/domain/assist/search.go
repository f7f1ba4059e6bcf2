package assist

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mealdash/mealdash/internal/domain/catalog"
	"github.com/mealdash/mealdash/internal/infra/llm"
	"github.com/mealdash/mealdash/internal/infra/search"
)

// Method identifies which strategy produced a search result set.
type Method string

const (
	MethodModel           Method = "model"
	MethodSecondaryIndex  Method = "secondary-index"
	MethodKeywordFallback Method = "keyword-fallback"
)

// SearchOutput is a resolved search result with its strategy provenance.
type SearchOutput struct {
	Results      []catalog.Restaurant `json:"restaurants"`
	ResultsCount int                  `json:"resultsCount"`
	Method       Method               `json:"searchMethod"`
}

// Inferrer is the single-call inference surface the resolver needs.
type Inferrer interface {
	Infer(ctx context.Context, prompt, model string) llm.Result
}

// SecondaryIndex is the slice of the index client the resolver uses.
type SecondaryIndex interface {
	IndexExists(ctx context.Context) (bool, error)
	Search(ctx context.Context, query string, limit int) ([]search.Hit, error)
}

// CandidateStore reads the authoritative restaurant records.
type CandidateStore interface {
	ListAll(ctx context.Context) ([]catalog.Restaurant, error)
	GetByIDs(ctx context.Context, ids []string) ([]catalog.Restaurant, error)
}

// SearchResolver turns a free-text query into restaurant records. The model
// path and the secondary-index path each degrade to the same deterministic
// keyword fallback, so a resolver call fails only on invalid input or a
// store error — never because the model or the index is down.
type SearchResolver struct {
	infer Inferrer
	index SecondaryIndex
	store CandidateStore
	model string
	log   *zap.Logger
}

// NewSearchResolver creates a SearchResolver. index may be nil when no
// secondary index is configured; SearchSecondary then goes straight to the
// keyword fallback.
func NewSearchResolver(infer Inferrer, index SecondaryIndex, store CandidateStore, model string, log *zap.Logger) *SearchResolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &SearchResolver{infer: infer, index: index, store: store, model: model, log: log}
}

// Search resolves a query via the model. Model failure, unextractable
// output and zero resolved names all transfer to the keyword fallback —
// the caller cannot tell those cases apart, and does not need to.
func (r *SearchResolver) Search(ctx context.Context, query string) (*SearchOutput, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search requires a query", ErrInvalidParameters)
	}

	candidates, err := r.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	if len(candidates) == 0 {
		return &SearchOutput{Results: []catalog.Restaurant{}, Method: MethodKeywordFallback}, nil
	}

	prompt, err := BuildPrompt(TaskSearch, Params{Query: query, Candidates: ProjectCandidates(candidates)})
	if err != nil {
		return nil, err
	}

	res := r.infer.Infer(ctx, prompt, r.model)
	if !res.OK {
		r.log.Info("model search unavailable, using keyword fallback",
			zap.String("errorKind", string(res.ErrKind)))
		return r.keywordOutput(query, candidates, false), nil
	}

	matches, err := ExtractSearchMatches(res.RawText)
	if err != nil {
		r.log.Info("model search output unextractable, using keyword fallback")
		return r.keywordOutput(query, candidates, false), nil
	}

	resolved := ResolveNames(matches.Names, candidates)
	if len(resolved) == 0 {
		// Zero resolved matches is indistinguishable from a failed call:
		// the fallback gives the customer something rather than nothing.
		return r.keywordOutput(query, candidates, false), nil
	}

	return &SearchOutput{Results: resolved, ResultsCount: len(resolved), Method: MethodModel}, nil
}

// SearchSecondary resolves a query via the secondary index, degrading to
// the keyword fallback when the index is missing, unreachable, or empty
// for this query.
func (r *SearchResolver) SearchSecondary(ctx context.Context, query string) (*SearchOutput, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search requires a query", ErrInvalidParameters)
	}

	candidates, err := r.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	if r.index == nil {
		return r.keywordOutput(query, candidates, true), nil
	}

	exists, err := r.index.IndexExists(ctx)
	if err != nil || !exists {
		if err != nil {
			r.log.Info("secondary index unreachable, using keyword fallback", zap.Error(err))
		}
		return r.keywordOutput(query, candidates, true), nil
	}

	hits, err := r.index.Search(ctx, query, 20)
	if err != nil {
		r.log.Info("secondary index search failed, using keyword fallback", zap.Error(err))
		return r.keywordOutput(query, candidates, true), nil
	}

	ids := make([]string, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.RestaurantID)
	}
	results, err := r.store.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve index hits: %w", err)
	}
	if len(results) == 0 {
		return r.keywordOutput(query, candidates, true), nil
	}

	return &SearchOutput{Results: results, ResultsCount: len(results), Method: MethodSecondaryIndex}, nil
}

func (r *SearchResolver) keywordOutput(query string, candidates []catalog.Restaurant, includeNameArea bool) *SearchOutput {
	results := keywordSearch(query, candidates, includeNameArea)
	return &SearchOutput{Results: results, ResultsCount: len(results), Method: MethodKeywordFallback}
}

// ResolveNames maps model-returned names back to authoritative records.
// Matching is case-insensitive substring containment in either direction,
// so "Punjabi Dhaba Express" resolves to the stored "Punjabi Dhaba".
// Output preserves candidate-independent first-seen order and dedupes by id.
func ResolveNames(names []string, candidates []catalog.Restaurant) []catalog.Restaurant {
	out := make([]catalog.Restaurant, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		needle := strings.ToLower(strings.TrimSpace(name))
		if needle == "" {
			continue
		}
		for _, c := range candidates {
			stored := strings.ToLower(c.Name)
			if !strings.Contains(stored, needle) && !strings.Contains(needle, stored) {
				continue
			}
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			out = append(out, c)
		}
	}
	return out
}

// KeywordSearch is the deterministic last-resort strategy: it tokenizes the
// query and matches tokens against cuisine tags. Idempotent for identical
// query and candidate data.
func KeywordSearch(query string, candidates []catalog.Restaurant) []catalog.Restaurant {
	return keywordSearch(query, candidates, false)
}

// keywordSearch optionally widens matching to name and area; the
// secondary-index fallback path uses the wide form so a query the index
// would have answered by name still resolves.
func keywordSearch(query string, candidates []catalog.Restaurant, includeNameArea bool) []catalog.Restaurant {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return []catalog.Restaurant{}
	}

	out := make([]catalog.Restaurant, 0)
	for _, c := range candidates {
		if matchesTokens(c, tokens, includeNameArea) {
			out = append(out, c)
		}
	}
	return out
}

func matchesTokens(c catalog.Restaurant, tokens []string, includeNameArea bool) bool {
	name := strings.ToLower(c.Name)
	area := strings.ToLower(c.AreaName)
	cuisines := make([]string, len(c.Cuisines))
	for i, cu := range c.Cuisines {
		cuisines[i] = strings.ToLower(cu)
	}

	for _, tok := range tokens {
		if includeNameArea && (strings.Contains(name, tok) || strings.Contains(area, tok)) {
			return true
		}
		for _, cu := range cuisines {
			if strings.Contains(cu, tok) {
				return true
			}
		}
	}
	return false
}
