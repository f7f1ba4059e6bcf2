// Package search provides the Elasticsearch secondary-index adapter.
// The index is an optional accelerator: every failure mode here (node down,
// index missing, bad response) is reported as a typed error so the resolver
// can transfer to its keyword fallback instead of failing the request.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrIndexMissing is returned when the configured index does not exist.
var ErrIndexMissing = errors.New("search index does not exist")

// ErrUnavailable is returned when the node cannot be reached or replies
// with an unusable response.
var ErrUnavailable = errors.New("search index unavailable")

// Hit is a single ranked match from the index, carrying the restaurant id.
// Order of hits is index relevance order and must be preserved by callers.
type Hit struct {
	RestaurantID string
	Score        float64
}

// Client is a minimal Elasticsearch HTTP client scoped to one index.
type Client struct {
	node       string
	username   string
	password   string
	index      string
	httpClient *http.Client
}

// NewClient creates a Client for the given node and index.
// Basic auth is applied only when username is non-empty.
func NewClient(node, username, password, index string) *Client {
	return &Client{
		node:     node,
		username: username,
		password: password,
		index:    index,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Index returns the index name this client is scoped to.
func (c *Client) Index() string { return c.index }

// ─── internal Elasticsearch JSON types ───────────────────────────────────────

type multiMatchQuery struct {
	Query     string   `json:"query"`
	Fields    []string `json:"fields"`
	Fuzziness string   `json:"fuzziness,omitempty"`
}

type searchRequest struct {
	Size  int `json:"size"`
	Query struct {
		MultiMatch multiMatchQuery `json:"multi_match"`
	} `json:"query"`
}

type searchHit struct {
	ID     string  `json:"_id"`
	Score  float64 `json:"_score"`
	Source struct {
		RestaurantID string `json:"restaurantId"`
	} `json:"_source"`
}

type searchResponse struct {
	Hits struct {
		Hits []searchHit `json:"hits"`
	} `json:"hits"`
}

// ─── operations ──────────────────────────────────────────────────────────────

// Ping calls GET / — returns nil if the node is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.node+"/", nil)
	if err != nil {
		return fmt.Errorf("elastic ping: build request: %w", err)
	}
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: ping status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// IndexExists calls HEAD /{index}. A missing index is not an error here;
// callers decide whether to fall back.
func (c *Client) IndexExists(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.node+"/"+c.index, nil)
	if err != nil {
		return false, fmt.Errorf("elastic exists: build request: %w", err)
	}
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("%w: exists status %d", ErrUnavailable, resp.StatusCode)
	}
}

// Search runs a multi_match query over name/area/cuisines and returns hits in
// index relevance order. Name matches are boosted above area and cuisine tags.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 20
	}

	var body searchRequest
	body.Size = limit
	body.Query.MultiMatch = multiMatchQuery{
		Query:     query,
		Fields:    []string{"name^3", "areaName^2", "cuisines"},
		Fuzziness: "AUTO",
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("elastic search: marshal query: %w", err)
	}

	url := c.node + "/" + c.index + "/_search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("elastic search: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrIndexMissing
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: search status %d", ErrUnavailable, resp.StatusCode)
	}

	var esResp searchResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&esResp); decodeErr != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, decodeErr)
	}

	hits := make([]Hit, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		id := h.Source.RestaurantID
		if id == "" {
			// older index documents use the restaurant id as the document id
			id = h.ID
		}
		hits = append(hits, Hit{RestaurantID: id, Score: h.Score})
	}
	return hits, nil
}

func (c *Client) setAuth(req *http.Request) {
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
}
