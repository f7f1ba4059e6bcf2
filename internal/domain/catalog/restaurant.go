// Package catalog owns the restaurant records. The resilience layer only ever
// reads candidates from here; nothing in the LLM path mutates a restaurant.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a restaurant id does not exist.
var ErrNotFound = errors.New("restaurant not found")

// Restaurant is a candidate record eligible to be returned from a search.
type Restaurant struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Cuisines   []string  `json:"cuisines"`
	AreaName   string    `json:"areaName"`
	AvgRating  float64   `json:"avgRating"`
	CostForTwo int       `json:"costForTwo"`
	Veg        bool      `json:"veg"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CreateRestaurantInput holds the data needed to register a restaurant.
type CreateRestaurantInput struct {
	Name       string
	Cuisines   []string
	AreaName   string
	AvgRating  float64
	CostForTwo int
	Veg        bool
}

// RestaurantService provides restaurant reads/writes backed by SQLite.
type RestaurantService struct {
	db *sql.DB
}

// NewRestaurantService creates a RestaurantService backed by the given DB.
func NewRestaurantService(db *sql.DB) *RestaurantService {
	return &RestaurantService{db: db}
}

const restaurantColumns = "id, name, cuisines, area_name, avg_rating, cost_for_two, veg, created_at, updated_at"

// Create inserts a new restaurant and returns it.
func (s *RestaurantService) Create(ctx context.Context, input CreateRestaurantInput) (*Restaurant, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("restaurant name is required")
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	cuisines, err := encodeCuisines(input.Cuisines)
	if err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO restaurant (id, name, cuisines, area_name, avg_rating, cost_for_two, veg, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, input.Name, cuisines, input.AreaName, input.AvgRating, input.CostForTwo, boolToInt(input.Veg), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}

	return s.Get(ctx, id)
}

// Get returns a single restaurant by id.
func (s *RestaurantService) Get(ctx context.Context, id string) (*Restaurant, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+restaurantColumns+" FROM restaurant WHERE id = ?", id)
	r, err := scanRestaurant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	return r, nil
}

// List returns restaurants ordered by name with limit/offset pagination.
func (s *RestaurantService) List(ctx context.Context, limit, offset int) ([]Restaurant, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+restaurantColumns+" FROM restaurant ORDER BY name LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()
	return collectRestaurants(rows)
}

// ListAll returns the full candidate set in a stable order (by name, then id).
// The resolver depends on this order being deterministic for identical data.
func (s *RestaurantService) ListAll(ctx context.Context) ([]Restaurant, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+restaurantColumns+" FROM restaurant ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("list all restaurants: %w", err)
	}
	defer rows.Close()
	return collectRestaurants(rows)
}

// GetByIDs resolves ids against the store, preserving the input order
// (the secondary index returns hits in relevance order). Unknown ids are
// skipped silently: the index may be stale relative to the store.
func (s *RestaurantService) GetByIDs(ctx context.Context, ids []string) ([]Restaurant, error) {
	byID := make(map[string]Restaurant, len(ids))
	for _, id := range ids {
		r, err := s.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		byID[id] = *r
	}

	out := make([]Restaurant, 0, len(byID))
	seen := make(map[string]bool, len(byID))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		if r, ok := byID[id]; ok {
			out = append(out, r)
			seen[id] = true
		}
	}
	return out, nil
}

// --- helpers ---

func scanRestaurant(row *sql.Row) (*Restaurant, error) {
	var (
		r          Restaurant
		cuisines   string
		veg        int
		createdAt  string
		updatedAt  string
	)
	if err := row.Scan(&r.ID, &r.Name, &cuisines, &r.AreaName, &r.AvgRating, &r.CostForTwo, &veg, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := finishRestaurant(&r, cuisines, veg, createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

func collectRestaurants(rows *sql.Rows) ([]Restaurant, error) {
	var out []Restaurant
	for rows.Next() {
		var (
			r         Restaurant
			cuisines  string
			veg       int
			createdAt string
			updatedAt string
		)
		if err := rows.Scan(&r.ID, &r.Name, &cuisines, &r.AreaName, &r.AvgRating, &r.CostForTwo, &veg, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		if err := finishRestaurant(&r, cuisines, veg, createdAt, updatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func finishRestaurant(r *Restaurant, cuisines string, veg int, createdAt, updatedAt string) error {
	decoded, err := decodeCuisines(cuisines)
	if err != nil {
		return fmt.Errorf("decode cuisines for %s: %w", r.ID, err)
	}
	r.Cuisines = decoded
	r.Veg = veg != 0
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return nil
}

// encodeCuisines serialises cuisine tags as a JSON TEXT column value.
func encodeCuisines(cuisines []string) (string, error) {
	if cuisines == nil {
		cuisines = []string{}
	}
	b, err := json.Marshal(cuisines)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeCuisines deserialises the JSON TEXT column back to a slice.
// e.g. `["South Indian","Tiffin"]` → []string{"South Indian", "Tiffin"}
func decodeCuisines(jsonStr string) ([]string, error) {
	if jsonStr == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(jsonStr), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
