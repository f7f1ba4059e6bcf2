// Package orders owns the order lifecycle: placement, status transitions,
// and the review flow that feeds the sentiment responder.
package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mealdash/mealdash/internal/domain/assist"
)

var (
	// ErrNotFound is returned when an order id does not exist.
	ErrNotFound = errors.New("order not found")
	// ErrNotOwner is returned when a user acts on an order they did not place.
	ErrNotOwner = errors.New("order does not belong to user")
	// ErrNotReviewable is returned when a review is submitted for an order
	// that has not been accepted yet.
	ErrNotReviewable = errors.New("order cannot be reviewed in its current status")
	// ErrInvalidStatus is returned for an unknown status transition target.
	ErrInvalidStatus = errors.New("invalid order status")
)

// Order statuses. An order is reviewable once the restaurant has accepted it.
const (
	StatusPlaced    = "placed"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

var validStatuses = map[string]bool{
	StatusPlaced:    true,
	StatusAccepted:  true,
	StatusRejected:  true,
	StatusDelivered: true,
	StatusCancelled: true,
}

// Item is one line of an order.
type Item struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// Order is a placed order, optionally carrying its review outcome.
type Order struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	RestaurantID string    `json:"restaurantId"`
	Items        []Item    `json:"items"`
	TotalAmount  int       `json:"totalAmount"`
	Status       string    `json:"status"`
	Rating       int       `json:"rating,omitempty"`
	Review       string    `json:"review,omitempty"`
	Sentiment    string    `json:"sentiment,omitempty"`
	LLMResponse  string    `json:"llmResponse,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateOrderInput holds the data needed to place an order.
type CreateOrderInput struct {
	UserID       string
	RestaurantID string
	Items        []Item
	TotalAmount  int
}

// ReviewInput is a customer's review submission for one of their orders.
type ReviewInput struct {
	OrderID string
	UserID  string
	Rating  int
	Review  string
}

// ReviewResponder produces the sentiment and acknowledgement persisted with
// a review. Implemented by assist.ReviewResponder.
type ReviewResponder interface {
	Respond(ctx context.Context, rating int, review string) assist.ReviewReply
}

// Service provides order reads/writes backed by SQLite.
type Service struct {
	db        *sql.DB
	responder ReviewResponder
}

// NewService creates an order Service. responder may be nil in contexts
// that never submit reviews (seeding, admin tooling).
func NewService(db *sql.DB, responder ReviewResponder) *Service {
	return &Service{db: db, responder: responder}
}

const orderColumns = "id, user_id, restaurant_id, items, total_amount, status, rating, review, sentiment, llm_response, created_at, updated_at"

// Create places a new order in status "placed".
func (s *Service) Create(ctx context.Context, input CreateOrderInput) (*Order, error) {
	if input.UserID == "" || input.RestaurantID == "" {
		return nil, fmt.Errorf("user id and restaurant id are required")
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("order requires at least one item")
	}

	items, err := json.Marshal(input.Items)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, restaurant_id, items, total_amount, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, input.UserID, input.RestaurantID, string(items), input.TotalAmount, StatusPlaced, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return s.Get(ctx, id)
}

// Get returns a single order by id.
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = ?", id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// ListByUser returns a user's orders, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE user_id = ? ORDER BY created_at DESC, id", userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ListByRestaurant returns a restaurant's orders, newest first.
func (s *Service) ListByRestaurant(ctx context.Context, restaurantID string) ([]Order, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE restaurant_id = ? ORDER BY created_at DESC, id", restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list restaurant orders: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ListRecentByUser implements assist.OrderReader for the recommender.
func (s *Service) ListRecentByUser(ctx context.Context, userID string, limit int) ([]assist.PastOrder, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT restaurant_id, total_amount FROM orders WHERE user_id = ? ORDER BY created_at DESC, id LIMIT ?",
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent orders: %w", err)
	}
	defer rows.Close()

	var out []assist.PastOrder
	for rows.Next() {
		var o assist.PastOrder
		if err := rows.Scan(&o.RestaurantID, &o.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan recent order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpdateStatus transitions an order to a new status (admin operation).
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (*Order, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET status = ?, updated_at = ? WHERE id = ?", status, now, orderID)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, orderID)
}

// SubmitReview records a customer's review on their own accepted order and
// attaches the generated reply. The review, sentiment and reply are written
// in a single UPDATE: the mutation happens exactly once regardless of how
// the reply was produced, and inference is attempted exactly once.
func (s *Service) SubmitReview(ctx context.Context, input ReviewInput) (*Order, error) {
	if input.Rating == 0 && input.Review == "" {
		return nil, fmt.Errorf("review requires a rating or review text")
	}
	if input.Rating < 0 || input.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	order, err := s.Get(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != input.UserID {
		return nil, ErrNotOwner
	}
	if order.Status != StatusAccepted && order.Status != StatusDelivered {
		return nil, ErrNotReviewable
	}

	reply := assist.FallbackReviewReply(input.Rating)
	if s.responder != nil {
		reply = s.responder.Respond(ctx, input.Rating, input.Review)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, `
		UPDATE orders SET rating = ?, review = ?, sentiment = ?, llm_response = ?, updated_at = ?
		WHERE id = ?`,
		input.Rating, input.Review, reply.Sentiment, reply.Message, now, input.OrderID,
	)
	if err != nil {
		return nil, fmt.Errorf("submit review: %w", err)
	}
	return s.Get(ctx, input.OrderID)
}

// ListReviews returns the reviews of a restaurant projected for analytics.
// Orders without a rating or review text are excluded.
func (s *Service) ListReviews(ctx context.Context, restaurantID string) ([]assist.ReviewRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(rating, 0), COALESCE(review, ''), COALESCE(sentiment, '') FROM orders
		WHERE restaurant_id = ? AND (rating > 0 OR COALESCE(review, '') != '')
		ORDER BY created_at DESC, id`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var out []assist.ReviewRecord
	for rows.Next() {
		var (
			rating    int
			review    string
			sentiment string
		)
		if err := rows.Scan(&rating, &review, &sentiment); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		rec := assist.ReviewRecord{Review: review, Sentiment: sentiment, Rating: "not provided"}
		if rating > 0 {
			rec.Rating = fmt.Sprintf("%d", rating)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// --- helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		o         Order
		items     string
		rating    sql.NullInt64
		review    sql.NullString
		sentiment sql.NullString
		llmResp   sql.NullString
		createdAt string
		updatedAt string
	)
	err := row.Scan(&o.ID, &o.UserID, &o.RestaurantID, &items, &o.TotalAmount, &o.Status,
		&rating, &review, &sentiment, &llmResp, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if items != "" {
		if err := json.Unmarshal([]byte(items), &o.Items); err != nil {
			return nil, fmt.Errorf("decode items for %s: %w", o.ID, err)
		}
	}
	o.Rating = int(rating.Int64)
	o.Review = review.String
	o.Sentiment = sentiment.String
	o.LLMResponse = llmResp.String
	o.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	o.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &o, nil
}

func collectOrders(rows *sql.Rows) ([]Order, error) {
	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}
