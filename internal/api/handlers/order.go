package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mealdash/mealdash/internal/domain/orders"
)

// OrderHandler serves the order lifecycle routes.
type OrderHandler struct {
	svc *orders.Service
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(svc *orders.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// Create handles POST /api/v1/orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req struct {
		RestaurantID string        `json:"restaurantId"`
		Items        []orders.Item `json:"items"`
		TotalAmount  int           `json:"totalAmount"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.svc.Create(r.Context(), orders.CreateOrderInput{
		UserID:       uid,
		RestaurantID: req.RestaurantID,
		Items:        req.Items,
		TotalAmount:  req.TotalAmount,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// ListMine handles GET /api/v1/orders.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	list, err := h.svc.ListByUser(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	if list == nil {
		list = []orders.Order{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": list, "count": len(list)})
}

// SubmitReview handles POST /api/v1/orders/{id}/review. The response is
// always 200 when the review was stored, regardless of whether the reply
// came from the model or the fallback; the sentiment/response fields and
// their provenance come from the stored order.
func (h *OrderHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req struct {
		Rating int    `json:"rating"`
		Review string `json:"review"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.svc.SubmitReview(r.Context(), orders.ReviewInput{
		OrderID: chi.URLParam(r, "id"),
		UserID:  uid,
		Rating:  req.Rating,
		Review:  req.Review,
	})
	switch {
	case errors.Is(err, orders.ErrNotFound):
		writeError(w, http.StatusNotFound, "order not found")
		return
	case errors.Is(err, orders.ErrNotOwner):
		writeError(w, http.StatusForbidden, "order does not belong to you")
		return
	case errors.Is(err, orders.ErrNotReviewable):
		writeError(w, http.StatusConflict, "order cannot be reviewed yet")
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"order":     order,
		"sentiment": order.Sentiment,
		"response":  order.LLMResponse,
	})
}

// ListByRestaurant handles GET /api/v1/admin/restaurants/{id}/orders.
func (h *OrderHandler) ListByRestaurant(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListByRestaurant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	if list == nil {
		list = []orders.Order{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": list, "count": len(list)})
}

// UpdateStatus handles PUT /api/v1/admin/orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	switch {
	case errors.Is(err, orders.ErrNotFound):
		writeError(w, http.StatusNotFound, "order not found")
		return
	case errors.Is(err, orders.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed to update status")
		return
	}
	writeJSON(w, http.StatusOK, order)
}
