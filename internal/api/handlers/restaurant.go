package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mealdash/mealdash/internal/domain/catalog"
)

// RestaurantHandler serves the restaurant CRUD routes.
type RestaurantHandler struct {
	svc *catalog.RestaurantService
}

// NewRestaurantHandler creates a RestaurantHandler.
func NewRestaurantHandler(svc *catalog.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{svc: svc}
}

// List handles GET /api/v1/restaurants with limit/offset pagination.
func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	restaurants, err := h.svc.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list restaurants")
		return
	}
	if restaurants == nil {
		restaurants = []catalog.Restaurant{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"restaurants": restaurants,
		"count":       len(restaurants),
	})
}

// Get handles GET /api/v1/restaurants/{id}.
func (h *RestaurantHandler) Get(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "restaurant not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load restaurant")
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

// Create handles POST /api/v1/admin/restaurants.
func (h *RestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string   `json:"name"`
		Cuisines   []string `json:"cuisines"`
		AreaName   string   `json:"areaName"`
		AvgRating  float64  `json:"avgRating"`
		CostForTwo int      `json:"costForTwo"`
		Veg        bool     `json:"veg"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	restaurant, err := h.svc.Create(r.Context(), catalog.CreateRestaurantInput(req))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, restaurant)
}
