// Package api wires handlers and middleware into the HTTP route tree.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mealdash/mealdash/internal/api/handlers"
	"github.com/mealdash/mealdash/internal/api/middleware"
)

// Deps holds the constructed handlers the router mounts.
type Deps struct {
	Auth       *handlers.AuthHandler
	Restaurant *handlers.RestaurantHandler
	Order      *handlers.OrderHandler
	Assist     *handlers.AssistHandler
	Health     http.HandlerFunc
	Log        *zap.Logger
}

// NewRouter builds the route tree. Health and auth routes are public;
// everything under /api/v1 requires a valid bearer token, and /api/v1/admin
// additionally requires the admin role.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if deps.Log != nil {
		r.Use(middleware.RequestLog(deps.Log))
	}
	r.Use(chimw.Recoverer)

	r.Get("/health", deps.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", deps.Auth.Register)
		r.Post("/login", deps.Auth.Login)
		r.Post("/admin/login", deps.Auth.AdminLogin)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/profile", deps.Auth.GetProfile)
		r.Put("/profile", deps.Auth.UpdateProfile)

		r.Get("/restaurants", deps.Restaurant.List)
		r.Get("/restaurants/{id}", deps.Restaurant.Get)

		r.Post("/orders", deps.Order.Create)
		r.Get("/orders", deps.Order.ListMine)
		r.Post("/orders/{id}/review", deps.Order.SubmitReview)

		r.Route("/llm", func(r chi.Router) {
			r.Post("/inference", deps.Assist.Inference)
			r.Post("/generate-description", deps.Assist.GenerateDescription)
			r.Post("/search-restaurants", deps.Assist.SearchRestaurants)
			r.Post("/elastic-search", deps.Assist.ElasticSearch)
			r.Get("/personalized-recommendations", deps.Assist.Recommendations)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Post("/restaurants", deps.Restaurant.Create)
			r.Get("/restaurants/{id}/orders", deps.Order.ListByRestaurant)
			r.Get("/restaurants/{id}/review-analytics", deps.Assist.ReviewAnalytics)
			r.Put("/orders/{id}/status", deps.Order.UpdateStatus)
		})
	})

	return r
}
