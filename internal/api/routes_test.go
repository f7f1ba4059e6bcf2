package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mealdash/mealdash/internal/api/handlers"
)

func newTestRouter() http.Handler {
	return NewRouter(Deps{
		Auth:       handlers.NewAuthHandler(nil),
		Restaurant: handlers.NewRestaurantHandler(nil),
		Order:      handlers.NewOrderHandler(nil),
		Assist:     nil,
		Health: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	})
}

func TestHealthIsPublic(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAPIRoutesRequireAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := newTestRouter()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/profile"},
		{http.MethodGet, "/api/v1/restaurants"},
		{http.MethodGet, "/api/v1/orders"},
		{http.MethodGet, "/api/v1/llm/personalized-recommendations"},
	}
	for _, p := range paths {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(p.method, p.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", p.method, p.path, rec.Code)
		}
	}
}
