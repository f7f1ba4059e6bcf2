package handlers

import (
	"database/sql"
	"net/http"

	"github.com/mealdash/mealdash/internal/version"
)

// Health returns the health-check handler. It reports degraded (503) when
// the database is unreachable; the LLM and search index are intentionally
// not part of liveness, since the API degrades gracefully without them.
func Health(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":  "degraded",
				"version": version.Version,
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version.Version,
		})
	}
}
