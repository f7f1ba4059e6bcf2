// Package ctxkeys defines typed context keys shared between middleware and
// handlers. A dedicated package avoids import cycles between them.
package ctxkeys

type contextKey string

const (
	// UserID is the authenticated user's id, set by the auth middleware.
	UserID contextKey = "userID"
	// Role is the authenticated user's role, set by the auth middleware.
	Role contextKey = "role"
)
