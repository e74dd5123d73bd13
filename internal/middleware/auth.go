// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
)

type ctxKey string

const userKey ctxKey = "user"

// SessionValidator verifies the session cookie on a request and returns the
// authenticated username.
type SessionValidator interface {
	Validate(r *http.Request) (string, error)
}

// SessionAuth is a middleware that enforces cookie-based authentication.
//
// It validates the signed session cookie on the incoming request. On success
// the username is stored in the request context for downstream handlers; any
// missing, expired, or tampered cookie redirects the browser to /login.
func SessionAuth(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, err := sessions.Validate(r)
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext extracts the authenticated username from the request
// context. Returns an empty string if not found.
func GetUserFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
