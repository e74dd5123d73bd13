// Package http provides HTTP routing and middleware configuration
// for the message board service.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/inikari/nglkawe/internal/middleware"
)

// NewRouter constructs and returns the HTTP handler serving the message
// board.
//
// Routes:
//
//	GET  /register     → authHandler.RegisterForm
//	POST /register     → authHandler.Register
//	GET  /login        → authHandler.LoginForm
//	POST /login        → authHandler.Login
//	GET  /logout       → authHandler.Logout
//	GET  /dashboard    → dashboardHandler.Dashboard (session required)
//	GET  /{username}   → publicHandler.UserPage
//	POST /{username}   → publicHandler.PostMessage
//
// Unknown routes fall through to the custom 404 page. Static routes take
// precedence over the /{username} wildcard, so /register, /login,
// /dashboard, and /logout are never treated as usernames.
func NewRouter(
	authHandler *AuthHandler,
	dashboardHandler *DashboardHandler,
	publicHandler *PublicHandler,
	sessions middleware.SessionValidator,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Get("/register", authHandler.RegisterForm)
	r.Post("/register", authHandler.Register)
	r.Get("/login", authHandler.LoginForm)
	r.Post("/login", authHandler.Login)
	r.Get("/logout", authHandler.Logout)

	// Protected group: requires a valid session cookie
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(sessions))
		r.Get("/dashboard", dashboardHandler.Dashboard)
	})

	// Public posting pages
	r.Get("/{username}", publicHandler.UserPage)
	r.Post("/{username}", publicHandler.PostMessage)

	r.NotFound(NotFound)

	return r
}
