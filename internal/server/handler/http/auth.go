// Package http provides the HTML-facing HTTP handlers for registration,
// login, the owner dashboard, and the public posting pages.
package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/inikari/nglkawe/internal/repository"
	"github.com/inikari/nglkawe/internal/service"
)

// AccountService defines the interface for account operations required by
// the auth handlers.
type AccountService interface {
	// Register creates an account from a username and plaintext password.
	Register(ctx context.Context, username, password string) error
	// Login verifies credentials, returning service.ErrInvalidCredentials
	// on any mismatch.
	Login(ctx context.Context, username, password string) error
}

// SessionManager mints, validates, and clears session cookies.
type SessionManager interface {
	Issue(username string) (*http.Cookie, error)
	Validate(r *http.Request) (string, error)
	Clear() *http.Cookie
}

// AuthHandler handles HTTP requests for registration, login, and logout.
type AuthHandler struct {
	// Accounts performs the underlying account operations.
	Accounts AccountService
	// Sessions manages the identity cookie.
	Sessions SessionManager
}

// RegisterForm handles GET /register.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, "register.html", formData{})
}

// Register handles POST /register. On success the browser is sent to the
// login page; registration never sets a session cookie. A taken username
// re-renders the form with an error and changes nothing.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	err := h.Accounts.Register(r.Context(), username, password)
	switch {
	case err == nil:
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case errors.Is(err, repository.ErrDuplicateUsername):
		render(w, http.StatusOK, "register.html", formData{Error: "username already in use"})
	case errors.Is(err, service.ErrEmptyCredentials):
		render(w, http.StatusOK, "register.html", formData{Error: "username and password are required"})
	default:
		renderServerError(w)
	}
}

// LoginForm handles GET /login. A browser that already carries a valid
// session is sent straight to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Sessions.Validate(r); err == nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	render(w, http.StatusOK, "login.html", formData{})
}

// Login handles POST /login. On success it sets the session cookie and
// redirects to the dashboard. Every credential failure re-renders the form
// with the same generic error.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	err := h.Accounts.Login(r.Context(), username, password)
	switch {
	case err == nil:
		cookie, err := h.Sessions.Issue(username)
		if err != nil {
			renderServerError(w)
			return
		}
		http.SetCookie(w, cookie)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	case errors.Is(err, service.ErrInvalidCredentials):
		render(w, http.StatusOK, "login.html", formData{Error: "wrong username or password"})
	default:
		renderServerError(w)
	}
}

// Logout handles GET /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.Sessions.Clear())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
