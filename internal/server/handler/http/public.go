package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inikari/nglkawe/internal/service"
)

// AccountDirectory reports whether a username is registered.
type AccountDirectory interface {
	Exists(ctx context.Context, username string) (bool, error)
}

// PublicHandler serves the anonymous posting page at /{username}.
type PublicHandler struct {
	Accounts AccountDirectory
	Messages MessageService
}

// UserPage handles GET /{username}. The posting page exists only for
// registered accounts; anything else gets the 404 page.
func (h *PublicHandler) UserPage(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	exists, err := h.Accounts.Exists(r.Context(), username)
	if err != nil {
		renderServerError(w)
		return
	}
	if !exists {
		NotFound(w, r)
		return
	}
	render(w, http.StatusOK, "user.html", userPageData{Username: username})
}

// PostMessage handles POST /{username}. The recipient is not checked for
// existence: a message to an unregistered name is stored and simply never
// read, matching the page's fire-and-forget contract.
func (h *PublicHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	err := h.Messages.Post(r.Context(), username, r.FormValue("message"))
	switch {
	case err == nil:
		render(w, http.StatusOK, "user.html", userPageData{Username: username, Notice: "Sent."})
	case errors.Is(err, service.ErrEmptyMessage):
		render(w, http.StatusOK, "user.html", userPageData{Username: username, Error: "message is required"})
	default:
		renderServerError(w)
	}
}
