package http

import (
	"context"
	"net/http"

	"github.com/inikari/nglkawe/internal/middleware"
	"github.com/inikari/nglkawe/internal/models"
)

// MessageService defines the interface for message operations required by
// the dashboard and public handlers.
type MessageService interface {
	// Post appends a message to the recipient's log, stamping the server time.
	Post(ctx context.Context, recipient, body string) error
	// Messages returns the user's log with display-formatted timestamps.
	Messages(ctx context.Context, username string) ([]models.DisplayMessage, error)
}

// DashboardHandler renders the owner's private message list.
type DashboardHandler struct {
	Messages MessageService
}

// Dashboard handles GET /dashboard. The session middleware has already
// authenticated the request and placed the username in the context.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUserFromContext(r.Context())

	messages, err := h.Messages.Messages(r.Context(), username)
	if err != nil {
		renderServerError(w)
		return
	}
	render(w, http.StatusOK, "dash.html", dashboardData{Username: username, Messages: messages})
}
