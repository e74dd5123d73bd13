package http

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/inikari/nglkawe/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// formData carries an optional error message into form templates.
type formData struct {
	Error string
}

// userPageData is the template data for the public posting page.
type userPageData struct {
	Username string
	Notice   string
	Error    string
}

// dashboardData is the template data for the owner's dashboard.
type dashboardData struct {
	Username string
	Messages []models.DisplayMessage
}

func render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = pages.ExecuteTemplate(w, name, data)
}

func renderServerError(w http.ResponseWriter) {
	render(w, http.StatusInternalServerError, "error.html", nil)
}

// NotFound renders the custom 404 page. It serves both unknown routes and
// public pages for usernames that were never registered.
func NotFound(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusNotFound, "404.html", nil)
}
