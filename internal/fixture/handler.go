// Package fixture serves a self-contained imitation of the Episteme
// journey, used to check the verification runner without the real app.
package fixture

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/episteme.html
var templates embed.FS

// Handler serves the fixture page
type Handler struct {
	template *template.Template
	journey  Journey
}

// NewHandler creates a handler rendering journey
func NewHandler(journey Journey) (*Handler, error) {
	tmpl, err := template.ParseFS(templates, "templates/episteme.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &Handler{
		template: tmpl,
		journey:  journey,
	}, nil
}

// ServeHTTP handles GET /
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, h.journey); err != nil {
		log.Printf("Error rendering template: %v", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}
