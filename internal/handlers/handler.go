package handlers

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Eversmile12/ERC-8004-explorer/internal/models"
	"github.com/Eversmile12/ERC-8004-explorer/internal/subgraph"
	"github.com/Eversmile12/ERC-8004-explorer/internal/view"
	"github.com/Eversmile12/ERC-8004-explorer/web"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	gw     *subgraph.Client
	logger zerolog.Logger
	tmpl   *template.Template
}

// NewHandler creates a new Handler backed by the given subgraph gateway.
func NewHandler(gw *subgraph.Client, logger zerolog.Logger) (*Handler, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"shortAddr":   view.ShortAddress,
		"formatDate":  view.FormatDate,
		"readable":    view.Readable,
		"displayName": view.DisplayName,
		"avgScore": func(feedbacks []models.FeedbackRecord) *int {
			avg, ok := view.AverageScore(feedbacks)
			if !ok {
				return nil
			}
			return &avg
		},
	}).ParseFS(web.FS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Handler{gw: gw, logger: logger, tmpl: tmpl}, nil
}

// Render writes the named page template with the given status code.
func (h *Handler) Render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("template execution failed")
	}
}

// ErrorPage renders the generic failure page. Every gateway error lands
// here; there is no retry or partial rendering.
func (h *Handler) ErrorPage(w http.ResponseWriter, err error) {
	h.logger.Error().Err(err).Msg("page render failed")
	h.Render(w, http.StatusBadGateway, "error.html", map[string]string{
		"Message": "The indexing service could not be reached. Try again later.",
	})
}

// NotFoundPage renders the standard not-found page.
func (h *Handler) NotFoundPage(w http.ResponseWriter) {
	h.Render(w, http.StatusNotFound, "notfound.html", nil)
}
