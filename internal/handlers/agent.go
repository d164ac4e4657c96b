package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/Eversmile12/ERC-8004-explorer/internal/models"
)

// DetailPage is the data for the agent detail template.
type DetailPage struct {
	Agent     models.AgentRecord
	Feedbacks []models.FeedbackRecord
}

// GetAgent handles the agent detail page. The path parameter is the
// composite chain-token identifier and must be percent-decoded before
// it is used as the lookup key.
func (h *Handler) GetAgent(w http.ResponseWriter, r *http.Request) {
	id, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil || id == "" {
		h.NotFoundPage(w)
		return
	}

	agent, feedbacks, err := h.gw.GetAgent(r.Context(), id)
	if err != nil {
		h.ErrorPage(w, err)
		return
	}
	if agent == nil {
		// Unknown id is a routine miss, not a failure.
		h.NotFoundPage(w)
		return
	}

	h.Render(w, http.StatusOK, "agent.html", DetailPage{
		Agent:     *agent,
		Feedbacks: feedbacks,
	})
}
