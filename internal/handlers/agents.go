package handlers

import (
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/Eversmile12/ERC-8004-explorer/internal/models"
	"github.com/Eversmile12/ERC-8004-explorer/internal/subgraph"
	"github.com/Eversmile12/ERC-8004-explorer/internal/view"
)

// ListPage is the data for the agent list template.
type ListPage struct {
	Agents         []models.AgentRecord
	State          view.QueryState
	Total          int
	TotalPages     int
	PrevURL        string
	NextURL        string
	PerPageOptions []int
	Stats          models.GlobalStats
}

// ListAgents handles the agent catalog page: it parses the filter and
// pagination state from the URL, fans out the independent upstream
// queries, joins them, and renders the grid.
func (h *Handler) ListAgents(w http.ResponseWriter, r *http.Request) {
	st := view.ParseQueryState(r.URL.Query())
	filters := subgraph.Filters{
		Search:      st.Search,
		HasReviews:  st.HasReviews,
		HasEndpoint: st.HasEndpoint,
	}
	offset := (st.Page - 1) * st.PerPage

	// The list, count and stats queries are independent, so they run as
	// an unordered fan-out and join before rendering.
	var (
		agents []models.AgentRecord
		stats  models.GlobalStats
		total  int
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		agents, err = h.gw.ListAgents(ctx, st.PerPage, offset, filters)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = h.gw.GlobalStats(ctx)
		return err
	})
	if filters.Active() {
		// The global counter over-counts once filters narrow the set.
		g.Go(func() error {
			var err error
			total, err = h.gw.CountAgents(ctx, filters)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		h.ErrorPage(w, err)
		return
	}

	if !filters.Active() {
		total, _ = strconv.Atoi(stats.TotalAgents)
	}

	totalPages := (total + st.PerPage - 1) / st.PerPage
	if totalPages < 1 {
		totalPages = 1
	}

	page := ListPage{
		Agents:         agents,
		State:          st,
		Total:          total,
		TotalPages:     totalPages,
		PerPageOptions: view.PerPageOptions,
		Stats:          stats,
	}
	if st.Page > 1 {
		page.PrevURL = st.WithPage(st.Page - 1).URL()
	}
	if st.Page < totalPages {
		page.NextURL = st.WithPage(st.Page + 1).URL()
	}

	h.Render(w, http.StatusOK, "agents.html", page)
}
