package view

import (
	"net/url"
	"strconv"
)

// Pagination defaults and the allowed page sizes for the list view.
const (
	DefaultPage    = 1
	DefaultPerPage = 24
)

// PerPageOptions are the page sizes the list view accepts. Anything else
// falls back to the default.
var PerPageOptions = []int{12, 24, 48, 96}

// QueryState is the list view's user-controlled state, parsed from URL
// query parameters and encoded back into canonical links.
type QueryState struct {
	Search      string
	Page        int
	PerPage     int
	HasReviews  bool
	HasEndpoint bool
}

// ParseQueryState reads list state from URL query parameters, applying
// defaults for missing or invalid values.
func ParseQueryState(q url.Values) QueryState {
	st := QueryState{
		Search:      q.Get("search"),
		Page:        DefaultPage,
		PerPage:     DefaultPerPage,
		HasReviews:  q.Get("hasReviews") == "true",
		HasEndpoint: q.Get("hasEndpoint") == "true",
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		st.Page = page
	}
	if perPage, err := strconv.Atoi(q.Get("perPage")); err == nil {
		for _, opt := range PerPageOptions {
			if perPage == opt {
				st.PerPage = perPage
				break
			}
		}
	}
	return st
}

// Encode renders the state as a canonical query string, omitting every
// parameter equal to its default so URLs stay minimal and applying the
// same state twice yields the same string. The result has no leading
// "?"; it is empty when everything is default.
func (s QueryState) Encode() string {
	q := url.Values{}
	if s.Search != "" {
		q.Set("search", s.Search)
	}
	if s.Page > DefaultPage {
		q.Set("page", strconv.Itoa(s.Page))
	}
	if s.PerPage != DefaultPerPage && s.PerPage > 0 {
		q.Set("perPage", strconv.Itoa(s.PerPage))
	}
	if s.HasReviews {
		q.Set("hasReviews", "true")
	}
	if s.HasEndpoint {
		q.Set("hasEndpoint", "true")
	}
	return q.Encode()
}

// URL renders the state as a list page link.
func (s QueryState) URL() string {
	enc := s.Encode()
	if enc == "" {
		return "/"
	}
	return "/?" + enc
}

// WithPage returns a copy of the state on the given page.
func (s QueryState) WithPage(page int) QueryState {
	s.Page = page
	return s
}

// WithPerPage returns a copy of the state with the given page size,
// reset to the first page since the old offset no longer lines up.
func (s QueryState) WithPerPage(perPage int) QueryState {
	s.PerPage = perPage
	s.Page = DefaultPage
	return s
}
