package view

import (
	"net/url"
	"testing"
)

func TestParseQueryStateDefaults(t *testing.T) {
	st := ParseQueryState(url.Values{})
	if st.Page != 1 || st.PerPage != 24 || st.Search != "" || st.HasReviews || st.HasEndpoint {
		t.Fatalf("unexpected defaults: %+v", st)
	}
}

func TestParseQueryStateInvalidValues(t *testing.T) {
	q := url.Values{
		"page":    {"-3"},
		"perPage": {"37"},
	}
	st := ParseQueryState(q)
	if st.Page != 1 {
		t.Fatalf("negative page should fall back to 1, got %d", st.Page)
	}
	if st.PerPage != 24 {
		t.Fatalf("disallowed perPage should fall back to 24, got %d", st.PerPage)
	}
}

func TestParseQueryStateAllowedPerPage(t *testing.T) {
	q := url.Values{"perPage": {"48"}}
	if st := ParseQueryState(q); st.PerPage != 48 {
		t.Fatalf("expected 48, got %d", st.PerPage)
	}
}

func TestEncodeOmitsDefaults(t *testing.T) {
	st := QueryState{Page: 2, PerPage: 24}
	updated := st.WithPage(1)
	if got := updated.Encode(); got != "" {
		t.Fatalf("default-valued parameters must be omitted, got %q", got)
	}
	if got := updated.URL(); got != "/" {
		t.Fatalf("all-default state should link to /, got %q", got)
	}
}

func TestEncodeIsIdempotent(t *testing.T) {
	st := QueryState{Search: "bot", Page: 3, PerPage: 48, HasReviews: true}
	first := st.Encode()
	second := ParseQueryState(mustParseQuery(t, first)).Encode()
	if first != second {
		t.Fatalf("re-encoding parsed state changed the URL: %q vs %q", first, second)
	}
}

func TestEncodeKeepsNonDefaults(t *testing.T) {
	st := QueryState{Search: "bot", Page: 2, PerPage: 48, HasEndpoint: true}
	got := st.Encode()
	want := "hasEndpoint=true&page=2&perPage=48&search=bot"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWithPerPageResetsPage(t *testing.T) {
	st := QueryState{Page: 5, PerPage: 24}
	updated := st.WithPerPage(48)
	if updated.Page != 1 || updated.PerPage != 48 {
		t.Fatalf("changing page size should reset to page 1, got %+v", updated)
	}
}

func mustParseQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	q, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatal(err)
	}
	return q
}
