package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Eversmile12/ERC-8004-explorer/internal/api"
	"github.com/Eversmile12/ERC-8004-explorer/internal/handlers"
	"github.com/Eversmile12/ERC-8004-explorer/internal/subgraph"
)

const agentJSON = `{"id":"11155111-1","chainId":"11155111","agentId":"1","owner":"0x1234567890abcdef1234567890abcdef12345678","createdAt":"1700000000","updatedAt":"1700000000","agentURI":"ipfs://meta","totalFeedback":"2","registrationFile":{"name":"Trader Bot","description":"Automated trading agent","image":"","mcpEndpoint":"https://mcp.example","a2aEndpoint":"","supportedTrusts":["tee-attestation"]}}`

// fakeSubgraph answers the explorer's queries by inspecting the query
// text, the same way a real deployment dispatches on the selection set.
func fakeSubgraph(t *testing.T, found bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.Contains(req.Query, "globalStats"):
			fmt.Fprint(w, `{"data":{"globalStats":{"totalAgents":"57","totalFeedback":"123"}}}`)
		case strings.Contains(req.Query, "agent(id:"):
			if found {
				fmt.Fprintf(w, `{"data":{"agent":%s,"feedbacks":[{"id":"fb-1","score":"90","tag1":"fast","tag2":"","clientAddress":"0xabcdef1234567890abcdef1234567890abcdef12","createdAt":"1700000100","isRevoked":false,"feedbackFile":{"text":"works well","capability":"","skill":""}}]}}`, agentJSON)
			} else {
				fmt.Fprint(w, `{"data":{"agent":null,"feedbacks":[]}}`)
			}
		case strings.Contains(req.Query, "first: 1000"):
			fmt.Fprint(w, `{"data":{"agents":[{"id":"a"},{"id":"b"}]}}`)
		default:
			fmt.Fprintf(w, `{"data":{"agents":[%s]}}`, agentJSON)
		}
	}))
}

func newTestRouter(t *testing.T, endpoint string) http.Handler {
	t.Helper()
	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	h, err := handlers.NewHandler(subgraph.NewClient(endpoint, time.Second), logger)
	if err != nil {
		t.Fatalf("NewHandler failed: %v", err)
	}
	return api.NewRouter(logger, h)
}

func TestListPage(t *testing.T) {
	upstream := fakeSubgraph(t, true)
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Trader Bot") {
		t.Fatalf("agent name missing from list page: %s", body)
	}
	if !strings.Contains(body, "0x1234...5678") {
		t.Fatalf("owner address not shortened: %s", body)
	}
	if !strings.Contains(body, "57 agents registered") {
		t.Fatalf("global stats missing: %s", body)
	}
}

func TestListPageFiltered(t *testing.T) {
	upstream := fakeSubgraph(t, true)
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?hasReviews=true", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	// Filtered totals come from the count query (2), not the global
	// counter (57): one page of results.
	if !strings.Contains(rec.Body.String(), "Page 1 of 1") {
		t.Fatalf("filtered pagination should use the filtered count: %s", rec.Body.String())
	}
}

func TestDetailPage(t *testing.T) {
	upstream := fakeSubgraph(t, true)
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/agent/11155111-1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Trader Bot") {
		t.Fatalf("agent name missing from detail page: %s", body)
	}
	if !strings.Contains(body, "90/100") {
		t.Fatalf("feedback score missing: %s", body)
	}
	if !strings.Contains(body, "works well") {
		t.Fatalf("feedback text missing: %s", body)
	}
}

func TestDetailPageNotFound(t *testing.T) {
	upstream := fakeSubgraph(t, false)
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/agent/11155111-999", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing agent should render the not-found page, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Agent not found") {
		t.Fatalf("not-found page missing: %s", rec.Body.String())
	}
}

func TestListPageUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("upstream failure should render the error page, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Something went wrong") {
		t.Fatalf("error page missing: %s", rec.Body.String())
	}
}

func TestHealthDegraded(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when the subgraph is down, got %d", rec.Code)
	}

	var resp handlers.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode health response: %v", err)
	}
	if resp.Status != "degraded" || resp.Checks["subgraph"].Status != "fail" {
		t.Fatalf("unexpected health payload: %+v", resp)
	}
}
