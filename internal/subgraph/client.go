// Package subgraph is the gateway to the remote indexing service. It is
// the only data source the explorer has: a single GraphQL endpoint that
// answers text queries with a JSON envelope. The gateway is a fail-fast
// boundary, one request per operation with no retries or caching.
package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Eversmile12/ERC-8004-explorer/internal/metrics"
	"github.com/Eversmile12/ERC-8004-explorer/internal/models"
)

// feedbackPageSize caps the feedback entries fetched for a detail view.
const feedbackPageSize = 50

// countCap bounds the ids fetched for a filtered count. The subgraph has
// no count aggregate, so totals are derived by counting returned ids.
const countCap = 1000

const agentFields = `
    id
    chainId
    agentId
    owner
    createdAt
    updatedAt
    agentURI
    totalFeedback
    registrationFile {
      name
      description
      image
      mcpEndpoint
      a2aEndpoint
      supportedTrusts
    }`

const feedbackFields = `
    id
    score
    tag1
    tag2
    clientAddress
    createdAt
    isRevoked
    feedbackFile {
      text
      capability
      skill
    }`

// Client issues queries against a single subgraph endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a subgraph client for the given endpoint. The
// endpoint is injected rather than read from a package constant so tests
// can point the client at a mock server.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type graphQLRequest struct {
	Query string `json:"query"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// execute posts a query and unmarshals the data payload into out. A
// non-2xx status or an errors array fails the whole operation; there is
// no retry or partial-result handling anywhere above this.
func (c *Client) execute(ctx context.Context, operation, query string, out any) error {
	start := time.Now()
	err := c.post(ctx, query, out)

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.SubgraphQueries.WithLabelValues(operation, status).Inc()
	metrics.SubgraphQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	return err
}

func (c *Client) post(ctx context.Context, query string, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query})
	if err != nil {
		return fmt.Errorf("subgraph: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("subgraph: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("subgraph: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("subgraph: unexpected status %d", resp.StatusCode)
	}

	var envelope graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("subgraph: decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("subgraph: query error: %s", envelope.Errors[0].Message)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("subgraph: decode data: %w", err)
	}
	return nil
}

// agentWire carries the remote agent shape. The subgraph calls the
// metadata URI field agentURI; everything else matches the local record.
type agentWire struct {
	models.AgentRecord
	AgentURI string `json:"agentURI"`
}

func (w agentWire) record() models.AgentRecord {
	rec := w.AgentRecord
	rec.MetadataURI = w.AgentURI
	return rec
}

// ListAgents returns one page of agent records matching filters, ordered
// by creation time descending.
func (c *Client) ListAgents(ctx context.Context, pageSize, offset int, filters Filters) ([]models.AgentRecord, error) {
	query := fmt.Sprintf(`{
  agents(%s%s) {%s
  }
}`, listArgs(pageSize, offset), filters.Where(), agentFields)

	var data struct {
		Agents []agentWire `json:"agents"`
	}
	if err := c.execute(ctx, "list_agents", query, &data); err != nil {
		return nil, err
	}

	records := make([]models.AgentRecord, 0, len(data.Agents))
	for _, w := range data.Agents {
		records = append(records, w.record())
	}
	return records, nil
}

// GetAgent fetches one agent plus its most recent non-revoked feedback.
// A missing record returns a nil agent, not an error: the caller renders
// a not-found page for it.
func (c *Client) GetAgent(ctx context.Context, id string) (*models.AgentRecord, []models.FeedbackRecord, error) {
	query := fmt.Sprintf(`{
  agent(id: %s) {%s
  }
  feedbacks(first: %d, orderBy: createdAt, orderDirection: desc, where: {agent: %s, isRevoked: false}) {%s
  }
}`, Quote(id), agentFields, feedbackPageSize, Quote(id), feedbackFields)

	var data struct {
		Agent     *agentWire              `json:"agent"`
		Feedbacks []models.FeedbackRecord `json:"feedbacks"`
	}
	if err := c.execute(ctx, "get_agent", query, &data); err != nil {
		return nil, nil, err
	}
	if data.Agent == nil {
		return nil, nil, nil
	}

	rec := data.Agent.record()
	return &rec, data.Feedbacks, nil
}

// CountAgents returns the number of agents matching filters. It is only
// needed when filters are active; the unfiltered total comes from
// GlobalStats. Totals above countCap are clamped.
func (c *Client) CountAgents(ctx context.Context, filters Filters) (int, error) {
	query := fmt.Sprintf(`{
  agents(first: %d%s) {
    id
  }
}`, countCap, filters.Where())

	var data struct {
		Agents []struct {
			ID string `json:"id"`
		} `json:"agents"`
	}
	if err := c.execute(ctx, "count_agents", query, &data); err != nil {
		return 0, err
	}
	return len(data.Agents), nil
}

// GlobalStats returns the registry-wide counters. A subgraph that has
// not indexed any events yet has no stats entity; that reads as zeros.
func (c *Client) GlobalStats(ctx context.Context) (models.GlobalStats, error) {
	query := `{
  globalStats(id: "global") {
    totalAgents
    totalFeedback
  }
}`

	var data struct {
		GlobalStats *models.GlobalStats `json:"globalStats"`
	}
	if err := c.execute(ctx, "global_stats", query, &data); err != nil {
		return models.GlobalStats{}, err
	}
	if data.GlobalStats == nil {
		return models.GlobalStats{TotalAgents: "0", TotalFeedback: "0"}, nil
	}
	return *data.GlobalStats, nil
}
