package models

// AgentRecord is a read-only projection of an on-chain agent registration
// as indexed by the subgraph. Timestamps and counters arrive as decimal
// strings because the subgraph serializes BigInt values that way.
type AgentRecord struct {
	// ID is the composite chain+token identifier, e.g. "11155111-42".
	ID               string            `json:"id"`
	ChainID          string            `json:"chainId"`
	AgentID          string            `json:"agentId"`
	Owner            string            `json:"owner"`
	CreatedAt        string            `json:"createdAt"`
	UpdatedAt        string            `json:"updatedAt"`
	MetadataURI      string            `json:"metadataUri"`
	TotalFeedback    string            `json:"totalFeedback"`
	RegistrationFile *RegistrationFile `json:"registrationFile"`
}

// RegistrationFile is the off-chain metadata resolved from an agent's
// metadata URI. It is nil when the file was never indexed or failed to
// resolve; the record still exists on-chain in that case.
type RegistrationFile struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Image           string   `json:"image"`
	MCPEndpoint     string   `json:"mcpEndpoint"`
	A2AEndpoint     string   `json:"a2aEndpoint"`
	SupportedTrusts []string `json:"supportedTrusts"`
}

// GlobalStats holds the registry-wide counters maintained by the subgraph.
type GlobalStats struct {
	TotalAgents   string `json:"totalAgents"`
	TotalFeedback string `json:"totalFeedback"`
}
