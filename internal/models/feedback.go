package models

// FeedbackRecord is a review submitted on-chain against an agent by a
// client address. Score is a decimal string in the 0-100 range. Tags are
// free text from unvalidated external input and may contain binary noise.
type FeedbackRecord struct {
	ID            string        `json:"id"`
	Score         string        `json:"score"`
	Tag1          string        `json:"tag1"`
	Tag2          string        `json:"tag2"`
	ClientAddress string        `json:"clientAddress"`
	CreatedAt     string        `json:"createdAt"`
	IsRevoked     bool          `json:"isRevoked"`
	FeedbackFile  *FeedbackFile `json:"feedbackFile"`
}

// FeedbackFile is the optional off-chain body attached to a feedback entry.
type FeedbackFile struct {
	Text       string `json:"text"`
	Capability string `json:"capability"`
	Skill      string `json:"skill"`
}
