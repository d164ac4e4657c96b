// Package view holds the pure display helpers: values the raw records do
// not carry directly, computed without side effects so templates and
// tests can share them.
package view

import (
	"math"
	"strconv"
	"time"

	"github.com/Eversmile12/ERC-8004-explorer/internal/models"
)

// ShortAddress truncates an opaque address-shaped string to its first 6
// and last 4 characters. Anything shorter than 10 characters is returned
// unchanged.
func ShortAddress(addr string) string {
	if len(addr) < 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

// FormatDate renders a decimal-string Unix timestamp as a calendar date.
// Unparseable input renders as an em-dash placeholder rather than a
// bogus epoch date.
func FormatDate(unix string) string {
	secs, err := strconv.ParseInt(unix, 10, 64)
	if err != nil {
		return "—"
	}
	return time.Unix(secs, 0).UTC().Format("Jan 2, 2006")
}

// Readable reports whether a free-text tag is safe to display. Indexed
// tags come from unvalidated external input and occasionally contain
// binary garbage; a tag is shown only when fewer than 30% of its
// characters fall outside printable ASCII (32-126). This is a heuristic,
// not a validator.
func Readable(tag string) bool {
	if tag == "" {
		return false
	}
	total := 0
	bad := 0
	for _, r := range tag {
		total++
		if r < 32 || r > 126 {
			bad++
		}
	}
	return float64(bad)/float64(total) < 0.3
}

// AverageScore returns the mean score over the non-revoked entries,
// rounded half away from zero. ok is false when no entry contributes,
// which callers render as "no value" instead of a zero.
func AverageScore(feedbacks []models.FeedbackRecord) (avg int, ok bool) {
	sum := 0.0
	n := 0
	for _, fb := range feedbacks {
		if fb.IsRevoked {
			continue
		}
		score, err := strconv.ParseFloat(fb.Score, 64)
		if err != nil {
			continue
		}
		sum += score
		n++
	}
	if n == 0 {
		return 0, false
	}
	return int(math.Round(sum / float64(n))), true
}

// DisplayName returns the agent's registered name, falling back to a
// synthesized label when the registration file was never indexed.
func DisplayName(a models.AgentRecord) string {
	if a.RegistrationFile != nil && a.RegistrationFile.Name != "" {
		return a.RegistrationFile.Name
	}
	return "Agent #" + a.AgentID
}
