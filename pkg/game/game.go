package game

import (
	"strings"
	"time"
)

// UntitledTitle is the sentinel used when a stored record carries no title.
const UntitledTitle = "untitled"

// FreeGame is the canonical, source-agnostic shape for a free-game promotion.
// Namespace and ID identify a promotion instance when both are present, but
// change detection keys on the title alone: ids are unreliable or absent
// across the fallback retrieval strategies.
type FreeGame struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	EndDate     string    `json:"end_date,omitempty"`
	Namespace   string    `json:"namespace,omitempty"`
	ID          string    `json:"id,omitempty"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// NormalizeTitle lowercases and trims a title for comparison.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
