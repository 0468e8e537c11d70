package deals

import (
	"sort"
	"strings"
	"time"
)

// Deal is one heavily-discounted game inside a bundle tier.
type Deal struct {
	Title             string    `json:"title"`
	URL               string    `json:"url"`
	BundleTitle       string    `json:"bundle_title"`
	BundleURL         string    `json:"bundle_url"`
	Price             float64   `json:"price"`
	Currency          string    `json:"currency"`
	PricePerGame      float64   `json:"price_per_game"`
	EstimatedDiscount float64   `json:"estimated_discount"`
	GamesInTier       int       `json:"games_in_tier"`
	EndDate           string    `json:"end_date,omitempty"`
	ExtractedAt       time.Time `json:"extracted_at"`
}

// EstimateDiscount maps a per-game price to an estimated discount percent.
// True original prices are unknowable from the bundle feed, so coarse price
// bands stand in for a real formula. The function is a non-increasing step
// function of the price; values exactly on a band edge take the cheaper band.
func EstimateDiscount(pricePerGame float64) float64 {
	switch {
	case pricePerGame <= 1.0:
		return 95
	case pricePerGame <= 2.0:
		return 90
	case pricePerGame <= 5.0:
		return 85
	case pricePerGame <= 10.0:
		return 80
	case pricePerGame <= 15.0:
		return 75
	default:
		return 70
	}
}

// qualityKeywords mark premium re-releases; each one counts once per title.
var qualityKeywords = []string{
	"goty", "edition", "deluxe", "ultimate", "complete", "definitive",
	"remastered", "enhanced", "director", "special", "premium",
}

// knownFranchises boost deals on recognizable series. Unlike the relevance
// heuristic, multiple distinct franchise matches stack.
var knownFranchises = []string{
	"assassin", "call of duty", "battlefield", "fifa", "nba",
	"grand theft", "elder scrolls", "fallout", "witcher",
	"tomb raider", "far cry", "bioshock", "borderlands",
	"civilization", "total war", "dark souls", "sekiro",
	"resident evil", "final fantasy", "metal gear",
}

// QualityScore ranks a deal for sorting: keyword and franchise bonuses,
// a banded discount bonus, and a penalty for expensive per-game prices.
func QualityScore(d Deal) int {
	score := 0
	title := strings.ToLower(d.Title)

	for _, kw := range qualityKeywords {
		if strings.Contains(title, kw) {
			score += 10
		}
	}

	for _, franchise := range knownFranchises {
		if strings.Contains(title, franchise) {
			score += 20
		}
	}

	switch {
	case d.EstimatedDiscount >= 90:
		score += 15
	case d.EstimatedDiscount >= 85:
		score += 10
	case d.EstimatedDiscount >= 80:
		score += 5
	}

	switch {
	case d.PricePerGame > 10:
		score -= 5
	case d.PricePerGame > 5:
		score -= 2
	}

	return score
}

// SortByQuality orders deals by quality score descending. The sort is
// stable: equal scores keep their input order.
func SortByQuality(deals []Deal) {
	sort.SliceStable(deals, func(i, j int) bool {
		return QualityScore(deals[i]) > QualityScore(deals[j])
	})
}
