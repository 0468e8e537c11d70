package relevance

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
)

// Level is the discrete label summarizing a game's estimated popularity.
type Level string

const (
	LevelVeryHigh Level = "VERY_HIGH"
	LevelHigh     Level = "HIGH"
	LevelMedium   Level = "MEDIUM"
	LevelLow      Level = "LOW"
	LevelUnknown  Level = "UNKNOWN"
)

// Record is the relevance evaluation for a single game title.
type Record struct {
	Title       string   `json:"title"`
	Rating      float64  `json:"rating"`
	Popularity  int      `json:"popularity_score"`
	ReviewCount int      `json:"review_count"`
	Level       Level    `json:"relevance_level"`
	Sources     []string `json:"sources"`
}

// Signal is the raw contribution of one external lookup.
type Signal struct {
	Rating      float64
	Popularity  int
	ReviewCount int
}

// Source is an optional external rating/popularity lookup. An unconfigured
// source returns (nil, nil) for every title.
type Source interface {
	Name() string
	Lookup(ctx context.Context, title string) (*Signal, error)
}

// Scorer combines external lookups with a deterministic title heuristic.
type Scorer struct {
	sources []Source
}

// NewScorer creates a scorer over an ordered list of external sources.
func NewScorer(sources ...Source) *Scorer {
	return &Scorer{sources: sources}
}

// Score evaluates a title. The first source that yields data seeds the
// record; a later source overrides only when its rating beats the held one,
// but its provenance is recorded either way. When no source contributes,
// the keyword/franchise heuristic takes over. Given identical source
// responses the result is fully deterministic.
func (s *Scorer) Score(ctx context.Context, title string) Record {
	rec := Record{Title: title}

	for _, src := range s.sources {
		sig, err := src.Lookup(ctx, title)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  relevance %s error for %q: %v\n", src.Name(), title, err)
			continue
		}
		if sig == nil {
			continue
		}

		if len(rec.Sources) == 0 || sig.Rating > rec.Rating {
			rec.Rating = sig.Rating
			rec.Popularity = sig.Popularity
			rec.ReviewCount = sig.ReviewCount
		}
		rec.Sources = append(rec.Sources, src.Name())
	}

	if len(rec.Sources) == 0 {
		rec.Rating, rec.Popularity = heuristicSignal(title)
		rec.Sources = []string{"heuristic"}
	}

	rec.Level = levelFor(rec.Rating, rec.Popularity)
	return rec
}

// popularKeywords hint at genres and formats that tend to draw players.
var popularKeywords = []string{
	"aaa", "indie", "multiplayer", "online", "battle", "royale",
	"rpg", "action", "adventure", "strategy", "simulation",
	"horror", "survival", "racing", "sports", "puzzle",
}

// knownFranchises are names recognizable enough that a match overrides any
// keyword accumulation outright.
var knownFranchises = []string{
	"assassin", "call of duty", "battlefield", "fifa", "nba",
	"grand theft", "elder scrolls", "fallout", "witcher",
	"minecraft", "fortnite", "apex", "valorant", "overwatch",
}

// heuristicSignal scores a title from keywords alone. Each keyword match
// nudges the neutral baseline up to fixed caps; a franchise match dominates
// and does not stack.
func heuristicSignal(title string) (rating float64, popularity int) {
	lower := strings.ToLower(title)

	rating = 3.0
	popularity = 50

	matches := 0
	for _, kw := range popularKeywords {
		if strings.Contains(lower, kw) {
			matches++
		}
	}
	if matches > 0 {
		rating = math.Min(4.0, 3.0+float64(matches)*0.2)
		popularity = 50 + matches*25
		if popularity > 200 {
			popularity = 200
		}
	}

	for _, franchise := range knownFranchises {
		if strings.Contains(lower, franchise) {
			rating = 4.5
			popularity = 500
			break
		}
	}

	return rating, popularity
}

// levelFor maps (rating, popularity) to a relevance tier via fixed
// thresholds on the combined scalar.
func levelFor(rating float64, popularity int) Level {
	combined := rating*20 + math.Min(float64(popularity), 1000)/10

	switch {
	case combined >= 150:
		return LevelVeryHigh
	case combined >= 100:
		return LevelHigh
	case combined >= 70:
		return LevelMedium
	case combined >= 40:
		return LevelLow
	default:
		return LevelUnknown
	}
}
