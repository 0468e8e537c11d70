package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/nmoran/gamedrop/pkg/game"
)

// Feed reads a community RSS/Atom feed announcing free-game promotions.
// It is a late-chain fallback for when the storefront itself is
// unreachable: recent entries mentioning a giveaway are mapped to scraped
// records and normalized like HTML nodes.
type Feed struct {
	client *http.Client
	parser *gofeed.Parser
	url    string
	maxAge time.Duration
}

// NewFeed creates the RSS fallback source.
func NewFeed(feedURL string) *Feed {
	return &Feed{
		client: &http.Client{Timeout: 30 * time.Second},
		parser: gofeed.NewParser(),
		url:    feedURL,
		maxAge: 7 * 24 * time.Hour,
	}
}

func (f *Feed) Name() string { return "rss-feed" }

func (f *Feed) FetchPromotions(ctx context.Context) ([]game.FreeGame, error) {
	if f.url == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create feed request: %w", err)
	}
	req.Header.Set("User-Agent", "gamedrop/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed status %d", resp.StatusCode)
	}

	parsed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	cutoff := time.Now().Add(-f.maxAge)

	var games []game.FreeGame
	for _, entry := range parsed.Items {
		if entry.PublishedParsed != nil && entry.PublishedParsed.Before(cutoff) {
			continue
		}
		if !mentionsGiveaway(entry.Title + " " + entry.Description) {
			continue
		}

		raw := game.RawRecord{
			"title":       entry.Title,
			"description": entry.Description,
		}
		if entry.Image != nil {
			raw["image_url"] = entry.Image.URL
		}

		if g := game.Normalize(raw, game.KindHTMLNode); g != nil {
			games = append(games, *g)
		}
	}

	return games, nil
}

func mentionsGiveaway(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "free")
}
