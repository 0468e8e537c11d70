package relevance

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const steamSearchURL = "https://store.steampowered.com/search/"

// steamGamesCategory restricts the storefront search to games.
const steamGamesCategory = "998"

// Steam probes the Steam storefront search for a title. It is a coarse
// presence/absence signal: a hit yields a fixed mid-range rating rather
// than real review data.
type Steam struct {
	client    *http.Client
	searchURL string
}

// NewSteam creates a Steam presence probe.
func NewSteam() *Steam {
	return &Steam{
		client:    &http.Client{Timeout: 15 * time.Second},
		searchURL: steamSearchURL,
	}
}

func (s *Steam) Name() string { return "steam" }

func (s *Steam) Lookup(ctx context.Context, title string) (*Signal, error) {
	params := url.Values{}
	params.Set("term", title)
	params.Set("category1", steamGamesCategory)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create steam request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch steam search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("steam search status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse steam search: %w", err)
	}

	if doc.Find("a.search_result_row").Length() == 0 {
		return nil, nil
	}

	return &Signal{Rating: 3.5, Popularity: 100, ReviewCount: 50}, nil
}
