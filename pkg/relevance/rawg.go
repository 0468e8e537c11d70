package relevance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const rawgBaseURL = "https://api.rawg.io/api"

// RAWG looks up rating and rating-count signals in the RAWG game catalog.
// Without an API key every lookup silently yields nothing.
type RAWG struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

// NewRAWG creates a RAWG lookup source.
func NewRAWG(apiKey string) *RAWG {
	return &RAWG{
		client:  &http.Client{Timeout: 15 * time.Second},
		apiKey:  apiKey,
		baseURL: rawgBaseURL,
	}
}

func (r *RAWG) Name() string { return "rawg" }

func (r *RAWG) Lookup(ctx context.Context, title string) (*Signal, error) {
	if r.apiKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("key", r.apiKey)
	params.Set("search", title)
	params.Set("page_size", "1")

	reqURL := r.baseURL + "/games?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create rawg request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rawg search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rawg API status %d", resp.StatusCode)
	}

	var result rawgSearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode rawg response: %w", err)
	}

	if len(result.Results) == 0 {
		return nil, nil
	}

	best := result.Results[0]
	return &Signal{
		Rating:      best.Rating,
		Popularity:  best.RatingsCount,
		ReviewCount: best.ReviewsCount,
	}, nil
}

type rawgSearchResult struct {
	Results []rawgGame `json:"results"`
}

type rawgGame struct {
	Rating       float64 `json:"rating"`
	RatingsCount int     `json:"ratings_count"`
	ReviewsCount int     `json:"reviews_count"`
}
