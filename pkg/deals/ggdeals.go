package deals

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

const ggdealsBaseURL = "https://api.gg.deals/v1"

// Client fetches active bundles from the GG.deals API and flattens them
// into per-game deals. Without an API key every fetch silently yields
// nothing; failures never propagate past HighDiscountDeals.
type Client struct {
	client      *http.Client
	apiKey      string
	baseURL     string
	region      string
	minDiscount float64
	maxDeals    int
}

// NewClient creates a GG.deals client.
func NewClient(apiKey, region string, minDiscount float64, maxDeals int) *Client {
	if region == "" {
		region = "us"
	}
	if minDiscount <= 0 {
		minDiscount = 80
	}
	if maxDeals <= 0 {
		maxDeals = 4
	}
	return &Client{
		client:      &http.Client{Timeout: 30 * time.Second},
		apiKey:      apiKey,
		baseURL:     ggdealsBaseURL,
		region:      region,
		minDiscount: minDiscount,
		maxDeals:    maxDeals,
	}
}

// HighDiscountDeals returns the best current deals at or above the
// configured discount threshold, sorted by quality. It fails soft: any
// retrieval or parse error is logged and an empty result returned.
func (c *Client) HighDiscountDeals(ctx context.Context) []Deal {
	if c.apiKey == "" {
		return nil
	}

	bundles, err := c.fetchActiveBundles(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ggdeals error: %v\n", err)
		return nil
	}

	deals := BuildDeals(bundles, c.minDiscount)
	SortByQuality(deals)

	if len(deals) > c.maxDeals {
		deals = deals[:c.maxDeals]
	}
	return deals
}

// Bundle is an active bundle as returned by the GG.deals API.
type Bundle struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	DateTo string `json:"dateTo"`
	Tiers  []Tier `json:"tiers"`
}

// Tier is one pricing bracket within a bundle. GamesCount, when set, is the
// advertised selectable count for build-your-own tiers and takes precedence
// over the raw game list length.
type Tier struct {
	Price      string     `json:"price"`
	Currency   string     `json:"currency"`
	GamesCount int        `json:"gamesCount"`
	Games      []TierGame `json:"games"`
}

// TierGame is a single game listed in a tier.
type TierGame struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

func (c *Client) fetchActiveBundles(ctx context.Context) ([]Bundle, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("region", c.region)

	reqURL := c.baseURL + "/bundles/active/?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create ggdeals request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch active bundles: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ggdeals API status %d", resp.StatusCode)
	}

	var result struct {
		Success bool `json:"success"`
		Data    struct {
			Bundles []Bundle `json:"bundles"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode ggdeals response: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("ggdeals API returned success=false")
	}

	return result.Data.Bundles, nil
}

// BuildDeals flattens bundle tiers into per-game deals, keeping only those
// whose estimated discount reaches minDiscount. Input order is preserved.
func BuildDeals(bundles []Bundle, minDiscount float64) []Deal {
	var deals []Deal
	now := time.Now().UTC()

	for _, bundle := range bundles {
		for _, tier := range bundle.Tiers {
			price, err := strconv.ParseFloat(tier.Price, 64)
			if err != nil || price <= 0 {
				continue
			}

			count := tier.GamesCount
			if count <= 0 {
				count = len(tier.Games)
			}
			if count <= 0 {
				continue
			}

			pricePerGame := price / float64(count)
			discount := EstimateDiscount(pricePerGame)
			if discount < minDiscount {
				continue
			}

			for _, g := range tier.Games {
				deals = append(deals, Deal{
					Title:             g.Title,
					URL:               g.URL,
					BundleTitle:       bundle.Title,
					BundleURL:         bundle.URL,
					Price:             price,
					Currency:          tier.Currency,
					PricePerGame:      round2(pricePerGame),
					EstimatedDiscount: discount,
					GamesInTier:       count,
					EndDate:           bundle.DateTo,
					ExtractedAt:       now,
				})
			}
		}
	}

	return deals
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
