package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/nmoran/gamedrop/pkg/game"
)

const promotionsURL = "https://store-site-backend-static.ak.epicgames.com/freeGamesPromotions"

// Promotions pulls the current free-game promotions from the storefront's
// static backend endpoint. This is the most stable retrieval strategy and
// runs first in the chain.
type Promotions struct {
	client  *http.Client
	url     string
	locale  string
	country string
}

// NewPromotions creates the storefront API source.
func NewPromotions(locale, country string) *Promotions {
	if locale == "" {
		locale = "en-US"
	}
	if country == "" {
		country = "US"
	}
	return &Promotions{
		client:  &http.Client{Timeout: 30 * time.Second},
		url:     promotionsURL,
		locale:  locale,
		country: country,
	}
}

func (p *Promotions) Name() string { return "storefront-api" }

func (p *Promotions) FetchPromotions(ctx context.Context) ([]game.FreeGame, error) {
	params := url.Values{}
	params.Set("locale", p.locale)
	params.Set("country", p.country)
	params.Set("allowCountries", p.country)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create promotions request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch promotions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("promotions API status %d", resp.StatusCode)
	}

	var result struct {
		Data struct {
			Catalog struct {
				SearchStore struct {
					Elements []game.RawRecord `json:"elements"`
				} `json:"searchStore"`
			} `json:"Catalog"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode promotions response: %w", err)
	}

	var games []game.FreeGame
	for _, element := range result.Data.Catalog.SearchStore.Elements {
		if !game.IsFreePromotion(element) {
			continue
		}
		if g := game.Normalize(element, game.KindRESTElement); g != nil {
			games = append(games, *g)
		}
	}
	return games, nil
}
