package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nmoran/gamedrop/pkg/game"
)

const storefrontGraphQLURL = "https://store.epicgames.com/graphql"

const discoverQuery = `
query storefrontDiscover($locale: String!, $country: String!) {
  Storefront {
    discoverLayout(locale: $locale) {
      modules {
        ... on StorefrontCardGroup {
          __typename
          type
          title
          offers {
            namespace
            id
            offer {
              title
              id
              namespace
              description
              keyImages { type url }
              effectiveDate
              expiryDate
              price(country: $country) {
                totalPrice { discountPrice originalPrice currencyCode }
              }
              promotions {
                promotionalOffers {
                  promotionalOffers { startDate endDate }
                }
              }
            }
          }
        }
      }
    }
  }
}`

// GraphQL queries the storefront discover layout for free-game offers.
// The endpoint is less stable than the static promotions feed, so it sits
// second in the chain.
type GraphQL struct {
	client  *http.Client
	url     string
	locale  string
	country string
}

// NewGraphQL creates the storefront GraphQL source.
func NewGraphQL(locale, country string) *GraphQL {
	if locale == "" {
		locale = "en-US"
	}
	if country == "" {
		country = "US"
	}
	return &GraphQL{
		client:  &http.Client{Timeout: 30 * time.Second},
		url:     storefrontGraphQLURL,
		locale:  locale,
		country: country,
	}
}

func (g *GraphQL) Name() string { return "storefront-graphql" }

func (g *GraphQL) FetchPromotions(ctx context.Context) ([]game.FreeGame, error) {
	payload, err := json.Marshal(map[string]any{
		"query": discoverQuery,
		"variables": map[string]any{
			"locale":  g.locale,
			"country": g.country,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal graphql payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch graphql storefront: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("graphql API status %d", resp.StatusCode)
	}

	var result struct {
		Data struct {
			Storefront struct {
				DiscoverLayout struct {
					Modules []game.RawRecord `json:"modules"`
				} `json:"discoverLayout"`
			} `json:"Storefront"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode graphql response: %w", err)
	}

	return extractCardGroupOffers(result.Data.Storefront.DiscoverLayout.Modules), nil
}

// extractCardGroupOffers walks the discover modules and normalizes every
// free offer found in StorefrontCardGroup blocks.
func extractCardGroupOffers(modules []game.RawRecord) []game.FreeGame {
	var games []game.FreeGame

	for _, module := range modules {
		if typename, _ := module["__typename"].(string); typename != "StorefrontCardGroup" {
			continue
		}
		offers, _ := module["offers"].([]any)
		for _, wrapped := range offers {
			entry, _ := wrapped.(map[string]any)
			offer, _ := entry["offer"].(map[string]any)
			if offer == nil || !game.IsFreePromotion(offer) {
				continue
			}
			if g := game.Normalize(offer, game.KindGraphQLOffer); g != nil {
				games = append(games, *g)
			}
		}
	}

	return games
}
