package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/nmoran/gamedrop/pkg/game"
)

const freeGamesPageURL = "https://store.epicgames.com/en-US/free-games"

// Scraper extracts free-game cards from the storefront's free-games page.
// Scraped records carry no price information, so everything that looks like
// a game card is admitted and left to the normalizer.
type Scraper struct {
	client *http.Client
	url    string
}

// NewScraper creates the HTML scraping source.
func NewScraper(pageURL string) *Scraper {
	if pageURL == "" {
		pageURL = freeGamesPageURL
	}
	return &Scraper{
		client: &http.Client{Timeout: 30 * time.Second},
		url:    pageURL,
	}
}

func (s *Scraper) Name() string { return "storefront-scrape" }

func (s *Scraper) FetchPromotions(ctx context.Context) ([]game.FreeGame, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create scrape request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch free-games page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("free-games page status %d", resp.StatusCode)
	}

	return parseFreeGamesPage(resp.Body)
}

// parseFreeGamesPage pulls game cards out of the storefront HTML. Nodes
// without a heading are dropped by the normalizer, so partial cards never
// consume a slot.
func parseFreeGamesPage(r io.Reader) ([]game.FreeGame, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse free-games page: %w", err)
	}

	var games []game.FreeGame
	doc.Find("div, section").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		if !strings.Contains(strings.ToLower(class), "card") {
			return
		}

		raw := game.RawRecord{
			"title":       sel.Find("h1, h2, h3, h4, h5, h6").First().Text(),
			"description": descriptionText(sel),
		}
		if src, ok := sel.Find("img").First().Attr("src"); ok {
			raw["image_url"] = src
		}

		if g := game.Normalize(raw, game.KindHTMLNode); g != nil {
			games = append(games, *g)
		}
	})

	return games, nil
}

func descriptionText(sel *goquery.Selection) string {
	var text string
	sel.Find("p, div").EachWithBreak(func(_ int, d *goquery.Selection) bool {
		class, _ := d.Attr("class")
		if strings.Contains(strings.ToLower(class), "desc") {
			text = strings.TrimSpace(d.Text())
			return false
		}
		return true
	})
	return text
}
