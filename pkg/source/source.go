package source

import (
	"context"
	"fmt"
	"os"

	"github.com/nmoran/gamedrop/pkg/game"
)

// GameSource is one retrieval strategy for the current free-game
// promotions. Implementations normalize their raw records before returning;
// records the normalizer rejects are skipped, never fatal.
type GameSource interface {
	Name() string
	FetchPromotions(ctx context.Context) ([]game.FreeGame, error)
}

// Chain tries sources in order until one yields a non-empty result. A
// failing or empty source is logged and the next one tried; when every
// source comes up empty the chain returns nil rather than an error.
type Chain struct {
	sources []GameSource
}

// NewChain creates a fallback chain over the given sources.
func NewChain(sources ...GameSource) *Chain {
	return &Chain{sources: sources}
}

// Fetch returns the first non-empty promotion set the chain produces.
func (c *Chain) Fetch(ctx context.Context) []game.FreeGame {
	for _, src := range c.sources {
		games, err := src.FetchPromotions(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %s error: %v\n", src.Name(), err)
			continue
		}
		if len(games) == 0 {
			fmt.Fprintf(os.Stderr, "  %s: no promotions, trying next source\n", src.Name())
			continue
		}
		fmt.Fprintf(os.Stderr, "  %s: %d games\n", src.Name(), len(games))
		return games
	}
	return nil
}
