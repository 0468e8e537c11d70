package source

import (
	"context"
	"fmt"
	"time"

	"github.com/nmoran/gamedrop/pkg/game"
)

// Example yields placeholder promotions so the pipeline stays exercisable
// when every real source fails. It always sits last in the chain and can be
// disabled in config.
type Example struct{}

// NewExample creates the placeholder data source.
func NewExample() *Example { return &Example{} }

func (e *Example) Name() string { return "example-data" }

func (e *Example) FetchPromotions(_ context.Context) ([]game.FreeGame, error) {
	now := time.Now().UTC()

	descriptions := []string{
		"An incredible adventure game with striking visuals and an absorbing story.",
		"A strategy game that will challenge your mind and keep you busy for hours.",
		"An adrenaline-filled action game with epic battles and worlds to explore.",
		"A unique indie game with inventive mechanics and a distinctive art style.",
	}

	games := make([]game.FreeGame, len(descriptions))
	for i, desc := range descriptions {
		n := i + 1
		games[i] = game.FreeGame{
			Title:       fmt.Sprintf("Epic Game Example %d", n),
			Description: desc,
			ImageURL:    fmt.Sprintf("https://via.placeholder.com/460x215?text=Epic+Game+%d", n),
			EndDate:     now.AddDate(0, 0, 7-i).Format(time.RFC3339),
			Namespace:   fmt.Sprintf("example%d", n),
			ID:          fmt.Sprintf("example-game-%d", n),
			ExtractedAt: now,
		}
	}
	return games, nil
}
