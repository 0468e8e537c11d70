package deals

import "testing"

func TestEstimateDiscount_Bands(t *testing.T) {
	tests := []struct {
		pricePerGame float64
		want         float64
	}{
		{0.5, 95},
		{1.0, 95}, // band edge takes the cheaper band
		{1.5, 90},
		{2.0, 90},
		{2.01, 85},
		{5.0, 85},
		{10.0, 80},
		{10.01, 75},
		{15.0, 75},
		{15.01, 70},
		{100, 70},
	}

	for _, tt := range tests {
		if got := EstimateDiscount(tt.pricePerGame); got != tt.want {
			t.Errorf("EstimateDiscount(%v) = %v, want %v", tt.pricePerGame, got, tt.want)
		}
	}
}

func TestEstimateDiscount_NonIncreasing(t *testing.T) {
	prev := EstimateDiscount(0)
	for price := 0.25; price <= 30; price += 0.25 {
		cur := EstimateDiscount(price)
		if cur > prev {
			t.Fatalf("discount increased from %v to %v at price %v", prev, cur, price)
		}
		prev = cur
	}
}

func TestQualityScore_Components(t *testing.T) {
	tests := []struct {
		name string
		deal Deal
		want int
	}{
		{
			name: "plain title, low band",
			deal: Deal{Title: "Some Game", EstimatedDiscount: 80, PricePerGame: 2},
			want: 5,
		},
		{
			name: "quality keywords count once each",
			deal: Deal{Title: "Game Deluxe Edition Deluxe", EstimatedDiscount: 80, PricePerGame: 2},
			want: 25, // deluxe +10, edition +10, band +5
		},
		{
			name: "franchise bonuses stack",
			deal: Deal{Title: "Fallout meets The Witcher", EstimatedDiscount: 90, PricePerGame: 1},
			want: 55, // 2 franchises +40, band +15
		},
		{
			name: "price penalties",
			deal: Deal{Title: "Pricey Game", EstimatedDiscount: 80, PricePerGame: 12},
			want: 0, // band +5, penalty -5
		},
		{
			name: "mid price penalty",
			deal: Deal{Title: "Mid Game", EstimatedDiscount: 85, PricePerGame: 6},
			want: 8, // band +10, penalty -2
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QualityScore(tt.deal); got != tt.want {
				t.Errorf("QualityScore = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSortByQuality_DescendingAndStable(t *testing.T) {
	deals := []Deal{
		{Title: "Plain A", EstimatedDiscount: 80, PricePerGame: 2},    // 5
		{Title: "Fallout Pack", EstimatedDiscount: 90, PricePerGame: 1}, // 35
		{Title: "Plain B", EstimatedDiscount: 80, PricePerGame: 2},    // 5, ties with Plain A
		{Title: "Goty Edition", EstimatedDiscount: 85, PricePerGame: 3}, // 30
	}

	SortByQuality(deals)

	wantOrder := []string{"Fallout Pack", "Goty Edition", "Plain A", "Plain B"}
	for i, want := range wantOrder {
		if deals[i].Title != want {
			t.Errorf("position %d = %q, want %q", i, deals[i].Title, want)
		}
	}
}

func TestBuildDeals_EffectiveGameCount(t *testing.T) {
	bundles := []Bundle{
		{
			Title: "Pick Bundle",
			URL:   "https://deals.example/pick",
			Tiers: []Tier{
				{
					Price:      "10.00",
					Currency:   "USD",
					GamesCount: 10, // build-your-own: pick 10 of the listed games
					Games: []TierGame{
						{Title: "Game One"},
						{Title: "Game Two"},
					},
				},
			},
		},
	}

	deals := BuildDeals(bundles, 80)
	if len(deals) != 2 {
		t.Fatalf("got %d deals, want 2", len(deals))
	}

	// 10.00 / 10 selectable games = 1.00 per game, 95% band.
	if deals[0].PricePerGame != 1.0 {
		t.Errorf("PricePerGame = %v, want 1.0 (advertised selectable count)", deals[0].PricePerGame)
	}
	if deals[0].EstimatedDiscount != 95 {
		t.Errorf("EstimatedDiscount = %v, want 95", deals[0].EstimatedDiscount)
	}
	if deals[0].GamesInTier != 10 {
		t.Errorf("GamesInTier = %d, want 10", deals[0].GamesInTier)
	}
}

func TestBuildDeals_FiltersBelowMinDiscount(t *testing.T) {
	bundles := []Bundle{
		{
			Title: "Expensive Bundle",
			Tiers: []Tier{
				{
					Price:    "60.00",
					Currency: "USD",
					Games:    []TierGame{{Title: "Costly Game"}}, // 60 per game -> 70%
				},
				{
					Price:    "4.00",
					Currency: "USD",
					Games:    []TierGame{{Title: "Cheap Game"}}, // 4 per game -> 85%
				},
			},
		},
	}

	deals := BuildDeals(bundles, 80)
	if len(deals) != 1 {
		t.Fatalf("got %d deals, want 1", len(deals))
	}
	if deals[0].Title != "Cheap Game" {
		t.Errorf("kept %q, want the cheap-tier game", deals[0].Title)
	}
}

func TestBuildDeals_SkipsInvalidTiers(t *testing.T) {
	bundles := []Bundle{
		{
			Title: "Broken Bundle",
			Tiers: []Tier{
				{Price: "free", Games: []TierGame{{Title: "Bad Price"}}},
				{Price: "0", Games: []TierGame{{Title: "Zero Price"}}},
				{Price: "5.00"}, // no games, no count
			},
		},
	}

	if deals := BuildDeals(bundles, 0); len(deals) != 0 {
		t.Errorf("got %d deals from invalid tiers, want 0", len(deals))
	}
}
