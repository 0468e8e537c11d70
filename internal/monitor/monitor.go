package monitor

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nmoran/gamedrop/internal/state"
	"github.com/nmoran/gamedrop/internal/store"
	"github.com/nmoran/gamedrop/pkg/deals"
	"github.com/nmoran/gamedrop/pkg/game"
	"github.com/nmoran/gamedrop/pkg/notify"
	"github.com/nmoran/gamedrop/pkg/relevance"
)

// Fetcher produces the current free-game set, already normalized.
type Fetcher interface {
	Fetch(ctx context.Context) []game.FreeGame
}

// DealsFetcher produces the current high-discount bundle deals.
type DealsFetcher interface {
	HighDiscountDeals(ctx context.Context) []deals.Deal
}

// StateStore persists the last notified game set between runs.
type StateStore interface {
	Load() (*state.State, error)
	Save(st *state.State) error
}

// Broadcaster delivers a notification to the configured destinations.
type Broadcaster interface {
	HasNotifiers() bool
	Broadcast(ctx context.Context, n *notify.Notification) error
}

// Monitor runs one end-to-end check: fetch promotions, detect change
// against the persisted state, score and notify, then persist. State is
// only saved after a successful broadcast so a failed delivery is retried
// on the next pass.
type Monitor struct {
	fetcher  Fetcher
	scorer   *relevance.Scorer
	deals    DealsFetcher // optional
	state    StateStore
	history  store.History // optional
	notify   Broadcaster
	maxGames int
}

// Options configures a Monitor. Deals and History may be nil.
type Options struct {
	Fetcher  Fetcher
	Scorer   *relevance.Scorer
	Deals    DealsFetcher
	State    StateStore
	History  store.History
	Notify   Broadcaster
	MaxGames int
}

// New creates a monitor.
func New(opts Options) *Monitor {
	maxGames := opts.MaxGames
	if maxGames <= 0 {
		maxGames = 4
	}
	return &Monitor{
		fetcher:  opts.Fetcher,
		scorer:   opts.Scorer,
		deals:    opts.Deals,
		state:    opts.State,
		history:  opts.History,
		notify:   opts.Notify,
		maxGames: maxGames,
	}
}

// Run executes a single monitor pass.
func (m *Monitor) Run(ctx context.Context) error {
	fmt.Fprintf(os.Stderr, "checking free game promotions...\n")

	games := m.fetcher.Fetch(ctx)
	if len(games) == 0 {
		fmt.Fprintf(os.Stderr, "no free games found from any source\n")
		m.record(ctx, nil, false, false)
		return nil
	}
	if len(games) > m.maxGames {
		games = games[:m.maxGames]
	}
	fmt.Fprintf(os.Stderr, "found %d free games\n", len(games))

	prev, err := m.state.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load state: %v (treating as first run)\n", err)
	}

	if !game.HasChanged(games, prev.Games) {
		fmt.Fprintf(os.Stderr, "no changes since last check\n")
		m.record(ctx, games, false, false)
		return nil
	}
	fmt.Fprintf(os.Stderr, "game lineup changed, preparing notification\n")

	if !m.notify.HasNotifiers() {
		fmt.Fprintf(os.Stderr, "no notifiers configured, skipping notification and state update\n")
		m.record(ctx, games, true, false)
		return nil
	}

	records := make([]relevance.Record, len(games))
	for i, g := range games {
		fmt.Fprintf(os.Stderr, "evaluating game %d/%d: %s\n", i+1, len(games), g.Title)
		records[i] = m.scorer.Score(ctx, g.Title)
	}

	var bundleDeals []deals.Deal
	if m.deals != nil {
		bundleDeals = m.deals.HighDiscountDeals(ctx)
	}

	n := &notify.Notification{
		Games:       games,
		Relevance:   records,
		Deals:       bundleDeals,
		GeneratedAt: time.Now().UTC(),
	}

	if err := m.notify.Broadcast(ctx, n); err != nil {
		m.record(ctx, games, true, false)
		return fmt.Errorf("send notification: %w", err)
	}
	fmt.Fprintf(os.Stderr, "notification sent\n")

	if err := m.state.Save(&state.State{Games: games}); err != nil {
		fmt.Fprintf(os.Stderr, "save state: %v\n", err)
	}

	m.record(ctx, games, true, true)
	return nil
}

// record archives the pass in the history store, best effort.
func (m *Monitor) record(ctx context.Context, games []game.FreeGame, changed, notified bool) {
	if m.history == nil {
		return
	}
	if len(games) > 0 {
		if err := m.history.UpsertPromotions(ctx, games); err != nil {
			fmt.Fprintf(os.Stderr, "history upsert: %v\n", err)
		}
	}
	run := store.Run{
		RanAt:      time.Now().UTC(),
		GamesFound: len(games),
		Changed:    changed,
		Notified:   notified,
	}
	if err := m.history.RecordRun(ctx, run); err != nil {
		fmt.Fprintf(os.Stderr, "history record run: %v\n", err)
	}
}
