package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/nmoran/gamedrop/internal/config"
	"github.com/nmoran/gamedrop/internal/monitor"
	"github.com/nmoran/gamedrop/internal/scheduler"
	"github.com/nmoran/gamedrop/internal/state"
	"github.com/nmoran/gamedrop/internal/store"
	"github.com/nmoran/gamedrop/pkg/deals"
	"github.com/nmoran/gamedrop/pkg/notify"
	"github.com/nmoran/gamedrop/pkg/relevance"
	"github.com/nmoran/gamedrop/pkg/source"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func buildChain(cfg *config.Config) *source.Chain {
	sources := []source.GameSource{
		source.NewPromotions(cfg.Epic.Locale, cfg.Epic.Country),
		source.NewGraphQL(cfg.Epic.Locale, cfg.Epic.Country),
	}
	if cfg.Epic.Scrape.Enabled {
		sources = append(sources, source.NewScraper(cfg.Epic.Scrape.URL))
	}
	if cfg.Epic.Feed.Enabled {
		sources = append(sources, source.NewFeed(cfg.Epic.Feed.URL))
	}
	if cfg.Epic.ExampleData {
		sources = append(sources, source.NewExample())
	}
	return source.NewChain(sources...)
}

func buildScorer(cfg *config.Config) *relevance.Scorer {
	var lookups []relevance.Source

	if cfg.Relevance.RAWG.APIKey != "" {
		lookups = append(lookups, relevance.NewRAWG(cfg.Relevance.RAWG.APIKey))
	}
	if cfg.Relevance.Steam.Enabled {
		lookups = append(lookups, relevance.NewSteam())
	}

	return relevance.NewScorer(lookups...)
}

func buildDealsClient(cfg *config.Config) *deals.Client {
	if !cfg.Deals.Enabled || cfg.Deals.APIKey == "" {
		return nil
	}
	return deals.NewClient(cfg.Deals.APIKey, cfg.Deals.Region, cfg.Deals.MinDiscount, cfg.Deals.MaxDeals)
}

func buildNotifyManager(cfg *config.Config) *notify.Manager {
	var notifiers []notify.Notifier

	if cfg.Notify.Email.Enabled && cfg.Notify.Email.From != "" {
		notifiers = append(notifiers, notify.NewEmail(
			cfg.Notify.Email.Host,
			cfg.Notify.Email.Port,
			cfg.Notify.Email.From,
			cfg.Notify.Email.Password,
			cfg.Notify.Email.To,
		))
	}
	if cfg.Notify.Webhook.Enabled && cfg.Notify.Webhook.URL != "" {
		notifiers = append(notifiers, notify.NewWebhook(cfg.Notify.Webhook.URL, cfg.Notify.Webhook.Secret))
	}

	return notify.NewManager(notifiers)
}

func openHistory(cfg *config.Config) store.History {
	if !cfg.History.Enabled {
		return nil
	}
	db, err := store.New(cfg.History.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open history db: %v (continuing without history)\n", err)
		return nil
	}
	return db
}

func buildMonitor(cfg *config.Config) (*monitor.Monitor, store.History) {
	history := openHistory(cfg)

	var dealsClient monitor.DealsFetcher
	if c := buildDealsClient(cfg); c != nil {
		dealsClient = c
	}

	m := monitor.New(monitor.Options{
		Fetcher:  buildChain(cfg),
		Scorer:   buildScorer(cfg),
		Deals:    dealsClient,
		State:    state.NewFileStore(cfg.State.Path),
		History:  history,
		Notify:   buildNotifyManager(cfg),
		MaxGames: cfg.Epic.MaxGames,
	})
	return m, history
}

func runCheck() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	m, history := buildMonitor(cfg)
	if history != nil {
		defer history.Close()
	}

	return m.Run(context.Background())
}

func runDeals(jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client := buildDealsClient(cfg)
	if client == nil {
		return fmt.Errorf("deals are not configured (set deals.api_key or GGDEALS_API_KEY)")
	}

	found := client.HighDiscountDeals(context.Background())

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(found)
	}

	if len(found) == 0 {
		fmt.Println("no high-discount deals right now")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DISCOUNT\tPRICE\tGAMES\tBUNDLE")
	for _, d := range found {
		fmt.Fprintf(w, "~%.0f%%\t$%.2f\t%d\t%s\n",
			d.EstimatedDiscount, d.Price, d.GamesInTier, d.BundleTitle)
	}
	return w.Flush()
}

func runHistory(jsonOutput bool, title string, limit int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("open history db: %w", err)
	}
	defer db.Close()

	promos, err := db.ListPromotions(context.Background(), store.ListOpts{
		Title: title,
		Limit: limit,
	})
	if err != nil {
		return fmt.Errorf("list promotions: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(promos)
	}

	if len(promos) == 0 {
		fmt.Println("no promotions recorded yet (run a check first: gamedrop check)")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tSEEN\tLAST SEEN\tENDS")
	for _, p := range promos {
		ends := p.EndDate
		if ends == "" {
			ends = "-"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			p.Title, p.TimesSeen, p.LastSeen.Format("2006-01-02 15:04"), ends)
	}
	return w.Flush()
}

func runDaemon() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	m, history := buildMonitor(cfg)
	if history != nil {
		defer history.Close()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sched := scheduler.New(m, cfg.Schedule.ParseCheckInterval())
	if err := sched.Start(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
