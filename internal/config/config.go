package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	State     StateConfig     `yaml:"state"`
	History   HistoryConfig   `yaml:"history"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Epic      EpicConfig      `yaml:"epic"`
	Relevance RelevanceConfig `yaml:"relevance"`
	Deals     DealsConfig     `yaml:"deals"`
	Notify    NotifyConfig    `yaml:"notify"`
}

// StateConfig locates the last-seen-games state file.
type StateConfig struct {
	Path string `yaml:"path"`
}

// HistoryConfig configures the optional SQLite run/promotion archive.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ScheduleConfig configures the daemon check interval.
type ScheduleConfig struct {
	CheckInterval string `yaml:"check_interval"`
}

// ParseCheckInterval returns the check interval as time.Duration.
func (s ScheduleConfig) ParseCheckInterval() time.Duration {
	d, err := time.ParseDuration(s.CheckInterval)
	if err != nil {
		return 6 * time.Hour
	}
	return d
}

// EpicConfig configures the storefront retrieval chain.
type EpicConfig struct {
	Locale      string       `yaml:"locale"`
	Country     string       `yaml:"country"`
	MaxGames    int          `yaml:"max_games"`
	Scrape      ScrapeConfig `yaml:"scrape"`
	Feed        FeedConfig   `yaml:"feed"`
	ExampleData bool         `yaml:"example_data"`
}

// ScrapeConfig for the free-games page scraping fallback.
type ScrapeConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
}

// FeedConfig for the community RSS fallback.
type FeedConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
}

// RelevanceConfig configures external relevance sources.
type RelevanceConfig struct {
	RAWG  RAWGConfig  `yaml:"rawg"`
	Steam SteamConfig `yaml:"steam"`
}

// RAWGConfig for the RAWG catalog lookup.
type RAWGConfig struct {
	APIKey string `yaml:"api_key"`
}

// SteamConfig for the Steam presence probe.
type SteamConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DealsConfig configures the GG.deals bundle monitor.
type DealsConfig struct {
	Enabled     bool    `yaml:"enabled"`
	APIKey      string  `yaml:"api_key"`
	Region      string  `yaml:"region"`
	MinDiscount float64 `yaml:"min_discount"`
	MaxDeals    int     `yaml:"max_deals"`
}

// NotifyConfig configures notification destinations.
type NotifyConfig struct {
	Email   EmailConfig   `yaml:"email"`
	Webhook WebhookConfig `yaml:"webhook"`
}

// EmailConfig for SMTP delivery.
type EmailConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	From     string   `yaml:"from"`
	Password string   `yaml:"password"`
	To       []string `yaml:"to"`
}

// WebhookConfig for generic webhook delivery.
type WebhookConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Secret  string `yaml:"secret"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		State:    StateConfig{Path: "last_games.json"},
		History:  HistoryConfig{Enabled: true, Path: "gamedrop.db"},
		Schedule: ScheduleConfig{CheckInterval: "6h"},
		Epic: EpicConfig{
			Locale:   "en-US",
			Country:  "US",
			MaxGames: 4,
			Scrape: ScrapeConfig{
				Enabled: true,
				URL:     "https://store.epicgames.com/en-US/free-games",
			},
			Feed:        FeedConfig{Enabled: false},
			ExampleData: false,
		},
		Relevance: RelevanceConfig{
			Steam: SteamConfig{Enabled: true},
		},
		Deals: DealsConfig{
			Region:      "us",
			MinDiscount: 80,
			MaxDeals:    4,
		},
		Notify: NotifyConfig{
			Email: EmailConfig{
				Host: "smtp.gmail.com",
				Port: 587,
			},
		},
	}
}

// Load reads configuration from a YAML file and applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GAMEDROP_STATE_PATH"); v != "" {
		cfg.State.Path = v
	}
	if v := os.Getenv("GAMEDROP_DB_PATH"); v != "" {
		cfg.History.Path = v
	}
	if v := os.Getenv("EMAIL_FROM"); v != "" {
		cfg.Notify.Email.From = v
	}
	if v := os.Getenv("EMAIL_PASSWORD"); v != "" {
		cfg.Notify.Email.Password = v
	}
	if v := os.Getenv("EMAIL_TO"); v != "" {
		cfg.Notify.Email.To = splitList(v)
		cfg.Notify.Email.Enabled = true
	}
	if v := os.Getenv("RAWG_API_KEY"); v != "" {
		cfg.Relevance.RAWG.APIKey = v
	}
	if v := os.Getenv("GGDEALS_API_KEY"); v != "" {
		cfg.Deals.APIKey = v
		cfg.Deals.Enabled = true
	}
	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		cfg.Notify.Webhook.URL = v
		cfg.Notify.Webhook.Enabled = true
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
