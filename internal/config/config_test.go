package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.State.Path != "last_games.json" {
		t.Errorf("State.Path = %q", cfg.State.Path)
	}
	if cfg.Epic.MaxGames != 4 {
		t.Errorf("Epic.MaxGames = %d, want 4", cfg.Epic.MaxGames)
	}
	if cfg.Deals.MinDiscount != 80 {
		t.Errorf("Deals.MinDiscount = %v, want 80", cfg.Deals.MinDiscount)
	}
	if got := cfg.Schedule.ParseCheckInterval(); got != 6*time.Hour {
		t.Errorf("ParseCheckInterval = %v, want 6h", got)
	}
	if cfg.Notify.Email.Enabled || cfg.Deals.Enabled {
		t.Error("email and deals must be disabled until configured")
	}
}

func TestParseCheckInterval_InvalidFallsBack(t *testing.T) {
	s := ScheduleConfig{CheckInterval: "often"}
	if got := s.ParseCheckInterval(); got != 6*time.Hour {
		t.Errorf("ParseCheckInterval = %v, want default 6h", got)
	}
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
epic:
  locale: es-ES
  country: ES
  max_games: 2
deals:
  enabled: true
  api_key: yaml-key
  min_discount: 85
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Epic.Locale != "es-ES" || cfg.Epic.Country != "ES" {
		t.Errorf("locale/country = %q/%q", cfg.Epic.Locale, cfg.Epic.Country)
	}
	if cfg.Epic.MaxGames != 2 {
		t.Errorf("MaxGames = %d", cfg.Epic.MaxGames)
	}
	if !cfg.Deals.Enabled || cfg.Deals.APIKey != "yaml-key" || cfg.Deals.MinDiscount != 85 {
		t.Errorf("deals config = %+v", cfg.Deals)
	}
	// Untouched defaults survive.
	if cfg.State.Path != "last_games.json" {
		t.Errorf("State.Path = %q", cfg.State.Path)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EMAIL_FROM", "bot@example.com")
	t.Setenv("EMAIL_PASSWORD", "hunter2")
	t.Setenv("EMAIL_TO", "a@example.com, b@example.com")
	t.Setenv("GGDEALS_API_KEY", "env-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !cfg.Notify.Email.Enabled {
		t.Error("EMAIL_TO must enable the email notifier")
	}
	if cfg.Notify.Email.From != "bot@example.com" {
		t.Errorf("From = %q", cfg.Notify.Email.From)
	}
	if len(cfg.Notify.Email.To) != 2 || cfg.Notify.Email.To[1] != "b@example.com" {
		t.Errorf("To = %v", cfg.Notify.Email.To)
	}
	if !cfg.Deals.Enabled || cfg.Deals.APIKey != "env-key" {
		t.Errorf("deals = %+v", cfg.Deals)
	}
}

func TestLoad_MissingFileIsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing explicit config path")
	}
}
