package notify

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nmoran/gamedrop/pkg/deals"
	"github.com/nmoran/gamedrop/pkg/game"
	"github.com/nmoran/gamedrop/pkg/relevance"
)

func sampleNotification() *Notification {
	return &Notification{
		Games: []game.FreeGame{
			{
				Title:       "Hollow Depths",
				Description: "Dive into a drowned world.",
				EndDate:     "2026-09-08T15:00:00.000Z",
			},
			{Title: "Dateless Game"},
		},
		Relevance: []relevance.Record{
			{Title: "Hollow Depths", Rating: 4.2, Popularity: 800, Level: relevance.LevelVeryHigh, Sources: []string{"rawg"}},
			{Title: "Dateless Game", Rating: 3.0, Popularity: 50, Level: relevance.LevelLow, Sources: []string{"heuristic"}},
		},
		Deals: []deals.Deal{
			{
				Title:             "Fallout Pack",
				BundleTitle:       "Mega Bundle",
				PricePerGame:      1.25,
				Currency:          "USD",
				EstimatedDiscount: 90,
				EndDate:           "2026-09-15 00:00:00",
			},
		},
		GeneratedAt: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "date unavailable"},
		{"2026-09-08T15:00:00.000Z", "08/09/2026"},
		{"2026-09-08T15:00:00Z", "08/09/2026"},
		{"2026-09-15 00:00:00", "15/09/2026"},
		{"2026-09-08", "08/09/2026"},
		{"soonish", "soonish"}, // unparsable passes through
	}

	for _, tt := range tests {
		if got := formatDate(tt.in); got != tt.want {
			t.Errorf("formatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSubjectFor(t *testing.T) {
	n := sampleNotification()
	if got := subjectFor(n); !strings.Contains(got, "Epic free games + bundle deals") {
		t.Errorf("combined subject = %q", got)
	}

	n.Deals = nil
	if got := subjectFor(n); !strings.Contains(got, "New free games") {
		t.Errorf("games-only subject = %q", got)
	}

	n.Games = nil
	if got := subjectFor(n); !strings.Contains(got, "high-discount") {
		t.Errorf("deals-only subject = %q", got)
	}
}

func TestRenderText(t *testing.T) {
	text := renderText(sampleNotification())

	for _, want := range []string{
		"GAME #1: Hollow Depths",
		"Expires: 08/09/2026",
		"Rating: 4.2/5.0",
		"GAME #2: Dateless Game",
		"Expires: date unavailable",
		"Fallout Pack",
		"~1.25 USD per game",
		"~90%",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("text body missing %q:\n%s", want, text)
		}
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := renderHTML(sampleNotification())
	if err != nil {
		t.Fatalf("renderHTML: %v", err)
	}

	for _, want := range []string{
		"Hollow Depths",
		"VERY_HIGH",
		"date unavailable",
		"Mega Bundle",
		"Claim it now",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("html body missing %q", want)
		}
	}
}

func TestEmail_SendRequiresConfiguration(t *testing.T) {
	e := NewEmail("", 0, "", "", nil)
	if err := e.Send(context.Background(), sampleNotification()); err == nil {
		t.Error("expected an error when the notifier is unconfigured")
	}
}
