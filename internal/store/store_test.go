package store

import (
	"context"
	"testing"
	"time"

	"github.com/nmoran/gamedrop/pkg/game"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUpsertPromotions_CountsRepeats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	games := []game.FreeGame{{Title: "Hollow Depths", Namespace: "hd", ID: "hd-1"}}
	if err := s.UpsertPromotions(ctx, games); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := s.UpsertPromotions(ctx, games); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	promos, err := s.ListPromotions(ctx, ListOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(promos) != 1 {
		t.Fatalf("got %d promotions, want 1", len(promos))
	}
	if promos[0].TimesSeen != 2 {
		t.Errorf("TimesSeen = %d, want 2", promos[0].TimesSeen)
	}
	if promos[0].NormTitle != "hollow depths" {
		t.Errorf("NormTitle = %q", promos[0].NormTitle)
	}
}

func TestListPromotions_TitleFilter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.UpsertPromotions(ctx, []game.FreeGame{
		{Title: "Hollow Depths"},
		{Title: "Space Quest"},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	promos, err := s.ListPromotions(ctx, ListOpts{Title: "HOLLOW"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(promos) != 1 || promos[0].Title != "Hollow Depths" {
		t.Errorf("filtered list = %+v", promos)
	}
}

func TestRecordAndListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i, run := range []Run{
		{RanAt: time.Now().UTC().Add(-2 * time.Hour), GamesFound: 2},
		{RanAt: time.Now().UTC(), GamesFound: 3, Changed: true, Notified: true},
	} {
		if err := s.RecordRun(ctx, run); err != nil {
			t.Fatalf("record run %d: %v", i, err)
		}
	}

	runs, err := s.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if !runs[0].Changed || !runs[0].Notified {
		t.Errorf("newest run first expected, got %+v", runs[0])
	}
}
