package cache

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
)

func sampleShots() shots.Set {
	return shots.Set{
		{GameID: "0042400311", GameEventID: 7, PlayerID: 1628973, PlayerName: "Jalen Brunson", Period: 1,
			ActionType: "Driving Layup Shot", ShotType: "2PT Field Goal", Zone: "Restricted Area",
			ZoneArea: "Center(C)", ZoneRange: "Less Than 8 ft.", Distance: 1, LocX: -5, LocY: 12, Made: true},
		{GameID: "0042400311", GameEventID: 9, PlayerID: 1628404, PlayerName: "Josh Hart", Period: 2,
			ActionType: "Jump Shot", ShotType: "3PT Field Goal", Zone: "Above the Break 3",
			ZoneArea: "Left Side Center(LC)", ZoneRange: "24+ ft.", Distance: 25, LocX: -120.5, LocY: 220.25},
	}
}

func sampleBaseline() []shots.BaselineRow {
	return []shots.BaselineRow{
		{Zone: "Mid-Range", ZoneArea: "Left Side(L)", ZoneRange: "8-16 ft.", Attempts: 1000, Makes: 420, FGPct: 0.42},
		{Zone: "Restricted Area", ZoneArea: "Center(C)", ZoneRange: "Less Than 8 ft.", Attempts: 5000, Makes: 3200, FGPct: 0.64},
	}
}

// exerciseStore runs the behavior every Store implementation must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	teamKey := TeamShotSetKey("New York Knicks", 5, "2024-25", "Playoffs")
	leagueKey := LeagueBaselineKey("2024-25")

	if _, err := s.Get(ctx, teamKey); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss before write, got %v", err)
	}

	if err := s.Put(ctx, teamKey, Table{Shots: sampleShots()}); err != nil {
		t.Fatalf("put shots: %v", err)
	}
	if err := s.Put(ctx, leagueKey, Table{Baseline: sampleBaseline()}); err != nil {
		t.Fatalf("put baseline: %v", err)
	}

	got, err := s.Get(ctx, teamKey)
	if err != nil {
		t.Fatalf("get shots: %v", err)
	}
	if !reflect.DeepEqual(got.Shots, sampleShots()) {
		t.Fatalf("shot round trip mismatch:\n got %+v\nwant %+v", got.Shots, sampleShots())
	}
	if got.Kind != KindTeamShotSet || got.WrittenAt.IsZero() {
		t.Fatalf("expected kind and write time, got %s %v", got.Kind, got.WrittenAt)
	}

	base, err := s.Get(ctx, leagueKey)
	if err != nil {
		t.Fatalf("get baseline: %v", err)
	}
	if !reflect.DeepEqual(base.Baseline, sampleBaseline()) {
		t.Fatalf("baseline round trip mismatch: %+v", base.Baseline)
	}

	replacement := sampleShots()[:1]
	if err := s.Put(ctx, teamKey, Table{Shots: replacement}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, _ = s.Get(ctx, teamKey)
	if len(got.Shots) != 1 {
		t.Fatalf("expected whole-table replacement, got %d rows", len(got.Shots))
	}

	entries, err := s.List(ctx, KindTeamShotSet)
	if err != nil || len(entries) != 1 || entries[0].Name != teamKey.Name() {
		t.Fatalf("unexpected list %+v err %v", entries, err)
	}

	if err := s.Delete(ctx, teamKey); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, teamKey); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss after delete, got %v", err)
	}
	if err := s.Delete(ctx, teamKey); err != nil {
		t.Fatalf("expected deleting a missing key to succeed, got %v", err)
	}

	n, err := s.Purge(ctx, KindLeagueBaseline)
	if err != nil || n != 1 {
		t.Fatalf("expected one purged baseline, got %d err %v", n, err)
	}
	if _, err := s.Get(ctx, leagueKey); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss after purge, got %v", err)
	}
}

func assertDataShape(t *testing.T, err error) {
	t.Helper()
	var ds *domain.DataShapeError
	if !errors.As(err, &ds) {
		t.Fatalf("expected DataShapeError, got %v", err)
	}
}
