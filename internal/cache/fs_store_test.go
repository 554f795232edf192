package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
)

func TestFSStoreRoundTrip(t *testing.T) {
	exerciseStore(t, NewFSStore(t.TempDir()))
}

func TestFSStoreWritesPartitionedParquetFiles(t *testing.T) {
	root := t.TempDir()
	s := NewFSStore(root)
	ctx := context.Background()

	keys := []Key{
		TeamShotSetKey("New York Knicks", 5, "2024-25", "Playoffs"),
		LeagueBaselineKey("2024-25"),
		OpponentShotSetKey("Indiana Pacers", "2024-25", "Playoffs"),
	}
	for _, k := range keys {
		table := Table{Shots: sampleShots()}
		if k.Kind == KindLeagueBaseline {
			table = Table{Baseline: sampleBaseline()}
		}
		if err := s.Put(ctx, k, table); err != nil {
			t.Fatalf("put %s: %v", k, err)
		}
	}

	for _, want := range []string{
		"team_shotsets/team_shots_new_york_knicks_top5_2024-25_playoffs.parquet",
		"league_baselines/league_avg_2024-25.parquet",
		"opponent_shotsets/opponent_shots_indiana_pacers_2024-25_playoffs.parquet",
	} {
		if _, err := os.Stat(filepath.Join(root, want)); err != nil {
			t.Fatalf("expected %s to exist: %v", want, err)
		}
	}

	leftovers, _ := filepath.Glob(filepath.Join(root, "*", "*.tmp"))
	if len(leftovers) != 0 {
		t.Fatalf("expected no temp files, found %v", leftovers)
	}
}

func TestFSStoreWrittenAtIsFileModTime(t *testing.T) {
	root := t.TempDir()
	s := NewFSStore(root)
	key := LeagueBaselineKey("2023-24")
	if err := s.Put(context.Background(), key, Table{Baseline: sampleBaseline()}); err != nil {
		t.Fatalf("put: %v", err)
	}

	old := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(filepath.Join(root, key.Path()), old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	table, err := s.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !table.WrittenAt.Equal(old) {
		t.Fatalf("expected written-at %v, got %v", old, table.WrittenAt)
	}
}

func TestFSStoreCorruptFileIsDataShapeError(t *testing.T) {
	root := t.TempDir()
	s := NewFSStore(root)
	key := TeamShotSetKey("New York Knicks", 5, "2024-25", "Playoffs")

	path := filepath.Join(root, key.Path())
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("definitely not parquet"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := s.Get(context.Background(), key)
	assertDataShape(t, err)
}

type uppercaseBaselineRow struct {
	Zone string `parquet:"SHOT_ZONE_BASIC"`
	FGA  int    `parquet:"FGA"`
}

type unflaggedShotRow struct {
	Zone     string `parquet:"shot_zone_basic"`
	PlayerID int    `parquet:"player_id"`
}

func writeParquetAt[T any](t *testing.T, root string, key Key, rows []T) {
	t.Helper()
	path := filepath.Join(root, key.Path())
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		t.Fatalf("write parquet: %v", err)
	}
}

func TestFSStoreMissingColumnsIsDataShapeError(t *testing.T) {
	root := t.TempDir()
	s := NewFSStore(root)

	baselineKey := LeagueBaselineKey("2024-25")
	writeParquetAt(t, root, baselineKey, []uppercaseBaselineRow{{Zone: "Mid-Range", FGA: 100}})
	_, err := s.Get(context.Background(), baselineKey)
	assertDataShape(t, err)
	for _, col := range []string{"shot_zone_basic", "fga", "fgm"} {
		if !strings.Contains(err.Error(), col) {
			t.Fatalf("expected %s to be reported missing, got %v", col, err)
		}
	}

	shotKey := TeamShotSetKey("New York Knicks", 5, "2024-25", "Playoffs")
	writeParquetAt(t, root, shotKey, []unflaggedShotRow{
		{Zone: "Restricted Area", PlayerID: 1628973},
		{Zone: "Mid-Range", PlayerID: 1628404},
	})
	_, err = s.Get(context.Background(), shotKey)
	assertDataShape(t, err)
	if !strings.Contains(err.Error(), "shot_made_flag") {
		t.Fatalf("expected shot_made_flag to be reported missing, got %v", err)
	}
	if strings.Contains(err.Error(), "player_id") {
		t.Fatalf("present column reported missing: %v", err)
	}
}

func TestFSStoreRejectsInvalidKeysAndCanceledContext(t *testing.T) {
	s := NewFSStore(t.TempDir())
	if err := s.Put(context.Background(), Key{Kind: KindTeamShotSet}, Table{}); err == nil {
		t.Fatalf("expected invalid key to be rejected")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Get(ctx, LeagueBaselineKey("2024-25")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestFSStoreListIgnoresForeignFiles(t *testing.T) {
	root := t.TempDir()
	s := NewFSStore(root)
	dir := filepath.Join(root, KindLeagueBaseline.Dir())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	_ = os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)

	entries, err := s.List(context.Background(), KindLeagueBaseline)
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty listing, got %+v err %v", entries, err)
	}

	entries, err = s.List(context.Background(), KindOpponentShotSet)
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty listing for missing dir, got %+v err %v", entries, err)
	}
}

func TestNilFSStore(t *testing.T) {
	var s *FSStore
	if _, err := s.Get(context.Background(), LeagueBaselineKey("2024-25")); err == nil {
		t.Fatalf("expected error from nil store")
	}
	if s.Root() != "" {
		t.Fatalf("expected empty root for nil store")
	}
}
