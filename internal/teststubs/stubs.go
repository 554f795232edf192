package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain/games"
	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
)

// StubProvider is a test double for providers.StatsProvider.
// Errs are returned one per call, in order, before falling back to Err;
// a nil entry lets that call succeed.
type StubProvider struct {
	Games    []games.ID
	Stats    map[games.ID]games.Stats
	Shots    shots.Set
	Baseline []shots.BaselineRow
	Err      error
	Errs     []error
	Calls    atomic.Int32
	Notify   chan struct{}

	mu        sync.Mutex
	ops       []string
	playerIDs []int
	gameIDs   []games.ID
}

// FindGames returns the configured game IDs.
func (s *StubProvider) FindGames(ctx context.Context, teamID int, season, seasonType string) ([]games.ID, error) {
	_ = ctx
	_, _, _ = teamID, season, seasonType
	if err := s.record("find_games"); err != nil {
		return nil, err
	}
	return s.Games, nil
}

// GameStats returns the configured stats table for the game, or an empty table.
func (s *StubProvider) GameStats(ctx context.Context, teamID int, gameID games.ID) (games.Stats, error) {
	_ = ctx
	_ = teamID
	s.mu.Lock()
	s.gameIDs = append(s.gameIDs, gameID)
	s.mu.Unlock()
	if err := s.record("game_stats"); err != nil {
		return games.Stats{}, err
	}
	if stats, ok := s.Stats[gameID]; ok {
		return stats, nil
	}
	return games.Stats{GameID: gameID}, nil
}

// ShotEvents returns the configured shot set and records the requested player.
func (s *StubProvider) ShotEvents(ctx context.Context, teamID, playerID int, season, seasonType string) (shots.Set, error) {
	_ = ctx
	_, _, _ = teamID, season, seasonType
	s.mu.Lock()
	s.playerIDs = append(s.playerIDs, playerID)
	s.mu.Unlock()
	if err := s.record("shot_events"); err != nil {
		return nil, err
	}
	return s.Shots, nil
}

// LeagueBaseline returns the configured baseline rows.
func (s *StubProvider) LeagueBaseline(ctx context.Context, season string) ([]shots.BaselineRow, error) {
	_ = ctx
	_ = season
	if err := s.record("league_baseline"); err != nil {
		return nil, err
	}
	return s.Baseline, nil
}

// CalledOps returns the operations invoked so far, in call order.
func (s *StubProvider) CalledOps() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ops...)
}

// ShotPlayerIDs returns the player arguments passed to ShotEvents.
func (s *StubProvider) ShotPlayerIDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.playerIDs...)
}

// StatsGameIDs returns the game arguments passed to GameStats, in call order.
func (s *StubProvider) StatsGameIDs() []games.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]games.ID(nil), s.gameIDs...)
}

func (s *StubProvider) record(op string) error {
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, op)
	if len(s.Errs) > 0 {
		err := s.Errs[0]
		s.Errs = s.Errs[1:]
		return err
	}
	return s.Err
}
