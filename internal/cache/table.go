package cache

import (
	"context"
	"errors"
	"time"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
)

// ErrMiss reports that no table is stored under a key.
var ErrMiss = errors.New("cache miss")

// Table is a cached table. Shot-set kinds fill Shots; the baseline kind fills Baseline.
type Table struct {
	Kind      Kind                `json:"kind"`
	WrittenAt time.Time           `json:"writtenAt"`
	Shots     shots.Set           `json:"shots,omitempty"`
	Baseline  []shots.BaselineRow `json:"baseline,omitempty"`
}

// Rows returns the number of rows held by the table.
func (t Table) Rows() int {
	if t.Kind == KindLeagueBaseline {
		return len(t.Baseline)
	}
	return len(t.Shots)
}

// Entry describes one stored table without loading it.
type Entry struct {
	Kind      Kind      `json:"kind"`
	Name      string    `json:"name"`
	WrittenAt time.Time `json:"writtenAt"`
}

// Store persists tables by key. Writes replace the whole table.
// Get returns ErrMiss when the key is absent and a *domain.DataShapeError when
// the stored bytes cannot be decoded.
type Store interface {
	Get(ctx context.Context, key Key) (Table, error)
	Put(ctx context.Context, key Key, table Table) error
	Delete(ctx context.Context, key Key) error
	List(ctx context.Context, kind Kind) ([]Entry, error)
	Purge(ctx context.Context, kind Kind) (int, error)
}

func cloneTable(t Table) Table {
	out := t
	if t.Shots != nil {
		out.Shots = append(shots.Set(nil), t.Shots...)
	}
	if t.Baseline != nil {
		out.Baseline = append([]shots.BaselineRow(nil), t.Baseline...)
	}
	return out
}
