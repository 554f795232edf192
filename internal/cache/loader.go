package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain"
	"github.com/preston-bernstein/nba-shot-selection/internal/logging"
	"github.com/preston-bernstein/nba-shot-selection/internal/metrics"
)

// Policy decides when a stored table may be served.
// A zero MaxAge never treats a table as stale.
type Policy struct {
	MaxAge        time.Duration
	ForceRefresh  bool
	RepairCorrupt bool
}

// Stale reports whether a table written at writtenAt is too old to serve at now.
func (p Policy) Stale(writtenAt, now time.Time) bool {
	return p.MaxAge > 0 && now.Sub(writtenAt) > p.MaxAge
}

// ComputeFunc produces a table on a cache miss.
type ComputeFunc func(ctx context.Context) (Table, error)

// Loader wraps a Store with check, compute and store semantics.
// Identical concurrent loads in one process share a single computation, and
// forced refreshes never join a non-forced load. Each caller stops waiting when
// its own context ends. Separate processes may both compute and write, which
// only replaces the table with equivalent content.
type Loader struct {
	store    Store
	recorder *metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
	group    singleflight.Group
}

// NewLoader constructs a Loader over store.
func NewLoader(store Store, recorder *metrics.Recorder, logger *slog.Logger) *Loader {
	return &Loader{
		store:    store,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Store exposes the underlying store.
func (l *Loader) Store() Store { return l.store }

// Fetch returns the table stored under key, or computes, stores and returns it
// when the key is missing, stale, forced, or corrupt with repair enabled.
func (l *Loader) Fetch(ctx context.Context, key Key, policy Policy, compute ComputeFunc) (Table, error) {
	if err := key.Validate(); err != nil {
		return Table{}, err
	}
	if l.store == nil {
		return Table{}, errors.New("cache store not configured")
	}
	flight := key.String()
	if policy.ForceRefresh {
		flight += "#refresh"
	}
	for attempt := 0; ; attempt++ {
		ch := l.group.DoChan(flight, func() (any, error) {
			return l.load(ctx, key, policy, compute)
		})
		select {
		case <-ctx.Done():
			return Table{}, ctx.Err()
		case res := <-ch:
			if res.Err != nil {
				// A joined load can fail on another caller's cancellation; run it
				// again once under this caller's context.
				if res.Shared && attempt == 0 && ctx.Err() == nil && isContextErr(res.Err) {
					continue
				}
				return Table{}, res.Err
			}
			return cloneTable(res.Val.(Table)), nil
		}
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (l *Loader) load(ctx context.Context, key Key, policy Policy, compute ComputeFunc) (Table, error) {
	logger := logging.FromContext(ctx, l.logger)
	if logger != nil {
		logger = logger.With(slog.String(logging.FieldCacheKey, key.String()))
	}

	if !policy.ForceRefresh {
		table, err := l.store.Get(ctx, key)
		switch {
		case err == nil:
			if !policy.Stale(table.WrittenAt, l.now()) {
				l.recorder.RecordCacheLookup(string(key.Kind), metrics.CacheHit)
				logging.Debug(logger, "cache hit", logging.FieldCount, table.Rows())
				return table, nil
			}
			l.recorder.RecordCacheLookup(string(key.Kind), metrics.CacheStale)
			logging.Info(logger, "cache entry stale", "written_at", table.WrittenAt, "max_age", policy.MaxAge.String())
		case errors.Is(err, ErrMiss):
			l.recorder.RecordCacheLookup(string(key.Kind), metrics.CacheMiss)
			logging.Info(logger, "cache miss")
		case domain.IsDataShape(err):
			l.recorder.RecordCacheLookup(string(key.Kind), metrics.CacheCorrupt)
			if !policy.RepairCorrupt {
				logging.Error(logger, "cache entry corrupt", err)
				return Table{}, err
			}
			logging.Warn(logger, "cache entry corrupt, recomputing", logging.FieldError, err)
			if err := l.store.Delete(ctx, key); err != nil {
				return Table{}, err
			}
		default:
			return Table{}, err
		}
	} else {
		logging.Info(logger, "cache refresh forced")
	}

	table, err := compute(ctx)
	if err != nil {
		return Table{}, err
	}
	table.Kind = key.Kind
	if err := l.store.Put(ctx, key, table); err != nil {
		return Table{}, err
	}
	table.WrittenAt = l.now()
	logging.Info(logger, "cache entry written", logging.FieldCount, table.Rows())
	return table, nil
}
