package cache

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps tables in a thread-safe process-local map.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[Key]Table
	now    func() time.Time
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[Key]Table),
		now:    time.Now,
	}
}

// Get retrieves a copy of the table stored under key.
func (s *MemoryStore) Get(ctx context.Context, key Key) (Table, error) {
	if err := ctx.Err(); err != nil {
		return Table{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[key]
	if !ok {
		return Table{}, ErrMiss
	}
	return cloneTable(t), nil
}

// Put replaces the table stored under key and stamps its write time.
func (s *MemoryStore) Put(ctx context.Context, key Key, table Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := key.Validate(); err != nil {
		return err
	}
	stored := cloneTable(table)
	stored.Kind = key.Kind
	stored.WrittenAt = s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[key] = stored
	return nil
}

// Delete removes the table stored under key.
func (s *MemoryStore) Delete(ctx context.Context, key Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, key)
	return nil
}

// List returns the tables stored for kind, sorted by name.
func (s *MemoryStore) List(ctx context.Context, kind Kind) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.tables))
	for k, t := range s.tables {
		if k.Kind != kind {
			continue
		}
		out = append(out, Entry{Kind: kind, Name: k.Name(), WrittenAt: t.WrittenAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Purge deletes every table of kind.
func (s *MemoryStore) Purge(ctx context.Context, kind Kind) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k := range s.tables {
		if k.Kind == kind {
			delete(s.tables, k)
			removed++
		}
	}
	return removed, nil
}
