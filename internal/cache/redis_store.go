package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain"
)

// DefaultRedisPrefix namespaces cache keys in a shared Redis.
const DefaultRedisPrefix = "nba-shot-selection:cache:"

const scanBatch = 100

// RedisStore keeps JSON-encoded tables in Redis. Keys never expire; staleness
// is decided by the caller's Policy.
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisStore constructs a Redis-backed store. An empty prefix uses DefaultRedisPrefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

// Get reads the table stored under key.
func (s *RedisStore) Get(ctx context.Context, key Key) (Table, error) {
	if err := key.Validate(); err != nil {
		return Table{}, err
	}
	data, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Table{}, ErrMiss
	}
	if err != nil {
		return Table{}, fmt.Errorf("reading %s: %w", key, err)
	}

	var payload Table
	if err := json.Unmarshal(data, &payload); err != nil {
		return Table{}, &domain.DataShapeError{Table: key.String(), Reason: "undecodable cache entry", Err: err}
	}
	if payload.Kind != key.Kind {
		return Table{}, &domain.DataShapeError{Table: key.String(), Reason: fmt.Sprintf("entry holds kind %q", payload.Kind)}
	}
	return payload, nil
}

// Put replaces the table stored under key.
func (s *RedisStore) Put(ctx context.Context, key Key, table Table) error {
	if err := key.Validate(); err != nil {
		return err
	}
	table.Kind = key.Kind
	table.WrittenAt = s.now().UTC()
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", key, err)
	}
	return s.client.Set(ctx, s.redisKey(key), data, 0).Err()
}

// Delete removes the table stored under key.
func (s *RedisStore) Delete(ctx context.Context, key Key) error {
	return s.client.Del(ctx, s.redisKey(key)).Err()
}

// List returns the tables stored for kind, sorted by name.
func (s *RedisStore) List(ctx context.Context, kind Kind) ([]Entry, error) {
	keys, err := s.scan(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		name := strings.TrimPrefix(k, s.prefix+string(kind)+"/")
		entry := Entry{Kind: kind, Name: name}
		data, err := s.client.Get(ctx, k).Bytes()
		if err == nil {
			var payload Table
			if json.Unmarshal(data, &payload) == nil {
				entry.WrittenAt = payload.WrittenAt
			}
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Purge deletes every table of kind.
func (s *RedisStore) Purge(ctx context.Context, kind Kind) (int, error) {
	keys, err := s.scan(ctx, kind)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	n, err := s.client.Del(ctx, keys...).Result()
	return int(n), err
}

func (s *RedisStore) scan(ctx context.Context, kind Kind) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	match := s.prefix + string(kind) + "/*"
	for {
		batch, next, err := s.client.Scan(ctx, cursor, match, scanBatch).Result()
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", kind, err)
		}
		keys = append(keys, batch...)
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}

func (s *RedisStore) redisKey(key Key) string {
	return s.prefix + key.String()
}
