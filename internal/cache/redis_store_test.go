package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ""), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	s, _ := newTestRedisStore(t)
	exerciseStore(t, s)
}

func TestRedisStoreKeysHaveNoTTL(t *testing.T) {
	s, mr := newTestRedisStore(t)
	key := LeagueBaselineKey("2024-25")
	if err := s.Put(context.Background(), key, Table{Baseline: sampleBaseline()}); err != nil {
		t.Fatalf("put: %v", err)
	}
	redisKey := DefaultRedisPrefix + key.String()
	if !mr.Exists(redisKey) {
		t.Fatalf("expected %s to exist", redisKey)
	}
	if ttl := mr.TTL(redisKey); ttl != 0 {
		t.Fatalf("expected no ttl, got %s", ttl)
	}
}

func TestRedisStoreCorruptEntryIsDataShapeError(t *testing.T) {
	s, mr := newTestRedisStore(t)
	key := TeamShotSetKey("New York Knicks", 5, "2024-25", "Playoffs")
	if err := mr.Set(DefaultRedisPrefix+key.String(), "{not json"); err != nil {
		t.Fatal(err)
	}
	_, err := s.Get(context.Background(), key)
	assertDataShape(t, err)
}

func TestRedisStoreRejectsEntryOfWrongKind(t *testing.T) {
	s, mr := newTestRedisStore(t)
	key := TeamShotSetKey("New York Knicks", 5, "2024-25", "Playoffs")
	if err := mr.Set(DefaultRedisPrefix+key.String(), `{"kind":"league_baseline"}`); err != nil {
		t.Fatal(err)
	}
	_, err := s.Get(context.Background(), key)
	assertDataShape(t, err)
}

func TestRedisStoreUnavailable(t *testing.T) {
	s, mr := newTestRedisStore(t)
	mr.Close()
	if _, err := s.Get(context.Background(), LeagueBaselineKey("2024-25")); err == nil {
		t.Fatalf("expected error when redis is down")
	}
}
