package server

import (
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/preston-bernstein/nba-shot-selection/internal/cache"
	"github.com/preston-bernstein/nba-shot-selection/internal/config"
)

func TestBuildStoreSelectsBackend(t *testing.T) {
	dir := t.TempDir()

	store, closeFn, err := BuildStore(config.CacheConfig{Backend: "fs", Dir: dir}, nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	fs, ok := store.(*cache.FSStore)
	if !ok || fs.Root() != dir {
		t.Fatalf("expected fs store rooted at %s, got %T", dir, store)
	}
	if err := closeFn(); err != nil {
		t.Fatalf("expected no-op close, got %v", err)
	}

	store, _, err = BuildStore(config.CacheConfig{Backend: "memory"}, nil)
	if _, ok := store.(*cache.MemoryStore); !ok || err != nil {
		t.Fatalf("expected memory store, got %T %v", store, err)
	}

	store, _, err = BuildStore(config.CacheConfig{Backend: "tape", Dir: dir}, nil)
	if _, ok := store.(*cache.FSStore); !ok || err != nil {
		t.Fatalf("expected unknown backend to fall back to fs, got %T %v", store, err)
	}
}

func TestBuildStoreRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	store, closeFn, err := BuildStore(config.CacheConfig{Backend: "redis", RedisAddr: mr.Addr()}, nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if _, ok := store.(*cache.RedisStore); !ok {
		t.Fatalf("expected redis store, got %T", store)
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}
