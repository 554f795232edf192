package providers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-shot-selection/internal/metrics"
	"github.com/preston-bernstein/nba-shot-selection/internal/teststubs"
	"github.com/preston-bernstein/nba-shot-selection/internal/testutil"
)

func TestInstrumentedProviderRecordsAttempts(t *testing.T) {
	rec := metrics.NewRecorder()
	inner := &teststubs.StubProvider{Errs: []error{nil, errors.New("boom")}}
	p := NewInstrumentedProvider(inner, rec, "stub", nil)

	if _, err := p.FindGames(context.Background(), 1, "2024-25", "Playoffs"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if _, err := p.GameStats(context.Background(), 1, "g1"); err == nil {
		t.Fatalf("expected error passthrough")
	}

	if got := rec.ProviderCalls("stub"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("stub"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
}

func TestInstrumentedProviderRecordsRateLimits(t *testing.T) {
	rec := metrics.NewRecorder()
	inner := &teststubs.StubProvider{Err: &RateLimitError{StatusCode: 429, RetryAfter: 2 * time.Second}}
	p := NewInstrumentedProvider(inner, rec, "stub", nil)

	_, _ = p.ShotEvents(context.Background(), 1, 0, "2024-25", "Playoffs")

	if got := rec.RateLimitHits("stub"); got != 1 {
		t.Fatalf("expected 1 rate limit hit, got %d", got)
	}
	if got := rec.LastRetryAfter("stub"); got != 2*time.Second {
		t.Fatalf("expected retry-after 2s, got %s", got)
	}
}

func TestInstrumentedProviderLogsFailures(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	inner := &teststubs.StubProvider{Err: errors.New("boom")}
	p := NewInstrumentedProvider(inner, nil, "stub", logger)

	_, _ = p.LeagueBaseline(context.Background(), "2024-25")

	out := buf.String()
	if !strings.Contains(out, "provider call failed") || !strings.Contains(out, "op=league_baseline") {
		t.Fatalf("expected failure log, got %q", out)
	}
}
