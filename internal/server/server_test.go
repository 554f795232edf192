package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-shot-selection/internal/cache"
	"github.com/preston-bernstein/nba-shot-selection/internal/config"
	"github.com/preston-bernstein/nba-shot-selection/internal/metrics"
	"github.com/preston-bernstein/nba-shot-selection/internal/providers/fixture"
	"github.com/preston-bernstein/nba-shot-selection/internal/testutil"
)

func fixtureConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port:       "0",
		Provider:   config.ProviderConfig{Name: "fixture"},
		Cache:      config.CacheConfig{Backend: "fs", Dir: t.TempDir(), RepairCorrupt: true},
		DefaultTop: 5,
		CORS:       []string{"*"},
	}
}

func TestServerServesHealthAndComparison(t *testing.T) {
	cfg := fixtureConfig(t)
	logger, _ := testutil.NewBufferLogger()
	srv, err := newServerWithMetrics(cfg, logger, metrics.NewRecorder())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	defer srv.app.Close()

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.Serve(srv.Handler(), http.MethodGet, "/v1/comparison?team=New+York+Knicks&season=2024-25&top=3", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		Reference string `json:"reference"`
		Rows      []struct {
			Zone string `json:"zone"`
		} `json:"rows"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Reference != "League Average" || len(resp.Rows) == 0 {
		t.Fatalf("unexpected comparison %+v", resp)
	}

	entries, err := srv.app.Store.List(context.Background(), cache.KindTeamShotSet)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected team shot set cached, got %v %v", entries, err)
	}
}

func TestServerAdminRoutesRequireToken(t *testing.T) {
	cfg := fixtureConfig(t)
	srv, err := newServerWithMetrics(cfg, nil, metrics.NewRecorder())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/admin/cache", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	cfg.AdminToken = "secret"
	srv, err = newServerWithMetrics(cfg, nil, metrics.NewRecorder())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	rr = testutil.Serve(srv.Handler(), http.MethodGet, "/admin/cache", nil)
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestNewFailsWhenCacheBackendUnreachable(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Cache = config.CacheConfig{Backend: "redis", RedisAddr: "127.0.0.1:1"}
	if _, err := newServerWithMetrics(cfg, nil, metrics.NewRecorder()); err == nil {
		t.Fatalf("expected unreachable redis to fail construction")
	}
}

func TestNewServerWithMetricsHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := fixtureConfig(t)
	cfg.Metrics = config.MetricsConfig{Enabled: true}
	srv, err := newServerWithMetrics(cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if srv.metrics == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server on setup failure")
	}
}

func TestBuildMetricsSuccessPathSetsServerAndShutdown(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		rec, shutdown := testutil.NewRecorderWithShutdown()
		return rec, http.NewServeMux(), shutdown, nil
	}

	rec, srv, stop := buildMetrics(config.Config{
		Metrics: config.MetricsConfig{Enabled: true, Port: "9999"},
	}, nil, nil)

	if rec == nil || srv == nil || stop == nil {
		t.Fatalf("expected recorder, server, and shutdown to be set on success")
	}
	if srv.Addr() != ":9999" {
		t.Fatalf("expected metrics port, got %s", srv.Addr())
	}
}

func TestBuildMetricsUsesInjectedRecorder(t *testing.T) {
	rec := metrics.NewRecorder()
	got, srv, stop := buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: true}}, nil, rec)
	if got != rec || srv != nil || stop != nil {
		t.Fatalf("expected injected recorder with no metrics server")
	}
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	app, err := buildWithProvider(fixtureConfig(t), nil, metrics.NewRecorder(), fixture.New())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	httpSrv := &testutil.StubHTTPServer{AddrVal: ":0"}
	logger, buf := testutil.NewBufferLogger()
	srv := newServerWithDeps(config.Config{}, logger, app, httpSrv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	srv.Run(ctx, cancel)

	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected http shutdown once, got %d", httpSrv.ShutdownCalls)
	}
	if !strings.Contains(buf.String(), "shutdown complete") {
		t.Fatalf("expected shutdown log, got %s", buf.String())
	}
}

func TestGracefulShutdownLogsShutdownError(t *testing.T) {
	app, err := buildWithProvider(fixtureConfig(t), nil, metrics.NewRecorder(), fixture.New())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	httpSrv := &testutil.StubHTTPServer{ShutdownErr: errors.New("stuck")}
	logger, buf := testutil.NewBufferLogger()
	srv := newServerWithDeps(config.Config{}, logger, app, httpSrv)

	srv.gracefulShutdown()

	if !strings.Contains(buf.String(), "graceful shutdown failed") {
		t.Fatalf("expected shutdown failure logged, got %s", buf.String())
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	orig := shutdownTimeout
	shutdownTimeout = 20 * time.Millisecond
	defer func() { shutdownTimeout = orig }()

	app, err := buildWithProvider(fixtureConfig(t), nil, metrics.NewRecorder(), fixture.New())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	blocking := &testutil.BlockingHTTPServer{Unblock: make(chan struct{})}
	srv := newServerWithDeps(config.Config{}, nil, app, blocking)

	done := make(chan struct{})
	go func() {
		srv.gracefulShutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("expected shutdown to respect timeout")
	}
	if blocking.ShutdownCalls != 1 {
		t.Fatalf("expected one shutdown call, got %d", blocking.ShutdownCalls)
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, nil, &testutil.ErrHTTPServer{})
	stopped := make(chan struct{})
	srv.startServer(func() { close(stopped) })

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatalf("expected stop to be called on listen error")
	}
}

func TestLaunchServerIgnoresServerClosed(t *testing.T) {
	called := make(chan struct{}, 1)
	launchServer("http", &testutil.CloseableHTTPServer{}, nil, func(error) { called <- struct{}{} })

	select {
	case <-called:
		t.Fatalf("expected ErrServerClosed to be ignored")
	case <-time.After(50 * time.Millisecond):
	}
}
