package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/nba-shot-selection/internal/cache"
	"github.com/preston-bernstein/nba-shot-selection/internal/http/requestutil"
	"github.com/preston-bernstein/nba-shot-selection/internal/logging"
)

// AdminHandler exposes token-guarded cache maintenance endpoints.
type AdminHandler struct {
	store  cache.Store
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token rejects every request.
func NewAdminHandler(store cache.Store, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{store: store, token: token, logger: logger}
}

// ListCache lists stored tables, optionally limited to ?kind=.
func (h *AdminHandler) ListCache(w http.ResponseWriter, r *http.Request) {
	kinds, ok := h.begin(w, r)
	if !ok {
		return
	}
	logger := loggerFromContext(r, h.logger)
	entries := make([]cache.Entry, 0)
	for _, kind := range kinds {
		got, err := h.store.List(r.Context(), kind)
		if err != nil {
			logging.Error(logger, "admin cache list failed", err, slog.String("kind", string(kind)))
			writeError(w, r, http.StatusInternalServerError, "failed to list cache", logger)
			return
		}
		entries = append(entries, got...)
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries, "count": len(entries)}, logger)
}

// PurgeCache deletes stored tables, optionally limited to ?kind=.
func (h *AdminHandler) PurgeCache(w http.ResponseWriter, r *http.Request) {
	kinds, ok := h.begin(w, r)
	if !ok {
		return
	}
	logger := loggerFromContext(r, h.logger)
	removed := 0
	for _, kind := range kinds {
		n, err := h.store.Purge(r.Context(), kind)
		removed += n
		if err != nil {
			logging.Error(logger, "admin cache purge failed", err, slog.String("kind", string(kind)))
			writeError(w, r, http.StatusInternalServerError, "failed to purge cache", logger)
			return
		}
	}
	logging.Info(logger, "admin cache purged", slog.Int(logging.FieldCount, removed))
	writeJSON(w, http.StatusOK, map[string]any{"removed": removed, "status": "ok"}, logger)
}

func (h *AdminHandler) begin(w http.ResponseWriter, r *http.Request) ([]cache.Kind, bool) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return nil, false
	}
	if h.store == nil {
		writeError(w, r, http.StatusServiceUnavailable, "cache store not configured", h.logger)
		return nil, false
	}
	raw := strings.TrimSpace(r.URL.Query().Get("kind"))
	if raw == "" {
		return cache.Kinds, true
	}
	kind, err := cache.ParseKind(raw)
	if err != nil {
		writeDomainError(w, r, err, loggerFromContext(r, h.logger))
		return nil, false
	}
	return []cache.Kind{kind}, true
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}
