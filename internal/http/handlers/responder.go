package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain"
	"github.com/preston-bernstein/nba-shot-selection/internal/http/middleware"
	"github.com/preston-bernstein/nba-shot-selection/internal/logging"
	"github.com/preston-bernstein/nba-shot-selection/internal/providers"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeDomainError maps pipeline failures onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.Error(logger, "request failed", err, slog.Int(logging.FieldStatusCode, status))
	} else {
		logging.Info(logger, "request rejected", slog.String(logging.FieldError, err.Error()), slog.Int(logging.FieldStatusCode, status))
	}
	writeError(w, r, status, message, logger)
}

func statusFor(err error) (int, string) {
	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, err.Error()
	case domain.IsValidation(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, providers.ErrProviderUnavailable):
		return http.StatusServiceUnavailable, "stats provider unavailable"
	case domain.IsUpstream(err):
		return http.StatusBadGateway, "stats provider request failed"
	case domain.IsDataShape(err):
		return http.StatusInternalServerError, "stored or upstream data is malformed"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request timed out"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
