package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLogger(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/spells", nil)
	rr := httptest.NewRecorder()
	Logger(log, inner).ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Errorf("expected inner status passed through, got %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected a generated request ID")
	}
}

func TestLoggerKeepsCallerRequestID(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	rr := httptest.NewRecorder()
	Logger(log, inner).ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-ID"); got != "trace-123" {
		t.Errorf("expected caller request ID echoed, got %q", got)
	}
}
