package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

type captureHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	h.records = append(h.records, r)
	h.mu.Unlock()
	return nil
}
func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

func (h *captureHandler) requestRecords() []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []slog.Record
	for _, r := range h.records {
		if r.Message == "http.request" {
			out = append(out, r)
		}
	}
	return out
}

func TestStructuredRequestLoggerInfoAndErrorLevels(t *testing.T) {
	capture := &captureHandler{}
	r := chi.NewRouter()
	r.Use(StructuredRequestLogger(slog.New(capture)))
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) })

	reqOK := httptest.NewRequest(http.MethodGet, "/ok", nil)
	reqOK.RemoteAddr = "198.51.100.10:3456"
	r.ServeHTTP(httptest.NewRecorder(), reqOK)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	records := capture.requestRecords()
	if len(records) != 2 {
		t.Fatalf("expected 2 log records, got %d", len(records))
	}
	if records[0].Level != slog.LevelInfo || records[1].Level != slog.LevelError {
		t.Fatalf("unexpected levels: %v %v", records[0].Level, records[1].Level)
	}

	attrs := recordAttrs(records[0])
	if attrs["route"] != "/ok" || attrs["status"] != "200" {
		t.Fatalf("expected route/status attrs for success, got route=%q status=%q", attrs["route"], attrs["status"])
	}
	if attrs["client_ip"] == "" || attrs["duration_ms"] == "" {
		t.Fatalf("expected client_ip/duration attrs, got %+v", attrs)
	}
	if _, ok := attrs["session_id"]; ok {
		t.Fatal("expected no session id without the session loader")
	}
}

func TestStructuredRequestLoggerStatusFallbackTo200(t *testing.T) {
	capture := &captureHandler{}
	h := StructuredRequestLogger(slog.New(capture))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/none", nil))

	records := capture.requestRecords()
	if len(records) != 1 {
		t.Fatalf("expected one log record, got %d", len(records))
	}
	if got := recordAttrs(records[0])["status"]; got != "200" {
		t.Fatalf("expected fallback status 200, got %q", got)
	}
}

func TestStructuredRequestLoggerTagsSession(t *testing.T) {
	capture := &captureHandler{}
	loader, _ := newSessionLoaderForTest(t)
	h := StructuredRequestLogger(slog.New(capture))(loader.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))

	records := capture.requestRecords()
	if len(records) != 1 || recordAttrs(records[0])["session_id"] == "" {
		t.Fatalf("expected a session id on the request log, got %d records", len(records))
	}
}

func recordAttrs(rec slog.Record) map[string]string {
	out := map[string]string{}
	rec.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.String()
		return true
	})
	return out
}

func TestRequestLogLevel(t *testing.T) {
	cases := []struct {
		path   string
		status int
		want   slog.Level
	}{
		{"/api/v1/me", http.StatusOK, slog.LevelInfo},
		{"/api/v1/enrollment/code", http.StatusUnprocessableEntity, slog.LevelInfo},
		{"/health/ready", http.StatusOK, slog.LevelDebug},
		{"/health/ready", http.StatusServiceUnavailable, slog.LevelError},
		{"/dashboard", http.StatusInternalServerError, slog.LevelError},
	}
	for _, tc := range cases {
		if got := requestLogLevel(tc.path, tc.status); got != tc.want {
			t.Fatalf("requestLogLevel(%q, %d)=%v want %v", tc.path, tc.status, got, tc.want)
		}
	}
}
