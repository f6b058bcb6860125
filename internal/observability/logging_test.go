package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/sandeepkv93/fraudguard/internal/config"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	return line
}

func TestTraceContextHandlerAddsIDs(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(&traceContextHandler{next: slog.NewJSONHandler(&buf, nil)})

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1, 2, 3},
		SpanID:     trace.SpanID{4, 5, 6},
		TraceFlags: trace.FlagsSampled,
	})
	l.InfoContext(trace.ContextWithSpanContext(context.Background(), sc), "hello", "k", "v")

	line := decodeLine(t, &buf)
	if line["trace_id"] != sc.TraceID().String() || line["span_id"] != sc.SpanID().String() {
		t.Fatalf("unexpected trace ids: %v", line)
	}
	if line["k"] != "v" {
		t.Fatalf("expected attrs to survive: %v", line)
	}
}

func TestTraceContextHandlerSkipsIDsOutsideSpan(t *testing.T) {
	var buf bytes.Buffer
	slog.New(&traceContextHandler{next: slog.NewJSONHandler(&buf, nil)}).Info("no span")
	line := decodeLine(t, &buf)
	if _, ok := line["trace_id"]; ok {
		t.Fatalf("expected no trace id outside a span: %v", line)
	}
}

func TestRedactingHandlerScrubsSecrets(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(&redactingHandler{next: slog.NewJSONHandler(&buf, nil)}).With("Password", "user123")
	l.Info("submit",
		"email", "user@example.com",
		slog.Group("card", "card_number", "4111111111111111", "cvv", "cvv-123", "last4", "1111"),
	)

	out := buf.String()
	for _, secret := range []string{"user123", "4111111111111111", "cvv-123"} {
		if strings.Contains(out, secret) {
			t.Fatalf("log line leaks %q: %s", secret, out)
		}
	}
	line := decodeLine(t, &buf)
	card := line["card"].(map[string]any)
	if card["last4"] != "1111" || card["cvv"] != redacted || line["Password"] != redacted {
		t.Fatalf("unexpected redaction result: %v", line)
	}
	if line["email"] != "user@example.com" {
		t.Fatalf("non-sensitive attrs must pass through: %v", line)
	}
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }

func TestFanoutHandlerDeliversDespiteFailingSink(t *testing.T) {
	var a, b bytes.Buffer
	h := &fanoutHandler{handlers: []slog.Handler{
		failingHandler{slog.NewJSONHandler(&a, nil)},
		slog.NewJSONHandler(&b, nil),
	}}
	err := h.WithAttrs([]slog.Attr{slog.String("svc", "fraudguard")}).Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "x", 0))
	if err == nil {
		t.Fatal("expected the failing sink to be reported")
	}
	if !bytes.Contains(b.Bytes(), []byte(`"svc":"fraudguard"`)) {
		t.Fatalf("expected the healthy sink to receive the record: %s", b.String())
	}
}

func TestFanoutHandlerRespectsLevels(t *testing.T) {
	var debug, warn bytes.Buffer
	h := &fanoutHandler{handlers: []slog.Handler{
		slog.NewJSONHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}}
	slog.New(h).Debug("verbose")
	if debug.Len() == 0 || warn.Len() != 0 {
		t.Fatalf("unexpected fanout: debug=%q warn=%q", debug.String(), warn.String())
	}
}

func TestNewHandlerWithoutOTelLogs(t *testing.T) {
	var buf bytes.Buffer
	h := newHandler(&config.Config{OTELServiceName: "fraudguard"}, slog.NewJSONHandler(&buf, nil), nil)
	slog.New(h).Info("signin", "cvv", "cvv-secret-value")
	if strings.Contains(buf.String(), "cvv-secret-value") {
		t.Fatalf("expected redaction on the stdout sink: %s", buf.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{"debug": slog.LevelDebug, "warn": slog.LevelWarn, "error": slog.LevelError, "": slog.LevelInfo, "loud": slog.LevelInfo}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q)=%v want %v", in, got, want)
		}
	}
}
