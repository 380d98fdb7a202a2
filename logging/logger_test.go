package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []Entry {
	t.Helper()
	var entries []Entry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLoggerFiltersBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("test", WARN, &buf)

	logger.Debug("sdk", "debug", nil)
	logger.Info("sdk", "info", nil)
	logger.Warn("sdk", "warn", map[string]any{"attempt": 1})
	logger.Error("sdk", "boom", errors.New("script blocked"), nil)

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Level != "WARN" || entries[0].Category != "sdk" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Error != "script blocked" {
		t.Fatalf("expected error text, got %+v", entries[1])
	}
}

func TestLoggerSubscribersReceiveEntries(t *testing.T) {
	logger := New("test", DEBUG)
	ch := make(chan Entry, 1)
	unsubscribe := logger.Subscribe(ch)

	logger.Info("signup", "launch", nil)
	select {
	case entry := <-ch:
		if entry.Message != "launch" {
			t.Fatalf("unexpected entry %+v", entry)
		}
	default:
		t.Fatal("subscriber did not receive entry")
	}

	unsubscribe()
	logger.Info("signup", "ignored", nil)
	select {
	case entry := <-ch:
		t.Fatalf("unexpected entry after unsubscribe: %+v", entry)
	default:
	}
}

func TestLogContextCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := New("test", INFO, &buf)

	logger.WithRequestID("session-1").WithCategory("signup").WithField("config_id", "cfg").Info("login started")

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	got := entries[0]
	if got.RequestID != "session-1" || got.Category != "signup" || got.Fields["config_id"] != "cfg" {
		t.Fatalf("unexpected entry %+v", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "", want: INFO},
		{in: "debug", want: DEBUG},
		{in: " Warning ", want: WARN},
		{in: "ERROR", want: ERROR},
		{in: "loud", want: INFO, wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("%q: unexpected error state %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %s got %s", tc.in, tc.want, got)
		}
	}
}

func TestDiscardWritesNothing(t *testing.T) {
	logger := Discard()
	ch := make(chan Entry, 1)
	logger.Subscribe(ch)
	logger.Error("sdk", "dropped", errors.New("x"), nil)
	select {
	case entry := <-ch:
		t.Fatalf("discard logger emitted %+v", entry)
	default:
	}
}

func TestHTTPMiddlewareLogsRequests(t *testing.T) {
	var buf bytes.Buffer
	logger := New("test", INFO, &buf)

	mux := http.NewServeMux()
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	handler := NewHTTPLogger(logger).Middleware(mux)

	req := httptest.NewRequest(http.MethodGet, "/missing?x=1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	requestID := rec.Header().Get(RequestIDHeader)
	if requestID == "" {
		t.Fatal("expected request id header")
	}
	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Level != "WARN" || entry.Category != "http" || entry.RequestID != requestID {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.Fields["path"] != "/missing" || entry.Fields["query"] != "x=1" || entry.Fields["component"] != "test" {
		t.Fatalf("unexpected fields %+v", entry.Fields)
	}
}

func TestHTTPMiddlewareKeepsIncomingRequestID(t *testing.T) {
	logger := New("test", INFO)
	handler := NewHTTPLogger(logger).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("expected propagated id, got %q", got)
	}
}
