package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	return rec
}

func TestLoggerAddsComponentOnce(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Format: "json", Writer: &buf, Component: ComponentLedger})

	l.WithComponent(ComponentCache).Info("purged", "entries", 3)

	rec := decodeLine(t, &buf)
	if rec[FieldComponent] != ComponentCache {
		t.Errorf("component = %v, want %s", rec[FieldComponent], ComponentCache)
	}
	if strings.Count(buf.String(), `"component"`) != 1 {
		t.Errorf("component repeated: %s", buf.String())
	}
}

func TestTextFormatUsesTint(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Format: "text", Writer: &buf})
	l.Debug("hidden")
	l.Info("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Format: "json", Writer: &buf})
	sl := NewStructuredLogger(l)

	r := httptest.NewRequest("DELETE", "/api/expenses/9", nil)
	sl.LogHTTPEnd(context.Background(), r, 404, 3, "10.0.0.1")
	rec := decodeLine(t, &buf)
	if rec["level"] != "WARN" || rec[FieldStatusCode] != float64(404) || rec[FieldSuccess] != false {
		t.Errorf("LogHTTPEnd record = %v", rec)
	}

	buf.Reset()
	sl.LogError(context.Background(), "save failed", errors.New("disk full"), ComponentStorage, nil)
	rec = decodeLine(t, &buf)
	if rec[FieldError] != "disk full" || rec[FieldComponent] != ComponentStorage {
		t.Errorf("LogError record = %v", rec)
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	l := FromContext(context.Background())
	if l == nil || l.Component() != ComponentApp {
		t.Fatalf("FromContext() = %+v", l)
	}
	custom := New(Config{Format: "json", Writer: &bytes.Buffer{}, Component: ComponentHTTP})
	if got := FromContext(NewContext(context.Background(), custom)); got != custom {
		t.Errorf("FromContext returned a different logger")
	}
}

func TestMiddlewareInstallsLogger(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Format: "json", Writer: &buf})
	reqLogger := base.With(NewFields().WithRequestID("req_1").ToSlice()...)

	h := Middleware(reqLogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if FromContext(r.Context()) != reqLogger {
			t.Error("handler did not receive the request logger")
		}
		FromContext(r.Context()).Info("handled")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	rec := decodeLine(t, &buf)
	if rec[FieldRequestID] != "req_1" {
		t.Errorf("record = %v, want request_id req_1", rec)
	}
}

func TestWithRequestIDSkipsEmpty(t *testing.T) {
	if f := NewFields().WithRequestID(""); len(f) != 0 {
		t.Errorf("fields = %v, want empty", f)
	}
}
