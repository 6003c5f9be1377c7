package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := WithInvocation(WithComponent(New("debug", "json", &buf), "runner"), "abc")

	l.Debug("dispatch", "shape", "single")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["component"] != "runner" {
		t.Errorf("component = %v, want runner", entry["component"])
	}
	if entry["invocation_id"] != "abc" {
		t.Errorf("invocation_id = %v, want abc", entry["invocation_id"])
	}
	if entry["shape"] != "single" {
		t.Errorf("shape = %v, want single", entry["shape"])
	}
}

func TestNew_TextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New("warn", "text", &buf)

	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %q", out)
	}
	if !strings.Contains(out, "msg=shown") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("Discard() logger should not be enabled at any level")
	}
	WithComponent(nil, "x").Error("dropped")
}
