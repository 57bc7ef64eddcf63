package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "json", Output: &buf}, "catalog-test")

	logger.Debug().Msg("hidden")
	logger.Info().Str("run_id", "abc").Msg("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line emitted at info level: %s", out)
	}
	for _, want := range []string{`"service":"catalog-test"`, `"run_id":"abc"`, `"message":"visible"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %s missing %s", out, want)
		}
	}
}

func TestAutoFormatOnBufferIsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Format: "auto", Output: &buf}, "svc")
	logger.Info().Msg("hello")
	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Fatalf("expected JSON line, got %q", buf.String())
	}
}
