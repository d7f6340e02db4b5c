package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/verte-zerg/corpstat/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":  slog.LevelDebug,
		" WARN ": slog.LevelWarn,
		"error":  slog.LevelError,
		"info":   slog.LevelInfo,
		"":       slog.LevelInfo,
		"bogus":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestNewLoggerJSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := NewLogger(&buf, config.LogConfig{Level: "info", Format: "json"})
	logger.Debug("hidden")
	logger.Info("parsed", slog.Int("words", 3))

	line := strings.TrimSpace(buf.String())
	if strings.Contains(line, "hidden") {
		t.Fatalf("debug record should be filtered: %s", line)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		t.Fatalf("expected one json line, got %q: %v", line, err)
	}
	if rec["msg"] != "parsed" || rec["words"] != float64(3) {
		t.Fatalf("unexpected record %v", rec)
	}
	if slog.Default() != logger {
		t.Fatalf("logger should be installed as default")
	}
}

func TestNewLoggerText(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	NewLogger(&buf, config.LogConfig{Level: "warn", Format: "text"})
	slog.Info("quiet")
	slog.Warn("loud")
	out := buf.String()
	if strings.Contains(out, "quiet") || !strings.Contains(out, "msg=loud") {
		t.Fatalf("unexpected output %q", out)
	}
}
