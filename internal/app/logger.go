// Package app holds process-wide setup shared by the commands.
package app

import (
	"io"
	"log/slog"
	"strings"

	"github.com/verte-zerg/corpstat/internal/config"
)

// NewLogger creates a *slog.Logger writing to w based on cfg and sets it as
// the default logger.
//
// Format "json" produces JSON lines; anything else produces text.
// Level is one of debug, info, warn, error (case-insensitive); unknown
// values fall back to info.
func NewLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
