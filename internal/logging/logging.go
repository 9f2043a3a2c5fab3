package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Config holds configuration for the logger.
type Config struct {
	// Level is one of debug, info, warn or error. Defaults to info
	Level string
	// Format is "json" or "text". Defaults to text
	Format string
}

// NewLogger creates a new slog.Logger writing to w.
// The level is parsed from the config; defaults to INFO if invalid or empty.
func NewLogger(config Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: false,
		Level:     parseLevel(config.Level),
	}

	var handler slog.Handler
	if strings.EqualFold(config.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
