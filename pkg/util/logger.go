package util

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger: human-readable text at debug level in
// development, JSON at info level everywhere else.
func NewLogger(env string) *slog.Logger {
	if env == "development" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
