package main

import (
	"log/slog"
	"os"
	"strings"
)

// InitLogger installs the process-wide slog logger. LOG_FORMAT=json switches
// to JSON output; LOG_LEVEL accepts debug, info, warn or error.
func InitLogger() {
	slog.SetDefault(newLogger(os.Getenv("LOG_FORMAT"), os.Getenv("LOG_LEVEL")))
}

func newLogger(format, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
