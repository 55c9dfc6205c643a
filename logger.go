package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
)

const logFormatText = "text"

// initLogger - json to stdout for the servers, charm text for people.
func initLogger(level, format string, out io.Writer) *slog.Logger {
	if format == logFormatText {
		return newTextLogger(level, out)
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: parseLevel(level)}))
}

func newTextLogger(level string, out io.Writer) *slog.Logger {
	charmLevel, err := log.ParseLevel(level)
	if err != nil {
		charmLevel = log.InfoLevel
	}

	handler := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "slide",
		Level:           charmLevel,
	})

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
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

func stderrLogger(level string) *slog.Logger {
	return newTextLogger(level, os.Stderr)
}
