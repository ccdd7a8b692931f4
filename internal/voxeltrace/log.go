package voxeltrace

import (
	"log/slog"
	"os"
)

// LevelFromFlags returns the slog level for the given user flags.
// debug wins over quiet; the default is Info.
func LevelFromFlags(debug, quiet bool) slog.Level {
	switch {
	case debug:
		return slog.LevelDebug
	case quiet:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogging installs a text handler on stderr as the default slog logger.
func SetupLogging(debug, quiet bool) {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: LevelFromFlags(debug, quiet)})
	slog.SetDefault(slog.New(h))
}
