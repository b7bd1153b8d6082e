package common

import (
	"fmt"
	"log/slog"
	"strings"
)

// SlogResetLevel returns a function that resets the slog level to the previous level,
// pairs well with defer.
// Use like:
//
//	func Test123(t *testing.T) {
//	    defer common.SlogResetLevel(slog.Level(slog.LevelWarn + 1))()
func SlogResetLevel(level slog.Level) (reset func()) {
	oldLevel := slog.SetLogLoggerLevel(level)
	return func() {
		slog.SetLogLoggerLevel(oldLevel)
	}
}

// ParseSlogLevel accepts either a level name (debug, info, warn, error)
// or a verbosity number where 0 is error and 3 is debug.
func ParseSlogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "3", "4", "5":
		return slog.LevelDebug, nil
	case "info", "2", "":
		return slog.LevelInfo, nil
	case "warn", "warning", "1":
		return slog.LevelWarn, nil
	case "error", "0":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
