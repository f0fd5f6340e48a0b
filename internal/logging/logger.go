package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/wire"
	"github.com/trebuchet-org/coffer/internal/domain/config"
)

// LevelEnv names the environment variable holding the log level
const LevelEnv = "COFFER_LOG_LEVEL"

var LoggingSet = wire.NewSet(
	NewLogger,
)

// NewLogger creates a new logger based on runtime configuration
func NewLogger(cfg *config.RuntimeConfig) *slog.Logger {
	return newLogger(os.Stderr, ParseLevel(os.Getenv(LevelEnv), cfg.Debug), cfg.Debug)
}

// ParseLevel maps a level name to a slog level. Debug mode lowers the
// default to debug; an explicit level always wins.
func ParseLevel(val string, debug bool) slog.Level {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func newLogger(w io.Writer, level slog.Level, addSource bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					source.File = shortPath(source.File)
				}
			}
			return a
		},
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// shortPath trims a source path to its module-relative form
func shortPath(file string) string {
	if idx := strings.Index(file, "coffer/"); idx != -1 {
		return file[idx+len("coffer/"):]
	}
	parts := strings.Split(file, "/")
	return parts[len(parts)-1]
}
