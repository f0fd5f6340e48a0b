package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		val      string
		debug    bool
		expected slog.Level
	}{
		{"", false, slog.LevelInfo},
		{"", true, slog.LevelDebug},
		{"INFO", false, slog.LevelInfo},
		{"warning", true, slog.LevelWarn},
		{"error", false, slog.LevelError},
		{"verbose", false, slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.val, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.val, tt.debug))
		})
	}
}

func TestNewLogger_DropsTime(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, slog.LevelInfo, false)

	log.Info("vote recorded", "proposal", "p1")
	log.Debug("hidden")

	assert.Equal(t, "level=INFO msg=\"vote recorded\" proposal=p1\n", buf.String())
}

func TestShortPath(t *testing.T) {
	assert.Equal(t, "internal/usecase/cast_vote.go", shortPath("/home/dev/src/coffer/internal/usecase/cast_vote.go"))
	assert.Equal(t, "main.go", shortPath("/tmp/build/main.go"))
}
