package logger

import (
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		levelStr string
		level    slog.Level
	}{
		{name: "debug level", levelStr: "debug", level: slog.LevelDebug},
		{name: "warn level", levelStr: "warn", level: slog.LevelWarn},
		{name: "error level", levelStr: "error", level: slog.LevelError},
		{name: "unknown defaults to info", levelStr: "verbose", level: slog.LevelInfo},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			log := NewLogger(tc.levelStr, true)
			require.NotNil(t, log)
			assert.True(t, log.Enabled(nil, tc.level))
			assert.False(t, log.Enabled(nil, tc.level-1))
		})
	}
}

func TestTruncateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", truncateString("hello", 10))
	assert.Equal(t, "exactly-ten", truncateString("exactly-ten", 11))
	assert.Equal(t, "this is...", truncateString("this is a long message", 10))
	assert.Equal(t, "...", truncateString("anything", 3))

	// Counts characters, not bytes: a cut inside a multi-byte rune would
	// produce invalid UTF-8.
	emoji := strings.Repeat("🚀", 20)
	got := truncateString(emoji, 10)
	assert.Equal(t, strings.Repeat("🚀", 7)+"...", got)
	assert.True(t, utf8.ValidString(got))

	got = truncateString("привет, это длинное сообщение", 10)
	assert.Equal(t, "привет,...", got)
	assert.True(t, utf8.ValidString(got))
}
