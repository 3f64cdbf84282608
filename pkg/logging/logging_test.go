package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatText, Output: &buf})

	logger.Info("matched", "content", "hello")
	logger.Debug("suppressed")

	out := buf.String()
	assert.Contains(t, out, "matched")
	assert.Contains(t, out, "content=hello")
	assert.NotContains(t, out, "suppressed")
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Format: FormatJSON, Output: &buf})

	logger.Debug("dispatching", "delivery_id", "abc")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "dispatching", entry["msg"])
	assert.Equal(t, "abc", entry["delivery_id"])
}

func TestNopDiscards(t *testing.T) {
	// Must not panic and must not write anywhere observable.
	Nop().Error("nothing", "k", "v")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelWarn},
		{"bogus", LevelWarn},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat(""))
}

func TestMultiHandler(t *testing.T) {
	var a, b bytes.Buffer

	multi := NewMultiHandler(
		New(Config{Level: LevelInfo, Output: &a}).Handler(),
		New(Config{Level: LevelInfo, Format: FormatJSON, Output: &b}).Handler(),
	)
	log := slog.New(multi)
	log.Info("fan out", "k", "v")
	log.Debug("below both levels")

	assert.Contains(t, a.String(), "fan out")
	assert.True(t, strings.Contains(b.String(), `"msg":"fan out"`))
	assert.NotContains(t, a.String(), "below both levels")
}
