package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestNew_WritesStructuredOutput(t *testing.T) {
	l := New(Config{Level: "info"})

	var buf bytes.Buffer
	l = l.Output(&buf)
	l.Info().Str("component", "test").Msg("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "component")
}

func TestNew_LevelParsing(t *testing.T) {
	testCases := []struct {
		level    string
		expected zerolog.Level
		name     string
	}{
		{"debug", zerolog.DebugLevel, "debug"},
		{"info", zerolog.InfoLevel, "info"},
		{"WARN", zerolog.WarnLevel, "case insensitive"},
		{"error", zerolog.ErrorLevel, "error"},
		{"verbose", zerolog.InfoLevel, "unknown falls back to info"},
		{"", zerolog.InfoLevel, "empty falls back to info"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			New(Config{Level: tc.level})
			assert.Equal(t, tc.expected, zerolog.GlobalLevel())
		})
	}
}

func TestSetGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info"}).Output(&buf)
	SetGlobalLogger(l)

	log.Info().Msg("routed")
	assert.Contains(t, buf.String(), "routed")
}
