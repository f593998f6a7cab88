package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/portfolio-backend/internal/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, config.LogConfig{Level: "info", Format: "json"}, "prod")

	log.Debug("dropped")
	log.Info("contact form submitted", "email", "a@b.co")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "contact form submitted", rec["msg"])
	assert.Equal(t, "a@b.co", rec["email"])
	assert.Equal(t, "portfolio-backend", rec["service"])
	assert.Equal(t, "prod", rec["env"])
}

func TestNewWithWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, config.LogConfig{Level: "debug", Format: "text"}, "prod")

	log.Debug("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}
