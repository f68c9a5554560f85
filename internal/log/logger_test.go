package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: "disabled", Output: &bytes.Buffer{}}) })

	logger := WithComponent("process")
	logger.Debug().Str("file", "a.css").Msg("processed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "process", entry["component"])
	assert.Equal(t, "a.css", entry["file"])
	assert.Equal(t, "processed", entry["message"])
	assert.Equal(t, "debug", entry["level"])
}

func TestConfigureLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "warn", Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: "disabled", Output: &bytes.Buffer{}}) })

	logger := Base()
	logger.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
