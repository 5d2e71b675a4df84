package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogrusLogger_JSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogrusLogger(Options{Level: "debug", Format: "json", Output: &buf})

	l.WithField("files", 3).Debugf("classified %d files\n", 3)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "classified 3 files", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.EqualValues(t, 3, entry["files"])
}

func TestLogrusLogger_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogrusLogger(Options{Level: "warn", Output: &buf})

	l.Debugf("hidden")
	l.Logf("hidden too")
	assert.Empty(t, buf.String())

	l.Warnf("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogrusLogger_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogrusLogger(Options{Level: "chatty", Output: &buf})
	assert.Contains(t, buf.String(), "invalid log level")

	buf.Reset()
	l.Log("info line")
	assert.Contains(t, buf.String(), "info line")
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := NewLogrusLogger(Options{})
	assert.Same(t, l, OrNop(l))
}
