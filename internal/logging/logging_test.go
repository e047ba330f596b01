package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-api/internal/config"
)

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithOutput(&config.Config{Log: config.LogConfig{Level: "debug", Format: "json"}}, &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("book_id", 1).Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, float64(1), entry["book_id"])
}

func TestNewTextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithOutput(&config.Config{Log: config.LogConfig{Level: "warn", Format: "text"}}, &buf)
	require.NoError(t, err)

	logger.Info("dropped")
	assert.Empty(t, buf.String())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(&config.Config{Log: config.LogConfig{Level: "loud"}})
	assert.Error(t, err)
}
