package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_DisabledWithoutFile(t *testing.T) {
	logger, sync, err := NewLogger(Options{})
	require.NoError(t, err)
	defer sync()

	assert.False(t, logger.Enabled())
}

func TestNewLogger_WritesVerbosityToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roadlight.log")

	logger, sync, err := NewLogger(Options{File: path, Verbosity: VERBOSE})
	require.NoError(t, err)

	logger.Info("visible", "road", "A")
	logger.V(VERBOSE).Info("verbose visible")
	logger.V(TRACE).Info("trace hidden")
	sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
	assert.Contains(t, string(data), "verbose visible")
	assert.NotContains(t, string(data), "trace hidden")
	assert.Contains(t, string(data), `"road":"A"`)
}

func TestNewTestLogger(t *testing.T) {
	logger := NewTestLogger()
	assert.True(t, logger.V(TRACE).Enabled())
}
