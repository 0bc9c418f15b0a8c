package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesToFileAndConsole(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, err := New(dir)
	require.NoError(t, err)

	var console, stderr bytes.Buffer
	logger.console = &console
	logger.stderr = &stderr

	logger.Printf("pulled %d tricks\n", 3)
	logger.Errorf("save %s: %s", "tricks", "disk full")
	logger.Debugf("push retry scheduled")
	require.NoError(t, logger.Close())

	assert.Equal(t, "pulled 3 tricks\n", console.String())
	assert.Contains(t, stderr.String(), "save tricks: disk full")
	assert.NotContains(t, stderr.String(), "push retry")

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "pulled 3 tricks")
	assert.Contains(t, content, "save tricks: disk full")
	assert.Contains(t, content, "push retry scheduled")
}

func TestDebugf_WithoutInitIsDiscarded(t *testing.T) {
	require.NoError(t, Close())
	assert.NotPanics(t, func() {
		Debugf("nothing to see %d", 1)
	})
}

func TestInit_SetsGlobalLogger(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir))
	t.Cleanup(func() { _ = Close() })

	Debugf("agent started")
	require.NoError(t, globalLogger.file.Close())

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "agent started")
}
