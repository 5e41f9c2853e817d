package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loadplan.log")
	require.NoError(t, InitLogger(path, INFO))
	t.Cleanup(func() {
		Close()
		Init()
		level = INFO
	})

	Infof("loaded %d columns", 5)
	Warnf("delimiter ignored")
	Debugf("hidden at info level")
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "INFO: ")
	assert.Contains(t, out, "loaded 5 columns")
	assert.Contains(t, out, "WARN: ")
	assert.NotContains(t, out, "hidden at info level")
}

func TestInitLogger_Debug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, InitLogger(path, DEBUG))
	t.Cleanup(func() {
		Close()
		Init()
		level = INFO
	})

	Debugf("resolved %s", "pubmed")
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DEBUG: ")
	assert.Contains(t, string(data), "resolved pubmed")
}

func TestClose_ResetsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "close.log")
	require.NoError(t, InitLogger(path, INFO))
	t.Cleanup(func() {
		Close()
		level = INFO
	})
	assert.Equal(t, path, FileName())

	Close()
	assert.Empty(t, FileName())
	Infof("after close")
	Close()
}
