package vrdeck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggerDebugGate(t *testing.T) {
	l := NewDefaultLogger("test", false)
	assert.False(t, l.DebugEnabled())

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())

	l.SetDebug(false)
	assert.False(t, l.DebugEnabled())
}

func TestPrefixFormatting(t *testing.T) {
	l := NewDefaultLogger("vrdeck", false)
	assert.Equal(t, "[vrdeck] INFO: hello 42", l.prefixf("INFO", "hello %d", 42))

	bare := NewDefaultLogger("", false)
	assert.Equal(t, "WARN: plain", bare.prefixf("WARN", "plain"))
}

func TestFileLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vrdeck.log")
	l, err := NewFileLogger(path, "test", true)
	require.NoError(t, err)

	l.Infof("started")
	l.Debugf("detail %d", 7)
	l.Errorf("boom")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[test] INFO: started")
	assert.Contains(t, content, "[test] DEBUG: detail 7")
	assert.Contains(t, content, "[test] ERROR: boom")
}

func TestFileLoggerBadPath(t *testing.T) {
	_, err := NewFileLogger(filepath.Join(t.TempDir(), "missing", "vrdeck.log"), "test", false)
	assert.Error(t, err)
}

func TestNopLoggerIsSilentAndCheap(t *testing.T) {
	l := NewNopLogger()
	assert.False(t, l.DebugEnabled())
	l.SetDebug(true)
	assert.False(t, l.DebugEnabled())
	// Must not panic with any argument shape.
	l.Debugf("x %d", 1)
	l.Infof("y")
	l.Warnf("z %s", "w")
	l.Errorf("")
}
