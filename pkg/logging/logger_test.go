package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeveledFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLeveledLogger(&buf, LevelInfo)

	l.Debugf("hidden %d", 1)
	l.Printf("shown")
	l.Errorf("boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "ERROR: boom")

	l.SetLevel(LevelDebug)
	l.Debugf("now visible")
	assert.Contains(t, buf.String(), "DEBUG: now visible")
}

func TestErrorsAlwaysLogged(t *testing.T) {
	var buf bytes.Buffer
	l := NewLeveledLogger(&buf, LevelError)

	l.Printf("quiet")
	l.Errorf("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "ERROR: loud")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelInfo, ParseLevel("info"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
}

func TestMultiLoggerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	ml := NewMultiLogger(NewStdLogger(&a), NewStdLogger(&b))

	ml.Printf("hello")
	assert.Contains(t, a.String(), "hello")
	assert.Contains(t, b.String(), "hello")

	_, err := ml.Writer().Write([]byte("raw output\n"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(a.String(), "raw output\n"))
	assert.True(t, strings.HasSuffix(b.String(), "raw output\n"))
}
