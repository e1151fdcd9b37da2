package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	p := newProgress(logger)
	p.done("Composed 4 layers")

	out := buf.String()
	assert.Contains(t, out, "Composed 4 layers")
	assert.Contains(t, out, "(") // elapsed duration suffix
}

func TestLoggerFromContext(t *testing.T) {
	logger := log.New(&bytes.Buffer{})
	ctx := withLogger(context.Background(), logger)
	assert.Same(t, logger, loggerFromContext(ctx))

	// Falls back to the default logger when none is attached.
	assert.NotNil(t, loggerFromContext(context.Background()))
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	c.Logger.Info("shown")
	assert.False(t, strings.Contains(buf.String(), "hidden"))
	assert.Contains(t, buf.String(), "shown")

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}
