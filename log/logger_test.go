package log

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type captureLogger struct {
	lines []string
}

func (c *captureLogger) logf(level, format string, v ...any) {
	c.lines = append(c.lines, level+": "+fmt.Sprintf(format, v...))
}

func (c *captureLogger) Debug(format string, v ...any) { c.logf("DEBUG", format, v...) }
func (c *captureLogger) Info(format string, v ...any)  { c.logf("INFO", format, v...) }
func (c *captureLogger) Warn(format string, v ...any)  { c.logf("WARN", format, v...) }
func (c *captureLogger) Error(format string, v ...any) { c.logf("ERROR", format, v...) }

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "NONE", LevelNone.String())
	assert.Equal(t, "UNKNOWN(99)", Level(99).String())
}

func TestSetDefault(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	capture := &captureLogger{}
	SetDefault(capture)

	Debug("d %d", 1)
	Info("i %s", "x")
	Warn("w")
	Error("e")

	assert.Equal(t, []string{"DEBUG: d 1", "INFO: i x", "WARN: w", "ERROR: e"}, capture.lines)
}

func TestNoOpLogger(t *testing.T) {
	logger := &NoOpLogger{}
	logger.Debug("ignored")
	logger.Info("ignored")
	logger.Warn("ignored")
	logger.Error("ignored")
}

func TestNewGologLogger(t *testing.T) {
	logger := NewGologLogger(LevelNone)
	// Fully disabled; these must not panic.
	logger.Debug("x")
	logger.Info("x")
	logger.Warn("x")
	logger.Error("x")
	logger.SetLevel(LevelError)
}
