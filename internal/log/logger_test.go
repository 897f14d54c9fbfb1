package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wiper/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("info message")
	assert.Contains(t, buf.String(), "level=info")
	assert.Contains(t, buf.String(), "info message")
	buf.Reset()

	l.Warn("warn message")
	assert.Contains(t, buf.String(), "level=warning")
	assert.Contains(t, buf.String(), "warn message")
	buf.Reset()

	l.Error("error message")
	assert.Contains(t, buf.String(), "level=error")
	assert.Contains(t, buf.String(), "error message")
	buf.Reset()

	l.Infof("formatted %s", "message")
	assert.Contains(t, buf.String(), "formatted message")
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	SetDebug(false)
	l.Debug("debug message")
	assert.Empty(t, buf.String())

	SetDebug(true)
	defer SetDebug(false)

	l.Debug("debug message")
	assert.Contains(t, buf.String(), "level=debug")
	assert.Contains(t, buf.String(), "debug message")
	buf.Reset()

	l.Debugf("formatted %s", "debug")
	assert.Contains(t, buf.String(), "formatted debug")
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured message")
	output := buf.String()
	assert.Contains(t, output, "structured message")
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
	buf.Reset()

	l.With(F("key1", "value1")).With(F("key2", 123)).Info("chained fields")
	output = buf.String()
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
}

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithJSON())

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured json")

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &logEntry))
	assert.Equal(t, "structured json", logEntry["message"])
	assert.Equal(t, "value1", logEntry["key1"])
	assert.Equal(t, float64(123), logEntry["key2"])
}

func TestErrorLogging(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := logger
	logger = NewLogger(WithOutput(&buf))
	defer func() { logger = originalLogger }()

	LogWithFields(F("error", fmt.Errorf("standard error").Error())).Error("error occurred")
	output := buf.String()
	assert.Contains(t, output, "error occurred")
	assert.Contains(t, output, "standard error")
	buf.Reset()

	LogWithError(errors.New("application error")).Error("app error occurred")
	output = buf.String()
	assert.Contains(t, output, "application error")
	assert.Contains(t, output, "error_kind=0")
	buf.Reset()

	fileErr := errors.NewFileError("delete failed", "/path/to/entry", errors.FileAccessDenied, nil)
	LogWithError(fileErr).Error("file error occurred")
	output = buf.String()
	assert.Contains(t, output, "delete failed: /path/to/entry")
	assert.Contains(t, output, "path=/path/to/entry")
	assert.Contains(t, output, fmt.Sprintf("error_kind=%d", errors.FileAccessDenied))
	buf.Reset()

	configErr := errors.NewConfigError("invalid filter", "match_mode", errors.InvalidConfig, nil)
	LogError(configErr, "config error occurred")
	output = buf.String()
	assert.Contains(t, output, "config error occurred")
	assert.Contains(t, output, "param=match_mode")
	assert.Contains(t, output, fmt.Sprintf("error_kind=%d", errors.InvalidConfig))
}

func TestPackageLevelLogging(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := logger
	logger = NewLogger(WithOutput(&buf))
	defer func() { logger = originalLogger }()

	Warn("disk watch disabled")
	assert.Contains(t, buf.String(), "level=warning")
	buf.Reset()

	Error("scan failed")
	assert.Contains(t, buf.String(), "level=error")
	buf.Reset()

	SetDebug(false)
	Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestNilErrorHandling(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := logger
	logger = NewLogger(WithOutput(&buf))
	defer func() { logger = originalLogger }()

	LogWithError(nil).Error("nil error test")
	output := buf.String()
	assert.Contains(t, output, "nil error test")
	assert.Contains(t, output, `error="<nil>"`)
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wiper.log")

	originalLogger := logger
	Configure(WithFile(path))
	defer func() {
		Close()
		logger = originalLogger
	}()

	Info("file test %s", "message")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "file test message")
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.WithContext(nil).Info("context message")
	assert.Contains(t, buf.String(), "context message")
}
