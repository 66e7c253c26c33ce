package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cbwinslow/lazylocker/pkg/logging"
)

func TestLevelString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level    logging.Level
		expected string
	}{
		{logging.LevelDebug, "DEBUG"},
		{logging.LevelInfo, "INFO"},
		{logging.LevelWarn, "WARN"},
		{logging.LevelError, "ERROR"},
		{logging.LevelFatal, "FATAL"},
		{logging.Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestNewLoggerDefaultsToInfo(t *testing.T) {
	t.Parallel()

	logger := logging.New()
	if logger.GetLevel() != logging.LevelInfo {
		t.Errorf("expected default level INFO, got %s", logger.GetLevel())
	}
}

func TestLoggerWithOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New(logging.WithOutput(&buf))

	logger.Info("agent started")

	output := buf.String()
	if !strings.Contains(output, "INFO") {
		t.Errorf("expected output to contain INFO, got: %s", output)
	}
	if !strings.Contains(output, "agent started") {
		t.Errorf("expected output to contain message, got: %s", output)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New(
		logging.WithOutput(&buf),
		logging.WithLevel(logging.LevelWarn),
	)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Error("expected debug/info to be filtered below WARN")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("expected warn message to pass the filter")
	}
}

func TestWithFieldRedactsPassphraseKey(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New(logging.WithOutput(&buf))

	logger.WithField("passphrase", "correct horse battery staple").Info("unlock attempt")

	output := buf.String()
	if strings.Contains(output, "correct horse battery staple") {
		t.Errorf("expected passphrase value to be redacted, got: %s", output)
	}
	if !strings.Contains(output, "[redacted]") {
		t.Errorf("expected redaction marker in output, got: %s", output)
	}
}

func TestWithFieldsRedactsValueKey(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New(logging.WithOutput(&buf))

	logger.WithFields(map[string]any{
		"action": "get_secret",
		"value":  "sk-super-secret",
	}).Info("agent request")

	output := buf.String()
	if strings.Contains(output, "sk-super-secret") {
		t.Errorf("expected secret value to be redacted, got: %s", output)
	}
	if !strings.Contains(output, "action=get_secret") {
		t.Errorf("expected non-sensitive field to pass through, got: %s", output)
	}
}

func TestWithFieldPassesThroughNonSensitiveKeys(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New(logging.WithOutput(&buf))

	logger.WithField("request_id", "abc-123").Info("agent request")

	if !strings.Contains(buf.String(), "abc-123") {
		t.Error("expected non-sensitive field value to appear in output")
	}
}
