// internal/logger/logger_test.go
package logger

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(DEBUG, &buf)

	tests := []struct {
		level   LogLevel
		message string
	}{
		{DEBUG, "debug message"},
		{INFO, "info message"},
		{WARN, "warning message"},
		{ERROR, "error message"},
	}

	for _, tt := range tests {
		buf.Reset()

		switch tt.level {
		case DEBUG:
			logger.Debug(tt.message)
		case INFO:
			logger.Info(tt.message)
		case WARN:
			logger.Warn(tt.message)
		case ERROR:
			logger.Error(tt.message)
		}

		output := buf.String()
		if !strings.Contains(output, tt.message) {
			t.Errorf("Expected log to contain %q, got %q", tt.message, output)
		}
		if !strings.Contains(output, levelNames[tt.level]) {
			t.Errorf("Expected log to contain level %q, got %q", levelNames[tt.level], output)
		}
	}
}

func TestLogLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(INFO, &buf)

	// Debug shouldn't log when level is INFO
	logger.Debug("debug message")
	if buf.String() != "" {
		t.Error("Expected no debug output when level is INFO")
	}

	// Info should log
	buf.Reset()
	logger.Info("info message")
	if buf.String() == "" {
		t.Error("Expected info output")
	}

	// Raising the level silences info
	buf.Reset()
	logger.SetLevel(ERROR)
	logger.Warn("warn message")
	if buf.String() != "" {
		t.Error("Expected no warn output when level is ERROR")
	}
}

func TestFormatting(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(INFO, &buf)

	logger.Info("Count: %d", 42)
	output := buf.String()
	if !strings.Contains(output, "Count: 42") {
		t.Errorf("Expected formatted message, got %q", output)
	}

	// Without args the format string is printed verbatim
	buf.Reset()
	literal := "100% done"
	logger.Info(literal)
	if !strings.Contains(buf.String(), "100% done") {
		t.Errorf("Expected literal message, got %q", buf.String())
	}
}

func TestMultipleOutputs(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	logger := NewLogger(INFO, io.MultiWriter(&buf1, &buf2))

	message := "test message"
	logger.Info(message)

	if !strings.Contains(buf1.String(), message) {
		t.Error("Expected message in first buffer")
	}
	if !strings.Contains(buf2.String(), message) {
		t.Error("Expected message in second buffer")
	}
}

func TestSetOutput(t *testing.T) {
	var first, second bytes.Buffer
	logger := NewLogger(INFO, &first)

	logger.SetOutput(&second)
	logger.Info("moved")

	if first.Len() != 0 {
		t.Error("Expected nothing in the original output")
	}
	if !strings.Contains(second.String(), "moved") {
		t.Error("Expected message in the new output")
	}
}

func TestShowFile(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(INFO, &buf)

	logger.SetShowFile(true)
	logger.Info("test message")
	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Errorf("Expected file information in log, got %q", buf.String())
	}

	buf.Reset()
	logger.SetShowFile(false)
	logger.Info("test message")
	if strings.Contains(buf.String(), "logger_test.go:") {
		t.Error("Expected no file information in log")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{"debug", DEBUG, false},
		{" INFO ", INFO, false},
		{"", INFO, false},
		{"warning", WARN, false},
		{"Error", ERROR, false},
		{"verbose", INFO, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
