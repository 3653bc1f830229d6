// Package logger provides levelled logging backed by zap.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	// Log levels
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[LogLevel]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel converts a level name such as "debug" or "WARN" to a LogLevel
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO", "":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	}
	return INFO, fmt.Errorf("unknown log level %q", name)
}

// Logger represents a logger instance
type Logger struct {
	level    zap.AtomicLevel
	sugar    *zap.SugaredLogger
	ws       zapcore.WriteSyncer
	showFile bool
	mu       sync.Mutex
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// GetLogger returns the default logger instance, writing to stderr so that
// command output on stdout stays machine readable
func GetLogger() *Logger {
	once.Do(func() {
		defaultLogger = NewLogger(WARN, os.Stderr)
	})
	return defaultLogger
}

// NewLogger creates a new logger with the specified minimum level writing to w
func NewLogger(level LogLevel, w io.Writer) *Logger {
	l := &Logger{
		level:    zap.NewAtomicLevelAt(level.zapLevel()),
		showFile: true,
	}
	l.build(zapcore.AddSync(w))
	return l
}

func (l *Logger) build(ws zapcore.WriteSyncer) {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeCaller = zapcore.ShortCallerEncoder
	if !l.showFile {
		encoderCfg.CallerKey = zapcore.OmitKey
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), ws, l.level)
	l.ws = ws
	l.sugar = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2)).Sugar()
}

// SetLevel changes the minimum log level
func (l *Logger) SetLevel(level LogLevel) {
	l.level.SetLevel(level.zapLevel())
}

// SetShowFile enables or disables showing file and line information in logs
func (l *Logger) SetShowFile(show bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.showFile = show
	l.build(l.ws)
}

// SetOutput redirects the logger to w
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.build(zapcore.AddSync(w))
}

// Sync flushes buffered log entries
func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}

func (l *Logger) logf(level zapcore.Level, format string, args ...interface{}) {
	l.mu.Lock()
	sugar := l.sugar
	l.mu.Unlock()

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	switch level {
	case zapcore.DebugLevel:
		sugar.Debug(msg)
	case zapcore.InfoLevel:
		sugar.Info(msg)
	case zapcore.WarnLevel:
		sugar.Warn(msg)
	default:
		sugar.Error(msg)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(zapcore.DebugLevel, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(zapcore.InfoLevel, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(zapcore.WarnLevel, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(zapcore.ErrorLevel, format, args...)
}

// Global convenience functions that use the default logger

func Debug(format string, args ...interface{}) {
	GetLogger().logf(zapcore.DebugLevel, format, args...)
}

func Info(format string, args ...interface{}) {
	GetLogger().logf(zapcore.InfoLevel, format, args...)
}

func Warn(format string, args ...interface{}) {
	GetLogger().logf(zapcore.WarnLevel, format, args...)
}

func Error(format string, args ...interface{}) {
	GetLogger().logf(zapcore.ErrorLevel, format, args...)
}

// SetGlobalLevel sets the level for the default logger
func SetGlobalLevel(level LogLevel) {
	GetLogger().SetLevel(level)
}
