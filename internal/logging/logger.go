// Package logging provides structured logging functionality.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides structured logging capabilities.
// Arguments after the message are alternating key/value pairs or zap.Field values.
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger creates a new console logger with the specified level.
func NewLogger(level string) *Logger {
	return New(level, "console")
}

// New creates a logger writing to stderr. stdout is reserved for the MCP stdio transport.
func New(level, format string) *Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if strings.ToLower(format) == "json" {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), parseLevel(level))
	return &Logger{SugaredLogger: zap.New(core).Sugar()}
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// WithTool returns a logger with tool information.
func (l *Logger) WithTool(toolName string) *Logger {
	return &Logger{SugaredLogger: l.With("tool", toolName)}
}

// WithSession returns a logger with session information.
func (l *Logger) WithSession(sessionID string) *Logger {
	return &Logger{SugaredLogger: l.With("session", sessionID)}
}

// Named returns a logger scoped to a component.
func (l *Logger) Named(component string) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.Named(component)}
}

// Zap returns the underlying structured logger.
func (l *Logger) Zap() *zap.Logger {
	return l.Desugar()
}

// Debug logs a debug message with optional arguments.
func (l *Logger) Debug(msg string, args ...any) {
	l.Debugw(msg, args...)
}

// Info logs an info message with optional arguments.
func (l *Logger) Info(msg string, args ...any) {
	l.Infow(msg, args...)
}

// Warn logs a warning message with optional arguments.
func (l *Logger) Warn(msg string, args ...any) {
	l.Warnw(msg, args...)
}

// Error logs an error message with optional arguments.
func (l *Logger) Error(msg string, args ...any) {
	l.Errorw(msg, args...)
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}
