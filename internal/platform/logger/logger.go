// Package logger provides structured logging for the life server.
// Every state transition the engine performs should be traceable
// through this.
package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger wraps a zap sugared logger behind a small leveled surface.
type Logger struct {
	s *zap.SugaredLogger
}

// New creates a logger. mode is "dev" (console, debug level) or
// "prod" (JSON, info level).
func New(mode string) (*Logger, error) {
	var cfg zap.Config
	if mode == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &Logger{s: z.Sugar()}, nil
}

// NewNop returns a logger that discards everything. For tests.
func NewNop() *Logger {
	return &Logger{s: zap.NewNop().Sugar()}
}

// Debug logs at debug level with structured key/value pairs.
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

// Info logs at info level with structured key/value pairs.
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

// Warn logs at warn level with structured key/value pairs.
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.s.Warnw(msg, keysAndValues...)
}

// Error logs at error level with structured key/value pairs.
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}

// Event logs a life event so the simulation stays traceable in server
// logs independently of the in-game event log.
func (l *Logger) Event(kind string, age int, details string) {
	l.s.Infow("life event", "kind", kind, "age", age, "details", details)
}

// Sync flushes buffered log entries. Call on shutdown.
func (l *Logger) Sync() {
	_ = l.s.Sync()
}
