// Package logger provides structured logging for the application.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Interface defines the logger interface used across the analyzer.
// Fields are variadic key-value pairs, e.g. log.Debug("parsed", "tags", n).
type Interface interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
	Fatal(msg string, fields ...any)
	With(fields ...any) Interface
	Sync() error
}

// Config represents the logger configuration.
type Config struct {
	// Level is the minimum logging level (debug, info, warn, error, fatal).
	Level string `yaml:"level"`
	// Encoding is the output format, "json" or "console".
	Encoding string `yaml:"encoding"`
	// Development enables development mode with prettier output.
	Development bool `yaml:"development"`
	// OutputPaths is a list of file paths or URLs to write log output to.
	OutputPaths []string `yaml:"output_paths"`
}

// Default configuration values.
const (
	DefaultLevel    = "info"
	DefaultEncoding = "json"
)

// DefaultOutputPaths is the default list of paths to write log output to.
var DefaultOutputPaths = []string{"stdout"}

// SetDefaults applies default values to the config if not set.
func (c *Config) SetDefaults() {
	if c.Level == "" {
		c.Level = DefaultLevel
	}
	if c.Encoding == "" {
		c.Encoding = DefaultEncoding
	}
	if len(c.OutputPaths) == 0 {
		c.OutputPaths = DefaultOutputPaths
	}
}

// Logger implements Interface on top of zap's sugared logger.
type Logger struct {
	sugar *zap.SugaredLogger
}

// New creates a new Logger with the given configuration.
func New(cfg Config) (*Logger, error) {
	cfg.SetDefaults()

	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level))
	zapCfg.Encoding = cfg.Encoding
	zapCfg.OutputPaths = cfg.OutputPaths
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	z, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}

	return &Logger{sugar: z.Sugar()}, nil
}

// parseLevel converts a string level to zapcore.Level.
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Debug logs a message at debug level.
func (l *Logger) Debug(msg string, fields ...any) {
	l.sugar.Debugw(msg, fields...)
}

// Info logs a message at info level.
func (l *Logger) Info(msg string, fields ...any) {
	l.sugar.Infow(msg, fields...)
}

// Warn logs a message at warning level.
func (l *Logger) Warn(msg string, fields ...any) {
	l.sugar.Warnw(msg, fields...)
}

// Error logs a message at error level.
func (l *Logger) Error(msg string, fields ...any) {
	l.sugar.Errorw(msg, fields...)
}

// Fatal logs a message at fatal level and exits.
func (l *Logger) Fatal(msg string, fields ...any) {
	l.sugar.Fatalw(msg, fields...)
}

// With returns a new logger with the given fields attached.
func (l *Logger) With(fields ...any) Interface {
	return &Logger{sugar: l.sugar.With(fields...)}
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
