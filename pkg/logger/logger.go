// Package logger wraps zerolog with file rotation and console output.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps zerolog.Logger with rotation-aware setup.
type Logger struct {
	zerolog.Logger
}

// Config holds logger configuration.
type Config struct {
	Level      string // debug, info, warn, error
	LogDir     string
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	Console    bool // mirror events to stderr with human formatting
}

// New creates a logger writing to a rotated file and, optionally, the
// console. Falls back to plain stderr logging when the log directory cannot
// be created.
func New(cfg Config) *Logger {
	if cfg.LogDir == "" {
		cfg.LogDir = "./logs"
	}
	if cfg.Filename == "" {
		cfg.Filename = "logpilot.log"
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups == 0 {
		cfg.MaxBackups = 5
	}

	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return &Logger{
			Logger: zerolog.New(os.Stderr).With().Timestamp().Logger(),
		}
	}

	zerolog.SetGlobalLevel(parseLogLevel(cfg.Level))

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, cfg.Filename),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     30, // days
	}

	writers := []io.Writer{fileWriter}
	if cfg.Console {
		// Console output goes to stderr so the report on stdout stays
		// clean for piping and --out-file comparison.
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "2006-01-02 15:04:05",
		})
	}

	log := zerolog.New(io.MultiWriter(writers...)).
		With().
		Timestamp().
		Logger()

	return &Logger{Logger: log}
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Close flushes any buffered output. Present for symmetry with resources
// that need explicit teardown; zerolog itself writes synchronously.
func (l *Logger) Close() error {
	return nil
}

// WithField returns a child logger with an extra context field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	child := l.Logger.With().Interface(key, value).Logger()
	return &Logger{Logger: child}
}

// WithError returns a child logger carrying err in its context.
func (l *Logger) WithError(err error) *Logger {
	child := l.Logger.With().Err(err).Logger()
	return &Logger{Logger: child}
}
