// Package logging layers credential sanitization over the base logger.
package logging

import (
	internalerrors "github.com/colinmakerofthings/logpilot-cli/internal/errors"
	"github.com/colinmakerofthings/logpilot-cli/pkg/logger"
	"github.com/rs/zerolog"
)

// SecureLogger wraps logger.Logger so every string field, message, and error
// passes through credential redaction before being written. Provider and
// Telegram errors are the usual leak vector.
type SecureLogger struct {
	log *logger.Logger
}

// NewSecure wraps log with sanitizing field methods.
func NewSecure(log *logger.Logger) *SecureLogger {
	return &SecureLogger{log: log}
}

// SecureEvent wraps a zerolog Event with sanitizing field methods.
type SecureEvent struct {
	event *zerolog.Event
}

// Debug starts a debug-level event.
func (s *SecureLogger) Debug() *SecureEvent {
	return &SecureEvent{event: s.log.Debug()}
}

// Info starts an info-level event.
func (s *SecureLogger) Info() *SecureEvent {
	return &SecureEvent{event: s.log.Info()}
}

// Warn starts a warn-level event.
func (s *SecureLogger) Warn() *SecureEvent {
	return &SecureEvent{event: s.log.Warn()}
}

// Error starts an error-level event.
func (s *SecureLogger) Error() *SecureEvent {
	return &SecureEvent{event: s.log.Error()}
}

// Close closes the underlying logger.
func (s *SecureLogger) Close() error {
	return s.log.Close()
}

// Str adds a string field, redacting credential shapes.
func (e *SecureEvent) Str(key, val string) *SecureEvent {
	e.event.Str(key, internalerrors.SanitizeString(val))
	return e
}

// Int adds an integer field.
func (e *SecureEvent) Int(key string, val int) *SecureEvent {
	e.event.Int(key, val)
	return e
}

// Int64 adds an int64 field.
func (e *SecureEvent) Int64(key string, val int64) *SecureEvent {
	e.event.Int64(key, val)
	return e
}

// Float64 adds a float64 field.
func (e *SecureEvent) Float64(key string, val float64) *SecureEvent {
	e.event.Float64(key, val)
	return e
}

// Bool adds a boolean field.
func (e *SecureEvent) Bool(key string, val bool) *SecureEvent {
	e.event.Bool(key, val)
	return e
}

// Err adds an error field with its message redacted.
func (e *SecureEvent) Err(err error) *SecureEvent {
	if err != nil {
		e.event.Err(internalerrors.SanitizeError(err))
	}
	return e
}

// Msg sends the event with a redacted message.
func (e *SecureEvent) Msg(msg string) {
	e.event.Msg(internalerrors.SanitizeString(msg))
}

// Msgf sends a formatted event. String and error arguments are redacted;
// other argument types pass through unchanged.
func (e *SecureEvent) Msgf(format string, v ...interface{}) {
	args := make([]interface{}, len(v))
	for i, arg := range v {
		switch t := arg.(type) {
		case string:
			args[i] = internalerrors.SanitizeString(t)
		case error:
			args[i] = internalerrors.SanitizeError(t)
		default:
			args[i] = arg
		}
	}
	e.event.Msgf(format, args...)
}
