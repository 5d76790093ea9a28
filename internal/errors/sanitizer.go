// Package errors keeps credentials out of error messages and log output.
//
// Provider SDK errors can echo request headers, and Telegram API errors can
// echo the bot token embedded in the request URL, so anything derived from a
// remote call is sanitized before it reaches a log or the terminal.
package errors

import (
	"fmt"
	"regexp"
	"strings"
)

var credentialPatterns = []*regexp.Regexp{
	// Anthropic API keys: sk-ant-... with a meaningful suffix
	regexp.MustCompile(`sk-ant-[a-zA-Z0-9_-]{10,}`),
	// Generic sk-... style API keys
	regexp.MustCompile(`sk-[a-zA-Z0-9_-]{32,}`),
	// Telegram bot tokens: <bot id>:<secret>
	regexp.MustCompile(`\d{8,12}:[a-zA-Z0-9_-]{30,}`),
	// Bearer tokens and auth headers
	regexp.MustCompile(`Bearer\s+[a-zA-Z0-9_.-]+`),
	regexp.MustCompile(`(?i)authorization[:\s]+[^\s]+`),
	regexp.MustCompile(`(?i)x-api-key[:\s]+[^\s]+`),
	// API keys passed as URL or query parameters
	regexp.MustCompile(`(?i)api[_-]?key[=:][^\s&"']+`),
}

const redacted = "[REDACTED]"

// SanitizeString redacts anything that looks like a credential.
func SanitizeString(s string) string {
	out := s
	for _, pattern := range credentialPatterns {
		out = pattern.ReplaceAllString(out, redacted)
	}
	return out
}

// SanitizeError returns err with credentials redacted from its message.
// When nothing needs redacting the original error is returned unchanged so
// the error chain stays intact.
func SanitizeError(err error) error {
	if err == nil {
		return nil
	}
	clean := SanitizeString(err.Error())
	if clean == err.Error() {
		return err
	}
	return &sanitizedError{original: err, message: clean}
}

// Wrapf wraps err with a formatted prefix, sanitizing the wrapped error.
// Use this instead of fmt.Errorf("...: %w", err) when err comes back from a
// remote API.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), SanitizeError(err))
}

// ContainsCredentials reports whether s matches any known credential shape.
func ContainsCredentials(s string) bool {
	for _, pattern := range credentialPatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// MaskCredential shortens a known credential for display, keeping just
// enough of the prefix to identify which credential it was.
func MaskCredential(s string) string {
	if len(s) < 10 {
		return strings.Repeat("*", len(s))
	}
	if strings.HasPrefix(s, "sk-ant-") {
		return "sk-ant-***..."
	}
	if parts := strings.SplitN(s, ":", 2); len(parts) == 2 && len(parts[0]) > 0 && len(parts[0]) <= 12 {
		return parts[0] + ":***..."
	}
	return s[:4] + "***..."
}

type sanitizedError struct {
	original error
	message  string
}

func (e *sanitizedError) Error() string { return e.message }

func (e *sanitizedError) Unwrap() error { return e.original }
