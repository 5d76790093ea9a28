// Package parser converts raw log lines into structured LogEntry values.
// It supports two line formats: JSON objects (one per line) and a loose
// CSV-like text format, plus automatic per-line detection between the two.
package parser

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format selects the parsing policy for incoming lines.
type Format string

const (
	// FormatAuto treats lines starting with '{' as JSON and everything
	// else as text.
	FormatAuto Format = "auto"
	// FormatJSON requires every line to be a JSON object.
	FormatJSON Format = "json"
	// FormatText treats every line as a CSV-like text record.
	FormatText Format = "text"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatAuto:
		return FormatAuto, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatText:
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported log format: %s (must be auto, json, or text)", s)
	}
}

// ParseLine parses a single raw line according to format.
// It returns (nil, false) for lines that do not qualify as a log entry:
// blank lines, malformed JSON, and text lines with fewer than two commas.
// Skipped lines are normal operation, not an error.
func ParseLine(line string, format Format) (*LogEntry, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, false
	}

	if format == FormatJSON || (format == FormatAuto && strings.HasPrefix(trimmed, "{")) {
		return parseJSONLine(line, trimmed)
	}

	// Loose tabular heuristic carried over from the original tool: a text
	// line qualifies only when it has at least two comma separators.
	if strings.Count(line, ",") < 2 {
		return nil, false
	}
	return &LogEntry{Message: line, Raw: line}, true
}

// parseJSONLine decodes a line as a JSON object. A decode failure means the
// line is discarded; there is no fallback to text parsing once a line has
// been committed to the JSON path.
func parseJSONLine(line, trimmed string) (*LogEntry, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return nil, false
	}

	entry := &LogEntry{
		Timestamp: stringField(obj, "timestamp"),
		Level:     stringField(obj, "level"),
		Source:    stringField(obj, "source"),
		Raw:       line,
	}
	if msg, ok := obj["message"].(string); ok {
		entry.Message = msg
	} else {
		// No usable message key: represent the whole object instead.
		// json.Marshal sorts map keys, so this is deterministic.
		encoded, err := json.Marshal(obj)
		if err != nil {
			return nil, false
		}
		entry.Message = string(encoded)
	}
	return entry, true
}

// stringField returns the string value for key, or "" when the key is
// missing, null, or not a string.
func stringField(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}

// LineSource is the minimal line stream consumed by an EntryScanner.
// Both source.LineScanner and bufio.Scanner satisfy it.
type LineSource interface {
	Scan() bool
	Text() string
	Err() error
}

// EntryScanner lazily applies ParseLine over a line stream, yielding only
// the lines that produce entries. It is single pass: once drained it cannot
// be rewound without re-reading the underlying source.
type EntryScanner struct {
	lines  LineSource
	format Format
	entry  *LogEntry
}

// NewEntryScanner returns a scanner that parses lines from src as format.
func NewEntryScanner(src LineSource, format Format) *EntryScanner {
	return &EntryScanner{lines: src, format: format}
}

// Scan advances to the next parsable entry, skipping lines that produce
// none. It returns false when the line source is exhausted or failed.
func (s *EntryScanner) Scan() bool {
	for s.lines.Scan() {
		if entry, ok := ParseLine(s.lines.Text(), s.format); ok {
			s.entry = entry
			return true
		}
	}
	s.entry = nil
	return false
}

// Entry returns the entry produced by the last successful Scan.
func (s *EntryScanner) Entry() *LogEntry {
	return s.entry
}

// Err reports the first error encountered by the underlying line source.
func (s *EntryScanner) Err() error {
	return s.lines.Err()
}

// Collect drains the scanner and returns all remaining entries in order.
func (s *EntryScanner) Collect() ([]*LogEntry, error) {
	var entries []*LogEntry
	for s.Scan() {
		entries = append(entries, s.Entry())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
