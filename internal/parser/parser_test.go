package parser

import (
	"bufio"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        Format
		expectError bool
	}{
		{name: "auto", input: "auto", want: FormatAuto},
		{name: "json", input: "json", want: FormatJSON},
		{name: "text", input: "text", want: FormatText},
		{name: "case insensitive", input: "JSON", want: FormatJSON},
		{name: "unknown", input: "xml", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.expectError {
				if err == nil {
					t.Errorf("ParseFormat(%q): expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q): unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLine_JSON(t *testing.T) {
	line := `{"timestamp":"2024-01-01T10:00:00Z","level":"INFO","source":"app.main","message":"Application started"}`
	entry, ok := ParseLine(line, FormatJSON)
	if !ok {
		t.Fatal("expected an entry")
	}
	if entry.Timestamp != "2024-01-01T10:00:00Z" {
		t.Errorf("Timestamp = %q", entry.Timestamp)
	}
	if entry.Level != "INFO" {
		t.Errorf("Level = %q", entry.Level)
	}
	if entry.Source != "app.main" {
		t.Errorf("Source = %q", entry.Source)
	}
	if entry.Message != "Application started" {
		t.Errorf("Message = %q", entry.Message)
	}
	if entry.Raw != line {
		t.Errorf("Raw = %q, want original line", entry.Raw)
	}
}

func TestParseLine_JSONMissingOptionalFields(t *testing.T) {
	entry, ok := ParseLine(`{"message":"Just a message"}`, FormatJSON)
	if !ok {
		t.Fatal("expected an entry")
	}
	if entry.Timestamp != "" || entry.Level != "" || entry.Source != "" {
		t.Errorf("structured fields should be absent, got %+v", entry)
	}
	if entry.Message != "Just a message" {
		t.Errorf("Message = %q", entry.Message)
	}
}

func TestParseLine_JSONMissingMessage(t *testing.T) {
	entry, ok := ParseLine(`{"timestamp":"2024-01-01","level":"INFO"}`, FormatJSON)
	if !ok {
		t.Fatal("expected an entry")
	}
	// Message falls back to a rendering of the whole object.
	if !strings.Contains(entry.Message, "timestamp") || !strings.Contains(entry.Message, "level") {
		t.Errorf("fallback message should mention all keys, got %q", entry.Message)
	}
}

func TestParseLine_JSONInvalid(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		format Format
	}{
		{name: "malformed fragment json", line: `{"level":`, format: FormatJSON},
		{name: "malformed fragment auto", line: `{"level":`, format: FormatAuto},
		{name: "json array", line: `["a","b"]`, format: FormatJSON},
		{name: "bare string", line: `"hello"`, format: FormatJSON},
		{name: "plain text under json format", line: "a,b,c", format: FormatJSON},
		{name: "empty line", line: "", format: FormatJSON},
		{name: "whitespace only", line: "   \t ", format: FormatAuto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if entry, ok := ParseLine(tt.line, tt.format); ok {
				t.Errorf("ParseLine(%q, %q) = %+v, want no entry", tt.line, tt.format, entry)
			}
		})
	}
}

func TestParseLine_AutoNoTextFallbackForJSONish(t *testing.T) {
	// A line that starts with '{' commits to the JSON path even in auto
	// mode; broken JSON with commas must not fall through to text.
	line := `{"broken": json, with, commas}`
	if entry, ok := ParseLine(line, FormatAuto); ok {
		t.Errorf("expected no entry, got %+v", entry)
	}
}

func TestParseLine_Text(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		wantOK bool
	}{
		{name: "two commas", line: "2024-01-01,INFO,app started", wantOK: true},
		{name: "many commas", line: "2024-01-01,INFO,app.main,User logged in,user_id=123", wantOK: true},
		{name: "one comma", line: "onlyonecomma,here", wantOK: false},
		{name: "no commas", line: "no commas here", wantOK: false},
		{name: "empty", line: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := ParseLine(tt.line, FormatText)
			if ok != tt.wantOK {
				t.Fatalf("ParseLine(%q, text): ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if entry.Message != tt.line || entry.Raw != tt.line {
				t.Errorf("text entry should carry the full line, got %+v", entry)
			}
			if entry.Timestamp != "" || entry.Level != "" || entry.Source != "" {
				t.Errorf("text entries have no structured fields, got %+v", entry)
			}
		})
	}
}

func TestParseLine_AutoDetection(t *testing.T) {
	entry, ok := ParseLine(`{"level":"ERROR","message":"boom"}`, FormatAuto)
	if !ok {
		t.Fatal("expected an entry")
	}
	if entry.Level != "ERROR" || entry.Message != "boom" {
		t.Errorf("auto should detect JSON, got %+v", entry)
	}
	if entry.Timestamp != "" || entry.Source != "" {
		t.Errorf("missing keys should stay absent, got %+v", entry)
	}

	entry, ok = ParseLine("a,b,c", FormatAuto)
	if !ok {
		t.Fatal("expected a text entry")
	}
	if entry.Message != "a,b,c" {
		t.Errorf("auto non-JSON should use text path, got %+v", entry)
	}
}

func TestParseLine_JSONWithLeadingWhitespace(t *testing.T) {
	line := `   {"message":"padded"}`
	entry, ok := ParseLine(line, FormatAuto)
	if !ok {
		t.Fatal("expected an entry")
	}
	if entry.Message != "padded" {
		t.Errorf("Message = %q", entry.Message)
	}
	if entry.Raw != line {
		t.Errorf("Raw should keep the original untrimmed line, got %q", entry.Raw)
	}
}

func TestParseLine_NonStringFields(t *testing.T) {
	// Non-string values for structured keys are treated as absent.
	entry, ok := ParseLine(`{"level":5,"message":"ok"}`, FormatJSON)
	if !ok {
		t.Fatal("expected an entry")
	}
	if entry.Level != "" {
		t.Errorf("non-string level should be absent, got %q", entry.Level)
	}
	if entry.Message != "ok" {
		t.Errorf("Message = %q", entry.Message)
	}
}

func TestEntryScanner(t *testing.T) {
	input := strings.Join([]string{
		`{"level":"ERROR","message":"boom"}`,
		"",
		"not parsable",
		"a,b,c",
		`{"bad json`,
		`{"message":"last"}`,
	}, "\n")

	scanner := NewEntryScanner(bufio.NewScanner(strings.NewReader(input)), FormatAuto)
	entries, err := scanner.Collect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"boom", "a,b,c", "last"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, msg := range want {
		if entries[i].Message != msg {
			t.Errorf("entries[%d].Message = %q, want %q", i, entries[i].Message, msg)
		}
	}
}

func TestEntryScanner_Empty(t *testing.T) {
	scanner := NewEntryScanner(bufio.NewScanner(strings.NewReader("")), FormatAuto)
	if scanner.Scan() {
		t.Error("Scan on empty input should return false")
	}
	entries, err := scanner.Collect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}
