package parser

// LogEntry is one structured log record extracted from a raw line.
// Timestamp, Level and Source are empty when the line did not carry them.
// Message and Raw are always set; Raw holds the original line verbatim and
// is what downstream token estimation and prompts operate on.
type LogEntry struct {
	Timestamp string
	Level     string
	Source    string
	Message   string
	Raw       string
}
