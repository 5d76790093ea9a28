// Package report assembles and renders the final analysis report.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Separator is placed between consecutive per-chunk analysis results.
const Separator = "\n---\n"

// Aggregate joins per-chunk analysis responses, in order, into one report.
// Zero responses yield the empty string; a single response is returned
// unchanged; N responses carry N-1 separators. Nothing is trimmed,
// deduplicated, or reordered.
func Aggregate(responses []string) string {
	return strings.Join(responses, Separator)
}

// Report is the JSON rendering of a completed run.
type Report struct {
	Summary      string `json:"summary"`
	Files        int    `json:"files"`
	Entries      int    `json:"entries"`
	Chunks       int    `json:"chunks"`
	Model        string `json:"model,omitempty"`
	Provider     string `json:"provider,omitempty"`
	InputTokens  int    `json:"input_tokens,omitempty"`
	OutputTokens int    `json:"output_tokens,omitempty"`
	CostUSD      float64 `json:"cost_usd,omitempty"`
}

// Render returns the report in the requested output style: "text" is the
// bare aggregated summary, "json" the full Report object.
func (r *Report) Render(style string) (string, error) {
	switch style {
	case "", "text":
		return r.Summary, nil
	case "json":
		encoded, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding report: %w", err)
		}
		return string(encoded), nil
	default:
		return "", fmt.Errorf("unsupported output style: %s (must be text or json)", style)
	}
}

// Write delivers the rendered report to outFile, or to stdout when outFile
// is empty. A trailing newline is added for terminal output only.
func Write(rendered, outFile string) error {
	if outFile == "" {
		_, err := fmt.Fprintln(os.Stdout, rendered)
		return err
	}
	if err := os.WriteFile(outFile, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
