// Package prompt renders log chunks into analysis prompts.
package prompt

import (
	"fmt"
	"strings"

	"github.com/colinmakerofthings/logpilot-cli/internal/parser"
)

// Template is the fixed analysis prompt. Only the Logs body varies per call.
const Template = "You are analyzing application logs.\n" +
	"Logs:\n%s\n" +
	"Tasks:\n" +
	"1. Identify critical issues\n" +
	"2. Explain likely causes\n" +
	"3. Suggest next debugging steps\n"

// SystemPrompt frames the assistant's role for providers that accept a
// separate system message.
const SystemPrompt = "You are an experienced site reliability engineer analyzing application logs. " +
	"Be concise, factual, and only report what the logs support."

// Format renders one chunk into the analysis prompt, joining each entry's
// raw line with newlines. An empty chunk still yields the full template
// around an empty body.
func Format(chunk []*parser.LogEntry) string {
	raws := make([]string, len(chunk))
	for i, entry := range chunk {
		raws[i] = entry.Raw
	}
	return fmt.Sprintf(Template, strings.Join(raws, "\n"))
}
