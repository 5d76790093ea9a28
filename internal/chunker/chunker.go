// Package chunker partitions parsed log entries into token-bounded groups.
package chunker

import (
	"github.com/colinmakerofthings/logpilot-cli/internal/parser"
)

// EstimateTokens is a crude character-based token estimate: one token per
// four characters, minimum one. It is a deterministic monotone proxy, not a
// real tokenizer, and callers must not expect exactness.
func EstimateTokens(text string) int {
	tokens := len(text) / 4
	if tokens < 1 {
		return 1
	}
	return tokens
}

// Chunk groups entries, in order, into chunks whose cumulative estimated
// token cost stays at or under maxTokens.
//
// A chunk is closed when the next entry would push it strictly over budget,
// so no chunk is ever empty, no entry is ever split or dropped, and an entry
// that alone exceeds maxTokens still gets its own chunk. Concatenating the
// returned chunks reproduces the input exactly. With maxTokens <= 0 every
// entry lands in its own chunk.
func Chunk(entries []*parser.LogEntry, maxTokens int) [][]*parser.LogEntry {
	var chunks [][]*parser.LogEntry
	var current []*parser.LogEntry
	tokens := 0

	for _, entry := range entries {
		cost := EstimateTokens(entry.Raw)
		if tokens+cost > maxTokens && len(current) > 0 {
			chunks = append(chunks, current)
			current = nil
			tokens = 0
		}
		current = append(current, entry)
		tokens += cost
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}
