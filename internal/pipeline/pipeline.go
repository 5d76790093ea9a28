// Package pipeline wires the analysis stages together: resolve files, read
// lines, parse entries, chunk by token budget, analyze each chunk, and
// aggregate the responses. Execution is strictly sequential with no shared
// state between stages.
package pipeline

import (
	"context"
	"fmt"

	"github.com/colinmakerofthings/logpilot-cli/internal/ai"
	"github.com/colinmakerofthings/logpilot-cli/internal/chunker"
	"github.com/colinmakerofthings/logpilot-cli/internal/logging"
	"github.com/colinmakerofthings/logpilot-cli/internal/parser"
	"github.com/colinmakerofthings/logpilot-cli/internal/prompt"
	"github.com/colinmakerofthings/logpilot-cli/internal/report"
	"github.com/colinmakerofthings/logpilot-cli/internal/source"
)

// Options selects the input and how it is split.
type Options struct {
	Path      string        // file or directory root
	Recursive bool          // walk subdirectories when Path is a directory
	Include   []string      // glob filters; empty means everything
	Exclude   []string      // glob filters; exclude wins over include
	Format    parser.Format // line format policy
	MaxTokens int           // per-chunk estimated token ceiling
}

// Result is the outcome of a completed run.
type Result struct {
	Summary string
	Files   int
	Entries int
	Chunks  int
	Stats   ai.Stats // usage totals across all analysis calls
}

// Run executes the full pipeline against provider. Analysis calls are made
// one chunk at a time, in chunk order, each completing before the next is
// issued. The first failure of any stage aborts the run.
func Run(ctx context.Context, opts Options, provider ai.Provider, log *logging.SecureLogger) (*Result, error) {
	files, err := source.Resolve(opts.Path, opts.Recursive, opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoMatchingFiles, opts.Path)
	}
	log.Debug().Int("files", len(files)).Str("path", opts.Path).Msg("Resolved log files")

	lines := source.NewLineScanner(files)
	entries, err := parser.NewEntryScanner(lines, opts.Format).Collect()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoEntriesParsed
	}

	chunks := chunker.Chunk(entries, opts.MaxTokens)
	log.Info().
		Int("entries", len(entries)).
		Int("chunks", len(chunks)).
		Int("max_tokens", opts.MaxTokens).
		Msg("Analyzing logs")

	result := &Result{
		Files:   len(files),
		Entries: len(entries),
		Chunks:  len(chunks),
	}

	responses := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		response, stats, err := provider.Analyze(ctx, prompt.Format(chunk))
		if err != nil {
			return nil, fmt.Errorf("analysis of chunk %d/%d failed: %w", i+1, len(chunks), err)
		}
		result.Stats.Add(stats)
		responses = append(responses, response)
		log.Debug().
			Int("chunk", i+1).
			Int("chunk_entries", len(chunk)).
			Msg("Chunk analyzed")
	}

	result.Summary = report.Aggregate(responses)
	return result, nil
}
