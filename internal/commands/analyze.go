// Package commands implements the logpilot CLI commands.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/colinmakerofthings/logpilot-cli/internal/config"
	"github.com/colinmakerofthings/logpilot-cli/internal/logging"
	"github.com/colinmakerofthings/logpilot-cli/internal/notification"
	"github.com/colinmakerofthings/logpilot-cli/internal/parser"
	"github.com/colinmakerofthings/logpilot-cli/internal/pipeline"
	"github.com/colinmakerofthings/logpilot-cli/internal/report"
	"github.com/colinmakerofthings/logpilot-cli/pkg/logger"
)

// analyzeOptions holds the flag values for the analyze command.
type analyzeOptions struct {
	format    string
	output    string
	maxTokens int
	outFile   string
	recursive bool
	include   []string
	exclude   []string
	model     string
}

// NewAnalyzeCommand creates the 'analyze' subcommand.
// Usage: logpilot analyze <path> [--format auto] [--max-tokens 2048] ...
func NewAnalyzeCommand() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <path>",
		Short: "Analyze log files with an LLM and print an aggregated report",
		Long: `Analyze reads log files under the given path (a single file, or a
directory optionally walked recursively), parses each line as JSON or
CSV-like text, groups the entries into token-bounded chunks, sends each
chunk to the configured LLM provider, and aggregates the per-chunk answers
into one report.

Provider configuration (LLM_PROVIDER, API keys, endpoints) comes from the
environment or a .env file. Reading from standard input is not supported.

Examples:
  logpilot analyze app.log
  logpilot analyze /var/log/myapp --recursive --include '*.log' --exclude 'debug*'
  logpilot analyze app.jsonl --format json --max-tokens 4096 --out-file report.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runAnalyze(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "auto", "Log format: auto, json, or text")
	cmd.Flags().StringVar(&opts.output, "output", "text", "Output style: text or json")
	cmd.Flags().IntVar(&opts.maxTokens, "max-tokens", 2048, "Maximum estimated tokens per chunk")
	cmd.Flags().StringVar(&opts.outFile, "out-file", "", "Write the report to this file instead of stdout")
	cmd.Flags().BoolVarP(&opts.recursive, "recursive", "r", false, "Recurse into subdirectories")
	cmd.Flags().StringArrayVar(&opts.include, "include", nil, "Glob pattern files must match (repeatable)")
	cmd.Flags().StringArrayVar(&opts.exclude, "exclude", nil, "Glob pattern excluding files (repeatable)")
	cmd.Flags().StringVar(&opts.model, "model", "", "Model name passed to the LLM provider")

	return cmd
}

// runAnalyze executes the analysis pipeline for one invocation.
func runAnalyze(cmd *cobra.Command, path string, opts *analyzeOptions) error {
	if path == "-" {
		return fmt.Errorf("reading from standard input is not supported, pass a file or directory path")
	}

	format, err := parser.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if opts.output != "text" && opts.output != "json" {
		return fmt.Errorf("unsupported output style: %s (must be text or json)", opts.output)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.SetModel(opts.model)

	baseLog := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		LogDir:   "./logs",
		Filename: "logpilot.log",
		Console:  cfg.LogLevel == "debug",
	})
	log := logging.NewSecure(baseLog)
	defer func() { _ = log.Close() }()

	provider, err := NewProvider(cfg)
	if err != nil {
		return err
	}
	log.Info().
		Str("provider", provider.GetProviderName()).
		Str("model", cfg.GetLLMModel()).
		Msg("Provider initialized")

	result, err := pipeline.Run(cmd.Context(), pipeline.Options{
		Path:      path,
		Recursive: opts.recursive,
		Include:   opts.include,
		Exclude:   opts.exclude,
		Format:    format,
		MaxTokens: opts.maxTokens,
	}, provider, log)
	if err != nil {
		log.Error().Err(err).Msg("Analysis failed")
		return err
	}

	rendered, err := (&report.Report{
		Summary:      result.Summary,
		Files:        result.Files,
		Entries:      result.Entries,
		Chunks:       result.Chunks,
		Model:        result.Stats.Model,
		Provider:     result.Stats.Provider,
		InputTokens:  result.Stats.InputTokens,
		OutputTokens: result.Stats.OutputTokens,
		CostUSD:      result.Stats.CostUSD,
	}).Render(opts.output)
	if err != nil {
		return err
	}
	if err := report.Write(rendered, opts.outFile); err != nil {
		return err
	}

	if cfg.NotificationsEnabled() {
		if err := notify(cfg, result); err != nil {
			// The report is already written; a notification failure
			// should not look like a failed analysis.
			log.Warn().Err(err).Msg("Telegram notification failed")
		}
	}

	log.Info().
		Int("files", result.Files).
		Int("entries", result.Entries).
		Int("chunks", result.Chunks).
		Float64("cost_usd", result.Stats.CostUSD).
		Msg("Analysis completed")
	return nil
}

// notify posts the finished report to the configured Telegram channel.
func notify(cfg *config.Config, result *pipeline.Result) error {
	client, err := notification.NewTelegramClient(cfg.TelegramBotToken, cfg.TelegramArchiveChannel)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()
	return client.SendReport(result.Summary, result.Files, result.Entries, result.Chunks, &result.Stats)
}
