// Package main provides the logpilot CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/colinmakerofthings/logpilot-cli/internal/commands"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

// Version information - injected at build time via ldflags
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Cancel in-flight provider calls on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	rootCmd := &cobra.Command{
		Use:   "logpilot",
		Short: "Analyze application logs with an LLM",
		Long: `logpilot ingests application log files, parses them into structured
entries, splits the entries into token-bounded chunks, sends each chunk to
an LLM provider for analysis, and aggregates the answers into one report.`,
		Version:       versionString(),
		SilenceErrors: true,
	}
	rootCmd.AddCommand(commands.NewAnalyzeCommand())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}
	return exitSuccess
}

func versionString() string {
	s := version
	if gitCommit != "unknown" {
		s += fmt.Sprintf(" (commit %s)", gitCommit)
	}
	if buildTime != "unknown" {
		s += fmt.Sprintf(" built %s", buildTime)
	}
	return s
}
