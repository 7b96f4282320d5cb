package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/halvden/reclaim/internal/classify"
	"github.com/halvden/reclaim/internal/cleaner"
	"github.com/halvden/reclaim/internal/config"
	"github.com/halvden/reclaim/internal/export"
	"github.com/halvden/reclaim/internal/scan"
)

// run executes the full pipeline: scan, rank, assemble, render, and the
// optional report export and deletion pass.
func run(opt options, logger *zap.Logger) error {
	rules, err := config.LoadRules(opt.rulesFile)
	if err != nil {
		return err
	}

	classifier := classify.New(rules)

	enableProgress := opt.output != "json" &&
		!opt.verbose &&
		isatty.IsTerminal(os.Stderr.Fd())

	ctx := context.Background()

	// Simple progress callback that prints directly to stderr
	var progressHook func(visited, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		progressHook = func(visited, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d entries, %s",
				visited, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
	}

	scanner := scan.NewScanner(logger)

	entries, stats, err := scanner.Scan(ctx, opt.scan.Root, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	ranked := scan.Rank(entries, opt.scan.HiddenOnly, opt.scan.MinSizeBytes, opt.scan.TopN)
	result := scan.Assemble(opt.scan.Root, ranked, classifier, stats)

	switch opt.output {
	case "json":
		if err := PrintJSON(result, os.Stdout); err != nil {
			return err
		}
	default:
		if err := PrintTable(result, os.Stdout); err != nil {
			return err
		}
	}

	if opt.reportFile != "" {
		if err := export.WriteCSV(result, opt.reportFile); err != nil {
			return err
		}

		fmt.Printf("Report saved to %s\n", opt.reportFile)
	}

	if opt.deleteMode {
		controller := cleaner.NewController(classifier, cleaner.OSDeleter{}, newTerminalPrompter(), logger)

		outcome, err := controller.Run(result)
		if err != nil {
			return err
		}

		fmt.Printf("\nDeleted %d, skipped %d, failed %d — freed %s\n",
			outcome.Deleted, outcome.Skipped, outcome.Failed,
			humanize.IBytes(uint64(outcome.BytesFreed))) //nolint:gosec // Bytes is always positive
	}

	return nil
}
