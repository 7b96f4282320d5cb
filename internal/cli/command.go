// Package cli wires the scan pipeline to the terminal: flag parsing, logger
// setup, table/JSON rendering, CSV export, and the interactive deletion loop.
package cli

import (
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/halvden/reclaim/internal/config"
)

// options collects everything parsed at the CLI boundary.
type options struct {
	scan       config.ScanConfig
	threshold  string
	output     string
	reportFile string
	rulesFile  string
	deleteMode bool
	verbose    bool
}

// NewCommand builds the root command.
func NewCommand(version string) *cobra.Command {
	var opt options

	allowedOutputs := []string{"table", "json"}

	cmd := &cobra.Command{
		Use:   "reclaim [path]",
		Short: "Find and reclaim wasted disk space",
		Long: heredoc.Doc(`
			reclaim scans a directory tree for its largest files and folders,
			flags well-known space hogs (dependency caches, build artifacts,
			temp folders) as safe to delete, and refuses to touch
			system-critical locations.

			Defaults to the current directory if no path is given.
		`),
		Example: heredoc.Doc(`
			# Twenty largest entries under the current directory
			reclaim

			# Hidden entries of at least 100MB under the home directory
			reclaim --hidden-only --threshold 100MB ~

			# Scan, export a CSV report, then delete interactively
			reclaim --report scan.csv --delete ~/projects
		`),
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				opt.scan.Root = args[0]
			} else {
				opt.scan.Root = "."
			}

			if !slices.Contains(allowedOutputs, opt.output) {
				return fmt.Errorf("invalid output format %q: must be one of %v", opt.output, allowedOutputs)
			}

			// Parse the threshold string to bytes.
			minSize, err := config.ParseSize(opt.threshold)
			if err != nil {
				return fmt.Errorf("invalid threshold: %w", err)
			}

			opt.scan.MinSizeBytes = minSize

			if err := opt.scan.Validate(); err != nil {
				return err
			}

			logger, err := newLogger(opt.verbose)
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck // Best-effort flush on exit

			return run(opt, logger)
		},
	}

	cmd.Flags().StringVarP(&opt.threshold, "threshold", "t", "1MB", "Minimum size to report (e.g. 100KB, 10MB, 1GB)")
	cmd.Flags().IntVarP(&opt.scan.TopN, "top", "n", 20, "Number of largest entries to show (0 shows all)")
	cmd.Flags().BoolVar(&opt.scan.HiddenOnly, "hidden-only", false, "Only report hidden files and folders")
	cmd.Flags().StringVarP(&opt.output, "output", "o", "table", "Output format: table or json")
	cmd.Flags().StringVarP(&opt.reportFile, "report", "r", "", "Write a CSV report to the given file")
	cmd.Flags().StringVar(&opt.rulesFile, "rules", "", "Extra classification rules file (yaml)")
	cmd.Flags().BoolVarP(&opt.deleteMode, "delete", "d", false, "Offer reported entries for deletion")
	cmd.Flags().BoolVarP(&opt.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.Flags().SortFlags = false

	return cmd
}

// Execute runs the CLI with the process arguments.
func Execute(version string) error {
	return NewCommand(version).Execute()
}

// newLogger builds the process logger: human-readable development output when
// verbose, otherwise error-level JSON to stderr.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
		Encoding:         "json",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}

	return cfg.Build()
}
