package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/disk"

	"github.com/halvden/reclaim/internal/scan"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintJSON outputs the scan result in JSON format.
func PrintJSON(result *scan.Result, writer io.Writer) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs the scan result as a human-readable table: one row per
// ranked entry, then a footer with scan totals, the share of scanned bytes
// the table represents, and the usage of the volume holding the root.
func PrintTable(result *scan.Result, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "\nLargest entries under %s:\n", result.Root)
	fmt.Fprintln(w, "#\tPath\tSize\tKind\tVerdict\tReason")

	for i, item := range result.Items {
		fmt.Fprintf(w, "%d)\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			item.Entry.Path,
			humanize.IBytes(uint64(item.Entry.Size)), //nolint:gosec // Size is never negative
			item.Entry.Kind,
			item.Verdict.Safety,
			item.Verdict.Reason)
	}

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Entries visited:\t%d\n", result.Visited)

	if result.Skipped > 0 {
		fmt.Fprintf(w, "Entries skipped:\t%d (access errors)\n", result.Skipped)
	}

	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n",
		humanize.IBytes(uint64(result.TotalBytes)), result.TotalBytes) //nolint:gosec // Bytes is always positive
	fmt.Fprintf(w, "Shown:\t%d entries (%.1f%% of scanned bytes)\n",
		len(result.Items), result.PercentShown)

	if usage, err := disk.Usage(result.Root); err == nil {
		fmt.Fprintf(w, "Volume:\t%s used of %s (%.1f%%)\n",
			humanize.IBytes(usage.Used), humanize.IBytes(usage.Total), usage.UsedPercent)
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", result.Elapsed)

	return w.Flush()
}
