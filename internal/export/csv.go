// Package export writes scan results to CSV report files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/halvden/reclaim/internal/scan"
)

// csvHeader is the column layout of exported reports.
var csvHeader = []string{"path", "size_bytes", "kind", "hidden", "verdict", "reason"}

// WriteCSV writes one row per result item to a UTF-8, comma-separated file
// at path, header row first. An existing file is overwritten.
func WriteCSV(result *scan.Result, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file %q: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("writing report header: %w", err)
	}

	for _, item := range result.Items {
		row := []string{
			item.Entry.Path,
			strconv.FormatInt(item.Entry.Size, 10),
			item.Entry.Kind.String(),
			strconv.FormatBool(item.Entry.Hidden),
			item.Verdict.Safety.String(),
			item.Verdict.Reason,
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing report row for %q: %w", item.Entry.Path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing report: %w", err)
	}

	return nil
}
