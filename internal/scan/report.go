package scan

import (
	"time"

	"github.com/halvden/reclaim/internal/classify"
)

// Item pairs a ranked entry with its safety verdict.
type Item struct {
	Entry   Entry            `json:"entry"`
	Verdict classify.Verdict `json:"verdict"`
}

// Result is the final output of one scan invocation: the ranked, classified
// entries plus aggregate statistics. It is built once and read-only
// thereafter.
type Result struct {
	// Root is the absolute path that was scanned.
	Root string `json:"root"`
	// Items are the ranked entries with verdicts, size-descending.
	Items []Item `json:"items"`
	// TotalBytes is the sum of all regular file sizes under the root.
	TotalBytes int64 `json:"total_bytes"`
	// Visited is the number of entries recorded during the scan.
	Visited int64 `json:"visited"`
	// Skipped is the number of nodes dropped due to access errors.
	Skipped int64 `json:"skipped"`
	// PercentShown is the share of TotalBytes represented by Items, 0-100.
	PercentShown float64 `json:"percent_shown"`
	// Elapsed is the wall time taken by the scan.
	Elapsed time.Duration `json:"elapsed"`
}

// Assemble classifies each ranked entry and builds the final result.
//
// PercentShown is the displayed sizes as a share of stats.TotalBytes. A zero
// total yields zero. Because a displayed directory and a displayed file
// inside it overlap in bytes, the raw share can exceed the total; the value
// is clamped to 100.
func Assemble(root string, ranked []Entry, classifier *classify.Classifier, stats Stats) *Result {
	items := make([]Item, 0, len(ranked))

	var shown int64

	for _, entry := range ranked {
		items = append(items, Item{Entry: entry, Verdict: classifier.Classify(entry.Path)})
		shown += entry.Size
	}

	percent := 0.0
	if stats.TotalBytes > 0 {
		percent = 100.0 * float64(shown) / float64(stats.TotalBytes)
		if percent > 100.0 {
			percent = 100.0
		}
	}

	return &Result{
		Root:         root,
		Items:        items,
		TotalBytes:   stats.TotalBytes,
		Visited:      stats.Visited,
		Skipped:      stats.Skipped,
		PercentShown: percent,
		Elapsed:      stats.Elapsed,
	}
}
