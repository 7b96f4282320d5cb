package scan

import "time"

// Kind distinguishes files from directories. Symbolic links are recorded as
// files with size zero.
type Kind int

const (
	// KindFile is a regular file, symlink, or other non-directory node.
	KindFile Kind = iota
	// KindDir is a directory.
	KindDir
)

// String returns the display name of the kind.
func (k Kind) String() string {
	if k == KindDir {
		return "directory"
	}

	return "file"
}

// MarshalText implements encoding.TextMarshaler for JSON output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Entry is one scanned filesystem node. Directory sizes are the sum of all
// file sizes transitively contained. Entries are created during the scan and
// never mutated afterward.
type Entry struct {
	// Path is the absolute path of the node.
	Path string `json:"path"`
	// Name is the base name of the node.
	Name string `json:"name"`
	// Size is the size in bytes; aggregate for directories.
	Size int64 `json:"size"`
	// Kind is file or directory.
	Kind Kind `json:"kind"`
	// Hidden reports whether the node is hidden (dot prefix or platform attribute).
	Hidden bool `json:"hidden"`
	// Depth is the number of path segments below the scan root.
	Depth int `json:"depth"`
}

// Stats holds aggregate counters for one scan.
type Stats struct {
	// Visited is the number of entries recorded.
	Visited int64 `json:"visited"`
	// Skipped is the number of nodes dropped due to access errors.
	Skipped int64 `json:"skipped"`
	// TotalBytes is the sum of all regular file sizes under the root.
	TotalBytes int64 `json:"total_bytes"`
	// Elapsed is the wall time taken by the scan.
	Elapsed time.Duration `json:"elapsed"`
}
