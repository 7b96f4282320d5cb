// Package scan walks a directory tree and ranks its largest entries.
//
// It traverses with fastwalk, aggregates directory sizes bottom-up from the
// files they transitively contain, and produces a deterministic size-ranked
// result joined with safety verdicts.
package scan
