package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// Scanner walks directory trees and collects size-aggregated entries.
type Scanner struct {
	logger           *zap.Logger
	progressInterval time.Duration
}

// NewScanner creates a scanner that logs skipped nodes to the given logger.
func NewScanner(logger *zap.Logger) *Scanner {
	return &Scanner{logger: logger, progressInterval: DefaultProgressInterval}
}

// calculateDepth returns the depth of a path relative to the root.
func calculateDepth(path, root string) int {
	relPath := strings.TrimPrefix(path, root)

	relPath = strings.TrimPrefix(relPath, string(filepath.Separator))
	if relPath == "" {
		return 0
	}

	return strings.Count(relPath, string(filepath.Separator)) + 1
}

// collector aggregates entries from concurrent fastwalk callbacks using a
// mutex. Directory sizes accumulate bottom-up: every file size is added to
// each ancestor directory up to (but excluding) the root.
type collector struct {
	mu         sync.Mutex
	root       string
	dirs       map[string]*Entry
	files      []Entry
	visited    int64
	skipped    int64
	totalBytes int64
}

func newCollector(root string) *collector {
	return &collector{
		root: root,
		dirs: make(map[string]*Entry),
	}
}

// addSkip counts a node dropped due to an access error.
func (c *collector) addSkip() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skipped++
}

// addDir records a directory entry with size zero. The size fills in as
// files under it are added.
func (c *collector) addDir(entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.visited++

	if existing, ok := c.dirs[entry.Path]; ok {
		// Created earlier by a child racing ahead; keep the accumulated size.
		entry.Size = existing.Size
	}

	e := entry
	c.dirs[entry.Path] = &e
}

// addFile records a file entry and propagates its size to every ancestor
// directory below the root.
func (c *collector) addFile(entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.visited++
	c.totalBytes += entry.Size
	c.files = append(c.files, entry)

	if entry.Size == 0 {
		return
	}

	for dir := filepath.Dir(entry.Path); ; dir = filepath.Dir(dir) {
		if dir == c.root || len(dir) < len(c.root) || dir == filepath.Dir(dir) {
			break
		}

		ancestor, ok := c.dirs[dir]
		if !ok {
			ancestor = &Entry{
				Path:   dir,
				Name:   filepath.Base(dir),
				Kind:   KindDir,
				Hidden: isHidden(filepath.Base(dir), dir),
				Depth:  calculateDepth(dir, c.root),
			}
			c.dirs[dir] = ancestor
		}

		ancestor.Size += entry.Size
	}
}

// counts returns the current visited count and byte total for progress hooks.
func (c *collector) counts() (int64, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.visited, c.totalBytes
}

// finalize produces the entry list and stats from the collected data.
// Output ordering is unspecified; ranking happens in Rank.
func (c *collector) finalize() ([]Entry, Stats) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]Entry, 0, len(c.files)+len(c.dirs))
	entries = append(entries, c.files...)

	for _, dir := range c.dirs {
		entries = append(entries, *dir)
	}

	return entries, Stats{
		Visited:    c.visited,
		Skipped:    c.skipped,
		TotalBytes: c.totalBytes,
	}
}

// startProgressReporter invokes hook(visited, bytes) on each tick until ctx
// is done.
//
//nolint:varnamelen // c is idiomatic for collector
func startProgressReporter(ctx context.Context, c *collector, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				visited, bytes := c.counts()
				hook(visited, bytes)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Scan walks the tree at root and returns one entry per filesystem node
// under it (the root itself is not emitted; its aggregate is
// Stats.TotalBytes). Nodes whose metadata cannot be read are skipped, counted
// in Stats.Skipped, and excluded from size totals. Symbolic links are
// recorded with size zero and never followed.
//
// The walk can be cancelled via ctx; entries collected before cancellation
// are returned alongside the error. Progress updates are sent to
// progressHook if provided.
func (s *Scanner) Scan(ctx context.Context, root string, progressHook func(int64, int64)) ([]Entry, Stats, error) {
	if root == "" {
		root = "."
	}

	root = filepath.Clean(root)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("resolving absolute path: %w", err)
	}

	// Validate path exists and is a directory before any traversal.
	if statInfo, err := os.Stat(absRoot); err != nil {
		return nil, Stats{}, fmt.Errorf("accessing path %q: %w", root, err)
	} else if !statInfo.IsDir() {
		return nil, Stats{}, fmt.Errorf("path %q is not a directory", root)
	}

	collector := newCollector(absRoot)

	// Child context so the progress reporter stops when the walk returns.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, collector, progressHook, s.progressInterval)

	start := time.Now()

	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Debug("skipping inaccessible path", zap.String("path", path), zap.Error(err))
			collector.addSkip()

			return nil
		}

		// Check cancellation periodically
		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		if path == absRoot {
			return nil
		}

		entry := Entry{
			Path:   path,
			Name:   d.Name(),
			Hidden: isHidden(d.Name(), path),
			Depth:  calculateDepth(path, absRoot),
		}

		if d.IsDir() {
			entry.Kind = KindDir
			collector.addDir(entry)

			return nil
		}

		// Symlinks and other irregular nodes are their own size-0 entries.
		if !d.Type().IsRegular() {
			collector.addFile(entry)

			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			s.logger.Debug("skipping unreadable file", zap.String("path", path), zap.Error(err))
			collector.addSkip()

			return nil //nolint:nilerr // Intentionally skip errors during walk
		}

		entry.Size = fileInfo.Size()
		collector.addFile(entry)

		return nil
	})

	entries, stats := collector.finalize()
	stats.Elapsed = time.Since(start)

	if walkErr != nil && !errors.Is(walkErr, context.Canceled) {
		return nil, stats, walkErr
	}

	return entries, stats, walkErr
}
