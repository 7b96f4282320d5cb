// Package cleaner drives guarded interactive deletion of scan results.
//
// The deletion policy is separated from the terminal: candidates are handed
// one at a time to an injected Prompter, and filesystem removal goes through
// an injected Deleter, so the whole flow is testable without simulating
// stdin or touching real files.
package cleaner

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/halvden/reclaim/internal/classify"
	"github.com/halvden/reclaim/internal/scan"
)

// Decision is the operator's choice for one deletion candidate.
type Decision int

const (
	// Skip leaves the candidate in place and moves on.
	Skip Decision = iota
	// Delete removes the candidate.
	Delete
	// Abort stops the remaining queue.
	Abort
)

// Prompter supplies operator decisions for deletion candidates.
type Prompter interface {
	// Decide returns the operator's choice for the candidate.
	Decide(item scan.Item) (Decision, error)
	// ConfirmRisky is the extra confirmation step required for anything not
	// classified safe. Returning false skips the candidate.
	ConfirmRisky(item scan.Item) (bool, error)
}

// Deleter abstracts filesystem delete operations so tests can prove what
// would be removed without removing it.
type Deleter interface {
	Remove(path string) error
	RemoveAll(path string) error
}

// OSDeleter deletes through the os package.
type OSDeleter struct{}

func (OSDeleter) Remove(path string) error    { return os.Remove(path) }
func (OSDeleter) RemoveAll(path string) error { return os.RemoveAll(path) }

// Outcome summarizes one deletion pass.
type Outcome struct {
	// Deleted is the number of candidates removed.
	Deleted int
	// Skipped is the number of candidates left in place (operator choice,
	// protected refusal, or vanished before removal).
	Skipped int
	// Failed is the number of removals that errored.
	Failed int
	// BytesFreed is the scanned size of all removed candidates.
	BytesFreed int64
}

// Controller walks scan result items and deletes confirmed candidates.
type Controller struct {
	classifier *classify.Classifier
	deleter    Deleter
	prompter   Prompter
	logger     *zap.Logger
}

// NewController creates a deletion controller.
func NewController(classifier *classify.Classifier, deleter Deleter, prompter Prompter, logger *zap.Logger) *Controller {
	return &Controller{
		classifier: classifier,
		deleter:    deleter,
		prompter:   prompter,
		logger:     logger,
	}
}

// Run offers every result item for deletion in ranked order. Protected items
// are refused outright without prompting. Items not classified safe require
// the extra confirmation step. Each candidate is re-checked immediately
// before removal: it must still exist and must not classify as protected,
// since the scan result may be stale relative to the live filesystem.
//
// Per-item removal failures are logged and counted; they never abort the
// remaining queue.
func (c *Controller) Run(result *scan.Result) (Outcome, error) {
	var outcome Outcome

	for _, item := range result.Items {
		if item.Verdict.Safety == classify.Protected {
			c.logger.Warn("refusing protected item", zap.String("path", item.Entry.Path))
			outcome.Skipped++

			continue
		}

		decision, err := c.prompter.Decide(item)
		if err != nil {
			return outcome, fmt.Errorf("reading decision: %w", err)
		}

		switch decision {
		case Abort:
			return outcome, nil
		case Skip:
			outcome.Skipped++

			continue
		case Delete:
		}

		if item.Verdict.Safety != classify.Safe {
			confirmed, err := c.prompter.ConfirmRisky(item)
			if err != nil {
				return outcome, fmt.Errorf("reading confirmation: %w", err)
			}

			if !confirmed {
				outcome.Skipped++

				continue
			}
		}

		// The filesystem may have moved on since the scan.
		if _, err := os.Lstat(item.Entry.Path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				c.logger.Info("skipping vanished item", zap.String("path", item.Entry.Path))
				outcome.Skipped++

				continue
			}

			c.logger.Error("re-check failed", zap.String("path", item.Entry.Path), zap.Error(err))
			outcome.Failed++

			continue
		}

		if err := c.remove(item); err != nil {
			c.logger.Error("deletion failed", zap.String("path", item.Entry.Path), zap.Error(err))
			outcome.Failed++

			continue
		}

		outcome.Deleted++
		outcome.BytesFreed += item.Entry.Size
	}

	return outcome, nil
}

// remove re-validates protection and deletes a single confirmed candidate.
func (c *Controller) remove(item scan.Item) error {
	if c.classifier.IsProtected(item.Entry.Path) {
		return fmt.Errorf("path %q is protected", item.Entry.Path)
	}

	if item.Entry.Kind == scan.KindDir {
		return c.deleter.RemoveAll(item.Entry.Path)
	}

	return c.deleter.Remove(item.Entry.Path)
}
