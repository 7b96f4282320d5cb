package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/halvden/reclaim/internal/cleaner"
	"github.com/halvden/reclaim/internal/scan"
)

// terminalPrompter asks for deletion decisions on stdin.
type terminalPrompter struct {
	reader *bufio.Reader
}

func newTerminalPrompter() *terminalPrompter {
	return &terminalPrompter{reader: bufio.NewReader(os.Stdin)}
}

// Decide shows one candidate and reads delete/skip/quit.
func (p *terminalPrompter) Decide(item scan.Item) (cleaner.Decision, error) {
	fmt.Printf("\n%s (%s, %s — %s)\n",
		item.Entry.Path,
		humanize.IBytes(uint64(item.Entry.Size)), //nolint:gosec // Size is never negative
		item.Entry.Kind,
		item.Verdict.Reason)
	fmt.Print("Delete? [d]elete / [s]kip / [q]uit: ")

	input, err := p.reader.ReadString('\n')
	if err != nil {
		return cleaner.Abort, fmt.Errorf("reading input: %w", err)
	}

	switch strings.TrimSpace(strings.ToLower(input)) {
	case "d", "delete", "y", "yes":
		return cleaner.Delete, nil
	case "q", "quit":
		return cleaner.Abort, nil
	default:
		return cleaner.Skip, nil
	}
}

// ConfirmRisky requires the operator to type "yes" for anything not
// classified safe.
func (p *terminalPrompter) ConfirmRisky(item scan.Item) (bool, error) {
	fmt.Printf("Warning: %s is not recognized as safe (%s).\n", item.Entry.Path, item.Verdict.Reason)
	fmt.Print("Type 'yes' to delete anyway: ")

	input, err := p.reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading input: %w", err)
	}

	return strings.TrimSpace(strings.ToLower(input)) == "yes", nil
}
