package cleaner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/halvden/reclaim/internal/classify"
	"github.com/halvden/reclaim/internal/scan"
)

// fakeDeleter records removal calls instead of touching the filesystem,
// optionally failing specific paths.
type fakeDeleter struct {
	removed    []string
	removedAll []string
	failPaths  map[string]error
}

func (d *fakeDeleter) Remove(path string) error {
	if err, ok := d.failPaths[path]; ok {
		return err
	}

	d.removed = append(d.removed, path)

	return nil
}

func (d *fakeDeleter) RemoveAll(path string) error {
	if err, ok := d.failPaths[path]; ok {
		return err
	}

	d.removedAll = append(d.removedAll, path)

	return nil
}

// scriptedPrompter replays queued decisions and confirmations.
type scriptedPrompter struct {
	decisions    []Decision
	confirms     []bool
	decideCalls  int
	confirmCalls int
}

func (p *scriptedPrompter) Decide(scan.Item) (Decision, error) {
	d := p.decisions[p.decideCalls]
	p.decideCalls++

	return d, nil
}

func (p *scriptedPrompter) ConfirmRisky(scan.Item) (bool, error) {
	c := p.confirms[p.confirmCalls]
	p.confirmCalls++

	return c, nil
}

// openClassifier has no protected rules at all.
func openClassifier() *classify.Classifier {
	return classify.New(classify.RuleSet{})
}

func item(path string, size int64, kind scan.Kind, safety classify.Safety) scan.Item {
	return scan.Item{
		Entry:   scan.Entry{Path: path, Name: filepath.Base(path), Size: size, Kind: kind},
		Verdict: classify.Verdict{Safety: safety, Reason: safety.String()},
	}
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	return path
}

func TestRunDeletesConfirmedSafeItem(t *testing.T) {
	path := touch(t, t.TempDir(), "node_modules.bin")

	deleter := &fakeDeleter{}
	prompter := &scriptedPrompter{decisions: []Decision{Delete}}

	controller := NewController(openClassifier(), deleter, prompter, zap.NewNop())

	outcome, err := controller.Run(&scan.Result{Items: []scan.Item{
		item(path, 42, scan.KindFile, classify.Safe),
	}})
	require.NoError(t, err)

	assert.Equal(t, Outcome{Deleted: 1, BytesFreed: 42}, outcome)
	assert.Equal(t, []string{path}, deleter.removed)

	// Safe items never need the extra confirmation step.
	assert.Zero(t, prompter.confirmCalls)
}

func TestRunDirectoriesUseRemoveAll(t *testing.T) {
	dir := t.TempDir()

	deleter := &fakeDeleter{}
	prompter := &scriptedPrompter{decisions: []Decision{Delete}}

	controller := NewController(openClassifier(), deleter, prompter, zap.NewNop())

	outcome, err := controller.Run(&scan.Result{Items: []scan.Item{
		item(dir, 1_000, scan.KindDir, classify.Safe),
	}})
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.Deleted)
	assert.Equal(t, []string{dir}, deleter.removedAll)
	assert.Empty(t, deleter.removed)
}

func TestRunRefusesProtectedOutright(t *testing.T) {
	deleter := &fakeDeleter{}
	prompter := &scriptedPrompter{}

	controller := NewController(openClassifier(), deleter, prompter, zap.NewNop())

	outcome, err := controller.Run(&scan.Result{Items: []scan.Item{
		item(filepath.FromSlash("/usr/lib"), 1, scan.KindDir, classify.Protected),
	}})
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.Skipped)
	assert.Zero(t, outcome.Deleted)

	// The operator is never even asked.
	assert.Zero(t, prompter.decideCalls)
	assert.Empty(t, deleter.removedAll)
}

func TestRunUnsafeNeedsExtraConfirmation(t *testing.T) {
	dir := t.TempDir()
	declined := touch(t, dir, "declined.dat")
	accepted := touch(t, dir, "accepted.dat")

	deleter := &fakeDeleter{}
	prompter := &scriptedPrompter{
		decisions: []Decision{Delete, Delete},
		confirms:  []bool{false, true},
	}

	controller := NewController(openClassifier(), deleter, prompter, zap.NewNop())

	outcome, err := controller.Run(&scan.Result{Items: []scan.Item{
		item(declined, 5, scan.KindFile, classify.Unsafe),
		item(accepted, 7, scan.KindFile, classify.Unsafe),
	}})
	require.NoError(t, err)

	assert.Equal(t, Outcome{Deleted: 1, Skipped: 1, BytesFreed: 7}, outcome)
	assert.Equal(t, []string{accepted}, deleter.removed)
	assert.Equal(t, 2, prompter.confirmCalls)
}

func TestRunAbortStopsQueue(t *testing.T) {
	dir := t.TempDir()
	first := touch(t, dir, "first.dat")
	touch(t, dir, "second.dat")

	deleter := &fakeDeleter{}
	prompter := &scriptedPrompter{decisions: []Decision{Abort}}

	controller := NewController(openClassifier(), deleter, prompter, zap.NewNop())

	outcome, err := controller.Run(&scan.Result{Items: []scan.Item{
		item(first, 1, scan.KindFile, classify.Safe),
		item(filepath.Join(dir, "second.dat"), 1, scan.KindFile, classify.Safe),
	}})
	require.NoError(t, err)

	assert.Zero(t, outcome.Deleted)
	assert.Equal(t, 1, prompter.decideCalls)
	assert.Empty(t, deleter.removed)
}

func TestRunVanishedItemIsSkipped(t *testing.T) {
	deleter := &fakeDeleter{}
	prompter := &scriptedPrompter{decisions: []Decision{Delete}}

	controller := NewController(openClassifier(), deleter, prompter, zap.NewNop())

	outcome, err := controller.Run(&scan.Result{Items: []scan.Item{
		item(filepath.Join(t.TempDir(), "gone.dat"), 9, scan.KindFile, classify.Safe),
	}})
	require.NoError(t, err)

	assert.Equal(t, Outcome{Skipped: 1}, outcome)
	assert.Empty(t, deleter.removed)
}

func TestRunFailureDoesNotAbortQueue(t *testing.T) {
	dir := t.TempDir()
	locked := touch(t, dir, "locked.dat")
	next := touch(t, dir, "next.dat")

	deleter := &fakeDeleter{failPaths: map[string]error{locked: errors.New("device busy")}}
	prompter := &scriptedPrompter{decisions: []Decision{Delete, Delete}}

	controller := NewController(openClassifier(), deleter, prompter, zap.NewNop())

	outcome, err := controller.Run(&scan.Result{Items: []scan.Item{
		item(locked, 3, scan.KindFile, classify.Safe),
		item(next, 4, scan.KindFile, classify.Safe),
	}})
	require.NoError(t, err)

	assert.Equal(t, Outcome{Deleted: 1, Failed: 1, BytesFreed: 4}, outcome)
	assert.Equal(t, []string{next}, deleter.removed)
}

// A stale safe verdict must not bypass the pre-removal protection re-check.
func TestRunRechecksProtectionBeforeRemoval(t *testing.T) {
	path := touch(t, t.TempDir(), "nowprotected.dat")

	classifier := classify.New(classify.RuleSet{ProtectedExact: []string{path}})
	deleter := &fakeDeleter{}
	prompter := &scriptedPrompter{decisions: []Decision{Delete}}

	controller := NewController(classifier, deleter, prompter, zap.NewNop())

	outcome, err := controller.Run(&scan.Result{Items: []scan.Item{
		item(path, 2, scan.KindFile, classify.Safe),
	}})
	require.NoError(t, err)

	assert.Equal(t, Outcome{Failed: 1}, outcome)
	assert.Empty(t, deleter.removed)
}
