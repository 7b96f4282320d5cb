package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvden/reclaim/internal/classify"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"0KB", 0, false},
		{"512", 512, false},
		{"100KB", 100_000, false},
		{"1MB", 1_000_000, false},
		{"1GB", 1_000_000_000, false},
		{"1gb", 1_000_000_000, false},
		{"2MiB", 2_097_152, false},
		{"nonsense", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanConfigValidate(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tests := []struct {
		name    string
		cfg     ScanConfig
		wantErr string
	}{
		{"valid", ScanConfig{Root: dir, TopN: 10}, ""},
		{"negative threshold", ScanConfig{Root: dir, MinSizeBytes: -1}, "negative"},
		{"nonexistent root", ScanConfig{Root: filepath.Join(dir, "missing")}, "accessing path"},
		{"root is a file", ScanConfig{Root: file}, "not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadRulesDefaults(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)

	classifier := classify.New(rules)
	assert.Equal(t, classify.Safe, classifier.Classify(filepath.FromSlash("/data/proj/node_modules")).Safety)
}

func TestLoadRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
patterns:
  - name: artifactcache
    safety: safe
    reason: project artifact cache
  - name: node_modules
    safety: unsafe
    reason: actively developed here
protected_names:
  - VaultStore
protected_prefixes:
  - /srv/shared
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	classifier := classify.New(rules)

	verdict := classifier.Classify(filepath.FromSlash("/data/artifactcache"))
	assert.Equal(t, classify.Safe, verdict.Safety)
	assert.Equal(t, "project artifact cache", verdict.Reason)

	// File rules override same-name defaults.
	assert.Equal(t, classify.Unsafe, classifier.Classify(filepath.FromSlash("/data/node_modules")).Safety)

	// Protected extensions apply alongside the defaults.
	assert.Equal(t, classify.Protected, classifier.Classify(filepath.FromSlash("/data/VaultStore/blob")).Safety)
	assert.Equal(t, classify.Protected, classifier.Classify(filepath.FromSlash("/srv/shared/archive")).Safety)
	assert.Equal(t, classify.Protected, classifier.Classify(filepath.Join("C:", "Windows")).Safety)
}

func TestLoadRulesErrors(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("patterns:\n  - name: x\n    safety: maybe\n"), 0o644))

	_, err = LoadRules(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "safety")
}
