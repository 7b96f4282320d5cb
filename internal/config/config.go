// Package config holds the scan configuration record and the boundary
// parsing that produces it: size-threshold strings and optional rule-table
// files.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/halvden/reclaim/internal/classify"
)

// ScanConfig is the single configuration record consumed by the core. It is
// constructed once at the CLI boundary and passed by value.
type ScanConfig struct {
	// Root is the directory to scan.
	Root string
	// HiddenOnly keeps only hidden entries in the ranked output.
	HiddenOnly bool
	// MinSizeBytes drops entries smaller than this from the ranked output.
	MinSizeBytes int64
	// TopN is the number of ranked entries to keep (0 or less keeps all).
	TopN int
}

// Validate surfaces configuration faults before any traversal is attempted.
func (c ScanConfig) Validate() error {
	if c.MinSizeBytes < 0 {
		return errors.New("minimum size cannot be negative")
	}

	statInfo, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("accessing path %q: %w", c.Root, err)
	}

	if !statInfo.IsDir() {
		return fmt.Errorf("path %q is not a directory", c.Root)
	}

	return nil
}

// ParseSize converts a size string like "100KB" or "1GB" (case-insensitive,
// bare numbers are bytes) into a byte count.
func ParseSize(value string) (int64, error) {
	size, err := humanize.ParseBytes(value)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", value, err)
	}

	if size > math.MaxInt64 {
		return 0, fmt.Errorf("size %q overflows", value)
	}

	return int64(size), nil
}

// patternSpec is the file representation of one space-hog rule.
type patternSpec struct {
	Name   string `mapstructure:"name"`
	Safety string `mapstructure:"safety"`
	Reason string `mapstructure:"reason"`
}

// ruleFile is the file representation of classifier rule extensions.
type ruleFile struct {
	Patterns          []patternSpec `mapstructure:"patterns"`
	ProtectedNames    []string      `mapstructure:"protected_names"`
	ProtectedPrefixes []string      `mapstructure:"protected_prefixes"`
}

// LoadRules returns the classifier rule set: the built-in defaults, extended
// by the rule file at path when one is given. File rules are prepended so
// they override same-name defaults.
func LoadRules(path string) (classify.RuleSet, error) {
	rules := classify.DefaultRules()

	if path == "" {
		return rules, nil
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return classify.RuleSet{}, fmt.Errorf("reading rules file %q: %w", path, err)
	}

	var file ruleFile
	if err := v.Unmarshal(&file); err != nil {
		return classify.RuleSet{}, fmt.Errorf("parsing rules file %q: %w", path, err)
	}

	patterns := make([]classify.Pattern, 0, len(file.Patterns))

	for _, pattern := range file.Patterns {
		safety, err := parseSafety(pattern.Safety)
		if err != nil {
			return classify.RuleSet{}, fmt.Errorf("rules file %q, pattern %q: %w", path, pattern.Name, err)
		}

		patterns = append(patterns, classify.Pattern{Name: pattern.Name, Safety: safety, Reason: pattern.Reason})
	}

	rules.Patterns = append(patterns, rules.Patterns...)
	rules.ProtectedNames = append(rules.ProtectedNames, file.ProtectedNames...)
	rules.ProtectedPrefixes = append(rules.ProtectedPrefixes, file.ProtectedPrefixes...)

	return rules, nil
}

// parseSafety maps a rule-file safety string to its verdict.
func parseSafety(value string) (classify.Safety, error) {
	switch strings.ToLower(value) {
	case "safe":
		return classify.Safe, nil
	case "unsafe", "":
		return classify.Unsafe, nil
	default:
		return classify.Unsafe, fmt.Errorf("safety must be \"safe\" or \"unsafe\" (got %q)", value)
	}
}
