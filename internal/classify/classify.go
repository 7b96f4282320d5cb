// Package classify assigns safety verdicts to filesystem paths.
//
// Classification is driven by ordered rule tables rather than inline
// conditionals: a set of protected locations (checked first, ancestors
// included) and a set of well-known space-hog directory names, each carrying
// its own verdict and reason. Anything unmatched falls back to unsafe.
package classify

import (
	"path/filepath"
	"strings"
)

// Safety is the deletion-safety verdict for a path.
type Safety int

const (
	// Unsafe means the path is not recognized and needs manual review.
	Unsafe Safety = iota
	// Safe means the path matches a known space-hog pattern.
	Safe
	// Protected means the path is (or sits under) a system-critical location.
	Protected
)

// String returns the lowercase name of the verdict.
func (s Safety) String() string {
	switch s {
	case Safe:
		return "safe"
	case Protected:
		return "protected"
	default:
		return "unsafe"
	}
}

// MarshalText implements encoding.TextMarshaler for JSON output.
func (s Safety) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Verdict is the result of classifying a single path.
type Verdict struct {
	// Safety is the assigned verdict.
	Safety Safety `json:"safety"`
	// Reason is a short human-readable explanation.
	Reason string `json:"reason"`
}

// Reason texts for the fixed rules.
const (
	reasonProtected = "system-critical location"
	reasonDefault   = "not recognized as safe to delete; manual review required"
)

// Classifier evaluates paths against its rule tables. It performs no I/O and
// is safe for concurrent use once constructed.
type Classifier struct {
	patterns       []Pattern
	patternByName  map[string]int
	protectedNames map[string]struct{}
	protectedPre   []string
	protectedExact map[string]struct{}
}

// New builds a classifier from the given rule set. Pattern and protected-name
// matching is case-insensitive; prefixes and exact paths are cleaned to the
// native separator format.
func New(rules RuleSet) *Classifier {
	c := &Classifier{
		patterns:       rules.Patterns,
		patternByName:  make(map[string]int, len(rules.Patterns)),
		protectedNames: make(map[string]struct{}, len(rules.ProtectedNames)),
		protectedExact: make(map[string]struct{}, len(rules.ProtectedExact)),
	}

	// First pattern with a given name wins, preserving table order.
	for i, p := range rules.Patterns {
		key := strings.ToLower(p.Name)
		if _, ok := c.patternByName[key]; !ok {
			c.patternByName[key] = i
		}
	}

	for _, name := range rules.ProtectedNames {
		c.protectedNames[strings.ToLower(name)] = struct{}{}
	}

	for _, prefix := range rules.ProtectedPrefixes {
		c.protectedPre = append(c.protectedPre, filepath.Clean(filepath.FromSlash(prefix)))
	}

	for _, path := range rules.ProtectedExact {
		c.protectedExact[filepath.Clean(path)] = struct{}{}
	}

	return c
}

// Classify returns the verdict for a path. Rules are evaluated in priority
// order: protected, then space-hog pattern match on the base name, then the
// default-unsafe fallback. Protection anywhere in the path wins over a
// pattern match on the name itself.
func (c *Classifier) Classify(path string) Verdict {
	if c.IsProtected(path) {
		return Verdict{Safety: Protected, Reason: reasonProtected}
	}

	name := strings.ToLower(filepath.Base(path))
	if i, ok := c.patternByName[name]; ok {
		p := c.patterns[i]

		return Verdict{Safety: p.Safety, Reason: p.Reason}
	}

	return Verdict{Safety: Unsafe, Reason: reasonDefault}
}

// IsProtected reports whether path is a protected location or a descendant
// of one. Exact-match entries (the user home root) protect only themselves.
func (c *Classifier) IsProtected(path string) bool {
	cleaned := filepath.Clean(path)

	if _, ok := c.protectedExact[cleaned]; ok {
		return true
	}

	// Any protected component anywhere in the path protects the whole path.
	for _, part := range strings.Split(cleaned, string(filepath.Separator)) {
		if _, ok := c.protectedNames[strings.ToLower(part)]; ok {
			return true
		}
	}

	for _, prefix := range c.protectedPre {
		if cleaned == prefix || strings.HasPrefix(cleaned, prefix+string(filepath.Separator)) {
			return true
		}
	}

	return false
}
