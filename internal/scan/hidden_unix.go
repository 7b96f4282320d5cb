//go:build !windows

package scan

// isHidden reports whether a node is hidden. On unix-like systems this is a
// dot-prefixed name; there is no separate hidden attribute.
func isHidden(name, _ string) bool {
	return len(name) > 0 && name[0] == '.'
}
