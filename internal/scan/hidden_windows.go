//go:build windows

package scan

import (
	"syscall"
)

// isHidden reports whether a node is hidden: a dot-prefixed name, or the
// FILE_ATTRIBUTE_HIDDEN attribute on Windows. Attribute lookup failures fall
// back to the name check.
func isHidden(name, path string) bool {
	if len(name) > 0 && name[0] == '.' {
		return true
	}

	pointer, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return false
	}

	attrs, err := syscall.GetFileAttributes(pointer)
	if err != nil {
		return false
	}

	return attrs&syscall.FILE_ATTRIBUTE_HIDDEN != 0
}
