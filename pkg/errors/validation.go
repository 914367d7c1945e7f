package errors

import (
	"strings"
	"unicode"
)

// ValidateGraphName validates a stored-graph name for safety and correctness.
// Names end up in file paths, Redis keys, and Mongo document IDs, so the
// rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path traversal sequences (.., /, \)
//   - Maximum length of 128 characters
func ValidateGraphName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "graph name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "graph name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "graph name contains control characters")
		}
	}

	dangerous := []string{"..", "/", "\\", "\x00"}
	for _, p := range dangerous {
		if strings.Contains(name, p) {
			return New(ErrCodeInvalidName, "graph name contains invalid sequence %q", p)
		}
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidName, "graph name cannot start with a dot")
	}

	return nil
}
