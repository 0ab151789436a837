package errors

import (
	"strings"
	"unicode"
)

// maxPatternLength bounds package name patterns accepted on the command line.
const maxPatternLength = 256

// ValidatePattern validates a package name or wildcard pattern supplied by
// the user before it is compiled.
//
// The rules are intentionally conservative:
//   - No empty patterns
//   - No control characters or null bytes
//   - No backslashes (glob escapes are not supported)
//   - Maximum length of 256 characters
func ValidatePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return New(ErrCodeInvalidPattern, "package pattern cannot be empty")
	}

	if len(pattern) > maxPatternLength {
		return New(ErrCodeInvalidPattern, "package pattern too long (max %d characters)", maxPatternLength)
	}

	for _, r := range pattern {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPattern, "package pattern contains invalid control characters")
		}
	}

	if strings.Contains(pattern, "\\") {
		return New(ErrCodeInvalidPattern, "package pattern cannot contain backslashes: %q", pattern)
	}

	return nil
}

// ValidateLockfileName validates a lockfile base name for safety.
// It ensures the name is a simple file name without path components.
func ValidateLockfileName(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidInput, "lockfile name cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidInput, "lockfile name cannot contain path separators")
	}

	return nil
}
