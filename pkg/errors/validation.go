package errors

import (
	"strings"
	"unicode"
)

// ValidateRootPath validates the root path used for relative grouping.
// An empty root is allowed and means "group relative to the filesystem
// root". The rules reject input that cannot be a path at all:
//   - No null bytes or control characters
//   - Maximum length of 4096 characters
func ValidateRootPath(path string) error {
	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "root path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "root path contains invalid characters")
		}
	}

	return nil
}

// ValidateExcludePattern validates a single exclude pattern.
// Patterns are matched as substrings (or globs), so an empty pattern would
// exclude every file and is rejected.
func ValidateExcludePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return New(ErrCodeInvalidConfig, "exclude pattern cannot be empty")
	}

	for _, r := range pattern {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "exclude pattern %q contains invalid characters", pattern)
		}
	}

	return nil
}

// ValidateMarkerFilename validates a package-boundary marker filename.
// It ensures the marker is a simple basename without path components.
func ValidateMarkerFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidConfig, "package marker filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidConfig, "package marker filename %q cannot contain path separators", filename)
	}

	if filename == "." || filename == ".." {
		return New(ErrCodeInvalidConfig, "package marker filename %q is not a file", filename)
	}

	return nil
}
