package errors

import (
	"math"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxNameLength is the longest name, in runes, accepted onto a card.
const MaxNameLength = 64

// ValidateName validates a single display name.
//
// The rules are:
//   - No empty names
//   - No control characters
//   - Maximum length of MaxNameLength runes
//
// Names are expected to be tokenized already; separators are not rejected here.
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}
	if !utf8.ValidString(name) {
		return New(ErrCodeInvalidName, "name is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return New(ErrCodeInvalidName, "name too long (%d runes, max %d)", n, MaxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "name %q contains control characters", name)
		}
	}
	return nil
}

// ValidateDimensions validates a container or canvas size.
// Both sides must be finite and strictly positive.
func ValidateDimensions(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidGeometry, "dimensions must be finite, got %vx%v", width, height)
		}
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidGeometry, "dimensions must be positive, got %vx%v", width, height)
	}
	return nil
}

// ValidatePath validates an output or input file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateFormat checks that format (case-insensitive) is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	f := strings.ToLower(strings.TrimSpace(format))
	if slices.Contains(allowed, f) {
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
}
