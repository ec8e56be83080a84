// Package names turns free text into the display names placed on cards.
package names

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/nameplate/pkg/errors"
)

// Space is the three-per-em space used to spread short names across a
// plate.
const Space = "\u2004"

var separators = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)

// Tokenize splits text into names. Runs of punctuation and whitespace
// both separate names; empty tokens are dropped.
func Tokenize(text string) []string {
	fields := strings.Fields(separators.ReplaceAllString(text, " "))
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Format returns the display form of name. Two-rune names get four
// spaces between the runes and three-rune names one; anything else is
// returned unchanged.
func Format(name string) string {
	var gap string
	switch utf8.RuneCountInString(name) {
	case 2:
		gap = strings.Repeat(Space, 4)
	case 3:
		gap = Space
	default:
		return name
	}
	runes := []rune(name)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, gap)
}

// Validate checks every name with [errors.ValidateName] and reports the
// first failure with its position.
func Validate(names []string) error {
	for i, n := range names {
		if err := errors.ValidateName(n); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidName, err, "name %d", i+1)
		}
	}
	return nil
}

// Dedupe returns names with later repeats removed, keeping first
// occurrences in order.
func Dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
