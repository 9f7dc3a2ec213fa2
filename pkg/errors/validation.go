package errors

import (
	"regexp"
	"unicode"
)

// MaxSourceSize bounds the statement source accepted by [ValidateSource].
// Diagrams beyond a few hundred rows are unreadable anyway.
const MaxSourceSize = 64 << 10

// ValidateSource validates statement source text before parsing.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only sources
//   - No control characters other than tab, newline and carriage return
//   - Maximum length of [MaxSourceSize] bytes
func ValidateSource(src string) error {
	if len(src) > MaxSourceSize {
		return New(ErrCodeInvalidInput, "source too long (max %d bytes)", MaxSourceSize)
	}

	blank := true
	for _, r := range src {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
		case unicode.IsControl(r):
			return New(ErrCodeInvalidInput, "source contains invalid control characters")
		case !unicode.IsSpace(r):
			blank = false
		}
	}
	if blank {
		return New(ErrCodeInvalidInput, "source cannot be empty")
	}

	return nil
}

// colorRegex matches SVG color keywords and #rgb / #rrggbb hex colors.
var colorRegex = regexp.MustCompile(`^([a-zA-Z]+|#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6})$`)

// ValidateColor validates a fill or stroke color taken from configuration.
// Only keywords and hex colors are accepted so values can be embedded in
// SVG and DOT attributes without escaping.
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidConfig, "color cannot be empty")
	}
	if !colorRegex.MatchString(color) {
		return New(ErrCodeInvalidConfig, "invalid color: %q", color)
	}
	return nil
}
