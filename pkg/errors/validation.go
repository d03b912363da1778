package errors

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// MaxLabelLength bounds segment names, party names and bullet texts.
const MaxLabelLength = 200

// ValidateLabel validates a user-entered label such as a segment or party name.
//
// The validation rules are intentionally conservative:
//   - No empty labels
//   - No control characters (newlines included)
//   - Maximum length of MaxLabelLength runes
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidInput, "label cannot be empty")
	}

	if utf8.RuneCountInString(label) > MaxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (max %d characters)", MaxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "label contains invalid control characters")
		}
	}

	return nil
}

// hexColorRegex matches #rgb, #rrggbb and #rrggbbaa.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidateColor validates a hex fill color.
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidColor, "invalid hex color: %q", color)
	}
	return nil
}
