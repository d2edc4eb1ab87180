package errors

import (
	"strings"
	"unicode"
)

// MaxExpressionLength bounds the size of expression text accepted from
// users. Deeper trees than this cannot be written down anyway and the
// builder and flattener recurse once per nesting level.
const MaxExpressionLength = 4096

// ValidateExpressionText performs cheap checks on raw expression text before
// it reaches the parser.
//
// The validation rules are intentionally conservative:
//   - No empty input
//   - No control characters other than whitespace
//   - Maximum length of MaxExpressionLength bytes
func ValidateExpressionText(s string) error {
	if strings.TrimSpace(s) == "" {
		return New(ErrCodeInvalidExpression, "expression cannot be empty")
	}

	if len(s) > MaxExpressionLength {
		return New(ErrCodeInvalidExpression, "expression too long (max %d characters)", MaxExpressionLength)
	}

	for _, r := range s {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return New(ErrCodeInvalidExpression, "expression contains invalid control characters")
		}
	}

	return nil
}

// ValidateOutputPath validates a local output path given on the command line.
// It rejects empty paths and null bytes; everything else is left to the OS.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "output path contains invalid characters")
	}
	return nil
}
