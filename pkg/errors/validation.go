package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// nodeIDRegex matches node identifiers as assigned by the layout pass
// ("n0", "n1", ...) and the derived scale identifiers ("n3:scale").
var nodeIDRegex = regexp.MustCompile(`^n[0-9]+(:scale)?$`)

// ValidateNodeID validates a user-supplied node identifier.
// Node ids are embedded verbatim in SVG id attributes and DOT identifiers,
// so the accepted charset is intentionally narrow.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}

	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "node id too long (max 64 characters)")
	}

	if !nodeIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "node id %q does not match the layout id scheme (n<index>)", id)
	}

	return nil
}

// ValidateOutputPath validates a file path used as a render target.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidInput, "output path cannot be a directory")
	}

	return nil
}
