package errors

import (
	"strings"
	"unicode"

	"github.com/matzehuels/packman/pkg/deps"
)

// maxPathLength bounds configured paths.
const maxPathLength = 4096

// ValidatePath validates a configured filesystem path (source or output).
//
// Validation rules:
//   - Path cannot be empty or whitespace only
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	return nil
}

// ValidateTypeOverride checks a comma-separated package manager override
// strictly. The scan itself tolerates unknown entries; this is for callers
// that want to reject a misconfigured override up front.
func ValidateTypeOverride(override string) error {
	var unknown []string
	for _, piece := range strings.Split(override, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		if _, ok := deps.LookupType(piece); !ok {
			unknown = append(unknown, piece)
		}
	}
	if len(unknown) > 0 {
		return New(ErrCodeInvalidConfig, "unknown package manager types: %s (available: %s)",
			strings.Join(unknown, ", "), deps.TypeNames())
	}
	return nil
}
