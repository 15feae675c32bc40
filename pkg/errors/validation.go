package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateTitle validates a scene title for safety and correctness.
// Titles end up in file names, HTML documents and gallery records, so
// the rules are intentionally conservative:
//   - No empty titles
//   - No control characters
//   - Maximum length of 256 characters
func ValidateTitle(title string) error {
	if title == "" {
		return New(ErrCodeInvalidTitle, "title cannot be empty")
	}

	if len(title) > 256 {
		return New(ErrCodeInvalidTitle, "title too long (max 256 characters)")
	}

	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTitle, "title contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a user-supplied file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// sceneIDRegex matches UUID-shaped scene identifiers.
var sceneIDRegex = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)

// ValidateSceneID validates a gallery scene identifier.
// IDs are generated as UUIDs; anything else is rejected before it
// reaches the store.
func ValidateSceneID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "scene id cannot be empty")
	}

	if !sceneIDRegex.MatchString(strings.ToLower(id)) {
		return New(ErrCodeInvalidInput, "invalid scene id: %q", id)
	}

	return nil
}
