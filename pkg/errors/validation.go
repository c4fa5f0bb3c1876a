package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxTitleLength bounds article titles accepted from users.
// Encyclopedia titles are capped at 255 bytes; the extra room covers
// underscores and percent-encoded forms.
const maxTitleLength = 512

// ValidateTitle validates an article title supplied by a user.
//
// The validation rules are intentionally conservative:
//   - No empty titles
//   - No control characters (titles are single lines in the graph file)
//   - Maximum length of 512 bytes
//
// A title that passes validation may still be unknown to the graph;
// resolution is the path finder's job.
func ValidateTitle(title string) error {
	if title == "" {
		return New(ErrCodeInvalidInput, "article title cannot be empty")
	}

	if len(title) > maxTitleLength {
		return New(ErrCodeInvalidInput, "article title too long (max %d bytes)", maxTitleLength)
	}

	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "article title contains invalid control characters")
		}
	}

	return nil
}

// ValidateOutputPath validates a path that a chart or rendering will be
// written to. Only the extension and basic sanity are checked; the
// directory is created by the writer.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Extension must be one of allowedExts (case-insensitive, with dot)
func ValidateOutputPath(path string, allowedExts ...string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if len(allowedExts) == 0 {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, a := range allowedExts {
		if ext == a {
			return nil
		}
	}
	return New(ErrCodeInvalidPath, "unsupported output extension %q (want one of %s)", ext, strings.Join(allowedExts, ", "))
}
