package errors

import (
	"strings"
	"unicode"
)

// ValidateTextureFilename checks a file name handed over by a file dialog.
// It must be a plain base name: non-empty, no path separators, no control
// characters and not "." or "..".
func ValidateTextureFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "texture filename cannot be empty")
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "texture filename cannot contain path separators: %q", name)
	}
	if name == "." || name == ".." {
		return New(ErrCodeInvalidPath, "texture filename cannot be %q", name)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "texture filename contains invalid control characters")
		}
	}
	return nil
}

// ValidateGroupName checks a node-group name. Names are free-form but must be
// non-empty, at most 63 bytes (the host's datablock name limit) and free of
// control characters.
func ValidateGroupName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "group name cannot be empty")
	}
	const maxNameLength = 63
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "group name too long (max %d bytes)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "group name contains invalid control characters")
		}
	}
	return nil
}
