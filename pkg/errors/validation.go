package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateOutputName validates the name of the generated HTML document.
// It must be a plain file name: no directories, no control characters and
// no hidden files, so the document always lands inside the destination.
func ValidateOutputName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "output name cannot be empty")
	}

	if strings.ContainsAny(name, `/\`) {
		return New(ErrCodeInvalidInput, "output name cannot contain path separators: %q", name)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output name contains invalid control characters")
		}
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidInput, "output name cannot be a hidden file: %q", name)
	}

	return nil
}

// ValidateFolders checks the source and destination folder arguments.
//
// Validation rules:
//   - Neither path may be empty
//   - The destination must not be the source folder, because every file in
//     the destination is deleted before generation. A parent of the source
//     is allowed since clearing leaves subdirectories alone.
func ValidateFolders(src, dst string) error {
	if strings.TrimSpace(src) == "" {
		return New(ErrCodeInvalidPath, "source folder cannot be empty")
	}
	if strings.TrimSpace(dst) == "" {
		return New(ErrCodeInvalidPath, "destination folder cannot be empty")
	}

	absSrc, err := filepath.Abs(src)
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "resolve source folder %s", src)
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "resolve destination folder %s", dst)
	}

	if absSrc == absDst {
		return New(ErrCodeInvalidPath, "destination folder cannot be the source folder: %s", absDst)
	}

	return nil
}
