// Package metadata reads the title and tags embedded in image files.
//
// [Reader] is the capability the loader depends on. Three adapters ship with
// the package:
//
//   - [EXIF]: pure Go, reads XMP dc:title/dc:subject and the EXIF
//     XPTitle/XPKeywords/ImageDescription tags (the fields the Windows
//     property system exposes as Title and Tags)
//   - [ExifTool]: delegates to the exiftool binary through go-exiftool
//   - [Static]: an in-memory map, for tests
//
// A missing or unreadable property is reported as an empty value, never an
// error. Errors are reserved for files that cannot be opened at all.
package metadata

import (
	"path/filepath"
)

// Reader extracts title and tag metadata from an image file.
type Reader interface {
	// ReadTitle returns the title of the image at path, or "" if it has none.
	ReadTitle(path string) (string, error)
	// ReadTags returns the tags of the image at path, or nil if it has none.
	ReadTags(path string) ([]string, error)
}

// Entry is the metadata of one file in a [Static] reader.
type Entry struct {
	Title string
	Tags  []string
	// Err, when set, is returned from both reads.
	Err error
}

// Static is a Reader backed by a map keyed by base file name.
// Files missing from the map have no metadata.
type Static map[string]Entry

// ReadTitle implements Reader.
func (s Static) ReadTitle(path string) (string, error) {
	e := s[filepath.Base(path)]
	return e.Title, e.Err
}

// ReadTags implements Reader.
func (s Static) ReadTags(path string) ([]string, error) {
	e := s[filepath.Base(path)]
	return e.Tags, e.Err
}

var _ Reader = Static(nil)
