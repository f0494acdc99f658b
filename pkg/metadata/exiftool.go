package metadata

import (
	"fmt"
	"strings"

	"github.com/barasher/go-exiftool"
)

// Field names tried, in order, when reading through exiftool.
var (
	exifToolTitleFields = []string{"Title", "XPTitle", "ImageDescription"}
	exifToolTagFields   = []string{"Subject", "Keywords", "XPKeywords"}
)

// ExifTool reads metadata through a long-running exiftool process.
// It must be closed to stop the process. ExifTool is not safe for
// concurrent use.
type ExifTool struct {
	et   *exiftool.Exiftool
	last string
	meta exiftool.FileMetadata
}

// NewExifTool starts exiftool. It fails when the binary is not installed.
func NewExifTool() (*ExifTool, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("start exiftool: %w", err)
	}
	return &ExifTool{et: et}, nil
}

// ReadTitle implements Reader.
func (r *ExifTool) ReadTitle(path string) (string, error) {
	fm, err := r.read(path)
	if err != nil {
		return "", err
	}
	for _, k := range exifToolTitleFields {
		if v, err := fm.GetString(k); err == nil && strings.TrimSpace(v) != "" {
			return v, nil
		}
	}
	return "", nil
}

// ReadTags implements Reader.
func (r *ExifTool) ReadTags(path string) ([]string, error) {
	fm, err := r.read(path)
	if err != nil {
		return nil, err
	}
	for _, k := range exifToolTagFields {
		v, err := fm.GetStrings(k)
		if err != nil || len(v) == 0 {
			continue
		}
		if k == "XPKeywords" {
			return splitKeywords(strings.Join(v, ";")), nil
		}
		return v, nil
	}
	return nil, nil
}

// Close stops the exiftool process.
func (r *ExifTool) Close() error {
	return r.et.Close()
}

func (r *ExifTool) read(path string) (exiftool.FileMetadata, error) {
	if path == r.last {
		return r.meta, nil
	}
	res := r.et.ExtractMetadata(path)
	if len(res) == 0 {
		return exiftool.FileMetadata{}, fmt.Errorf("exiftool returned no metadata for %s", path)
	}
	if res[0].Err != nil {
		return exiftool.FileMetadata{}, res[0].Err
	}
	r.last, r.meta = path, res[0]
	return r.meta, nil
}

var _ Reader = (*ExifTool)(nil)
