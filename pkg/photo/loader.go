package photo

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bredd/photodirectory/pkg/errors"
	"github.com/bredd/photodirectory/pkg/metadata"
)

// extensions accepted by the loader, compared case-insensitively.
var extensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
}

// IsJPEG reports whether name has a JPEG file extension.
func IsJPEG(name string) bool {
	return extensions[strings.ToLower(filepath.Ext(name))]
}

// IsFile reports whether the directory entry at path is a regular file or a
// symbolic link to one.
func IsFile(path string, e fs.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Loader builds the photo list from a folder of JPEGs.
type Loader struct {
	Reader metadata.Reader
	Logger *log.Logger

	// SkipUnreadable logs and skips files whose metadata cannot be read
	// instead of failing the whole load.
	SkipUnreadable bool
}

// Load reads every JPEG directly inside dir (no recursion), in file name
// order. A metadata read failure aborts the load with an
// [errors.ErrCodeMetadata] error unless SkipUnreadable is set.
func (l *Loader) Load(ctx context.Context, dir string) ([]Photo, error) {
	logger := l.Logger
	if logger == nil {
		logger = log.Default()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "list %s", dir)
	}

	var photos []Photo
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(dir, e.Name())
		if !IsJPEG(e.Name()) || !IsFile(path, e) {
			continue
		}

		p, err := l.read(path)
		if err != nil {
			if l.SkipUnreadable {
				logger.Warn("skipping photo", "file", e.Name(), "err", err)
				continue
			}
			return nil, errors.Wrap(errors.ErrCodeMetadata, err, "read metadata of %s", path)
		}
		logger.Debug("loaded photo", "file", e.Name(), "title", p.Title, "tags", p.Tags)
		photos = append(photos, p)
	}
	return photos, nil
}

func (l *Loader) read(path string) (Photo, error) {
	title, err := l.Reader.ReadTitle(path)
	if err != nil {
		return Photo{}, err
	}
	tags, err := l.Reader.ReadTags(path)
	if err != nil {
		return Photo{}, err
	}
	return New(path, title, tags), nil
}
