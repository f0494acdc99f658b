package directory

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/bredd/photodirectory/pkg/errors"
	"github.com/bredd/photodirectory/pkg/photo"
)

// prepareDestination creates dir, or deletes every regular file directly
// inside it. Subdirectories and their contents are left alone. It returns
// the number of files removed.
func prepareDestination(dir string, confirm func(string, []string) (bool, error), logger *log.Logger) (int, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, errors.Wrap(errors.ErrCodeIO, err, "create destination %s", dir)
		}
		logger.Debug("created destination", "dir", dir)
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeIO, err, "stat destination %s", dir)
	}
	if !info.IsDir() {
		return 0, errors.New(errors.ErrCodeInvalidPath, "destination is not a folder: %s", dir)
	}

	files, err := regularFiles(dir)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, nil
	}

	if confirm != nil {
		ok, err := confirm(dir, files)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, errors.New(errors.ErrCodeAborted, "destination %s was not cleared", dir)
		}
	}

	for _, name := range files {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return 0, errors.Wrap(errors.ErrCodeIO, err, "clear destination")
		}
		logger.Debug("deleted", "file", name)
	}
	logger.Info("cleared destination", "dir", dir, "files", len(files))
	return len(files), nil
}

// regularFiles lists the names of the regular files directly inside dir,
// including symbolic links to regular files. Removing a link leaves its
// target alone.
func regularFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "list destination %s", dir)
	}
	var names []string
	for _, e := range entries {
		if photo.IsFile(filepath.Join(dir, e.Name()), e) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
