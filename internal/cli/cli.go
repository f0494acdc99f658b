package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bredd/photodirectory/pkg/buildinfo"
	"github.com/bredd/photodirectory/pkg/cache"
	"github.com/bredd/photodirectory/pkg/directory"
	"github.com/bredd/photodirectory/pkg/errors"
	"github.com/bredd/photodirectory/pkg/metadata"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "photodirectory"

	// usage is printed when the positional arguments are wrong.
	usage = "photodirectory <source folder> <destination folder> [title]"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself generates a directory.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.generateCommand()
	root.Version = buildinfo.Version
	root.SilenceUsage = true
	root.SilenceErrors = true

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// ReportError prints err to standard output the way every command reports
// failures.
func ReportError(err error) {
	printError("%s", errors.UserMessage(err))
}

// =============================================================================
// Factories
// =============================================================================

// newReader creates the metadata reader named by kind. The returned close
// function releases the reader and is never nil.
func newReader(kind string) (metadata.Reader, func() error, error) {
	switch kind {
	case "", directory.ReaderEXIF:
		return metadata.NewEXIF(), func() error { return nil }, nil
	case directory.ReaderExifTool:
		r, err := metadata.NewExifTool()
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeUnsupported, err, "start exiftool")
		}
		return r, r.Close, nil
	}
	return nil, nil, errors.New(errors.ErrCodeInvalidInput, "invalid reader: %q (must be one of: exif, exiftool)", kind)
}

// closeQuietly calls closeFn and logs a failure at Warn level.
func closeQuietly(logger *log.Logger, what string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logger.Warn("close failed", "resource", what, "err", err)
	}
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/photodirectory/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
