package directory

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/bredd/photodirectory/pkg/errors"
	"github.com/bredd/photodirectory/pkg/imagefile"
	"github.com/bredd/photodirectory/pkg/layout"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultOutputName is the file name of the generated document.
	DefaultOutputName = "PhotoDirectory.html"

	// DefaultReader is the metadata reader used when none is configured.
	DefaultReader = ReaderEXIF

	// DefaultNameListOrder sorts the name list by full title.
	DefaultNameListOrder = OrderFirstName
)

// Metadata readers.
const (
	ReaderEXIF     = "exif"
	ReaderExifTool = "exiftool"
)

// Name list orderings.
const (
	OrderFirstName = "first"
	OrderLastName  = "last"
)

// ValidReaders is the set of supported metadata readers.
var ValidReaders = map[string]bool{
	ReaderEXIF:     true,
	ReaderExifTool: true,
}

// ValidNameListOrders is the set of supported name list orderings.
var ValidNameListOrders = map[string]bool{
	OrderFirstName: true,
	OrderLastName:  true,
}

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for one directory run.
// Every serializable field can be set from a TOML config file.
type Options struct {
	Source      string `toml:"source"`
	Destination string `toml:"destination"`
	Title       string `toml:"title"`

	// Images
	Width     int    `toml:"width"`
	Quality   int    `toml:"quality"`
	Collision string `toml:"collision"` // suffix, fail or overwrite

	// Layout
	GridRows       int    `toml:"grid_rows"`
	GridCols       int    `toml:"grid_cols"`
	LinesPerColumn int    `toml:"lines_per_column"`
	NameList       bool   `toml:"name_list"`
	NameListOrder  string `toml:"name_list_order"` // first or last
	Ordinal        bool   `toml:"ordinal"`         // byte-wise sorting instead of collation

	// Metadata
	Reader         string `toml:"reader"` // exif or exiftool
	SkipUnreadable bool   `toml:"skip_unreadable"`

	// Output
	TemplateFile string `toml:"template"`
	OutputName   string `toml:"output_name"`

	// Runtime options (not serialized)
	Logger *log.Logger `toml:"-"`

	// ConfirmClear, when set, is asked before files in an existing
	// destination are deleted. Returning false aborts the run.
	ConfirmClear func(dir string, files []string) (bool, error) `toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// SetDefaults fills every zero field with its default.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = imagefile.DefaultWidth
	}
	if o.Quality == 0 {
		o.Quality = imagefile.DefaultQuality
	}
	if o.Collision == "" {
		o.Collision = string(imagefile.DefaultPolicy)
	}
	if o.GridRows == 0 {
		o.GridRows = layout.DefaultRows
	}
	if o.GridCols == 0 {
		o.GridCols = layout.DefaultCols
	}
	if o.LinesPerColumn == 0 {
		o.LinesPerColumn = layout.DefaultLinesPerColumn
	}
	if o.NameListOrder == "" {
		o.NameListOrder = DefaultNameListOrder
	}
	if o.Reader == "" {
		o.Reader = DefaultReader
	}
	if o.OutputName == "" {
		o.OutputName = DefaultOutputName
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options. Call SetDefaults first.
func (o *Options) Validate() error {
	if o.Source == "" || o.Destination == "" {
		return errors.New(errors.ErrCodeInvalidArgs, "source and destination folders are required")
	}
	if err := errors.ValidateFolders(o.Source, o.Destination); err != nil {
		return err
	}
	if err := errors.ValidateOutputName(o.OutputName); err != nil {
		return err
	}
	if o.Width < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "width must be positive, got %d", o.Width)
	}
	if o.Quality < 1 || o.Quality > 100 {
		return errors.New(errors.ErrCodeInvalidInput, "quality must be between 1 and 100, got %d", o.Quality)
	}
	if o.GridRows < 1 || o.GridCols < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "grid must be at least 1x1, got %dx%d", o.GridRows, o.GridCols)
	}
	if o.LinesPerColumn < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "lines per column must be positive, got %d", o.LinesPerColumn)
	}
	if _, err := imagefile.ParsePolicy(o.Collision); err != nil {
		return err
	}
	if !ValidReaders[o.Reader] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid reader: %q (must be one of: exif, exiftool)", o.Reader)
	}
	if !ValidNameListOrders[o.NameListOrder] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid name list order: %q (must be one of: first, last)", o.NameListOrder)
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and validates.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// =============================================================================
// Config File
// =============================================================================

// LoadConfig decodes a TOML config file into opts. Keys absent from the
// file leave opts unchanged, so callers apply the file first and flags
// second. Unknown keys are rejected.
func LoadConfig(path string, opts *Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	md, err := toml.Decode(string(data), opts)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}
