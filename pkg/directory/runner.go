package directory

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bredd/photodirectory/pkg/errors"
	"github.com/bredd/photodirectory/pkg/imagefile"
	"github.com/bredd/photodirectory/pkg/layout"
	"github.com/bredd/photodirectory/pkg/metadata"
	"github.com/bredd/photodirectory/pkg/photo"
	"github.com/bredd/photodirectory/pkg/render"
)

// Result contains the outputs of a run.
type Result struct {
	// Photos is every loaded photo in name order.
	Photos []photo.Photo

	// Images maps a photo's source Filename to its output image name.
	Images map[string]string

	// Output is the path of the generated HTML document.
	Output string

	// Stats contains counts and timings.
	Stats Stats
}

// Stats contains run statistics.
type Stats struct {
	Photos    int
	Pages     int
	GridPages int
	Groups    int
	Columns   int
	Cleared   int // files deleted from the destination
	Resized   int
	CacheHits int

	LoadTime   time.Duration
	ImageTime  time.Duration
	RenderTime time.Duration
}

// Runner executes directory runs.
//
// The Runner holds no per-run state; each Execute call starts from scratch.
type Runner struct {
	Reader  metadata.Reader
	Resizer imagefile.Resizer
	Logger  *log.Logger
}

// NewRunner creates a runner. A nil logger uses the default logger.
func NewRunner(reader metadata.Reader, resizer imagefile.Resizer, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Reader:  reader,
		Resizer: resizer,
		Logger:  logger,
	}
}

// Execute runs prepare → load → layout → images → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	src, err := filepath.Abs(opts.Source)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", opts.Source)
	}
	dst, err := filepath.Abs(opts.Destination)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", opts.Destination)
	}
	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		return nil, errors.New(errors.ErrCodeSourceNotFound, "directory doesn't exist: %s", src)
	}

	policy, err := imagefile.ParsePolicy(opts.Collision)
	if err != nil {
		return nil, err
	}
	tmpl := render.DefaultTemplate()
	if opts.TemplateFile != "" {
		if tmpl, err = render.LoadTemplate(opts.TemplateFile); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Images: make(map[string]string),
		Output: filepath.Join(dst, opts.OutputName),
	}

	// Stage 1: Prepare
	cleared, err := prepareDestination(dst, opts.ConfirmClear, logger)
	if err != nil {
		return nil, err
	}
	result.Stats.Cleared = cleared

	// Stage 2: Load
	loadStart := time.Now()
	loader := photo.Loader{Reader: r.Reader, Logger: logger, SkipUnreadable: opts.SkipUnreadable}
	photos, err := loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	logger.Info("loaded photos", "count", len(photos), "duration", result.Stats.LoadTime)

	// Stage 3: Layout
	var cmp photo.CompareFunc
	if opts.Ordinal {
		cmp = photo.Ordinal
	}
	byName := photo.ByName(photos, cmp)
	groups := photo.Groups(photo.ByGroup(photos, cmp))

	var pages layout.Counter
	doc := render.Document{
		Title:  opts.Title,
		Grid:   layout.Grid(byName, opts.GridRows, opts.GridCols, &pages),
		Images: result.Images,
	}
	doc.Grouped = layout.Grouped(groups, opts.LinesPerColumn, &pages)
	if opts.NameList {
		listed := byName
		if opts.NameListOrder == OrderLastName {
			listed = photo.ByLastName(photos, cmp)
		}
		list := layout.List(listed, opts.LinesPerColumn, &pages)
		doc.NameList = &list
	}

	result.Photos = byName
	result.Stats.Photos = len(photos)
	result.Stats.Pages = pages.Current()
	result.Stats.GridPages = len(doc.Grid)
	result.Stats.Groups = len(groups)
	result.Stats.Columns = len(doc.Grouped.Columns)

	// Stage 4: Images
	imageStart := time.Now()
	if err := r.writeImages(ctx, doc.Grid, dst, policy, result, logger); err != nil {
		return nil, err
	}
	result.Stats.ImageTime = time.Since(imageStart)

	// Stage 5: Render
	renderStart := time.Now()
	if err := render.WriteFile(result.Output, doc, render.WithTemplate(tmpl)); err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("wrote directory",
		"file", result.Output,
		"pages", result.Stats.Pages,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// writeImages names and resizes every photo placed on a grid page, in
// document order.
func (r *Runner) writeImages(ctx context.Context, grid []layout.GridPage, dst string, policy imagefile.Policy, result *Result, logger *log.Logger) error {
	namer := imagefile.NewNamer(policy)
	for _, page := range grid {
		for _, row := range page.Rows {
			for _, p := range row {
				if err := ctx.Err(); err != nil {
					return err
				}
				name, err := namer.Name(p.Title)
				if err != nil {
					return err
				}
				cached, err := r.Resizer.Resize(ctx, p.Filename, filepath.Join(dst, name))
				if err != nil {
					return err
				}
				logger.Info("wrote image", "file", name, "cached", cached)
				if cached {
					result.Stats.CacheHits++
				} else {
					result.Stats.Resized++
				}
				result.Images[p.Filename] = name
			}
		}
	}
	return nil
}
