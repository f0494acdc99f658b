package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bredd/photodirectory/pkg/directory"
	"github.com/bredd/photodirectory/pkg/errors"
	"github.com/bredd/photodirectory/pkg/imagefile"
	"github.com/bredd/photodirectory/pkg/layout"
)

// generateFlags holds the flags of the generate (root) command that are not
// directory options.
type generateFlags struct {
	config  string
	noCache bool
	confirm bool
	pause   bool
}

// generateCommand creates the command that builds a directory.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		gf    generateFlags
		flags directory.Options
	)

	cmd := &cobra.Command{
		Use:   usage,
		Short: "Build a printable photo directory from a folder of portraits",
		Long: `Build a printable photo directory from a folder of JPEG portraits.

Each photo's title and tags are read from its metadata. The photos are laid
out three by three per page in name order, followed by a page listing
everyone grouped by tag (for example by apartment). The result is a single
HTML file plus one resized image per photo in the destination folder.

Every file directly inside an existing destination folder is deleted first.
Use --confirm to be asked before anything is deleted.

A source folder named like a subcommand (inspect, cache, completion) runs
that subcommand instead; pass it as a path, for example ./cache.`,
		Args: positionalArgs,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) < 2 {
				return nil, cobra.ShellCompDirectiveFilterDirs
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts directory.Options
			if gf.config != "" {
				if err := directory.LoadConfig(gf.config, &opts); err != nil {
					return err
				}
			}
			applyFlags(cmd.Flags(), &opts, flags)

			opts.Source, opts.Destination = args[0], args[1]
			if len(args) > 2 {
				opts.Title = args[2]
			}

			err := c.runGenerate(cmd.Context(), opts, gf)
			if gf.pause {
				if perr := waitForKey(cmd.Context()); perr != nil && err == nil {
					err = perr
				}
			}
			return err
		},
	}

	cmd.Flags().StringVar(&gf.config, "config", "", "TOML file with default options")
	cmd.Flags().BoolVar(&gf.noCache, "no-cache", false, "disable the resized image cache")
	cmd.Flags().BoolVar(&gf.confirm, "confirm", false, "ask before deleting files in the destination")
	cmd.Flags().BoolVar(&gf.pause, "pause", false, "wait for a key press before exiting")

	cmd.Flags().StringVar(&flags.TemplateFile, "template", "", "TOML file overriding HTML fragments")
	cmd.Flags().IntVar(&flags.Width, "width", imagefile.DefaultWidth, "width of resized images in pixels")
	cmd.Flags().IntVar(&flags.Quality, "quality", imagefile.DefaultQuality, "JPEG quality of resized images (1-100)")
	cmd.Flags().IntVar(&flags.LinesPerColumn, "lines-per-column", layout.DefaultLinesPerColumn, "capacity of a listing column in lines")
	cmd.Flags().BoolVar(&flags.NameList, "name-list", false, "add a page listing every name with its tags")
	cmd.Flags().StringVar(&flags.NameListOrder, "name-list-order", directory.DefaultNameListOrder, "name list order: first, last")
	cmd.Flags().BoolVar(&flags.Ordinal, "ordinal", false, "sort byte-wise instead of alphabetically")
	cmd.Flags().StringVar(&flags.Collision, "collision", string(imagefile.DefaultPolicy), "image name collisions: suffix, fail, overwrite")
	cmd.Flags().BoolVar(&flags.SkipUnreadable, "skip-unreadable", false, "skip photos whose metadata cannot be read")
	cmd.Flags().StringVar(&flags.Reader, "reader", directory.DefaultReader, "metadata reader: exif, exiftool")

	return cmd
}

// positionalArgs accepts a source, a destination and an optional title.
func positionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errors.New(errors.ErrCodeInvalidArgs, "syntax: %s", usage)
	}
	return nil
}

// applyFlags copies every flag the user set onto opts, so explicit flags
// win over the config file and the config file wins over flag defaults.
func applyFlags(fs *pflag.FlagSet, opts *directory.Options, flags directory.Options) {
	overrides := map[string]func(){
		"template":         func() { opts.TemplateFile = flags.TemplateFile },
		"width":            func() { opts.Width = flags.Width },
		"quality":          func() { opts.Quality = flags.Quality },
		"lines-per-column": func() { opts.LinesPerColumn = flags.LinesPerColumn },
		"name-list":        func() { opts.NameList = flags.NameList },
		"name-list-order":  func() { opts.NameListOrder = flags.NameListOrder },
		"ordinal":          func() { opts.Ordinal = flags.Ordinal },
		"collision":        func() { opts.Collision = flags.Collision },
		"skip-unreadable":  func() { opts.SkipUnreadable = flags.SkipUnreadable },
		"reader":           func() { opts.Reader = flags.Reader },
	}
	for name, apply := range overrides {
		if fs.Changed(name) {
			apply()
		}
	}
}

// runGenerate wires the reader, cache and resizer and runs the directory.
func (c *CLI) runGenerate(ctx context.Context, opts directory.Options, gf generateFlags) error {
	logger := loggerFromContext(ctx)

	reader, closeReader, err := newReader(opts.Reader)
	if err != nil {
		return err
	}
	defer closeQuietly(logger, "metadata reader", closeReader)

	imgCache, err := newCache(gf.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer closeQuietly(logger, "image cache", imgCache.Close)

	resizer := imagefile.NewImaging(opts.Width, opts.Quality, imgCache, logger)
	opts.Logger = logger
	if gf.confirm {
		opts.ConfirmClear = func(dir string, files []string) (bool, error) {
			return confirmClear(ctx, dir, files)
		}
	}

	prog := newProgress(logger)
	result, err := directory.NewRunner(reader, resizer, logger).Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done("Generated directory", "pages", result.Stats.Pages, "photos", result.Stats.Photos)

	printNewline()
	printSummary(result.Photos)
	printNewline()
	printSuccess("Photo directory ready")
	printFile(result.Output)
	printStats(result.Stats)
	return nil
}
