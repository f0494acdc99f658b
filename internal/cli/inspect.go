package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bredd/photodirectory/pkg/directory"
	"github.com/bredd/photodirectory/pkg/errors"
	"github.com/bredd/photodirectory/pkg/photo"
)

// inspectOpts holds the flags of the inspect command.
type inspectOpts struct {
	reader         string
	ordinal        bool
	skipUnreadable bool
}

// inspectCommand creates the inspect command for checking metadata without
// writing anything.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect <source folder>",
		Short: "List the title and tags read from each photo",
		Long: `List the title and tags read from each photo, in the order of the
grouped listing. Nothing is written; use this to find photos with missing
or misspelled metadata before generating a directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.reader, "reader", directory.DefaultReader, "metadata reader: exif, exiftool")
	cmd.Flags().BoolVar(&opts.ordinal, "ordinal", false, "sort byte-wise instead of alphabetically")
	cmd.Flags().BoolVar(&opts.skipUnreadable, "skip-unreadable", false, "skip photos whose metadata cannot be read")

	return cmd
}

// runInspect loads the photos and prints them grouped by tag.
func (c *CLI) runInspect(ctx context.Context, src string, opts inspectOpts) error {
	logger := loggerFromContext(ctx)
	reader, closeReader, err := newReader(opts.reader)
	if err != nil {
		return err
	}
	defer closeQuietly(logger, "metadata reader", closeReader)

	loader := photo.Loader{Reader: reader, Logger: logger, SkipUnreadable: opts.skipUnreadable}
	photos, err := loader.Load(ctx, src)
	if err != nil {
		if errors.Is(err, errors.ErrCodeIO) {
			return errors.Wrap(errors.ErrCodeSourceNotFound, err, "directory doesn't exist: %s", src)
		}
		return err
	}

	var cmp photo.CompareFunc
	if opts.ordinal {
		cmp = photo.Ordinal
	}
	ordered := photo.ByGroup(photos, cmp)
	groups := photo.Groups(ordered)

	fmt.Println(StyleTitle.Render(src))
	printSummary(ordered)
	printNewline()
	printKeyValue("Photos", StyleNumber.Render(strconv.Itoa(len(photos))))
	printKeyValue("Groups", StyleNumber.Render(strconv.Itoa(len(groups))))
	if missing := untitled(photos); missing > 0 {
		printWarning("%d photos have no title", missing)
	}
	return nil
}

func untitled(ps []photo.Photo) int {
	n := 0
	for _, p := range ps {
		if p.Title == "" {
			n++
		}
	}
	return n
}
