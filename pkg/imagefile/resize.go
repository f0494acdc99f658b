package imagefile

import (
	"bytes"
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/bredd/photodirectory/pkg/cache"
	"github.com/bredd/photodirectory/pkg/errors"
)

const (
	// DefaultWidth is the width of every output image, in pixels.
	DefaultWidth = 710

	// DefaultQuality is the JPEG quality of output images.
	DefaultQuality = 90
)

// Resizer writes a scaled, upright copy of the JPEG at src to dst.
// cached reports whether the output came from a cache.
type Resizer interface {
	Resize(ctx context.Context, src, dst string) (cached bool, err error)
}

// Imaging resizes with github.com/disintegration/imaging. The EXIF
// orientation is applied before scaling and the height follows the aspect
// ratio.
type Imaging struct {
	Width   int
	Quality int
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
}

// NewImaging creates an Imaging resizer. Zero width or quality select the
// defaults; a nil cache disables caching.
func NewImaging(width, quality int, c cache.Cache, logger *log.Logger) *Imaging {
	if width <= 0 {
		width = DefaultWidth
	}
	if quality <= 0 {
		quality = DefaultQuality
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Imaging{
		Width:   width,
		Quality: quality,
		Cache:   c,
		Keyer:   cache.NewDefaultKeyer(),
		Logger:  logger,
	}
}

// Resize implements Resizer. Cache failures are logged and otherwise
// ignored.
func (r *Imaging) Resize(ctx context.Context, src, dst string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeIO, err, "read %s", src)
	}

	key := r.Keyer.ImageKey(cache.Hash(data), cache.ImageKeyOpts{Width: r.Width, Quality: r.Quality})
	out, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "file", src, "err", err)
	}
	if hit {
		r.Logger.Debug("cache hit", "file", src)
		return true, writeFile(dst, out)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeImage, err, "decode %s", src)
	}
	img = imaging.Resize(img, r.Width, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(r.Quality)); err != nil {
		return false, errors.Wrap(errors.ErrCodeImage, err, "encode %s", dst)
	}

	if err := r.Cache.Set(ctx, key, buf.Bytes(), cache.DefaultTTL); err != nil {
		r.Logger.Warn("cache write failed", "file", src, "err", err)
	}
	return false, writeFile(dst, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

var _ Resizer = (*Imaging)(nil)
