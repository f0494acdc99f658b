package metadata

import (
	"bytes"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	"golang.org/x/text/encoding/unicode"
)

// Windows-specific IFD0 tags. They hold UTF-16LE text in a BYTE array.
const (
	tagXPTitle    = 0x9c9b
	tagXPKeywords = 0x9c9e
)

// EXIF reads metadata with goexif and a small XMP scanner.
//
// Title lookup order: XMP dc:title, EXIF XPTitle, EXIF ImageDescription.
// Tags lookup order: XMP dc:subject, EXIF XPKeywords (split on ';').
//
// Each file is read once; the result of the most recent file is kept so
// ReadTitle followed by ReadTags costs a single read. EXIF is not safe for
// concurrent use.
type EXIF struct {
	last   string
	fields fields
}

type fields struct {
	title string
	tags  []string
}

// NewEXIF creates an EXIF reader.
func NewEXIF() *EXIF {
	return &EXIF{}
}

// ReadTitle implements Reader.
func (r *EXIF) ReadTitle(path string) (string, error) {
	f, err := r.read(path)
	return f.title, err
}

// ReadTags implements Reader.
func (r *EXIF) ReadTags(path string) ([]string, error) {
	f, err := r.read(path)
	return f.tags, err
}

func (r *EXIF) read(path string) (fields, error) {
	if path == r.last {
		return r.fields, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fields{}, err
	}
	r.last, r.fields = path, parseFields(data)
	return r.fields, nil
}

func parseFields(data []byte) fields {
	var f fields
	var xmpTitle string
	var xmpSubjects []string
	if packet := findXMP(data); packet != nil {
		xmpTitle, xmpSubjects = parseXMP(packet)
	}

	// Decode returns a usable *Exif alongside non-critical errors; a nil
	// result simply means the file has no EXIF block.
	x, _ := exif.Decode(bytes.NewReader(data))

	f.title = firstNonEmpty(xmpTitle, xpTag(x, tagXPTitle), stringTag(x, exif.ImageDescription))
	switch {
	case len(xmpSubjects) > 0:
		f.tags = xmpSubjects
	default:
		f.tags = splitKeywords(xpTag(x, tagXPKeywords))
	}
	return f
}

func stringTag(x *exif.Exif, name exif.FieldName) string {
	if x == nil {
		return ""
	}
	tag, err := x.Get(name)
	if err != nil || tag.Format() != tiff.StringVal {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}

func xpTag(x *exif.Exif, id uint16) string {
	if x == nil || x.Tiff == nil || len(x.Tiff.Dirs) == 0 {
		return ""
	}
	for _, tag := range x.Tiff.Dirs[0].Tags {
		if tag.Id == id {
			return decodeUTF16(tag.Val)
		}
	}
	return ""
}

func decodeUTF16(b []byte) string {
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimRight(string(out), "\x00"))
}

// splitKeywords splits a Windows keyword list ("a;b; c") into its entries.
func splitKeywords(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ";") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var _ Reader = (*EXIF)(nil)
