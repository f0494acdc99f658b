package render

import (
	"bufio"
	"bytes"
	"html"
	"io"
	"os"
	"text/template"

	"github.com/bredd/photodirectory/pkg/errors"
	"github.com/bredd/photodirectory/pkg/layout"
)

// Escape HTML-escapes s. An empty string becomes a non-breaking space.
func Escape(s string) string {
	if s == "" {
		return "&nbsp;"
	}
	return html.EscapeString(s)
}

// Document is everything that ends up in the HTML file.
type Document struct {
	Title    string
	Grid     []layout.GridPage
	Grouped  layout.GroupedPage
	NameList *layout.ListPage

	// Images maps a photo's source Filename to the output image file name
	// used in the grid.
	Images map[string]string
}

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	tmpl Template
}

// WithTemplate replaces the default fragments.
func WithTemplate(t Template) Option { return func(r *renderer) { r.tmpl = t } }

func newRenderer(opts ...Option) renderer {
	r := renderer{tmpl: DefaultTemplate()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Fragment data. Every string is already escaped.
type (
	docData struct {
		Title string
	}
	headerData struct {
		Title  string
		Number int
	}
	photoData struct {
		Image string
		Name  string
		Tags  string
	}
	groupData struct {
		Tag string
	}
	memberData struct {
		Name string
	}
	entryData struct {
		Name string
		Tags string
	}
)

// Render writes doc as HTML to w.
func Render(w io.Writer, doc Document, opts ...Option) error {
	r := newRenderer(opts...)
	t, err := r.tmpl.compile()
	if err != nil {
		return err
	}

	e := &emitter{w: w, t: t}
	title := docData{Title: Escape(doc.Title)}
	header := func(n int) headerData { return headerData{Title: title.Title, Number: n} }

	e.emit(fragStartDoc, title)
	e.emit(fragStartBody, title)

	for _, page := range doc.Grid {
		e.emit(fragStartPage, title)
		e.emit(fragPageHeader, header(page.Number))
		for _, row := range page.Rows {
			e.emit(fragStartRow, title)
			for _, p := range row {
				e.emit(fragPhoto, photoData{
					Image: html.EscapeString(doc.Images[p.Filename]),
					Name:  Escape(p.Title),
					Tags:  Escape(p.Tags),
				})
			}
			e.emit(fragEndRow, title)
		}
		e.emit(fragEndPage, title)
	}

	e.emit(fragStartPage, title)
	e.emit(fragPageHeader, header(doc.Grouped.Number))
	for _, col := range doc.Grouped.Columns {
		e.emit(fragStartGroupColumn, title)
		for _, g := range col.Groups {
			e.emit(fragStartGroup, groupData{Tag: Escape(g.Tag)})
			for _, p := range g.Photos {
				e.emit(fragGroupMember, memberData{Name: Escape(p.Title)})
			}
			e.emit(fragEndGroup, title)
		}
		e.emit(fragEndGroupColumn, title)
	}
	e.emit(fragEndPage, title)

	if doc.NameList != nil {
		e.emit(fragStartPage, title)
		e.emit(fragPageHeader, header(doc.NameList.Number))
		for _, col := range doc.NameList.Columns {
			e.emit(fragStartListColumn, title)
			for _, p := range col {
				e.emit(fragListEntry, entryData{Name: Escape(p.Title), Tags: Escape(p.Tags)})
			}
			e.emit(fragEndListColumn, title)
		}
		e.emit(fragEndPage, title)
	}

	e.emit(fragEndBody, title)
	e.emit(fragEndDoc, title)
	return e.err
}

// RenderHTML renders doc into memory.
func RenderHTML(doc Document, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, doc, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile renders doc to path as UTF-8 without a byte order mark.
func WriteFile(path string, doc Document, opts ...Option) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(errors.ErrCodeIO, cerr, "close %s", path)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := Render(bw, doc, opts...); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

// emitter executes fragments until the first error.
type emitter struct {
	w   io.Writer
	t   *template.Template
	err error
}

func (e *emitter) emit(name string, data any) {
	if e.err != nil {
		return
	}
	if err := e.t.ExecuteTemplate(e.w, name, data); err != nil {
		e.err = errors.Wrap(errors.ErrCodeRender, err, "fragment %s", name)
	}
}

