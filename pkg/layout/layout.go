package layout

import "github.com/bredd/photodirectory/pkg/photo"

const (
	// DefaultRows is the number of grid rows per page.
	DefaultRows = 3

	// DefaultCols is the number of photos per grid row.
	DefaultCols = 3

	// DefaultLinesPerColumn is the capacity of a grouped or list column, in lines.
	DefaultLinesPerColumn = 52

	// GroupOverhead is the number of lines a group header and footer take.
	GroupOverhead = 2
)

// Counter numbers pages across every section of a document.
// The zero value is ready to use; the first page is 1.
type Counter struct {
	n int
}

// Next advances the counter and returns the new page number.
func (c *Counter) Next() int {
	c.n++
	return c.n
}

// Current returns the most recently issued page number, or 0.
func (c *Counter) Current() int { return c.n }

// GridPage is one page of the photo grid.
type GridPage struct {
	Number int
	Rows   [][]photo.Photo
}

// Len returns the number of photos on the page.
func (p GridPage) Len() int {
	n := 0
	for _, r := range p.Rows {
		n += len(r)
	}
	return n
}

// Grid places ps, in order, into pages of rows×cols photos. Non-positive
// dimensions fall back to the defaults. Empty input produces no pages and
// consumes no page numbers.
func Grid(ps []photo.Photo, rows, cols int, pages *Counter) []GridPage {
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}

	var out []GridPage
	for len(ps) > 0 {
		page := GridPage{Number: pages.Next()}
		for r := 0; r < rows && len(ps) > 0; r++ {
			n := min(cols, len(ps))
			page.Rows = append(page.Rows, ps[:n:n])
			ps = ps[n:]
		}
		out = append(out, page)
	}
	return out
}

// BlockSize returns the number of lines g occupies in a column.
func BlockSize(g photo.Group) int {
	return len(g.Photos) + GroupOverhead
}

// Column is one column of the grouped listing.
type Column struct {
	Groups []photo.Group
	// Units is the total block size of Groups.
	Units int
}

// Pack distributes groups, in order, over columns of capacity lines.
// A column is closed when it already holds content and the next group
// would push it past capacity; a group that exactly fills the remaining
// space still fits. Non-positive capacity falls back to the default.
func Pack(groups []photo.Group, capacity int) []Column {
	if capacity <= 0 {
		capacity = DefaultLinesPerColumn
	}

	var cols []Column
	var cur Column
	for _, g := range groups {
		size := BlockSize(g)
		if cur.Units > 0 && cur.Units+size > capacity {
			cols = append(cols, cur)
			cur = Column{}
		}
		cur.Groups = append(cur.Groups, g)
		cur.Units += size
	}
	if cur.Units > 0 {
		cols = append(cols, cur)
	}
	return cols
}

// GroupedPage is the single page holding the grouped listing.
type GroupedPage struct {
	Number  int
	Columns []Column
}

// Grouped packs groups into columns on one page. The page is numbered even
// when there are no groups, since its header is always printed.
func Grouped(groups []photo.Group, capacity int, pages *Counter) GroupedPage {
	return GroupedPage{
		Number:  pages.Next(),
		Columns: Pack(groups, capacity),
	}
}

// ListPage is a single page listing one photo per line.
type ListPage struct {
	Number  int
	Columns [][]photo.Photo
}

// List splits ps into columns of capacity lines on one page.
func List(ps []photo.Photo, capacity int, pages *Counter) ListPage {
	if capacity <= 0 {
		capacity = DefaultLinesPerColumn
	}
	page := ListPage{Number: pages.Next()}
	for len(ps) > 0 {
		n := min(capacity, len(ps))
		page.Columns = append(page.Columns, ps[:n:n])
		ps = ps[n:]
	}
	return page
}
