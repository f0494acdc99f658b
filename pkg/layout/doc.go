// Package layout turns ordered photos into print pages.
//
// # Overview
//
// A photo directory is a sequence of print pages numbered continuously by a
// shared [Counter]. Three layouts feed it:
//
//   - [Grid]: photos in name order, a fixed grid per page (3×3 by default).
//     Pages fill greedily; the last page may hold fewer rows, and its last
//     row fewer photos. Cells are never padded.
//   - [Grouped]: groups of same-tag photos packed into columns on a single
//     page. A group costs its member count plus [GroupOverhead] lines. A
//     column closes when the next group would overflow it, but a group is
//     never split: an oversized group sits alone in its own column.
//   - [List]: one line per photo in columns of fixed height on a single page.
//
// The layouts are pure: they consume slices and return page descriptions,
// leaving image and HTML output to the caller.
package layout
