// Package photo holds the in-memory model of a photo directory run.
//
// A [Photo] is one source JPEG together with the title and tags read from
// its embedded metadata. The list of photos is rebuilt on every run by a
// [Loader] and never persisted.
//
// # Orderings
//
// The directory shows the same photos twice, so the package derives new,
// independently sorted slices instead of sorting in place:
//
//   - [ByName]: ascending by title
//   - [ByGroup]: ascending by tags, then title
//   - [ByLastName]: ascending by the last word of the title, ignoring case
//
// All orderings are stable. String comparison is pluggable through
// [CompareFunc]; the default is an English collator ([Collated]) with an
// ordinal tie-break, and [Ordinal] gives plain byte-wise ordering.
//
// # Groups
//
// [Groups] splits a group-ordered slice into maximal runs of photos whose
// tags are equal ignoring case. Under collation, strings that differ only in
// case always sort next to each other, so a group is never split by the
// sort itself.
package photo
