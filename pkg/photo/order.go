package photo

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CompareFunc orders two strings, returning a negative number, zero or a
// positive number like [strings.Compare].
type CompareFunc func(a, b string) int

// Ordinal compares strings byte-wise.
var Ordinal CompareFunc = strings.Compare

// Collated returns a locale-aware comparison for tag. Strings the collator
// considers equal are ordered ordinally so the result is a total order.
//
// A collator is not safe for concurrent use; call Collated once per
// goroutine.
func Collated(tag language.Tag) CompareFunc {
	c := collate.New(tag)
	return func(a, b string) int {
		if r := c.CompareString(a, b); r != 0 {
			return r
		}
		return strings.Compare(a, b)
	}
}

func orDefault(cmp CompareFunc) CompareFunc {
	if cmp == nil {
		return Collated(language.English)
	}
	return cmp
}

// ByName returns a copy of ps sorted by title.
func ByName(ps []Photo, cmp CompareFunc) []Photo {
	cmp = orDefault(cmp)
	out := slices.Clone(ps)
	slices.SortStableFunc(out, func(a, b Photo) int {
		return cmp(a.Title, b.Title)
	})
	return out
}

// ByGroup returns a copy of ps sorted by tags, then title.
func ByGroup(ps []Photo, cmp CompareFunc) []Photo {
	cmp = orDefault(cmp)
	out := slices.Clone(ps)
	slices.SortStableFunc(out, func(a, b Photo) int {
		if c := cmp(a.Tags, b.Tags); c != 0 {
			return c
		}
		return cmp(a.Title, b.Title)
	})
	return out
}

// ByLastName returns a copy of ps sorted by the last space-separated word of
// the title, ignoring case, then by the whole title ignoring case.
func ByLastName(ps []Photo, cmp CompareFunc) []Photo {
	cmp = orDefault(cmp)
	out := slices.Clone(ps)
	slices.SortStableFunc(out, func(a, b Photo) int {
		if c := cmp(lastName(a.Title), lastName(b.Title)); c != 0 {
			return c
		}
		return cmp(strings.ToLower(a.Title), strings.ToLower(b.Title))
	})
	return out
}

func lastName(title string) string {
	return strings.ToLower(title[strings.LastIndexByte(title, ' ')+1:])
}

// Group is a maximal run of consecutive photos sharing a tag.
type Group struct {
	// Tag is the tags string of the first member, verbatim.
	Tag    string
	Photos []Photo
}

// Groups splits a group-ordered slice into groups. A new group starts
// whenever a photo's tags differ, ignoring case, from the current group's
// tag. Concatenating the members of all groups reproduces ordered.
func Groups(ordered []Photo) []Group {
	var groups []Group
	for _, p := range ordered {
		if n := len(groups); n > 0 && strings.EqualFold(groups[n-1].Tag, p.Tags) {
			groups[n-1].Photos = append(groups[n-1].Photos, p)
			continue
		}
		groups = append(groups, Group{Tag: p.Tags, Photos: []Photo{p}})
	}
	return groups
}
