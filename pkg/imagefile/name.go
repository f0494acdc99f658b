package imagefile

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/bredd/photodirectory/pkg/errors"
)

// Extension is appended to every generated file name.
const Extension = ".jpg"

// fallbackStem names photos whose title has no letters or digits.
const fallbackStem = "photo"

// FilenameEncode keeps only the letters and digits of s.
func FilenameEncode(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Policy decides what happens when two different titles encode to the
// same file name.
type Policy string

const (
	// CollisionSuffix numbers later titles: name-2.jpg, name-3.jpg, ...
	CollisionSuffix Policy = "suffix"
	// CollisionFail aborts with a FILENAME_COLLISION error.
	CollisionFail Policy = "fail"
	// CollisionOverwrite lets the last photo written win.
	CollisionOverwrite Policy = "overwrite"
)

// DefaultPolicy is used when no policy is configured.
const DefaultPolicy = CollisionSuffix

// ParsePolicy converts a flag or config value to a Policy.
// An empty string selects [DefaultPolicy].
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DefaultPolicy, nil
	case CollisionSuffix, CollisionFail, CollisionOverwrite:
		return p, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput,
		"invalid collision policy %q (must be one of: suffix, fail, overwrite)", s)
}

// Namer assigns output file names to titles for one document.
//
// The same title always gets the same name. Names are compared
// case-insensitively so the output is safe on case-insensitive filesystems.
type Namer struct {
	policy  Policy
	byTitle map[string]string
	owner   map[string]string // lower-cased name -> title that claimed it
}

// NewNamer creates a Namer with the given policy.
func NewNamer(policy Policy) *Namer {
	if policy == "" {
		policy = DefaultPolicy
	}
	return &Namer{
		policy:  policy,
		byTitle: make(map[string]string),
		owner:   make(map[string]string),
	}
}

// Name returns the file name for title.
func (n *Namer) Name(title string) (string, error) {
	if name, ok := n.byTitle[title]; ok {
		return name, nil
	}

	stem := FilenameEncode(title)
	if stem == "" {
		stem = fallbackStem
	}
	name := stem + Extension

	if prev, taken := n.owner[strings.ToLower(name)]; taken {
		switch n.policy {
		case CollisionFail:
			return "", errors.New(errors.ErrCodeFilenameCollision,
				"%q and %q both map to %s", prev, title, name)
		case CollisionOverwrite:
			// last writer wins
		default:
			for i := 2; ; i++ {
				name = fmt.Sprintf("%s-%d%s", stem, i, Extension)
				if _, taken := n.owner[strings.ToLower(name)]; !taken {
					break
				}
			}
		}
	}

	n.owner[strings.ToLower(name)] = title
	n.byTitle[title] = name
	return name, nil
}
