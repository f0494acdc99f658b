package photo

import "strings"

// Photo is one portrait in the directory.
type Photo struct {
	// Filename is the path of the source JPEG.
	Filename string
	// Title is the trimmed title metadata, or "" when absent.
	Title string
	// Tags is the tag metadata joined with single spaces, or "" when absent.
	Tags string
}

// New builds a Photo from raw metadata values, applying the trimming and
// joining rules used everywhere photos are created.
func New(filename, title string, tags []string) Photo {
	return Photo{
		Filename: filename,
		Title:    strings.TrimSpace(title),
		Tags:     strings.TrimSpace(strings.Join(tags, " ")),
	}
}
