// Package imagefile produces the portrait files that sit next to the
// generated directory.
//
// Three concerns live here:
//
//   - [FilenameEncode] turns a photo title into a safe file name stem.
//   - [Namer] assigns each title a file name and applies a collision
//     [Policy] when two different titles encode to the same stem.
//   - [Resizer] writes a scaled, upright copy of a source JPEG. [Imaging]
//     is the implementation used by the CLI; its output is cached by
//     source content and settings.
//
// A typical run names and resizes every photo placed on a grid page:
//
//	namer := imagefile.NewNamer(imagefile.CollisionSuffix)
//	name, err := namer.Name(p.Title)
//	cached, err := resizer.Resize(ctx, p.Filename, filepath.Join(dst, name))
package imagefile
