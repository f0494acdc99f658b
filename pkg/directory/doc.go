// Package directory generates a printable photo directory.
//
// This package implements the complete pipeline that turns a folder of
// JPEG portraits into one HTML document and a set of resized images:
//
//  1. Prepare: create the destination folder, or delete every regular file
//     directly inside it (subfolders are left alone)
//  2. Load: read title and tag metadata from each photo
//  3. Layout: grid pages in name order, then the grouped page in tag order,
//     then the optional name list, numbered by one shared page counter
//  4. Images: resize every photo placed on a grid page
//  5. Render: write the HTML document
//
// # Usage
//
//	runner := directory.NewRunner(metadata.NewEXIF(), resizer, logger)
//	result, err := runner.Execute(ctx, directory.Options{
//	    Source:      "portraits",
//	    Destination: "out",
//	    Title:       "Maple Court Residents",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Output)
//
// Options can also come from a TOML file, see [LoadConfig].
package directory
