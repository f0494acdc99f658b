// Package render writes the photo directory as one HTML document.
//
// # Overview
//
// The document structure is decided by [layout]: grid pages, the grouped
// page and the optional name list. This package walks those decisions and
// emits one HTML fragment per structural element, in document order:
//
//	start_doc, start_body
//	  per grid page:    start_page, page_header, (start_row, photo..., end_row)..., end_page
//	  grouped page:     start_page, page_header, (start_group_column, (start_group, group_member..., end_group)..., end_group_column)..., end_page
//	  name list page:   start_page, page_header, (start_list_column, list_entry..., end_list_column)..., end_page
//	end_body, end_doc
//
// # Templates
//
// Fragments are Go text/template sources held in a [Template]. The default
// set carries the stylesheet used for print and ships embedded as TOML.
// [LoadTemplate] overlays a user TOML file on the default, so a file only
// needs the fragments it changes:
//
//	photo = '''
//	<figure><img src='{{.Image}}'/><figcaption>{{.Name}}</figcaption></figure>
//	'''
//
// # Escaping
//
// Every text field is passed through [Escape] before it reaches a template:
// HTML special characters are escaped and an empty value becomes "&nbsp;"
// so empty cells keep their height.
//
// [layout]: github.com/bredd/photodirectory/pkg/layout
package render
