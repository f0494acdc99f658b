package render

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"

	"github.com/bredd/photodirectory/pkg/errors"
)

//go:embed default.toml
var defaultTOML []byte

// Fragment names, matching the TOML keys of a template file.
const (
	fragStartDoc         = "start_doc"
	fragStartBody        = "start_body"
	fragEndBody          = "end_body"
	fragEndDoc           = "end_doc"
	fragStartPage        = "start_page"
	fragEndPage          = "end_page"
	fragPageHeader       = "page_header"
	fragStartRow         = "start_row"
	fragEndRow           = "end_row"
	fragPhoto            = "photo"
	fragStartGroupColumn = "start_group_column"
	fragEndGroupColumn   = "end_group_column"
	fragStartGroup       = "start_group"
	fragGroupMember      = "group_member"
	fragEndGroup         = "end_group"
	fragStartListColumn  = "start_list_column"
	fragEndListColumn    = "end_list_column"
	fragListEntry        = "list_entry"
)

// Template holds the source of every HTML fragment.
type Template struct {
	StartDoc  string `toml:"start_doc"`
	StartBody string `toml:"start_body"`
	EndBody   string `toml:"end_body"`
	EndDoc    string `toml:"end_doc"`

	StartPage  string `toml:"start_page"`
	EndPage    string `toml:"end_page"`
	PageHeader string `toml:"page_header"`

	StartRow string `toml:"start_row"`
	EndRow   string `toml:"end_row"`
	Photo    string `toml:"photo"`

	StartGroupColumn string `toml:"start_group_column"`
	EndGroupColumn   string `toml:"end_group_column"`
	StartGroup       string `toml:"start_group"`
	GroupMember      string `toml:"group_member"`
	EndGroup         string `toml:"end_group"`

	StartListColumn string `toml:"start_list_column"`
	EndListColumn   string `toml:"end_list_column"`
	ListEntry       string `toml:"list_entry"`
}

// DefaultTemplate returns the built-in fragments.
func DefaultTemplate() Template {
	var t Template
	if _, err := toml.NewDecoder(bytes.NewReader(defaultTOML)).Decode(&t); err != nil {
		panic("render: invalid default template: " + err.Error())
	}
	return t
}

// LoadTemplate reads a TOML template file on top of the default fragments.
// Unknown keys and fragments that do not parse are INVALID_CONFIG errors.
func LoadTemplate(path string) (Template, error) {
	t := DefaultTemplate()
	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		return Template{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read template %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Template{}, errors.New(errors.ErrCodeInvalidConfig,
			"template %s: unknown fragments: %s", path, strings.Join(keys, ", "))
	}
	if _, err := t.compile(); err != nil {
		return Template{}, err
	}
	return t, nil
}

func (t Template) fragments() map[string]string {
	return map[string]string{
		fragStartDoc:         t.StartDoc,
		fragStartBody:        t.StartBody,
		fragEndBody:          t.EndBody,
		fragEndDoc:           t.EndDoc,
		fragStartPage:        t.StartPage,
		fragEndPage:          t.EndPage,
		fragPageHeader:       t.PageHeader,
		fragStartRow:         t.StartRow,
		fragEndRow:           t.EndRow,
		fragPhoto:            t.Photo,
		fragStartGroupColumn: t.StartGroupColumn,
		fragEndGroupColumn:   t.EndGroupColumn,
		fragStartGroup:       t.StartGroup,
		fragGroupMember:      t.GroupMember,
		fragEndGroup:         t.EndGroup,
		fragStartListColumn:  t.StartListColumn,
		fragEndListColumn:    t.EndListColumn,
		fragListEntry:        t.ListEntry,
	}
}

// compile parses every fragment into one template set.
func (t Template) compile() (*template.Template, error) {
	root := template.New("photodirectory")
	for name, src := range t.fragments() {
		if _, err := root.New(name).Parse(src); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse fragment %s", name)
		}
	}
	return root, nil
}
