package metadata

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"unicode/utf16"
)

// ifdEntry is one IFD0 tag for the synthetic JPEGs built in these tests.
type ifdEntry struct {
	id  uint16
	typ uint16 // 1 = BYTE, 2 = ASCII
	val []byte
}

func asciiVal(s string) []byte { return append([]byte(s), 0) }

func utf16Val(s string) []byte {
	var buf bytes.Buffer
	for _, u := range utf16.Encode([]rune(s)) {
		_ = binary.Write(&buf, binary.LittleEndian, u)
	}
	buf.Write([]byte{0, 0})
	return buf.Bytes()
}

// buildTIFF lays out a little-endian TIFF with a single IFD.
func buildTIFF(entries []ifdEntry) []byte {
	var head, data bytes.Buffer
	le := binary.LittleEndian
	head.WriteString("II")
	_ = binary.Write(&head, le, uint16(42))
	_ = binary.Write(&head, le, uint32(8))
	_ = binary.Write(&head, le, uint16(len(entries)))

	dataStart := 8 + 2 + 12*len(entries) + 4
	for _, e := range entries {
		_ = binary.Write(&head, le, e.id)
		_ = binary.Write(&head, le, e.typ)
		_ = binary.Write(&head, le, uint32(len(e.val)))
		if len(e.val) <= 4 {
			inline := make([]byte, 4)
			copy(inline, e.val)
			head.Write(inline)
			continue
		}
		_ = binary.Write(&head, le, uint32(dataStart+data.Len()))
		data.Write(e.val)
	}
	_ = binary.Write(&head, le, uint32(0))
	return append(head.Bytes(), data.Bytes()...)
}

func segment(marker byte, payload []byte) []byte {
	out := []byte{0xff, marker, 0, 0}
	binary.BigEndian.PutUint16(out[2:], uint16(len(payload)+2))
	return append(out, payload...)
}

// buildJPEG returns a metadata-only JPEG stream (no image data).
func buildJPEG(entries []ifdEntry, xmp string) []byte {
	out := []byte{0xff, 0xd8}
	if len(entries) > 0 {
		out = append(out, segment(0xe1, append([]byte("Exif\x00\x00"), buildTIFF(entries)...))...)
	}
	if xmp != "" {
		out = append(out, segment(0xe1, append(slices.Clone(xmpHeader), xmp...))...)
	}
	return append(out, 0xff, 0xd9)
}

const sampleXMP = `<?xpacket begin="" id="W5M0MpCehiHzreSzNTczkc9d"?>
<x:xmpmeta xmlns:x="adobe:ns:meta/">
 <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Description rdf:about="" xmlns:dc="http://purl.org/dc/elements/1.1/">
   <dc:title>
    <rdf:Alt>
     <rdf:li xml:lang="fr-FR">Jeanne</rdf:li>
     <rdf:li xml:lang="x-default">Jane Doe</rdf:li>
    </rdf:Alt>
   </dc:title>
   <dc:subject>
    <rdf:Bag>
     <rdf:li>Unit 5</rdf:li>
     <rdf:li> Board </rdf:li>
     <rdf:li></rdf:li>
    </rdf:Bag>
   </dc:subject>
  </rdf:Description>
 </rdf:RDF>
</x:xmpmeta>
<?xpacket end="w"?>`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseXMP(t *testing.T) {
	title, subjects := parseXMP([]byte(sampleXMP))
	if title != "Jane Doe" {
		t.Errorf("title = %q, want %q", title, "Jane Doe")
	}
	want := []string{"Unit 5", "Board"}
	if !slices.Equal(subjects, want) {
		t.Errorf("subjects = %q, want %q", subjects, want)
	}
}

func TestParseXMPFirstTitleWithoutDefault(t *testing.T) {
	packet := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:dc="http://purl.org/dc/elements/1.1/">
<rdf:Description><dc:title><rdf:Alt><rdf:li xml:lang="de">Hans</rdf:li></rdf:Alt></dc:title></rdf:Description></rdf:RDF>`
	title, subjects := parseXMP([]byte(packet))
	if title != "Hans" {
		t.Errorf("title = %q, want %q", title, "Hans")
	}
	if len(subjects) != 0 {
		t.Errorf("subjects = %q, want none", subjects)
	}
}

func TestParseXMPMalformed(t *testing.T) {
	title, subjects := parseXMP([]byte("<not xml"))
	if title != "" || subjects != nil {
		t.Errorf("parseXMP(malformed) = %q, %q; want empty", title, subjects)
	}
}

func TestFindXMP(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"with xmp", buildJPEG(nil, sampleXMP), true},
		{"exif only", buildJPEG([]ifdEntry{{0x010e, 2, asciiVal("Lobby photo")}}, ""), false},
		{"not a jpeg", []byte("GIF89a...."), false},
		{"empty", nil, false},
		{"truncated segment", []byte{0xff, 0xd8, 0xff, 0xe1, 0x40, 0x00, 'h'}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findXMP(tt.data)
			if (got != nil) != tt.want {
				t.Errorf("findXMP() found = %v, want %v", got != nil, tt.want)
			}
		})
	}
}

func TestEXIFReader(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		wantTitle string
		wantTags  []string
	}{
		{
			name:      "xmp wins",
			data:      buildJPEG([]ifdEntry{{tagXPTitle, 1, utf16Val("Other Name")}}, sampleXMP),
			wantTitle: "Jane Doe",
			wantTags:  []string{"Unit 5", "Board"},
		},
		{
			name: "xp tags",
			data: buildJPEG([]ifdEntry{
				{0x010e, 2, asciiVal("Lobby photo")},
				{tagXPTitle, 1, utf16Val("Zoë Brown")},
				{tagXPKeywords, 1, utf16Val("Unit 12; Garden;")},
			}, ""),
			wantTitle: "Zoë Brown",
			wantTags:  []string{"Unit 12", "Garden"},
		},
		{
			name:      "image description fallback",
			data:      buildJPEG([]ifdEntry{{0x010e, 2, asciiVal("  Lobby photo  ")}}, ""),
			wantTitle: "Lobby photo",
		},
		{
			name: "no metadata",
			data: []byte{0xff, 0xd8, 0xff, 0xd9},
		},
		{
			name: "not an image",
			data: []byte("plain text"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "p.jpg", tt.data)
			r := NewEXIF()

			title, err := r.ReadTitle(path)
			if err != nil {
				t.Fatalf("ReadTitle() error = %v", err)
			}
			if title != tt.wantTitle {
				t.Errorf("ReadTitle() = %q, want %q", title, tt.wantTitle)
			}

			tags, err := r.ReadTags(path)
			if err != nil {
				t.Fatalf("ReadTags() error = %v", err)
			}
			if !slices.Equal(tags, tt.wantTags) {
				t.Errorf("ReadTags() = %q, want %q", tags, tt.wantTags)
			}
		})
	}
}

func TestEXIFReaderMissingFile(t *testing.T) {
	r := NewEXIF()
	if _, err := r.ReadTitle(filepath.Join(t.TempDir(), "missing.jpg")); err == nil {
		t.Error("ReadTitle(missing) should fail")
	}
}

func TestSplitKeywords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a; b ;;c", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		if got := splitKeywords(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("splitKeywords(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatic(t *testing.T) {
	boom := errors.New("locked")
	r := Static{
		"a.jpg": {Title: "Ann", Tags: []string{"Unit", "1"}},
		"b.jpg": {Err: boom},
	}

	title, err := r.ReadTitle("/photos/a.jpg")
	if err != nil || title != "Ann" {
		t.Errorf("ReadTitle(a) = %q, %v", title, err)
	}
	tags, _ := r.ReadTags("/photos/a.jpg")
	if !slices.Equal(tags, []string{"Unit", "1"}) {
		t.Errorf("ReadTags(a) = %q", tags)
	}
	if _, err := r.ReadTitle("b.jpg"); !errors.Is(err, boom) {
		t.Errorf("ReadTitle(b) error = %v, want %v", err, boom)
	}
	if title, err := r.ReadTitle("c.jpg"); title != "" || err != nil {
		t.Errorf("ReadTitle(c) = %q, %v; want empty", title, err)
	}
}
