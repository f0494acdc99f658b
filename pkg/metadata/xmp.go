package metadata

import (
	"bytes"
	"encoding/binary"
	"encoding/xml"
	"strings"
)

const (
	nsDC  = "http://purl.org/dc/elements/1.1/"
	nsRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
)

// xmpHeader prefixes the XMP packet inside a JPEG APP1 segment.
var xmpHeader = []byte("http://ns.adobe.com/xap/1.0/\x00")

// JPEG markers.
const (
	markerSOI  = 0xd8
	markerEOI  = 0xd9
	markerSOS  = 0xda
	markerAPP1 = 0xe1
)

// findXMP walks the JPEG segments ahead of the image data and returns the
// XMP packet, or nil if the file has none or is not a JPEG.
func findXMP(data []byte) []byte {
	if len(data) < 4 || data[0] != 0xff || data[1] != markerSOI {
		return nil
	}
	for i := 2; i+4 <= len(data); {
		if data[i] != 0xff {
			return nil
		}
		marker := data[i+1]
		switch {
		case marker == 0xff:
			// fill byte
			i++
			continue
		case marker == markerSOS || marker == markerEOI:
			return nil
		case marker >= 0xd0 && marker <= 0xd7, marker == 0x01:
			// standalone markers carry no length
			i += 2
			continue
		}
		size := int(binary.BigEndian.Uint16(data[i+2 : i+4]))
		end := i + 2 + size
		if size < 2 || end > len(data) {
			return nil
		}
		payload := data[i+4 : end]
		if marker == markerAPP1 && bytes.HasPrefix(payload, xmpHeader) {
			return payload[len(xmpHeader):]
		}
		i = end
	}
	return nil
}

// parseXMP extracts dc:title and dc:subject from an XMP packet. The title
// prefers the x-default language alternative and falls back to the first
// one. Malformed XML yields whatever was parsed before the error.
func parseXMP(packet []byte) (title string, subjects []string) {
	d := xml.NewDecoder(bytes.NewReader(packet))
	d.Strict = false

	var (
		field        string // "title" or "subject" while inside one
		inItem       bool
		lang         string
		text         strings.Builder
		firstTitle   string
		defaultTitle string
	)

	for {
		tok, err := d.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Space == nsDC && (t.Name.Local == "title" || t.Name.Local == "subject"):
				field = t.Name.Local
			case field != "" && t.Name.Space == nsRDF && t.Name.Local == "li":
				inItem, lang = true, ""
				text.Reset()
				for _, a := range t.Attr {
					if a.Name.Local == "lang" {
						lang = a.Value
					}
				}
			}
		case xml.CharData:
			if inItem {
				text.Write(t)
			}
		case xml.EndElement:
			switch {
			case inItem && t.Name.Space == nsRDF && t.Name.Local == "li":
				inItem = false
				v := strings.TrimSpace(text.String())
				if v == "" {
					continue
				}
				if field == "subject" {
					subjects = append(subjects, v)
					continue
				}
				if firstTitle == "" {
					firstTitle = v
				}
				if lang == "x-default" && defaultTitle == "" {
					defaultTitle = v
				}
			case t.Name.Space == nsDC && t.Name.Local == field:
				field = ""
			}
		}
	}

	return firstNonEmpty(defaultTitle, firstTitle), subjects
}
