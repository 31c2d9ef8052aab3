package rendering

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/deal-docs/internal/document"
)

// Package part names touched after the writer has produced the archive.
const (
	partStyles       = "word/styles.xml"
	partRels         = "_rels/.rels"
	partContentTypes = "[Content_Types].xml"
	partCore         = "docProps/core.xml"

	coreRelType     = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	coreContentType = "application/vnd.openxmlformats-package.core-properties+xml"
)

// repack rewrites the archive with entries in sorted name order and zeroed
// timestamps, adds the paragraph styles the blocks reference and records
// the document title and description in the core properties.
func repack(raw []byte, doc *document.Document) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to reopen package: %w", err)
	}

	parts := make(map[string][]byte, len(zr.File)+1)
	for _, f := range zr.File {
		body, err := readPart(f)
		if err != nil {
			return nil, err
		}
		parts[f.Name] = body
	}

	if styles, ok := parts[partStyles]; ok {
		parts[partStyles] = addStyles(styles, doc.Presets)
	}
	parts[partCore] = coreProperties(doc)
	if rels, ok := parts[partRels]; ok && !bytes.Contains(rels, []byte(partCore)) {
		rel := `<Relationship Id="rIdCoreProps" Type="` + coreRelType + `" Target="` + partCore + `"/>`
		parts[partRels] = insertBefore(rels, "</Relationships>", rel)
	}
	if types, ok := parts[partContentTypes]; ok && !bytes.Contains(types, []byte("/"+partCore)) {
		override := `<Override PartName="/` + partCore + `" ContentType="` + coreContentType + `"/>`
		parts[partContentTypes] = insertBefore(types, "</Types>", override)
	}

	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	sort.Strings(names)
	// [Content_Types].xml sorts first already; readers expect it there.

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", name, err)
		}
		if _, err := w.Write(parts[name]); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close package: %w", err)
	}
	return buf.Bytes(), nil
}

func readPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer rc.Close()

	body, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	return body, nil
}

func insertBefore(body []byte, closing, fragment string) []byte {
	i := bytes.LastIndex(body, []byte(closing))
	if i < 0 {
		return body
	}
	out := make([]byte, 0, len(body)+len(fragment))
	out = append(out, body[:i]...)
	out = append(out, fragment...)
	return append(out, body[i:]...)
}

// paragraphStyle describes one style definition added to styles.xml.
type paragraphStyle struct {
	id      string
	name    string
	outline int
	style   document.TextStyle
}

// addStyles defines the Title and Heading styles referenced by block kinds,
// skipping any the writer's theme already carries.
func addStyles(styles []byte, presets document.StylePresets) []byte {
	defs := []paragraphStyle{
		{id: styleTitle, name: "Title", outline: -1, style: presets.Title},
		{id: styleHeading1, name: "heading 1", outline: 0, style: presets.Heading1},
		{id: styleHeading2, name: "heading 2", outline: 1, style: presets.Heading2},
	}

	var sb strings.Builder
	for _, d := range defs {
		if bytes.Contains(styles, []byte(`w:styleId="`+d.id+`"`)) {
			continue
		}
		sb.WriteString(`<w:style w:type="paragraph" w:styleId="` + d.id + `">`)
		sb.WriteString(`<w:name w:val="` + d.name + `"/><w:qFormat/>`)
		sb.WriteString(`<w:pPr><w:keepNext/>`)
		fmt.Fprintf(&sb, `<w:spacing w:before="%d" w:after="%d"/>`, d.style.Spacing.Before, d.style.Spacing.After)
		if d.style.Alignment != document.AlignInherit {
			sb.WriteString(`<w:jc w:val="` + string(d.style.Alignment) + `"/>`)
		}
		if d.outline >= 0 {
			fmt.Fprintf(&sb, `<w:outlineLvl w:val="%d"/>`, d.outline)
		}
		sb.WriteString(`</w:pPr><w:rPr>`)
		if presets.Font != "" {
			sb.WriteString(`<w:rFonts w:ascii="` + presets.Font + `" w:hAnsi="` + presets.Font + `" w:cs="` + presets.Font + `"/>`)
		}
		if d.style.Bold {
			sb.WriteString(`<w:b/>`)
		}
		if d.style.Color != "" {
			sb.WriteString(`<w:color w:val="` + d.style.Color + `"/>`)
		}
		if d.style.Size > 0 {
			fmt.Fprintf(&sb, `<w:sz w:val="%d"/>`, d.style.Size)
		}
		sb.WriteString(`</w:rPr></w:style>`)
	}
	if sb.Len() == 0 {
		return styles
	}
	return insertBefore(styles, "</w:styles>", sb.String())
}

// coreProperties renders docProps/core.xml. No timestamps are written so
// identical documents produce identical parts.
func coreProperties(doc *document.Document) []byte {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"`)
	sb.WriteString(` xmlns:dc="http://purl.org/dc/elements/1.1/">`)
	sb.WriteString(`<dc:title>` + escapeXML(doc.Title) + `</dc:title>`)
	sb.WriteString(`<dc:description>` + escapeXML(doc.Description) + `</dc:description>`)
	sb.WriteString(`</cp:coreProperties>`)
	return []byte(sb.String())
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
