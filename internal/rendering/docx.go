package rendering

import (
	"bytes"
	"fmt"
	"strconv"

	docx "github.com/fumiama/go-docx"
	"github.com/jonathan/deal-docs/internal/document"
)

const (
	// MIMEType is the content type of serialized documents.
	MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	// Extension is the file extension of serialized documents, without the dot.
	Extension = "docx"

	// textWidthTwips is the printable width of an A4 page with 1in margins.
	textWidthTwips = 9026

	styleTitle    = "Title"
	styleHeading1 = "Heading1"
	styleHeading2 = "Heading2"
)

// Serializer turns a document into file bytes.
type Serializer interface {
	Serialize(doc *document.Document) ([]byte, error)
}

// DocxSerializer writes Office Open XML word-processing packages.
type DocxSerializer struct{}

// NewDocxSerializer returns a DocxSerializer.
func NewDocxSerializer() *DocxSerializer {
	return &DocxSerializer{}
}

// Serialize renders every block of doc in order. Runs without an explicit
// size, colour or weight take them from doc.Presets.
func (s *DocxSerializer) Serialize(doc *document.Document) (out []byte, err error) {
	if doc == nil {
		return nil, &RenderError{Message: "document is nil"}
	}

	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = &RenderError{Message: "docx writer panicked", Cause: fmt.Errorf("%v", r)}
		}
	}()

	w := docx.New().WithDefaultTheme()

	for i, b := range doc.Blocks {
		if b.Kind == document.KindTable {
			if b.Table == nil {
				return nil, &RenderError{Message: fmt.Sprintf("block %d (%s) is a table without rows", i, b.Section)}
			}
			writeTable(w, b.Table, doc.Presets)
			continue
		}
		writeParagraph(w.AddParagraph(), b, doc.Presets)
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, &RenderError{Message: "failed to write docx package", Cause: err}
	}

	out, err = repack(buf.Bytes(), doc)
	if err != nil {
		return nil, &RenderError{Message: "failed to normalise docx package", Cause: err}
	}
	return out, nil
}

func writeParagraph(p *docx.Paragraph, b document.Block, presets document.StylePresets) {
	preset := presets.For(b.Kind)

	switch b.Kind {
	case document.KindTitle:
		p.Style(styleTitle)
	case document.KindHeading1:
		p.Style(styleHeading1)
	case document.KindHeading2:
		p.Style(styleHeading2)
	}

	align := b.Alignment
	if align == document.AlignInherit {
		align = preset.Alignment
	}
	if align != document.AlignInherit {
		p.Justification(string(align))
	}

	spacing := b.Spacing
	if spacing == (document.Spacing{}) {
		spacing = preset.Spacing
	}
	if spacing != (document.Spacing{}) || b.IndentLeft > 0 {
		if p.Properties == nil {
			p.Properties = &docx.ParagraphProperties{}
		}
		if spacing != (document.Spacing{}) {
			p.Properties.Spacing = &docx.Spacing{Before: spacing.Before, After: spacing.After}
		}
		if b.IndentLeft > 0 {
			p.Properties.Ind = &docx.Ind{Left: b.IndentLeft}
		}
	}

	if b.PageBreakBefore {
		p.AddPageBreaks()
	}

	for _, r := range b.Runs {
		writeRun(p.AddText(r.Text), r, preset, presets.Font)
	}
}

func writeRun(run *docx.Run, r document.Run, preset document.TextStyle, font string) {
	if font != "" {
		run.Font(font, font, font, "default")
	}

	size := r.Size
	if size == 0 {
		size = preset.Size
	}
	if size > 0 {
		run.Size(strconv.Itoa(size))
	}

	color := r.Color
	if color == "" {
		color = preset.Color
	}
	if color != "" {
		run.Color(color)
	}

	if r.Bold || preset.Bold {
		run.Bold()
	}
	if r.Italic {
		run.Italic()
	}
}

func writeTable(w *docx.Docx, t *document.Table, presets document.StylePresets) {
	cols := 0
	for _, row := range t.Rows {
		cols = max(cols, len(row.Cells))
	}
	if len(t.Rows) == 0 || cols == 0 {
		return
	}

	var borders *docx.APITableBorderColors
	if t.BorderColor != "" {
		borders = &docx.APITableBorderColors{
			Top:     t.BorderColor,
			Left:    t.BorderColor,
			Bottom:  t.BorderColor,
			Right:   t.BorderColor,
			InsideH: t.BorderColor,
			InsideV: t.BorderColor,
		}
	}

	width := int64(textWidthTwips)
	if t.WidthPercent > 0 {
		width = int64(textWidthTwips * t.WidthPercent / 100)
	}

	tbl := w.AddTableTwips(make([]int64, len(t.Rows)), columnWidths(t, cols, width), width, borders)
	for i, row := range t.Rows {
		for j, cell := range row.Cells {
			tc := tbl.TableRows[i].TableCells[j]
			if cell.Shading != "" {
				tc.Shade("clear", "auto", cell.Shading)
			}
			p := tc.AddParagraph()
			for _, r := range cell.Runs {
				writeRun(p.AddText(r.Text), r, presets.Normal, presets.Font)
			}
		}
	}
}

// columnWidths converts the first row's cell percentages into twips.
// Columns without a percentage share what is left equally.
func columnWidths(t *document.Table, cols int, tableWidth int64) []int64 {
	widths := make([]int64, cols)
	remaining := tableWidth
	unset := 0
	for j := 0; j < cols; j++ {
		if j < len(t.Rows[0].Cells) && t.Rows[0].Cells[j].WidthPercent > 0 {
			widths[j] = tableWidth * int64(t.Rows[0].Cells[j].WidthPercent) / 100
			remaining -= widths[j]
			continue
		}
		unset++
	}
	if unset > 0 && remaining > 0 {
		for j := range widths {
			if widths[j] == 0 {
				widths[j] = remaining / int64(unset)
			}
		}
	}
	return widths
}
