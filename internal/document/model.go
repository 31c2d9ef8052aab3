// Package document defines the styled block model for generated documents
// and assembles it from a selection and the content catalog.
package document

import "strings"

// Alignment is a paragraph justification value.
type Alignment string

// Supported alignments. The empty value inherits from the style preset.
const (
	AlignInherit Alignment = ""
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
)

// Kind distinguishes block types.
type Kind int

// Block kinds.
const (
	KindParagraph Kind = iota
	KindTitle
	KindHeading1
	KindHeading2
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindTitle:
		return "title"
	case KindHeading1:
		return "heading1"
	case KindHeading2:
		return "heading2"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Run is a span of uniformly styled text. Zero values inherit from the
// preset of the enclosing block.
type Run struct {
	Text   string
	Size   int // half-points, 24 = 12pt
	Bold   bool
	Italic bool
	Color  string // hex RGB without '#'
}

// Spacing is paragraph spacing in twips.
type Spacing struct {
	Before int
	After  int
}

// Block is one heading, paragraph or table.
type Block struct {
	Kind            Kind
	Section         Section
	Runs            []Run
	Alignment       Alignment
	Spacing         Spacing
	IndentLeft      int // twips
	PageBreakBefore bool
	Table           *Table
}

// Text returns the concatenated text of the block's runs.
func (b Block) Text() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Table is a bordered grid of single-paragraph cells.
type Table struct {
	WidthPercent int
	BorderColor  string
	Rows         []TableRow
}

// TableRow is one row of a Table.
type TableRow struct {
	Cells []TableCell
}

// TableCell is one cell of a TableRow.
type TableCell struct {
	WidthPercent int
	Shading      string // fill colour, empty for none
	Runs         []Run
}

// TextStyle is a document-level default for one block kind.
type TextStyle struct {
	Size      int
	Bold      bool
	Color     string
	Spacing   Spacing
	Alignment Alignment
}

// StylePresets are the document-level defaults handed to the serializer.
type StylePresets struct {
	Font     string
	Normal   TextStyle
	Title    TextStyle
	Heading1 TextStyle
	Heading2 TextStyle
}

// For returns the preset for a block kind. Tables use Normal.
func (p StylePresets) For(k Kind) TextStyle {
	switch k {
	case KindTitle:
		return p.Title
	case KindHeading1:
		return p.Heading1
	case KindHeading2:
		return p.Heading2
	default:
		return p.Normal
	}
}

// DefaultPresets returns the house style: Calibri, blue bold headings.
func DefaultPresets() StylePresets {
	return StylePresets{
		Font: "Calibri",
		Normal: TextStyle{
			Size:    24,
			Color:   "000000",
			Spacing: Spacing{After: 200},
		},
		Title: TextStyle{
			Size:      56,
			Bold:      true,
			Color:     accentColor,
			Spacing:   Spacing{Before: 240, After: 240},
			Alignment: AlignCenter,
		},
		Heading1: TextStyle{
			Size:    32,
			Bold:    true,
			Color:   accentColor,
			Spacing: Spacing{Before: 240, After: 120},
		},
		Heading2: TextStyle{
			Size:    28,
			Bold:    true,
			Color:   accentColor,
			Spacing: Spacing{Before: 240, After: 120},
		},
	}
}

// Document is the complete block sequence for one generated file.
type Document struct {
	Title       string
	Description string
	Presets     StylePresets
	Blocks      []Block
}

// SectionBlocks returns the blocks belonging to s, in order.
func (d *Document) SectionBlocks(s Section) []Block {
	var out []Block
	for _, b := range d.Blocks {
		if b.Section == s {
			out = append(out, b)
		}
	}
	return out
}
