// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/deal-docs/internal/catalog"
	"github.com/jonathan/deal-docs/internal/document"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 6
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(title, boxWidth-4)))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4)))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func pad(s string) string {
	n := boxWidth - 4 - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}

// PrintOutline outputs the section structure of an assembled document.
func (p *Printer) PrintOutline(doc *document.Document) {
	if doc == nil || len(doc.Blocks) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n", doc.Description))
	sb.WriteString(fmt.Sprintf("Blocks: %d\n", len(doc.Blocks)))

	var current document.Section = -1
	for _, b := range doc.Blocks {
		if b.Section != current {
			current = b.Section
			sb.WriteString(fmt.Sprintf("\n[%s] %d blocks\n", current, len(doc.SectionBlocks(current))))
		}
		switch b.Kind {
		case document.KindTitle, document.KindHeading1, document.KindHeading2:
			sb.WriteString(fmt.Sprintf("  %s: %s\n", b.Kind, b.Text()))
		case document.KindTable:
			if b.Table != nil {
				sb.WriteString(fmt.Sprintf("  table: %d rows\n", len(b.Table.Rows)))
			}
		}
	}

	p.printBox(strings.ToUpper(doc.Title), strings.TrimRight(sb.String(), "\n"))
}

// PrintEntries outputs the key considerations selected for a pair.
func (p *Printer) PrintEntries(pair catalog.Pair, entries []catalog.Entry) {
	var sb strings.Builder
	if len(entries) == 0 {
		sb.WriteString("No catalog content; key considerations will be empty")
		p.printBox("KEY CONSIDERATIONS "+pair.String(), sb.String())
		return
	}

	sb.WriteString(fmt.Sprintf("Total entries: %d\n\n", len(entries)))

	count := min(len(entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		if label, desc, ok := entries[i].Split(); ok {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, strings.TrimSuffix(label, catalog.LabelSeparator)))
			sb.WriteString(fmt.Sprintf("   %s\n", desc))
		} else {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, entries[i]))
		}
	}

	if len(entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more entries", len(entries)-maxItemsToShow))
	}

	p.printBox("KEY CONSIDERATIONS "+pair.String(), strings.TrimRight(sb.String(), "\n"))
}
