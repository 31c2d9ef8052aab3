package document

import (
	"fmt"
	"time"

	"github.com/jonathan/deal-docs/internal/catalog"
	"github.com/jonathan/deal-docs/internal/config"
	"github.com/jonathan/deal-docs/internal/types"
)

// Selection is everything that varies between two generated documents.
type Selection struct {
	DocumentType types.DocumentType
	Industry     types.Industry
	Entries      []catalog.Entry // may be empty
	Date         time.Time
}

// Assembler turns a Selection into a Document. It holds no per-request
// state and may be shared between goroutines.
type Assembler struct {
	publisher config.Publisher
	presets   StylePresets
	sections  []Section
}

// Option customises an Assembler.
type Option func(*Assembler)

// WithSections replaces the default section layout.
func WithSections(sections ...Section) Option {
	return func(a *Assembler) {
		a.sections = append([]Section(nil), sections...)
	}
}

// WithPresets replaces the default style presets.
func WithPresets(p StylePresets) Option {
	return func(a *Assembler) {
		a.presets = p
	}
}

// NewAssembler creates an Assembler printing the given publisher details.
func NewAssembler(publisher config.Publisher, opts ...Option) *Assembler {
	a := &Assembler{
		publisher: publisher,
		presets:   DefaultPresets(),
		sections:  DefaultSections(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble builds the full block sequence for sel.
func (a *Assembler) Assemble(sel Selection) *Document {
	c := &assembly{
		publisher:     a.publisher,
		sel:           sel,
		industryTitle: sel.Industry.Title(),
		documentTitle: sel.DocumentType.Title(),
	}

	for _, s := range a.sections {
		c.section = s
		switch s {
		case SectionCover:
			c.cover()
		case SectionDisclaimer:
			c.disclaimer()
		case SectionContents:
			c.contents()
		case SectionExecutiveSummary:
			c.executiveSummary()
		case SectionCompanyOverview:
			c.companyOverview()
		case SectionCompanyFacts:
			c.companyFacts()
		case SectionKeyConsiderations:
			c.keyConsiderations()
		case SectionFinancials:
			c.financials()
		case SectionConclusion:
			c.conclusion()
		case SectionContact:
			c.contact()
		case SectionCopyright:
			c.copyright()
		}
	}

	return &Document{
		Title:       fmt.Sprintf("%s for %s", c.documentTitle, c.industryTitle),
		Description: fmt.Sprintf("Generated %s for %s industry", c.documentTitle, c.industryTitle),
		Presets:     a.presets,
		Blocks:      c.blocks,
	}
}

// assembly accumulates blocks for one Assemble call.
type assembly struct {
	publisher     config.Publisher
	sel           Selection
	industryTitle string
	documentTitle string
	section       Section
	blocks        []Block
}

func (c *assembly) add(b Block) {
	b.Section = c.section
	c.blocks = append(c.blocks, b)
}

func (c *assembly) paragraph(runs ...Run) {
	c.add(Block{Kind: KindParagraph, Runs: runs})
}

func (c *assembly) bullet(text string) {
	c.add(Block{Kind: KindParagraph, IndentLeft: bulletIndent, Runs: []Run{{Text: text}}})
}

func (c *assembly) heading(text string, pageBreak bool) {
	c.add(Block{
		Kind:            KindHeading1,
		PageBreakBefore: pageBreak,
		Runs:            []Run{{Text: text, Size: headingSize, Bold: true, Color: accentColor}},
	})
}

func (c *assembly) centered(spacing Spacing, run Run) {
	c.add(Block{Kind: KindParagraph, Alignment: AlignCenter, Spacing: spacing, Runs: []Run{run}})
}

func (c *assembly) copyrightRun() Run {
	return Run{Text: c.publisher.Copyright, Size: 16, Color: mutedColor}
}

func (c *assembly) cover() {
	c.add(Block{
		Kind:      KindTitle,
		Alignment: AlignCenter,
		Spacing:   Spacing{Before: 3000, After: 400},
		Runs:      []Run{{Text: c.documentTitle, Size: 56, Bold: true, Color: accentColor}},
	})
	c.centered(Spacing{Before: 400, After: 400}, Run{Text: "For " + c.industryTitle, Size: 32, Bold: true, Color: accentColor})
	c.centered(Spacing{Before: 400, After: 400}, Run{Text: preparedFor, Size: 24})
	c.centered(Spacing{Before: 400, After: 400}, Run{Text: "Prepared by: " + c.publisher.CompanyName, Size: 24})
	c.centered(Spacing{Before: 400, After: 800}, Run{Text: "Date: " + c.sel.Date.Format(dateLayout), Size: 24})
	c.centered(Spacing{Before: 800}, Run{Text: logoPlaceholder, Size: 24, Italic: true, Color: logoColor})
	c.centered(Spacing{Before: 400}, c.copyrightRun())
}

func (c *assembly) disclaimer() {
	c.heading(disclaimerHeading, true)
	c.add(Block{
		Kind:    KindParagraph,
		Spacing: Spacing{After: 400},
		Runs:    []Run{{Text: disclaimerText, Size: 20, Italic: true}},
	})
}

func (c *assembly) contents() {
	c.heading(contentsHeading, false)
	for _, line := range contentsLines {
		c.paragraph(Run{Text: line})
	}
}

// ExecutiveSummarySentence is the opening line of the executive summary.
func ExecutiveSummarySentence(industryTitle string) string {
	return "This document provides a comprehensive overview of the business opportunity. It includes detailed information about the company, its operations, market position, and growth potential in the " + industryTitle + " sector."
}

func (c *assembly) executiveSummary() {
	c.heading(executiveSummaryHeading, true)
	c.paragraph(Run{Text: ExecutiveSummarySentence(c.industryTitle)})
	c.paragraph(Run{Text: highlightsLead})
	c.bullet("• Established position in the " + c.industryTitle + " market")
	c.bullet("• Strong recurring revenue model with high customer retention")
	c.bullet("• Scalable business model with significant growth potential")
	c.add(Block{
		Kind:       KindParagraph,
		IndentLeft: bulletIndent,
		Spacing:    Spacing{After: 400},
		Runs:       []Run{{Text: "• Experienced management team with industry expertise"}},
	})
}

// CompanyOverviewSentence describes the publisher within the industry.
func CompanyOverviewSentence(companyName, industryTitle string) string {
	return fmt.Sprintf("%s is a leading provider of solutions in the %s sector. The company offers a comprehensive range of services designed to meet the needs of businesses across various industries.", companyName, industryTitle)
}

func (c *assembly) companyOverview() {
	c.heading(companyOverviewHeading, false)
	c.paragraph(Run{Text: CompanyOverviewSentence(c.publisher.CompanyName, c.industryTitle)})
}

func (c *assembly) companyFacts() {
	p := c.publisher
	facts := [][2]string{
		{"Company Name", p.CompanyName},
		{"Industry", c.industryTitle},
		{"Location", p.City + ", " + p.Country},
		{"Contact", p.Email + " | " + p.Phone},
	}

	table := &Table{WidthPercent: 100, BorderColor: tableBorder}
	for _, f := range facts {
		table.Rows = append(table.Rows, TableRow{Cells: []TableCell{
			{WidthPercent: 30, Shading: tableShading, Runs: []Run{{Text: f[0], Bold: true}}},
			{WidthPercent: 70, Runs: []Run{{Text: f[1]}}},
		}})
	}

	c.add(Block{Kind: KindTable, Table: table})
	c.add(Block{Kind: KindParagraph, Spacing: Spacing{After: 200}})
}

func (c *assembly) keyConsiderations() {
	c.heading("Industry-Specific Considerations: "+c.industryTitle, true)
	c.add(Block{
		Kind: KindHeading2,
		Runs: []Run{{Text: keyConsiderationsHeading, Size: subheadingSize, Bold: true, Color: accentColor}},
	})

	for _, e := range c.sel.Entries {
		label, description, ok := e.Split()
		if ok {
			c.add(Block{
				Kind:    KindParagraph,
				Spacing: Spacing{Before: 200, After: 120},
				Runs:    []Run{{Text: label, Bold: true}, {Text: description}},
			})
			continue
		}
		c.add(Block{
			Kind:    KindParagraph,
			Spacing: Spacing{Before: 120, After: 120},
			Runs:    []Run{{Text: description}},
		})
	}
}

func (c *assembly) financials() {
	c.heading(financialsHeading, true)
	c.paragraph(Run{Text: financialsIntro, Italic: true})
	c.paragraph(Run{Text: financialsLead})
	for _, line := range financialBullets {
		c.bullet(line)
	}
}

// ConclusionSentence summarises the document for the given titles.
func ConclusionSentence(documentTitle, industryTitle string) string {
	return fmt.Sprintf("This %s has outlined the key aspects of the business opportunity in the %s sector. The company offers significant potential for growth and value creation through its established market position, experienced management team, and scalable business model.", documentTitle, industryTitle)
}

func (c *assembly) conclusion() {
	c.heading(conclusionHeading, true)
	c.paragraph(Run{Text: ConclusionSentence(c.documentTitle, c.industryTitle)})
}

func (c *assembly) contact() {
	p := c.publisher
	c.add(Block{Kind: KindParagraph, Spacing: Spacing{Before: 400, After: 200}, Runs: []Run{{Text: contactLead}}})
	c.paragraph(Run{Text: p.CompanyName, Bold: true})
	c.paragraph(Run{Text: p.Address})
	c.paragraph(Run{Text: p.City + ", " + p.PostalCode})
	c.paragraph(Run{Text: p.Country})
	c.paragraph(Run{Text: "Phone: " + p.Phone})
	c.paragraph(Run{Text: "Email: " + p.Email})
	c.paragraph(Run{Text: "Website: " + p.Website})
}

func (c *assembly) copyright() {
	c.centered(Spacing{Before: 600}, c.copyrightRun())
}
