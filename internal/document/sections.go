package document

// Section tags every block with the part of the document it belongs to.
// Block order is the order of the section list given to the Assembler.
type Section int

// Document sections.
const (
	SectionCover Section = iota
	SectionDisclaimer
	SectionContents
	SectionExecutiveSummary
	SectionCompanyOverview
	SectionCompanyFacts
	SectionKeyConsiderations
	SectionFinancials
	SectionConclusion
	SectionContact
	SectionCopyright
)

var sectionNames = map[Section]string{
	SectionCover:             "cover",
	SectionDisclaimer:        "disclaimer",
	SectionContents:          "contents",
	SectionExecutiveSummary:  "executive_summary",
	SectionCompanyOverview:   "company_overview",
	SectionCompanyFacts:      "company_facts",
	SectionKeyConsiderations: "key_considerations",
	SectionFinancials:        "financials",
	SectionConclusion:        "conclusion",
	SectionContact:           "contact",
	SectionCopyright:         "copyright",
}

func (s Section) String() string {
	if name, ok := sectionNames[s]; ok {
		return name
	}
	return "unknown"
}

// DefaultSections is the standard layout. The company facts table follows
// the company overview directly.
func DefaultSections() []Section {
	return []Section{
		SectionCover,
		SectionDisclaimer,
		SectionContents,
		SectionExecutiveSummary,
		SectionCompanyOverview,
		SectionCompanyFacts,
		SectionKeyConsiderations,
		SectionFinancials,
		SectionConclusion,
		SectionContact,
		SectionCopyright,
	}
}
