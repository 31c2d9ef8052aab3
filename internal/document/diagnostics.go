package document

// TestDocument is the fixed two-paragraph file served for connectivity checks.
func TestDocument() *Document {
	return &Document{
		Title:   "Test Document",
		Presets: DefaultPresets(),
		Blocks: []Block{
			{Kind: KindParagraph, Runs: []Run{{Text: "Test Document"}}},
			{Kind: KindParagraph, Runs: []Run{{Text: "This is a simple test document."}}},
		},
	}
}
