// Package catalog holds the industry-specific content used to populate
// generated documents.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jonathan/deal-docs/internal/schemas"
	"github.com/jonathan/deal-docs/internal/types"
	schemadocs "github.com/jonathan/deal-docs/schemas"
)

// LabelSeparator splits an entry into its bold label and plain description.
const LabelSeparator = ": "

// Entry is a single bullet of industry-specific content.
type Entry string

// Split breaks the entry on the first LabelSeparator. The returned label
// keeps the separator so the two parts concatenate back to the entry.
// ok is false when the entry has no separator.
func (e Entry) Split() (label, description string, ok bool) {
	before, after, found := strings.Cut(string(e), LabelSeparator)
	if !found {
		return "", string(e), false
	}
	return before + LabelSeparator, after, true
}

// Pair identifies one catalog cell.
type Pair struct {
	Industry     types.Industry     `json:"industry"`
	DocumentType types.DocumentType `json:"documentType"`
}

func (p Pair) String() string {
	return fmt.Sprintf("%s/%s", p.Industry, p.DocumentType)
}

// Catalog maps (industry, document type) pairs to ordered entries.
// It is never mutated after construction and is safe for concurrent use.
type Catalog struct {
	content map[types.Industry]map[types.DocumentType][]Entry
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	return New(builtin)
}

// New copies raw content into a Catalog.
func New(raw map[types.Industry]map[types.DocumentType][]string) *Catalog {
	content := make(map[types.Industry]map[types.DocumentType][]Entry, len(raw))
	for ind, docs := range raw {
		cells := make(map[types.DocumentType][]Entry, len(docs))
		for dt, lines := range docs {
			entries := make([]Entry, len(lines))
			for i, line := range lines {
				entries[i] = Entry(line)
			}
			cells[dt] = entries
		}
		content[ind] = cells
	}
	return &Catalog{content: content}
}

// Load reads a JSON catalog file, checks it against the catalog schema and
// returns the decoded catalog. The result is not checked for completeness;
// call Validate for that.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to read catalog file %s", path), Cause: err}
	}

	if err := schemas.ValidateBytes(schemadocs.Catalog, data); err != nil {
		return nil, &Error{Message: fmt.Sprintf("catalog file %s does not match schema", path), Cause: err}
	}

	var raw map[types.Industry]map[types.DocumentType][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to parse catalog file %s", path), Cause: err}
	}

	return New(raw), nil
}

// Lookup returns the entries for a pair. The returned slice is a copy.
func (c *Catalog) Lookup(industry types.Industry, documentType types.DocumentType) ([]Entry, bool) {
	docs, ok := c.content[industry]
	if !ok {
		return nil, false
	}
	entries, ok := docs[documentType]
	if !ok {
		return nil, false
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out, true
}

// Pairs lists every populated cell, declared industries and document types
// first, in declaration order.
func (c *Catalog) Pairs() []Pair {
	var pairs []Pair
	for _, ind := range sortedIndustries(c.content) {
		docs := c.content[ind]
		for _, dt := range sortedDocumentTypes(docs) {
			pairs = append(pairs, Pair{Industry: ind, DocumentType: dt})
		}
	}
	return pairs
}

// Validate checks that every declared industry and document type has a
// non-empty cell, that every entry has text, and that no undeclared keys
// are present.
func (c *Catalog) Validate() error {
	var problems []string

	for _, ind := range types.Industries() {
		for _, dt := range types.DocumentTypes() {
			entries, ok := c.Lookup(ind, dt)
			if !ok || len(entries) == 0 {
				problems = append(problems, fmt.Sprintf("missing content for %s", Pair{ind, dt}))
				continue
			}
			for i, e := range entries {
				if strings.TrimSpace(string(e)) == "" {
					problems = append(problems, fmt.Sprintf("empty entry %d for %s", i, Pair{ind, dt}))
				}
			}
		}
	}

	for ind, docs := range c.content {
		if !ind.Known() {
			problems = append(problems, fmt.Sprintf("unknown industry %q", ind))
			continue
		}
		for dt := range docs {
			if !dt.Known() {
				problems = append(problems, fmt.Sprintf("unknown document type %q for industry %s", dt, ind))
			}
		}
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return &Error{Message: "invalid catalog", Problems: problems}
}

// Error reports an unusable catalog.
type Error struct {
	Message  string
	Problems []string
	Cause    error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString("catalog error: ")
	sb.WriteString(e.Message)
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	for _, p := range e.Problems {
		sb.WriteString("\n  - ")
		sb.WriteString(p)
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func sortedIndustries(content map[types.Industry]map[types.DocumentType][]Entry) []types.Industry {
	out := make([]types.Industry, 0, len(content))
	for _, ind := range types.Industries() {
		if _, ok := content[ind]; ok {
			out = append(out, ind)
		}
	}
	var extra []types.Industry
	for ind := range content {
		if !ind.Known() {
			extra = append(extra, ind)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

func sortedDocumentTypes(docs map[types.DocumentType][]Entry) []types.DocumentType {
	out := make([]types.DocumentType, 0, len(docs))
	for _, dt := range types.DocumentTypes() {
		if _, ok := docs[dt]; ok {
			out = append(out, dt)
		}
	}
	var extra []types.DocumentType
	for dt := range docs {
		if !dt.Known() {
			extra = append(extra, dt)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}
