// Package generator turns a document selection into a downloadable file.
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/deal-docs/internal/catalog"
	"github.com/jonathan/deal-docs/internal/document"
	"github.com/jonathan/deal-docs/internal/rendering"
	"github.com/jonathan/deal-docs/internal/types"
	"k8s.io/klog/v2"
)

// TimestampLayout formats the UTC generation time in file names.
const TimestampLayout = "20060102150405"

// TestFilename is the name of the connectivity test document.
const TestFilename = "test-document." + rendering.Extension

// Result is a serialized document ready to be sent to a client.
type Result struct {
	Filename    string
	ContentType string
	Data        []byte
	// Degraded is set when the catalog had no entries for the selection.
	Degraded bool
}

// GenerationError wraps any failure after the request was accepted.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation error: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Generator validates requests, assembles documents and serializes them.
type Generator struct {
	catalog    *catalog.Catalog
	assembler  *document.Assembler
	serializer rendering.Serializer
	strict     bool
	now        func() time.Time
}

// Option customises a Generator.
type Option func(*Generator)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithStrictSelection rejects values outside the known sets.
func WithStrictSelection(strict bool) Option {
	return func(g *Generator) {
		g.strict = strict
	}
}

// New creates a Generator.
func New(cat *catalog.Catalog, assembler *document.Assembler, serializer rendering.Serializer, opts ...Option) *Generator {
	g := &Generator{
		catalog:    cat,
		assembler:  assembler,
		serializer: serializer,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Filename builds "{documentType}_{industry}_{timestamp}.docx" using UTC.
func Filename(documentType types.DocumentType, industry types.Industry, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s.%s", documentType, industry, at.UTC().Format(TimestampLayout), rendering.Extension)
}

// Generate produces the document for req. Validation failures are returned
// as *types.ValidationError; everything else as *GenerationError.
func (g *Generator) Generate(ctx context.Context, req types.GenerationRequest) (*Result, error) {
	now := g.now().UTC()
	doc, entries, err := g.assemble(req, now)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, &GenerationError{Message: "request cancelled before serialization", Cause: err}
	}

	data, err := g.serializer.Serialize(doc)
	if err != nil {
		return nil, &GenerationError{Message: fmt.Sprintf("failed to serialize %s/%s", req.Industry, req.DocumentType), Cause: err}
	}

	return &Result{
		Filename:    Filename(req.DocumentType, req.Industry, now),
		ContentType: rendering.MIMEType,
		Data:        data,
		Degraded:    len(entries) == 0,
	}, nil
}

// Preview validates req and assembles its document without serializing it.
// The returned entries are the catalog content used for key considerations.
func (g *Generator) Preview(req types.GenerationRequest) (*document.Document, []catalog.Entry, error) {
	return g.assemble(req, g.now().UTC())
}

func (g *Generator) assemble(req types.GenerationRequest, at time.Time) (*document.Document, []catalog.Entry, error) {
	if err := req.Validate(g.strict); err != nil {
		return nil, nil, err
	}

	entries, found := g.catalog.Lookup(req.Industry, req.DocumentType)
	if !found {
		klog.Warningf("No catalog content for %s/%s, omitting key considerations", req.Industry, req.DocumentType)
	}

	doc := g.assembler.Assemble(document.Selection{
		DocumentType: req.DocumentType,
		Industry:     req.Industry,
		Entries:      entries,
		Date:         at,
	})
	klog.V(4).Infof("Assembled %q with %d blocks", doc.Title, len(doc.Blocks))
	return doc, entries, nil
}

// GenerateTest produces the fixed connectivity test document.
func (g *Generator) GenerateTest(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, &GenerationError{Message: "request cancelled", Cause: err}
	}

	data, err := g.serializer.Serialize(document.TestDocument())
	if err != nil {
		return nil, &GenerationError{Message: "failed to serialize test document", Cause: err}
	}

	return &Result{
		Filename:    TestFilename,
		ContentType: rendering.MIMEType,
		Data:        data,
	}, nil
}

// Catalog returns the catalog the generator selects content from.
func (g *Generator) Catalog() *catalog.Catalog {
	return g.catalog
}
