package main

import (
	"fmt"

	"github.com/jonathan/deal-docs/internal/catalog"
	"github.com/jonathan/deal-docs/internal/generator"
	"github.com/jonathan/deal-docs/internal/observability"
	"github.com/jonathan/deal-docs/internal/types"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the outline of a document without writing it",
	Long:  "Assembles the document for --document-type and --industry and prints its sections and key considerations.",
	RunE:  runPreview,
}

var (
	previewDocumentType string
	previewIndustry     string
)

func init() {
	previewCmd.Flags().StringVarP(&previewDocumentType, "document-type", "d", "", "Document type (required)")
	previewCmd.Flags().StringVarP(&previewIndustry, "industry", "i", "", "Industry (required)")
	_ = previewCmd.MarkFlagRequired("document-type")
	_ = previewCmd.MarkFlagRequired("industry")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gen, err := buildGenerator(cfg)
	if err != nil {
		return fmt.Errorf("failed to build generator: %w", err)
	}

	return preview(observability.NewPrinter(cmd.OutOrStdout()), gen, types.GenerationRequest{
		DocumentType: types.DocumentType(previewDocumentType),
		Industry:     types.Industry(previewIndustry),
	})
}

func preview(p *observability.Printer, gen *generator.Generator, req types.GenerationRequest) error {
	doc, entries, err := gen.Preview(req)
	if err != nil {
		return err
	}

	p.PrintOutline(doc)
	p.PrintEntries(catalog.Pair{Industry: req.Industry, DocumentType: req.DocumentType}, entries)
	return nil
}
