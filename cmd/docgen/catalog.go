package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jonathan/deal-docs/internal/catalog"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List catalog content",
	Long:  "Lists every industry and document type pair with its number of key considerations. With --validate, only checks the configured catalog.",
	RunE:  runCatalog,
}

var catalogValidateOnly bool

func init() {
	catalogCmd.Flags().BoolVar(&catalogValidateOnly, "validate", false, "Validate the catalog and exit")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cfg.Generation.CatalogPath)
	if err != nil {
		return err
	}

	if catalogValidateOnly {
		fmt.Fprintf(cmd.OutOrStdout(), "catalog OK: %d pairs\n", len(cat.Pairs()))
		return nil
	}
	return printCatalog(cmd.OutOrStdout(), cat)
}

func printCatalog(w io.Writer, cat *catalog.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDUSTRY\tDOCUMENT TYPE\tENTRIES")
	for _, pair := range cat.Pairs() {
		entries, _ := cat.Lookup(pair.Industry, pair.DocumentType)
		fmt.Fprintf(tw, "%s\t%s\t%d\n", pair.Industry, pair.DocumentType, len(entries))
	}
	return tw.Flush()
}
