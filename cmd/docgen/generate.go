package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/jonathan/deal-docs/internal/catalog"
	"github.com/jonathan/deal-docs/internal/generator"
	"github.com/jonathan/deal-docs/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate documents to disk",
	Long:  "Generates one document for --document-type and --industry, or one for every catalog pair with --all.",
	RunE:  runGenerate,
}

var (
	generateDocumentType string
	generateIndustry     string
	generateOutDir       string
	generateAll          bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateDocumentType, "document-type", "d", "", "Document type, e.g. information_memorandum")
	generateCmd.Flags().StringVarP(&generateIndustry, "industry", "i", "", "Industry, e.g. managed_it_services")
	generateCmd.Flags().StringVarP(&generateOutDir, "out", "o", ".", "Directory to write documents to")
	generateCmd.Flags().BoolVar(&generateAll, "all", false, "Generate every document type for every industry")
	generateCmd.MarkFlagsMutuallyExclusive("all", "document-type")
	generateCmd.MarkFlagsMutuallyExclusive("all", "industry")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gen, err := buildGenerator(cfg)
	if err != nil {
		return fmt.Errorf("failed to build generator: %w", err)
	}

	var pairs []catalog.Pair
	if generateAll {
		pairs = gen.Catalog().Pairs()
	} else {
		pairs = []catalog.Pair{{
			Industry:     types.Industry(generateIndustry),
			DocumentType: types.DocumentType(generateDocumentType),
		}}
	}

	paths, err := generateDocuments(cmd.Context(), gen, pairs, generateOutDir)
	if err != nil {
		return err
	}
	for _, path := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

// generateDocuments writes one file per pair into outDir and returns the
// written paths in the order of pairs.
func generateDocuments(ctx context.Context, gen *generator.Generator, pairs []catalog.Pair, outDir string) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, pair := range pairs {
		g.Go(func() error {
			result, err := gen.Generate(gctx, types.GenerationRequest{
				DocumentType: pair.DocumentType,
				Industry:     pair.Industry,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", pair, err)
			}

			if strings.ContainsAny(result.Filename, `/\`) || filepath.Base(result.Filename) != result.Filename {
				return fmt.Errorf("%s: file name %q would leave the output directory", pair, result.Filename)
			}
			path := filepath.Join(outDir, result.Filename)
			if err := os.WriteFile(path, result.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			klog.V(2).Infof("Wrote %s (%d bytes)", path, len(result.Data))
			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
