package main

import (
	"fmt"
	"os"

	"github.com/jonathan/deal-docs/internal/catalog"
	"github.com/jonathan/deal-docs/internal/config"
	"github.com/jonathan/deal-docs/internal/document"
	"github.com/jonathan/deal-docs/internal/generator"
	"github.com/jonathan/deal-docs/internal/rendering"
	"k8s.io/klog/v2"
)

// loadConfig resolves the config file from the flag or DOCGEN_CONFIG.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("DOCGEN_CONFIG")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// loadCatalog returns the built-in catalog, or the file at path when set.
// Either way the result must cover every industry and document type.
func loadCatalog(path string) (*catalog.Catalog, error) {
	cat := catalog.Default()
	if path != "" {
		loaded, err := catalog.Load(path)
		if err != nil {
			return nil, err
		}
		klog.Infof("Loaded catalog from %s", path)
		cat = loaded
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// buildGenerator wires catalog, assembler and serializer from cfg.
func buildGenerator(cfg config.Config, opts ...generator.Option) (*generator.Generator, error) {
	cat, err := loadCatalog(cfg.Generation.CatalogPath)
	if err != nil {
		return nil, err
	}

	opts = append([]generator.Option{generator.WithStrictSelection(cfg.Generation.StrictSelection)}, opts...)
	return generator.New(
		cat,
		document.NewAssembler(cfg.Publisher),
		rendering.NewDocxSerializer(),
		opts...,
	), nil
}
