// Package config provides configuration loading and validation for the document generator.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration. Every field has a usable default.
type Config struct {
	Server     ServerConfig     `json:"server" yaml:"server"`
	Publisher  Publisher        `json:"publisher" yaml:"publisher"`
	Generation GenerationConfig `json:"generation" yaml:"generation"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port int `json:"port,omitempty" yaml:"port,omitempty" validate:"min=1,max=65535"`
	// WriteTimeoutSeconds bounds a single request, including serialization.
	WriteTimeoutSeconds int `json:"write_timeout_seconds,omitempty" yaml:"write_timeout_seconds,omitempty" validate:"min=1"`
}

// Publisher holds the company details printed in every generated document.
type Publisher struct {
	CompanyName string `json:"company_name,omitempty" yaml:"company_name,omitempty" validate:"required"`
	Address     string `json:"address,omitempty" yaml:"address,omitempty" validate:"required"`
	City        string `json:"city,omitempty" yaml:"city,omitempty" validate:"required"`
	PostalCode  string `json:"postal_code,omitempty" yaml:"postal_code,omitempty" validate:"required"`
	Country     string `json:"country,omitempty" yaml:"country,omitempty" validate:"required"`
	Phone       string `json:"phone,omitempty" yaml:"phone,omitempty" validate:"required"`
	Email       string `json:"email,omitempty" yaml:"email,omitempty" validate:"required,email"`
	Website     string `json:"website,omitempty" yaml:"website,omitempty" validate:"required"`
	Copyright   string `json:"copyright,omitempty" yaml:"copyright,omitempty" validate:"required"`
}

// GenerationConfig controls content selection.
type GenerationConfig struct {
	CatalogPath     string `json:"catalog_path,omitempty" yaml:"catalog_path,omitempty"`         // Optional JSON catalog replacing the built-in one
	StrictSelection bool   `json:"strict_selection,omitempty" yaml:"strict_selection,omitempty"` // Reject values outside the known sets
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:                8080,
			WriteTimeoutSeconds: 60,
		},
		Publisher: Publisher{
			CompanyName: "Entrepreneurs Hub Ltd.",
			Address:     "186 Fleet Street",
			City:        "London",
			PostalCode:  "EC4A 2HS",
			Country:     "United Kingdom",
			Phone:       "+44 20 1234 5678",
			Email:       "contact@entrepreneurshub.co.uk",
			Website:     "www.entrepreneurshub.co.uk",
			Copyright:   "©2025 Cloud Development Group Limited. www.CloudDev.group - all rights reserved. Company Registration Number: 14580536",
		},
	}
}

// LoadConfig loads configuration from a YAML or JSON file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Load builds the effective configuration: defaults, then the optional file
// at path, then environment overrides. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	cfg.ApplyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Server.Port == 0 {
		result.Server.Port = defaults.Server.Port
	}
	if result.Server.WriteTimeoutSeconds == 0 {
		result.Server.WriteTimeoutSeconds = defaults.Server.WriteTimeoutSeconds
	}

	p, d := &result.Publisher, defaults.Publisher
	fillString(&p.CompanyName, d.CompanyName)
	fillString(&p.Address, d.Address)
	fillString(&p.City, d.City)
	fillString(&p.PostalCode, d.PostalCode)
	fillString(&p.Country, d.Country)
	fillString(&p.Phone, d.Phone)
	fillString(&p.Email, d.Email)
	fillString(&p.Website, d.Website)
	fillString(&p.Copyright, d.Copyright)

	fillString(&result.Generation.CatalogPath, defaults.Generation.CatalogPath)

	// Bool fields: cannot distinguish unset from false, so the file wins only when true
	result.Generation.StrictSelection = result.Generation.StrictSelection || defaults.Generation.StrictSelection

	return result
}

// ApplyEnv overrides fields from environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := getenv("DOCGEN_CATALOG_PATH"); v != "" {
		c.Generation.CatalogPath = v
	}
	if v := getenv("DOCGEN_STRICT_SELECTION"); v != "" {
		if strict, err := strconv.ParseBool(v); err == nil {
			c.Generation.StrictSelection = strict
		}
	}

	overrides := map[string]*string{
		"PUBLISHER_COMPANY_NAME": &c.Publisher.CompanyName,
		"PUBLISHER_ADDRESS":      &c.Publisher.Address,
		"PUBLISHER_CITY":         &c.Publisher.City,
		"PUBLISHER_POSTAL_CODE":  &c.Publisher.PostalCode,
		"PUBLISHER_COUNTRY":      &c.Publisher.Country,
		"PUBLISHER_PHONE":        &c.Publisher.Phone,
		"PUBLISHER_EMAIL":        &c.Publisher.Email,
		"PUBLISHER_WEBSITE":      &c.Publisher.Website,
		"PUBLISHER_COPYRIGHT":    &c.Publisher.Copyright,
	}
	for key, field := range overrides {
		if v := getenv(key); v != "" {
			*field = v
		}
	}
}

var validate = validator.New()

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: %s failed %q", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Generation.CatalogPath != "" {
		if _, err := os.Stat(c.Generation.CatalogPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.Generation.CatalogPath)
		}
	}

	return nil
}

func fillString(dst *string, fallback string) {
	if *dst == "" {
		*dst = fallback
	}
}
