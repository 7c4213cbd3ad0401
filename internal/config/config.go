// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"dmc-quote/core/types"
	"dmc-quote/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pricing contains pricing defaults
	Pricing PricingConfig `json:"pricing"`

	// Pax contains pax resolution settings
	Pax PaxConfig `json:"pax"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Storage contains quotation storage configuration
	Storage StorageConfig `json:"storage"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PricingConfig contains pricing defaults
type PricingConfig struct {
	// DefaultCurrency is the working currency when a trip sets none
	DefaultCurrency types.Currency `json:"default_currency"`

	// DefaultMarginPct is the fallback margin (fraction of sell price)
	// for services with no configured rule
	DefaultMarginPct decimal.Decimal `json:"default_margin_pct"`

	// CatalogDir is where supplier catalog files live
	CatalogDir string `json:"catalog_dir"`
}

// PaxConfig contains pax resolution settings
type PaxConfig struct {
	// Brackets are the age brackets used to categorize travelers.
	// Empty means the standard DMC brackets.
	Brackets []types.AgeBracket `json:"brackets,omitempty"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default CLI output format
	DefaultFormat string `json:"default_format"`
}

// StorageConfig contains quotation storage settings
type StorageConfig struct {
	// Backend selects the store backend (memory, file)
	Backend string `json:"backend"`

	// Directory is the file backend's root
	Directory string `json:"directory"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	base := filepath.Join(homeDir, ".dmc-quote")

	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			DefaultCurrency:  types.CurrencyEUR,
			DefaultMarginPct: decimal.RequireFromString("0.30"),
			CatalogDir:       filepath.Join(base, "catalog"),
		},
		Output: OutputConfig{
			DefaultFormat: "table",
		},
		Storage: StorageConfig{
			Backend:   "file",
			Directory: filepath.Join(base, "quotations"),
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file, falling back to defaults when
// the file does not exist
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
