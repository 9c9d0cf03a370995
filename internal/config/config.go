// Package config provides configuration for the mapiker services.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"mapiker/adapters/storage"
	"mapiker/core/pricing"
	"mapiker/core/quality"
	"mapiker/core/types"
	"mapiker/internal/errors"
	"mapiker/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pricing contains the rate card
	Pricing PricingConfig `json:"pricing"`

	// Quality contains the dimension catalog; empty means the stock
	// catalog
	Quality QualityConfig `json:"quality"`

	// Storage selects the project store backend
	Storage storage.Config `json:"storage"`

	// Server contains HTTP server settings
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PricingConfig is the configurable rate card. Rates are decimal
// strings so config files never carry binary floating point.
type PricingConfig struct {
	// BasePerCountry is the per-country base rate
	BasePerCountry string `json:"base_per_country"`

	// AdditionalFeaturePerCountry is the per-country rate for each
	// feature after the first
	AdditionalFeaturePerCountry string `json:"additional_feature_per_country"`

	// Currency is the quote currency
	Currency string `json:"currency"`
}

// QualityConfig is the configurable dimension catalog
type QualityConfig struct {
	// Dimensions overrides the stock catalog when non-empty
	Dimensions []quality.Dimension `json:"dimensions,omitempty"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			BasePerCountry:              "20",
			AdditionalFeaturePerCountry: "10",
			Currency:                    string(types.CurrencyUSD),
		},
		Quality: QualityConfig{},
		Storage: storage.Config{
			Backend: storage.BackendFile,
			Path:    filepath.Join(homeDir, ".mapiker", "projects"),
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file. A missing file yields the
// defaults; a file with an .hcl extension is treated as a catalog
// overlay on top of the defaults.
func Load(path string) (*Config, error) {
	if filepath.Ext(path) == ".hcl" {
		config := Default()
		if err := config.ApplyCatalogHCL(path); err != nil {
			return nil, err
		}
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read config file", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Config("failed to parse config file", err)
	}
	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Config("failed to create config directory", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Config("failed to marshal config", err)
	}
	return os.WriteFile(path, data, 0644)
}

// RateCard parses the pricing config into a rate card.
func (c *Config) RateCard() (pricing.RateCard, error) {
	base, err := decimal.NewFromString(c.Pricing.BasePerCountry)
	if err != nil {
		return pricing.RateCard{}, errors.Config("invalid base_per_country rate", err)
	}
	if base.IsNegative() {
		return pricing.RateCard{}, errors.Config("base_per_country must be >= 0", nil)
	}

	additional, err := decimal.NewFromString(c.Pricing.AdditionalFeaturePerCountry)
	if err != nil {
		return pricing.RateCard{}, errors.Config("invalid additional_feature_per_country rate", err)
	}
	if additional.IsNegative() {
		return pricing.RateCard{}, errors.Config("additional_feature_per_country must be >= 0", nil)
	}

	currency := types.Currency(c.Pricing.Currency)
	if currency == "" {
		currency = types.CurrencyUSD
	}

	return pricing.RateCard{
		BasePerCountry:              base,
		AdditionalFeaturePerCountry: additional,
		Currency:                    currency,
	}, nil
}

// Dimensions returns the configured dimension catalog, falling back to
// the stock catalog.
func (c *Config) Dimensions() []quality.Dimension {
	if len(c.Quality.Dimensions) > 0 {
		return c.Quality.Dimensions
	}
	return quality.DefaultDimensions()
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
