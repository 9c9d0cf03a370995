package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapiker/internal/errors"
)

func TestDefaultRateCard(t *testing.T) {
	rates, err := Default().RateCard()
	require.NoError(t, err)
	assert.True(t, rates.BasePerCountry.Equal(decimal.NewFromInt(20)))
	assert.True(t, rates.AdditionalFeaturePerCountry.Equal(decimal.NewFromInt(10)))
}

func TestRateCardValidation(t *testing.T) {
	cfg := Default()
	cfg.Pricing.BasePerCountry = "not-a-number"
	_, err := cfg.RateCard()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))

	cfg = Default()
	cfg.Pricing.AdditionalFeaturePerCountry = "-5"
	_, err = cfg.RateCard()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestDefaultDimensions(t *testing.T) {
	dims := Default().Dimensions()
	assert.NotEmpty(t, dims)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Default().Pricing, cfg.Pricing)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapiker.json")

	cfg := Default()
	cfg.Pricing.BasePerCountry = "35.50"
	cfg.Server.Addr = ":9090"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "35.50", loaded.Pricing.BasePerCountry)
	assert.Equal(t, ":9090", loaded.Server.Addr)
}

const testCatalogHCL = `
rates {
  base_per_country               = "25"
  additional_feature_per_country = "12.5"
  currency                       = "KRW"
}

dimension "geocoding" {
  name = "Geocoding Accuracy"
  icon = "pin"

  threshold {
    min   = 80
    label = "Strong"
  }
  threshold {
    min   = 0
    label = "Weak"
  }
}

dimension "freshness" {
  name = "Map Freshness"
}
`

func TestApplyCatalogHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.hcl")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogHCL), 0644))

	cfg := Default()
	require.NoError(t, cfg.ApplyCatalogHCL(path))

	assert.Equal(t, "25", cfg.Pricing.BasePerCountry)
	assert.Equal(t, "12.5", cfg.Pricing.AdditionalFeaturePerCountry)
	assert.Equal(t, "KRW", cfg.Pricing.Currency)

	dims := cfg.Dimensions()
	require.Len(t, dims, 2)
	assert.Equal(t, "geocoding", dims[0].ID)
	assert.Equal(t, "Strong", dims[0].Rubric.Label(85))
	assert.Equal(t, "Weak", dims[0].Rubric.Label(40))

	// A dimension without thresholds inherits the stock rubric.
	assert.Equal(t, "freshness", dims[1].ID)
	assert.Equal(t, "Excellent", dims[1].Rubric.Label(95))

	rates, err := cfg.RateCard()
	require.NoError(t, err)
	assert.True(t, rates.BasePerCountry.Equal(decimal.NewFromInt(25)))
}

func TestApplyCatalogHCLRejectsBadRubric(t *testing.T) {
	bad := `
dimension "geocoding" {
  name = "Geocoding Accuracy"

  threshold {
    min   = 90
    label = "Excellent"
  }
  threshold {
    min   = 50
    label = "Poor"
  }
}
`
	path := filepath.Join(t.TempDir(), "catalog.hcl")
	require.NoError(t, os.WriteFile(path, []byte(bad), 0644))

	cfg := Default()
	err := cfg.ApplyCatalogHCL(path)
	require.Error(t, err, "rubric not covering the full range must be rejected")
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestLoadHCLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.hcl")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogHCL), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "25", cfg.Pricing.BasePerCountry)
	// Defaults survive where the overlay is silent.
	assert.Equal(t, Default().Server.Addr, cfg.Server.Addr)
}
