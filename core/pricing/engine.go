// Package pricing computes tiered price breakdowns for selected
// countries and features. All money is decimal; float64 never enters a
// calculation.
package pricing

import (
	"github.com/shopspring/decimal"

	"mapiker/core/types"
	"mapiker/internal/errors"
)

// RateCard is the configured pricing rates. Injected, never read from
// ambient state; a live rate card source is out of scope.
type RateCard struct {
	// BasePerCountry is the per-country base rate
	BasePerCountry decimal.Decimal `json:"base_per_country"`

	// AdditionalFeaturePerCountry is the per-country rate for every
	// selected feature after the first
	AdditionalFeaturePerCountry decimal.Decimal `json:"additional_feature_per_country"`

	// Currency is the card's quote currency
	Currency types.Currency `json:"currency"`
}

// DefaultRateCard returns the stock rates.
func DefaultRateCard() RateCard {
	return RateCard{
		BasePerCountry:              decimal.NewFromInt(20),
		AdditionalFeaturePerCountry: decimal.NewFromInt(10),
		Currency:                    types.CurrencyUSD,
	}
}

// Engine prices selections against a fixed rate card.
type Engine struct {
	rates RateCard
}

// NewEngine creates a pricing engine for the given rate card.
func NewEngine(rates RateCard) *Engine {
	return &Engine{rates: rates}
}

// Quote computes the price breakdown for a country count and an ordered
// feature list. The feature at index 0 is free whatever it is; the UI
// contract is "the first feature you pick is free", not a fixed feature
// identity. Zero countries or zero features yield a valid zero-priced
// breakdown, not an error.
func (e *Engine) Quote(countryCount int, selectedFeatures []string) (types.PricingData, error) {
	if countryCount < 0 {
		return types.PricingData{}, errors.Newf(errors.TypeInput, "country count must be >= 0, got %d", countryCount)
	}

	countries := decimal.NewFromInt(int64(countryCount))
	basePrice := countries.Mul(e.rates.BasePerCountry)

	additionalCount := len(selectedFeatures) - 1
	if additionalCount < 0 {
		additionalCount = 0
	}
	additionalPrice := decimal.NewFromInt(int64(additionalCount)).
		Mul(countries).
		Mul(e.rates.AdditionalFeaturePerCountry)

	features := make([]string, len(selectedFeatures))
	copy(features, selectedFeatures)

	return types.PricingData{
		BasePrice:               basePrice,
		AdditionalFeaturesPrice: additionalPrice,
		TotalPrice:              basePrice.Add(additionalPrice),
		CountryCount:            countryCount,
		SelectedFeatures:        features,
		Currency:                e.rates.Currency,
	}, nil
}
