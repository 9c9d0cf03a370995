package types

import (
	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 currency code. Carried for display only; all
// quotes within a deployment use a single configured currency.
type Currency string

// CurrencyUSD is the default quote currency
const CurrencyUSD Currency = "USD"

// PricingData is a computed price breakdown together with the inputs
// that produced it. Immutable once created; persisted as an opaque blob
// on the project when the user advances to the next stage.
type PricingData struct {
	// BasePrice is countryCount x basePerCountry
	BasePrice decimal.Decimal `json:"base_price"`

	// AdditionalFeaturesPrice covers every selected feature after the
	// first, per country
	AdditionalFeaturesPrice decimal.Decimal `json:"additional_features_price"`

	// TotalPrice is the sum of the two components
	TotalPrice decimal.Decimal `json:"total_price"`

	// CountryCount is the number of countries the quote covers
	CountryCount int `json:"country_count"`

	// SelectedFeatures is the ordered feature list that was priced;
	// index 0 is the free feature
	SelectedFeatures []string `json:"selected_features"`

	// Currency is the quote currency
	Currency Currency `json:"currency"`
}
