package api

import (
	"mapiker/core/types"
)

// QuoteRequest is the body of POST /projects/{id}/quote.
type QuoteRequest struct {
	// CountryCount is the number of countries the quote covers
	CountryCount int `json:"country_count"`

	// SelectedFeatures is the ordered feature list; index 0 is free
	SelectedFeatures []string `json:"selected_features"`
}

// QuoteResponse wraps the computed price breakdown.
type QuoteResponse struct {
	ProjectID string            `json:"project_id"`
	Pricing   types.PricingData `json:"pricing"`
	Stage     types.Stage       `json:"stage"`
}

// SelectionResponse is the resolved selection for a project.
type SelectionResponse struct {
	ProjectID string          `json:"project_id"`
	Products  []types.Product `json:"products"`
	Vendors   []string        `json:"vendors"`

	// MissingReferences counts selected ids with no catalog match
	MissingReferences int `json:"missing_references"`
}

// ComparisonResponse wraps the quality comparison matrix.
type ComparisonResponse struct {
	ProjectID  string                      `json:"project_id"`
	Comparison types.QualityComparisonData `json:"comparison"`
}

// DimensionInfo describes one catalog dimension.
type DimensionInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
