package config

import (
	"github.com/hashicorp/hcl/v2/hclsimple"

	"mapiker/core/quality"
	"mapiker/internal/errors"
)

// Operator-editable catalog file: the rate card and dimension catalog
// in HCL, overlaid on an existing config.
//
//	rates {
//	  base_per_country               = "20"
//	  additional_feature_per_country = "10"
//	  currency                       = "USD"
//	}
//
//	dimension "geocoding" {
//	  name = "Geocoding Accuracy"
//	  icon = "pin"
//	  threshold {
//	    min   = 90
//	    label = "Excellent"
//	  }
//	  threshold {
//	    min   = 0
//	    label = "Poor"
//	  }
//	}
type hclCatalog struct {
	Rates      *hclRates      `hcl:"rates,block"`
	Dimensions []hclDimension `hcl:"dimension,block"`
}

type hclRates struct {
	BasePerCountry              string `hcl:"base_per_country"`
	AdditionalFeaturePerCountry string `hcl:"additional_feature_per_country"`
	Currency                    string `hcl:"currency,optional"`
}

type hclDimension struct {
	ID         string         `hcl:"id,label"`
	Name       string         `hcl:"name"`
	Icon       string         `hcl:"icon,optional"`
	Thresholds []hclThreshold `hcl:"threshold,block"`
}

type hclThreshold struct {
	Min   int    `hcl:"min"`
	Label string `hcl:"label"`
}

// ApplyCatalogHCL overlays a catalog file onto the config. Dimensions
// declared without thresholds inherit the stock rubric.
func (c *Config) ApplyCatalogHCL(path string) error {
	var catalog hclCatalog
	if err := hclsimple.DecodeFile(path, nil, &catalog); err != nil {
		return errors.Config("failed to parse catalog file", err)
	}

	if catalog.Rates != nil {
		c.Pricing.BasePerCountry = catalog.Rates.BasePerCountry
		c.Pricing.AdditionalFeaturePerCountry = catalog.Rates.AdditionalFeaturePerCountry
		if catalog.Rates.Currency != "" {
			c.Pricing.Currency = catalog.Rates.Currency
		}
	}

	if len(catalog.Dimensions) > 0 {
		dims := make([]quality.Dimension, 0, len(catalog.Dimensions))
		for _, d := range catalog.Dimensions {
			dim := quality.Dimension{
				ID:     d.ID,
				Name:   d.Name,
				Icon:   d.Icon,
				Rubric: quality.DefaultRubric(),
			}
			if len(d.Thresholds) > 0 {
				rubric := make(quality.Rubric, 0, len(d.Thresholds))
				for _, t := range d.Thresholds {
					rubric = append(rubric, quality.Threshold{Min: t.Min, Label: t.Label})
				}
				dim.Rubric = rubric
			}
			dims = append(dims, dim)
		}
		if err := quality.ValidateDimensions(dims); err != nil {
			return err
		}
		c.Quality.Dimensions = dims
	}

	return nil
}
