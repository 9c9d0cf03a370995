// Package quality synthesizes deterministic per-vendor quality scores
// and aggregates them into cross-vendor comparisons.
package quality

import (
	"mapiker/internal/errors"
)

// Threshold maps the lower bound of a score band to its label.
type Threshold struct {
	// Min is the inclusive lower bound of the band
	Min int `json:"min"`

	// Label is the qualitative label for the band
	Label string `json:"label"`
}

// Rubric is an ordered set of thresholds covering the full [0, 100]
// score range with no gaps. Thresholds must be strictly descending by
// Min and the last Min must be 0.
type Rubric []Threshold

// DefaultRubric is the stock four-band rubric shared by the default
// dimension catalog.
func DefaultRubric() Rubric {
	return Rubric{
		{Min: 90, Label: "Excellent"},
		{Min: 75, Label: "Good"},
		{Min: 60, Label: "Fair"},
		{Min: 0, Label: "Poor"},
	}
}

// Validate checks the rubric's ordering and coverage invariants.
func (r Rubric) Validate() error {
	if len(r) == 0 {
		return errors.Config("rubric has no thresholds", nil)
	}
	prev := 101
	for _, t := range r {
		if t.Min < 0 || t.Min > 100 {
			return errors.Newf(errors.TypeConfig, "rubric threshold %d out of range [0,100]", t.Min)
		}
		if t.Min >= prev {
			return errors.Newf(errors.TypeConfig, "rubric thresholds must be strictly descending, got %d after %d", t.Min, prev)
		}
		if t.Label == "" {
			return errors.Newf(errors.TypeConfig, "rubric threshold %d has no label", t.Min)
		}
		prev = t.Min
	}
	if r[len(r)-1].Min != 0 {
		return errors.Config("rubric does not cover scores below its last threshold", nil)
	}
	return nil
}

// Label returns the label for a score.
func (r Rubric) Label(score int) string {
	for _, t := range r {
		if score >= t.Min {
			return t.Label
		}
	}
	// Unreachable for a validated rubric.
	return r[len(r)-1].Label
}

// Dimension is one fixed quality axis of the comparison: identity,
// presentation hints, and scoring rubric. Static configuration, never
// derived at runtime.
type Dimension struct {
	// ID identifies the dimension and is part of every score's seed key
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// Icon is the UI icon key
	Icon string `json:"icon,omitempty"`

	// Rubric maps numeric scores to qualitative labels
	Rubric Rubric `json:"rubric"`
}

// DefaultDimensions is the stock catalog of map-data quality axes.
func DefaultDimensions() []Dimension {
	rubric := DefaultRubric()
	return []Dimension{
		{ID: "geocoding", Name: "Geocoding Accuracy", Icon: "pin", Rubric: rubric},
		{ID: "poi_coverage", Name: "POI Coverage", Icon: "building", Rubric: rubric},
		{ID: "routing", Name: "Routing Quality", Icon: "route", Rubric: rubric},
		{ID: "freshness", Name: "Map Freshness", Icon: "refresh", Rubric: rubric},
		{ID: "attributes", Name: "Attribute Completeness", Icon: "list", Rubric: rubric},
		{ID: "reliability", Name: "API Reliability", Icon: "shield", Rubric: rubric},
	}
}

// ValidateDimensions checks every dimension in a catalog.
func ValidateDimensions(dims []Dimension) error {
	if len(dims) == 0 {
		return errors.Config("dimension catalog is empty", nil)
	}
	seen := make(map[string]struct{}, len(dims))
	for _, d := range dims {
		if d.ID == "" {
			return errors.Config("dimension has no id", nil)
		}
		if _, dup := seen[d.ID]; dup {
			return errors.Newf(errors.TypeConfig, "duplicate dimension id: %s", d.ID)
		}
		seen[d.ID] = struct{}{}
		if err := d.Rubric.Validate(); err != nil {
			return errors.Newf(errors.TypeConfig, "dimension %s: %v", d.ID, err)
		}
	}
	return nil
}
