package quality

import (
	"mapiker/core/determinism"
	"mapiker/core/types"
)

// Synthesizer produces vendor quality reports from identity data alone.
// There is no live measurement source; scores are a deterministic hash
// of (project, vendor, region, dimension), which makes them behave like
// cached measurement data: re-rendering a comparison never changes a
// previously shown score.
type Synthesizer struct {
	dimensions []Dimension
}

// NewSynthesizer creates a synthesizer over a dimension catalog.
func NewSynthesizer(dimensions []Dimension) *Synthesizer {
	return &Synthesizer{dimensions: dimensions}
}

// Dimensions returns the catalog the synthesizer scores against.
func (s *Synthesizer) Dimensions() []Dimension {
	return s.dimensions
}

// Synthesize builds the report for one vendor in one project/region
// context: a score and rubric label per catalog dimension.
func (s *Synthesizer) Synthesize(projectID, vendor, region string) types.VendorQualityReport {
	report := types.VendorQualityReport{
		Vendor: vendor,
		Scores: make(map[string]types.DimensionScore, len(s.dimensions)),
	}
	for _, dim := range s.dimensions {
		score := determinism.Score(determinism.SeedKey(projectID, vendor, region, dim.ID))
		report.Scores[dim.ID] = types.DimensionScore{
			Score: score,
			Label: dim.Rubric.Label(score),
		}
	}
	return report
}

// SynthesizeAll builds reports for several vendors at once, keyed by
// vendor name.
func (s *Synthesizer) SynthesizeAll(projectID, region string, vendors []string) map[string]types.VendorQualityReport {
	reports := make(map[string]types.VendorQualityReport, len(vendors))
	for _, vendor := range vendors {
		reports[vendor] = s.Synthesize(projectID, vendor, region)
	}
	return reports
}
