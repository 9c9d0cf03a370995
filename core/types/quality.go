package types

// DimensionScore is a synthesized score for one quality dimension,
// carrying both the numeric value and its rubric label. Consumers
// choose which to display.
type DimensionScore struct {
	// Score is the numeric score in [0, 100]
	Score int `json:"score"`

	// Label is the qualitative rubric label for the score
	Label string `json:"label"`
}

// VendorQualityReport holds the per-dimension scores for one vendor in
// one project/region context. Derived data: regenerable at any time
// from its seed inputs, never stored as ground truth.
type VendorQualityReport struct {
	// Vendor is the map-data provider the report describes
	Vendor string `json:"vendor"`

	// Scores maps dimension id to its score
	Scores map[string]DimensionScore `json:"scores"`
}

// QualityComparisonData is the cross-vendor comparison matrix: scores
// keyed by dimension then vendor, per-dimension best-vendor markers,
// and a project-level summary.
type QualityComparisonData struct {
	// Dimensions maps dimension id -> vendor -> score
	Dimensions map[string]map[string]DimensionScore `json:"dimensions"`

	// BestByDimension lists every vendor tied at the maximum score for
	// each dimension, sorted by vendor name
	BestByDimension map[string][]string `json:"best_by_dimension"`

	// Summary maps vendor to its average score across dimensions
	Summary map[string]float64 `json:"summary"`

	// BestOverall lists every vendor tied at the best average, sorted
	// by vendor name
	BestOverall []string `json:"best_overall"`
}
