package types

import (
	"time"
)

// Stage is a project's position in the recommendation workflow.
type Stage string

const (
	// StageSelection means the user is still choosing products
	StageSelection Stage = "selection"

	// StageQuote means a price breakdown has been computed and stored
	StageQuote Stage = "quote"

	// StageComparison means the quality comparison has been viewed
	StageComparison Stage = "comparison"
)

// Project is the stored project record the core reads from and the
// caller persists back. MatchResult and Selection are read-only inputs;
// Pricing and Quality are outputs written back by the caller.
type Project struct {
	// ID uniquely identifies the project
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name,omitempty"`

	// Region is the target region code (e.g. "KR"), part of every
	// quality score's seed identity
	Region string `json:"region"`

	// MatchResult is the upstream matching output, stored verbatim
	MatchResult MatchResult `json:"match_result"`

	// Selection is the user's product selection (tagged variant)
	Selection Selection `json:"selection"`

	// Stage is the workflow stage marker
	Stage Stage `json:"stage"`

	// Pricing is the persisted price breakdown, if computed
	Pricing *PricingData `json:"pricing,omitempty"`

	// Quality is the persisted comparison, if computed
	Quality *QualityComparisonData `json:"quality,omitempty"`

	// Rev is bumped on every save; saves carrying a stale Rev are
	// rejected so superseded recomputes are discarded
	Rev int64 `json:"rev"`

	// CreatedAt is when the project was created
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the project was last saved
	UpdatedAt time.Time `json:"updated_at"`
}
