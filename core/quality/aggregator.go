package quality

import (
	"sort"

	"mapiker/core/determinism"
	"mapiker/core/types"
	"mapiker/internal/errors"
)

// Aggregate transposes vendor-keyed reports into the dimension-keyed
// comparison matrix. Every vendor tied at a dimension's maximum score
// is marked best; there is no arbitrary single winner. The same rule
// applies to the best-overall average.
//
// An empty report set fails with EMPTY_INPUT: a comparison with zero
// vendors has no meaningful output and callers must handle it
// distinctly from a valid report.
func Aggregate(reports map[string]types.VendorQualityReport) (types.QualityComparisonData, error) {
	if len(reports) == 0 {
		return types.QualityComparisonData{}, errors.EmptyInput("cannot aggregate zero vendor reports")
	}

	out := types.QualityComparisonData{
		Dimensions:      make(map[string]map[string]types.DimensionScore),
		BestByDimension: make(map[string][]string),
		Summary:         make(map[string]float64, len(reports)),
	}

	// Transpose vendor -> dimension into dimension -> vendor.
	for _, vendor := range determinism.SortedKeys(reports) {
		for dimID, score := range reports[vendor].Scores {
			row := out.Dimensions[dimID]
			if row == nil {
				row = make(map[string]types.DimensionScore)
				out.Dimensions[dimID] = row
			}
			row[vendor] = score
		}
	}

	for dimID, row := range out.Dimensions {
		out.BestByDimension[dimID] = bestVendors(row)
	}

	// Per-vendor totals; averages compared via cross-multiplication so
	// ties are exact even when vendors cover different dimension sets.
	type tally struct {
		total int
		count int
	}
	tallies := make(map[string]tally, len(reports))
	for vendor, report := range reports {
		t := tally{}
		for _, score := range report.Scores {
			t.total += score.Score
			t.count++
		}
		tallies[vendor] = t
		if t.count > 0 {
			out.Summary[vendor] = float64(t.total) / float64(t.count)
		} else {
			out.Summary[vendor] = 0
		}
	}

	var best []string
	bestTally := tally{}
	for _, vendor := range determinism.SortedKeys(tallies) {
		t := tallies[vendor]
		switch cmpAverage(t.total, t.count, bestTally.total, bestTally.count) {
		case 1:
			best = []string{vendor}
			bestTally = t
		case 0:
			if len(best) > 0 {
				best = append(best, vendor)
			} else {
				best = []string{vendor}
				bestTally = t
			}
		}
	}
	out.BestOverall = best

	return out, nil
}

// bestVendors returns every vendor tied at the row's maximum score, in
// sorted vendor order.
func bestVendors(row map[string]types.DimensionScore) []string {
	max := -1
	var best []string
	for _, vendor := range determinism.SortedKeys(row) {
		score := row[vendor].Score
		switch {
		case score > max:
			max = score
			best = []string{vendor}
		case score == max:
			best = append(best, vendor)
		}
	}
	sort.Strings(best)
	return best
}

// cmpAverage compares total1/count1 against total2/count2 without
// division. A tally with no scores loses to any tally with scores.
func cmpAverage(total1, count1, total2, count2 int) int {
	if count1 == 0 && count2 == 0 {
		return 0
	}
	if count1 == 0 {
		return -1
	}
	if count2 == 0 {
		return 1
	}
	lhs := total1 * count2
	rhs := total2 * count1
	switch {
	case lhs > rhs:
		return 1
	case lhs < rhs:
		return -1
	default:
		return 0
	}
}
