// Package selection resolves heterogeneous selection records into a
// canonical ordered product list.
package selection

import (
	"mapiker/core/types"
	"mapiker/internal/errors"
)

// Result is the outcome of one resolution: the ordered, de-duplicated
// products plus a count of selected ids with no catalog match. Missing
// references are not errors (catalog entries may be retired after a
// selection was made) but the count is surfaced for diagnostics.
type Result struct {
	Products []types.Product
	Missing  int
}

// Vendors returns the distinct providers of the resolved products, in
// first-seen order.
func (r Result) Vendors() []string {
	seen := make(map[string]struct{})
	var vendors []string
	for _, p := range r.Products {
		if _, ok := seen[p.Provider]; ok {
			continue
		}
		seen[p.Provider] = struct{}{}
		vendors = append(vendors, p.Provider)
	}
	return vendors
}

// Resolve flattens the match result and walks the selection record,
// producing each selected product exactly once, at the position of its
// first occurrence. Pure function: identical inputs give an identical
// result, including ordering.
//
// The selection's Kind tag is the only thing that decides which variant
// is read. A selection whose populated data contradicts its tag fails
// with an INPUT_SHAPE_ERROR rather than being coerced.
func Resolve(match types.MatchResult, sel types.Selection) (Result, error) {
	index := match.Index()

	var res Result
	seen := make(map[string]struct{})

	appendID := func(id string) {
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		product, ok := index[id]
		if !ok {
			res.Missing++
			return
		}
		res.Products = append(res.Products, product)
	}

	walk := func(state types.SelectionState) {
		for _, entry := range state.Entries {
			for _, id := range entry.ProductIDs {
				appendID(id)
			}
		}
	}

	switch sel.Kind {
	case types.KindSingle:
		if sel.Single == nil {
			return Result{}, errors.InputShape("selection tagged single but has no selection state")
		}
		walk(*sel.Single)

	case types.KindMulti:
		if sel.Environments == nil {
			return Result{}, errors.InputShape("selection tagged multi but has no environment states")
		}
		for _, env := range types.EnvironmentOrder {
			state, ok := sel.Environments[env]
			if !ok {
				continue
			}
			walk(state)
		}

	default:
		return Result{}, errors.InputShape("selection has unknown kind: " + string(sel.Kind))
	}

	return res, nil
}
