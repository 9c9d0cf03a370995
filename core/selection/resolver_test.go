package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapiker/core/types"
	"mapiker/internal/errors"
)

func matchResult(categories ...types.Category) types.MatchResult {
	return types.MatchResult{Categories: categories}
}

func product(id, provider string) types.Product {
	return types.Product{ID: id, Name: "Product " + id, Provider: provider}
}

func TestResolveSingleSelection(t *testing.T) {
	match := matchResult(
		types.Category{Key: "A", Products: []types.Product{product("p1", "VendorX"), product("p2", "VendorY")}},
		types.Category{Key: "B", Products: []types.Product{product("p2", "VendorY"), product("p3", "VendorZ")}},
	)

	var state types.SelectionState
	state.Add("A", "p1")
	state.Add("B", "p2", "p3")

	result, err := Resolve(match, types.NewSingleSelection(state))
	require.NoError(t, err)

	ids := make([]string, 0, len(result.Products))
	for _, p := range result.Products {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids)
	assert.Equal(t, 0, result.Missing)
}

func TestResolveDeduplicatesAtFirstOccurrence(t *testing.T) {
	match := matchResult(
		types.Category{Key: "A", Products: []types.Product{product("p1", "VendorX"), product("p2", "VendorY")}},
		types.Category{Key: "B", Products: []types.Product{product("p2", "VendorY")}},
	)

	var state types.SelectionState
	state.Add("A", "p2", "p1")
	state.Add("B", "p2")

	result, err := Resolve(match, types.NewSingleSelection(state))
	require.NoError(t, err)
	require.Len(t, result.Products, 2)
	assert.Equal(t, "p2", result.Products[0].ID, "dedup must keep the first occurrence position")
	assert.Equal(t, "p1", result.Products[1].ID)
}

func TestResolveSkipsMissingReferences(t *testing.T) {
	match := matchResult(
		types.Category{Key: "A", Products: []types.Product{product("p1", "VendorX")}},
	)

	var state types.SelectionState
	state.Add("A", "p1", "retired-1", "retired-2")

	result, err := Resolve(match, types.NewSingleSelection(state))
	require.NoError(t, err, "missing catalog references are not errors")
	require.Len(t, result.Products, 1)
	assert.Equal(t, "p1", result.Products[0].ID)
	assert.Equal(t, 2, result.Missing)
}

func TestResolveMultiEnvironmentOrder(t *testing.T) {
	match := matchResult(
		types.Category{Key: "A", Products: []types.Product{product("m1", "VendorX"), product("b1", "VendorY")}},
	)

	var mobile, backend types.SelectionState
	mobile.Add("A", "m1")
	backend.Add("A", "b1")

	// Map insertion order must not matter: mobile always comes first.
	sel := types.NewMultiSelection(map[string]types.SelectionState{
		types.EnvBackend: backend,
		types.EnvMobile:  mobile,
	})

	result, err := Resolve(match, sel)
	require.NoError(t, err)
	require.Len(t, result.Products, 2)
	assert.Equal(t, "m1", result.Products[0].ID)
	assert.Equal(t, "b1", result.Products[1].ID)
}

func TestResolveMultiEnvironmentMissingEnvIsFine(t *testing.T) {
	match := matchResult(
		types.Category{Key: "A", Products: []types.Product{product("b1", "VendorY")}},
	)

	var backend types.SelectionState
	backend.Add("A", "b1")

	result, err := Resolve(match, types.NewMultiSelection(map[string]types.SelectionState{
		types.EnvBackend: backend,
	}))
	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "b1", result.Products[0].ID)
}

func TestResolveDeduplicatesAcrossEnvironments(t *testing.T) {
	match := matchResult(
		types.Category{Key: "A", Products: []types.Product{product("p1", "VendorX")}},
	)

	var mobile, backend types.SelectionState
	mobile.Add("A", "p1")
	backend.Add("A", "p1")

	result, err := Resolve(match, types.NewMultiSelection(map[string]types.SelectionState{
		types.EnvMobile:  mobile,
		types.EnvBackend: backend,
	}))
	require.NoError(t, err)
	assert.Len(t, result.Products, 1)
}

func TestResolveShapeErrors(t *testing.T) {
	match := matchResult()
	var state types.SelectionState
	state.Add("A", "p1")

	tests := []struct {
		name string
		sel  types.Selection
	}{
		{
			name: "multi tag without environments",
			sel:  types.Selection{Kind: types.KindMulti, Single: &state},
		},
		{
			name: "single tag without state",
			sel:  types.Selection{Kind: types.KindSingle},
		},
		{
			name: "unknown kind",
			sel:  types.Selection{Kind: "nested"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(match, tt.sel)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeInputShape), "expected INPUT_SHAPE_ERROR, got %v", err)
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	match := matchResult(
		types.Category{Key: "A", Products: []types.Product{product("p1", "VendorX"), product("p2", "VendorY")}},
		types.Category{Key: "B", Products: []types.Product{product("p3", "VendorZ")}},
	)

	var state types.SelectionState
	state.Add("B", "p3")
	state.Add("A", "p1", "p2")
	sel := types.NewSingleSelection(state)

	first, err := Resolve(match, sel)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Resolve(match, sel)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestVendorsFirstSeenOrder(t *testing.T) {
	result := Result{Products: []types.Product{
		product("p1", "VendorY"),
		product("p2", "VendorX"),
		product("p3", "VendorY"),
	}}
	assert.Equal(t, []string{"VendorY", "VendorX"}, result.Vendors())
}
