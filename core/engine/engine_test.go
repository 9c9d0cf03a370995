package engine

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapiker/adapters/storage"
	"mapiker/core/pricing"
	"mapiker/core/quality"
	"mapiker/core/types"
	"mapiker/internal/errors"
)

func testProject() *types.Project {
	var state types.SelectionState
	state.Add("geocoding", "px-geo")
	state.Add("routing", "py-route")

	return &types.Project{
		ID:     "proj-1",
		Region: "KR",
		Stage:  types.StageSelection,
		MatchResult: types.MatchResult{Categories: []types.Category{
			{Key: "geocoding", Products: []types.Product{
				{ID: "px-geo", Name: "Geocoder X", Provider: "VendorX"},
				{ID: "py-geo", Name: "Geocoder Y", Provider: "VendorY"},
			}},
			{Key: "routing", Products: []types.Product{
				{ID: "py-route", Name: "Router Y", Provider: "VendorY"},
			}},
		}},
		Selection: types.NewSingleSelection(state),
	}
}

func newTestEngine(t *testing.T, store storage.Store) *Engine {
	t.Helper()
	eng, err := New(store, pricing.DefaultRateCard(), quality.DefaultDimensions())
	require.NoError(t, err)
	return eng
}

func TestPriceProjectPersistsQuoteAndStage(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(ctx, testProject()))

	eng := newTestEngine(t, store)

	quote, err := eng.PriceProject(ctx, "proj-1", 3, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.True(t, quote.TotalPrice.Equal(decimal.NewFromInt(120)), "got %s", quote.TotalPrice)

	saved, err := store.Get(ctx, "proj-1")
	require.NoError(t, err)
	assert.Equal(t, types.StageQuote, saved.Stage)
	require.NotNil(t, saved.Pricing)
	assert.True(t, saved.Pricing.TotalPrice.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, []string{"a", "b", "c"}, saved.Pricing.SelectedFeatures)
}

func TestPriceProjectUnknownProject(t *testing.T) {
	eng := newTestEngine(t, storage.NewMemoryStore())

	_, err := eng.PriceProject(context.Background(), "missing", 1, nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeNotFound))
}

func TestPriceProjectDoesNotPersistOnFailure(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	broken := testProject()
	broken.Selection = types.Selection{Kind: types.KindMulti} // shape contradicts tag
	require.NoError(t, store.Save(ctx, broken))

	eng := newTestEngine(t, store)

	_, err := eng.PriceProject(ctx, "proj-1", 3, []string{"a"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInputShape))

	saved, err := store.Get(ctx, "proj-1")
	require.NoError(t, err)
	assert.Equal(t, types.StageSelection, saved.Stage, "failed computation must not advance the stage")
	assert.Nil(t, saved.Pricing, "failed computation must not persist a price")
}

func TestCompareProjectCoversSelectedVendors(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(ctx, testProject()))

	eng := newTestEngine(t, store)

	comparison, err := eng.CompareProject(ctx, "proj-1")
	require.NoError(t, err)

	require.Len(t, comparison.Dimensions, len(quality.DefaultDimensions()))
	for dimID, row := range comparison.Dimensions {
		assert.Len(t, row, 2, "dimension %s must cover both vendors", dimID)
		assert.Contains(t, row, "VendorX")
		assert.Contains(t, row, "VendorY")
	}
	assert.NotEmpty(t, comparison.BestOverall)
}

func TestCompareProjectIsCachedAndReproducible(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(ctx, testProject()))

	eng := newTestEngine(t, store)

	first, err := eng.CompareProject(ctx, "proj-1")
	require.NoError(t, err)

	second, err := eng.CompareProject(ctx, "proj-1")
	require.NoError(t, err)
	assert.Same(t, first, second, "unchanged project must hit the comparison cache")

	// A fresh engine (empty cache) must reproduce the same comparison:
	// scores depend only on identity, never on process state.
	fresh := newTestEngine(t, store)
	recomputed, err := fresh.CompareProject(ctx, "proj-1")
	require.NoError(t, err)
	assert.Equal(t, *first, *recomputed)
}

func TestCompareProjectWithEmptySelection(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	project := testProject()
	project.Selection = types.NewSingleSelection(types.SelectionState{})
	require.NoError(t, store.Save(ctx, project))

	eng := newTestEngine(t, store)

	_, err := eng.CompareProject(ctx, "proj-1")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeEmptyInput))
}

func TestNewRejectsInvalidCatalog(t *testing.T) {
	_, err := New(storage.NewMemoryStore(), pricing.DefaultRateCard(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}
