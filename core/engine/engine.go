// Package engine orchestrates the recommendation pipeline between the
// project store and the pure core: resolve a selection, price it, build
// the quality comparison, and persist the results. CLI and HTTP are
// thin wrappers around this engine; neither contains domain logic.
package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"mapiker/adapters/storage"
	"mapiker/core/pricing"
	"mapiker/core/quality"
	"mapiker/core/selection"
	"mapiker/core/types"
	"mapiker/internal/errors"
	"mapiker/internal/logging"
)

// comparisonCacheSize bounds the LRU of computed comparisons. Scores
// are deterministic, so a cached entry never goes stale for the same
// project identity and vendor set.
const comparisonCacheSize = 256

// Engine ties the store and the core components together.
type Engine struct {
	store       storage.Store
	pricer      *pricing.Engine
	synthesizer *quality.Synthesizer
	cache       *lru.Cache[string, *types.QualityComparisonData]
	log         *zap.Logger
}

// New creates an engine over a store, a rate card, and a dimension
// catalog. The catalog is validated up front; an invalid catalog is a
// deployment error, not something to discover per request.
func New(store storage.Store, rates pricing.RateCard, dimensions []quality.Dimension) (*Engine, error) {
	if err := quality.ValidateDimensions(dimensions); err != nil {
		return nil, err
	}
	cache, err := lru.New[string, *types.QualityComparisonData](comparisonCacheSize)
	if err != nil {
		return nil, errors.Internal("failed to create comparison cache", err)
	}
	return &Engine{
		store:       store,
		pricer:      pricing.NewEngine(rates),
		synthesizer: quality.NewSynthesizer(dimensions),
		cache:       cache,
		log:         logging.Logger,
	}, nil
}

// Dimensions exposes the active dimension catalog.
func (e *Engine) Dimensions() []quality.Dimension {
	return e.synthesizer.Dimensions()
}

// ResolveProject loads a project and resolves its selection into the
// canonical product list.
func (e *Engine) ResolveProject(ctx context.Context, projectID string) (selection.Result, error) {
	project, err := e.store.Get(ctx, projectID)
	if err != nil {
		return selection.Result{}, err
	}
	return e.resolve(project)
}

func (e *Engine) resolve(project *types.Project) (selection.Result, error) {
	result, err := selection.Resolve(project.MatchResult, project.Selection)
	if err != nil {
		return selection.Result{}, err
	}
	if result.Missing > 0 {
		e.log.Warn("selection references retired catalog entries",
			zap.String("project_id", project.ID),
			zap.Int("missing", result.Missing))
	}
	return result, nil
}

// PriceProject computes the price breakdown for a project and persists
// it together with the advanced workflow stage. Nothing is persisted if
// any step fails; a quote derived from a failed computation must never
// be stored.
func (e *Engine) PriceProject(ctx context.Context, projectID string, countryCount int, features []string) (*types.PricingData, error) {
	project, err := e.store.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	// The selection must resolve before a price is attached to it.
	if _, err := e.resolve(project); err != nil {
		return nil, err
	}

	quote, err := e.pricer.Quote(countryCount, features)
	if err != nil {
		return nil, err
	}

	project.Pricing = &quote
	project.Stage = types.StageQuote
	if err := e.store.Save(ctx, project); err != nil {
		return nil, err
	}

	e.log.Info("priced project",
		zap.String("project_id", projectID),
		zap.Int("countries", countryCount),
		zap.Int("features", len(features)),
		zap.String("total", quote.TotalPrice.StringFixed(2)))
	return &quote, nil
}

// CompareProject builds the cross-vendor quality comparison for the
// vendors present in the project's resolved selection. Results are
// cached: determinism makes a comparison for an unchanged selection
// permanently valid.
func (e *Engine) CompareProject(ctx context.Context, projectID string) (*types.QualityComparisonData, error) {
	project, err := e.store.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	resolved, err := e.resolve(project)
	if err != nil {
		return nil, err
	}
	vendors := resolved.Vendors()
	if len(vendors) == 0 {
		return nil, errors.EmptyInput("project selection resolves to zero vendors")
	}

	key := comparisonKey(project.ID, project.Region, vendors)
	if cached, ok := e.cache.Get(key); ok {
		return cached, nil
	}

	reports := e.synthesizer.SynthesizeAll(project.ID, project.Region, vendors)
	comparison, err := quality.Aggregate(reports)
	if err != nil {
		return nil, err
	}

	e.cache.Add(key, &comparison)
	e.log.Info("built quality comparison",
		zap.String("project_id", projectID),
		zap.Int("vendors", len(vendors)))
	return &comparison, nil
}

// comparisonKey fingerprints the inputs a comparison depends on.
func comparisonKey(projectID, region string, vendors []string) string {
	h := sha256.New()
	h.Write([]byte(projectID))
	h.Write([]byte{0})
	h.Write([]byte(region))
	for _, v := range vendors {
		h.Write([]byte{0})
		h.Write([]byte(v))
	}
	return hex.EncodeToString(h.Sum(nil))[:32]
}
