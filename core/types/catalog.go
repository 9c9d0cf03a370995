// Package types holds the shared domain types for the mapiker core.
package types

// Product is a map-data product from the vendor catalog. Products are
// owned by the catalog and referenced, never copied, by selections.
type Product struct {
	// ID uniquely identifies the product within the catalog
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// Provider is the vendor offering the product
	Provider string `json:"provider"`

	// SubCategory is the product's sub-category within its match category
	SubCategory string `json:"sub_category,omitempty"`

	// Description is a short human-readable description
	Description string `json:"description,omitempty"`

	// Features lists the feature identifiers the product covers
	Features []string `json:"features,omitempty"`

	// Format is the delivery format (e.g. "api", "tiles", "dataset")
	Format string `json:"format,omitempty"`

	// DocURL links to vendor documentation, when available
	DocURL string `json:"doc_url,omitempty"`
}

// Category groups the matched products for one requirement category.
// Product order within a category is significant and preserved.
type Category struct {
	// Key identifies the category (matches selection category keys)
	Key string `json:"key"`

	// Products is the ordered list of matched products
	Products []Product `json:"products"`
}

// MatchResult is the output of the upstream matching engine: the set of
// categories with their candidate products. Read-only input to the core.
type MatchResult struct {
	Categories []Category `json:"categories"`
}

// Index flattens the match result into an id -> Product lookup.
// Later duplicates of an id do not overwrite the first occurrence.
func (m MatchResult) Index() map[string]Product {
	idx := make(map[string]Product)
	for _, cat := range m.Categories {
		for _, p := range cat.Products {
			if _, ok := idx[p.ID]; !ok {
				idx[p.ID] = p
			}
		}
	}
	return idx
}
