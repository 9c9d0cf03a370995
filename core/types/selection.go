package types

// SelectionKind tags which variant of the selection record is populated.
// The resolver branches on this tag and never infers the variant from
// the shape of the data.
type SelectionKind string

const (
	// KindSingle is a selection for a single target environment
	KindSingle SelectionKind = "single"

	// KindMulti is a selection spanning multiple environments
	KindMulti SelectionKind = "multi"
)

// Environment names, iterated in this fixed order for multi-environment
// selections.
const (
	EnvMobile  = "mobile"
	EnvBackend = "backend"
)

// EnvironmentOrder is the canonical iteration order over environments.
var EnvironmentOrder = []string{EnvMobile, EnvBackend}

// SelectionEntry records the user's choice for one category: a single
// product id or several, in the order they were picked.
type SelectionEntry struct {
	// Category is the category key the choice belongs to
	Category string `json:"category"`

	// ProductIDs holds the chosen product ids in pick order
	ProductIDs []string `json:"product_ids"`
}

// SelectionState is the ordered list of per-category choices for one
// target environment. Entry order is the user's insertion order and is
// significant for resolution.
type SelectionState struct {
	Entries []SelectionEntry `json:"entries"`
}

// Add appends a choice for a category. An existing entry for the same
// category is extended rather than duplicated.
func (s *SelectionState) Add(category string, productIDs ...string) {
	for i := range s.Entries {
		if s.Entries[i].Category == category {
			s.Entries[i].ProductIDs = append(s.Entries[i].ProductIDs, productIDs...)
			return
		}
	}
	s.Entries = append(s.Entries, SelectionEntry{Category: category, ProductIDs: productIDs})
}

// IsEmpty reports whether no choices have been recorded.
func (s SelectionState) IsEmpty() bool {
	return len(s.Entries) == 0
}

// Selection is the tagged union of the two selection variants. Exactly
// one of Single/Environments is meaningful, determined by Kind.
type Selection struct {
	// Kind selects the populated variant
	Kind SelectionKind `json:"kind"`

	// Single is the selection state for a single-environment project
	Single *SelectionState `json:"single,omitempty"`

	// Environments maps environment name to its selection state for a
	// multi-environment project
	Environments map[string]SelectionState `json:"environments,omitempty"`
}

// NewSingleSelection builds a single-environment selection.
func NewSingleSelection(state SelectionState) Selection {
	return Selection{Kind: KindSingle, Single: &state}
}

// NewMultiSelection builds a multi-environment selection.
func NewMultiSelection(envs map[string]SelectionState) Selection {
	return Selection{Kind: KindMulti, Environments: envs}
}
