package model

import "sort"

// CatalogEntry is a reference furniture definition. Width and Height are the
// default footprint in meters; the optional bounds limit custom resizing.
type CatalogEntry struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  string   `json:"category"` // pair-snap rule key; falls back to ID
	Width     float64  `json:"width"`
	Height    float64  `json:"height"`
	MinWidth  *float64 `json:"min_width,omitempty"`
	MaxWidth  *float64 `json:"max_width,omitempty"`
	MinHeight *float64 `json:"min_height,omitempty"`
	MaxHeight *float64 `json:"max_height,omitempty"`
}

// EffectiveCategory returns the category used to match pair-snap rules.
func (e CatalogEntry) EffectiveCategory() string {
	if e.Category != "" {
		return e.Category
	}
	return e.ID
}

// ClampSize limits a requested custom size to the entry's allowed range.
// Unset bounds do not constrain.
func (e CatalogEntry) ClampSize(width, height float64) (float64, float64) {
	return clampOptional(width, e.MinWidth, e.MaxWidth), clampOptional(height, e.MinHeight, e.MaxHeight)
}

func clampOptional(v float64, lo, hi *float64) float64 {
	if lo != nil && v < *lo {
		v = *lo
	}
	if hi != nil && v > *hi {
		v = *hi
	}
	return v
}

// Catalog maps catalog IDs to entries.
type Catalog map[string]CatalogEntry

// NewCatalog indexes entries by ID. Later duplicates replace earlier ones.
func NewCatalog(entries ...CatalogEntry) Catalog {
	c := make(Catalog, len(entries))
	for _, e := range entries {
		c[e.ID] = e
	}
	return c
}

// Lookup returns the entry for id and whether it exists.
func (c Catalog) Lookup(id string) (CatalogEntry, bool) {
	e, ok := c[id]
	return e, ok
}

// IDs returns the catalog IDs in lexical order.
func (c Catalog) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Unresolved returns the IDs of items whose CatalogRef has no entry, in
// input order.
func Unresolved(items []PlacedItem, catalog Catalog) []string {
	var ids []string
	for _, it := range items {
		if _, ok := catalog.Lookup(it.CatalogRef); !ok {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// Float returns a pointer to v, for optional dimension fields.
func Float(v float64) *float64 {
	return &v
}
