package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/FloorSnap/internal/model"
)

// LayoutVersion is written into every saved layout.
const LayoutVersion = "1.0.0"

// ErrMissingVersion is returned for layout files without a version field.
var ErrMissingVersion = errors.New("invalid layout file: missing version field")

// Layout is a complete floorplan: walls, the catalog in use, placed items
// and the floorplan bounds.
type Layout struct {
	Version   string               `json:"version"`
	CreatedAt string               `json:"created_at"`
	Bounds    model.Rect           `json:"bounds"`
	Walls     []model.WallSegment  `json:"walls"`
	Catalog   []model.CatalogEntry `json:"catalog"`
	Items     []model.PlacedItem   `json:"items"`
}

// NewLayout stamps a layout with the current version and time. Catalog
// entries are stored sorted by ID.
func NewLayout(bounds model.Rect, walls []model.WallSegment, catalog model.Catalog, items []model.PlacedItem) Layout {
	entries := make([]model.CatalogEntry, 0, len(catalog))
	for _, id := range catalog.IDs() {
		entries = append(entries, catalog[id])
	}
	return Layout{
		Version:   LayoutVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Bounds:    bounds,
		Walls:     walls,
		Catalog:   entries,
		Items:     items,
	}
}

// CatalogMap indexes the layout's catalog entries by ID.
func (l Layout) CatalogMap() model.Catalog {
	return model.NewCatalog(l.Catalog...)
}

// SaveLayout writes a layout to the specified path as JSON.
func SaveLayout(path string, layout Layout) error {
	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create layout directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write layout file: %w", err)
	}
	return nil
}

// LoadLayout reads a layout file. Nil slices are normalized to empty ones.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to read layout file: %w", err)
	}
	var layout Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return Layout{}, fmt.Errorf("failed to parse layout file: %w", err)
	}
	if layout.Version == "" {
		return Layout{}, ErrMissingVersion
	}
	if layout.Walls == nil {
		layout.Walls = []model.WallSegment{}
	}
	if layout.Catalog == nil {
		layout.Catalog = []model.CatalogEntry{}
	}
	if layout.Items == nil {
		layout.Items = []model.PlacedItem{}
	}
	return layout, nil
}
