// Package collision detects overlap between placed furniture using
// rotation-aware bounding boxes.
package collision

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/piwi3910/FloorSnap/internal/geometry"
	"github.com/piwi3910/FloorSnap/internal/model"
)

// R-tree node fan-out for the per-call index.
const (
	minChildren = 4
	maxChildren = 16
)

// placedBox is an item's resolved box, indexed by its position in the input.
type placedBox struct {
	index int
	id    string
	box   model.BoundingBox
	rect  rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (p *placedBox) Bounds() rtreego.Rect {
	return p.rect
}

// DetectCollisions returns the IDs of every item whose box overlaps another
// item's box by more than margin on both axes. Both members of a colliding
// pair are always reported. Items with an unresolved catalog reference are
// skipped and never collide.
func DetectCollisions(items []model.PlacedItem, catalog model.Catalog, margin float64) model.IDSet {
	result := model.IDSet{}

	boxes := resolveBoxes(items, catalog, margin)
	if len(boxes) < 2 {
		return result
	}

	spatials := make([]rtreego.Spatial, len(boxes))
	for i, b := range boxes {
		spatials[i] = b
	}
	tree := rtreego.NewTree(2, minChildren, maxChildren, spatials...)

	for _, a := range boxes {
		for _, hit := range tree.SearchIntersect(a.rect) {
			b := hit.(*placedBox)
			// each unordered pair once
			if b.index <= a.index {
				continue
			}
			if a.box.Overlaps(b.box, margin) {
				result.Add(a.id, b.id)
			}
		}
	}
	return result
}

// CheckItemCollision reports whether target overlaps any other item. The
// target itself (matched by ID) is ignored. It runs in linear time and is
// meant for feedback during a drag.
func CheckItemCollision(target model.PlacedItem, items []model.PlacedItem, catalog model.Catalog, margin float64) bool {
	targetBox, ok := geometry.ItemBoundingBox(target, catalog)
	if !ok {
		return false
	}
	for _, it := range items {
		if it.ID == target.ID {
			continue
		}
		box, ok := geometry.ItemBoundingBox(it, catalog)
		if !ok {
			continue
		}
		if targetBox.Overlaps(box, margin) {
			return true
		}
	}
	return false
}

// CollidingWith returns the IDs of items that overlap target, in input order.
func CollidingWith(target model.PlacedItem, items []model.PlacedItem, catalog model.Catalog, margin float64) []string {
	targetBox, ok := geometry.ItemBoundingBox(target, catalog)
	if !ok {
		return nil
	}
	var ids []string
	for _, it := range items {
		if it.ID == target.ID {
			continue
		}
		box, ok := geometry.ItemBoundingBox(it, catalog)
		if ok && targetBox.Overlaps(box, margin) {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// resolveBoxes computes boxes for resolvable items. Index rects are padded
// so the broad phase never misses a pair the exact test would accept.
func resolveBoxes(items []model.PlacedItem, catalog model.Catalog, margin float64) []*placedBox {
	pad := 1e-9 + math.Max(0, -margin)

	boxes := make([]*placedBox, 0, len(items))
	for i, it := range items {
		box, ok := geometry.ItemBoundingBox(it, catalog)
		if !ok {
			continue
		}
		rect, err := rtreego.NewRectFromPoints(
			rtreego.Point{box.MinX - pad, box.MinY - pad},
			rtreego.Point{box.MaxX + pad, box.MaxY + pad},
		)
		if err != nil {
			continue
		}
		boxes = append(boxes, &placedBox{index: i, id: it.ID, box: box, rect: rect})
	}
	return boxes
}
