package snap

import (
	"math"

	"github.com/piwi3910/FloorSnap/internal/geometry"
	"github.com/piwi3910/FloorSnap/internal/model"
)

// Side names an edge of a target's bounding box.
type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// sideOrder is the evaluation order for each target.
var sideOrder = [...]Side{SideTop, SideBottom, SideLeft, SideRight}

// SnapSource is the footprint being moved. Width and Height describe its
// axis-aligned box at (X, Y).
type SnapSource struct {
	ID       string // excluded from the target list
	Category string
	X        float64
	Y        float64
	Width    float64
	Height   float64
}

// PairSnapResult is the adjusted position after pair snapping.
type PairSnapResult struct {
	X        float64
	Y        float64
	Snapped  bool
	TargetID string
	Side     Side
}

// SnapToRelated snaps source onto the first related item it is near.
//
// Only rules whose SourceCategory matches source.Category apply. Targets are
// visited in list order and their box sides in the order top, bottom, left,
// right. A side matches when the source's center along that side lies within
// the target's extent and the facing edges are closer than the rule's
// threshold. The first match wins: the source's facing edge is pushed
// rule.Inset past the target edge and the source is centered along the side.
// Items with unresolved catalog references are skipped.
func SnapToRelated(source SnapSource, items []model.PlacedItem, catalog model.Catalog, rules []model.PairRule) PairSnapResult {
	result := PairSnapResult{X: source.X, Y: source.Y}

	applicable := make(map[string]model.PairRule)
	for _, r := range rules {
		if r.SourceCategory != source.Category {
			continue
		}
		if _, dup := applicable[r.TargetCategory]; !dup {
			applicable[r.TargetCategory] = r
		}
	}
	if len(applicable) == 0 {
		return result
	}

	for _, item := range items {
		if item.ID == source.ID {
			continue
		}
		entry, ok := catalog.Lookup(item.CatalogRef)
		if !ok {
			continue
		}
		rule, ok := applicable[entry.EffectiveCategory()]
		if !ok {
			continue
		}
		w, h := item.Dimensions(entry)
		target := geometry.ComputeBoundingBox(item.X, item.Y, w, h, item.RotationDegrees)

		for _, side := range sideOrder {
			if x, y, ok := matchSide(source, target, side, rule); ok {
				return PairSnapResult{X: x, Y: y, Snapped: true, TargetID: item.ID, Side: side}
			}
		}
	}

	return result
}

// matchSide tests one side of target and returns the snapped source origin.
func matchSide(src SnapSource, target model.BoundingBox, side Side, rule model.PairRule) (float64, float64, bool) {
	cx := src.X + src.Width/2
	cy := src.Y + src.Height/2
	center := target.Center()

	switch side {
	case SideTop:
		// source sits above, its bottom edge faces the target's top edge
		if !within(cx, target.MinX, target.MaxX) || math.Abs(src.Y+src.Height-target.MinY) >= rule.Threshold {
			return 0, 0, false
		}
		return center.X - src.Width/2, target.MinY + rule.Inset - src.Height, true
	case SideBottom:
		if !within(cx, target.MinX, target.MaxX) || math.Abs(src.Y-target.MaxY) >= rule.Threshold {
			return 0, 0, false
		}
		return center.X - src.Width/2, target.MaxY - rule.Inset, true
	case SideLeft:
		if !within(cy, target.MinY, target.MaxY) || math.Abs(src.X+src.Width-target.MinX) >= rule.Threshold {
			return 0, 0, false
		}
		return target.MinX + rule.Inset - src.Width, center.Y - src.Height/2, true
	case SideRight:
		if !within(cy, target.MinY, target.MaxY) || math.Abs(src.X-target.MaxX) >= rule.Threshold {
			return 0, 0, false
		}
		return target.MaxX - rule.Inset, center.Y - src.Height/2, true
	}
	return 0, 0, false
}

func within(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
