package model

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Point represents a floorplan-relative 2D coordinate in meters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// OpeningKind identifies what kind of gap an opening cuts into a wall.
type OpeningKind string

const (
	OpeningDoor   OpeningKind = "door"
	OpeningWindow OpeningKind = "window"
)

// Opening is a door or window placed along a wall, measured from the wall start.
type Opening struct {
	Kind   OpeningKind `json:"kind"`
	Offset float64     `json:"offset"` // m from wall start
	Width  float64     `json:"width"`  // m along the wall
}

// WallSegment is a structural wall between two points. Walls are reference
// geometry and are never mutated by the placement engine.
type WallSegment struct {
	ID        string    `json:"id"`
	Start     Point     `json:"start"`
	End       Point     `json:"end"`
	Thickness float64   `json:"thickness"` // m
	// Openings are carried through for callers; snapping and collision never read them.
	Openings  []Opening `json:"openings,omitempty"`
}

// IsHorizontal reports whether the wall runs along the X axis within tol.
func (w WallSegment) IsHorizontal(tol float64) bool {
	return math.Abs(w.Start.Y-w.End.Y) < tol
}

// IsVertical reports whether the wall runs along the Y axis within tol.
func (w WallSegment) IsVertical(tol float64) bool {
	return math.Abs(w.Start.X-w.End.X) < tol
}

// Length returns the wall's length in meters.
func (w WallSegment) Length() float64 {
	return math.Hypot(w.End.X-w.Start.X, w.End.Y-w.Start.Y)
}

// PlacedItem is a furniture instance positioned on the floorplan.
// X and Y are the top-left corner of the unrotated footprint.
type PlacedItem struct {
	ID              string   `json:"id"`
	CatalogRef      string   `json:"catalog_ref"`
	X               float64  `json:"x"`
	Y               float64  `json:"y"`
	RotationDegrees float64  `json:"rotation_degrees"`
	CustomWidth     *float64 `json:"custom_width,omitempty"`
	CustomHeight    *float64 `json:"custom_height,omitempty"`
}

// NewPlacedItem creates an unrotated item at (x, y) with a generated ID.
func NewPlacedItem(catalogRef string, x, y float64) PlacedItem {
	return PlacedItem{
		ID:         uuid.New().String()[:8],
		CatalogRef: catalogRef,
		X:          x,
		Y:          y,
	}
}

// Dimensions returns the item's footprint, preferring custom sizes over the
// catalog defaults.
func (p PlacedItem) Dimensions(entry CatalogEntry) (width, height float64) {
	width, height = entry.Width, entry.Height
	if p.CustomWidth != nil {
		width = *p.CustomWidth
	}
	if p.CustomHeight != nil {
		height = *p.CustomHeight
	}
	return width, height
}

// BoundingBox is an axis-aligned box enclosing a possibly rotated footprint.
type BoundingBox struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
}

func (b BoundingBox) Width() float64  { return b.MaxX - b.MinX }
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Translate shifts the box by dx, dy.
func (b BoundingBox) Translate(dx, dy float64) BoundingBox {
	return BoundingBox{MinX: b.MinX + dx, MaxX: b.MaxX + dx, MinY: b.MinY + dy, MaxY: b.MaxY + dy}
}

// Overlaps returns true if the two boxes share an area that extends more
// than margin along both axes. Touching boxes never overlap.
func (b BoundingBox) Overlaps(other BoundingBox, margin float64) bool {
	overlapX := min(b.MaxX, other.MaxX) - max(b.MinX, other.MinX)
	overlapY := min(b.MaxY, other.MaxY) - max(b.MinY, other.MinY)
	return overlapX > margin && overlapY > margin
}

// Rect is the floorplan extent items must stay within.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// NewRect creates a Rect from an origin and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + width, MaxY: y + height}
}

// Empty reports whether r has no area. An empty Rect means "unbounded" to
// the placement pipeline.
func (r Rect) Empty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Contains reports whether box lies entirely within r, allowing eps of slack.
func (r Rect) Contains(box BoundingBox, eps float64) bool {
	return box.MinX >= r.MinX-eps && box.MaxX <= r.MaxX+eps &&
		box.MinY >= r.MinY-eps && box.MaxY <= r.MaxY+eps
}

// SnapType tags what a moved item snapped to.
type SnapType string

const (
	SnapNone SnapType = ""
	SnapWall SnapType = "wall"
	SnapPair SnapType = "pair"
)

func (s SnapType) String() string {
	if s == SnapNone {
		return "none"
	}
	return string(s)
}

// IDSet is a set of item IDs.
type IDSet map[string]struct{}

// Add inserts ids into the set.
func (s IDSet) Add(ids ...string) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the IDs in lexical order.
func (s IDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
