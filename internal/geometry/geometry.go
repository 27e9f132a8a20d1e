// Package geometry provides rotation-aware bounding boxes and bounds
// clamping for rectangular furniture footprints.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/piwi3910/FloorSnap/internal/model"
)

// NormalizeRotation maps an angle in degrees into [0, 360).
func NormalizeRotation(degrees float64) float64 {
	r := math.Mod(degrees, 360)
	if r < 0 {
		r += 360
	}
	// -1e-15 mod 360 lands on 360 after the shift
	if r >= 360 {
		r = 0
	}
	return r
}

// ComputeBoundingBox treats (x, y, width, height) as an unrotated rectangle,
// rotates it about its own center and returns the axis-aligned box enclosing
// all four rotated corners.
//
// The result is continuous in the angle: the box is
// width·|cos θ| + height·|sin θ| wide and width·|sin θ| + height·|cos θ| tall.
func ComputeBoundingBox(x, y, width, height, rotationDegrees float64) model.BoundingBox {
	center := r2.Vec{X: x + width/2, Y: y + height/2}
	rot := r2.NewRotation(NormalizeRotation(rotationDegrees)*math.Pi/180, center)

	corners := [4]r2.Vec{
		{X: x, Y: y},
		{X: x + width, Y: y},
		{X: x + width, Y: y + height},
		{X: x, Y: y + height},
	}

	first := rot.Rotate(corners[0])
	box := model.BoundingBox{MinX: first.X, MaxX: first.X, MinY: first.Y, MaxY: first.Y}
	for _, c := range corners[1:] {
		p := rot.Rotate(c)
		box.MinX = math.Min(box.MinX, p.X)
		box.MaxX = math.Max(box.MaxX, p.X)
		box.MinY = math.Min(box.MinY, p.Y)
		box.MaxY = math.Max(box.MaxY, p.Y)
	}
	return box
}

// ItemBoundingBox resolves the item's catalog entry and returns its
// rotation-aware box. ok is false when the catalog reference is unresolved.
func ItemBoundingBox(item model.PlacedItem, catalog model.Catalog) (box model.BoundingBox, ok bool) {
	entry, ok := catalog.Lookup(item.CatalogRef)
	if !ok {
		return model.BoundingBox{}, false
	}
	w, h := item.Dimensions(entry)
	return ComputeBoundingBox(item.X, item.Y, w, h, item.RotationDegrees), true
}
