package geometry

import "github.com/piwi3910/FloorSnap/internal/model"

// ConstrainToBounds translates (x, y) by the smallest amount that keeps the
// rotated footprint inside bounds. Rotation is never altered. When the box is
// larger than bounds on an axis it is aligned to the bounds' minimum there.
func ConstrainToBounds(x, y, width, height, rotationDegrees float64, bounds model.Rect) (float64, float64) {
	box := ComputeBoundingBox(x, y, width, height, rotationDegrees)
	dx := axisShift(box.MinX, box.MaxX, bounds.MinX, bounds.MaxX)
	dy := axisShift(box.MinY, box.MaxY, bounds.MinY, bounds.MaxY)
	return x + dx, y + dy
}

// axisShift returns the offset that moves [lo, hi] inside [start, end].
func axisShift(lo, hi, start, end float64) float64 {
	switch {
	case hi-lo > end-start:
		return start - lo
	case lo < start:
		return start - lo
	case hi > end:
		return end - hi
	default:
		return 0
	}
}

// WallExtents returns the rectangle spanned by all wall endpoints, or an
// empty Rect when there are no walls.
func WallExtents(walls []model.WallSegment) model.Rect {
	if len(walls) == 0 {
		return model.Rect{}
	}
	r := model.Rect{MinX: walls[0].Start.X, MinY: walls[0].Start.Y, MaxX: walls[0].Start.X, MaxY: walls[0].Start.Y}
	for _, w := range walls {
		for _, p := range []model.Point{w.Start, w.End} {
			r.MinX = min(r.MinX, p.X)
			r.MinY = min(r.MinY, p.Y)
			r.MaxX = max(r.MaxX, p.X)
			r.MaxY = max(r.MaxY, p.Y)
		}
	}
	return r
}
