// Package snap moves a candidate footprint onto nearby walls and onto
// related furniture. All functions are pure and take their thresholds as
// arguments.
package snap

import (
	"math"

	"github.com/piwi3910/FloorSnap/internal/model"
)

// WallSnapOptions controls wall snapping distances in meters.
type WallSnapOptions struct {
	Threshold     float64 // max edge-to-wall distance that snaps
	AxisTolerance float64 // max coordinate drift for a wall to count as axis-aligned
}

// DefaultWallSnapOptions returns the 0.2 m threshold and 0.01 m tolerance.
func DefaultWallSnapOptions() WallSnapOptions {
	return WallSnapOptions{
		Threshold:     model.DefaultWallThreshold,
		AxisTolerance: model.DefaultAxisTolerance,
	}
}

// WallSnapResult is the adjusted position after wall snapping.
type WallSnapResult struct {
	X        float64
	Y        float64
	Snapped  bool
	SnapType model.SnapType
	WallID   string // wall that won, empty when not snapped
}

// SnapToWalls snaps the rectangle (x, y, width, height) to the closest
// axis-aligned wall edge within opts.Threshold.
//
// Horizontal walls are only considered when the rectangle's horizontal extent
// overlaps the wall's, and then the top and bottom edges are tested against
// the wall's y. Vertical walls test the left and right edges against x.
// Diagonal walls never snap. A candidate must be strictly closer than the
// current best, so on exact ties the first wall in input order wins.
func SnapToWalls(x, y, width, height float64, walls []model.WallSegment, opts WallSnapOptions) WallSnapResult {
	result := WallSnapResult{X: x, Y: y}
	best := opts.Threshold

	consider := func(dist, nx, ny float64, wallID string) {
		if dist < best {
			best = dist
			result = WallSnapResult{X: nx, Y: ny, Snapped: true, SnapType: model.SnapWall, WallID: wallID}
		}
	}

	for _, w := range walls {
		switch {
		case w.IsHorizontal(opts.AxisTolerance):
			lo, hi := span(w.Start.X, w.End.X)
			if !extentsOverlap(x, x+width, lo, hi) {
				continue
			}
			wallY := (w.Start.Y + w.End.Y) / 2
			consider(math.Abs(y-wallY), x, wallY, w.ID)
			consider(math.Abs(y+height-wallY), x, wallY-height, w.ID)

		case w.IsVertical(opts.AxisTolerance):
			lo, hi := span(w.Start.Y, w.End.Y)
			if !extentsOverlap(y, y+height, lo, hi) {
				continue
			}
			wallX := (w.Start.X + w.End.X) / 2
			consider(math.Abs(x-wallX), wallX, y, w.ID)
			consider(math.Abs(x+width-wallX), wallX-width, y, w.ID)
		}
	}

	return result
}

// span orders two coordinates.
func span(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}

// extentsOverlap reports whether [a0, a1] and [b0, b1] share more than a point.
func extentsOverlap(a0, a1, b0, b1 float64) bool {
	return a0 < b1 && a1 > b0
}
