package importer

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/FloorSnap/internal/model"
)

// minWallLength is the shortest segment kept as a wall, in drawing units.
const minWallLength = 1e-6

// WallImportResult holds the results of a DXF wall import.
type WallImportResult struct {
	Walls    []model.WallSegment
	Errors   []string
	Warnings []string
}

// ImportWallsDXF reads wall centerlines from a DXF floorplan. Each LINE
// becomes one wall and each LWPOLYLINE becomes one wall per edge, including
// the closing edge of a closed polyline. Bulges are ignored: walls are
// straight. Every wall gets the given thickness.
func ImportWallsDXF(path string, thickness float64) WallImportResult {
	result := WallImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	add := func(start, end model.Point) {
		wall := model.WallSegment{
			ID:        fmt.Sprintf("wall-%d", len(result.Walls)+1),
			Start:     start,
			End:       end,
			Thickness: thickness,
		}
		if wall.Length() < minWallLength {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped zero-length wall at (%.3f, %.3f)", start.X, start.Y))
			return
		}
		result.Walls = append(result.Walls, wall)
	}

	skipped := 0
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.Line:
			add(model.Point{X: e.Start[0], Y: e.Start[1]}, model.Point{X: e.End[0], Y: e.End[1]})

		case *entity.LwPolyline:
			pts := lwPolylinePoints(e)
			if len(pts) < 2 {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 2 vertices")
				continue
			}
			for i := 0; i+1 < len(pts); i++ {
				add(pts[i], pts[i+1])
			}
			if e.Closed && len(pts) > 2 {
				add(pts[len(pts)-1], pts[0])
			}

		default:
			skipped++
		}
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Ignored %d unsupported entities", skipped))
	}
	if len(result.Walls) == 0 {
		result.Errors = append(result.Errors, "No walls found in DXF file")
	}

	return result
}

func lwPolylinePoints(lw *entity.LwPolyline) []model.Point {
	pts := make([]model.Point, 0, len(lw.Vertices))
	for _, v := range lw.Vertices {
		if len(v) < 2 {
			continue
		}
		pts = append(pts, model.Point{X: v[0], Y: v[1]})
	}
	return pts
}
