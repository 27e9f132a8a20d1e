// Package engine runs the placement pipeline for a single user action:
// bounding box, wall snap, pair snap, bounds clamp, collision recompute.
package engine

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/piwi3910/FloorSnap/internal/collision"
	"github.com/piwi3910/FloorSnap/internal/geometry"
	"github.com/piwi3910/FloorSnap/internal/model"
	"github.com/piwi3910/FloorSnap/internal/snap"
)

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrUnresolvedCatalog = errors.New("unresolved catalog reference")
	ErrNonFinite         = errors.New("non-finite coordinate or dimension")
)

// Engine places furniture against a caller-supplied scene snapshot. It holds
// no scene state, so one Engine can serve concurrent callers.
type Engine struct {
	Settings model.Settings
	logger   *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for snap and unresolved-reference events.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func New(settings model.Settings, opts ...Option) *Engine {
	e := &Engine{Settings: settings, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Scene is a read-only snapshot of the floorplan. An empty Bounds disables
// clamping.
type Scene struct {
	Walls   []model.WallSegment
	Catalog model.Catalog
	Items   []model.PlacedItem
	Bounds  model.Rect
}

// Result is the final state of the acted-on item plus scene feedback.
type Result struct {
	Item       model.PlacedItem
	Box        model.BoundingBox
	Snapped    bool
	SnapType   model.SnapType
	SnapTarget string // wall or item ID that won the snap
	Colliding  bool   // the acted-on item overlaps something
	Collisions model.IDSet
	Unresolved []string // scene items skipped for unknown catalog refs
}

// Report summarizes a whole scene without moving anything.
type Report struct {
	Collisions  model.IDSet
	Unresolved  []string
	OutOfBounds []string // items whose box leaves the scene bounds, in input order
}

// boundsSlack absorbs rounding in rotated boxes that were clamped exactly
// onto a bound.
const boundsSlack = 1e-9

// Place runs the pipeline for a newly placed item. An empty ID is filled in.
func (e *Engine) Place(scene Scene, item model.PlacedItem) (Result, error) {
	if item.ID == "" {
		item.ID = model.NewPlacedItem(item.CatalogRef, item.X, item.Y).ID
	}
	return e.run(scene, item)
}

// Move runs the pipeline with the item's top-left corner at (x, y).
func (e *Engine) Move(scene Scene, id string, x, y float64) (Result, error) {
	item, err := findItem(scene.Items, id)
	if err != nil {
		return Result{}, err
	}
	item.X, item.Y = x, y
	return e.run(scene, item)
}

// Rotate runs the pipeline with the item rotated to degrees.
func (e *Engine) Rotate(scene Scene, id string, degrees float64) (Result, error) {
	item, err := findItem(scene.Items, id)
	if err != nil {
		return Result{}, err
	}
	item.RotationDegrees = degrees
	return e.run(scene, item)
}

// Resize runs the pipeline with a custom footprint. The caller is
// responsible for keeping the size within the catalog limits.
func (e *Engine) Resize(scene Scene, id string, width, height float64) (Result, error) {
	item, err := findItem(scene.Items, id)
	if err != nil {
		return Result{}, err
	}
	item.CustomWidth = model.Float(width)
	item.CustomHeight = model.Float(height)
	return e.run(scene, item)
}

// Collides is the low-latency check used while a drag is in progress. It
// skips snapping and clamping.
func (e *Engine) Collides(scene Scene, item model.PlacedItem) bool {
	return collision.CheckItemCollision(item, scene.Items, scene.Catalog, e.Settings.CollisionMargin)
}

// Evaluate computes the collision set, the unresolved items and the items
// lying outside the bounds for the scene.
func (e *Engine) Evaluate(scene Scene) Report {
	report := Report{
		Collisions:  collision.DetectCollisions(scene.Items, scene.Catalog, e.Settings.CollisionMargin),
		Unresolved:  model.Unresolved(scene.Items, scene.Catalog),
		OutOfBounds: outOfBounds(scene),
	}
	e.logUnresolved(report.Unresolved)
	if len(report.OutOfBounds) > 0 {
		e.logger.Warn("items outside floorplan bounds", zap.Strings("items", report.OutOfBounds))
	}
	return report
}

// outOfBounds lists resolvable items that extend past scene.Bounds. An empty
// Bounds contains everything.
func outOfBounds(scene Scene) []string {
	if scene.Bounds.Empty() {
		return nil
	}
	var ids []string
	for _, it := range scene.Items {
		box, ok := geometry.ItemBoundingBox(it, scene.Catalog)
		if ok && !scene.Bounds.Contains(box, boundsSlack) {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

func (e *Engine) run(scene Scene, item model.PlacedItem) (Result, error) {
	entry, ok := scene.Catalog.Lookup(item.CatalogRef)
	if !ok {
		return Result{}, fmt.Errorf("item %s: %w %q", item.ID, ErrUnresolvedCatalog, item.CatalogRef)
	}
	w, h := item.Dimensions(entry)
	if !finite(item.X, item.Y, w, h, item.RotationDegrees) {
		return Result{}, fmt.Errorf("item %s: %w", item.ID, ErrNonFinite)
	}
	item.RotationDegrees = geometry.NormalizeRotation(item.RotationDegrees)

	res := Result{}
	box := geometry.ComputeBoundingBox(item.X, item.Y, w, h, item.RotationDegrees)
	others := withoutItem(scene.Items, item.ID)

	// Snapping works on the rotated box; the resulting shift moves the item.
	if e.Settings.SnapToWalls {
		ws := snap.SnapToWalls(box.MinX, box.MinY, box.Width(), box.Height(), scene.Walls, snap.WallSnapOptions{
			Threshold:     e.Settings.WallThreshold,
			AxisTolerance: e.Settings.AxisTolerance,
		})
		if ws.Snapped {
			item, box = shift(item, box, ws.X-box.MinX, ws.Y-box.MinY)
			res.Snapped, res.SnapType, res.SnapTarget = true, model.SnapWall, ws.WallID
			e.logger.Debug("wall snap", zap.String("item", item.ID), zap.String("wall", ws.WallID))
		}
	}

	if e.Settings.SnapToRelated {
		ps := snap.SnapToRelated(snap.SnapSource{
			ID:       item.ID,
			Category: entry.EffectiveCategory(),
			X:        box.MinX,
			Y:        box.MinY,
			Width:    box.Width(),
			Height:   box.Height(),
		}, others, scene.Catalog, e.Settings.RulesFor(entry.EffectiveCategory()))
		if ps.Snapped {
			item, box = shift(item, box, ps.X-box.MinX, ps.Y-box.MinY)
			res.Snapped, res.SnapType, res.SnapTarget = true, model.SnapPair, ps.TargetID
			e.logger.Debug("pair snap",
				zap.String("item", item.ID),
				zap.String("target", ps.TargetID),
				zap.String("side", string(ps.Side)))
		}
	}

	if !scene.Bounds.Empty() {
		x, y := geometry.ConstrainToBounds(item.X, item.Y, w, h, item.RotationDegrees, scene.Bounds)
		item, box = shift(item, box, x-item.X, y-item.Y)
	}

	updated := append(others, item)
	res.Item = item
	res.Box = box
	res.Collisions = collision.DetectCollisions(updated, scene.Catalog, e.Settings.CollisionMargin)
	res.Colliding = res.Collisions.Has(item.ID)
	res.Unresolved = model.Unresolved(updated, scene.Catalog)
	e.logUnresolved(res.Unresolved)

	return res, nil
}

func (e *Engine) logUnresolved(ids []string) {
	if len(ids) > 0 {
		e.logger.Warn("items skipped: unresolved catalog reference", zap.Strings("items", ids))
	}
}

func findItem(items []model.PlacedItem, id string) (model.PlacedItem, error) {
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return model.PlacedItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// withoutItem copies items, dropping the one with id.
func withoutItem(items []model.PlacedItem, id string) []model.PlacedItem {
	out := make([]model.PlacedItem, 0, len(items)+1)
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

func shift(item model.PlacedItem, box model.BoundingBox, dx, dy float64) (model.PlacedItem, model.BoundingBox) {
	item.X += dx
	item.Y += dy
	return item, box.Translate(dx, dy)
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
