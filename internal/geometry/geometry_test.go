package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FloorSnap/internal/model"
)

func TestNormalizeRotation(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{45, 45},
		{360, 0},
		{450, 90},
		{-90, 270},
		{-720, 0},
		{359.5, 359.5},
		{-1e-15, 0},
	}
	for _, tt := range tests {
		got := NormalizeRotation(tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, "NormalizeRotation(%v)", tt.in)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, 360.0)
	}
}

func TestComputeBoundingBox_Unrotated(t *testing.T) {
	box := ComputeBoundingBox(1, 2, 3, 4, 0)
	assert.InDelta(t, 1.0, box.MinX, 1e-9)
	assert.InDelta(t, 4.0, box.MaxX, 1e-9)
	assert.InDelta(t, 2.0, box.MinY, 1e-9)
	assert.InDelta(t, 6.0, box.MaxY, 1e-9)
}

func TestComputeBoundingBox_RightAngleSwapsDimensions(t *testing.T) {
	for _, deg := range []float64{90, 270, -90} {
		box := ComputeBoundingBox(0, 0, 2, 1, deg)
		assert.InDelta(t, 1.0, box.Width(), 1e-9, "width at %v°", deg)
		assert.InDelta(t, 2.0, box.Height(), 1e-9, "height at %v°", deg)
		// Rotation is about the center, so the center stays at (1, 0.5).
		assert.InDelta(t, 1.0, box.Center().X, 1e-9)
		assert.InDelta(t, 0.5, box.Center().Y, 1e-9)
	}
}

func TestComputeBoundingBox_FortyFiveDegrees(t *testing.T) {
	box := ComputeBoundingBox(0, 0, 2, 1, 45)
	want := 3 * math.Sqrt2 / 2 // 2·cos45 + 1·sin45
	assert.InDelta(t, want, box.Width(), 1e-9)
	assert.InDelta(t, want, box.Height(), 1e-9)
}

func TestComputeBoundingBox_ContinuousInAngle(t *testing.T) {
	const w, h = 1.8, 0.6
	for deg := 0.0; deg < 360; deg += 7.5 {
		theta := deg * math.Pi / 180
		box := ComputeBoundingBox(3, 4, w, h, deg)

		wantW := w*math.Abs(math.Cos(theta)) + h*math.Abs(math.Sin(theta))
		wantH := w*math.Abs(math.Sin(theta)) + h*math.Abs(math.Cos(theta))
		assert.InDelta(t, wantW, box.Width(), 1e-9, "width at %v°", deg)
		assert.InDelta(t, wantH, box.Height(), 1e-9, "height at %v°", deg)
		assert.InDelta(t, 3+w/2, box.Center().X, 1e-9, "center x at %v°", deg)
		assert.InDelta(t, 4+h/2, box.Center().Y, 1e-9, "center y at %v°", deg)
	}
}

func TestComputeBoundingBox_NoStepNearRightAngle(t *testing.T) {
	// A step-function implementation would jump from 2 to 1 here.
	before := ComputeBoundingBox(0, 0, 2, 1, 89.9)
	after := ComputeBoundingBox(0, 0, 2, 1, 90.1)
	assert.InDelta(t, before.Width(), after.Width(), 1e-3)
	assert.InDelta(t, before.Height(), after.Height(), 1e-3)
}

func TestItemBoundingBox(t *testing.T) {
	cat := model.NewCatalog(model.CatalogEntry{ID: "bed", Width: 2, Height: 1.6})

	box, ok := ItemBoundingBox(model.PlacedItem{ID: "b1", CatalogRef: "bed", X: 1, Y: 1}, cat)
	require.True(t, ok)
	assert.InDelta(t, 3.0, box.MaxX, 1e-9)
	assert.InDelta(t, 2.6, box.MaxY, 1e-9)

	custom := model.PlacedItem{ID: "b2", CatalogRef: "bed", CustomWidth: model.Float(1.4)}
	box, ok = ItemBoundingBox(custom, cat)
	require.True(t, ok)
	assert.InDelta(t, 1.4, box.Width(), 1e-9)

	_, ok = ItemBoundingBox(model.PlacedItem{ID: "x", CatalogRef: "missing"}, cat)
	assert.False(t, ok)
}

func TestConstrainToBounds_InsideUnchanged(t *testing.T) {
	bounds := model.NewRect(0, 0, 5, 4)
	x, y := ConstrainToBounds(1, 1, 1, 1, 0, bounds)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 1.0, y)
}

func TestConstrainToBounds_ClampsEachSide(t *testing.T) {
	bounds := model.NewRect(0, 0, 5, 4)

	x, y := ConstrainToBounds(-0.5, 1, 1, 1, 0, bounds)
	assert.InDelta(t, 0.0, x, 1e-9)
	assert.InDelta(t, 1.0, y, 1e-9)

	x, y = ConstrainToBounds(4.5, 3.5, 1, 1, 0, bounds)
	assert.InDelta(t, 4.0, x, 1e-9)
	assert.InDelta(t, 3.0, y, 1e-9)
}

func TestConstrainToBounds_UsesRotatedBox(t *testing.T) {
	bounds := model.NewRect(0, 0, 5, 4)

	// 2x1 item rotated 90°: the rotated box spans x∈[0.5, 1.5], y∈[-0.5, 1.5].
	x, y := ConstrainToBounds(0, 0, 2, 1, 90, bounds)
	assert.InDelta(t, 0.0, x, 1e-9, "x already fits once rotated")
	assert.InDelta(t, 0.5, y, 1e-9)
}

func TestConstrainToBounds_NeverOutsideForAnyRotation(t *testing.T) {
	bounds := model.NewRect(0, 0, 6, 5)
	starts := []model.Point{{X: -3, Y: -3}, {X: 5.5, Y: 4.5}, {X: 2, Y: 2}, {X: -1, Y: 4.9}}

	for deg := 0.0; deg < 360; deg += 15 {
		for _, s := range starts {
			x, y := ConstrainToBounds(s.X, s.Y, 1.6, 0.9, deg, bounds)
			box := ComputeBoundingBox(x, y, 1.6, 0.9, deg)
			assert.True(t, bounds.Contains(box, 1e-9), "box %+v escapes bounds at %v° from %+v", box, deg, s)
		}
	}
}

func TestConstrainToBounds_OversizedAlignsToMin(t *testing.T) {
	bounds := model.NewRect(0, 0, 2, 2)
	x, y := ConstrainToBounds(5, 0.5, 3, 1, 0, bounds)
	assert.InDelta(t, 0.0, x, 1e-9)
	assert.InDelta(t, 0.5, y, 1e-9)
}

func TestWallExtents(t *testing.T) {
	assert.True(t, WallExtents(nil).Empty())

	walls := []model.WallSegment{
		{Start: model.Point{X: 1, Y: 2}, End: model.Point{X: 7, Y: 2}},
		{Start: model.Point{X: 7, Y: 2}, End: model.Point{X: 7, Y: -1}},
		{Start: model.Point{X: 0.5, Y: 3}, End: model.Point{X: 2, Y: 4}},
	}
	assert.Equal(t, model.Rect{MinX: 0.5, MinY: -1, MaxX: 7, MaxY: 4}, WallExtents(walls))
}
