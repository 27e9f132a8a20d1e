package collision

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FloorSnap/internal/geometry"
	"github.com/piwi3910/FloorSnap/internal/model"
)

const margin = model.DefaultCollisionMargin

func testCatalog() model.Catalog {
	return model.NewCatalog(
		model.CatalogEntry{ID: "box", Width: 1, Height: 1},
		model.CatalogEntry{ID: "bed", Width: 2, Height: 1.6},
		model.CatalogEntry{ID: "rug", Width: 3, Height: 0.2},
	)
}

func item(id, ref string, x, y float64) model.PlacedItem {
	return model.PlacedItem{ID: id, CatalogRef: ref, X: x, Y: y}
}

func TestDetectCollisions_OverlappingPair(t *testing.T) {
	items := []model.PlacedItem{
		item("a", "box", 0, 0),
		item("b", "box", 0.5, 0.5),
		item("c", "box", 3, 3),
	}

	got := DetectCollisions(items, testCatalog(), margin)
	assert.Equal(t, []string{"a", "b"}, got.Sorted())
}

func TestDetectCollisions_TouchingNotFlagged(t *testing.T) {
	items := []model.PlacedItem{
		item("a", "box", 0, 0),
		item("b", "box", 1, 0),
		item("c", "box", 0, 1),
	}

	got := DetectCollisions(items, testCatalog(), margin)
	assert.Empty(t, got)
}

func TestDetectCollisions_MarginBoundary(t *testing.T) {
	// Overlap of 0.005 m is within the 0.01 m margin.
	within := []model.PlacedItem{item("a", "box", 0, 0), item("b", "box", 0.995, 0)}
	assert.Empty(t, DetectCollisions(within, testCatalog(), margin))

	// Overlap of 0.02 m exceeds it.
	beyond := []model.PlacedItem{item("a", "box", 0, 0), item("b", "box", 0.98, 0)}
	assert.Equal(t, []string{"a", "b"}, DetectCollisions(beyond, testCatalog(), margin).Sorted())

	// Separated by more than the margin.
	apart := []model.PlacedItem{item("a", "box", 0, 0), item("b", "box", 1.02, 0)}
	assert.Empty(t, DetectCollisions(apart, testCatalog(), margin))
}

func TestDetectCollisions_RotationAware(t *testing.T) {
	// The rug is 3x0.2; rotated 90° about its center (1.5, 0.1) it spans
	// x∈[1.4, 1.6], y∈[-1.4, 1.6] and reaches the box at (1.3, 1.2).
	rug := item("rug", "rug", 0, 0)
	box := item("box", "box", 1.3, 1.2)

	assert.Empty(t, DetectCollisions([]model.PlacedItem{rug, box}, testCatalog(), margin))

	rug.RotationDegrees = 90
	assert.Equal(t, []string{"box", "rug"}, DetectCollisions([]model.PlacedItem{rug, box}, testCatalog(), margin).Sorted())
}

func TestDetectCollisions_UnresolvedSkipped(t *testing.T) {
	items := []model.PlacedItem{
		item("a", "box", 0, 0),
		item("ghost", "missing", 0, 0),
		item("b", "box", 5, 5),
	}

	got := DetectCollisions(items, testCatalog(), margin)
	assert.Empty(t, got, "unresolved items never collide")
}

func TestDetectCollisions_EmptyAndSingle(t *testing.T) {
	assert.Empty(t, DetectCollisions(nil, testCatalog(), margin))
	assert.Empty(t, DetectCollisions([]model.PlacedItem{item("a", "box", 0, 0)}, testCatalog(), margin))
}

func TestDetectCollisions_ChainReportsAll(t *testing.T) {
	items := []model.PlacedItem{
		item("a", "box", 0, 0),
		item("b", "box", 0.8, 0),
		item("c", "box", 1.6, 0),
		item("d", "box", 4, 0),
	}

	got := DetectCollisions(items, testCatalog(), margin)
	assert.Equal(t, []string{"a", "b", "c"}, got.Sorted())
}

// bruteForce is the O(n²) pairwise definition the indexed search must match.
func bruteForce(items []model.PlacedItem, catalog model.Catalog, m float64) model.IDSet {
	out := model.IDSet{}
	for i := range items {
		a, ok := geometry.ItemBoundingBox(items[i], catalog)
		if !ok {
			continue
		}
		for j := i + 1; j < len(items); j++ {
			b, ok := geometry.ItemBoundingBox(items[j], catalog)
			if ok && a.Overlaps(b, m) {
				out.Add(items[i].ID, items[j].ID)
			}
		}
	}
	return out
}

func TestDetectCollisions_MatchesPairwiseAndIsSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	refs := []string{"box", "bed", "rug", "missing"}
	cat := testCatalog()

	for round := 0; round < 20; round++ {
		var items []model.PlacedItem
		for i := 0; i < 40; i++ {
			it := item(fmt.Sprintf("i%d", i), refs[rng.Intn(len(refs))], rng.Float64()*10, rng.Float64()*8)
			it.RotationDegrees = rng.Float64() * 360
			items = append(items, it)
		}

		got := DetectCollisions(items, cat, margin)
		require.Equal(t, bruteForce(items, cat, margin).Sorted(), got.Sorted(), "round %d", round)

		// Every reported ID has a reported partner.
		for id := range got {
			var self model.PlacedItem
			for _, it := range items {
				if it.ID == id {
					self = it
				}
			}
			partners := CollidingWith(self, items, cat, margin)
			require.NotEmpty(t, partners, "round %d: %s has no partner", round, id)
			for _, p := range partners {
				assert.True(t, got.Has(p), "round %d: partner %s of %s missing", round, p, id)
			}
		}
	}
}

func TestCheckItemCollision(t *testing.T) {
	items := []model.PlacedItem{
		item("a", "box", 0, 0),
		item("b", "box", 3, 0),
	}
	cat := testCatalog()

	assert.True(t, CheckItemCollision(item("drag", "box", 0.5, 0.5), items, cat, margin))
	assert.False(t, CheckItemCollision(item("drag", "box", 1.5, 0), items, cat, margin))
	assert.False(t, CheckItemCollision(item("drag", "box", 1, 0), items, cat, margin), "touching is not a collision")
}

func TestCheckItemCollision_IgnoresSelf(t *testing.T) {
	a := item("a", "box", 0, 0)
	items := []model.PlacedItem{a, item("b", "box", 3, 0)}

	assert.False(t, CheckItemCollision(a, items, testCatalog(), margin))

	moved := a
	moved.X = 2.5
	assert.True(t, CheckItemCollision(moved, items, testCatalog(), margin), "stale copy of self must not hide a real hit")
}

func TestCheckItemCollision_Unresolved(t *testing.T) {
	items := []model.PlacedItem{item("a", "box", 0, 0), item("ghost", "missing", 0, 0)}

	assert.False(t, CheckItemCollision(item("x", "missing", 0, 0), items, testCatalog(), margin))
	assert.False(t, CheckItemCollision(item("y", "box", 2, 2), items, testCatalog(), margin))
}

func TestCollidingWith(t *testing.T) {
	items := []model.PlacedItem{
		item("a", "box", 0, 0),
		item("b", "box", 0.5, 0),
		item("c", "box", 5, 5),
	}

	assert.Equal(t, []string{"a", "b"}, CollidingWith(item("n", "box", 0.3, 0.3), items, testCatalog(), margin))
	assert.Nil(t, CollidingWith(item("n", "missing", 0, 0), items, testCatalog(), margin))
}
