package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setgrid/internal/model"
)

func tiles(keys ...string) []model.GridItem {
	out := make([]model.GridItem, 0, len(keys))
	for _, k := range keys {
		out = append(out, model.GridItem{Key: k, Name: k})
	}
	return out
}

func squareGeometry(width float64, cols int) Geometry {
	return Geometry{Columns: cols, Layout: &Layout{Width: width, Height: 600}}
}

func TestGeometry_PositionForIndex_Grid(t *testing.T) {
	g := squareGeometry(300, 3)
	items := tiles("a", "b", "c", "d", "e")

	assert.Equal(t, 100.0, g.BlockWidth())
	assert.Equal(t, 100.0, g.BlockHeight())
	assert.Equal(t, Point{X: 0, Y: 0}, g.PositionForIndex(0, items))
	assert.Equal(t, Point{X: 200, Y: 0}, g.PositionForIndex(2, items))
	assert.Equal(t, Point{X: 0, Y: 100}, g.PositionForIndex(3, items))
	assert.Equal(t, Point{X: 100, Y: 100}, g.PositionForIndex(4, items))
	assert.Equal(t, 200.0, g.TotalHeight(items))
}

func TestGeometry_ItemHeightOverridesSquareBlocks(t *testing.T) {
	g := Geometry{Columns: 2, ItemHeight: 40, Layout: &Layout{Width: 200}}
	items := tiles("a", "b", "c")

	assert.Equal(t, Point{X: 0, Y: 40}, g.PositionForIndex(2, items))
	assert.Equal(t, Size{W: 100, H: 40}, g.ItemSize(items[0]))
	assert.Equal(t, 80.0, g.TotalHeight(items))
}

func TestGeometry_UnmeasuredIsZero(t *testing.T) {
	g := Geometry{Columns: 3, Layout: &Layout{}}
	items := tiles("a", "b", "c", "d")

	assert.False(t, g.Measured())
	assert.Equal(t, Point{}, g.PositionForIndex(3, items))
	assert.Equal(t, 0, g.OrderForPosition(Point{X: 250, Y: 250}, Size{}, items))
	assert.Equal(t, 0.0, g.TotalHeight(items))
	assert.False(t, g.IsPointInsideAnyItem(Point{X: 1, Y: 1}, items))
}

func TestGeometry_OrderForPosition_UsesCenterAndClamps(t *testing.T) {
	g := squareGeometry(300, 3)
	items := tiles("a", "b", "c", "d", "e")
	size := Size{W: 100, H: 100}

	assert.Equal(t, 0, g.OrderForPosition(Point{X: 49, Y: 0}, size, items))
	assert.Equal(t, 1, g.OrderForPosition(Point{X: 51, Y: 0}, size, items))
	assert.Equal(t, 3, g.OrderForPosition(Point{X: 0, Y: 100}, size, items))
	// Past the last slot clamps to the last index.
	assert.Equal(t, 4, g.OrderForPosition(Point{X: 200, Y: 100}, size, items))
	assert.Equal(t, 4, g.OrderForPosition(Point{X: 0, Y: 900}, size, items))
	assert.Equal(t, 0, g.OrderForPosition(Point{X: -300, Y: -300}, size, items))
}

func TestGeometry_VariableHeights_SingleColumn(t *testing.T) {
	heights := map[string]float64{"a": 50, "b": 100, "c": 30}
	g := Geometry{
		Columns:    1,
		ItemHeight: 20,
		HeightOf:   func(it model.GridItem) float64 { return heights[it.Key] },
		Layout:     &Layout{Width: 100},
	}
	items := tiles("a", "b", "c")

	assert.Equal(t, Point{Y: 0}, g.PositionForIndex(0, items))
	assert.Equal(t, Point{Y: 50}, g.PositionForIndex(1, items))
	assert.Equal(t, Point{Y: 150}, g.PositionForIndex(2, items))
	assert.Equal(t, 180.0, g.TotalHeight(items))

	// Center of a 50 tall tile at y=80 is 105, inside b.
	assert.Equal(t, 1, g.OrderForPosition(Point{Y: 80}, Size{W: 100, H: 50}, items))
	assert.Equal(t, 2, g.OrderForPosition(Point{Y: 140}, Size{W: 100, H: 30}, items))

	idx, ok := g.IndexAt(Point{X: 10, Y: 160}, items)
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestGeometry_HeightOfIgnoredForMultiColumn(t *testing.T) {
	g := Geometry{
		Columns:    2,
		ItemHeight: 20,
		HeightOf:   func(model.GridItem) float64 { return 99 },
		Layout:     &Layout{Width: 100},
	}
	assert.Equal(t, 20.0, g.HeightFor(model.GridItem{Key: "a"}))
}

func TestHasPassedBorder_SlotHysteresis(t *testing.T) {
	size := Size{W: 100, H: 100}
	slot2 := Point{X: 200}
	slot3 := Point{X: 300}

	// Moving right from slot 2: a center 60% into slot 3 stays put.
	assert.False(t, HasPassedBorder(Point{X: 310}, size, slot2, slot3, size, 2, 3))
	assert.False(t, HasPassedBorder(Point{X: 300}, size, slot2, slot3, size, 2, 3), "tile fully over slot 3")
	assert.True(t, HasPassedBorder(Point{X: 350}, size, slot2, slot3, size, 2, 3), "center at slot 3's far edge")

	// Moving left from slot 3: mirrored against slot 2's leading edge.
	assert.False(t, HasPassedBorder(Point{X: 190}, size, slot3, slot2, size, 3, 2))
	assert.True(t, HasPassedBorder(Point{X: 150}, size, slot3, slot2, size, 3, 2))
}

func TestHasPassedBorder_DominantAxis(t *testing.T) {
	size := Size{W: 100, H: 100}
	// Mostly vertical travel: only y is compared.
	pos := Point{X: 10, Y: 130}
	assert.True(t, HasPassedBorder(pos, size, Point{}, Point{X: 0, Y: 100}, size, 0, 3))
	pos = Point{X: 10, Y: 70}
	assert.False(t, HasPassedBorder(pos, size, Point{}, Point{X: 0, Y: 100}, size, 0, 3))
	// The x travel alone would have crossed.
	pos = Point{X: 80, Y: 90}
	assert.False(t, HasPassedBorder(pos, size, Point{}, Point{X: 100, Y: 100}, size, 0, 4))
}

func TestIsOverlappingCenter(t *testing.T) {
	size := Size{W: 100, H: 100}
	target := Point{X: 100, Y: 0}

	assert.True(t, IsOverlappingCenter(Point{X: 100}, size, target, size, 0.4))
	assert.True(t, IsOverlappingCenter(Point{X: 80, Y: 20}, size, target, size, 0.4))
	assert.False(t, IsOverlappingCenter(Point{X: 60}, size, target, size, 0.4))
	assert.False(t, IsOverlappingCenter(Point{X: 100, Y: 30}, size, target, size, 0.4))
}

func TestGeometry_IsOutsideBounds(t *testing.T) {
	g := squareGeometry(300, 3)
	items := tiles("a", "b", "c")
	size := Size{W: 100, H: 100}

	assert.False(t, g.IsOutsideBounds(Point{X: 0, Y: 0}, size, items, 0.3))
	// 29 over the right edge is within the 30 margin.
	assert.False(t, g.IsOutsideBounds(Point{X: 229, Y: 0}, size, items, 0.3))
	assert.True(t, g.IsOutsideBounds(Point{X: 231, Y: 0}, size, items, 0.3))
	assert.True(t, g.IsOutsideBounds(Point{X: 0, Y: -31}, size, items, 0.3))
	assert.True(t, g.IsOutsideBounds(Point{X: 0, Y: 31}, size, items, 0.3))
}
