package grid

import (
	"math"

	"setgrid/internal/model"
)

type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

type Size struct {
	W, H float64
}

// Layout is the measured container. A zero Width means "not measured yet".
type Layout struct {
	Width  float64
	Height float64
}

// Geometry maps between slot orders and pixel positions. It holds no state of its own.
//
// Multi-column grids use a uniform row height. A single-column grid with HeightOf set
// stacks tiles of varying height, so y offsets are cumulative.
type Geometry struct {
	Columns    int
	ItemHeight float64
	HeightOf   func(model.GridItem) float64
	Layout     *Layout
}

func (g Geometry) columns() int {
	if g.Columns < 1 {
		return 1
	}
	return g.Columns
}

func (g Geometry) Measured() bool { return g.Layout != nil && g.Layout.Width > 0 }

func (g Geometry) BlockWidth() float64 {
	if !g.Measured() {
		return 0
	}
	return g.Layout.Width / float64(g.columns())
}

// BlockHeight is the uniform row height; square blocks when no item height is configured.
func (g Geometry) BlockHeight() float64 {
	if g.ItemHeight > 0 {
		return g.ItemHeight
	}
	return g.BlockWidth()
}

func (g Geometry) variable() bool { return g.columns() == 1 && g.HeightOf != nil }

func (g Geometry) HeightFor(it model.GridItem) float64 {
	if g.variable() {
		if h := g.HeightOf(it); h > 0 {
			return h
		}
	}
	return g.BlockHeight()
}

func (g Geometry) ItemSize(it model.GridItem) Size {
	return Size{W: g.BlockWidth(), H: g.HeightFor(it)}
}

// PositionForIndex returns the top-left corner of slot index. items must be in slot order.
func (g Geometry) PositionForIndex(index int, items []model.GridItem) Point {
	if !g.Measured() || index < 0 {
		return Point{}
	}
	if g.variable() {
		y := 0.0
		for i := 0; i < index && i < len(items); i++ {
			y += g.HeightFor(items[i])
		}
		return Point{X: 0, Y: y}
	}
	cols := g.columns()
	col := index % cols
	row := index / cols
	return Point{X: float64(col) * g.BlockWidth(), Y: float64(row) * g.BlockHeight()}
}

// OrderForPosition returns the slot whose block contains the center of a tile of the given
// size placed at pos, clamped to [0, len(items)-1].
func (g Geometry) OrderForPosition(pos Point, size Size, items []model.GridItem) int {
	n := len(items)
	if !g.Measured() || n == 0 {
		return 0
	}
	if g.variable() {
		center := pos.Y + size.H/2
		y := 0.0
		for i := range items {
			h := g.HeightFor(items[i])
			if center < y+h {
				return i
			}
			y += h
		}
		return n - 1
	}

	bw := g.BlockWidth()
	bh := g.BlockHeight()
	cols := g.columns()
	col := int(math.Floor((pos.X + bw/2) / bw))
	row := int(math.Floor((pos.Y + bh/2) / bh))
	col = clampInt(col, 0, cols-1)
	if row < 0 {
		row = 0
	}
	return clampInt(row*cols+col, 0, n-1)
}

func (g Geometry) TotalHeight(items []model.GridItem) float64 {
	if !g.Measured() || len(items) == 0 {
		return 0
	}
	if g.variable() {
		sum := 0.0
		for _, it := range items {
			sum += g.HeightFor(it)
		}
		return sum
	}
	cols := g.columns()
	rows := (len(items) + cols - 1) / cols
	return float64(rows) * g.BlockHeight()
}

// IsPointInsideAnyItem hit-tests p against every slot's block.
func (g Geometry) IsPointInsideAnyItem(p Point, items []model.GridItem) bool {
	_, ok := g.IndexAt(p, items)
	return ok
}

// IndexAt returns the slot whose block contains p.
func (g Geometry) IndexAt(p Point, items []model.GridItem) (int, bool) {
	if !g.Measured() {
		return 0, false
	}
	for i := range items {
		pos := g.PositionForIndex(i, items)
		if contains(pos, g.ItemSize(items[i]), p) {
			return i, true
		}
	}
	return 0, false
}

// borderSlack is how far short of the target's far edge, as a fraction of the target's extent,
// the dragged tile's center may stop and still count as having crossed the slot.
const borderSlack = 0.25

// HasPassedBorder reports whether a tile dragged from oldOrder toward newOrder has crossed the
// far edge of the target slot along the axis it has moved the most since pick-up.
//
// The tile's center is compared with the target's trailing edge on forward moves and with its
// leading edge on backward moves, less borderSlack. A center 60% into the target never counts.
func HasPassedBorder(pos Point, size Size, initial Point, target Point, targetSize Size, oldOrder, newOrder int) bool {
	d := pos.Sub(initial)
	c := Point{X: pos.X + size.W/2, Y: pos.Y + size.H/2}
	forward := oldOrder < newOrder
	if math.Abs(d.X) >= math.Abs(d.Y) {
		if forward {
			return c.X >= target.X+targetSize.W*(1-borderSlack)
		}
		return c.X <= target.X+targetSize.W*borderSlack
	}
	if forward {
		return c.Y >= target.Y+targetSize.H*(1-borderSlack)
	}
	return c.Y <= target.Y+targetSize.H*borderSlack
}

// IsOverlappingCenter reports whether the dragged tile's center lies within fraction of the
// target's half extents around the target's center.
func IsOverlappingCenter(pos Point, size Size, target Point, targetSize Size, fraction float64) bool {
	c := Point{X: pos.X + size.W/2, Y: pos.Y + size.H/2}
	tc := Point{X: target.X + targetSize.W/2, Y: target.Y + targetSize.H/2}
	return math.Abs(c.X-tc.X) <= fraction*targetSize.W/2 &&
		math.Abs(c.Y-tc.Y) <= fraction*targetSize.H/2
}

// IsOutsideBounds reports whether a tile at pos sticks out of the grid by more than
// marginFraction of its own height on any side.
func (g Geometry) IsOutsideBounds(pos Point, size Size, items []model.GridItem, marginFraction float64) bool {
	if !g.Measured() {
		return false
	}
	m := marginFraction * size.H
	width := g.Layout.Width
	height := g.TotalHeight(items)
	return pos.X < -m || pos.Y < -m ||
		pos.X+size.W > width+m ||
		pos.Y+size.H > height+m
}

func contains(pos Point, size Size, p Point) bool {
	return p.X >= pos.X && p.X < pos.X+size.W && p.Y >= pos.Y && p.Y < pos.Y+size.H
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
