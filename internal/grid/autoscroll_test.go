package grid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setgrid/internal/model"
)

type fakeScroller struct {
	vp     Viewport
	offset float64
	calls  int
}

func (f *fakeScroller) Viewport() Viewport     { return f.vp }
func (f *fakeScroller) ScrollOffset() float64  { return f.offset }
func (f *fakeScroller) ScrollTo(offset float64) { f.offset = offset; f.calls++ }

func TestAutoScroll_ObserveEdges(t *testing.T) {
	s := &fakeScroller{vp: Viewport{Top: 10, Height: 300, Content: 1000}}
	a := NewAutoScroll(0, 0)
	assert.Equal(t, float64(DefaultEdgeThreshold), a.EdgeThreshold)
	assert.Equal(t, float64(DefaultScrollSpeed), a.Speed)
	a.Attach(s)

	a.Observe(200)
	assert.False(t, a.Running())

	a.Observe(50)
	assert.True(t, a.Running())
	assert.Equal(t, 0.0, a.Frame(), "already at the top")
	assert.False(t, a.Running())

	a.Observe(290)
	require.True(t, a.Running())
	assert.Equal(t, 12.0, a.Frame())
	assert.Equal(t, 12.0, s.offset)
}

func TestAutoScroll_ClampsAtBottom(t *testing.T) {
	s := &fakeScroller{vp: Viewport{Height: 100, Content: 130}}
	a := NewAutoScroll(20, 12)
	a.Attach(s)
	a.Observe(95)

	var total float64
	for i := 0; i < 10; i++ {
		total += a.Frame()
	}
	assert.Equal(t, 30.0, total)
	assert.Equal(t, 30.0, s.offset)
	assert.False(t, a.Running())
}

func TestAutoScroll_NilIsInert(t *testing.T) {
	var a *AutoScroll
	a.Observe(10)
	a.Stop()
	assert.False(t, a.Running())
	assert.Equal(t, 0.0, a.Frame())
}

func TestGrid_AutoScrollKeepsTileUnderFinger(t *testing.T) {
	items := make([]model.GridItem, 0, 30)
	for i := 0; i < 30; i++ {
		items = append(items, model.GridItem{Key: fmt.Sprintf("t%d", i)})
	}
	g, _ := newTestGrid(t, false, items)
	s := &fakeScroller{vp: Viewport{Height: 300, Content: g.TotalHeight()}}
	g.AttachAutoScroll(NewAutoScroll(80, 12), s)

	g.LongPress("t0", at(0))
	g.Move(Gesture{DY: 250, Y: 280}, at(10))
	require.True(t, g.Busy())

	screenY := func() float64 {
		p, _ := g.Position("t0")
		return p.Y - s.ScrollOffset()
	}
	start := screenY()
	assert.Equal(t, 250.0, start)

	now := at(10)
	for i := 1; i <= 5; i++ {
		now = now.Add(16_000_000)
		g.Tick(now)
		assert.Equal(t, float64(i*12), s.ScrollOffset())
		assert.Equal(t, start, screenY())
	}

	// Runs until the content end, then stops.
	for i := 0; i < 200; i++ {
		now = now.Add(16_000_000)
		g.Tick(now)
	}
	assert.Equal(t, 700.0, s.ScrollOffset())
	assert.Equal(t, start, screenY())

	g.Release(now)
	settle(g, now)
	o, _ := g.Store().Order("t0")
	assert.Greater(t, o, 20)
}
