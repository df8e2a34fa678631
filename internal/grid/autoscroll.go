package grid

// Viewport describes the visible part of a scroll container. Top is the screen y where the
// visible area starts; Content is the full scrollable height.
type Viewport struct {
	Top     float64
	Height  float64
	Content float64
}

// Scroller is the scroll container the auto-scroll drives. ScrollTo must move the container
// immediately (no animation).
type Scroller interface {
	Viewport() Viewport
	ScrollOffset() float64
	ScrollTo(offset float64)
}

const (
	DefaultEdgeThreshold = 80
	DefaultScrollSpeed   = 12
)

// AutoScroll scrolls its container at a constant speed while the finger sits within
// EdgeThreshold of the top or bottom of the viewport. It is advanced one frame at a time by
// Grid.Tick, which feeds each applied delta back into the drag.
type AutoScroll struct {
	EdgeThreshold float64
	Speed         float64

	target Scroller
	dir    int
}

func NewAutoScroll(edgeThreshold, speed float64) *AutoScroll {
	if edgeThreshold <= 0 {
		edgeThreshold = DefaultEdgeThreshold
	}
	if speed <= 0 {
		speed = DefaultScrollSpeed
	}
	return &AutoScroll{EdgeThreshold: edgeThreshold, Speed: speed}
}

func (a *AutoScroll) Attach(s Scroller) { a.target = s }

func (a *AutoScroll) Running() bool { return a != nil && a.dir != 0 && a.target != nil }

// Observe updates the scroll direction from the finger's screen y.
func (a *AutoScroll) Observe(fingerY float64) {
	if a == nil || a.target == nil {
		return
	}
	vp := a.target.Viewport()
	rel := fingerY - vp.Top
	switch {
	case rel < a.EdgeThreshold:
		a.dir = -1
	case rel > vp.Height-a.EdgeThreshold:
		a.dir = 1
	default:
		a.dir = 0
	}
}

// Frame scrolls one step and returns the applied delta. Reaching either end stops the loop.
func (a *AutoScroll) Frame() float64 {
	if !a.Running() {
		return 0
	}
	vp := a.target.Viewport()
	cur := a.target.ScrollOffset()
	max := vp.Content - vp.Height
	if max < 0 {
		max = 0
	}
	next := clampFloat(cur+float64(a.dir)*a.Speed, 0, max)
	delta := next - cur
	if delta == 0 {
		a.Stop()
		return 0
	}
	a.target.ScrollTo(next)
	return delta
}

func (a *AutoScroll) Stop() {
	if a != nil {
		a.dir = 0
	}
}
