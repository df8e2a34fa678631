package grid

import "time"

// Handle is the animated position of one tile: a committed Offset plus the in-flight
// gesture Delta. The rendered position is their sum.
type Handle struct {
	Offset Point
	Delta  Point

	anim *tween
}

type tween struct {
	from, to Point
	start    time.Time
	dur      time.Duration
	done     func()
}

func (h *Handle) Value() Point { return h.Offset.Add(h.Delta) }

// Flatten folds Delta into Offset.
func (h *Handle) Flatten() {
	h.Offset = h.Value()
	h.Delta = Point{}
}

func (h *Handle) Animating() bool { return h.anim != nil }

// Target is where the handle will rest once its animation (if any) completes.
func (h *Handle) Target() Point {
	if h.anim != nil {
		return h.anim.to
	}
	return h.Value()
}

// Set snaps the handle to p. A running animation is finished first so its completion
// callback still fires.
func (h *Handle) Set(p Point) {
	done := h.stop()
	h.Offset = p
	h.Delta = Point{}
	if done != nil {
		done()
	}
}

// AnimateTo tweens the handle from its current value to `to`. A superseded animation's
// completion callback runs before the new animation starts. Zero duration (or already at
// the target) completes synchronously.
func (h *Handle) AnimateTo(to Point, dur time.Duration, now time.Time, done func()) {
	prev := h.stop()
	h.Flatten()
	if prev != nil {
		prev()
	}
	if dur <= 0 || h.Offset == to {
		h.Offset = to
		if done != nil {
			done()
		}
		return
	}
	h.anim = &tween{from: h.Offset, to: to, start: now, dur: dur, done: done}
}

// Step advances the animation to now. It returns the completion callback when the animation
// finished on this step; the caller runs it once it is done iterating.
func (h *Handle) Step(now time.Time) func() {
	a := h.anim
	if a == nil {
		return nil
	}
	t := float64(now.Sub(a.start)) / float64(a.dur)
	if t >= 1 {
		h.Offset = a.to
		h.Delta = Point{}
		h.anim = nil
		return a.done
	}
	if t < 0 {
		t = 0
	}
	e := easeInOut(t)
	h.Offset = Point{
		X: a.from.X + (a.to.X-a.from.X)*e,
		Y: a.from.Y + (a.to.Y-a.from.Y)*e,
	}
	return nil
}

func (h *Handle) stop() func() {
	a := h.anim
	h.anim = nil
	if a == nil {
		return nil
	}
	return a.done
}

func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}
