// Package grid is the engine behind a reorderable grouping grid: slot geometry, the
// key-indexed item store, the long-press drag controller, dwell-based grouping and edge
// auto-scroll. It is UI-agnostic; the tui package renders it in a terminal.
package grid

import (
	"math"
	"time"

	"setgrid/internal/logger"
	"setgrid/internal/model"
)

type Phase int

const (
	PhaseIdle Phase = iota
	// PhaseArmed: long-pressed, waiting for the pointer to move past the drag threshold.
	PhaseArmed
	PhaseDragging
)

func (p Phase) String() string {
	switch p {
	case PhaseArmed:
		return "armed"
	case PhaseDragging:
		return "dragging"
	default:
		return "idle"
	}
}

type session struct {
	key     string
	initial Point
	gesture Gesture
}

// Grid is one reorderable grouping grid. All methods must be called from a single goroutine
// (the UI loop); time is passed in explicitly so the owner decides what "now" is.
type Grid struct {
	opts Options
	cb   Callbacks

	layout Layout
	geo    Geometry
	store  *Store
	scroll *AutoScroll

	phase    Phase
	editMode bool
	// armedKey is the tile that most recently entered edit mode; re-tapping it exits.
	armedKey string
	sess     session
	hov      hover
	now      time.Time
}

func New(opts Options, cb Callbacks) *Grid {
	opts = opts.withDefaults()
	g := &Grid{opts: opts, cb: cb}
	g.geo = Geometry{
		Columns:    opts.Columns,
		ItemHeight: opts.ItemHeight,
		HeightOf:   opts.HeightOf,
		Layout:     &g.layout,
	}
	g.store = NewStore(&g.geo)
	return g
}

// AttachAutoScroll wires an auto-scroll coordinator driving s.
func (g *Grid) AttachAutoScroll(a *AutoScroll, s Scroller) {
	a.Attach(s)
	g.scroll = a
}

func (g *Grid) Options() Options   { return g.opts }
func (g *Grid) Geometry() Geometry { return g.geo }
func (g *Grid) Store() *Store      { return g.store }
func (g *Grid) Phase() Phase       { return g.phase }
func (g *Grid) EditMode() bool     { return g.editMode }
func (g *Grid) ActiveKey() string  { return g.sess.key }
func (g *Grid) HoverKey() string   { return g.hov.key }
func (g *Grid) GroupedKey() string { return g.hov.grouped }

// Items returns the tiles in their current slot order.
func (g *Grid) Items() []model.GridItem { return g.store.Sorted() }

func (g *Grid) TotalHeight() float64 { return g.geo.TotalHeight(g.store.Sorted()) }

// Position is the rendered position of key.
func (g *Grid) Position(key string) (Point, bool) {
	h := g.store.Handle(key)
	if h == nil {
		return Point{}, false
	}
	return h.Value(), true
}

// Busy reports whether frames are still needed (drag, dwell timer, animation, auto-scroll).
func (g *Grid) Busy() bool {
	return g.phase != PhaseIdle || g.hov.pending || g.store.Animating() || g.scroll.Running()
}

// SetLayout records the measured container size and snaps idle tiles to their slots.
func (g *Grid) SetLayout(l Layout) {
	if l == g.layout {
		return
	}
	g.layout = l
	g.store.Relayout(g.sess.key, false, g.now, 0)
}

// SetItems replaces the authoritative item list. If the dragged tile disappeared, the drag is
// aborted.
func (g *Grid) SetItems(items []model.GridItem, now time.Time) {
	g.now = now
	active := ""
	if g.phase != PhaseIdle {
		active = g.sess.key
	}
	present := g.store.Sync(items, active, now, g.opts.ReorderDuration)
	if _, ok := g.store.Item(g.armedKey); !ok {
		g.armedKey = ""
	}
	if active != "" && !present {
		logger.Warn("grid: dragged item removed mid-drag; aborting", "key", active)
		g.clearSession()
		if g.cb.OnDragAbort != nil {
			g.cb.OnDragAbort(active)
		}
	}
}

// LongPress arms key for dragging and enters edit mode.
func (g *Grid) LongPress(key string, now time.Time) bool {
	g.now = now
	if g.phase != PhaseIdle {
		return false
	}
	it, ok := g.store.Item(key)
	if !ok || it.DisabledDrag {
		return false
	}
	g.phase = PhaseArmed
	g.sess = session{key: key}
	g.armedKey = key
	g.setEditMode(true)
	logger.Debug("grid: armed", "key", key)
	return true
}

// Move feeds one pointer sample of the current gesture.
func (g *Grid) Move(gs Gesture, now time.Time) {
	g.now = now
	if g.phase == PhaseIdle {
		return
	}
	g.sess.gesture = gs
	if g.phase == PhaseArmed {
		if math.Abs(gs.DX) <= g.opts.DragThreshold && math.Abs(gs.DY) <= g.opts.DragThreshold {
			return
		}
		if !g.pickUp() {
			return
		}
	}

	g.fireDue(now)
	h := g.store.Handle(g.sess.key)
	if h == nil {
		g.clearSession()
		return
	}
	h.Delta = Point{X: gs.DX, Y: gs.DY}
	g.scroll.Observe(gs.Y)
	if g.cb.OnDragging != nil {
		g.cb.OnDragging(DragEvent{
			Key:         g.sess.key,
			Translation: Point{X: gs.DX, Y: gs.DY},
			Finger:      Point{X: gs.X, Y: gs.Y},
			Position:    h.Value(),
		})
	}
	g.evaluate(h.Value(), now)
}

func (g *Grid) pickUp() bool {
	key := g.sess.key
	it, ok := g.store.Item(key)
	h := g.store.Handle(key)
	if !ok || h == nil {
		g.clearSession()
		return false
	}
	h.Set(g.store.SlotPosition(key))
	g.sess.initial = h.Value()
	g.phase = PhaseDragging
	logger.Debug("grid: drag start", "key", key, "at", g.sess.initial)
	if g.cb.OnDragStart != nil {
		g.cb.OnDragStart(it)
	}
	return true
}

// ApplyScrollOffset shifts the dragged tile by a scroll delta of the container so it stays
// under the finger, then re-runs the hover and reorder checks.
func (g *Grid) ApplyScrollOffset(dy float64, now time.Time) {
	g.now = now
	if g.phase != PhaseDragging || dy == 0 {
		return
	}
	h := g.store.Handle(g.sess.key)
	if h == nil {
		return
	}
	h.Offset.Y += dy
	g.evaluate(h.Value(), now)
}

func (g *Grid) evaluate(pos Point, now time.Time) {
	if g.opts.GroupingEnabled {
		g.updateHover(pos, now)
	}
	g.reorder(pos, now)
}

func (g *Grid) reorder(pos Point, now time.Time) {
	key := g.sess.key
	cur, ok := g.store.Order(key)
	if !ok {
		return
	}
	active, _ := g.store.Item(key)
	sorted := g.store.Sorted()
	size := g.geo.ItemSize(active)
	next := g.geo.OrderForPosition(pos, size, sorted)
	if next == cur {
		return
	}
	if k, ok := g.store.GetKeyByOrder(next); ok && g.hov.active() && g.hov.key == k {
		return
	}
	if g.opts.GroupingEnabled {
		next = g.crossedOrder(pos, size, cur, next)
		if next == cur {
			return
		}
	}
	targetKey, ok := g.store.GetKeyByOrder(next)
	if !ok {
		return
	}
	target, _ := g.store.Item(targetKey)
	if target.Pinned() {
		return
	}

	changed, ok := g.store.Move(key, next)
	if !ok {
		return
	}
	logger.Debug("grid: reorder", "key", key, "from", cur, "to", next)
	g.animateOthers(key, changed, now)
}

// crossedOrder narrows a candidate slot to one the dragged tile has actually crossed. Short of
// the candidate's far edge, the drag settles on the slot before it along the dominant axis,
// which the center has already cleared, or stays at cur.
func (g *Grid) crossedOrder(pos Point, size Size, cur, next int) int {
	tkey, ok := g.store.GetKeyByOrder(next)
	if !ok {
		return cur
	}
	target, _ := g.store.Item(tkey)
	if HasPassedBorder(pos, size, g.sess.initial, g.store.SlotPosition(tkey), g.geo.ItemSize(target), cur, next) {
		return next
	}
	step := 1
	if d := pos.Sub(g.sess.initial); math.Abs(d.Y) > math.Abs(d.X) {
		step = g.geo.columns()
	}
	if cur < next {
		if prev := next - step; prev > cur {
			return prev
		}
		return cur
	}
	if prev := next + step; prev < cur {
		return prev
	}
	return cur
}

// animateOthers sends every changed key except the dragged one to its slot.
func (g *Grid) animateOthers(key string, changed []string, now time.Time) {
	for _, k := range changed {
		if k == key {
			continue
		}
		g.store.Handle(k).AnimateTo(g.store.SlotPosition(k), g.opts.ReorderDuration, now, nil)
	}
}

// Release ends the gesture normally.
func (g *Grid) Release(now time.Time) { g.end(now, "release") }

// Terminate ends the gesture because another component took it over.
func (g *Grid) Terminate(now time.Time) { g.end(now, "terminate") }

func (g *Grid) end(now time.Time, why string) {
	g.now = now
	switch g.phase {
	case PhaseIdle:
		return
	case PhaseArmed:
		// Long press without movement: edit mode stays on, nothing to commit.
		logger.Debug("grid: disarmed", "key", g.sess.key, "why", why)
		g.clearSession()
		return
	}

	g.fireDue(now)
	key := g.sess.key
	grouped := g.hov.grouped
	item, ok := g.store.Item(key)
	h := g.store.Handle(key)
	g.clearSession()
	if !ok || h == nil {
		logger.Debug("grid: release with nothing to commit", "key", key)
		return
	}
	h.Flatten()
	pos := h.Value()
	sorted := g.store.Sorted()
	size := g.geo.ItemSize(item)
	slot := g.store.SlotPosition(key)
	dur := g.opts.ReorderDuration

	switch {
	case g.cb.OnDragOutside != nil && g.geo.IsOutsideBounds(pos, size, sorted, g.opts.OutsideMargin):
		logger.Debug("grid: dropped outside", "key", key, "why", why)
		// Live reorders were never committed; the owner still holds the synced order.
		g.animateOthers(key, g.store.Revert(), now)
		h.AnimateTo(g.store.SlotPosition(key), dur, now, nil)
		g.cb.OnDragOutside(item)

	case grouped != "" && grouped != key:
		logger.Debug("grid: group drop", "key", key, "target", grouped, "why", why)
		h.AnimateTo(g.store.SlotPosition(grouped), dur, now, func() { g.merge(key, grouped) })

	default:
		logger.Debug("grid: settle", "key", key, "why", why)
		h.AnimateTo(slot, dur, now, g.emitRelease)
	}
}

func (g *Grid) emitRelease() {
	items := g.store.Sorted()
	g.store.Sync(items, "", g.now, g.opts.ReorderDuration)
	if g.cb.OnDragRelease != nil {
		g.cb.OnDragRelease(model.CloneItems(items))
	}
}

func (g *Grid) merge(draggedKey, targetKey string) {
	items := g.store.Sorted()
	res, ok := Merge(items, draggedKey, targetKey, g.opts.NewGroupKey())
	if !ok {
		logger.Debug("grid: merge refused", "key", draggedKey, "target", targetKey)
		g.store.Relayout("", true, g.now, g.opts.ReorderDuration)
		g.emitRelease()
		return
	}
	logger.Info("grid: group created", "group", res.Group.Key, "children", len(res.Group.Children))
	g.store.Sync(res.Items, "", g.now, g.opts.ReorderDuration)
	if g.cb.OnGroupCreate != nil {
		g.cb.OnGroupCreate(GroupEvent{
			Merged: []model.GridItem{res.Dragged, res.Target},
			Target: res.Target,
			Group:  res.Group,
			Items:  model.CloneItems(res.Items),
		})
	}
}

func (g *Grid) clearSession() {
	if h := g.store.Handle(g.sess.key); h != nil && g.phase == PhaseDragging {
		h.Flatten()
	}
	g.scroll.Stop()
	g.hov = hover{}
	g.sess = session{}
	g.phase = PhaseIdle
}

// Tick advances timers, auto-scroll and animations to now. It reports whether more frames
// are needed.
func (g *Grid) Tick(now time.Time) bool {
	g.now = now
	if g.phase == PhaseDragging {
		g.fireDue(now)
		if g.scroll.Running() {
			if d := g.scroll.Frame(); d != 0 {
				g.ApplyScrollOffset(d, now)
			}
		}
	}
	for _, done := range g.store.Step(now) {
		done()
	}
	return g.Busy()
}

// Tap handles a short press on key. In edit mode, re-tapping the tile that armed edit mode
// leaves edit mode; any other tap is an item press.
func (g *Grid) Tap(key string, now time.Time) {
	g.now = now
	if g.phase != PhaseIdle {
		return
	}
	it, ok := g.store.Item(key)
	if !ok {
		return
	}
	if g.editMode && key == g.armedKey {
		g.ExitEditMode()
		return
	}
	if g.cb.OnItemPress != nil {
		g.cb.OnItemPress(it)
	}
}

// TapAt handles a tap at a content point; tapping empty space leaves edit mode.
func (g *Grid) TapAt(p Point, now time.Time) {
	g.now = now
	if g.phase != PhaseIdle || !g.editMode {
		return
	}
	if !g.geo.IsPointInsideAnyItem(p, g.store.Sorted()) {
		g.ExitEditMode()
	}
}

// KeyAt returns the tile rendered at content point p. The active tile is on top.
func (g *Grid) KeyAt(p Point) (string, bool) {
	if !g.geo.Measured() {
		return "", false
	}
	if g.sess.key != "" {
		if it, ok := g.store.Item(g.sess.key); ok {
			if pos, ok := g.Position(it.Key); ok && contains(pos, g.geo.ItemSize(it), p) {
				return it.Key, true
			}
		}
	}
	for _, it := range g.store.Sorted() {
		pos, ok := g.Position(it.Key)
		if ok && contains(pos, g.geo.ItemSize(it), p) {
			return it.Key, true
		}
	}
	return "", false
}

// RequestDelete asks the owner to delete key (the edit-mode delete badge).
func (g *Grid) RequestDelete(key string) bool {
	if !g.editMode || g.phase != PhaseIdle {
		return false
	}
	it, ok := g.store.Item(key)
	if !ok || it.Pinned() || it.DisabledDrag {
		return false
	}
	if g.cb.OnDelete != nil {
		g.cb.OnDelete(it)
	}
	return true
}

func (g *Grid) ExitEditMode() {
	g.armedKey = ""
	g.setEditMode(false)
}

func (g *Grid) setEditMode(v bool) {
	if g.editMode == v {
		return
	}
	g.editMode = v
	logger.Debug("grid: edit mode", "on", v)
	if g.cb.OnEditModeChange != nil {
		g.cb.OnEditModeChange(v)
	}
}
