package tui

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"setgrid/internal/grid"
	"setgrid/internal/model"
)

// pressState tracks one mouse gesture on a grid view. The gesture becomes a drag only after the
// long-press tick arms the tile; moving first cancels both the long press and the tap.
type pressState struct {
	active bool
	seq    int
	key    string
	x, y   int
	moved  bool
	armed  bool
	// badge is set when the press started on a tile's delete badge.
	badge bool
}

// gridView renders a grid.Grid into a screen rect and translates mouse input into grid
// gestures. It is also the grid's scroll container.
type gridView struct {
	g      *grid.Grid
	rect   rect
	offset float64
	press  pressState
	events []gridEvent
}

func newGridView(opts grid.Options, scroll *grid.AutoScroll, nested bool) *gridView {
	gv := &gridView{}
	gv.g = grid.New(opts, gv.callbacks(nested))
	if scroll != nil {
		gv.g.AttachAutoScroll(scroll, gv)
	}
	return gv
}

func (gv *gridView) callbacks(nested bool) grid.Callbacks {
	cb := grid.Callbacks{
		OnItemPress: func(it model.GridItem) {
			gv.events = append(gv.events, gridEvent{kind: evPress, item: it})
		},
		OnDragRelease: func(items []model.GridItem) {
			gv.events = append(gv.events, gridEvent{kind: evRelease, items: items})
		},
		OnGroupCreate: func(ev grid.GroupEvent) {
			gv.events = append(gv.events, gridEvent{kind: evGroup, group: ev, items: ev.Items})
		},
		OnDelete: func(it model.GridItem) {
			gv.events = append(gv.events, gridEvent{kind: evDelete, item: it})
		},
		OnEditModeChange: func(on bool) {
			gv.events = append(gv.events, gridEvent{kind: evEditMode, editing: on})
		},
		OnDragAbort: func(key string) {
			gv.events = append(gv.events, gridEvent{kind: evAbort, key: key})
		},
	}
	if nested {
		cb.OnDragOutside = func(it model.GridItem) {
			gv.events = append(gv.events, gridEvent{kind: evOutside, item: it})
		}
	}
	return cb
}

// takeEvents returns and clears the queued callbacks.
func (gv *gridView) takeEvents() []gridEvent {
	evs := gv.events
	gv.events = nil
	return evs
}

func (gv *gridView) Viewport() grid.Viewport {
	return grid.Viewport{
		Top:     float64(gv.rect.y),
		Height:  float64(gv.rect.h),
		Content: gv.g.TotalHeight(),
	}
}

func (gv *gridView) ScrollOffset() float64 { return gv.offset }

func (gv *gridView) ScrollTo(offset float64) { gv.offset = offset }

func (gv *gridView) maxOffset() float64 {
	m := gv.g.TotalHeight() - float64(gv.rect.h)
	if m < 0 {
		return 0
	}
	return m
}

// scrollBy is the mouse wheel. It is ignored while a gesture is in flight.
func (gv *gridView) scrollBy(dy float64) {
	if gv.g.Phase() != grid.PhaseIdle {
		return
	}
	gv.offset = math.Max(0, math.Min(gv.offset+dy, gv.maxOffset()))
}

func (gv *gridView) setRect(r rect) {
	gv.rect = r
	gv.g.SetLayout(grid.Layout{Width: float64(r.w), Height: float64(r.h)})
	gv.offset = math.Max(0, math.Min(gv.offset, gv.maxOffset()))
}

func (gv *gridView) setItems(items []model.GridItem, now time.Time) {
	gv.g.SetItems(items, now)
	gv.offset = math.Max(0, math.Min(gv.offset, gv.maxOffset()))
}

func (gv *gridView) toContent(x, y int) grid.Point {
	return grid.Point{X: float64(x - gv.rect.x), Y: float64(y-gv.rect.y) + gv.offset}
}

// tileRect is the on-screen rect of key at its current handle value.
func (gv *gridView) tileRect(key string) (rect, bool) {
	it, ok := gv.g.Store().Item(key)
	if !ok {
		return rect{}, false
	}
	pos, ok := gv.g.Position(key)
	if !ok {
		return rect{}, false
	}
	size := gv.g.Geometry().ItemSize(it)
	w := int(math.Floor(size.W))
	if gv.g.Options().Columns > 1 {
		w--
	}
	return rect{
		x: gv.rect.x + int(math.Round(pos.X)),
		y: gv.rect.y + int(math.Round(pos.Y-gv.offset)),
		w: w,
		h: int(math.Round(size.H)),
	}, true
}

func deletable(it model.GridItem) bool { return !it.Pinned() && !it.DisabledDrag }

// onBadge reports whether screen cell (x, y) is the delete badge of key.
func (gv *gridView) onBadge(key string, x, y int) bool {
	if !gv.g.EditMode() {
		return false
	}
	it, ok := gv.g.Store().Item(key)
	if !ok || !deletable(it) {
		return false
	}
	r, ok := gv.tileRect(key)
	if !ok {
		return false
	}
	return y == r.y && x >= r.x+r.w-4 && x < r.x+r.w
}

// mouseDown starts a gesture. It reports whether a long-press tick should be scheduled.
func (gv *gridView) mouseDown(x, y, seq int) bool {
	gv.press = pressState{active: true, seq: seq, x: x, y: y}
	key, ok := gv.g.KeyAt(gv.toContent(x, y))
	if !ok {
		return false
	}
	gv.press.key = key
	if gv.onBadge(key, x, y) {
		gv.press.badge = true
		return false
	}
	return true
}

func (gv *gridView) longPress(seq int, now time.Time) {
	p := &gv.press
	if !p.active || p.seq != seq || p.moved || p.badge || p.key == "" {
		return
	}
	p.armed = gv.g.LongPress(p.key, now)
}

func (gv *gridView) mouseMove(x, y int, now time.Time) {
	p := &gv.press
	if !p.active {
		return
	}
	dx, dy := x-p.x, y-p.y
	if p.armed {
		gv.g.Move(grid.Gesture{DX: float64(dx), DY: float64(dy), X: float64(x), Y: float64(y)}, now)
		return
	}
	if dx != 0 || dy != 0 {
		p.moved = true
	}
}

func (gv *gridView) mouseUp(x, y int, now time.Time) {
	p := gv.press
	gv.press = pressState{}
	if !p.active {
		return
	}
	switch {
	case p.armed:
		gv.g.Release(now)
	case p.moved:
	case p.badge:
		if gv.onBadge(p.key, x, y) {
			gv.g.RequestDelete(p.key)
		}
	case p.key != "":
		gv.g.Tap(p.key, now)
	default:
		gv.g.TapAt(gv.toContent(x, y), now)
	}
}

// cancel ends any gesture because something else (a modal, a resize) took the screen.
func (gv *gridView) cancel(now time.Time) {
	if gv.press.armed {
		gv.g.Terminate(now)
	}
	gv.press = pressState{}
}

func (gv *gridView) busy() bool { return gv.g.Busy() }

// render draws the visible part of the grid. The active tile is painted last so it floats
// above the tiles it crosses.
func (gv *gridView) render(now time.Time, jiggle bool) string {
	c := newCanvas(gv.rect.w, gv.rect.h)
	active := gv.g.ActiveKey()
	dragging := gv.g.Phase() == grid.PhaseDragging
	phase := (now.UnixMilli()/160)%2 == 0

	var top string
	var topR rect
	for i, it := range gv.g.Items() {
		r, ok := gv.tileRect(it.Key)
		if !ok || r.y+r.h <= gv.rect.y || r.y >= gv.rect.y+gv.rect.h {
			continue
		}
		st := tileState{
			active:  it.Key == active && dragging,
			armed:   it.Key == active && !dragging,
			hover:   it.Key == gv.g.HoverKey() && gv.g.GroupedKey() == "",
			merged:  it.Key == gv.g.GroupedKey(),
			badge:   gv.g.EditMode() && deletable(it),
			jiggled: jiggle && gv.g.EditMode() && it.Key != active && (phase == (i%2 == 0)),
		}
		block := renderTile(it, r.w, r.h, st)
		if st.active {
			top, topR = block, r
			continue
		}
		c.paint(r.x-gv.rect.x, r.y-gv.rect.y, block)
	}
	if top != "" {
		c.paint(topR.x-gv.rect.x, topR.y-gv.rect.y, top)
	}
	return c.String()
}

type tileState struct {
	active  bool
	armed   bool
	hover   bool
	merged  bool
	badge   bool
	jiggled bool
}

func renderTile(it model.GridItem, w, h int, st tileState) string {
	if w < 3 || h < 2 {
		return normalizePane("", max(w, 0), max(h, 0))
	}

	border := lipgloss.RoundedBorder()
	var color lipgloss.TerminalColor = colorCardBorder
	switch {
	case st.merged:
		border, color = lipgloss.ThickBorder(), colorMerged
	case st.hover:
		border, color = lipgloss.DoubleBorder(), colorHover
	case st.active, st.armed:
		border, color = lipgloss.ThickBorder(), colorAccent
	case it.IsGroup && it.Color != "":
		color = lipgloss.Color(it.Color)
	case it.Key == model.AddTileKey:
		color = colorMuted
	}

	innerW, innerH := w-2, h-2
	lines := tileLines(it, innerW, innerH)
	if st.jiggled && len(lines) > 0 {
		lines[0] = " " + lines[0]
	}
	body := normalizePane(strings.Join(lines, "\n"), innerW, innerH)
	out := lipgloss.NewStyle().
		Border(border).
		BorderForeground(color).
		Render(body)

	if st.badge && w >= 6 {
		badge := lipgloss.NewStyle().Foreground(colorDanger).Bold(true).Render("[" + glyphDelete() + "]")
		c := canvasFrom(out, w, h)
		c.paint(w-4, 0, badge)
		out = c.String()
	}
	return out
}

func tileLines(it model.GridItem, w, h int) []string {
	if h <= 0 {
		return nil
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
	meta := lipgloss.NewStyle().Foreground(colorCardMetaFg)

	switch {
	case it.Key == model.AddTileKey:
		label := lipgloss.PlaceHorizontal(w, lipgloss.Center, it.Title())
		lines := make([]string, h)
		lines[h/2] = styleMuted().Render(label)
		return lines

	case it.IsGroup:
		lines := []string{title.Render(glyphGroup() + " " + it.Title())}
		for i, ch := range it.Children {
			if len(lines) >= h {
				break
			}
			if len(lines) == h-1 && i < len(it.Children)-1 {
				lines = append(lines, meta.Render(glyphEllipsis()+" "+strconv.Itoa(len(it.Children)-i)+" more"))
				break
			}
			lines = append(lines, meta.Render(glyphBullet()+" "+ch.Title()))
		}
		return lines
	}

	lines := []string{title.Render(it.Title())}
	if ex := it.Exercise; ex != nil {
		if s := exerciseMeta(*ex); s != "" {
			lines = append(lines, meta.Render(s))
		}
		if ex.Notes != "" && h > 2 {
			lines = append(lines, styleMuted().Render(glyphArrow()+" notes"))
		}
	}
	return lines
}
