package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"setgrid/internal/config"
	"setgrid/internal/grid"
	"setgrid/internal/logger"
	"setgrid/internal/model"
	"setgrid/internal/store"
)

// groupPanel is the open superset: a nested single-column grid over the group's children.
type groupPanel struct {
	key string
	gv  *gridView
	box rect
}

type appModel struct {
	prog    *model.Program
	catalog []model.Exercise
	cfg     config.Config
	keys    keyMap

	width  int
	height int

	view  view
	modal modal
	dayID string

	daysList    list.Model
	catalogList list.Model

	root  *gridView
	panel *groupPanel
	notes model.GridItem

	pressSeq int
	// framing is set while a frameMsg is in flight so only one frame loop runs.
	framing bool

	flash    string
	flashSeq int

	printOnExit bool

	clock func() time.Time
}

func newAppModel(opts Options) appModel {
	prog := opts.Program
	if prog == nil {
		prog = &model.Program{Name: "Program"}
	}
	m := appModel{
		prog:        prog,
		catalog:     opts.Catalog,
		cfg:         opts.Config,
		keys:        newKeyMap(),
		daysList:    newList("Days", dayItems(prog), newDayCardDelegate()),
		catalogList: newList("Exercises", catalogItems(opts.Catalog), nil),
		clock:       time.Now,
	}

	dayID := opts.DayID
	if dayID == "" && len(prog.Days) == 1 {
		dayID = prog.Days[0].ID
	}
	if dayID != "" {
		m.openDay(dayID)
	}
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m *appModel) day() *model.Day {
	d, ok := m.prog.FindDay(m.dayID)
	if !ok {
		return nil
	}
	return d
}

func (m *appModel) editing() bool {
	if m.panel != nil && m.panel.gv.g.EditMode() {
		return true
	}
	return m.view == viewGrid && m.root != nil && m.root.g.EditMode()
}

func (m *appModel) openDay(id string) bool {
	d, ok := m.prog.FindDay(id)
	if !ok {
		return false
	}
	m.dayID = d.ID
	m.view = viewGrid
	m.modal = modalNone
	m.panel = nil
	m.root = newGridView(m.cfg.GridOptions(), m.cfg.AutoScroller(), false)
	m.layout()
	m.root.setItems(model.WithAddTile(d.Items), m.clock())
	logger.Debug("tui: open day", "day", d.ID, "items", len(d.Items))
	return true
}

func (m *appModel) backToDays() {
	now := m.clock()
	if m.root != nil {
		m.root.cancel(now)
	}
	m.view = viewDays
	m.modal = modalNone
	m.panel = nil
	m.daysList.SetItems(dayItems(m.prog))
}

// setDayItems makes items (possibly carrying the add tile) the day's authoritative list and
// feeds it back to the root grid.
func (m *appModel) setDayItems(items []model.GridItem, now time.Time) {
	d := m.day()
	if d == nil {
		return
	}
	d.Items = grid.Normalize(model.WithoutAddTile(items))
	m.root.setItems(model.WithAddTile(d.Items), now)
}

func (m *appModel) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	body := m.bodyRect()
	m.daysList.SetSize(body.w, body.h)
	if m.root != nil {
		m.root.setRect(body)
	}
	if m.panel != nil {
		m.layoutPanel()
	}
	w, h := m.catalogBoxSize()
	m.catalogList.SetSize(w-4, h-4)
}

// bodyRect is the area between the header (plus one blank line) and the footer.
func (m *appModel) bodyRect() rect {
	return rect{x: 1, y: 2, w: max(m.width-2, 1), h: max(m.height-3, 1)}
}

func (m *appModel) catalogBoxSize() (int, int) {
	return min(56, max(m.width-4, 10)), max(m.height-4, 6)
}

func (m *appModel) layoutPanel() {
	w := min(48, max(m.width-6, 12))
	h := max(m.height-4, 6)
	m.panel.box = rect{x: (m.width - w) / 2, y: 2, w: w, h: h}
	// Border plus one title row on top.
	m.panel.gv.setRect(rect{x: m.panel.box.x + 1, y: m.panel.box.y + 2, w: w - 2, h: h - 3})
}

// panelTileHeight gives tiles with notes an extra row in the group panel.
func panelTileHeight(it model.GridItem) float64 {
	if it.Exercise != nil && it.Exercise.Notes != "" {
		return 5
	}
	return 4
}

func (m *appModel) findGroup(key string) (model.GridItem, bool) {
	d := m.day()
	if d == nil {
		return model.GridItem{}, false
	}
	for _, it := range d.Items {
		if it.Key == key && it.IsGroup {
			return it, true
		}
	}
	return model.GridItem{}, false
}

func (m *appModel) openGroup(key string, now time.Time) {
	g, ok := m.findGroup(key)
	if !ok {
		return
	}
	m.root.cancel(now)
	opts := m.cfg.GridOptions()
	opts.Columns = 1
	opts.GroupingEnabled = false
	opts.HeightOf = panelTileHeight
	m.panel = &groupPanel{key: key, gv: newGridView(opts, m.cfg.AutoScroller(), true)}
	m.layoutPanel()
	m.panel.gv.setItems(g.Children, now)
	m.modal = modalGroup
}

func (m *appModel) closePanel(now time.Time) {
	if m.panel != nil {
		m.panel.gv.cancel(now)
	}
	m.panel = nil
	if m.modal == modalGroup {
		m.modal = modalNone
	}
}

// refreshPanel re-reads the open group's children, closing the panel once the group is gone.
func (m *appModel) refreshPanel(now time.Time) {
	if m.panel == nil {
		return
	}
	g, ok := m.findGroup(m.panel.key)
	if !ok {
		m.closePanel(now)
		return
	}
	m.panel.gv.setItems(g.Children, now)
}

func (m *appModel) openItem(it model.GridItem, now time.Time) {
	switch {
	case it.Key == model.AddTileKey:
		m.root.cancel(now)
		m.catalogList.ResetFilter()
		m.catalogList.Select(0)
		m.modal = modalCatalog
	case it.IsGroup:
		m.openGroup(it.Key, now)
	default:
		m.notes = it
		m.modal = modalNotes
	}
}

func (m *appModel) addExercise(ex model.Exercise, now time.Time) tea.Cmd {
	d := m.day()
	if d == nil {
		return nil
	}
	it := store.NewExerciseItem(ex)
	items := append(model.CloneItems(d.Items), it)
	m.setDayItems(items, now)
	logger.Info("tui: exercise added", "day", d.ID, "key", it.Key, "name", ex.Name)
	return m.setFlash("Added " + ex.Name)
}

// drain applies queued grid callbacks. Applying one can queue more (SetItems may abort a
// drag), so it loops until both views are quiet.
func (m *appModel) drain(now time.Time) tea.Cmd {
	var cmds []tea.Cmd
	for range 8 {
		var rootEvs, panelEvs []gridEvent
		if m.root != nil {
			rootEvs = m.root.takeEvents()
		}
		if m.panel != nil {
			panelEvs = m.panel.gv.takeEvents()
		}
		if len(rootEvs) == 0 && len(panelEvs) == 0 {
			break
		}
		for _, ev := range rootEvs {
			cmds = append(cmds, m.applyRootEvent(ev, now))
		}
		for _, ev := range panelEvs {
			cmds = append(cmds, m.applyPanelEvent(ev, now))
		}
	}
	return tea.Batch(cmds...)
}

func (m *appModel) applyRootEvent(ev gridEvent, now time.Time) tea.Cmd {
	switch ev.kind {
	case evPress:
		m.openItem(ev.item, now)
	case evRelease:
		m.setDayItems(ev.items, now)
	case evGroup:
		m.setDayItems(ev.items, now)
		if len(ev.group.Merged) == 2 {
			return m.setFlash(fmt.Sprintf("Superset: %s + %s", ev.group.Merged[1].Title(), ev.group.Merged[0].Title()))
		}
		return m.setFlash("Superset created")
	case evDelete:
		if d := m.day(); d != nil {
			if next, ok := grid.Remove(d.Items, ev.item.Key); ok {
				m.setDayItems(next, now)
				return m.setFlash("Removed " + ev.item.Title())
			}
		}
	case evAbort:
		return m.setFlash("Drag cancelled")
	}
	return nil
}

func (m *appModel) applyPanelEvent(ev gridEvent, now time.Time) tea.Cmd {
	if m.panel == nil {
		return nil
	}
	d := m.day()
	if d == nil {
		return nil
	}
	key := m.panel.key
	switch ev.kind {
	case evPress:
		m.notes = ev.item
		m.modal = modalNotes
	case evRelease:
		if next, ok := grid.ReplaceChildren(d.Items, key, ev.items); ok {
			m.setDayItems(next, now)
			m.refreshPanel(now)
		}
	case evOutside:
		if next, ok := grid.Ungroup(d.Items, key, ev.item.Key); ok {
			m.setDayItems(next, now)
			m.refreshPanel(now)
			return m.setFlash(ev.item.Title() + " left the superset")
		}
	case evDelete:
		if next, ok := grid.Remove(d.Items, ev.item.Key); ok {
			m.setDayItems(next, now)
			m.refreshPanel(now)
			return m.setFlash("Removed " + ev.item.Title())
		}
	case evAbort:
		return m.setFlash("Drag cancelled")
	}
	return nil
}

func (m *appModel) setFlash(s string) tea.Cmd {
	m.flashSeq++
	seq := m.flashSeq
	m.flash = s
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

func (m *appModel) needsFrames() bool {
	if m.root != nil && m.view == viewGrid && m.root.busy() {
		return true
	}
	if m.panel != nil && m.panel.gv.busy() {
		return true
	}
	return m.cfg.JiggleEnabled() && m.editing()
}

// ensureFrames starts the frame loop if something is animating and no loop is running.
func (m *appModel) ensureFrames() tea.Cmd {
	if m.framing || !m.needsFrames() {
		return nil
	}
	m.framing = true
	return frameCmd(m.cfg.FrameInterval())
}

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return frameMsg{at: t} })
}

func longPressCmd(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return longPressMsg{seq: seq} })
}
