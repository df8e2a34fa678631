package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		now := m.clock()
		if m.root != nil {
			m.root.cancel(now)
		}
		if m.panel != nil {
			m.panel.gv.cancel(now)
		}
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, tea.Batch(m.drain(now), m.ensureFrames())

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case frameMsg:
		m.framing = false
		if m.view == viewGrid && m.root != nil {
			m.root.g.Tick(msg.at)
		}
		if m.panel != nil {
			m.panel.gv.g.Tick(msg.at)
		}
		cmd := m.drain(msg.at)
		return m, tea.Batch(cmd, m.ensureFrames())

	case longPressMsg:
		now := m.clock()
		if gv := m.pressed(); gv != nil {
			gv.longPress(msg.seq, now)
		}
		return m, tea.Batch(m.drain(now), m.ensureFrames())

	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, tea.Batch(cmd, m.drain(m.clock()), m.ensureFrames())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// pressed is the grid view that owns the gesture in flight, if any.
func (m *appModel) pressed() *gridView {
	if m.panel != nil && m.panel.gv.press.active {
		return m.panel.gv
	}
	if m.root != nil && m.root.press.active {
		return m.root
	}
	return nil
}

// scrollTarget is the grid view under the wheel.
func (m *appModel) scrollTarget() *gridView {
	if m.modal == modalGroup && m.panel != nil {
		return m.panel.gv
	}
	if m.modal == modalNone && m.view == viewGrid {
		return m.root
	}
	return nil
}

func (m *appModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	now := m.clock()

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if m.view == viewDays && m.modal == modalNone {
			var cmd tea.Cmd
			m.daysList, cmd = m.daysList.Update(msg)
			return cmd
		}
		if gv := m.scrollTarget(); gv != nil {
			if msg.Button == tea.MouseButtonWheelUp {
				gv.scrollBy(-1)
			} else {
				gv.scrollBy(1)
			}
		}
		return nil

	case msg.Action == tea.MouseActionMotion:
		if gv := m.pressed(); gv != nil {
			gv.mouseMove(msg.X, msg.Y, now)
		}
		return nil

	case msg.Action == tea.MouseActionRelease:
		if gv := m.pressed(); gv != nil {
			gv.mouseUp(msg.X, msg.Y, now)
		}
		return nil

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return m.mouseDown(msg.X, msg.Y, now)
	}
	return nil
}

func (m *appModel) mouseDown(x, y int, now time.Time) tea.Cmd {
	var gv *gridView
	switch m.modal {
	case modalNotes, modalHelp:
		m.closeModal(now)
		return nil
	case modalCatalog:
		return nil
	case modalGroup:
		if !m.panel.box.contains(x, y) {
			m.closePanel(now)
			return nil
		}
		gv = m.panel.gv
	default:
		if m.view != viewGrid || m.root == nil {
			return nil
		}
		gv = m.root
	}

	m.pressSeq++
	if gv.mouseDown(x, y, m.pressSeq) {
		return longPressCmd(m.cfg.LongPressDelay(), m.pressSeq)
	}
	return nil
}

func (m *appModel) closeModal(now time.Time) {
	switch m.modal {
	case modalGroup:
		m.closePanel(now)
	case modalNotes:
		// Notes opened from the group panel return to it.
		if m.panel != nil {
			m.modal = modalGroup
			return
		}
		m.modal = modalNone
	default:
		m.modal = modalNone
	}
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.clock()

	if m.modal == modalCatalog {
		return m.updateCatalog(msg)
	}
	if m.view == viewDays && m.daysList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.daysList, cmd = m.daysList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.root != nil {
			m.root.cancel(now)
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Print):
		m.printOnExit = !m.printOnExit
		if m.printOnExit {
			return m, m.setFlash("Program will be printed on exit")
		}
		return m, m.setFlash("Print on exit off")

	case key.Matches(msg, m.keys.Help):
		if m.modal == modalHelp {
			m.modal = modalNone
		} else if m.modal == modalNone {
			m.modal = modalHelp
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		return m, m.back(now)
	}

	switch m.modal {
	case modalNotes, modalHelp:
		if key.Matches(msg, m.keys.Open) {
			m.closeModal(now)
		}
		return m, nil
	case modalGroup:
		return m, nil
	}

	if m.view == viewDays {
		if key.Matches(msg, m.keys.Open) {
			if it, ok := m.daysList.SelectedItem().(dayItem); ok {
				m.openDay(it.day.ID)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.daysList, cmd = m.daysList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// back is esc: leave edit mode first, then close the top modal, then return to the days list.
func (m *appModel) back(now time.Time) tea.Cmd {
	switch m.modal {
	case modalGroup:
		if m.panel != nil && m.panel.gv.g.EditMode() {
			m.panel.gv.cancel(now)
			m.panel.gv.g.ExitEditMode()
			return m.drain(now)
		}
		m.closePanel(now)
		return nil
	case modalNone:
	default:
		m.closeModal(now)
		return nil
	}

	if m.view != viewGrid {
		return nil
	}
	if m.root.g.EditMode() {
		m.root.cancel(now)
		m.root.g.ExitEditMode()
		return m.drain(now)
	}
	if len(m.prog.Days) > 1 {
		m.backToDays()
	}
	return nil
}

func (m appModel) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.clock()
	if m.catalogList.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Back):
			if m.catalogList.FilterState() == list.FilterApplied {
				m.catalogList.ResetFilter()
				return m, nil
			}
			m.modal = modalNone
			return m, nil
		case key.Matches(msg, m.keys.Open):
			m.modal = modalNone
			if it, ok := m.catalogList.SelectedItem().(catalogItem); ok {
				return m, m.addExercise(it.ex, now)
			}
			return m, nil
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.catalogList, cmd = m.catalogList.Update(msg)
	return m, cmd
}
