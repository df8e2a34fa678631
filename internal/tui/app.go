package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	now := m.clock()
	jiggle := m.cfg.JiggleEnabled()
	c := newCanvas(m.width, m.height)
	c.paint(0, 0, m.headerLine())

	body := m.bodyRect()
	switch m.view {
	case viewDays:
		c.paint(body.x, body.y, m.daysList.View())
	case viewGrid:
		c.paint(body.x, body.y, m.root.render(now, jiggle && m.modal == modalNone))
	}

	if m.modal == modalGroup || (m.modal == modalNotes && m.panel != nil) {
		p := m.panel
		c.paint(p.box.x, p.box.y, m.renderPanelBox())
		c.paint(p.gv.rect.x, p.gv.rect.y, p.gv.render(now, jiggle && m.modal == modalGroup))
	}
	switch m.modal {
	case modalNotes:
		m.paintCentered(c, m.renderNotesModal())
	case modalCatalog:
		m.paintCentered(c, m.renderCatalogModal())
	case modalHelp:
		m.paintCentered(c, m.renderHelpModal())
	}

	c.paint(0, m.height-1, m.footerLine())
	return c.String()
}

func (m appModel) paintCentered(c *canvas, block string) {
	w := lipgloss.Width(block)
	h := lipgloss.Height(block)
	c.paint(max((m.width-w)/2, 0), max((m.height-h)/2, 0), block)
}

func (m appModel) headerLine() string {
	parts := []string{"setgrid", m.prog.Name}
	if m.view == viewGrid {
		if d := (&m).day(); d != nil {
			parts = append(parts, d.Name)
		}
	}
	if m.panel != nil {
		if g, ok := (&m).findGroup(m.panel.key); ok {
			parts = append(parts, g.Title())
		}
	}
	left := styleBreadcrumb().Render(strings.Join(parts, " "+glyphArrow()+" "))

	var right string
	if (&m).editing() {
		right = lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Background(colorAccent).Foreground(colorAccentFg).Render("EDIT")
	}
	gap := m.width - xansi.StringWidth(left) - xansi.StringWidth(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) footerLine() string {
	if m.flash != "" {
		return lipgloss.NewStyle().Foreground(colorAccent).Render(m.flash)
	}
	var help string
	switch {
	case m.modal == modalCatalog:
		help = "enter add  / filter  esc cancel"
	case m.modal == modalNotes || m.modal == modalHelp:
		help = "esc close"
	case (&m).editing():
		help = "drag to reorder  hold on a tile to superset  [" + glyphDelete() + "] delete  esc done"
	case m.modal == modalGroup:
		help = "hold and drag to reorder  drag out to split  esc close"
	case m.view == viewDays:
		help = helpLine(m.keys.Open, m.keys.Print, m.keys.Help, m.keys.Quit)
	default:
		help = "hold and drag to reorder  click to open  " + helpLine(m.keys.Back, m.keys.Print, m.keys.Quit)
	}
	if m.printOnExit {
		help += "  (print on exit)"
	}
	return styleMuted().Render(help)
}

// modalBox wraps body in a bordered box of the given outer size with a bold title row.
func modalBox(title, body string, w, h int, border lipgloss.TerminalColor) string {
	inner := styleHeader().Render(title) + "\n" + body
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Background(colorSurfaceBg).
		Render(normalizePane(inner, w-2, h-2))
}

func (m appModel) renderPanelBox() string {
	p := m.panel
	g, _ := (&m).findGroup(p.key)
	var color lipgloss.TerminalColor = colorAccent
	if g.Color != "" {
		color = lipgloss.Color(g.Color)
	}
	title := fmt.Sprintf("%s %s  %s", glyphGroup(), g.Title(), styleMuted().Render(fmt.Sprintf("%d exercises", len(g.Children))))
	return modalBox(title, "", p.box.w, p.box.h, color)
}

func (m appModel) renderNotesModal() string {
	w := min(64, max(m.width-4, 20))
	innerW := w - 2
	it := m.notes

	var lines []string
	if ex := it.Exercise; ex != nil {
		if meta := exerciseMeta(*ex); meta != "" {
			lines = append(lines, lipgloss.NewStyle().Foreground(colorCardMetaFg).Render(meta))
		}
		lines = append(lines, "")
		if notes := renderNotes(ex.Notes, innerW); notes != "" {
			lines = append(lines, notes)
		} else {
			lines = append(lines, styleMuted().Render("(no notes)"))
		}
	}
	body := strings.Join(lines, "\n")
	h := min(lipgloss.Height(body)+3, max(m.height-2, 4))
	return modalBox(it.Title(), body, w, h, colorAccent)
}

func (m appModel) renderCatalogModal() string {
	w, h := (&m).catalogBoxSize()
	body := "\n" + m.catalogList.View()
	return modalBox("Add exercise", body, w, h, colorAccent)
}

func (m appModel) renderHelpModal() string {
	rows := []string{
		"Hold a tile to enter edit mode, then drag it to a new slot.",
		"Hold a dragged tile over another one to build a superset.",
		"Click a superset to open it; drag a child out to split it off.",
		"In edit mode click [" + glyphDelete() + "] to delete a tile.",
		"Click empty space or press esc to leave edit mode.",
		"",
		helpLine(m.keys.Open, m.keys.Back, m.keys.Print, m.keys.Quit),
	}
	body := strings.Join(rows, "\n")
	w := min(lipgloss.Width(body)+4, max(m.width-2, 10))
	return modalBox("Help", body, w, len(rows)+3, colorAccent)
}
