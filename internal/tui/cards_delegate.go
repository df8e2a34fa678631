package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// dayCardDelegate draws each training day as a bordered card: name, exercise counts and a
// preview of the first few tiles.
type dayCardDelegate struct {
	normalCard   lipgloss.Style
	selectedCard lipgloss.Style
	titleStyle   lipgloss.Style
	metaStyle    lipgloss.Style
}

func newDayCardDelegate() dayCardDelegate {
	card := lipgloss.NewStyle().
		Padding(0, 1, 0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Foreground(colorSurfaceFg)

	return dayCardDelegate{
		normalCard:   card,
		selectedCard: card.BorderForeground(colorAccent),
		titleStyle:   lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg),
		metaStyle:    lipgloss.NewStyle().Foreground(colorCardMetaFg),
	}
}

func (d dayCardDelegate) Height() int                             { return 5 } // 3 inner lines + border
func (d dayCardDelegate) Spacing() int                            { return 1 }
func (d dayCardDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d dayCardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	totalW := m.Width()
	if totalW < 12 {
		return
	}
	it, ok := item.(dayItem)
	if !ok {
		return
	}

	card := d.normalCard
	if index == m.Index() {
		card = d.selectedCard
	}
	innerW := totalW - card.GetHorizontalFrameSize()
	if innerW < 1 {
		innerW = 1
	}

	groups := 0
	for _, t := range it.day.Items {
		if t.IsGroup {
			groups++
		}
	}
	counts := fmt.Sprintf("%d exercises", it.day.ExerciseCount())
	if groups > 0 {
		counts += fmt.Sprintf(" %s %d supersets", glyphBullet(), groups)
	}

	preview := make([]string, 0, len(it.day.Items))
	for _, t := range it.day.Items {
		preview = append(preview, t.Title())
	}

	lines := []string{
		d.titleStyle.Render(it.day.Name),
		d.metaStyle.Render(counts),
		styleMuted().Render(strings.Join(preview, ", ")),
	}
	fmt.Fprint(w, card.Render(normalizePane(strings.Join(lines, "\n"), innerW, 3)))
}
