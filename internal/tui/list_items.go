package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"setgrid/internal/format"
	"setgrid/internal/model"
)

type dayItem struct {
	day model.Day
}

func (i dayItem) FilterValue() string { return i.day.Name }

type catalogItem struct {
	ex model.Exercise
}

func (i catalogItem) FilterValue() string { return i.ex.Name + " " + string(i.ex.Muscle) }
func (i catalogItem) Title() string       { return i.ex.Name }

func (i catalogItem) Description() string { return exerciseMeta(i.ex) }

// exerciseMeta is the "4x6 • chest" line shown under an exercise name.
func exerciseMeta(ex model.Exercise) string {
	parts := make([]string, 0, 2)
	if s := format.SetsReps(ex); s != "" {
		parts = append(parts, s)
	}
	if ex.Muscle != "" {
		parts = append(parts, string(ex.Muscle))
	}
	return strings.Join(parts, " "+glyphBullet()+" ")
}

func dayItems(p *model.Program) []list.Item {
	out := make([]list.Item, 0, len(p.Days))
	for _, d := range p.Days {
		out = append(out, dayItem{day: d})
	}
	return out
}

func catalogItems(cat []model.Exercise) []list.Item {
	out := make([]list.Item, 0, len(cat))
	for _, ex := range cat {
		out = append(out, catalogItem{ex: ex})
	}
	return out
}

func newList(title string, items []list.Item, delegate list.ItemDelegate) list.Model {
	if delegate == nil {
		delegate = list.NewDefaultDelegate()
	}
	l := list.New(items, delegate, 0, 0)
	l.Title = title
	// Header and footer are drawn by the app, so the list keeps minimal chrome.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	// Esc means back/cancel in setgrid, never quit.
	l.KeyMap.Quit.SetKeys("q")
	l.KeyMap.ForceQuit.SetKeys("ctrl+c")

	up := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	l.KeyMap.CursorUp.SetKeys(append(up, "ctrl+p")...)
	down := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	l.KeyMap.CursorDown.SetKeys(append(down, "ctrl+n")...)
	return l
}
