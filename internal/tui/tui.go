package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"setgrid/internal/config"
	"setgrid/internal/logger"
	"setgrid/internal/model"
)

type Options struct {
	Program *model.Program
	// DayID opens that day's grid directly; empty starts on the days list.
	DayID   string
	Catalog []model.Exercise
	Config  config.Config
}

// Result is what the session left behind: the edited program and whether the user asked for
// it to be printed.
type Result struct {
	Program *model.Program
	// DayID is the day open when the session ended.
	DayID string
	Print bool
}

func Run(opts Options) (Result, error) {
	applyThemePreference()
	applyColorProfilePreference()
	applyGlyphPreference(opts.Config.UI.Glyphs)

	m := newAppModel(opts)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return Result{}, fmt.Errorf("run tui: %w", err)
	}
	fm, ok := final.(appModel)
	if !ok {
		return Result{Program: m.prog}, nil
	}
	logger.Info("tui: exit", "print", fm.printOnExit)
	return Result{Program: fm.prog, DayID: fm.dayID, Print: fm.printOnExit}, nil
}
