package tui

import (
	"time"

	"setgrid/internal/grid"
	"setgrid/internal/model"
)

type view int

const (
	viewDays view = iota
	viewGrid
)

type modal int

const (
	modalNone modal = iota
	modalNotes
	modalGroup
	modalCatalog
	modalHelp
)

// longPressMsg fires when a press has been held for the long-press delay. Stale ticks (the
// pointer was released or moved first) carry an old seq and are dropped.
type longPressMsg struct{ seq int }

type frameMsg struct{ at time.Time }

type flashDoneMsg struct{ seq int }

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

type gridEventKind int

const (
	evPress gridEventKind = iota
	evRelease
	evOutside
	evGroup
	evDelete
	evEditMode
	evAbort
)

// gridEvent is a grid callback queued for the app model. Callbacks fire synchronously inside
// grid calls, so they are buffered and applied once the call returns.
type gridEvent struct {
	kind    gridEventKind
	item    model.GridItem
	items   []model.GridItem
	group   grid.GroupEvent
	editing bool
	key     string
}
