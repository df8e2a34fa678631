package grid

import (
	"time"

	"setgrid/internal/model"
)

type Options struct {
	Columns    int
	ItemHeight float64
	// HeightOf gives per-tile heights; only honored for single-column grids.
	HeightOf func(model.GridItem) float64

	GroupingEnabled bool

	DragThreshold   float64
	ReorderDuration time.Duration
	DwellDuration   time.Duration
	OverlapFraction float64
	OutsideMargin   float64

	// NewGroupKey mints keys for synthesized groups. Defaults to model.NewGroupKey.
	NewGroupKey func() string
}

func DefaultOptions() Options {
	return Options{
		Columns:         3,
		DragThreshold:   2,
		ReorderDuration: 200 * time.Millisecond,
		DwellDuration:   300 * time.Millisecond,
		OverlapFraction: 0.4,
		OutsideMargin:   0.3,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Columns < 1 {
		o.Columns = 1
	}
	if o.DragThreshold <= 0 {
		o.DragThreshold = d.DragThreshold
	}
	if o.ReorderDuration < 0 {
		o.ReorderDuration = 0
	}
	if o.DwellDuration < 0 {
		o.DwellDuration = 0
	}
	if o.OverlapFraction <= 0 {
		o.OverlapFraction = d.OverlapFraction
	}
	if o.OutsideMargin <= 0 {
		o.OutsideMargin = d.OutsideMargin
	}
	if o.NewGroupKey == nil {
		o.NewGroupKey = model.NewGroupKey
	}
	return o
}

// Gesture is one pointer sample: the translation since the press plus the finger's
// absolute position in viewport coordinates.
type Gesture struct {
	DX, DY float64
	X, Y   float64
}

type DragEvent struct {
	Key         string
	Translation Point
	Finger      Point
	// Position is the tile's top-left in content coordinates.
	Position Point
}

type GroupEvent struct {
	// Merged holds the dragged tile and the target, in that order.
	Merged []model.GridItem
	Target model.GridItem
	Group  model.GridItem
	// Items is the full root list after the merge.
	Items []model.GridItem
}

// Callbacks are all optional. Each fires synchronously from the transition that causes it.
type Callbacks struct {
	OnItemPress      func(item model.GridItem)
	OnDragStart      func(item model.GridItem)
	OnDragging       func(ev DragEvent)
	OnDragRelease    func(items []model.GridItem)
	OnDragOutside    func(item model.GridItem)
	OnEditModeChange func(editing bool)
	OnGroupCreate    func(ev GroupEvent)
	OnDelete         func(item model.GridItem)
	// OnDragAbort fires when the dragged key vanished from the item list mid-drag.
	OnDragAbort func(key string)
}
