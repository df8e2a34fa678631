package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"setgrid/internal/config"
	"setgrid/internal/format"
	"setgrid/internal/grid"
	"setgrid/internal/logger"
	"setgrid/internal/model"
	"setgrid/internal/store"

	"github.com/spf13/cobra"
)

// Script is a recorded gesture session replayed against a headless grid.
//
// Coordinates are in grid units: by default three 100 wide columns of square tiles.
type Script struct {
	Day   string           `json:"day,omitempty"`
	Group string           `json:"group,omitempty"`
	Items []model.GridItem `json:"items,omitempty"`

	Columns    int     `json:"columns,omitempty"`
	Width      float64 `json:"width,omitempty"`
	ItemHeight float64 `json:"itemHeight,omitempty"`
	Grouping   *bool   `json:"grouping,omitempty"`
	// Viewport is the visible height of the scroll container; zero disables auto-scroll.
	Viewport float64 `json:"viewport,omitempty"`
	FrameMs  int     `json:"frameMs,omitempty"`

	Events []ScriptEvent `json:"events"`
}

type ScriptEvent struct {
	At   int     `json:"at"`
	Type string  `json:"type"`
	Key  string  `json:"key,omitempty"`
	DX   float64 `json:"dx,omitempty"`
	DY   float64 `json:"dy,omitempty"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
}

type SimEvent struct {
	At    int      `json:"at"`
	Event string   `json:"event"`
	Key   string   `json:"key,omitempty"`
	Items []string `json:"items,omitempty"`
}

type SimResult struct {
	Items        []model.GridItem `json:"items"`
	Events       []SimEvent       `json:"events"`
	EditMode     bool             `json:"editMode"`
	ScrollOffset float64          `json:"scrollOffset,omitempty"`
}

func (r SimResult) WriteText(w io.Writer) error {
	var b strings.Builder
	for _, ev := range r.Events {
		fmt.Fprintf(&b, "%6dms  %-14s %s", ev.At, ev.Event, ev.Key)
		if len(ev.Items) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(ev.Items, " "))
		}
		b.WriteString("\n")
	}
	if len(r.Events) > 0 {
		b.WriteString("\n")
	}
	format.ItemsText(&b, r.Items, "")
	_, err := io.WriteString(w, b.String())
	return err
}

func newSimulateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate SCRIPT",
		Short: "Replay a JSON gesture script against a day and print the result",
		Example: strings.TrimSpace(`
  setgrid simulate drag.json
  setgrid simulate --format text - < drag.json
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := readScript(cmd, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := app.config()
			if err != nil {
				return writeErr(cmd, err)
			}
			items := script.Items
			if items == nil {
				p, err := app.program()
				if err != nil {
					return writeErr(cmd, err)
				}
				dayID := script.Day
				if dayID == "" {
					dayID = app.Day
				}
				d, err := store.Day(p, dayID)
				if err != nil {
					return writeErr(cmd, err)
				}
				items = d.Items
			}
			res, err := Simulate(script, items, cfg)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, res)
		},
	}
	return cmd
}

func readScript(cmd *cobra.Command, path string) (Script, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return Script{}, fmt.Errorf("read script: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var s Script
	if err := dec.Decode(&s); err != nil {
		return Script{}, fmt.Errorf("parse script: %w", err)
	}
	return s, nil
}

type simScroller struct {
	height float64
	g      *grid.Grid
	offset float64
}

func (s *simScroller) Viewport() grid.Viewport {
	return grid.Viewport{Height: s.height, Content: s.g.TotalHeight()}
}
func (s *simScroller) ScrollOffset() float64  { return s.offset }
func (s *simScroller) ScrollTo(offset float64) { s.offset = offset }

type simulation struct {
	script Script
	root   []model.GridItem
	g      *grid.Grid
	now    time.Time
	start  time.Time
	events []SimEvent
}

func (s *simulation) at() int { return int(s.now.Sub(s.start) / time.Millisecond) }

func (s *simulation) record(event, key string, items []model.GridItem) {
	ev := SimEvent{At: s.at(), Event: event, Key: key}
	if items != nil {
		ev.Items = model.Keys(items)
	}
	s.events = append(s.events, ev)
}

// groupChildren returns the children of the simulated group, or nil once it dissolved.
func (s *simulation) groupChildren() []model.GridItem {
	for _, it := range s.root {
		if it.Key == s.script.Group && it.IsGroup {
			return it.Children
		}
	}
	return nil
}

// Simulate replays script over items (a day's root list) and returns the final root list with
// every callback the grid emitted.
func Simulate(script Script, items []model.GridItem, cfg config.Config) (SimResult, error) {
	sim := &simulation{
		script: script,
		root:   model.CloneItems(items),
		start:  time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	sim.now = sim.start

	opts := cfg.GridOptions()
	opts.ItemHeight = script.ItemHeight
	if script.Columns > 0 {
		opts.Columns = script.Columns
	}
	if script.Grouping != nil {
		opts.GroupingEnabled = *script.Grouping
	}
	gridItems := sim.root
	if script.Group != "" {
		gridItems = sim.groupChildren()
		if gridItems == nil {
			return SimResult{}, store.NotFoundError{Kind: "group", ID: script.Group}
		}
		opts.Columns = 1
		opts.GroupingEnabled = false
	}
	width := script.Width
	if width <= 0 {
		width = float64(opts.Columns) * 100
	}

	sim.g = grid.New(opts, sim.callbacks())
	sim.g.SetLayout(grid.Layout{Width: width, Height: script.Viewport})
	sim.g.SetItems(gridItems, sim.now)

	var scroller *simScroller
	if script.Viewport > 0 {
		scroller = &simScroller{height: script.Viewport, g: sim.g}
		sim.g.AttachAutoScroll(cfg.AutoScroller(), scroller)
	}

	frame := time.Duration(script.FrameMs) * time.Millisecond
	if frame <= 0 {
		frame = 16 * time.Millisecond
	}

	for i, ev := range script.Events {
		target := sim.start.Add(time.Duration(ev.At) * time.Millisecond)
		if target.Before(sim.now) {
			return SimResult{}, scriptError{Index: i, Reason: "events out of order"}
		}
		sim.pump(target, frame)
		if err := sim.dispatch(ev); err != nil {
			return SimResult{}, scriptError{Index: i, Reason: err.Error()}
		}
	}
	for n := 0; n < 1000 && sim.g.Busy(); n++ {
		sim.now = sim.now.Add(frame)
		sim.g.Tick(sim.now)
	}
	if sim.g.Busy() && sim.g.Phase() == grid.PhaseIdle {
		logger.Warn("simulate: grid still busy after drain")
	}

	res := SimResult{
		Items:    sim.root,
		Events:   sim.events,
		EditMode: sim.g.EditMode(),
	}
	if scroller != nil {
		res.ScrollOffset = scroller.offset
	}
	return res, nil
}

func (s *simulation) pump(target time.Time, frame time.Duration) {
	for s.now.Add(frame).Before(target) {
		s.now = s.now.Add(frame)
		s.g.Tick(s.now)
	}
	s.now = target
	s.g.Tick(s.now)
}

func (s *simulation) dispatch(ev ScriptEvent) error {
	key := ev.Key
	if key == "" {
		key, _ = s.g.KeyAt(grid.Point{X: ev.X, Y: ev.Y})
	}
	switch strings.ToLower(ev.Type) {
	case "longpress", "long-press":
		if !s.g.LongPress(key, s.now) {
			s.record("longpress-ignored", key, nil)
		}
	case "move":
		s.g.Move(grid.Gesture{DX: ev.DX, DY: ev.DY, X: ev.X, Y: ev.Y}, s.now)
	case "release":
		s.g.Release(s.now)
	case "terminate":
		s.g.Terminate(s.now)
	case "tap":
		if ev.Key == "" {
			s.g.TapAt(grid.Point{X: ev.X, Y: ev.Y}, s.now)
		}
		if key != "" {
			s.g.Tap(key, s.now)
		}
	case "delete":
		s.g.RequestDelete(key)
	case "exit-edit":
		s.g.ExitEditMode()
	case "wait", "tick":
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	return nil
}

func (s *simulation) callbacks() grid.Callbacks {
	cb := grid.Callbacks{
		OnItemPress: func(it model.GridItem) { s.record("press", it.Key, nil) },
		OnDragStart: func(it model.GridItem) { s.record("drag-start", it.Key, nil) },
		OnDragRelease: func(items []model.GridItem) {
			s.record("release", "", items)
			if s.script.Group == "" {
				s.root = items
				return
			}
			if next, ok := grid.ReplaceChildren(s.root, s.script.Group, items); ok {
				s.root = next
			}
		},
		OnEditModeChange: func(on bool) {
			if on {
				s.record("edit-on", "", nil)
			} else {
				s.record("edit-off", "", nil)
			}
		},
		OnGroupCreate: func(ev grid.GroupEvent) {
			s.record("group-create", ev.Group.Key, ev.Group.Children)
			s.root = ev.Items
		},
		OnDelete: func(it model.GridItem) {
			next, ok := grid.Remove(s.root, it.Key)
			if !ok {
				return
			}
			s.root = next
			s.record("delete", it.Key, nil)
			if s.script.Group != "" {
				s.g.SetItems(s.groupChildren(), s.now)
				return
			}
			s.g.SetItems(s.root, s.now)
		},
		OnDragAbort: func(key string) { s.record("abort", key, nil) },
	}
	// Only a group's nested grid can be dragged out of; the root list has nowhere to go.
	if s.script.Group != "" {
		cb.OnDragOutside = func(it model.GridItem) {
			s.record("outside", it.Key, nil)
			next, ok := grid.Ungroup(s.root, s.script.Group, it.Key)
			if !ok {
				return
			}
			s.root = next
			s.record("ungroup", it.Key, s.root)
			s.g.SetItems(s.groupChildren(), s.now)
		}
	}
	return cb
}
