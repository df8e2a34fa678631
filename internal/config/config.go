package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"setgrid/internal/grid"
)

type GridOptions struct {
	Columns         int     `toml:"columns"`
	ItemHeight      float64 `toml:"item-height"`
	Grouping        *bool   `toml:"grouping"`
	LongPressMs     int     `toml:"long-press-ms"`
	DragThreshold   float64 `toml:"drag-threshold"`
	ReorderMs       int     `toml:"reorder-ms"`
	DwellMs         int     `toml:"dwell-ms"`
	OverlapFraction float64 `toml:"overlap-fraction"`
	OutsideMargin   float64 `toml:"outside-margin"`
}

type AutoScrollOptions struct {
	EdgeThreshold float64 `toml:"edge-threshold"`
	Speed         float64 `toml:"speed"`
}

type UIOptions struct {
	Glyphs string `toml:"glyphs"`
	FPS    int    `toml:"fps"`
	Jiggle *bool  `toml:"jiggle"`
}

type Config struct {
	Grid       GridOptions       `toml:"grid"`
	AutoScroll AutoScrollOptions `toml:"autoscroll"`
	UI         UIOptions         `toml:"ui"`
}

func boolPtr(b bool) *bool { return &b }

func Default() Config {
	return Config{
		Grid: GridOptions{
			Columns:         3,
			ItemHeight:      5,
			Grouping:        boolPtr(true),
			LongPressMs:     400,
			DragThreshold:   2,
			ReorderMs:       200,
			DwellMs:         300,
			OverlapFraction: 0.4,
			OutsideMargin:   0.3,
		},
		AutoScroll: AutoScrollOptions{
			EdgeThreshold: 3,
			Speed:         1,
		},
		UI: UIOptions{
			Glyphs: "unicode",
			FPS:    30,
			Jiggle: boolPtr(true),
		},
	}
}

// ConfigDir resolves SETGRID_CONFIG_HOME, then XDG_CONFIG_HOME/setgrid, then ~/.config/setgrid.
func ConfigDir() (string, error) {
	if v := os.Getenv("SETGRID_CONFIG_HOME"); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "setgrid"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "setgrid"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads config.toml from the config dir. A missing file yields the defaults.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	merge(&cfg, userCfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func merge(cfg *Config, user Config) {
	g := user.Grid
	if g.Columns > 0 {
		cfg.Grid.Columns = g.Columns
	}
	if g.ItemHeight > 0 {
		cfg.Grid.ItemHeight = g.ItemHeight
	}
	if g.Grouping != nil {
		cfg.Grid.Grouping = g.Grouping
	}
	if g.LongPressMs > 0 {
		cfg.Grid.LongPressMs = g.LongPressMs
	}
	if g.DragThreshold > 0 {
		cfg.Grid.DragThreshold = g.DragThreshold
	}
	if g.ReorderMs > 0 {
		cfg.Grid.ReorderMs = g.ReorderMs
	}
	if g.DwellMs > 0 {
		cfg.Grid.DwellMs = g.DwellMs
	}
	if g.OverlapFraction > 0 {
		cfg.Grid.OverlapFraction = g.OverlapFraction
	}
	if g.OutsideMargin > 0 {
		cfg.Grid.OutsideMargin = g.OutsideMargin
	}

	if user.AutoScroll.EdgeThreshold > 0 {
		cfg.AutoScroll.EdgeThreshold = user.AutoScroll.EdgeThreshold
	}
	if user.AutoScroll.Speed > 0 {
		cfg.AutoScroll.Speed = user.AutoScroll.Speed
	}

	if user.UI.Glyphs != "" {
		cfg.UI.Glyphs = user.UI.Glyphs
	}
	if user.UI.FPS > 0 {
		cfg.UI.FPS = user.UI.FPS
	}
	if user.UI.Jiggle != nil {
		cfg.UI.Jiggle = user.UI.Jiggle
	}
}

func (c Config) Validate() error {
	if c.Grid.OverlapFraction > 1 {
		return fmt.Errorf("grid.overlap-fraction must be <= 1, got %v", c.Grid.OverlapFraction)
	}
	switch c.UI.Glyphs {
	case "unicode", "ascii":
	default:
		return fmt.Errorf("ui.glyphs must be unicode or ascii, got %q", c.UI.Glyphs)
	}
	if c.UI.FPS > 120 {
		return fmt.Errorf("ui.fps must be <= 120, got %d", c.UI.FPS)
	}
	return nil
}

// GridOptions maps the [grid] table onto the grid engine's options.
func (c Config) GridOptions() grid.Options {
	o := grid.DefaultOptions()
	o.Columns = c.Grid.Columns
	o.ItemHeight = c.Grid.ItemHeight
	o.GroupingEnabled = c.Grid.Grouping == nil || *c.Grid.Grouping
	o.DragThreshold = c.Grid.DragThreshold
	o.ReorderDuration = time.Duration(c.Grid.ReorderMs) * time.Millisecond
	o.DwellDuration = time.Duration(c.Grid.DwellMs) * time.Millisecond
	o.OverlapFraction = c.Grid.OverlapFraction
	o.OutsideMargin = c.Grid.OutsideMargin
	return o
}

func (c Config) LongPressDelay() time.Duration {
	return time.Duration(c.Grid.LongPressMs) * time.Millisecond
}

// AutoScroller builds the auto-scroll coordinator from the [autoscroll] table.
func (c Config) AutoScroller() *grid.AutoScroll {
	return grid.NewAutoScroll(c.AutoScroll.EdgeThreshold, c.AutoScroll.Speed)
}

func (c Config) FrameInterval() time.Duration {
	fps := c.UI.FPS
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}

func (c Config) JiggleEnabled() bool { return c.UI.Jiggle == nil || *c.UI.Jiggle }

// Encode renders the config as TOML.
func (c Config) Encode() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", err
	}
	return buf.String(), nil
}
