package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height lines tall.
// Tiles and modal bodies go through it so every block has a known footprint on the canvas.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i, ln := range lines {
		w := xansi.StringWidth(ln)
		if w > width {
			switch {
			case width <= 0:
				ln = ""
			case width == 1:
				ln = xansi.Cut(ln, 0, 1)
			default:
				ln = xansi.Cut(ln, 0, width-1) + glyphEllipsis()
			}
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

// canvas is a fixed-size grid of terminal lines that blocks are painted onto. Blocks may sit
// partly off-canvas; the invisible part is clipped.
type canvas struct {
	width  int
	height int
	lines  []string
}

func newCanvas(width, height int) *canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &canvas{width: width, height: height, lines: make([]string, height)}
	blank := strings.Repeat(" ", width)
	for i := range c.lines {
		c.lines[i] = blank
	}
	return c
}

// canvasFrom wraps already rendered content (e.g. a whole screen) so modals can be painted on it.
func canvasFrom(s string, width, height int) *canvas {
	c := &canvas{width: width, height: height}
	c.lines = strings.Split(normalizePane(s, width, height), "\n")
	return c
}

// paint draws block with its top-left corner at (x, y).
func (c *canvas) paint(x, y int, block string) {
	for i, ln := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= c.height {
			continue
		}
		c.lines[row] = overlayLine(c.lines[row], ln, x, c.width)
	}
}

func (c *canvas) String() string { return strings.Join(c.lines, "\n") }

// overlayLine replaces the cells [x, x+width(top)) of base with top, clipped to [0, width).
func overlayLine(base, top string, x, width int) string {
	w := xansi.StringWidth(top)
	if w == 0 || x >= width || x+w <= 0 {
		return base
	}
	if x < 0 {
		top = xansi.Cut(top, -x, w)
		w += x
		x = 0
	}
	if x+w > width {
		top = xansi.Cut(top, 0, width-x)
		w = width - x
	}
	left := xansi.Cut(base, 0, x)
	right := xansi.Cut(base, x+w, width)
	return left + top + right
}
