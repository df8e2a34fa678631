package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestNormalizePane_PadsAndTruncates(t *testing.T) {
	setGlyphs(glyphSetASCII)
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	got := normalizePane("abc\nabcdefgh", 5, 3)
	want := "abc  \nabcd~\n     "
	if got != want {
		t.Fatalf("normalizePane: got %q want %q", got, want)
	}
}

func TestCanvas_PaintClips(t *testing.T) {
	c := newCanvas(6, 3)
	c.paint(4, 1, "XYZ\nXYZ\nXYZ")
	c.paint(-1, 0, "ab")

	want := []string{
		"b     ",
		"    XY",
		"    XY",
	}
	if got := c.String(); got != strings.Join(want, "\n") {
		t.Fatalf("canvas:\n%q\nwant:\n%q", got, strings.Join(want, "\n"))
	}
}

func TestOverlayLine_KeepsANSIWidth(t *testing.T) {
	base := "\x1b[31mred red red\x1b[0m"
	got := overlayLine(base, "[]", 4, 11)
	if w := xansi.StringWidth(got); w != 11 {
		t.Fatalf("width: got %d", w)
	}
	if plain := xansi.Strip(got); plain != "red []d red" {
		t.Fatalf("plain: got %q", plain)
	}
}
