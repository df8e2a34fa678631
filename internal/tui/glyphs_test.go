package tui

import "testing"

func TestGlyphs_FromConfig(t *testing.T) {
	setGlyphs(glyphSetUnicode)
	applyGlyphPreference("")
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected unicode glyphs by default; got %v", got)
	}

	applyGlyphPreference("ASCII")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected ascii glyphs; got %v", got)
	}
	if glyphDelete() != "x" || glyphGroup() != "#" {
		t.Fatalf("ascii glyphs not used: %q %q", glyphDelete(), glyphGroup())
	}

	// Unknown values keep the current set.
	applyGlyphPreference("bogus")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected unknown to be ignored; got %v", got)
	}

	applyGlyphPreference("unicode")
	if glyphDelete() != "×" {
		t.Fatalf("expected unicode delete glyph; got %q", glyphDelete())
	}
}
