package publish

import (
	"bytes"
	"fmt"
	"strings"

	"setgrid/internal/format"
	"setgrid/internal/model"
)

type RenderOptions struct {
	// IncludeNotes appends each exercise's notes under its heading.
	IncludeNotes bool
}

// RenderDayMarkdown renders one training day: a numbered list of tiles, supersets as nested
// lettered lists, then (optionally) a notes section per exercise.
func RenderDayMarkdown(p *model.Program, dayID string, opt RenderOptions) (string, error) {
	d, ok := p.FindDay(dayID)
	if !ok {
		return "", fmt.Errorf("day not found: %s", dayID)
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(d.Name))
	writeLn("")
	writeLn(fmt.Sprintf("_%s_, %d exercises", p.Name, d.ExerciseCount()))
	writeLn("")

	var noted []model.GridItem
	n := 0
	for _, it := range d.Items {
		if it.Key == model.AddTileKey {
			continue
		}
		n++
		if it.IsGroup {
			writeLn(fmt.Sprintf("%d. **%s**", n, it.Title()))
			for i, ch := range it.Children {
				writeLn(fmt.Sprintf("    %c. %s", 'a'+rune(i%26), exerciseLine(ch)))
				if hasNotes(ch) {
					noted = append(noted, ch)
				}
			}
			continue
		}
		writeLn(fmt.Sprintf("%d. %s", n, exerciseLine(it)))
		if hasNotes(it) {
			noted = append(noted, it)
		}
	}

	if opt.IncludeNotes && len(noted) > 0 {
		writeLn("")
		writeLn("## Notes")
		for _, it := range noted {
			writeLn("")
			writeLn("### " + it.Title())
			writeLn("")
			writeLn(strings.TrimSpace(it.Exercise.Notes))
		}
	}
	return buf.String(), nil
}

// RenderProgramIndexMarkdown links every day page.
func RenderProgramIndexMarkdown(p *model.Program) string {
	var b strings.Builder
	b.WriteString("# " + strings.TrimSpace(p.Name) + "\n\n")
	for _, d := range p.Days {
		fmt.Fprintf(&b, "- [%s](days/%s.md) (%d exercises)\n", d.Name, d.ID, d.ExerciseCount())
	}
	return b.String()
}

func exerciseLine(it model.GridItem) string {
	s := it.Title()
	if ex := it.Exercise; ex != nil {
		if sr := format.SetsReps(*ex); sr != "" {
			s += ": " + sr
		}
		if ex.Muscle != "" {
			s += " (" + string(ex.Muscle) + ")"
		}
	}
	return s
}

func hasNotes(it model.GridItem) bool {
	return it.Exercise != nil && strings.TrimSpace(it.Exercise.Notes) != ""
}
