package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"setgrid/internal/model"
)

// Texter is implemented by payloads that have their own text rendering.
type Texter interface {
	WriteText(w io.Writer) error
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - text
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteText renders programs, days and item lists as an indented outline.
func WriteText(w io.Writer, v any) error {
	var b strings.Builder
	switch x := v.(type) {
	case Texter:
		return x.WriteText(w)
	case *model.Program:
		programText(&b, *x)
	case model.Program:
		programText(&b, x)
	case *model.Day:
		dayText(&b, *x)
	case model.Day:
		dayText(&b, x)
	case []model.GridItem:
		ItemsText(&b, x, "")
	default:
		return fmt.Errorf("no text rendering for %T", v)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func programText(b *strings.Builder, p model.Program) {
	fmt.Fprintf(b, "%s\n", p.Name)
	for i, d := range p.Days {
		if i > 0 {
			b.WriteString("\n")
		}
		dayText(b, d)
	}
}

func dayText(b *strings.Builder, d model.Day) {
	fmt.Fprintf(b, "## %s (%s) - %d exercises\n", d.Name, d.ID, d.ExerciseCount())
	ItemsText(b, d.Items, "")
}

// ItemsText writes one numbered line per tile; group children are lettered beneath their group.
func ItemsText(b *strings.Builder, items []model.GridItem, indent string) {
	n := 0
	for _, it := range items {
		if it.Key == model.AddTileKey {
			continue
		}
		n++
		if it.IsGroup {
			fmt.Fprintf(b, "%s%2d. [%s]\n", indent, n, it.Title())
			for j, c := range it.Children {
				fmt.Fprintf(b, "%s    %c. %s\n", indent, 'a'+rune(j%26), ItemLine(c))
			}
			continue
		}
		fmt.Fprintf(b, "%s%2d. %s\n", indent, n, ItemLine(it))
	}
}

// ItemLine is the one-line summary of a plain tile: name, sets x reps, muscle.
func ItemLine(it model.GridItem) string {
	parts := []string{it.Title()}
	if ex := it.Exercise; ex != nil {
		if s := SetsReps(*ex); s != "" {
			parts = append(parts, s)
		}
		if ex.Muscle != "" {
			parts = append(parts, string(ex.Muscle))
		}
	}
	return strings.Join(parts, "  ")
}

func SetsReps(ex model.Exercise) string {
	switch {
	case ex.Sets > 0 && ex.Reps > 0:
		return fmt.Sprintf("%dx%d", ex.Sets, ex.Reps)
	case ex.Sets > 0:
		return fmt.Sprintf("%d sets", ex.Sets)
	default:
		return ""
	}
}
