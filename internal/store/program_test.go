package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"setgrid/internal/model"
)

func writeProgram(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultProgram_Loads(t *testing.T) {
	p, err := LoadProgram("")
	if err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	if len(p.Days) < 2 {
		t.Fatalf("expected several days, got %d", len(p.Days))
	}
	d, err := Day(p, "upper-a")
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	var group *model.GridItem
	for i := range d.Items {
		if d.Items[i].IsGroup {
			group = &d.Items[i]
		}
	}
	if group == nil || len(group.Children) != 2 {
		t.Fatalf("expected a superset with two children in %s", d.ID)
	}
}

func TestLoadProgram_MissingFileIsNotFound(t *testing.T) {
	_, err := LoadProgram(filepath.Join(t.TempDir(), "nope.json"))
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "program" {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestLoadProgram_NormalizesItems(t *testing.T) {
	path := writeProgram(t, `{
  "name": "",
  "days": [{"items": [
    {"exercise": {"name": "Squat"}},
    {"key": "add"},
    {"key": "solo", "isGroup": true, "children": [{"key": "only"}]},
    {"key": "empty", "isGroup": true},
    {"key": "g", "isGroup": true, "children": [{"key": "x"}, {"key": "y"}]}
  ]}]
}`)
	p, err := LoadProgram(path)
	if err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	if p.Name != "Program" {
		t.Fatalf("name: got %q", p.Name)
	}
	d := p.Days[0]
	if d.ID != "day-1" || d.Name != "day-1" {
		t.Fatalf("day id/name: %q %q", d.ID, d.Name)
	}
	keys := model.Keys(d.Items)
	if len(keys) != 3 {
		t.Fatalf("items: got %v", keys)
	}
	if !strings.HasPrefix(keys[0], "ex-") {
		t.Fatalf("expected minted key, got %q", keys[0])
	}
	if keys[1] != "only" || keys[2] != "g" {
		t.Fatalf("items: got %v", keys)
	}
	if d.Items[2].Name != "Superset" {
		t.Fatalf("group name: got %q", d.Items[2].Name)
	}
}

func TestLoadProgram_Rejects(t *testing.T) {
	cases := map[string]string{
		"no days":         `{"name": "x", "days": []}`,
		"duplicate day":   `{"days": [{"id": "a"}, {"id": "a"}]}`,
		"duplicate key":   `{"days": [{"id": "a", "items": [{"key": "k"}, {"key": "g", "isGroup": true, "children": [{"key": "k"}, {"key": "z"}]}]}]}`,
		"nested group":    `{"days": [{"id": "a", "items": [{"key": "g", "isGroup": true, "children": [{"key": "h", "isGroup": true}]}]}]}`,
		"orphan children": `{"days": [{"id": "a", "items": [{"key": "t", "children": [{"key": "c"}]}]}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadProgram(writeProgram(t, body))
			var inv InvalidProgramError
			if !errors.As(err, &inv) {
				t.Fatalf("expected InvalidProgramError, got %v", err)
			}
		})
	}
}

func TestLoadProgram_UnknownFieldIsParseError(t *testing.T) {
	_, err := LoadProgram(writeProgram(t, `{"days": [{"id": "a"}], "bogus": 1}`))
	if err == nil || !strings.Contains(err.Error(), "parse program") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestDay_LookupAndDefault(t *testing.T) {
	p := &model.Program{Days: []model.Day{{ID: "a"}, {ID: "b"}}}

	d, err := Day(p, "")
	if err != nil || d.ID != "a" {
		t.Fatalf("default day: %v %v", d, err)
	}
	d, err = Day(p, " b ")
	if err != nil || d.ID != "b" {
		t.Fatalf("day b: %v %v", d, err)
	}
	_, err = Day(p, "c")
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.Error() != "day not found: c" {
		t.Fatalf("expected day not found, got %v", err)
	}
}

func TestCatalog(t *testing.T) {
	cat, err := Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if len(cat) == 0 {
		t.Fatalf("empty catalog")
	}
	it := NewExerciseItem(cat[0])
	if it.Exercise == nil || it.Exercise.Name != cat[0].Name || !strings.HasPrefix(it.Key, "ex-") {
		t.Fatalf("bad item: %+v", it)
	}
	it.Exercise.Sets = 99
	if cat[0].Sets == 99 {
		t.Fatalf("item shares the catalog entry")
	}
}
