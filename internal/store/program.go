package store

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"setgrid/internal/logger"
	"setgrid/internal/model"
)

//go:embed data/*.json
var dataFS embed.FS

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// InvalidProgramError reports a program file that parsed but is not usable.
type InvalidProgramError struct {
	Source string
	Reason string
}

func (e InvalidProgramError) Error() string {
	return fmt.Sprintf("invalid program %s: %s", e.Source, e.Reason)
}

// LoadProgram reads a program file. An empty path loads the built-in program.
func LoadProgram(path string) (*model.Program, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultProgram()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NotFoundError{Kind: "program", ID: path}
		}
		return nil, fmt.Errorf("read program: %w", err)
	}
	p, err := decodeProgram(b, path)
	if err != nil {
		return nil, err
	}
	logger.Info("program loaded", "path", path, "days", len(p.Days))
	return p, nil
}

func DefaultProgram() (*model.Program, error) {
	b, err := dataFS.ReadFile("data/default_program.json")
	if err != nil {
		return nil, fmt.Errorf("read built-in program: %w", err)
	}
	return decodeProgram(b, "built-in")
}

func decodeProgram(b []byte, source string) (*model.Program, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	var p model.Program
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("parse program %s: %w", source, err)
	}
	if err := Normalize(&p, source); err != nil {
		return nil, err
	}
	return &p, nil
}

// Normalize validates a decoded program and fills in what a hand-written file may omit:
// missing keys are minted, degenerate groups are collapsed, stray add tiles are dropped.
func Normalize(p *model.Program, source string) error {
	if len(p.Days) == 0 {
		return InvalidProgramError{Source: source, Reason: "no days"}
	}
	if strings.TrimSpace(p.Name) == "" {
		p.Name = "Program"
	}

	days := map[string]bool{}
	for i := range p.Days {
		d := &p.Days[i]
		d.ID = strings.TrimSpace(d.ID)
		if d.ID == "" {
			d.ID = fmt.Sprintf("day-%d", i+1)
		}
		if days[d.ID] {
			return InvalidProgramError{Source: source, Reason: "duplicate day id " + d.ID}
		}
		days[d.ID] = true
		if d.Name == "" {
			d.Name = d.ID
		}

		seen := map[string]bool{}
		items, err := normalizeItems(d.Items, seen, false)
		if err != nil {
			return InvalidProgramError{Source: source, Reason: fmt.Sprintf("day %s: %v", d.ID, err)}
		}
		d.Items = collapseGroups(items)
	}
	return nil
}

func normalizeItems(items []model.GridItem, seen map[string]bool, nested bool) ([]model.GridItem, error) {
	out := make([]model.GridItem, 0, len(items))
	for _, it := range items {
		if it.Key == model.AddTileKey {
			continue
		}
		if it.Key == "" {
			if it.IsGroup {
				it.Key = model.NewGroupKey()
			} else {
				it.Key = model.NewItemKey()
			}
		}
		if seen[it.Key] {
			return nil, fmt.Errorf("duplicate key %s", it.Key)
		}
		seen[it.Key] = true

		if it.IsGroup {
			if nested {
				return nil, fmt.Errorf("group %s is nested in another group", it.Key)
			}
			children, err := normalizeItems(it.Children, seen, true)
			if err != nil {
				return nil, err
			}
			it.Children = children
			if it.Name == "" {
				it.Name = "Superset"
			}
		} else if len(it.Children) > 0 {
			return nil, fmt.Errorf("tile %s has children but is not a group", it.Key)
		}
		out = append(out, it)
	}
	return out, nil
}

// collapseGroups replaces groups with fewer than two children by their only child (or nothing).
func collapseGroups(items []model.GridItem) []model.GridItem {
	out := make([]model.GridItem, 0, len(items))
	for _, it := range items {
		if !it.IsGroup {
			out = append(out, it)
			continue
		}
		switch len(it.Children) {
		case 0:
		case 1:
			out = append(out, it.Children[0])
		default:
			out = append(out, it)
		}
	}
	return out
}

// Day returns the day with id, or the first day when id is empty.
func Day(p *model.Program, id string) (*model.Day, error) {
	if p == nil || len(p.Days) == 0 {
		return nil, NotFoundError{Kind: "day", ID: id}
	}
	if strings.TrimSpace(id) == "" {
		return &p.Days[0], nil
	}
	d, ok := p.FindDay(id)
	if !ok {
		return nil, NotFoundError{Kind: "day", ID: id}
	}
	return d, nil
}

// Catalog is the built-in exercise list offered by the add tile.
func Catalog() ([]model.Exercise, error) {
	b, err := dataFS.ReadFile("data/catalog.json")
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var out []model.Exercise
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return out, nil
}

// NewExerciseItem wraps a catalog exercise in a fresh tile.
func NewExerciseItem(ex model.Exercise) model.GridItem {
	e := ex
	return model.GridItem{Key: model.NewItemKey(), Exercise: &e}
}
