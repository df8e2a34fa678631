package model

import "strings"

type Muscle string

const (
	MuscleChest     Muscle = "chest"
	MuscleBack      Muscle = "back"
	MuscleShoulders Muscle = "shoulders"
	MuscleBiceps    Muscle = "biceps"
	MuscleTriceps   Muscle = "triceps"
	MuscleQuads     Muscle = "quads"
	MuscleHamstring Muscle = "hamstrings"
	MuscleGlutes    Muscle = "glutes"
	MuscleCalves    Muscle = "calves"
	MuscleCore      Muscle = "core"
)

type Exercise struct {
	Name   string `json:"name"`
	Muscle Muscle `json:"muscle,omitempty"`
	Sets   int    `json:"sets,omitempty"`
	Reps   int    `json:"reps,omitempty"`
	// Notes is markdown shown in the detail modal.
	Notes string `json:"notes,omitempty"`
}

// Day is one training day: an ordered list of tiles.
type Day struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Items []GridItem `json:"items"`
}

type Program struct {
	Name string `json:"name"`
	Days []Day  `json:"days"`
}

// FindDay returns a pointer into p.Days so callers can replace a day's items in place.
func (p *Program) FindDay(id string) (*Day, bool) {
	id = strings.TrimSpace(id)
	for i := range p.Days {
		if p.Days[i].ID == id {
			return &p.Days[i], true
		}
	}
	return nil, false
}

// ExerciseCount counts exercises, descending into groups.
func (d Day) ExerciseCount() int {
	n := 0
	for _, it := range d.Items {
		switch {
		case it.IsGroup:
			n += len(it.Children)
		case it.DisabledDrag && it.DisabledReSorted:
			// Fixed tiles (the add tile) are not exercises.
		default:
			n++
		}
	}
	return n
}
