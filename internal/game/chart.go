package game

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/slices"
)

var (
	ErrEmptyChart          = errors.New("chart has no notes")
	ErrInvalidPageDuration = errors.New("chart page duration must be positive")
)

type Chart struct {
	PageDuration     float64
	PageShift        float64
	Notes            []*Note
	ChronologicalIDs []NoteID

	index map[NoteID]int
}

// Note returns the note for an id, nil if the chart does not contain it
func (c *Chart) Note(id NoteID) *Note {
	i, ok := c.Index(id)
	if !ok {
		return nil
	}
	return c.Notes[i]
}

// Index returns the chart order position of a note
func (c *Chart) Index(id NoteID) (int, bool) {
	if nil == c.index {
		c.buildIndex()
	}
	i, ok := c.index[id]
	return i, ok
}

func (c *Chart) buildIndex() {
	c.index = make(map[NoteID]int, len(c.Notes))
	for i, n := range c.Notes {
		c.index[n.ID] = i
	}
}

// Validate checks the structural facts the engine relies upon and
// fills ChronologicalIDs when the loader did not provide them.
// Chain links are checked by the chain package.
func (c *Chart) Validate() error {
	if len(c.Notes) == 0 {
		return ErrEmptyChart
	}
	if c.PageDuration <= 0 || math.IsNaN(c.PageDuration) || math.IsInf(c.PageDuration, 0) {
		return ErrInvalidPageDuration
	}

	c.index = make(map[NoteID]int, len(c.Notes))
	for i, n := range c.Notes {
		if nil == n {
			return fmt.Errorf("note at position %d is nil", i)
		}
		if _, ok := c.index[n.ID]; ok {
			return fmt.Errorf("duplicate note id %d", n.ID)
		}
		if _, ok := archetypeNames[n.Archetype]; !ok {
			return fmt.Errorf("note %d: %v", n.ID, n.Archetype)
		}
		if math.IsNaN(n.Time) || math.IsInf(n.Time, 0) {
			return fmt.Errorf("note %d: invalid time %v", n.ID, n.Time)
		}
		if n.Duration < 0 || math.IsNaN(n.Duration) || math.IsInf(n.Duration, 0) {
			return fmt.Errorf("note %d: invalid duration %v", n.ID, n.Duration)
		}
		if n.Archetype.IsHold() && n.Duration == 0 {
			return fmt.Errorf("note %d: %v requires a duration", n.ID, n.Archetype)
		}
		c.index[n.ID] = i
	}

	if nil == c.ChronologicalIDs {
		c.ChronologicalIDs = SortChronologically(c.Notes)
		return nil
	}
	if len(c.ChronologicalIDs) != len(c.Notes) {
		return fmt.Errorf("chronological order has %d ids, chart has %d notes", len(c.ChronologicalIDs), len(c.Notes))
	}
	seen := make(map[NoteID]bool, len(c.Notes))
	prev := math.Inf(-1)
	for _, id := range c.ChronologicalIDs {
		i, ok := c.index[id]
		if !ok {
			return fmt.Errorf("chronological order references unknown note %d", id)
		}
		if seen[id] {
			return fmt.Errorf("chronological order repeats note %d", id)
		}
		if c.Notes[i].Time < prev {
			return fmt.Errorf("chronological order puts note %d after a later note", id)
		}
		seen[id] = true
		prev = c.Notes[i].Time
	}
	return nil
}

// SortChronologically orders note ids by time, keeping chart order for ties
func SortChronologically(notes []*Note) []NoteID {
	sorted := make([]*Note, len(notes))
	copy(sorted, notes)
	slices.SortStableFunc(sorted, func(a, b *Note) bool {
		return a.Time < b.Time
	})
	ids := make([]NoteID, len(sorted))
	for i, n := range sorted {
		ids[i] = n.ID
	}
	return ids
}
