// Package window holds the timing windows that grade a touch.
//
// Windows are data: a Table maps each archetype to a ladder of tolerances,
// strictest first, so constants can be tuned and tested without touching
// the note state machine.
package window

import (
	"errors"
	"fmt"
	"math"

	"git.lost.host/meutraa/judge/internal/game"
)

var (
	ErrMissingArchetype = errors.New("timing window table has no entry for archetype")
	ErrInvalidLadder    = errors.New("invalid timing window ladder")
)

// Window is one tier of a timed ladder. A touch earns Ranking when it lands
// less than Early seconds before or less than Late seconds after the note.
type Window struct {
	Ranking game.Ranking
	Early   float64
	Late    float64
}

// Fraction is one tier of a hold ladder, earned at Min held fraction or more
type Fraction struct {
	Ranking game.Ranking
	Min     float64
}

type Entry struct {
	Windows   []Window   // Timed archetypes, strictest first
	Fractions []Fraction // Hold archetypes, strictest first

	// A note nobody touched misses this long after its time,
	// or after its duration if that is longer
	MissAfter float64

	// How early a hold may be pressed
	StartEarly float64
}

type Table map[game.Archetype]Entry

// Validate rejects tables that could fail during judgement
func (t Table) Validate() error {
	for _, a := range game.Archetypes {
		e, ok := t[a]
		if !ok {
			return fmt.Errorf("%w %v", ErrMissingArchetype, a)
		}
		if err := e.validate(a); nil != err {
			return fmt.Errorf("%v: %w", a, err)
		}
	}
	return nil
}

func (e *Entry) validate(a game.Archetype) error {
	if e.MissAfter <= 0 || math.IsNaN(e.MissAfter) {
		return fmt.Errorf("%w: miss threshold %v", ErrInvalidLadder, e.MissAfter)
	}

	if a.IsHold() {
		if len(e.Fractions) == 0 {
			return fmt.Errorf("%w: no hold fractions", ErrInvalidLadder)
		}
		if e.StartEarly < 0 {
			return fmt.Errorf("%w: negative hold start tolerance", ErrInvalidLadder)
		}
		prev := Fraction{Ranking: game.Perfect + 1, Min: math.Inf(1)}
		for _, f := range e.Fractions {
			if f.Ranking <= game.Miss || f.Ranking >= prev.Ranking {
				return fmt.Errorf("%w: %v out of order", ErrInvalidLadder, f.Ranking)
			}
			if f.Min <= 0 || f.Min > 1 || f.Min >= prev.Min {
				return fmt.Errorf("%w: %v fraction %v", ErrInvalidLadder, f.Ranking, f.Min)
			}
			prev = f
		}
		return nil
	}

	if len(e.Windows) == 0 {
		return fmt.Errorf("%w: no windows", ErrInvalidLadder)
	}
	prev := Window{Ranking: game.Perfect + 1}
	for _, w := range e.Windows {
		if w.Ranking <= game.Miss || w.Ranking >= prev.Ranking {
			return fmt.Errorf("%w: %v out of order", ErrInvalidLadder, w.Ranking)
		}
		// Each tier must contain the stricter one before it
		if w.Early < prev.Early || w.Late < prev.Late || w.Late <= 0 {
			return fmt.Errorf("%w: %v window [-%v, %v) is not nested", ErrInvalidLadder, w.Ranking, w.Early, w.Late)
		}
		prev = w
	}
	if e.MissAfter < prev.Late {
		return fmt.Errorf("%w: miss threshold %v is inside the %v window", ErrInvalidLadder, e.MissAfter, prev.Ranking)
	}
	return nil
}

// Classify grades a touch. For timed archetypes delta is the touch time minus
// the note time; a touch later than every window is a Miss and a touch earlier
// than every window is Undetermined, meaning it cannot be judged yet. For hold
// archetypes the held fraction is graded instead and delta is ignored.
func (t Table) Classify(a game.Archetype, delta float64, heldFraction *float64) game.Ranking {
	e := t[a]
	if a.IsHold() {
		if nil == heldFraction {
			return game.Undetermined
		}
		for _, f := range e.Fractions {
			if *heldFraction >= f.Min {
				return f.Ranking
			}
		}
		return game.Miss
	}

	for _, w := range e.Windows {
		if delta >= 0 && delta < w.Late {
			return w.Ranking
		}
		if delta < 0 && -delta < w.Early {
			return w.Ranking
		}
	}
	if delta < 0 {
		return game.Undetermined
	}
	return game.Miss
}

// CanStartHold is true when a hold pressed delta seconds from its time may begin
func (t Table) CanStartHold(a game.Archetype, delta float64) bool {
	return delta >= 0 || -delta <= t[a].StartEarly
}

// Deadline is the time after which an untouched note has missed
func (t Table) Deadline(n *game.Note) float64 {
	return n.Time + math.Max(t[n.Archetype].MissAfter, n.Duration)
}
