// Package lifecycle drives a single note from appearing on screen to
// receiving its ranking.
package lifecycle

import (
	"math"

	"git.lost.host/meutraa/judge/internal/game"
	"git.lost.host/meutraa/judge/internal/window"
)

type State uint8

const (
	Pending State = iota
	Visible
	Holding
	Resolved
)

func (s State) String() string {
	switch s {
	case Visible:
		return "visible"
	case Holding:
		return "holding"
	case Resolved:
		return "resolved"
	}
	return "pending"
}

// Rules are the chart wide facts a note is judged against
type Rules struct {
	Table window.Table
	Chart *game.Chart
}

type Note struct {
	*game.Note

	state     State
	ranking   game.Ranking
	holdStart float64

	// Set on resolution
	resolvedAt float64
	delta      float64
}

func New(n *game.Note) *Note {
	return &Note{Note: n}
}

func (n *Note) State() State {
	return n.state
}

func (n *Note) Ranking() game.Ranking {
	return n.ranking
}

func (n *Note) Resolved() bool {
	return n.state == Resolved
}

// HoldStart is when the hold began, only meaningful once Holding
func (n *Note) HoldStart() float64 {
	return n.holdStart
}

func (n *Note) Resolution() game.Resolution {
	return game.Resolution{
		NoteID:    n.ID,
		Archetype: n.Archetype,
		Ranking:   n.ranking,
		Time:      n.resolvedAt,
		Delta:     n.delta,
	}
}

// Reveal makes a pending note judgeable once it is within a page of t
func (n *Note) Reveal(t float64, r *Rules) {
	if n.state == Pending && r.Chart.InLookahead(n.Note, t) {
		n.state = Visible
	}
}

// Advance applies the passage of time and reports whether the note resolved
func (n *Note) Advance(t float64, r *Rules) bool {
	switch n.state {
	case Resolved:
		return false
	case Holding:
		if t >= n.End() {
			n.release(n.End(), r)
			return true
		}
		return false
	}

	n.Reveal(t, r)
	if t-n.Time > math.Max(r.Table[n.Archetype].MissAfter, n.Duration) {
		n.resolve(game.Miss, t, t-n.Time)
		return true
	}
	return false
}

// TouchDown judges a press and reports whether the note resolved. Presses on
// notes that are not visible, or too early to be judged, are ignored.
func (n *Note) TouchDown(t float64, r *Rules) bool {
	n.Reveal(t, r)
	if n.state != Visible {
		return false
	}

	delta := t - n.Time
	if n.Archetype.IsHold() {
		if t >= n.End() {
			n.resolve(game.Miss, t, 0)
			return true
		}
		if !r.Table.CanStartHold(n.Archetype, delta) {
			return false
		}
		n.state = Holding
		n.holdStart = t
		return false
	}

	ranking := r.Table.Classify(n.Archetype, delta, nil)
	if ranking == game.Undetermined {
		return false
	}
	n.resolve(ranking, t, delta)
	return true
}

// TouchUp ends a hold and reports whether the note resolved
func (n *Note) TouchUp(t float64, r *Rules) bool {
	if n.state != Holding {
		return false
	}
	n.release(t, r)
	return true
}

// HeldFraction is the share of the hold covered so far at t
func (n *Note) HeldFraction(t float64) float64 {
	if n.state != Holding && !(n.state == Resolved && n.Archetype.IsHold()) {
		return 0
	}
	held := math.Min(t, n.End()) - math.Max(n.holdStart, n.Time)
	if held <= 0 {
		return 0
	}
	return math.Min(held/n.Duration, 1)
}

func (n *Note) release(t float64, r *Rules) {
	fraction := n.HeldFraction(t)
	n.resolve(r.Table.Classify(n.Archetype, 0, &fraction), t, fraction)
}

// Resolved is write once
func (n *Note) resolve(ranking game.Ranking, t, delta float64) {
	if n.state == Resolved {
		return
	}
	n.state = Resolved
	n.ranking = ranking
	n.resolvedAt = t
	n.delta = delta
}
