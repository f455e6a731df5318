// Package chain links chain notes so one drag can resolve a whole run.
package chain

import (
	"errors"
	"fmt"

	"git.lost.host/meutraa/judge/internal/game"
	"git.lost.host/meutraa/judge/internal/lifecycle"
)

var ErrInvalidLink = errors.New("invalid chain link")

// Lookup finds the runtime state of a note, nil when unknown
type Lookup func(id game.NoteID) *lifecycle.Note

type Linker struct {
	next        map[game.NoteID]game.NoteID
	predecessor map[game.NoteID]game.NoteID
}

func New(c *game.Chart) (*Linker, error) {
	l := &Linker{
		next:        map[game.NoteID]game.NoteID{},
		predecessor: map[game.NoteID]game.NoteID{},
	}

	for _, n := range c.Notes {
		id, ok := n.Connected()
		if !ok {
			continue
		}
		if !n.Archetype.IsChain() {
			return nil, fmt.Errorf("%w: %v note %d has a connected note", ErrInvalidLink, n.Archetype, n.ID)
		}
		to := c.Note(id)
		if nil == to {
			return nil, fmt.Errorf("%w: note %d connects to unknown note %d", ErrInvalidLink, n.ID, id)
		}
		if to.Archetype != game.ChainChild {
			return nil, fmt.Errorf("%w: note %d connects to %v note %d", ErrInvalidLink, n.ID, to.Archetype, id)
		}
		if p, ok := l.predecessor[id]; ok {
			return nil, fmt.Errorf("%w: note %d follows both %d and %d", ErrInvalidLink, id, p, n.ID)
		}
		l.next[n.ID] = id
		l.predecessor[id] = n.ID
	}

	// Every note has at most one successor and one predecessor, so walking
	// back further than the chart is long means we are in a loop
	for id := range l.predecessor {
		cur := id
		for steps := 0; ; steps++ {
			p, ok := l.predecessor[cur]
			if !ok {
				break
			}
			if steps > len(c.Notes) {
				return nil, fmt.Errorf("%w: note %d is part of a cycle", ErrInvalidLink, id)
			}
			cur = p
		}
	}

	return l, nil
}

// Predecessor returns the chain segment before id
func (l *Linker) Predecessor(id game.NoteID) (game.NoteID, bool) {
	p, ok := l.predecessor[id]
	return p, ok
}

// Next returns the chain segment after id
func (l *Linker) Next(id game.NoteID) (game.NoteID, bool) {
	n, ok := l.next[id]
	return n, ok
}

// Blocked is true while the segment before id is still unresolved.
// Runs resolve in order, so a blocked note cannot be judged.
func (l *Linker) Blocked(id game.NoteID, lookup Lookup) bool {
	p, ok := l.predecessor[id]
	if !ok {
		return false
	}
	prev := lookup(p)
	return nil != prev && !prev.Resolved()
}

// Propagate carries a resolved chain note's touch along its run. Each visible
// successor receives an implicit press at t; the walk stops at the first
// segment that does not resolve or resolves to a Miss.
func (l *Linker) Propagate(from *lifecycle.Note, t float64, r *lifecycle.Rules, lookup Lookup) []*lifecycle.Note {
	var resolved []*lifecycle.Note
	cur := from
	for cur.Archetype.IsChain() && cur.Resolved() && cur.Ranking() != game.Miss {
		id, ok := l.next[cur.ID]
		if !ok {
			break
		}
		next := lookup(id)
		if nil == next || next.Resolved() {
			break
		}
		next.Reveal(t, r)
		if next.State() != lifecycle.Visible {
			break
		}
		if !next.TouchDown(t, r) {
			break
		}
		resolved = append(resolved, next)
		cur = next
	}
	return resolved
}
