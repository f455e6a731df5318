package score

import (
	"git.lost.host/meutraa/judge/internal/game"
	"golang.org/x/exp/slices"
)

// InputsCompact is the events of one note, for storage
type InputsCompact struct {
	NoteID game.NoteID
	Kinds  []game.EventKind
	Times  []float64
	Seq    []int // Position in the original event log
}

// Compact groups events by note, in order of first appearance
func Compact(events []game.Event) []InputsCompact {
	groups := []InputsCompact{}
	index := map[game.NoteID]int{}
	for seq, e := range events {
		i, ok := index[e.NoteID]
		if !ok {
			i = len(groups)
			index[e.NoteID] = i
			groups = append(groups, InputsCompact{NoteID: e.NoteID})
		}
		g := &groups[i]
		g.Kinds = append(g.Kinds, e.Kind)
		g.Times = append(g.Times, e.Time)
		g.Seq = append(g.Seq, seq)
	}
	return groups
}

// Uncompact restores the event log Compact was given
func Uncompact(inputs []InputsCompact) []game.Event {
	type sequenced struct {
		seq   int
		event game.Event
	}
	all := []sequenced{}
	for _, in := range inputs {
		for i, t := range in.Times {
			e := game.Event{NoteID: in.NoteID, Time: t}
			if i < len(in.Kinds) {
				e.Kind = in.Kinds[i]
			}
			seq := len(all)
			if i < len(in.Seq) {
				seq = in.Seq[i]
			}
			all = append(all, sequenced{seq: seq, event: e})
		}
	}
	slices.SortStableFunc(all, func(a, b sequenced) bool {
		return a.seq < b.seq
	})
	events := make([]game.Event, len(all))
	for i, s := range all {
		events[i] = s.event
	}
	return events
}
