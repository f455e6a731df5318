package testdata

import (
	"git.lost.host/meutraa/judge/internal/game"
	"git.lost.host/meutraa/judge/internal/parser"
)

// GetChart returns a fresh copy of the mixed fixture chart
func GetChart() (*game.Chart, error) {
	p := parser.DefaultParser{}
	return p.ParseChart([]byte(data))
}

// GetEvents returns an input log that plays the fixture chart
func GetEvents() ([]game.Event, error) {
	p := parser.DefaultParser{}
	return p.ParseEventLog([]byte(events))
}

// Singles builds a chart of single notes at the given times, ids from 1
func Singles(times ...float64) *game.Chart {
	c := &game.Chart{PageDuration: 2}
	for i, t := range times {
		c.Notes = append(c.Notes, &game.Note{ID: game.NoteID(i + 1), Archetype: game.Single, Time: t})
	}
	return c
}

// Chain builds one chain run at the given times, ids from 1
func Chain(times ...float64) *game.Chart {
	c := &game.Chart{PageDuration: 2}
	for i, t := range times {
		n := &game.Note{ID: game.NoteID(i + 1), Archetype: game.ChainChild, Time: t}
		if i == 0 {
			n.Archetype = game.ChainHead
		}
		if i < len(times)-1 {
			n.ConnectedNoteID = game.Link(game.NoteID(i + 2))
		}
		c.Notes = append(c.Notes, n)
	}
	return c
}
