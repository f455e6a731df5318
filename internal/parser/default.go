// Package parser reads charts, input logs and timing window overrides from
// JSON documents.
package parser

import (
	"errors"
	"fmt"
	"os"

	"git.lost.host/meutraa/judge/internal/game"
	"git.lost.host/meutraa/judge/internal/window"
	"github.com/tidwall/gjson"
)

var ErrInvalidJSON = errors.New("invalid json")

type DefaultParser struct{}

func (p *DefaultParser) Parse(file string) (*game.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	return p.ParseChart(data)
}

func (p *DefaultParser) ParseEvents(file string) ([]game.Event, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	return p.ParseEventLog(data)
}

func (p *DefaultParser) ParseWindows(file string, base window.Table) (window.Table, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	return p.ParseWindowTable(data, base)
}

// ParseChart reads a chart document:
//
//	{"page_duration": 2, "page_shift": 0,
//	 "notes": [{"id": 1, "type": "chain-head", "time": 1.5, "duration": 0, "x": 0.2, "next_id": 2}],
//	 "chronological_ids": [1]}
//
// chronological_ids is optional and derived from note times when missing.
func (p *DefaultParser) ParseChart(data []byte) (*game.Chart, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	doc := gjson.ParseBytes(data)

	chart := &game.Chart{
		PageDuration: doc.Get("page_duration").Float(),
		PageShift:    doc.Get("page_shift").Float(),
	}

	var err error
	doc.Get("notes").ForEach(func(_, v gjson.Result) bool {
		var note *game.Note
		note, err = p.parseNote(v)
		if nil != err {
			return false
		}
		chart.Notes = append(chart.Notes, note)
		return true
	})
	if nil != err {
		return nil, err
	}

	if ids := doc.Get("chronological_ids"); ids.Exists() {
		chart.ChronologicalIDs = []game.NoteID{}
		for _, id := range ids.Array() {
			chart.ChronologicalIDs = append(chart.ChronologicalIDs, game.NoteID(id.Int()))
		}
	}

	return chart, nil
}

func (p *DefaultParser) parseNote(v gjson.Result) (*game.Note, error) {
	id := v.Get("id")
	if !id.Exists() {
		return nil, fmt.Errorf("note without id: %s", v.Raw)
	}
	archetype, err := game.ParseArchetype(v.Get("type").String())
	if nil != err {
		return nil, fmt.Errorf("note %d: %w", id.Int(), err)
	}
	at := v.Get("time")
	if at.Type != gjson.Number {
		return nil, fmt.Errorf("note %d without time", id.Int())
	}
	note := &game.Note{
		ID:        game.NoteID(id.Int()),
		Archetype: archetype,
		Time:      at.Float(),
		Duration:  v.Get("duration").Float(),
		X:         float32(v.Get("x").Float()),
	}
	if next := v.Get("next_id"); next.Exists() && next.Type != gjson.Null {
		note.ConnectedNoteID = game.Link(game.NoteID(next.Int()))
	}
	return note, nil
}

// ParseEventLog reads [{"note": 1, "kind": "down", "time": 1.5}, ...]
func (p *DefaultParser) ParseEventLog(data []byte) ([]game.Event, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	events := []game.Event{}
	for _, v := range gjson.ParseBytes(data).Array() {
		if v.Get("note").Type != gjson.Number || v.Get("time").Type != gjson.Number {
			return nil, fmt.Errorf("event needs a note and a time: %s", v.Raw)
		}
		e := game.Event{
			NoteID: game.NoteID(v.Get("note").Int()),
			Time:   v.Get("time").Float(),
		}
		switch kind := v.Get("kind").String(); kind {
		case "", "down":
			e.Kind = game.Down
		case "up":
			e.Kind = game.Up
		default:
			return nil, fmt.Errorf("unknown event kind %q", kind)
		}
		events = append(events, e)
	}
	return events, nil
}

// ParseWindowTable applies overrides keyed by archetype name onto a copy of
// base. Fields an override leaves out keep their base value.
func (p *DefaultParser) ParseWindowTable(data []byte, base window.Table) (window.Table, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	table := base.Clone()

	var err error
	gjson.ParseBytes(data).ForEach(func(k, v gjson.Result) bool {
		var a game.Archetype
		a, err = game.ParseArchetype(k.String())
		if nil != err {
			return false
		}
		entry := table[a]
		if m := v.Get("miss_after"); m.Exists() {
			entry.MissAfter = m.Float()
		}
		if s := v.Get("start_early"); s.Exists() {
			entry.StartEarly = s.Float()
		}
		if ws := v.Get("windows"); ws.Exists() {
			entry.Windows = nil
			for _, w := range ws.Array() {
				var r game.Ranking
				r, err = game.ParseRanking(w.Get("ranking").String())
				if nil != err {
					return false
				}
				entry.Windows = append(entry.Windows, window.Window{
					Ranking: r,
					Early:   w.Get("early").Float(),
					Late:    w.Get("late").Float(),
				})
			}
		}
		if fs := v.Get("fractions"); fs.Exists() {
			entry.Fractions = nil
			for _, f := range fs.Array() {
				var r game.Ranking
				r, err = game.ParseRanking(f.Get("ranking").String())
				if nil != err {
					return false
				}
				entry.Fractions = append(entry.Fractions, window.Fraction{Ranking: r, Min: f.Get("min").Float()})
			}
		}
		table[a] = entry
		return true
	})
	if nil != err {
		return nil, err
	}
	return table, nil
}
