// Package engine judges a chart against a stream of touches.
package engine

import (
	"fmt"
	"math"

	"git.lost.host/meutraa/judge/internal/chain"
	"git.lost.host/meutraa/judge/internal/game"
	"git.lost.host/meutraa/judge/internal/lifecycle"
	"git.lost.host/meutraa/judge/internal/score"
	"git.lost.host/meutraa/judge/internal/window"
	"golang.org/x/exp/slices"
)

type Option func(*Engine)

func WithWeights(w score.Weights) Option {
	return func(e *Engine) {
		e.weights = w
	}
}

// WithListener is told about every resolution as it is scored
func WithListener(fn func(game.Resolution)) Option {
	return func(e *Engine) {
		e.listeners = append(e.listeners, fn)
	}
}

// WithStrictNoteIDs makes touches on notes the chart lacks fatal
func WithStrictNoteIDs() Option {
	return func(e *Engine) {
		e.strict = true
	}
}

// Engine owns one play session. It is not safe for concurrent use; every
// call is expected from the single simulation loop.
type Engine struct {
	chart      *game.Chart
	rules      lifecycle.Rules
	linker     *chain.Linker
	aggregator *score.Aggregator
	weights    score.Weights
	strict     bool
	listeners  []func(game.Resolution)

	notes    map[game.NoteID]*lifecycle.Note
	order    []*lifecycle.Note // Chronological
	position map[game.NoteID]int

	// Every note before start in order is resolved
	start int

	// Resolved since the last tick
	resolved  []*lifecycle.Note
	remaining int

	last    float64
	started bool
	err     error
}

// New validates the chart and timing windows and prepares a session
func New(c *game.Chart, table window.Table, opts ...Option) (*Engine, error) {
	e := &Engine{
		chart:   c,
		weights: score.DefaultWeights(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := c.Validate(); nil != err {
		return nil, fmt.Errorf("invalid chart: %w", err)
	}
	if err := table.Validate(); nil != err {
		return nil, err
	}
	if err := e.weights.Validate(); nil != err {
		return nil, err
	}
	linker, err := chain.New(c)
	if nil != err {
		return nil, err
	}

	e.linker = linker
	e.rules = lifecycle.Rules{Table: table, Chart: c}
	e.aggregator = score.New(c, e.weights, game.NewPlayData())
	e.notes = make(map[game.NoteID]*lifecycle.Note, len(c.Notes))
	e.order = make([]*lifecycle.Note, len(c.ChronologicalIDs))
	e.position = make(map[game.NoteID]int, len(c.Notes))
	for _, n := range c.Notes {
		e.notes[n.ID] = lifecycle.New(n)
	}
	for i, id := range c.ChronologicalIDs {
		e.order[i] = e.notes[id]
		e.position[id] = i
	}
	e.remaining = len(e.order)
	return e, nil
}

func (e *Engine) lookup(id game.NoteID) *lifecycle.Note {
	return e.notes[id]
}

// observe enforces that time never goes backwards
func (e *Engine) observe(t float64) error {
	if nil != e.err {
		return e.err
	}
	if math.IsNaN(t) || (e.started && t < e.last) {
		e.err = &InvalidTimeOrderingError{Previous: e.last, Got: t}
		return e.err
	}
	e.started = true
	e.last = t
	return nil
}

func (e *Engine) note(id game.NoteID) (*lifecycle.Note, error) {
	n, ok := e.notes[id]
	if !ok && e.strict {
		e.err = &UnknownNoteError{NoteID: id}
		return nil, e.err
	}
	return n, nil
}

// Tick advances every note to t, carries chain drags along their runs and
// scores everything resolved since the previous tick in chart order.
func (e *Engine) Tick(t float64) ([]game.Resolution, error) {
	if err := e.observe(t); nil != err {
		return nil, err
	}

	for _, n := range e.order[e.start:] {
		if !e.chart.InLookahead(n.Note, t) {
			// Sorted by time, nothing later is in view yet
			break
		}
		if n.Advance(t, &e.rules) {
			e.resolved = append(e.resolved, n)
		}
	}

	for i := 0; i < len(e.resolved); i++ {
		n := e.resolved[i]
		if !n.Archetype.IsChain() {
			continue
		}
		e.resolved = append(e.resolved, e.linker.Propagate(n, n.Resolution().Time, &e.rules, e.lookup)...)
	}

	return e.flush(), nil
}

func (e *Engine) flush() []game.Resolution {
	if len(e.resolved) == 0 {
		return nil
	}
	slices.SortFunc(e.resolved, func(a, b *lifecycle.Note) bool {
		return e.position[a.ID] < e.position[b.ID]
	})

	resolutions := make([]game.Resolution, 0, len(e.resolved))
	for _, n := range e.resolved {
		if e.aggregator.Add(n.ID, n.Ranking()) {
			res := n.Resolution()
			res.Page = e.chart.Page(n.Time).Index
			resolutions = append(resolutions, res)
			e.remaining--
			for _, fn := range e.listeners {
				fn(res)
			}
		}
	}
	e.resolved = e.resolved[:0]

	for e.start < len(e.order) && e.order[e.start].Resolved() {
		e.start++
	}
	return resolutions
}

// TouchDown presses a note. Touches on resolved notes, unknown notes and
// chain segments whose predecessor is unresolved are ignored.
func (e *Engine) TouchDown(id game.NoteID, t float64) error {
	if err := e.observe(t); nil != err {
		return err
	}
	n, err := e.note(id)
	if nil == n {
		return err
	}
	if n.Archetype.IsChain() && e.linker.Blocked(id, e.lookup) {
		return nil
	}
	if n.TouchDown(t, &e.rules) {
		e.resolved = append(e.resolved, n)
	}
	return nil
}

// TouchUp releases a note
func (e *Engine) TouchUp(id game.NoteID, t float64) error {
	if err := e.observe(t); nil != err {
		return err
	}
	n, err := e.note(id)
	if nil == n {
		return err
	}
	if n.TouchUp(t, &e.rules) {
		e.resolved = append(e.resolved, n)
	}
	return nil
}

// HoldStart is TouchDown restricted to hold notes
func (e *Engine) HoldStart(id game.NoteID, t float64) error {
	if n := e.notes[id]; nil != n && n.Archetype.IsInstant() {
		return e.observe(t)
	}
	return e.TouchDown(id, t)
}

// HoldStop is TouchUp restricted to hold notes
func (e *Engine) HoldStop(id game.NoteID, t float64) error {
	if n := e.notes[id]; nil != n && n.Archetype.IsInstant() {
		return e.observe(t)
	}
	return e.TouchUp(id, t)
}

func (e *Engine) Dispatch(ev game.Event) error {
	if ev.Kind == game.Up {
		return e.TouchUp(ev.NoteID, ev.Time)
	}
	return e.TouchDown(ev.NoteID, ev.Time)
}

// Snapshot copies the current play data
func (e *Engine) Snapshot() game.PlayData {
	return e.aggregator.PlayData().Clone()
}

// State reports the lifecycle state of a note
func (e *Engine) State(id game.NoteID) (lifecycle.State, bool) {
	n, ok := e.notes[id]
	if !ok {
		return lifecycle.Pending, false
	}
	return n.State(), true
}

// Done is true once every note has been scored
func (e *Engine) Done() bool {
	return e.remaining == 0
}

// Err returns the error that ended the session, if any
func (e *Engine) Err() error {
	return e.err
}

func (e *Engine) Chart() *game.Chart {
	return e.chart
}

// LastDeadline is the latest time any note can still be unresolved
func (e *Engine) LastDeadline() float64 {
	last := math.Inf(-1)
	for _, n := range e.chart.Notes {
		last = math.Max(last, e.rules.Table.Deadline(n))
	}
	return last
}
