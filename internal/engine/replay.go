package engine

import (
	"math"

	"git.lost.host/meutraa/judge/internal/game"
	"git.lost.host/meutraa/judge/internal/window"
)

// Replay plays a time ordered event log through a new session, ticking every
// step seconds from zero until every note is scored. Events are delivered,
// with their own time, before the first tick at or after them.
func Replay(c *game.Chart, table window.Table, events []game.Event, step float64, opts ...Option) (game.PlayData, error) {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return game.PlayData{}, ErrInvalidStep
	}
	e, err := New(c, table, opts...)
	if nil != err {
		return game.PlayData{}, err
	}

	end := e.LastDeadline()
	if len(events) > 0 {
		end = math.Max(end, events[len(events)-1].Time)
	}

	next := 0
	for k := 0; ; k++ {
		t := float64(k) * step
		for ; next < len(events) && events[next].Time <= t; next++ {
			if err := e.Dispatch(events[next]); nil != err {
				return e.Snapshot(), err
			}
		}
		if _, err := e.Tick(t); nil != err {
			return e.Snapshot(), err
		}
		if next == len(events) && (e.Done() || t > end+step) {
			break
		}
	}
	return e.Snapshot(), nil
}
