package engine

import (
	"errors"
	"testing"

	"git.lost.host/meutraa/judge/internal/game"
	"git.lost.host/meutraa/judge/internal/lifecycle"
	"git.lost.host/meutraa/judge/internal/parser"
	"git.lost.host/meutraa/judge/internal/testdata"
	"git.lost.host/meutraa/judge/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const step = 1.0 / 240

func newEngine(t *testing.T, c *game.Chart, opts ...Option) *Engine {
	e, err := New(c, window.Default(), opts...)
	require.NoError(t, err)
	return e
}

func TestBoundaryTiming(t *testing.T) {
	tests := map[float64]game.Ranking{
		10.069: game.Perfect,
		10.071: game.Excellent,
	}
	for touch, expected := range tests {
		e := newEngine(t, testdata.Singles(10))
		_, err := e.Tick(9)
		require.NoError(t, err)
		require.NoError(t, e.TouchDown(1, touch))
		resolutions, err := e.Tick(touch)
		require.NoError(t, err)

		require.Len(t, resolutions, 1)
		assert.Equal(t, expected, resolutions[0].Ranking)
		assert.Equal(t, expected, e.Snapshot().Ranking(1))
	}
}

func TestHoldBoundary(t *testing.T) {
	tests := map[float64]game.Ranking{
		1.41: game.Excellent,
		1.39: game.Good,
	}
	for held, expected := range tests {
		c := &game.Chart{PageDuration: 2, Notes: []*game.Note{{ID: 1, Archetype: game.Hold, Time: 10, Duration: 2}}}
		e := newEngine(t, c)
		require.NoError(t, e.HoldStart(1, 10))
		_, err := e.Tick(10)
		require.NoError(t, err)
		state, _ := e.State(1)
		assert.Equal(t, lifecycle.Holding, state)

		require.NoError(t, e.HoldStop(1, 10+held))
		_, err = e.Tick(10 + held)
		require.NoError(t, err)
		assert.Equal(t, expected, e.Snapshot().Ranking(1), "held %v", held)
	}
}

func TestFreshSessionHasFullAccuracy(t *testing.T) {
	e := newEngine(t, testdata.Singles(1, 2))
	d := e.Snapshot()
	assert.Equal(t, float32(100), d.Tp)
	assert.Empty(t, d.NoteRankings)
	assert.False(t, e.Done())
}

func TestDuplicateTouchIsIgnored(t *testing.T) {
	e := newEngine(t, testdata.Singles(1, 2))
	require.NoError(t, e.TouchDown(1, 1))
	_, err := e.Tick(1)
	require.NoError(t, err)
	before := e.Snapshot()

	require.NoError(t, e.TouchDown(1, 1.05))
	resolutions, err := e.Tick(1.05)
	require.NoError(t, err)
	assert.Empty(t, resolutions)
	assert.Equal(t, before, e.Snapshot())
}

func TestUnknownNoteIsIgnored(t *testing.T) {
	e := newEngine(t, testdata.Singles(1))
	assert.NoError(t, e.TouchDown(42, 0.5))
	assert.NoError(t, e.TouchUp(42, 0.5))
	assert.NoError(t, e.Err())
}

func TestUnknownNoteIsFatalWhenStrict(t *testing.T) {
	e := newEngine(t, testdata.Singles(1), WithStrictNoteIDs())
	err := e.TouchDown(42, 0.5)
	var unknown *UnknownNoteError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, game.NoteID(42), unknown.NoteID)

	_, err = e.Tick(0.6)
	assert.Equal(t, unknown, err)
}

func TestTimeMustNotGoBackwards(t *testing.T) {
	e := newEngine(t, testdata.Singles(1))
	_, err := e.Tick(1)
	require.NoError(t, err)

	_, err = e.Tick(0.5)
	var ordering *InvalidTimeOrderingError
	require.True(t, errors.As(err, &ordering))
	assert.Equal(t, 1.0, ordering.Previous)
	assert.Equal(t, 0.5, ordering.Got)

	// The session is over
	assert.Equal(t, err, e.TouchDown(1, 2))
	_, err = e.Tick(2)
	assert.True(t, errors.As(err, &ordering))
}

func TestTouchBeforeLastTickIsRejected(t *testing.T) {
	e := newEngine(t, testdata.Singles(1))
	_, err := e.Tick(1)
	require.NoError(t, err)
	var ordering *InvalidTimeOrderingError
	assert.True(t, errors.As(e.TouchDown(1, 0.9), &ordering))
}

func TestMissResetsCombo(t *testing.T) {
	e := newEngine(t, testdata.Singles(1, 2, 3))
	require.NoError(t, e.TouchDown(1, 1))
	require.NoError(t, e.TouchDown(2, 2))
	_, err := e.Tick(2)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), e.Snapshot().Combo)

	resolutions, err := e.Tick(3.31)
	require.NoError(t, err)
	require.Len(t, resolutions, 1)
	assert.Equal(t, game.Miss, resolutions[0].Ranking)
	assert.Equal(t, uint32(0), e.Snapshot().Combo)
	assert.Equal(t, uint32(2), e.Snapshot().MaxCombo)
	assert.True(t, e.Done())
}

func TestUntouchedChartMissesEverything(t *testing.T) {
	c, err := testdata.GetChart()
	require.NoError(t, err)
	d, err := Replay(c, window.Default(), nil, step)
	require.NoError(t, err)

	assert.Equal(t, uint32(len(c.Notes)), d.NoteCleared)
	assert.Equal(t, uint32(len(c.Notes)), d.Counts[game.Miss])
	assert.Equal(t, float32(0), d.Score)
	assert.Equal(t, float32(0), d.Tp)
}

func TestChainDrag(t *testing.T) {
	e := newEngine(t, testdata.Chain(10, 10.05, 10.1))
	require.NoError(t, e.TouchDown(1, 10))
	resolutions, err := e.Tick(10)
	require.NoError(t, err)

	require.Len(t, resolutions, 3)
	for i, r := range resolutions {
		assert.Equal(t, game.NoteID(i+1), r.NoteID)
	}
	d := e.Snapshot()
	assert.Equal(t, game.Perfect, d.Ranking(1))
	assert.Equal(t, game.Perfect, d.Ranking(2))
	assert.Equal(t, game.Excellent, d.Ranking(3))
	assert.Equal(t, float32(1000000), d.Score)
}

func TestChainSkippedSegmentStopsDrag(t *testing.T) {
	// A -> B -> C where B comes too late for the drag from A to reach it
	e := newEngine(t, testdata.Chain(10, 10.4, 10.5))
	require.NoError(t, e.TouchDown(1, 10))
	_, err := e.Tick(10)
	require.NoError(t, err)
	assert.Equal(t, game.Perfect, e.Snapshot().Ranking(1))

	// C cannot be judged while B is unresolved
	require.NoError(t, e.TouchDown(3, 10.5))
	_, err = e.Tick(10.5)
	require.NoError(t, err)
	assert.Equal(t, game.Undetermined, e.Snapshot().Ranking(3))

	// B times out; that does not carry a drag into C
	resolutions, err := e.Tick(10.71)
	require.NoError(t, err)
	require.Len(t, resolutions, 1)
	assert.Equal(t, game.NoteID(2), resolutions[0].NoteID)
	assert.Equal(t, game.Miss, resolutions[0].Ranking)
	assert.Equal(t, game.Undetermined, e.Snapshot().Ranking(3))

	_, err = e.Tick(10.81)
	require.NoError(t, err)
	assert.Equal(t, game.Miss, e.Snapshot().Ranking(3))
}

func TestResolutionsAreScoredInChartOrder(t *testing.T) {
	e := newEngine(t, testdata.Singles(1, 1.1, 1.2))
	require.NoError(t, e.TouchDown(3, 1.2))
	require.NoError(t, e.TouchDown(1, 1.2))
	require.NoError(t, e.TouchDown(2, 1.2))
	resolutions, err := e.Tick(1.2)
	require.NoError(t, err)
	require.Len(t, resolutions, 3)
	assert.Equal(t, game.NoteID(1), resolutions[0].NoteID)
	assert.Equal(t, game.NoteID(2), resolutions[1].NoteID)
	assert.Equal(t, game.NoteID(3), resolutions[2].NoteID)
	assert.Equal(t, game.Good, resolutions[0].Ranking)
	assert.Equal(t, game.Excellent, resolutions[1].Ranking)
	assert.Equal(t, game.Perfect, resolutions[2].Ranking)
}

func TestHoldVariantsIgnoreTaps(t *testing.T) {
	e := newEngine(t, testdata.Singles(1))
	require.NoError(t, e.HoldStart(1, 1))
	_, err := e.Tick(1)
	require.NoError(t, err)
	state, ok := e.State(1)
	assert.True(t, ok)
	assert.Equal(t, lifecycle.Visible, state)
}

func TestConstructionRejectsBadConfiguration(t *testing.T) {
	table := window.Default()
	delete(table, game.LongHold)
	_, err := New(testdata.Singles(1), table)
	assert.ErrorIs(t, err, window.ErrMissingArchetype)

	_, err = New(&game.Chart{PageDuration: 1}, window.Default())
	assert.ErrorIs(t, err, game.ErrEmptyChart)

	c := testdata.Singles(1, 2)
	c.Notes[0].ConnectedNoteID = game.Link(2)
	_, err = New(c, window.Default())
	assert.Error(t, err)
}

func TestListenerSeesEveryResolution(t *testing.T) {
	var seen []game.NoteID
	e := newEngine(t, testdata.Singles(1, 1.2), WithListener(func(r game.Resolution) {
		seen = append(seen, r.NoteID)
	}))
	require.NoError(t, e.TouchDown(2, 1.2))
	_, err := e.Tick(1.2)
	require.NoError(t, err)
	_, err = e.Tick(5)
	require.NoError(t, err)
	assert.Equal(t, []game.NoteID{2, 1}, seen)
}

func TestOverflowingHoldIsRejected(t *testing.T) {
	p := parser.DefaultParser{}
	c, err := p.ParseChart([]byte(`{"page_duration": 2, "notes": [{"id": 1, "type": "hold", "time": 1, "duration": 1e999}]}`))
	require.NoError(t, err)

	_, err = New(c, window.Default())
	assert.Error(t, err)
	_, err = Replay(c, window.Default(), nil, 1)
	assert.Error(t, err)
}

func TestResolutionsCarryTheirPage(t *testing.T) {
	var pages []int
	c := testdata.Singles(1, 5)
	c.PageShift = 0.5
	e := newEngine(t, c, WithListener(func(r game.Resolution) {
		pages = append(pages, r.Page)
	}))

	require.NoError(t, e.TouchDown(1, 1))
	_, err := e.Tick(1)
	require.NoError(t, err)
	state, _ := e.State(2)
	assert.Equal(t, lifecycle.Pending, state)

	require.NoError(t, e.TouchDown(2, 5))
	_, err = e.Tick(5)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, pages)
}
