package lifecycle

import (
	"testing"

	"git.lost.host/meutraa/judge/internal/game"
	"git.lost.host/meutraa/judge/internal/window"
	"github.com/stretchr/testify/assert"
)

var rules = &Rules{Table: window.Default(), Chart: &game.Chart{PageDuration: 2}}

func single(time float64) *Note {
	return New(&game.Note{ID: 1, Archetype: game.Single, Time: time})
}

func hold(time, duration float64) *Note {
	return New(&game.Note{ID: 2, Archetype: game.Hold, Time: time, Duration: duration})
}

func TestRevealAfterLookahead(t *testing.T) {
	n := single(10)
	n.Advance(7.9, rules)
	assert.Equal(t, Pending, n.State())
	n.Advance(8, rules)
	assert.Equal(t, Visible, n.State())
}

func TestTouchOnPendingNoteIsIgnored(t *testing.T) {
	n := single(10)
	assert.False(t, n.TouchDown(7, rules))
	assert.Equal(t, Pending, n.State())
}

func TestTouchBoundary(t *testing.T) {
	tests := map[float64]game.Ranking{
		10.069: game.Perfect,
		10.071: game.Excellent,
	}
	for touch, expected := range tests {
		n := single(10)
		n.Advance(9, rules)
		assert.True(t, n.TouchDown(touch, rules))
		assert.Equal(t, expected, n.Ranking(), "touch at %v", touch)
		assert.Equal(t, Resolved, n.State())
	}
}

func TestTooEarlyTouchLeavesNoteVisible(t *testing.T) {
	n := single(10)
	assert.False(t, n.TouchDown(9.5, rules))
	assert.Equal(t, Visible, n.State())
	assert.True(t, n.TouchDown(10, rules))
	assert.Equal(t, game.Perfect, n.Ranking())
}

func TestUntouchedNoteMisses(t *testing.T) {
	n := single(10)
	assert.False(t, n.Advance(10.29, rules))
	assert.True(t, n.Advance(10.31, rules))
	assert.Equal(t, game.Miss, n.Ranking())
	assert.InDelta(t, 0.31, n.Resolution().Delta, 1e-9)
}

func TestResolvedIsWriteOnce(t *testing.T) {
	n := single(10)
	assert.True(t, n.TouchDown(10, rules))
	assert.False(t, n.TouchDown(10.2, rules))
	assert.False(t, n.Advance(20, rules))
	assert.False(t, n.TouchUp(20, rules))
	assert.Equal(t, game.Perfect, n.Ranking())
	assert.Equal(t, 10.0, n.Resolution().Time)
}

func TestHoldReleaseBoundary(t *testing.T) {
	tests := map[float64]game.Ranking{
		11.41: game.Excellent,
		11.39: game.Good,
		10.5:  game.Miss,
		11.95: game.Perfect,
	}
	for release, expected := range tests {
		n := hold(10, 2)
		assert.False(t, n.TouchDown(10, rules))
		assert.Equal(t, Holding, n.State())
		assert.True(t, n.TouchUp(release, rules))
		assert.Equal(t, expected, n.Ranking(), "release at %v", release)
	}
}

func TestHoldIsExemptFromMissWhileHeld(t *testing.T) {
	n := hold(10, 2)
	n.TouchDown(10, rules)
	// Past the tap miss threshold but still inside the hold
	assert.False(t, n.Advance(11, rules))
	assert.Equal(t, Holding, n.State())
}

func TestHoldAutoResolvesAtEnd(t *testing.T) {
	n := hold(10, 2)
	n.TouchDown(10.5, rules)
	assert.False(t, n.Advance(11.99, rules))
	assert.True(t, n.Advance(12, rules))
	assert.Equal(t, game.Excellent, n.Ranking())
	assert.Equal(t, 12.0, n.Resolution().Time)
	assert.InDelta(t, 0.75, n.Resolution().Delta, 1e-9)
}

func TestEarlyHoldCountsFromNoteTime(t *testing.T) {
	n := hold(10, 2)
	assert.False(t, n.TouchDown(9.9, rules))
	assert.Equal(t, Holding, n.State())
	assert.InDelta(t, 0.5, n.HeldFraction(11), 1e-9)
}

func TestTooEarlyHoldIsIgnored(t *testing.T) {
	n := hold(10, 2)
	n.TouchDown(9.5, rules)
	assert.Equal(t, Visible, n.State())
}

func TestHoldNeverStartedMisses(t *testing.T) {
	n := hold(10, 2)
	assert.False(t, n.Advance(11.5, rules))
	assert.True(t, n.Advance(12.01, rules))
	assert.Equal(t, game.Miss, n.Ranking())
}

func TestHoldTouchedAfterEndMisses(t *testing.T) {
	n := hold(10, 0.2)
	n.Advance(9, rules)
	assert.True(t, n.TouchDown(10.25, rules))
	assert.Equal(t, game.Miss, n.Ranking())
}

func TestTouchUpWithoutHoldIsIgnored(t *testing.T) {
	n := single(10)
	n.Advance(9, rules)
	assert.False(t, n.TouchUp(10, rules))
	assert.Equal(t, Visible, n.State())
}
