// Package score turns note rankings into score, combo and accuracy.
package score

import (
	"sort"

	"git.lost.host/meutraa/judge/internal/game"
	"golang.org/x/exp/slices"
)

const (
	MaxScore   = 1000000
	noteScore  = 900000
	comboScore = 100000
)

// Aggregator keeps a PlayData current as notes resolve.
//
// The combo part of the score follows chart order, so the notes are kept in
// a committed prefix (every chronological position before cursor is
// resolved) plus the positions beyond it that resolved early. Only the
// latter are walked again when something resolves.
type Aggregator struct {
	weights  Weights
	order    []game.NoteID
	position map[game.NoteID]int
	rankings []game.Ranking

	cursor          int
	committedScore  float64
	committedCombo  uint32
	pending         []int
	pendingScore    float64
	comboPerNote    float64
	scorePerNote    float64
	resolutionCombo uint32

	data *game.PlayData
}

// New aggregates a validated chart into data
func New(c *game.Chart, weights Weights, data *game.PlayData) *Aggregator {
	n := float64(len(c.ChronologicalIDs))
	a := &Aggregator{
		weights:      weights,
		order:        c.ChronologicalIDs,
		position:     make(map[game.NoteID]int, len(c.ChronologicalIDs)),
		rankings:     make([]game.Ranking, len(c.ChronologicalIDs)),
		scorePerNote: noteScore / n,
		comboPerNote: comboScore / (n * (n + 1) / 2),
		data:         data,
	}
	for i, id := range c.ChronologicalIDs {
		a.position[id] = i
	}
	return a
}

func (a *Aggregator) PlayData() *game.PlayData {
	return a.data
}

// Add records a resolved note. Rankings already recorded, Undetermined
// rankings and unknown notes are ignored.
func (a *Aggregator) Add(id game.NoteID, r game.Ranking) bool {
	pos, ok := a.position[id]
	if !ok || r == game.Undetermined || a.rankings[pos] != game.Undetermined {
		return false
	}
	a.rankings[pos] = r

	d := a.data
	d.NoteRankings[id] = r
	d.NoteCleared++
	d.Counts[r]++

	if r.BreaksCombo() {
		a.resolutionCombo = 0
	} else {
		a.resolutionCombo++
	}
	d.Combo = a.resolutionCombo
	if d.Combo > d.MaxCombo {
		d.MaxCombo = d.Combo
	}

	a.insertPending(pos)
	a.commit()
	d.Score = a.score()
	d.Tp = Tp(&a.weights, &d.Counts)
	return true
}

func (a *Aggregator) insertPending(pos int) {
	a.pending = slices.Insert(a.pending, sort.SearchInts(a.pending, pos), pos)
}

// commit folds the resolved run at the cursor into the prefix and then
// refolds whatever resolved beyond it
func (a *Aggregator) commit() {
	i := 0
	for ; i < len(a.pending) && a.pending[i] == a.cursor; i++ {
		a.committedScore, a.committedCombo = a.fold(a.committedScore, a.committedCombo, a.rankings[a.cursor])
		a.cursor++
	}
	a.pending = a.pending[i:]

	sum, combo := a.committedScore, a.committedCombo
	for _, pos := range a.pending {
		sum, combo = a.fold(sum, combo, a.rankings[pos])
	}
	a.pendingScore = sum
}

func (a *Aggregator) fold(sum float64, combo uint32, r game.Ranking) (float64, uint32) {
	if r.BreaksCombo() {
		combo = 0
	} else {
		combo++
	}
	return sum + a.scorePerNote*float64(a.weights[r].Score) + a.comboPerNote*float64(combo), combo
}

func (a *Aggregator) score() float32 {
	if a.fullCombo() {
		return MaxScore
	}
	return float32(a.pendingScore)
}

func (a *Aggregator) fullCombo() bool {
	d := a.data
	graded := uint32(0)
	for r := game.Miss; int(r) < game.RankingCount; r++ {
		if r.IsFullComboGrade() {
			graded += d.Counts[r]
		}
	}
	return int(d.NoteCleared) == len(a.order) && int(graded) == len(a.order)
}

// Tp is the accuracy over the notes resolved so far, 100 when there are none
func Tp(w *Weights, counts *[game.RankingCount]uint32) float32 {
	resolved := uint32(0)
	credit := 0.0
	for r := game.Miss; int(r) < game.RankingCount; r++ {
		resolved += counts[r]
		credit += float64(counts[r]) * float64(w[r].Tp)
	}
	if resolved == 0 {
		return 100
	}
	return float32(credit / float64(resolved))
}

// Recompute builds the score of a set of rankings from scratch, in chart
// order. It agrees exactly with an Aggregator fed the same rankings in any
// order, except for the resolution order combo which it cannot know and
// reports as the chart order combo.
func Recompute(c *game.Chart, weights Weights, rankings map[game.NoteID]game.Ranking) game.PlayData {
	d := game.NewPlayData()
	a := New(c, weights, d)

	sum, combo := 0.0, uint32(0)
	for _, id := range c.ChronologicalIDs {
		r := rankings[id]
		if r == game.Undetermined {
			continue
		}
		d.NoteRankings[id] = r
		d.NoteCleared++
		d.Counts[r]++
		sum, combo = a.fold(sum, combo, r)
		if r.BreaksCombo() {
			d.Combo = 0
		} else {
			d.Combo++
		}
		if d.Combo > d.MaxCombo {
			d.MaxCombo = d.Combo
		}
	}
	a.pendingScore = sum
	d.Score = a.score()
	d.Tp = Tp(&weights, &d.Counts)
	return *d
}
