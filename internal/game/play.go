package game

// PlayData is the mutable result of one play session
type PlayData struct {
	NoteRankings map[NoteID]Ranking
	NoteCleared  uint32
	Combo        uint32
	MaxCombo     uint32
	Score        float32
	Tp           float32

	// Resolved notes per ranking, indexed by Ranking
	Counts [RankingCount]uint32
}

func NewPlayData() *PlayData {
	return &PlayData{
		NoteRankings: map[NoteID]Ranking{},
		Tp:           100,
	}
}

// Ranking returns the ranking of a note, Undetermined when it has none
func (p PlayData) Ranking(id NoteID) Ranking {
	return p.NoteRankings[id]
}

func (p *PlayData) Clone() PlayData {
	c := *p
	c.NoteRankings = make(map[NoteID]Ranking, len(p.NoteRankings))
	for id, r := range p.NoteRankings {
		c.NoteRankings[id] = r
	}
	return c
}

type ClearType uint8

const (
	NotCleared ClearType = iota
	Cleared
	FullCombo
	AllPerfect
)

func (c ClearType) String() string {
	switch c {
	case Cleared:
		return "cleared"
	case FullCombo:
		return "full combo"
	case AllPerfect:
		return "all perfect"
	}
	return "not cleared"
}

// Clear grades a session over a chart of n notes. Sessions that did not
// judge every note are NotCleared.
func (p PlayData) Clear(n int) ClearType {
	if n == 0 || int(p.NoteCleared) != n {
		return NotCleared
	}
	if int(p.Counts[Perfect]) == n {
		return AllPerfect
	}
	if int(p.Counts[Perfect]+p.Counts[Excellent]+p.Counts[Good]) == n {
		return FullCombo
	}
	return Cleared
}
