package game

type EventKind uint8

const (
	Down EventKind = iota
	Up
)

func (k EventKind) String() string {
	if k == Up {
		return "up"
	}
	return "down"
}

// Event is a touch addressed to a note by the input layer
type Event struct {
	NoteID NoteID
	Kind   EventKind
	Time   float64
}

// Resolution is emitted once per note when it receives its ranking
type Resolution struct {
	NoteID    NoteID
	Archetype Archetype
	Ranking   Ranking
	Time      float64 // Elapsed time of the resolving step
	Delta     float64 // Touch time minus note time, or the held fraction for holds
	Page      int     // Page the note belongs to
}
