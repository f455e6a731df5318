package game

type NoteID int

type Note struct {
	ID        NoteID
	Archetype Archetype
	Time      float64 // The time the note should be hit, in seconds
	Duration  float64 // Hold length or chain segment length, 0 for taps
	X         float32 // Lane position, unused by judgement

	// The next note of a chain run. This is a lookup key into the chart,
	// the chart owns every note.
	ConnectedNoteID *NoteID
}

// End is the time the note should be released
func (n *Note) End() float64 {
	return n.Time + n.Duration
}

// Connected returns the id of the next chain segment
func (n *Note) Connected() (NoteID, bool) {
	if nil == n.ConnectedNoteID {
		return 0, false
	}
	return *n.ConnectedNoteID, true
}

// Link is a helper for building chains
func Link(id NoteID) *NoteID {
	return &id
}
