package engine

import (
	"errors"
	"fmt"

	"git.lost.host/meutraa/judge/internal/game"
)

var ErrInvalidStep = errors.New("replay step must be positive")

// InvalidTimeOrderingError is returned when time goes backwards. The session
// cannot continue after it.
type InvalidTimeOrderingError struct {
	Previous float64
	Got      float64
}

func (e *InvalidTimeOrderingError) Error() string {
	return fmt.Sprintf("elapsed time went from %v to %v", e.Previous, e.Got)
}

// UnknownNoteError is returned in strict mode for a note id the chart lacks
type UnknownNoteError struct {
	NoteID game.NoteID
}

func (e *UnknownNoteError) Error() string {
	return fmt.Sprintf("chart has no note %d", e.NoteID)
}
