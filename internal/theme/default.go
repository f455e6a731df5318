package theme

import (
	"fmt"
	"strings"

	"git.lost.host/meutraa/judge/internal/game"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var title = cases.Title(language.English)

type Color struct {
	R, G, B uint8
}

// DefaultTheme writes ANSI true colour escapes when Color is set
type DefaultTheme struct {
	Color bool
}

func (t *DefaultTheme) RenderRanking(r game.Ranking) string {
	return t.paint(rankingColors[r], title.String(r.String()))
}

func (t *DefaultTheme) RenderClear(c game.ClearType) string {
	name := strings.ToUpper(c.String())
	switch c {
	case game.AllPerfect:
		return t.paint(rankingColors[game.Perfect], name)
	case game.FullCombo:
		return t.paint(rankingColors[game.Excellent], name)
	case game.NotCleared:
		return t.paint(rankingColors[game.Miss], name)
	}
	return name
}

func (t *DefaultTheme) paint(c Color, s string) string {
	if !t.Color {
		return s
	}
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

var rankingColors = map[game.Ranking]Color{
	game.Perfect:      {236, 195, 0},   // yellow
	game.Excellent:    {0, 236, 128},   // green
	game.Good:         {0, 118, 236},   // blue
	game.Bad:          {106, 0, 236},   // purple
	game.Miss:         {236, 30, 0},    // red
	game.Undetermined: {106, 106, 106}, // grey
}
