package theme

import "git.lost.host/meutraa/judge/internal/game"

type Theme interface {
	RenderRanking(r game.Ranking) string
	RenderClear(c game.ClearType) string
}
