package render

import (
	"io"

	"git.lost.host/meutraa/judge/internal/game"
	"git.lost.host/meutraa/judge/internal/store"
)

type Renderer interface {
	Resolution(w io.Writer, r game.Resolution) error
	Report(w io.Writer, c *game.Chart, d *game.PlayData) error
	History(w io.Writer, records []store.Record) error
}
