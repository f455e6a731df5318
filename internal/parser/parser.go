package parser

import (
	"git.lost.host/meutraa/judge/internal/game"
	"git.lost.host/meutraa/judge/internal/window"
)

type Parser interface {
	Parse(file string) (*game.Chart, error)
	ParseEvents(file string) ([]game.Event, error)
	ParseWindows(file string, base window.Table) (window.Table, error)
}
