package main

import (
	"context"
	"log"
	"os"

	"git.lost.host/meutraa/judge/internal/config"
	"git.lost.host/meutraa/judge/internal/parser"
	"git.lost.host/meutraa/judge/internal/render"
	"git.lost.host/meutraa/judge/internal/theme"
	"golang.org/x/term"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatalln(err)
	}
}

func run(args []string) error {
	cfg, err := config.Parse(args)
	if nil != err {
		return err
	}

	color := cfg.Color == "always" ||
		(cfg.Color == "auto" && term.IsTerminal(int(os.Stdout.Fd())))

	p := &Program{
		Config:   cfg,
		Parser:   &parser.DefaultParser{},
		Renderer: &render.DefaultRenderer{Theme: &theme.DefaultTheme{Color: color}},
		Out:      os.Stdout,
	}
	if err := p.Init(); nil != err {
		return err
	}
	defer func() {
		if err := p.Deinit(); nil != err {
			log.Println("unable to close score database", err)
		}
	}()

	ctx := context.Background()
	switch cfg.Command {
	case config.ReplayCommand:
		return p.Replay(ctx)
	case config.HistoryCommand:
		return p.History(ctx)
	}
	return nil
}
