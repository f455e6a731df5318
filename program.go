package main

import (
	"context"
	"fmt"
	"io"
	"log"

	"git.lost.host/meutraa/judge/internal/config"
	"git.lost.host/meutraa/judge/internal/engine"
	"git.lost.host/meutraa/judge/internal/game"
	"git.lost.host/meutraa/judge/internal/parser"
	"git.lost.host/meutraa/judge/internal/render"
	"git.lost.host/meutraa/judge/internal/store"
	"git.lost.host/meutraa/judge/internal/window"
)

type Program struct {
	Config   *config.Config
	Parser   parser.Parser
	Renderer render.Renderer
	Out      io.Writer

	chart *game.Chart
	table window.Table
	store *store.Store
}

func (p *Program) Init() error {
	var err error
	p.chart, err = p.Parser.Parse(p.Config.Chart)
	if nil != err {
		return fmt.Errorf("unable to read chart: %w", err)
	}
	if err := p.chart.Validate(); nil != err {
		return fmt.Errorf("invalid chart %v: %w", p.Config.Chart, err)
	}

	p.table, err = p.Config.Table(p.Parser)
	if nil != err {
		return err
	}

	p.store, err = store.Open(p.Config.Database)
	if nil != err {
		return fmt.Errorf("unable to open score database: %w", err)
	}
	return nil
}

func (p *Program) Deinit() error {
	if nil != p.store {
		return p.store.Close()
	}
	return nil
}

// Replay judges the configured input log, prints every resolution and the
// final result, and stores it when asked to
func (p *Program) Replay(ctx context.Context) error {
	events, err := p.Parser.ParseEvents(p.Config.Events)
	if nil != err {
		return fmt.Errorf("unable to read input log: %w", err)
	}
	log.Printf("Judging %v inputs against %v (%v notes, %v windows)\n",
		len(events), p.Config.Chart, len(p.chart.Notes), p.Config.WindowsName())

	var writeErr error
	opts := []engine.Option{engine.WithListener(func(r game.Resolution) {
		if nil == writeErr {
			writeErr = p.Renderer.Resolution(p.Out, r)
		}
	})}
	if p.Config.Strict {
		opts = append(opts, engine.WithStrictNoteIDs())
	}

	d, err := engine.Replay(p.chart, p.table, events, p.Config.Step(), opts...)
	if nil != err {
		return err
	}
	if nil != writeErr {
		return writeErr
	}
	if err := p.Renderer.Report(p.Out, p.chart, &d); nil != err {
		return err
	}

	if p.Config.Save {
		r, err := p.store.Save(ctx, p.chart, p.Config.WindowsName(), &d, events, p.Config.Step())
		if nil != err {
			return err
		}
		log.Println("Saved record", r.ID)
	}
	return nil
}

// History lists stored records of the configured chart and checks that the
// best one still replays to the score it was saved with
func (p *Program) History(ctx context.Context) error {
	records, err := p.store.Load(ctx, p.chart)
	if nil != err {
		return err
	}
	if err := p.Renderer.History(p.Out, records); nil != err {
		return err
	}

	best, err := p.store.Best(ctx, p.chart, p.Config.WindowsName())
	if nil != err || nil == best {
		return err
	}
	d, err := store.Rescore(p.chart, p.table, best)
	if nil != err {
		return fmt.Errorf("unable to replay record %v: %w", best.ID, err)
	}
	if d.Score != best.Score {
		log.Printf("Record %v replays to %v, saved as %v\n", best.ID, d.Score, best.Score)
	}
	return nil
}
