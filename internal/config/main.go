package config

import (
	"fmt"

	"git.lost.host/meutraa/judge/internal/parser"
	"git.lost.host/meutraa/judge/internal/window"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	ReplayCommand  = "replay"
	HistoryCommand = "history"
)

type Config struct {
	Command  string
	Chart    string
	Events   string
	Database string
	Rate     float64 // Ticks per second
	Legacy   bool
	Windows  string // Optional timing window override file
	Strict   bool
	Save     bool
	Color    string
}

// Step is the time between two ticks
func (c *Config) Step() float64 {
	return 1 / c.Rate
}

func Parse(args []string) (*Config, error) {
	var c Config

	app := kingpin.New("judge", "Judge rhythm game charts against recorded touches")
	app.Version("0.1.0")
	// Usage problems come back as errors, main decides how to exit
	app.Terminate(nil)
	app.Flag("db", "Score database").Default("./scores.db").Short('D').StringVar(&c.Database)
	app.Flag("legacy", "Use the legacy timing windows").BoolVar(&c.Legacy)
	app.Flag("windows", "Timing window overrides (json)").Short('w').ExistingFileVar(&c.Windows)
	app.Flag("color", "Colour rankings").Default("auto").EnumVar(&c.Color, "auto", "always", "never")

	replay := app.Command(ReplayCommand, "Judge an input log against a chart")
	replay.Arg("chart", "Chart file").Required().ExistingFileVar(&c.Chart)
	replay.Arg("events", "Input log").Required().ExistingFileVar(&c.Events)
	replay.Flag("rate", "Simulation ticks per second").Default("240").Short('r').Float64Var(&c.Rate)
	replay.Flag("strict", "Fail on touches addressed to unknown notes").BoolVar(&c.Strict)
	replay.Flag("save", "Store the result").Short('s').BoolVar(&c.Save)

	history := app.Command(HistoryCommand, "List stored results of a chart")
	history.Arg("chart", "Chart file").Required().ExistingFileVar(&c.Chart)

	cmd, err := app.Parse(args)
	if nil != err {
		return nil, err
	}
	c.Command = cmd

	if c.Command == ReplayCommand && c.Rate <= 0 {
		return nil, fmt.Errorf("tick rate must be positive, got %v", c.Rate)
	}
	return &c, nil
}

// WindowsName names the timing window table in stored records
func (c *Config) WindowsName() string {
	switch {
	case c.Windows != "":
		return "custom"
	case c.Legacy:
		return "legacy"
	}
	return "default"
}

// Table builds the timing window table the flags select
func (c *Config) Table(p parser.Parser) (window.Table, error) {
	table := window.Default()
	if c.Legacy {
		table = window.Legacy()
	}
	if c.Windows != "" {
		var err error
		table, err = p.ParseWindows(c.Windows, table)
		if nil != err {
			return nil, fmt.Errorf("unable to read timing windows: %w", err)
		}
	}
	return table, table.Validate()
}
