package window

import "git.lost.host/meutraa/judge/internal/game"

const missAfter = 0.300

var (
	tap = []Window{
		{Ranking: game.Perfect, Early: 0.035, Late: 0.070},
		{Ranking: game.Excellent, Early: 0.075, Late: 0.150},
		{Ranking: game.Good, Early: 0.110, Late: 0.220},
		{Ranking: game.Bad, Early: 0.150, Late: 0.300},
	}
	chainHead = []Window{
		{Ranking: game.Perfect, Early: 0.150, Late: 0.150},
		{Ranking: game.Excellent, Early: 0.300, Late: 0.300},
	}
	chainChild = []Window{
		{Ranking: game.Perfect, Early: 0.075, Late: 0.075},
		{Ranking: game.Excellent, Early: 0.150, Late: 0.150},
	}
	held = []Fraction{
		{Ranking: game.Perfect, Min: 0.95},
		{Ranking: game.Excellent, Min: 0.70},
		{Ranking: game.Good, Min: 0.50},
		{Ranking: game.Bad, Min: 0.30},
	}
)

// Default returns a fresh copy of the current timing windows
func Default() Table {
	t := Table{
		game.Single:     {Windows: tap, MissAfter: missAfter},
		game.Flick:      {Windows: tap, MissAfter: missAfter},
		game.ChainHead:  {Windows: chainHead, MissAfter: missAfter},
		game.ChainChild: {Windows: chainChild, MissAfter: missAfter},
		game.Hold:       {Fractions: held, MissAfter: missAfter, StartEarly: 0.150},
		game.LongHold:   {Fractions: held, MissAfter: missAfter, StartEarly: 0.150},
	}
	return t.Clone()
}

var (
	legacyTap = []Window{
		{Ranking: game.Perfect, Early: 0.080, Late: 0.080},
		{Ranking: game.Excellent, Early: 0.160, Late: 0.160},
		{Ranking: game.Good, Early: 0.240, Late: 0.240},
		{Ranking: game.Bad, Early: 0.400, Late: 0.400},
	}
	legacyChain = []Window{
		{Ranking: game.Perfect, Early: 0.200, Late: 0.200},
		{Ranking: game.Excellent, Early: 0.400, Late: 0.400},
	}
	legacyHeld = []Fraction{
		{Ranking: game.Perfect, Min: 0.90},
		{Ranking: game.Excellent, Min: 0.70},
		{Ranking: game.Good, Min: 0.50},
		{Ranking: game.Bad, Min: 0.30},
	}
)

// Legacy returns the older, looser windows. Scores made with it are not
// comparable with Default scores.
func Legacy() Table {
	const legacyMissAfter = 0.400
	t := Table{
		game.Single:     {Windows: legacyTap, MissAfter: legacyMissAfter},
		game.Flick:      {Windows: legacyTap, MissAfter: legacyMissAfter},
		game.ChainHead:  {Windows: legacyChain, MissAfter: legacyMissAfter},
		game.ChainChild: {Windows: legacyChain, MissAfter: legacyMissAfter},
		game.Hold:       {Fractions: legacyHeld, MissAfter: legacyMissAfter, StartEarly: 0.200},
		game.LongHold:   {Fractions: legacyHeld, MissAfter: legacyMissAfter, StartEarly: 0.200},
	}
	return t.Clone()
}

// Clone copies a table so callers can override entries
func (t Table) Clone() Table {
	c := make(Table, len(t))
	for a, e := range t {
		e.Windows = append([]Window(nil), e.Windows...)
		e.Fractions = append([]Fraction(nil), e.Fractions...)
		c[a] = e
	}
	return c
}
