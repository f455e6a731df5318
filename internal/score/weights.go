package score

import (
	"errors"
	"fmt"

	"git.lost.host/meutraa/judge/internal/game"
)

var ErrInvalidWeights = errors.New("invalid ranking weights")

type Weight struct {
	Score float32 // Share of the per note score, in [0, 1]
	Tp    float32 // Accuracy credit, in [0, 100]
}

// Weights is indexed by game.Ranking
type Weights [game.RankingCount]Weight

func DefaultWeights() Weights {
	var w Weights
	w[game.Perfect] = Weight{Score: 1, Tp: 100}
	w[game.Excellent] = Weight{Score: 0.7, Tp: 70}
	w[game.Good] = Weight{Score: 0.3, Tp: 30}
	w[game.Bad] = Weight{Score: 0, Tp: 10}
	w[game.Miss] = Weight{Score: 0, Tp: 0}
	return w
}

func (w *Weights) Validate() error {
	for r, weight := range w {
		if weight.Score < 0 || weight.Score > 1 {
			return fmt.Errorf("%w: %v score weight %v", ErrInvalidWeights, game.Ranking(r), weight.Score)
		}
		if weight.Tp < 0 || weight.Tp > 100 {
			return fmt.Errorf("%w: %v tp weight %v", ErrInvalidWeights, game.Ranking(r), weight.Tp)
		}
	}
	return nil
}
