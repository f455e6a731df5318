package game

import "fmt"

// Ranking is the grade a note resolves to, ordered by quality
type Ranking uint8

const (
	Undetermined Ranking = iota
	Miss
	Bad
	Good
	Excellent
	Perfect
)

// RankingCount is the number of distinct rankings, including Undetermined
const RankingCount = int(Perfect) + 1

var rankingNames = [RankingCount]string{
	"undetermined",
	"miss",
	"bad",
	"good",
	"excellent",
	"perfect",
}

func (r Ranking) String() string {
	if int(r) < RankingCount {
		return rankingNames[r]
	}
	return fmt.Sprintf("ranking(%d)", uint8(r))
}

// BreaksCombo is true for the rankings that reset the combo
func (r Ranking) BreaksCombo() bool {
	return r == Bad || r == Miss
}

// IsFullComboGrade is true for rankings that keep a full combo intact
func (r Ranking) IsFullComboGrade() bool {
	return r == Perfect || r == Excellent
}

func ParseRanking(s string) (Ranking, error) {
	for i, name := range rankingNames {
		if name == s {
			return Ranking(i), nil
		}
	}
	return Undetermined, fmt.Errorf("unknown ranking %q", s)
}
