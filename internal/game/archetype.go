package game

import "fmt"

type Archetype uint8

const (
	Single Archetype = iota
	ChainHead
	ChainChild
	Hold
	LongHold
	Flick
)

// Archetypes lists every archetype, in declaration order
var Archetypes = [...]Archetype{Single, ChainHead, ChainChild, Hold, LongHold, Flick}

var archetypeNames = map[Archetype]string{
	Single:     "single",
	ChainHead:  "chain-head",
	ChainChild: "chain-child",
	Hold:       "hold",
	LongHold:   "long-hold",
	Flick:      "flick",
}

func (a Archetype) String() string {
	if name, ok := archetypeNames[a]; ok {
		return name
	}
	return fmt.Sprintf("archetype(%d)", uint8(a))
}

func (a Archetype) IsChain() bool {
	return a == ChainHead || a == ChainChild
}

func (a Archetype) IsHold() bool {
	return a == Hold || a == LongHold
}

// IsInstant is true for notes judged by a single touch
func (a Archetype) IsInstant() bool {
	return !a.IsHold()
}

func ParseArchetype(s string) (Archetype, error) {
	for a, name := range archetypeNames {
		if name == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown archetype %q", s)
}
