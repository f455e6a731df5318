package game

import "math"

type Page struct {
	Index int
	Start float64 // The time the page begins
}

// Page returns the page containing t
func (c *Chart) Page(t float64) Page {
	i := int(math.Floor((t + c.PageShift) / c.PageDuration))
	return Page{
		Index: i,
		Start: float64(i)*c.PageDuration - c.PageShift,
	}
}

// InLookahead is true once a note is at most one page away
func (c *Chart) InLookahead(n *Note, t float64) bool {
	return n.Time-t <= c.PageDuration
}
